package tuning

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-neuro/series"
)

// Information is the Skaggs mutual information between a unit's firing and
// the feature.
type Information struct {
	BitsPerSpike  float64
	BitsPerSecond float64
}

// MutualInformation computes, for every curve, the information rate
//
//	I = sum_i p_i * f_i * log2(f_i / F)
//
// where p_i is the occupancy probability of bin i measured from feature with
// the curves' bin edges, f_i the rate in bin i and F = sum_i p_i * f_i the
// mean rate. Bits per spike is I/F; it is NaN when the mean rate is 0.
func MutualInformation(tc *Curves, feature *series.Tsd) (map[int]Information, error) {
	if tc == nil {
		return nil, ErrNilCurves
	}
	if feature == nil {
		return nil, ErrNilFeature
	}
	if len(tc.Edges) < 2 {
		return nil, fmt.Errorf("%w: %d edges", ErrInvalidBins, len(tc.Edges))
	}

	occ := histogram(feature.Values(), tc.Edges)
	total := 0.0
	for _, n := range occ {
		total += n
	}
	if total == 0 {
		return nil, ErrEmptyFeature
	}
	for i := range occ {
		occ[i] /= total
	}

	out := make(map[int]Information, len(tc.Keys))
	for _, k := range tc.Keys {
		curve := tc.Values[k]

		mean := 0.0
		for i, f := range curve {
			if !math.IsNaN(f) {
				mean += occ[i] * f
			}
		}

		bits := 0.0
		for i, f := range curve {
			if math.IsNaN(f) || f == 0 || mean == 0 {
				continue
			}
			bits += occ[i] * f * math.Log2(f/mean)
		}

		info := Information{BitsPerSecond: bits, BitsPerSpike: math.NaN()}
		if mean > 0 {
			info.BitsPerSpike = bits / mean
		}
		out[k] = info
	}
	return out, nil
}
