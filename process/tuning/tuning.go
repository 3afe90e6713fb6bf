package tuning

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/group"
	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/series"
)

var (
	// ErrNilGroup is returned when the spike group is nil.
	ErrNilGroup = errors.New("tuning: group must not be nil")
	// ErrNilFeature is returned when the feature is nil.
	ErrNilFeature = errors.New("tuning: feature must not be nil")
	// ErrEmptyFeature is returned when no feature sample lies in the epoch.
	ErrEmptyFeature = errors.New("tuning: feature has no sample in epoch")
	// ErrInvalidBins is returned when the number of bins is not positive.
	ErrInvalidBins = errors.New("tuning: number of bins must be > 0")
	// ErrInvalidRange is returned when min >= max or a bound is not finite.
	ErrInvalidRange = errors.New("tuning: invalid min/max range")
	// ErrNilCurves is returned when smoothing or information gets nil curves.
	ErrNilCurves = errors.New("tuning: curves must not be nil")
)

// Curves holds one tuning curve per unit over shared feature bins.
type Curves struct {
	Edges     []float64 // len(Centers)+1 bin edges
	Centers   []float64
	Keys      []int
	Values    map[int][]float64 // Hz, aligned with Centers
	Occupancy []float64         // feature samples per bin
}

// Get returns the curve of unit k.
func (c *Curves) Get(k int) ([]float64, bool) {
	v, ok := c.Values[k]
	return v, ok
}

// Option configures tuning curve computation.
type Option func(*config)

type config struct {
	ep        interval.Set
	hasEp     bool
	min, max  float64
	hasMinMax bool
}

func applyOptions(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEpoch restricts the feature and the spikes to ep.
func WithEpoch(ep interval.Set) Option {
	return func(c *config) {
		c.ep = ep
		c.hasEp = true
	}
}

// WithMinMax sets the binned feature range. By default the range spans the
// feature values.
func WithMinMax(min, max float64) Option {
	return func(c *config) {
		c.min, c.max = min, max
		c.hasMinMax = true
	}
}

// Compute1D computes the tuning curve of every unit of g against feature.
func Compute1D(g *group.TsGroup, feature *series.Tsd, nbBins int, opts ...Option) (*Curves, error) {
	if g == nil {
		return nil, ErrNilGroup
	}
	if feature == nil {
		return nil, ErrNilFeature
	}
	if nbBins <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, nbBins)
	}

	cfg := applyOptions(opts)
	ep := feature.TimeSupport()
	if cfg.hasEp {
		ep = cfg.ep
		feature = feature.Restrict(ep)
	}
	if feature.Len() == 0 {
		return nil, ErrEmptyFeature
	}

	lo, hi := cfg.min, cfg.max
	if !cfg.hasMinMax {
		lo, hi = valueRange(feature.Values())
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
	}
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lo, hi)
	}

	edges := core.Linspace(lo, hi, nbBins+1)
	out := &Curves{
		Edges:     edges,
		Centers:   centers(edges),
		Keys:      g.Keys(),
		Values:    make(map[int][]float64, g.Len()),
		Occupancy: histogram(feature.Values(), edges),
	}

	rate := feature.Rate()
	spikes := g.Restrict(ep)
	for _, k := range out.Keys {
		unit, err := spikes.Unit(k)
		if err != nil {
			return nil, err
		}
		counts := histogram(feature.ValueFrom(unit).Values(), edges)
		curve := make([]float64, nbBins)
		for i, n := range counts {
			if out.Occupancy[i] == 0 {
				curve[i] = math.NaN()
				continue
			}
			curve[i] = n / out.Occupancy[i] * rate
		}
		out.Values[k] = curve
	}

	return out, nil
}

// ComputeAngular computes tuning curves against an angular feature in
// radians. Angles are wrapped into [0, 2*pi) and binned over [0, 2*pi].
func ComputeAngular(g *group.TsGroup, angle *series.Tsd, nbBins int, opts ...Option) (*Curves, error) {
	feature, err := WrapAngles(angle)
	if err != nil {
		return nil, err
	}

	opts = append(opts, WithMinMax(0, 2*math.Pi))
	return Compute1D(g, feature, nbBins, opts...)
}

// WrapAngles returns a copy of angle with every value wrapped into
// [0, 2*pi). Pass the result to [MutualInformation] for curves built by
// [ComputeAngular].
func WrapAngles(angle *series.Tsd) (*series.Tsd, error) {
	if angle == nil {
		return nil, ErrNilFeature
	}
	wrapped := make([]float64, angle.Len())
	for i, v := range angle.Values() {
		wrapped[i] = wrapAngle(v)
	}
	return series.NewTsd(angle.Times(), wrapped, series.WithTimeSupport(angle.TimeSupport()))
}

func wrapAngle(v float64) float64 {
	v = math.Mod(v, 2*math.Pi)
	if v < 0 {
		v += 2 * math.Pi
	}
	return v
}

func valueRange(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if math.IsNaN(x) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func centers(edges []float64) []float64 {
	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = edges[i] + (edges[i+1]-edges[i])/2
	}
	return out
}

// histogram counts values per bin. Bins are half-open except the last,
// which includes its right edge. NaN and out-of-range values are skipped.
func histogram(values, edges []float64) []float64 {
	nb := len(edges) - 1
	out := make([]float64, nb)
	lo, hi := edges[0], edges[nb]
	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		i := core.SearchRight(edges, v) - 1
		if i >= nb {
			i = nb - 1
		}
		out[i]++
	}
	return out
}
