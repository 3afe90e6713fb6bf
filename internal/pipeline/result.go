package pipeline

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/cwbudde/algo-neuro/stats/frequency"
	"github.com/cwbudde/algo-neuro/stats/spiketrain"
)

// Series is a float slice whose JSON form writes non-finite values as null.
type Series []float64

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 2+8*len(s))
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendNumber(buf, v)
	}
	return append(buf, ']'), nil
}

// Number is a float whose JSON form writes non-finite values as null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return appendNumber(nil, float64(n)), nil
}

func appendNumber(buf []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(buf, "null"...)
	}
	return strconv.AppendFloat(buf, v, 'g', -1, 64)
}

var (
	_ json.Marshaler = Series(nil)
	_ json.Marshaler = Number(0)
)

// Result is the output of one analysis.
type Result struct {
	Session  string `json:"session"`
	Analysis string `json:"analysis"`
	Kind     Kind   `json:"kind"`
	Data     any    `json:"data"`
}

// CorrelogramData holds correlograms sharing one lag axis, in seconds.
// Keys are unit ids or "(ref, target)" pairs.
type CorrelogramData struct {
	Lags   Series   `json:"lags"`
	Keys   []string `json:"keys"`
	Values []Series `json:"values"`
}

// SpectrumData holds a power spectrum with per-column spectral statistics.
type SpectrumData struct {
	Freqs   Series            `json:"freqs"`
	Columns []string          `json:"columns"`
	Power   []Series          `json:"power"`
	Stats   []SpectralStats `json:"stats"`
}

// SpectralStats is the serialized form of [frequency.Stats].
type SpectralStats struct {
	BinCount      int    `json:"bin_count"`
	Sum           Number `json:"sum"`
	Max           Number `json:"max"`
	MaxBin        int    `json:"max_bin"`
	PeakFrequency Number `json:"peak_frequency"`
	Min           Number `json:"min"`
	MinBin        int    `json:"min_bin"`
	Average       Number `json:"average"`
	Energy        Number `json:"energy"`
	Power         Number `json:"power"`
	Centroid      Number `json:"centroid"`
	Spread        Number `json:"spread"`
	Flatness      Number `json:"flatness"`
	Rolloff       Number `json:"rolloff"`
	Bandwidth     Number `json:"bandwidth"`
}

func spectralStats(st frequency.Stats) SpectralStats {
	return SpectralStats{
		BinCount:      st.BinCount,
		Sum:           Number(st.Sum),
		Max:           Number(st.Max),
		MaxBin:        st.MaxBin,
		PeakFrequency: Number(st.PeakFrequency),
		Min:           Number(st.Min),
		MinBin:        st.MinBin,
		Average:       Number(st.Average),
		Energy:        Number(st.Energy),
		Power:         Number(st.Power),
		Centroid:      Number(st.Centroid),
		Spread:        Number(st.Spread),
		Flatness:      Number(st.Flatness),
		Rolloff:       Number(st.Rolloff),
		Bandwidth:     Number(st.Bandwidth),
	}
}

// TuningData holds tuning curves in Hz over feature bin centers.
type TuningData struct {
	Centers     Series            `json:"centers"`
	Occupancy   Series            `json:"occupancy"`
	Units       []int             `json:"units"`
	Curves      []Series          `json:"curves"`
	Information []UnitInformation `json:"information"`
}

// UnitInformation is the Skaggs information of one unit.
type UnitInformation struct {
	Unit          int    `json:"unit"`
	BitsPerSpike  Number `json:"bits_per_spike"`
	BitsPerSecond Number `json:"bits_per_second"`
}

// ISIData holds spike train statistics per unit.
type ISIData struct {
	Units []int              `json:"units"`
	Stats []TrainStats `json:"stats"`
}

// TrainStats is the serialized form of [spiketrain.Stats].
type TrainStats struct {
	Count                int    `json:"count"`
	Duration             Number `json:"duration"`
	Rate                 Number `json:"rate"`
	ISICount             int    `json:"isi_count"`
	MeanISI              Number `json:"mean_isi"`
	StdISI               Number `json:"std_isi"`
	MinISI               Number `json:"min_isi"`
	MaxISI               Number `json:"max_isi"`
	CV                   Number `json:"cv"`
	LV                   Number `json:"lv"`
	Skewness             Number `json:"skewness"`
	RefractoryViolations int    `json:"refractory_violations"`
	RefractoryFraction   Number `json:"refractory_fraction"`
}

func trainStats(st spiketrain.Stats) TrainStats {
	return TrainStats{
		Count:                st.Count,
		Duration:             Number(st.Duration),
		Rate:                 Number(st.Rate),
		ISICount:             st.ISICount,
		MeanISI:              Number(st.MeanISI),
		StdISI:               Number(st.StdISI),
		MinISI:               Number(st.MinISI),
		MaxISI:               Number(st.MaxISI),
		CV:                   Number(st.CV),
		LV:                   Number(st.LV),
		Skewness:             Number(st.Skewness),
		RefractoryViolations: st.RefractoryViolations,
		RefractoryFraction:   Number(st.RefractoryFraction),
	}
}
