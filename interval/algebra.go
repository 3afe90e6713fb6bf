package interval

import (
	"math"

	"github.com/cwbudde/algo-neuro/core"
)

// Union returns the intervals covered by s or o.
func (s Set) Union(o Set) Set {
	starts := make([]float64, 0, s.Len()+o.Len())
	ends := make([]float64, 0, s.Len()+o.Len())
	starts = append(append(starts, s.starts...), o.starts...)
	ends = append(append(ends, s.ends...), o.ends...)
	return normalize(starts, ends)
}

// Intersect returns the intervals covered by both s and o.
func (s Set) Intersect(o Set) Set {
	var starts, ends []float64
	i, j := 0, 0
	for i < s.Len() && j < o.Len() {
		lo := math.Max(s.starts[i], o.starts[j])
		hi := math.Min(s.ends[i], o.ends[j])
		if lo < hi {
			starts = append(starts, lo)
			ends = append(ends, hi)
		}
		if s.ends[i] < o.ends[j] {
			i++
		} else {
			j++
		}
	}
	return fromSorted(starts, ends)
}

// SetDiff returns the intervals of s not covered by o.
func (s Set) SetDiff(o Set) Set {
	var starts, ends []float64
	j := 0
	for i := range s.starts {
		cursor := s.starts[i]
		end := s.ends[i]

		for j < o.Len() && o.ends[j] <= cursor {
			j++
		}
		for k := j; k < o.Len() && o.starts[k] < end; k++ {
			if o.starts[k] > cursor {
				starts = append(starts, cursor)
				ends = append(ends, o.starts[k])
			}
			cursor = math.Max(cursor, o.ends[k])
			if cursor >= end {
				break
			}
		}
		if cursor < end {
			starts = append(starts, cursor)
			ends = append(ends, end)
		}
	}
	return fromSorted(starts, ends)
}

// Contains reports whether t (seconds) lies inside an interval, bounds included.
func (s Set) Contains(t float64) bool {
	return s.indexOf(t) >= 0
}

func (s Set) indexOf(t float64) int {
	i := core.SearchRight(s.starts, t) - 1
	if i >= 0 && t <= s.ends[i] {
		return i
	}
	return -1
}

// InInterval returns, for each timestamp, the index of the interval that
// contains it or -1.
func (s Set) InInterval(ts []float64) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = s.indexOf(t)
	}
	return out
}

// DropShortIntervals keeps intervals strictly longer than threshold.
func (s Set) DropShortIntervals(threshold float64, u core.TimeUnit) Set {
	th := core.ToSeconds(threshold, u)
	return s.filter(func(d float64) bool { return d > th })
}

// DropLongIntervals keeps intervals strictly shorter than threshold.
func (s Set) DropLongIntervals(threshold float64, u core.TimeUnit) Set {
	th := core.ToSeconds(threshold, u)
	return s.filter(func(d float64) bool { return d < th })
}

func (s Set) filter(keep func(duration float64) bool) Set {
	var starts, ends []float64
	for i := range s.starts {
		if keep(s.ends[i] - s.starts[i]) {
			starts = append(starts, s.starts[i])
			ends = append(ends, s.ends[i])
		}
	}
	return fromSorted(starts, ends)
}

// MergeCloseIntervals joins consecutive intervals separated by a gap of at
// most threshold.
func (s Set) MergeCloseIntervals(threshold float64, u core.TimeUnit) Set {
	if s.Empty() {
		return Set{}
	}
	th := core.ToSeconds(threshold, u)

	starts := []float64{s.starts[0]}
	ends := []float64{s.ends[0]}
	for i := 1; i < s.Len(); i++ {
		last := len(ends) - 1
		if s.starts[i]-ends[last] <= th {
			ends[last] = s.ends[i]
			continue
		}
		starts = append(starts, s.starts[i])
		ends = append(ends, s.ends[i])
	}
	return fromSorted(starts, ends)
}

// Split cuts every interval into consecutive chunks of the given size.
// Intervals shorter than size are skipped and trailing remainders dropped.
func (s Set) Split(size float64, u core.TimeUnit) (Set, error) {
	sz := core.ToSeconds(size, u)
	if !(sz > 0) {
		return Set{}, ErrInvalidSize
	}

	cfg := core.DefaultConfig()
	var starts, ends []float64
	for i := range s.starts {
		n := int(math.Floor(cfg.Round((s.ends[i] - s.starts[i]) / sz)))
		for k := 0; k < n; k++ {
			starts = append(starts, cfg.Round(s.starts[i]+float64(k)*sz))
			ends = append(ends, cfg.Round(s.starts[i]+float64(k+1)*sz))
		}
	}
	return fromSorted(starts, ends), nil
}

// OverlapSplit slides a window of the given size (seconds) over every
// interval, advancing by (1-overlap)*size. A window is emitted while
// t+size < end, so windows never reach the interval end.
//
// The windows may overlap, so they are returned as raw [start, end] pairs
// rather than as a Set.
func (s Set) OverlapSplit(size, overlap float64) ([][2]float64, error) {
	if !(size > 0) {
		return nil, ErrInvalidSize
	}
	if overlap < 0 || overlap >= 1 {
		return nil, ErrInvalidOverlap
	}

	step := (1 - overlap) * size
	var out [][2]float64
	for i := range s.starts {
		for t := s.starts[i]; t+size < s.ends[i]; t += step {
			out = append(out, [2]float64{t, t + size})
		}
	}
	return out, nil
}
