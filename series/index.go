package series

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/interval"
)

// index is the sorted time axis shared by all series types.
type index struct {
	t       []float64
	support interval.Set
}

// buildIndex converts, rounds and sorts times. perm maps sorted positions to
// input positions so callers can reorder their values.
func buildIndex(times []float64, cfg config) (index, []int, error) {
	if core.HasNaN(times) {
		return index{}, nil, ErrNaNTime
	}

	t := cfg.core.RoundAll(core.FormatTimestamps(times, cfg.unit))

	perm := make([]int, len(t))
	for i := range perm {
		perm[i] = i
	}
	if !core.IsSorted(t) {
		sort.SliceStable(perm, func(a, b int) bool { return t[perm[a]] < t[perm[b]] })
		sorted := make([]float64, len(t))
		for i, p := range perm {
			sorted[i] = t[p]
		}
		t = sorted
	}

	idx := index{t: t}
	if cfg.hasSupport {
		idx.support = cfg.support
		keep := idx.positionsIn(cfg.support)
		if len(keep) != len(t) {
			kept := make([]float64, len(keep))
			keptPerm := make([]int, len(keep))
			for i, k := range keep {
				kept[i] = t[k]
				keptPerm[i] = perm[k]
			}
			idx.t = kept
			perm = keptPerm
		}
	} else if len(t) > 0 {
		idx.support = defaultSupport(t, cfg.core)
	}

	return idx, perm, nil
}

// defaultSupport spans the first to the last timestamp of sorted t. A train
// whose timestamps all coincide gets one resolution step of length so that
// its support is not empty.
func defaultSupport(t []float64, cfg core.Config) interval.Set {
	start, end := t[0], t[len(t)-1]
	if end <= start {
		end = start + cfg.Resolution()
	}
	s, _ := interval.New([]float64{start}, []float64{end},
		interval.WithCoreOptions(core.WithTimeIndexPrecision(cfg.TimeIndexPrecision)))
	return s
}

// positionsIn returns the positions of timestamps inside ep, bounds included.
// A timestamp on the boundary of two touching intervals is reported once.
func (x index) positionsIn(ep interval.Set) []int {
	var out []int
	prev := 0
	for i := 0; i < ep.Len(); i++ {
		lo := max(core.SearchLeft(x.t, ep.Start(i)), prev)
		hi := core.SearchRight(x.t, ep.End(i))
		for k := lo; k < hi; k++ {
			out = append(out, k)
		}
		prev = max(prev, hi)
	}
	return out
}

func (x index) rate() float64 {
	d := x.support.TotLength(core.Seconds)
	if d <= 0 {
		return 0
	}
	return float64(len(x.t)) / d
}

func (x index) slice(start, end float64) (int, int) {
	lo := core.SearchLeft(x.t, start)
	hi := core.SearchLeft(x.t, end)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (x index) between(start, end float64) (int, int) {
	lo := core.SearchLeft(x.t, start)
	hi := core.SearchRight(x.t, end)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// nearest returns the position of the sample closest to v. Ties resolve to
// the earlier sample. x.t must not be empty.
func (x index) nearest(v float64) int {
	j := core.SearchLeft(x.t, v)
	switch {
	case j <= 0:
		return 0
	case j >= len(x.t):
		return len(x.t) - 1
	}
	if math.Abs(x.t[j]-v) < math.Abs(x.t[j-1]-v) {
		return j
	}
	return j - 1
}

// binCounts counts timestamps in consecutive bins of width bin laid over
// each interval of ep. Bins are half-open except the last bin of every
// interval, which includes the interval end and is cut short when the
// interval is not a whole number of bins long. A timestamp shared by two
// touching intervals is counted in the earlier one.
func binCounts(t []float64, bin float64, ep interval.Set) (centers, counts []float64) {
	cfg := core.DefaultConfig()
	prev := 0
	for i := 0; i < ep.Len(); i++ {
		start, end := ep.Start(i), ep.End(i)
		n := int(math.Ceil(cfg.Round((end - start) / bin)))
		if n == 0 {
			continue
		}
		lo := max(core.SearchLeft(t, start), prev)
		hi := core.SearchRight(t, end)
		if hi < lo {
			hi = lo
		}
		prev = hi

		c := make([]float64, n)
		for _, v := range t[lo:hi] {
			k := int((v - start) / bin)
			if k >= n {
				k = n - 1
			}
			c[k]++
		}
		for k := 0; k < n; k++ {
			left := start + float64(k)*bin
			right := math.Min(left+bin, end)
			centers = append(centers, cfg.Round((left+right)/2))
		}
		counts = append(counts, c...)
	}
	return centers, counts
}
