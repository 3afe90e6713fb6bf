package correlogram

import (
	"github.com/cwbudde/algo-neuro/group"
	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/series"
)

func restrict(g *group.TsGroup, cfg config) *group.TsGroup {
	if cfg.hasEp {
		return g.Restrict(cfg.ep)
	}
	return g
}

func widen(ep interval.Set, by float64) interval.Set {
	starts := make([]float64, ep.Len())
	ends := make([]float64, ep.Len())
	for i := range starts {
		starts[i] = ep.Start(i) - by
		ends[i] = ep.End(i) + by
	}
	out, _ := interval.New(starts, ends)
	return out
}

func times(g *group.TsGroup, k int) []float64 {
	u, err := g.Unit(k)
	if err != nil {
		return nil
	}
	return u.Times()
}

// ComputeAuto computes the autocorrelogram of every unit of g.
//
// The zero-lag bin, which only counts each spike against itself, is set to 0.
func ComputeAuto(g *group.TsGroup, binSize, windowSize float64, opts ...Option) (*Table[int], error) {
	if g == nil {
		return nil, ErrNilGroup
	}
	cfg := applyOptions(opts)
	bin, win, err := cfg.sizes(binSize, windowSize)
	if err != nil {
		return nil, err
	}

	ng := restrict(g, cfg)
	out := &Table[int]{Keys: ng.Keys()}
	for _, k := range out.Keys {
		t := times(ng, k)
		counts, centers := CrossCorrelogram(t, t, bin, win)
		if cfg.norm {
			divide(counts, ng.Rate(k))
		}
		out.Lags = centers
		out.Values = append(out.Values, counts)
	}
	if out.Lags == nil {
		_, out.Lags = CrossCorrelogram(nil, nil, bin, win)
	}

	if zero := out.LagIndex(0); zero >= 0 {
		for _, v := range out.Values {
			v[zero] = 0
		}
	}

	return out, nil
}

// ComputeCross computes the cross-correlogram of every unit pair (i, j) with
// i < j in key order, or (j, i) when [WithReverse] is set. With normalization
// each correlogram is divided by the rate of the pair's target.
func ComputeCross(g *group.TsGroup, binSize, windowSize float64, opts ...Option) (*Table[Pair], error) {
	if g == nil {
		return nil, ErrNilGroup
	}
	cfg := applyOptions(opts)
	bin, win, err := cfg.sizes(binSize, windowSize)
	if err != nil {
		return nil, err
	}

	ng := restrict(g, cfg)
	keys := ng.Keys()

	var pairs []Pair
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			p := Pair{Ref: keys[i], Target: keys[j]}
			if cfg.reverse {
				p = Pair{Ref: keys[j], Target: keys[i]}
			}
			pairs = append(pairs, p)
		}
	}

	return crossPairs(ng, ng, pairs, bin, win, cfg), nil
}

// ComputeCrossBetween computes the cross-correlogram of every pair in the
// cartesian product of the units of a (references) and b (targets).
func ComputeCrossBetween(a, b *group.TsGroup, binSize, windowSize float64, opts ...Option) (*Table[Pair], error) {
	if a == nil || b == nil {
		return nil, ErrNilGroup
	}
	cfg := applyOptions(opts)
	bin, win, err := cfg.sizes(binSize, windowSize)
	if err != nil {
		return nil, err
	}

	na, nb := restrict(a, cfg), restrict(b, cfg)
	var pairs []Pair
	for _, i := range na.Keys() {
		for _, j := range nb.Keys() {
			pairs = append(pairs, Pair{Ref: i, Target: j})
		}
	}

	return crossPairs(na, nb, pairs, bin, win, cfg), nil
}

func crossPairs(refs, targets *group.TsGroup, pairs []Pair, bin, win float64, cfg config) *Table[Pair] {
	out := &Table[Pair]{Keys: pairs}
	for _, p := range pairs {
		counts, centers := CrossCorrelogram(times(refs, p.Ref), times(targets, p.Target), bin, win)
		if cfg.norm {
			divide(counts, targets.Rate(p.Target))
		}
		out.Lags = centers
		out.Values = append(out.Values, counts)
	}
	if out.Lags == nil {
		_, out.Lags = CrossCorrelogram(nil, nil, bin, win)
	}
	return out
}

// ComputeEvent computes the correlogram of every unit of g around the events
// of ev. The default epoch is the time support of ev: events are taken over
// it, and units over it widened by the window on both sides and clipped to
// the group support, so a train of one event still sees its neighbourhood.
func ComputeEvent(g *group.TsGroup, ev *series.Ts, binSize, windowSize float64, opts ...Option) (*Table[int], error) {
	if g == nil || ev == nil {
		return nil, ErrNilGroup
	}
	cfg := applyOptions(opts)
	bin, win, err := cfg.sizes(binSize, windowSize)
	if err != nil {
		return nil, err
	}

	ep := ev.TimeSupport()
	unitEp := widen(ep, win).Intersect(g.TimeSupport())
	if cfg.hasEp {
		ep, unitEp = cfg.ep, cfg.ep
	}
	ref := ev.Restrict(ep).Times()
	ng := g.Restrict(unitEp)

	out := &Table[int]{Keys: ng.Keys()}
	for _, k := range out.Keys {
		counts, centers := CrossCorrelogram(ref, times(ng, k), bin, win)
		if cfg.norm {
			divide(counts, ng.Rate(k))
		}
		out.Lags = centers
		out.Values = append(out.Values, counts)
	}
	if out.Lags == nil {
		_, out.Lags = CrossCorrelogram(nil, nil, bin, win)
	}

	return out, nil
}
