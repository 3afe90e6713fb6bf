package series

import (
	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/interval"
)

// Ts is a train of event timestamps, typically the spike times of one unit.
type Ts struct {
	index
}

// NewTs builds an event train. Timestamps are sorted and, when a time
// support is given, restricted to it.
func NewTs(times []float64, opts ...Option) (*Ts, error) {
	idx, _, err := buildIndex(times, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Ts{index: idx}, nil
}

// MustTs is like [NewTs] but panics on error.
func MustTs(times []float64, opts ...Option) *Ts {
	ts, err := NewTs(times, opts...)
	if err != nil {
		panic(err)
	}
	return ts
}

// Len returns the number of events.
func (s *Ts) Len() int { return len(s.t) }

// Times returns the timestamps in seconds. The slice must not be modified.
func (s *Ts) Times() []float64 { return s.t }

// TimesIn returns a copy of the timestamps converted to unit u.
func (s *Ts) TimesIn(u core.TimeUnit) []float64 { return core.ReturnTimestamps(s.t, u) }

// TimeSupport returns the epochs over which the train is defined.
func (s *Ts) TimeSupport() interval.Set { return s.support }

// Rate returns the mean event rate in Hz over the time support.
// A train with an empty support has rate 0.
func (s *Ts) Rate() float64 { return s.rate() }

// Restrict keeps events inside ep (bounds included). The result's time
// support is ep.
func (s *Ts) Restrict(ep interval.Set) *Ts {
	pos := s.positionsIn(ep)
	t := make([]float64, len(pos))
	for i, p := range pos {
		t[i] = s.t[p]
	}
	return &Ts{index: index{t: t, support: ep}}
}

// Get returns the events with start <= t <= end. The time support is kept.
func (s *Ts) Get(start, end float64) *Ts {
	lo, hi := s.between(start, end)
	return &Ts{index: index{t: append([]float64(nil), s.t[lo:hi]...), support: s.support}}
}

// GetSlice returns the half-open position range of events with
// start <= t < end.
func (s *Ts) GetSlice(start, end float64) (lo, hi int) { return s.slice(start, end) }

// Count bins the events over ep (the time support when ep is empty) and
// returns the counts as a Tsd indexed by bin centers.
func (s *Ts) Count(binSize float64, u core.TimeUnit, ep interval.Set) (*Tsd, error) {
	bin := core.ToSeconds(binSize, u)
	if !(bin > 0) {
		return nil, ErrInvalidBinSize
	}
	if ep.Empty() {
		ep = s.support
	}
	centers, counts := binCounts(s.t, bin, ep)
	return &Tsd{index: index{t: centers, support: ep}, d: counts}, nil
}
