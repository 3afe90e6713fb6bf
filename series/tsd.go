package series

import (
	"fmt"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/interval"
)

// Tsd is a sampled one-dimensional signal: one value per timestamp.
type Tsd struct {
	index
	d []float64
}

// NewTsd builds a signal from parallel time and value slices.
func NewTsd(times, values []float64, opts ...Option) (*Tsd, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(times), len(values))
	}
	idx, perm, err := buildIndex(times, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	d := make([]float64, len(perm))
	for i, p := range perm {
		d[i] = values[p]
	}
	return &Tsd{index: idx, d: d}, nil
}

// MustTsd is like [NewTsd] but panics on error.
func MustTsd(times, values []float64, opts ...Option) *Tsd {
	s, err := NewTsd(times, values, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of samples.
func (s *Tsd) Len() int { return len(s.t) }

// Times returns the timestamps in seconds. The slice must not be modified.
func (s *Tsd) Times() []float64 { return s.t }

// Values returns the samples. The slice must not be modified.
func (s *Tsd) Values() []float64 { return s.d }

// TimeSupport returns the epochs over which the signal is defined.
func (s *Tsd) TimeSupport() interval.Set { return s.support }

// Rate returns the mean sampling rate in Hz over the time support.
func (s *Tsd) Rate() float64 { return s.rate() }

// Restrict keeps samples inside ep. The result's time support is ep.
func (s *Tsd) Restrict(ep interval.Set) *Tsd {
	pos := s.positionsIn(ep)
	t := make([]float64, len(pos))
	d := make([]float64, len(pos))
	for i, p := range pos {
		t[i] = s.t[p]
		d[i] = s.d[p]
	}
	return &Tsd{index: index{t: t, support: ep}, d: d}
}

// Get returns the samples with start <= t <= end.
func (s *Tsd) Get(start, end float64) *Tsd {
	lo, hi := s.between(start, end)
	return s.sub(lo, hi)
}

// GetSlice returns the half-open position range of samples with
// start <= t < end.
func (s *Tsd) GetSlice(start, end float64) (lo, hi int) { return s.slice(start, end) }

// Slice returns samples lo..hi-1 with the time support kept.
func (s *Tsd) Slice(lo, hi int) *Tsd { return s.sub(lo, hi) }

func (s *Tsd) sub(lo, hi int) *Tsd {
	return &Tsd{
		index: index{t: append([]float64(nil), s.t[lo:hi]...), support: s.support},
		d:     append([]float64(nil), s.d[lo:hi]...),
	}
}

// ValueFrom samples the signal at every event of ts restricted to the
// signal's time support. Each event takes the value of the closest sample.
func (s *Tsd) ValueFrom(ts *Ts) *Tsd {
	events := ts.Restrict(s.support)
	out := &Tsd{
		index: index{t: append([]float64(nil), events.t...), support: s.support},
		d:     make([]float64, events.Len()),
	}
	if len(s.t) == 0 {
		out.t = out.t[:0]
		out.d = out.d[:0]
		return out
	}
	for i, t := range events.t {
		out.d[i] = s.d[s.nearest(t)]
	}
	return out
}

// Threshold keeps samples strictly above thr, or strictly below when below
// is true. The time support becomes the epochs where the condition holds.
func (s *Tsd) Threshold(thr float64, below bool) *Tsd {
	pass := func(v float64) bool {
		if below {
			return v < thr
		}
		return v > thr
	}

	var t, d, starts, ends []float64
	open := false
	for i, v := range s.d {
		if pass(v) {
			t = append(t, s.t[i])
			d = append(d, v)
			if !open {
				starts = append(starts, s.t[i])
				open = true
			}
			ends = append(ends[:len(starts)-1], s.t[i])
			continue
		}
		open = false
	}

	support, _ := interval.New(starts, ends)
	return &Tsd{index: index{t: t, support: support}, d: d}
}

// AsFrame wraps the signal in a one-column frame named name.
func (s *Tsd) AsFrame(name string) *TsdFrame {
	return &TsdFrame{
		index:   index{t: s.t, support: s.support},
		columns: []string{name},
		d:       [][]float64{s.d},
	}
}

// TimesIn returns a copy of the timestamps converted to unit u.
func (s *Tsd) TimesIn(u core.TimeUnit) []float64 { return core.ReturnTimestamps(s.t, u) }
