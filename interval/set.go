package interval

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-neuro/core"
)

// Set is a normalized collection of closed intervals [start, end] in seconds.
//
// The zero value is an empty set.
type Set struct {
	starts []float64
	ends   []float64
}

// Option configures Set construction.
type Option func(*config)

type config struct {
	unit core.TimeUnit
	core core.Config
}

// WithTimeUnit declares the unit of the bounds passed to [New].
func WithTimeUnit(u core.TimeUnit) Option {
	return func(c *config) {
		if u.Valid() {
			c.unit = u
		}
	}
}

// WithCoreOptions forwards precision settings to the set.
func WithCoreOptions(opts ...core.Option) Option {
	return func(c *config) {
		c.core = core.ApplyOptions(opts...)
	}
}

// New builds a normalized Set from parallel start and end slices.
//
// Pairs are sorted by start, intervals with end <= start are dropped and
// strictly overlapping intervals are merged. Intervals that only touch
// (end == next start) are kept apart.
func New(starts, ends []float64, opts ...Option) (Set, error) {
	if len(starts) != len(ends) {
		return Set{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(starts), len(ends))
	}
	if core.HasNaN(starts) || core.HasNaN(ends) {
		return Set{}, ErrNaN
	}

	cfg := config{unit: core.Seconds, core: core.DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := cfg.core.RoundAll(core.FormatTimestamps(starts, cfg.unit))
	e := cfg.core.RoundAll(core.FormatTimestamps(ends, cfg.unit))

	return normalize(s, e), nil
}

// Single returns the set holding the one interval [start, end] in seconds.
// An empty set is returned when end <= start.
func Single(start, end float64) Set {
	s, _ := New([]float64{start}, []float64{end})
	return s
}

// MustNew is like [New] but panics on error. Intended for tests and literals.
func MustNew(starts, ends []float64, opts ...Option) Set {
	s, err := New(starts, ends, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

type pair struct{ s, e float64 }

func normalize(starts, ends []float64) Set {
	pairs := make([]pair, 0, len(starts))
	for i := range starts {
		if ends[i] > starts[i] {
			pairs = append(pairs, pair{starts[i], ends[i]})
		}
	}
	if len(pairs) == 0 {
		return Set{}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].s == pairs[j].s {
			return pairs[i].e < pairs[j].e
		}
		return pairs[i].s < pairs[j].s
	})

	out := Set{
		starts: make([]float64, 0, len(pairs)),
		ends:   make([]float64, 0, len(pairs)),
	}
	cur := pairs[0]
	for _, p := range pairs[1:] {
		if p.s < cur.e {
			cur.e = math.Max(cur.e, p.e)
			continue
		}
		out.starts = append(out.starts, cur.s)
		out.ends = append(out.ends, cur.e)
		cur = p
	}
	out.starts = append(out.starts, cur.s)
	out.ends = append(out.ends, cur.e)

	return out
}

// fromSorted wraps already-normalized bounds without copying.
func fromSorted(starts, ends []float64) Set {
	if len(starts) == 0 {
		return Set{}
	}
	return Set{starts: starts, ends: ends}
}

// Len returns the number of intervals.
func (s Set) Len() int { return len(s.starts) }

// Empty reports whether the set holds no interval.
func (s Set) Empty() bool { return len(s.starts) == 0 }

// Start returns the start of interval i in seconds.
func (s Set) Start(i int) float64 { return s.starts[i] }

// End returns the end of interval i in seconds.
func (s Set) End(i int) float64 { return s.ends[i] }

// Starts returns a copy of all starts in seconds.
func (s Set) Starts() []float64 { return append([]float64(nil), s.starts...) }

// Ends returns a copy of all ends in seconds.
func (s Set) Ends() []float64 { return append([]float64(nil), s.ends...) }

// At returns interval i as a one-interval set.
func (s Set) At(i int) Set {
	return Set{starts: []float64{s.starts[i]}, ends: []float64{s.ends[i]}}
}

// Bounds returns the first start and last end. ok is false for an empty set.
func (s Set) Bounds() (start, end float64, ok bool) {
	if s.Empty() {
		return 0, 0, false
	}
	return s.starts[0], s.ends[len(s.ends)-1], true
}

// TotLength returns the summed duration of all intervals in unit u.
func (s Set) TotLength(u core.TimeUnit) float64 {
	total := 0.0
	for i := range s.starts {
		total += s.ends[i] - s.starts[i]
	}
	return core.FromSeconds(total, u)
}

// Durations returns the duration of each interval in seconds.
func (s Set) Durations() []float64 {
	out := make([]float64, len(s.starts))
	for i := range s.starts {
		out[i] = s.ends[i] - s.starts[i]
	}
	return out
}

// Equal reports whether both sets hold the same intervals.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i := range s.starts {
		if s.starts[i] != o.starts[i] || s.ends[i] != o.ends[i] {
			return false
		}
	}
	return true
}

// String renders the set as "[s, e] [s, e] ...".
func (s Set) String() string {
	if s.Empty() {
		return "[]"
	}
	var b strings.Builder
	for i := range s.starts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "[%g, %g]", s.starts[i], s.ends[i])
	}
	return b.String()
}
