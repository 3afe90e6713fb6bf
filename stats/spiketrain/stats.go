// Package spiketrain summarizes the inter-spike interval (ISI) distribution
// of spike trains.
//
// Intervals are only formed between consecutive spikes of the same time
// support interval, so gaps between epochs never count as ISIs.
package spiketrain

import (
	"math"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/group"
	"github.com/cwbudde/algo-neuro/series"
)

// DefaultRefractoryPeriod is the ISI below which a spike pair counts as a
// refractory violation, in seconds.
const DefaultRefractoryPeriod = 0.002

// Stats holds spike train statistics. ISI fields are zero when the train has
// fewer than two spikes in one support interval.
type Stats struct {
	Count    int
	Duration float64 // seconds of time support
	Rate     float64 // Count / Duration (Hz)

	ISICount int
	MeanISI  float64
	StdISI   float64 // population standard deviation
	MinISI   float64
	MaxISI   float64
	CV       float64 // StdISI / MeanISI
	LV       float64 // local variation of successive ISIs
	Skewness float64

	RefractoryViolations int
	RefractoryFraction   float64 // violations / ISICount
}

// Option configures spike train statistics.
type Option func(*config)

type config struct {
	refractory float64
}

func applyOptions(opts []Option) config {
	cfg := config{refractory: DefaultRefractoryPeriod}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithRefractoryPeriod sets the refractory threshold.
func WithRefractoryPeriod(period float64, u core.TimeUnit) Option {
	return func(c *config) {
		if period >= 0 {
			c.refractory = core.ToSeconds(period, u)
		}
	}
}

// Calculate computes the statistics of ts over its time support.
func Calculate(ts *series.Ts, opts ...Option) Stats {
	s := NewStreamingStats(opts...)
	if ts == nil {
		return s.Result(0)
	}

	sup := ts.TimeSupport()
	times := ts.Times()
	which := sup.InInterval(times)
	last := -1
	for i := 0; i < len(times); {
		j := i
		for j < len(times) && which[j] == which[i] {
			j++
		}
		if which[i] >= 0 {
			if last >= 0 && which[i] != last {
				s.Break()
			}
			s.Update(times[i:j])
			last = which[i]
		}
		i = j
	}

	return s.Result(sup.TotLength(core.Seconds))
}

// CalculateTimes computes the statistics of sorted spike times in seconds
// forming a single interval from the first to the last spike.
func CalculateTimes(times []float64, opts ...Option) Stats {
	s := NewStreamingStats(opts...)
	s.Update(times)
	duration := 0.0
	if len(times) > 1 {
		duration = times[len(times)-1] - times[0]
	}
	return s.Result(duration)
}

// CalculateGroup computes the statistics of every unit of g.
func CalculateGroup(g *group.TsGroup, opts ...Option) map[int]Stats {
	if g == nil {
		return nil
	}
	out := make(map[int]Stats, g.Len())
	for _, k := range g.Keys() {
		unit, err := g.Unit(k)
		if err != nil {
			continue
		}
		out[k] = Calculate(unit, opts...)
	}
	return out
}

// StreamingStats accumulates ISI statistics incrementally across blocks of
// sorted spike times.
type StreamingStats struct {
	cfg config

	spikes int
	n      int
	mean   float64
	m2     float64
	m3     float64
	min    float64
	max    float64

	lvSum   float64
	lvPairs int

	violations int

	hasLast bool
	last    float64
	prevISI float64
	hasPrev bool
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats(opts ...Option) *StreamingStats {
	return &StreamingStats{cfg: applyOptions(opts)}
}

// Update adds a block of spike times that follow every time seen so far.
func (s *StreamingStats) Update(times []float64) {
	for _, t := range times {
		s.spikes++
		if s.hasLast {
			s.addISI(t - s.last)
		}
		s.last = t
		s.hasLast = true
	}
}

// Break marks an epoch boundary: the next spike does not form an ISI with
// the previous one.
func (s *StreamingStats) Break() {
	s.hasLast = false
	s.hasPrev = false
}

func (s *StreamingStats) addISI(x float64) {
	s.n++
	ni := float64(s.n)

	// Welford update; M3 before M2.
	delta := x - s.mean
	deltaN := delta / ni
	term1 := delta * deltaN * float64(s.n-1)
	s.m3 += term1*deltaN*(ni-2) - 3*deltaN*s.m2
	s.m2 += term1
	s.mean += deltaN

	if s.n == 1 || x < s.min {
		s.min = x
	}
	if s.n == 1 || x > s.max {
		s.max = x
	}

	if x < s.cfg.refractory {
		s.violations++
	}

	if s.hasPrev {
		if sum := s.prevISI + x; sum > 0 {
			d := (s.prevISI - x) / sum
			s.lvSum += 3 * d * d
			s.lvPairs++
		}
	}
	s.prevISI = x
	s.hasPrev = true
}

// Result computes the final statistics. duration is the observation time in
// seconds used for the firing rate.
func (s *StreamingStats) Result(duration float64) Stats {
	out := Stats{
		Count:                s.spikes,
		Duration:             duration,
		ISICount:             s.n,
		RefractoryViolations: s.violations,
	}
	if duration > 0 {
		out.Rate = float64(s.spikes) / duration
	}
	if s.n == 0 {
		return out
	}

	nf := float64(s.n)
	variance := s.m2 / nf
	out.MeanISI = s.mean
	out.StdISI = math.Sqrt(variance)
	out.MinISI = s.min
	out.MaxISI = s.max
	out.RefractoryFraction = float64(s.violations) / nf
	if s.mean > 0 {
		out.CV = out.StdISI / s.mean
	}
	if variance > 0 {
		out.Skewness = (s.m3 / nf) / (variance * math.Sqrt(variance))
	}
	if s.lvPairs > 0 {
		out.LV = s.lvSum / float64(s.lvPairs)
	}
	return out
}

// Reset clears all accumulated data, keeping the options.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{cfg: s.cfg}
}
