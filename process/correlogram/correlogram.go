package correlogram

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/interval"
)

const lagDecimals = 6

var (
	// ErrNilGroup is returned when a group or event train is nil.
	ErrNilGroup = errors.New("correlogram: unknown format for group")
	// ErrInvalidBinSize is returned when the bin size is not positive.
	ErrInvalidBinSize = errors.New("correlogram: bin size must be > 0")
	// ErrInvalidWindowSize is returned when the window size is not positive.
	ErrInvalidWindowSize = errors.New("correlogram: window size must be > 0")
)

// Pair identifies an ordered (reference, target) pair of units.
type Pair struct {
	Ref    int
	Target int
}

// String renders the pair as "(ref, target)".
func (p Pair) String() string { return fmt.Sprintf("(%d, %d)", p.Ref, p.Target) }

// Table holds correlograms sharing one lag axis, one column per key.
type Table[K comparable] struct {
	Lags   []float64
	Keys   []K
	Values [][]float64
}

// Get returns the correlogram of key k.
func (t *Table[K]) Get(k K) ([]float64, bool) {
	for i, key := range t.Keys {
		if key == k {
			return t.Values[i], true
		}
	}
	return nil, false
}

// LagIndex returns the position of lag (seconds) on the lag axis or -1.
func (t *Table[K]) LagIndex(lag float64) int {
	lag = core.RoundTo(lag, lagDecimals)
	for i, l := range t.Lags {
		if l == lag {
			return i
		}
	}
	return -1
}

// Option configures correlogram computation.
type Option func(*config)

type config struct {
	ep      interval.Set
	hasEp   bool
	norm    bool
	unit    core.TimeUnit
	reverse bool
}

func applyOptions(opts []Option) config {
	cfg := config{norm: true, unit: core.Seconds}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEpoch restricts all trains to ep before counting.
func WithEpoch(ep interval.Set) Option {
	return func(c *config) {
		c.ep = ep
		c.hasEp = true
	}
}

// WithNorm toggles division by the target rate. Enabled by default.
func WithNorm(norm bool) Option {
	return func(c *config) { c.norm = norm }
}

// WithTimeUnit sets the unit of the bin and window sizes.
func WithTimeUnit(u core.TimeUnit) Option {
	return func(c *config) {
		if u.Valid() {
			c.unit = u
		}
	}
}

// WithReverse swaps every cross-correlogram pair to (j, i).
func WithReverse() Option {
	return func(c *config) { c.reverse = true }
}

func (c config) sizes(binSize, windowSize float64) (float64, float64, error) {
	bin := core.ToSeconds(binSize, c.unit)
	win := core.ToSeconds(windowSize, c.unit)
	if !(bin > 0) {
		return 0, 0, ErrInvalidBinSize
	}
	if !(win > 0) {
		return 0, 0, ErrInvalidWindowSize
	}
	return bin, win, nil
}

// CrossCorrelogram counts the events of t2 around every event of t1.
//
// Both slices must be sorted and in seconds. The number of bins is
// floor(2*windowSize/binSize), incremented when even so that one bin is
// centered on zero lag. Counts are divided by len(t1)*binSize.
func CrossCorrelogram(t1, t2 []float64, binSize, windowSize float64) (counts, centers []float64) {
	nbins := int(math.Floor(2 * windowSize / binSize))
	if nbins%2 == 0 {
		nbins++
	}
	w := float64(nbins) / 2 * binSize

	counts = make([]float64, nbins)
	i2 := 0
	for _, t := range t1 {
		lbound := t - w
		for i2 < len(t2) && t2[i2] < lbound {
			i2++
		}
		for i2 > 0 && t2[i2-1] > lbound {
			i2--
		}

		rbound := lbound
		l := i2
		for j := 0; j < nbins; j++ {
			k := 0
			rbound += binSize
			for l < len(t2) && t2[l] < rbound {
				l++
				k++
			}
			counts[j] += float64(k)
		}
	}

	if len(t1) > 0 {
		scale := 1 / (float64(len(t1)) * binSize)
		for j := range counts {
			counts[j] *= scale
		}
	}

	centers = make([]float64, nbins)
	m := -w + binSize/2
	for j := range centers {
		centers[j] = core.RoundTo(m+float64(j)*binSize, lagDecimals)
	}

	return counts, centers
}

func divide(v []float64, by float64) {
	for i := range v {
		v[i] /= by
	}
}
