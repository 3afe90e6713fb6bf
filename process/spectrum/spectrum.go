package spectrum

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/dsp/window"
	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/series"
)

const defaultOverlap = 0.25

var (
	// ErrNilSignal is returned when the signal is nil.
	ErrNilSignal = errors.New("spectrum: signal must not be nil")
	// ErrMultipleEpochs is returned when a single-epoch estimate gets zero or
	// several epochs.
	ErrMultipleEpochs = errors.New("spectrum: given epoch (or signal time support) must have length 1")
	// ErrEmptySignal is returned when the epoch holds no sample.
	ErrEmptySignal = errors.New("spectrum: no sample in epoch")
	// ErrInvalidSamplingRate is returned when the sampling rate is not positive.
	ErrInvalidSamplingRate = errors.New("spectrum: sampling rate must be > 0")
	// ErrInvalidFFTLength is returned when an explicit FFT length is not positive.
	ErrInvalidFFTLength = errors.New("spectrum: fft length must be > 0")
	// ErrInvalidOverlap is returned when overlap is outside [0, 1).
	ErrInvalidOverlap = errors.New("spectrum: overlap should be in intervals [0.0, 1.0)")
	// ErrIntervalTooLarge is returned when no epoch can hold one interval.
	ErrIntervalTooLarge = errors.New("spectrum: splitting epochs with interval size generated an empty set, try decreasing the interval size")
	// ErrEmptySlice is returned when a sub-epoch holds no sample.
	ErrEmptySlice = errors.New("spectrum: one interval doesn't have any signal associated, check the epoch or the time support")
)

// Spectrum holds complex FFT bins for every column of a signal.
type Spectrum struct {
	Freqs   []float64
	Columns []string
	Values  [][]complex128 // one slice per column, aligned with Freqs
}

// Magnitude returns |X(f)| of column col.
func (s *Spectrum) Magnitude(col int) []float64 { return Magnitude(s.Values[col]) }

// Power returns |X(f)|^2 of column col.
func (s *Spectrum) Power(col int) []float64 { return Power(s.Values[col]) }

// Option configures spectrum estimation.
type Option func(*config)

type config struct {
	fs        float64
	ep        interval.Set
	hasEp     bool
	fullRange bool
	norm      bool
	n         int
	overlap   float64
	unit      core.TimeUnit
}

func applyOptions(opts []Option) config {
	cfg := config{overlap: defaultOverlap, unit: core.Seconds}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSamplingRate sets the sampling rate in Hz. By default the rate is
// derived from the signal as samples per second of time support.
func WithSamplingRate(fs float64) Option {
	return func(c *config) { c.fs = fs }
}

// WithEpoch selects the epochs to transform instead of the time support.
func WithEpoch(ep interval.Set) Option {
	return func(c *config) {
		c.ep = ep
		c.hasEp = true
	}
}

// WithFullRange keeps negative frequencies.
func WithFullRange() Option {
	return func(c *config) { c.fullRange = true }
}

// WithNorm divides the FFT by the number of samples transformed.
func WithNorm() Option {
	return func(c *config) { c.norm = true }
}

// WithFFTLength crops or zero-pads the signal to n samples.
// Only used by [PowerSpectralDensity].
func WithFFTLength(n int) Option {
	return func(c *config) { c.n = n }
}

// WithOverlap sets the overlap ratio of successive intervals in
// [MeanPowerSpectralDensity]. Default 0.25.
func WithOverlap(overlap float64) Option {
	return func(c *config) { c.overlap = overlap }
}

// WithTimeUnit sets the unit of the interval size of
// [MeanPowerSpectralDensity].
func WithTimeUnit(u core.TimeUnit) Option {
	return func(c *config) {
		if u.Valid() {
			c.unit = u
		}
	}
}

func samplingRate(sig *series.TsdFrame, cfg config) (float64, error) {
	fs := cfg.fs
	if fs == 0 {
		fs = sig.Rate()
	}
	if !(fs > 0) {
		return 0, ErrInvalidSamplingRate
	}
	return fs, nil
}

// PowerSpectralDensity transforms sig over a single epoch.
//
// The epoch is the one given with [WithEpoch] or the signal's time support;
// both must hold exactly one interval.
func PowerSpectralDensity(sig *series.TsdFrame, opts ...Option) (*Spectrum, error) {
	if sig == nil {
		return nil, ErrNilSignal
	}
	cfg := applyOptions(opts)

	ep := sig.TimeSupport()
	if cfg.hasEp {
		ep = cfg.ep
	}
	if ep.Len() != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrMultipleEpochs, ep.Len())
	}
	fs, err := samplingRate(sig, cfg)
	if err != nil {
		return nil, err
	}

	r := sig.Restrict(ep)
	n := r.Len()
	if cfg.n != 0 {
		if cfg.n < 0 {
			return nil, ErrInvalidFFTLength
		}
		n = cfg.n
	}
	if n == 0 {
		return nil, ErrEmptySignal
	}

	eng := newEngine()
	order := sortedOrder(n, cfg.fullRange)
	out := newSpectrum(FFTFreq(n, 1/fs), order, sig.Columns())

	buf := make([]complex128, n)
	for c := 0; c < r.NumColumns(); c++ {
		col := r.Column(c)
		for i := range buf {
			buf[i] = 0
			if i < len(col) {
				buf[i] = complex(col[i], 0)
			}
		}
		bins, err := eng.fft(buf)
		if err != nil {
			return nil, err
		}
		if cfg.norm {
			scale(bins, 1/float64(n))
		}
		out.Values[c] = pick(bins, order)
	}

	return out, nil
}

// MeanPowerSpectralDensity averages FFTs over sub-epochs of intervalSize.
//
// Every epoch (the time support by default) is cut into windows of
// intervalSize advancing by (1-overlap)*intervalSize. All windows are cropped
// to the shortest one, multiplied by a symmetric Hamming window and
// transformed; the FFTs are summed and, with [WithNorm], divided by the
// window length times the number of windows.
func MeanPowerSpectralDensity(sig *series.TsdFrame, intervalSize float64, opts ...Option) (*Spectrum, error) {
	if sig == nil {
		return nil, ErrNilSignal
	}
	cfg := applyOptions(opts)
	if cfg.overlap < 0 || cfg.overlap >= 1 {
		return nil, ErrInvalidOverlap
	}

	ep := sig.TimeSupport()
	if cfg.hasEp {
		ep = cfg.ep
	}
	fs, err := samplingRate(sig, cfg)
	if err != nil {
		return nil, err
	}

	size := core.ToSeconds(intervalSize, cfg.unit)
	longest := 0.0
	for _, d := range ep.Durations() {
		if d > longest {
			longest = d
		}
	}
	if longest < size {
		return nil, fmt.Errorf("%w (interval size %g s)", ErrIntervalTooLarge, size)
	}

	windows, err := ep.OverlapSplit(size, cfg.overlap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntervalTooLarge, err)
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("%w (interval size %g s)", ErrIntervalTooLarge, size)
	}

	type span struct{ lo, hi int }
	spans := make([]span, len(windows))
	n := -1
	for i, w := range windows {
		lo, hi := sig.GetSlice(w[0], w[1])
		spans[i] = span{lo, hi}
		if n < 0 || hi-lo < n {
			n = hi - lo
		}
	}
	if n == 0 {
		return nil, ErrEmptySlice
	}

	ham := window.Generate(window.TypeHamming, n)
	eng := newEngine()
	order := sortedOrder(n, cfg.fullRange)
	out := newSpectrum(FFTFreq(n, 1/fs), order, sig.Columns())

	buf := make([]complex128, n)
	seg := make([]float64, n)
	for c := 0; c < sig.NumColumns(); c++ {
		col := sig.Column(c)
		acc := make([]complex128, n)
		for _, sp := range spans {
			copy(seg, col[sp.lo:sp.lo+n])
			if err := window.ApplyCoefficientsInPlace(seg, ham); err != nil {
				return nil, err
			}
			for i, v := range seg {
				buf[i] = complex(v, 0)
			}
			bins, err := eng.fft(buf)
			if err != nil {
				return nil, err
			}
			for i := range acc {
				acc[i] += bins[i]
			}
		}
		if cfg.norm {
			scale(acc, 1/(float64(n)*float64(len(spans))))
		}
		out.Values[c] = pick(acc, order)
	}

	return out, nil
}

func newSpectrum(freqs []float64, order []int, columns []string) *Spectrum {
	f := make([]float64, len(order))
	for i, k := range order {
		f[i] = freqs[k]
	}
	return &Spectrum{
		Freqs:   f,
		Columns: columns,
		Values:  make([][]complex128, len(columns)),
	}
}

func pick(bins []complex128, order []int) []complex128 {
	out := make([]complex128, len(order))
	for i, k := range order {
		out[i] = bins[k]
	}
	return out
}

func scale(v []complex128, by float64) {
	s := complex(by, 0)
	for i := range v {
		v[i] *= s
	}
}
