package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/group"
	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/internal/logging"
	"github.com/cwbudde/algo-neuro/io/session"
	"github.com/cwbudde/algo-neuro/process/correlogram"
	"github.com/cwbudde/algo-neuro/process/spectrum"
	"github.com/cwbudde/algo-neuro/process/tuning"
	"github.com/cwbudde/algo-neuro/stats/frequency"
	"github.com/cwbudde/algo-neuro/stats/spiketrain"
)

// Run executes analyses in order against sess. It stops at the first
// failing analysis or when ctx is done and returns the results computed so
// far together with the error.
func Run(ctx context.Context, sess *session.Session, analyses []Analysis) ([]Result, error) {
	logger := logging.FromContext(ctx)
	results := make([]Result, 0, len(analyses))

	for _, a := range analyses {
		if err := ctx.Err(); err != nil {
			return results, contextError(err)
		}

		start := time.Now()
		data, err := RunOne(sess, a)
		if err != nil {
			logger.Error("analysis.failed", "session", sess.Name, "analysis", a.Name, "kind", a.Kind, "error", err)
			return results, analysisError(err, a.Name)
		}
		logger.Info("analysis.done", "session", sess.Name, "analysis", a.Name, "kind", a.Kind,
			"elapsed", time.Since(start))

		results = append(results, Result{Session: sess.Name, Analysis: a.Name, Kind: a.Kind, Data: data})
	}
	return results, nil
}

// RunOne executes a single analysis and returns its data payload.
func RunOne(sess *session.Session, a Analysis) (any, error) {
	if err := a.Validate(); err != nil {
		return nil, validationError(fmt.Errorf("analysis %q: %w", a.Name, err))
	}
	if sess == nil || sess.Spikes == nil {
		return nil, fmt.Errorf("%w: session has no spikes", ErrInvalidPipeline)
	}

	u, err := core.ParseTimeUnit(a.TimeUnit)
	if err != nil {
		return nil, err
	}
	ep, hasEp, err := epochOf(sess, a)
	if err != nil {
		return nil, err
	}

	switch a.Kind {
	case KindAutoCorrelogram, KindCrossCorrelogram, KindEventCorrelogram:
		return runCorrelogram(sess, a, u, ep, hasEp)
	case KindPSD, KindMeanPSD:
		return runSpectrum(sess, a, u, ep, hasEp)
	case KindTuningCurve, KindAngularTuningCurve:
		return runTuning(sess, a, ep, hasEp)
	case KindISIStats:
		return runISI(sess, a, u, ep, hasEp)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}
}

func epochOf(sess *session.Session, a Analysis) (interval.Set, bool, error) {
	if a.Epoch == "" {
		return interval.Set{}, false, nil
	}
	ep, err := sess.Epoch(a.Epoch)
	if err != nil {
		return interval.Set{}, false, err
	}
	return ep, true, nil
}

func spikesOf(sess *session.Session, a Analysis) (*group.TsGroup, error) {
	if len(a.Units) == 0 {
		return sess.Spikes, nil
	}
	return sess.Spikes.Subset(a.Units...)
}

func runCorrelogram(sess *session.Session, a Analysis, u core.TimeUnit, ep interval.Set, hasEp bool) (any, error) {
	g, err := spikesOf(sess, a)
	if err != nil {
		return nil, err
	}

	opts := []correlogram.Option{correlogram.WithNorm(a.Norm), correlogram.WithTimeUnit(u)}
	if hasEp {
		opts = append(opts, correlogram.WithEpoch(ep))
	}

	switch a.Kind {
	case KindAutoCorrelogram:
		table, err := correlogram.ComputeAuto(g, a.BinSize, a.WindowSize, opts...)
		if err != nil {
			return nil, err
		}
		return correlogramData(table, strconv.Itoa), nil
	case KindCrossCorrelogram:
		if a.Reverse {
			opts = append(opts, correlogram.WithReverse())
		}
		table, err := correlogram.ComputeCross(g, a.BinSize, a.WindowSize, opts...)
		if err != nil {
			return nil, err
		}
		return correlogramData(table, correlogram.Pair.String), nil
	default:
		ev, err := sess.Spikes.Unit(a.EventUnit)
		if err != nil {
			return nil, fmt.Errorf("event unit: %w", err)
		}
		table, err := correlogram.ComputeEvent(g, ev, a.BinSize, a.WindowSize, opts...)
		if err != nil {
			return nil, err
		}
		return correlogramData(table, strconv.Itoa), nil
	}
}

func correlogramData[K comparable](t *correlogram.Table[K], name func(K) string) *CorrelogramData {
	d := &CorrelogramData{
		Lags:   Series(t.Lags),
		Keys:   make([]string, len(t.Keys)),
		Values: make([]Series, len(t.Values)),
	}
	for i, k := range t.Keys {
		d.Keys[i] = name(k)
	}
	for i, v := range t.Values {
		d.Values[i] = Series(v)
	}
	return d
}

func runSpectrum(sess *session.Session, a Analysis, u core.TimeUnit, ep interval.Set, hasEp bool) (any, error) {
	sig, err := sess.Signal(a.Signal)
	if err != nil {
		return nil, err
	}
	frame := sig.AsFrame(a.Signal)

	opts := []spectrum.Option{spectrum.WithTimeUnit(u)}
	if hasEp {
		opts = append(opts, spectrum.WithEpoch(ep))
	}
	if a.SamplingRate > 0 {
		opts = append(opts, spectrum.WithSamplingRate(a.SamplingRate))
	}
	if a.FFTLength > 0 {
		opts = append(opts, spectrum.WithFFTLength(a.FFTLength))
	}
	if a.FullRange {
		opts = append(opts, spectrum.WithFullRange())
	}
	if a.Normalize {
		opts = append(opts, spectrum.WithNorm())
	}

	var s *spectrum.Spectrum
	if a.Kind == KindMeanPSD {
		opts = append(opts, spectrum.WithOverlap(a.Overlap))
		s, err = spectrum.MeanPowerSpectralDensity(frame, a.IntervalSize, opts...)
	} else {
		s, err = spectrum.PowerSpectralDensity(frame, opts...)
	}
	if err != nil {
		return nil, err
	}

	d := &SpectrumData{
		Freqs:   Series(s.Freqs),
		Columns: s.Columns,
		Power:   make([]Series, len(s.Columns)),
		Stats:   make([]SpectralStats, len(s.Columns)),
	}
	for col := range s.Columns {
		d.Power[col] = Series(s.Power(col))
		st, err := frequency.FromSpectrum(s, col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", s.Columns[col], err)
		}
		d.Stats[col] = spectralStats(st)
	}
	return d, nil
}

func runTuning(sess *session.Session, a Analysis, ep interval.Set, hasEp bool) (any, error) {
	g, err := spikesOf(sess, a)
	if err != nil {
		return nil, err
	}
	feature, err := sess.Signal(a.Feature)
	if err != nil {
		return nil, err
	}

	var opts []tuning.Option
	if hasEp {
		opts = append(opts, tuning.WithEpoch(ep))
	}
	if a.HasMinMax {
		opts = append(opts, tuning.WithMinMax(a.Min, a.Max))
	}

	var tc *tuning.Curves
	if a.Kind == KindAngularTuningCurve {
		if feature, err = tuning.WrapAngles(feature); err != nil {
			return nil, err
		}
		tc, err = tuning.ComputeAngular(g, feature, a.Bins, opts...)
	} else {
		tc, err = tuning.Compute1D(g, feature, a.Bins, opts...)
	}
	if err != nil {
		return nil, err
	}

	infoFeature := feature
	if hasEp {
		infoFeature = feature.Restrict(ep)
	}
	info, err := tuning.MutualInformation(tc, infoFeature)
	if err != nil {
		return nil, err
	}

	smoothed := tc
	switch {
	case a.SmoothWindow > 0:
		smoothed, err = tuning.SmoothAngular(tc, a.SmoothWindow, a.SmoothDeviation)
	case a.SmoothSigma > 0:
		smoothed, err = tuning.Smooth1D(tc, a.SmoothSigma)
	}
	if err != nil {
		return nil, err
	}

	d := &TuningData{
		Centers:     Series(smoothed.Centers),
		Occupancy:   Series(smoothed.Occupancy),
		Units:       smoothed.Keys,
		Curves:      make([]Series, len(smoothed.Keys)),
		Information: make([]UnitInformation, len(smoothed.Keys)),
	}
	for i, k := range smoothed.Keys {
		d.Curves[i] = Series(smoothed.Values[k])
		d.Information[i] = UnitInformation{
			Unit:          k,
			BitsPerSpike:  Number(info[k].BitsPerSpike),
			BitsPerSecond: Number(info[k].BitsPerSecond),
		}
	}
	return d, nil
}

func runISI(sess *session.Session, a Analysis, u core.TimeUnit, ep interval.Set, hasEp bool) (any, error) {
	g, err := spikesOf(sess, a)
	if err != nil {
		return nil, err
	}
	if hasEp {
		g = g.Restrict(ep)
	}

	var opts []spiketrain.Option
	if a.RefractoryPeriod > 0 {
		opts = append(opts, spiketrain.WithRefractoryPeriod(a.RefractoryPeriod, u))
	}
	stats := spiketrain.CalculateGroup(g, opts...)

	d := &ISIData{Units: g.Keys(), Stats: make([]TrainStats, g.Len())}
	for i, k := range d.Units {
		d.Stats[i] = trainStats(stats[k])
	}
	return d, nil
}
