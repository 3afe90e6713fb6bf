// Package pipeline loads analysis definitions from HCL files and runs them
// against a session.
//
// A pipeline file declares variables and named analyses:
//
//	variable "bin" {
//	  default = 0.01
//	}
//
//	analysis "acg_wake" {
//	  kind        = "autocorrelogram"
//	  bin_size    = var.bin
//	  window_size = 1
//	  epoch       = "wake"
//	}
//
// Variables can be overridden at load time. Analyses run in file order.
package pipeline

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind names an analysis.
type Kind string

const (
	KindAutoCorrelogram    Kind = "autocorrelogram"
	KindCrossCorrelogram   Kind = "crosscorrelogram"
	KindEventCorrelogram   Kind = "eventcorrelogram"
	KindPSD                Kind = "psd"
	KindMeanPSD            Kind = "mean_psd"
	KindTuningCurve        Kind = "tuning_curve"
	KindAngularTuningCurve Kind = "angular_tuning_curve"
	KindISIStats           Kind = "isi_stats"
)

// Kinds lists every supported analysis kind.
var Kinds = []Kind{
	KindAutoCorrelogram, KindCrossCorrelogram, KindEventCorrelogram,
	KindPSD, KindMeanPSD,
	KindTuningCurve, KindAngularTuningCurve,
	KindISIStats,
}

func (k Kind) correlogram() bool {
	return k == KindAutoCorrelogram || k == KindCrossCorrelogram || k == KindEventCorrelogram
}

func (k Kind) spectral() bool { return k == KindPSD || k == KindMeanPSD }

func (k Kind) tuning() bool { return k == KindTuningCurve || k == KindAngularTuningCurve }

// Analysis is one resolved analysis definition. Times are expressed in
// TimeUnit.
type Analysis struct {
	Name     string
	Kind     Kind
	Epoch    string // session epoch name; empty means the data time support
	Units    []int  // empty means every unit
	TimeUnit string

	// correlograms
	BinSize    float64
	WindowSize float64
	Norm       bool
	Reverse    bool
	EventUnit  int

	// spectra
	Signal       string
	SamplingRate float64 // 0 means estimated from the signal
	FFTLength    int     // 0 means the signal length
	FullRange    bool
	Normalize    bool
	IntervalSize float64
	Overlap      float64

	// tuning curves
	Feature         string
	Bins            int
	Min, Max        float64
	HasMinMax       bool
	SmoothSigma     float64
	SmoothWindow    int
	SmoothDeviation float64

	// ISI statistics; 0 means spiketrain.DefaultRefractoryPeriod seconds
	RefractoryPeriod float64
}

// Validate checks the fields required by the analysis kind.
func (a Analysis) Validate() error {
	kinds := make([]any, len(Kinds))
	for i, k := range Kinds {
		kinds[i] = k
	}

	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.Kind, validation.Required, validation.In(kinds...)),
		validation.Field(&a.TimeUnit, validation.Required, validation.In("s", "ms", "us")),
		validation.Field(&a.BinSize,
			validation.When(a.Kind.correlogram(), validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&a.WindowSize,
			validation.When(a.Kind.correlogram(), validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&a.Signal, validation.When(a.Kind.spectral(), validation.Required)),
		validation.Field(&a.SamplingRate, validation.Min(0.0)),
		validation.Field(&a.FFTLength, validation.Min(0)),
		validation.Field(&a.IntervalSize,
			validation.When(a.Kind == KindMeanPSD, validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&a.Overlap, validation.Min(0.0), validation.Max(1.0).Exclusive()),
		validation.Field(&a.Feature, validation.When(a.Kind.tuning(), validation.Required)),
		validation.Field(&a.Bins, validation.When(a.Kind.tuning(), validation.Required, validation.Min(1))),
		validation.Field(&a.HasMinMax, validation.When(a.Kind == KindAngularTuningCurve,
			validation.Empty.Error("min and max are fixed to [0, 2*pi] for angular curves"))),
		validation.Field(&a.Max, validation.When(a.HasMinMax, validation.By(func(any) error {
			if a.Max <= a.Min {
				return validation.NewError("validation_max_le_min", fmt.Sprintf("must be greater than min (%g)", a.Min))
			}
			return nil
		}))),
		validation.Field(&a.SmoothSigma, validation.Min(0.0),
			validation.When(a.Kind == KindAngularTuningCurve, validation.Empty.Error("use smooth_window for angular curves"))),
		validation.Field(&a.SmoothWindow, validation.Min(0),
			validation.When(a.Kind != KindAngularTuningCurve, validation.Empty.Error("applies to angular tuning curves only"))),
		validation.Field(&a.SmoothDeviation,
			validation.When(a.SmoothWindow > 0, validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&a.RefractoryPeriod, validation.Min(0.0)),
	)
}
