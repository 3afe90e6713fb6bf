package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/cwbudde/algo-neuro/internal/logging"
)

// variablesRoot decodes only the variable blocks so their values can be
// placed in the evaluation context of the analyses.
type variablesRoot struct {
	Variables []*variableBlock `hcl:"variable,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type variableBlock struct {
	Name    string    `hcl:"name,label"`
	Default cty.Value `hcl:"default,optional"`
}

type analysesRoot struct {
	Analyses []*analysisBlock `hcl:"analysis,block"`
}

type analysisBlock struct {
	Name     string  `hcl:"name,label"`
	Kind     string  `hcl:"kind"`
	Epoch    *string `hcl:"epoch,optional"`
	Units    []int   `hcl:"units,optional"`
	TimeUnit *string `hcl:"time_unit,optional"`

	BinSize    *float64 `hcl:"bin_size,optional"`
	WindowSize *float64 `hcl:"window_size,optional"`
	Norm       *bool    `hcl:"norm,optional"`
	Reverse    *bool    `hcl:"reverse,optional"`
	EventUnit  *int     `hcl:"event_unit,optional"`

	Signal       *string  `hcl:"signal,optional"`
	SamplingRate *float64 `hcl:"sampling_rate,optional"`
	FFTLength    *int     `hcl:"fft_length,optional"`
	FullRange    *bool    `hcl:"full_range,optional"`
	Normalize    *bool    `hcl:"normalize,optional"`
	IntervalSize *float64 `hcl:"interval_size,optional"`
	Overlap      *float64 `hcl:"overlap,optional"`

	Feature         *string  `hcl:"feature,optional"`
	Bins            *int     `hcl:"bins,optional"`
	Min             *float64 `hcl:"min,optional"`
	Max             *float64 `hcl:"max,optional"`
	SmoothSigma     *float64 `hcl:"smooth_sigma,optional"`
	SmoothWindow    *int     `hcl:"smooth_window,optional"`
	SmoothDeviation *float64 `hcl:"smooth_deviation,optional"`

	RefractoryPeriod *float64 `hcl:"refractory_period,optional"`
}

// DefaultOverlap is the mean_psd overlap used when none is set.
const DefaultOverlap = 0.25

// LoadFile parses the pipeline file at path. vars override variable
// defaults declared in the file.
func LoadFile(ctx context.Context, path string, vars map[string]cty.Value) ([]Analysis, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decode(ctx, path, file, vars)
}

// Parse parses pipeline source held in memory. filename is used in
// diagnostics only.
func Parse(ctx context.Context, src []byte, filename string, vars map[string]cty.Value) ([]Analysis, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(ctx, filename, file, vars)
}

func decode(ctx context.Context, filename string, file *hcl.File, vars map[string]cty.Value) ([]Analysis, error) {
	logger := logging.FromContext(ctx)

	var vroot variablesRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &vroot); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode variables in %s: %w", filename, diags)
	}

	values := make(map[string]cty.Value, len(vroot.Variables)+len(vars))
	for _, v := range vroot.Variables {
		if _, dup := values[v.Name]; dup {
			return nil, fmt.Errorf("%s: %w: variable %q declared twice", filename, ErrInvalidPipeline, v.Name)
		}
		values[v.Name] = v.Default
	}
	for name, v := range vars {
		if _, ok := values[name]; !ok {
			return nil, fmt.Errorf("%s: %w: variable %q is not declared", filename, ErrInvalidPipeline, name)
		}
		values[name] = v
	}
	for name, v := range values {
		if v.IsNull() {
			return nil, fmt.Errorf("%s: %w: variable %q has no value", filename, ErrInvalidPipeline, name)
		}
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(values)},
	}

	var aroot analysesRoot
	if diags := gohcl.DecodeBody(vroot.Remain, evalCtx, &aroot); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode analyses in %s: %w", filename, diags)
	}

	seen := make(map[string]struct{}, len(aroot.Analyses))
	out := make([]Analysis, 0, len(aroot.Analyses))
	for _, block := range aroot.Analyses {
		if _, dup := seen[block.Name]; dup {
			return nil, fmt.Errorf("%s: %w: analysis %q declared twice", filename, ErrInvalidPipeline, block.Name)
		}
		seen[block.Name] = struct{}{}

		a := block.resolve()
		if err := a.Validate(); err != nil {
			return nil, validationError(fmt.Errorf("%s: analysis %q: %w", filename, a.Name, err))
		}
		out = append(out, a)
	}

	logger.Debug("pipeline.loaded", "file", filename, "variables", len(values), "analyses", len(out))
	return out, nil
}

func (b *analysisBlock) resolve() Analysis {
	a := Analysis{
		Name:             b.Name,
		Kind:             Kind(b.Kind),
		Epoch:            deref(b.Epoch, ""),
		Units:            b.Units,
		TimeUnit:         deref(b.TimeUnit, "s"),
		BinSize:          deref(b.BinSize, 0),
		WindowSize:       deref(b.WindowSize, 0),
		Norm:             deref(b.Norm, true),
		Reverse:          deref(b.Reverse, false),
		EventUnit:        deref(b.EventUnit, 0),
		Signal:           deref(b.Signal, ""),
		SamplingRate:     deref(b.SamplingRate, 0),
		FFTLength:        deref(b.FFTLength, 0),
		FullRange:        deref(b.FullRange, false),
		Normalize:        deref(b.Normalize, false),
		IntervalSize:     deref(b.IntervalSize, 0),
		Overlap:          deref(b.Overlap, DefaultOverlap),
		Feature:          deref(b.Feature, ""),
		Bins:             deref(b.Bins, 0),
		SmoothSigma:      deref(b.SmoothSigma, 0),
		SmoothWindow:     deref(b.SmoothWindow, 0),
		SmoothDeviation:  deref(b.SmoothDeviation, 0),
		RefractoryPeriod: deref(b.RefractoryPeriod, 0),
	}
	if b.Min != nil || b.Max != nil {
		a.HasMinMax = true
		a.Min = deref(b.Min, 0)
		a.Max = deref(b.Max, 0)
	}
	return a
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// ParseVars parses name=value overrides. Values that parse as numbers or
// booleans become numbers or booleans, anything else a string.
func ParseVars(pairs []string) (map[string]cty.Value, error) {
	out := make(map[string]cty.Value, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: variable %q must be name=value", ErrInvalidPipeline, pair)
		}
		raw = strings.TrimSpace(raw)
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			out[name] = cty.NumberFloatVal(f)
		} else if b, err := strconv.ParseBool(raw); err == nil {
			out[name] = cty.BoolVal(b)
		} else {
			out[name] = cty.StringVal(raw)
		}
	}
	return out, nil
}
