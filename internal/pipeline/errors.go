package pipeline

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeInvalidPipeline = "PIPELINE_INVALID"
	codeAnalysisFailed  = "ANALYSIS_FAILED"
	codeCanceled        = "PIPELINE_CANCELED"
	codeTimeout         = "PIPELINE_TIMEOUT"
)

var (
	// ErrInvalidPipeline is returned for malformed pipeline files.
	ErrInvalidPipeline = errors.New("pipeline: invalid pipeline")
	// ErrUnknownKind is returned when an analysis kind has no runner.
	ErrUnknownKind = errors.New("pipeline: unknown analysis kind")
)

func validationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "pipeline validation failed").
		WithTextCode(codeInvalidPipeline)
}

func analysisError(err error, name string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "analysis "+name+" failed").
		WithTextCode(codeAnalysisFailed)
}

func contextError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "pipeline deadline exceeded").
			WithTextCode(codeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "pipeline cancelled").
			WithTextCode(codeCanceled)
	}
}
