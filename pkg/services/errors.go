package services

import (
	"errors"
	"fmt"
)

// Pipeline failure taxonomy. Every stage surfaces one of these so the handler
// can convert any failure into a single descriptive message.
var (
	// ErrInputFormat: a source could not be parsed into the expected
	// two-column shape, or every row was dropped during numeric coercion.
	ErrInputFormat = errors.New("input could not be parsed into a (year, value) table")

	// ErrNoOverlap: the inner join of the two sources yielded an empty table.
	ErrNoOverlap = errors.New("the two series share no overlapping years")

	// ErrHorizonMismatch: the exogenous forecast length does not match the
	// requested horizon.
	ErrHorizonMismatch = errors.New("exogenous forecast length does not match forecast horizon")
)

// FitError reports that a model failed to fit for the given orders and data length.
type FitError struct {
	Model  string // "ARIMA" or "ARIMAX"
	Reason string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("%s fit failed: %s", e.Model, e.Reason)
}

func newFitError(model, format string, args ...interface{}) *FitError {
	return &FitError{Model: model, Reason: fmt.Sprintf(format, args...)}
}
