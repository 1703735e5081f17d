package vectorize

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Stage functions wrap one of these with
// errors.Is-compatible context via *ConfigError or *StageError; callers
// that only care about the error category match against these directly.
var (
	// ErrInvalidInput indicates the source image itself is unusable
	// (zero dimensions, mismatched pixel buffer length).
	ErrInvalidInput = errors.New("vectorize: invalid input")
	// ErrInvalidParameter indicates a Config field is out of its
	// documented range.
	ErrInvalidParameter = errors.New("vectorize: invalid parameter")
	// ErrNumericFailure indicates a stage's math degenerated (a matrix
	// solve failed, an eigendecomposition did not converge) in a way
	// that could not be locally recovered.
	ErrNumericFailure = errors.New("vectorize: numeric failure")
	// ErrAlgorithmFailure indicates a stage produced no usable output
	// for the whole image (e.g. quantization found zero colors).
	ErrAlgorithmFailure = errors.New("vectorize: algorithm failure")
	// ErrBudgetExceeded indicates the driver's soft time budget elapsed
	// between stages.
	ErrBudgetExceeded = errors.New("vectorize: budget exceeded")
)

// ConfigError reports an out-of-range Config field. Wraps
// ErrInvalidParameter.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vectorize: invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidParameter }

// StageError reports a whole-image failure attributable to one pipeline
// stage. Wraps the supplied sentinel (typically ErrNumericFailure or
// ErrAlgorithmFailure).
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("vectorize: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
