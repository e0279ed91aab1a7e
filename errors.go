package discriminant

import (
	"errors"
	"fmt"
)

var (
	ErrNoTrainingMatrix    = errors.New("no training matrix")
	ErrShapeMismatch       = errors.New("training data shape mismatch")
	ErrNonFinite           = errors.New("training data contains non-finite values")
	ErrDegenerateGroup     = errors.New("degenerate class group")
	ErrSingularCovariance  = errors.New("pooled covariance is singular")
	ErrInvalidMaxCondition = errors.New("max condition must be greater than 1")
)

// ShapeMismatchError reports training data whose labels or rows cannot be aligned.
type ShapeMismatchError struct {
	Rows   int
	Labels int
	Reason string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: %d rows and %d labels, %s", ErrShapeMismatch, e.Rows, e.Labels, e.Reason)
}

func (e *ShapeMismatchError) Unwrap() error {
	return ErrShapeMismatch
}

// DegenerateGroupError identifies the class whose statistics cannot be estimated.
// Index is the row of the class in the coefficient matrix and is -1 when the failure
// is not tied to a single class.
type DegenerateGroupError struct {
	Label  any
	Index  int
	Count  int
	Reason string
}

func (e *DegenerateGroupError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrDegenerateGroup, e.Reason)
	}
	return fmt.Sprintf("%s: class %v at index %d has %d observations, %s", ErrDegenerateGroup, e.Label, e.Index, e.Count, e.Reason)
}

func (e *DegenerateGroupError) Unwrap() error {
	return ErrDegenerateGroup
}

// SingularCovarianceError carries the condition number of the pooled covariance that
// could not be inverted.
type SingularCovarianceError struct {
	Cond     float64
	MaxCond  float64
	Features int
	Dof      int
}

func (e *SingularCovarianceError) Error() string {
	return fmt.Sprintf("%s: condition number %g exceeds %g with %d features and %d degrees of freedom",
		ErrSingularCovariance, e.Cond, e.MaxCond, e.Features, e.Dof)
}

func (e *SingularCovarianceError) Unwrap() error {
	return ErrSingularCovariance
}
