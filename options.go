package discriminant

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Options configures the discriminant estimation
type Options struct {
	// MaxCondition is the largest condition number of the pooled covariance accepted
	// before it is treated as singular.
	MaxCondition float64 `json:"max_condition"`
}

// NewDefaultOptions returns the default estimation options
func NewDefaultOptions() *Options {
	return &Options{
		MaxCondition: mat.ConditionTolerance,
	}
}

// Validate runs basic validation on the options, returning defaults for a nil receiver
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if o.MaxCondition == 0 {
		o.MaxCondition = mat.ConditionTolerance
	}
	if !(o.MaxCondition > 1) {
		return nil, fmt.Errorf("got %g, %w", o.MaxCondition, ErrInvalidMaxCondition)
	}
	return o, nil
}
