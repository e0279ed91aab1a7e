// Package discriminant estimates linear discriminant analysis coefficients. Each class
// is modelled as a multivariate Gaussian sharing a pooled within class covariance, and
// the fit produces one linear function per class whose argmax over classes classifies
// an observation.
package discriminant

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/aouyang1/go-discriminant/group"
	mat_ "github.com/aouyang1/go-discriminant/mat"
	"github.com/aouyang1/go-discriminant/stats"
	"gonum.org/v1/gonum/mat"
)

// LDA fits the training matrix x, one observation per row, against the labels y using
// the default options. The result has one row per distinct label in ascending label
// order. Column 0 is the constant term and the remaining columns are the feature
// weights, so the discriminant score of class i for an observation v is
// W[i,0] + W[i,1:]·v.
func LDA[L cmp.Ordered](x mat.Matrix, y []L) (*mat.Dense, error) {
	model, err := Fit(x, y, nil)
	if err != nil {
		return nil, err
	}
	return model.Coefficients(), nil
}

// Fit estimates the discriminant model with classes derived from the distinct labels of y
func Fit[L cmp.Ordered](x mat.Matrix, y []L, opt *Options) (*Model[L], error) {
	if err := validateTraining(x, y); err != nil {
		return nil, err
	}
	p, err := group.New(y)
	if err != nil {
		return nil, fmt.Errorf("unable to partition labels, %w", err)
	}
	return fit(x, p, opt)
}

// FitWithClasses estimates the discriminant model over an externally supplied set of
// classes. Every class must be represented in y by at least two observations.
func FitWithClasses[L cmp.Ordered](x mat.Matrix, y, classes []L, opt *Options) (*Model[L], error) {
	if err := validateTraining(x, y); err != nil {
		return nil, err
	}
	p, err := group.NewWithClasses(y, classes)
	if err != nil {
		n, _ := x.Dims()
		switch {
		case errors.Is(err, group.ErrUnknownLabel):
			return nil, &ShapeMismatchError{Rows: n, Labels: len(y), Reason: err.Error()}
		case errors.Is(err, group.ErrNoLabels):
			return nil, &DegenerateGroupError{Index: -1, Reason: "no classes supplied"}
		}
		return nil, fmt.Errorf("unable to partition labels, %w", err)
	}
	return fit(x, p, opt)
}

// FitRows is Fit over a slice of observation rows. Rows must all have the same length.
func FitRows[L cmp.Ordered](rows [][]float64, y []L, opt *Options) (*Model[L], error) {
	x, err := mat_.NewDenseFromArray(rows)
	if err != nil {
		return nil, &ShapeMismatchError{Rows: len(rows), Labels: len(y), Reason: err.Error()}
	}
	return Fit(x, y, opt)
}

func validateTraining[L cmp.Ordered](x mat.Matrix, y []L) error {
	if x == nil {
		return ErrNoTrainingMatrix
	}
	n, m := x.Dims()
	if n == 0 || m == 0 {
		return &ShapeMismatchError{Rows: n, Labels: len(y), Reason: "empty training matrix"}
	}
	if len(y) != n {
		return &ShapeMismatchError{Rows: n, Labels: len(y), Reason: "every row needs exactly one label"}
	}
	if err := mat_.CheckFinite(x); err != nil {
		return fmt.Errorf("%w, %w", err, ErrNonFinite)
	}
	return nil
}

func fit[L cmp.Ordered](x mat.Matrix, p *group.Partition[L], opt *Options) (*Model[L], error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	n, m := x.Dims()
	k := p.Len()
	slog.Debug("fitting linear discriminant", "classes", k, "observations", n, "features", m)

	counts := p.Counts()
	for i, count := range counts {
		switch count {
		case 0:
			return nil, &DegenerateGroupError{Label: p.Labels[i], Index: i, Count: count, Reason: "class has no observations"}
		case 1:
			return nil, &DegenerateGroupError{Label: p.Labels[i], Index: i, Count: count, Reason: "covariance is undefined for a single observation"}
		}
	}

	pooled, err := stats.NewPooledCovariance(m, n, k)
	if err != nil {
		return nil, &DegenerateGroupError{Index: -1, Count: n, Reason: err.Error()}
	}

	groups := make([]*stats.Group, k)
	for i, rows := range p.Rows {
		gx, err := mat_.SelectRows(x, rows)
		if err != nil {
			return nil, fmt.Errorf("unable to select rows of class %v, %w", p.Labels[i], err)
		}
		g, err := stats.NewGroup(gx)
		if err != nil {
			return nil, &DegenerateGroupError{Label: p.Labels[i], Index: i, Count: counts[i], Reason: err.Error()}
		}
		if err := pooled.Add(g); err != nil {
			return nil, fmt.Errorf("unable to pool covariance of class %v, %w", p.Labels[i], err)
		}
		groups[i] = g
	}

	inv, err := mat_.Inverse(pooled.Matrix(), opt.MaxCondition)
	if err != nil {
		var singularErr *mat_.SingularError
		if errors.As(err, &singularErr) {
			return nil, &SingularCovarianceError{
				Cond:     singularErr.Cond,
				MaxCond:  opt.MaxCondition,
				Features: m,
				Dof:      n - k,
			}
		}
		return nil, fmt.Errorf("unable to invert pooled covariance, %w", err)
	}

	classes := make([]Class[L], k)
	for i, g := range groups {
		mean := mat.NewVecDense(m, g.Mean)

		// mean^T * inv expressed as inv^T * mean
		var dir mat.VecDense
		dir.MulVec(inv.T(), mean)

		prior := float64(g.Count) / float64(n)
		classes[i] = Class[L]{
			Label:     p.Labels[i],
			Count:     g.Count,
			Prior:     prior,
			Mean:      g.Mean,
			Intercept: -0.5*mat.Dot(&dir, mean) + math.Log(prior),
			Weights:   mat.Col(nil, 0, &dir),
		}
	}

	return &Model[L]{
		Options:      opt,
		Observations: n,
		Features:     m,
		Classes:      classes,
	}, nil
}
