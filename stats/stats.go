package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoMatrix            = errors.New("no matrix")
	ErrInsufficientRows    = errors.New("need at least 2 rows to compute an unbiased covariance")
	ErrNoDegreesOfFreedom  = errors.New("number of observations must exceed the number of groups")
	ErrFeatureLenMismatch  = errors.New("group feature length does not match pooled covariance")
	ErrGroupCountExhausted = errors.New("more groups added than declared")
)

// ColumnMeans returns the arithmetic mean of every column of x
func ColumnMeans(x mat.Matrix) []float64 {
	_, c := x.Dims()
	means := make([]float64, c)
	for j := 0; j < c; j++ {
		means[j] = stat.Mean(mat.Col(nil, j, x), nil)
	}
	return means
}

// Group holds the sample statistics of the observations belonging to a single class
type Group struct {
	Count int
	Mean  []float64
	Cov   *mat.SymDense
}

// NewGroup computes the row count, column means and unbiased sample covariance of x where
// each row is an observation.
func NewGroup(x mat.Matrix) (*Group, error) {
	if x == nil {
		return nil, ErrNoMatrix
	}
	r, c := x.Dims()
	if r < 2 {
		return nil, fmt.Errorf("got %d rows, %w", r, ErrInsufficientRows)
	}

	cov := mat.NewSymDense(c, nil)
	stat.CovarianceMatrix(cov, x, nil)

	return &Group{
		Count: r,
		Mean:  ColumnMeans(x),
		Cov:   cov,
	}, nil
}

// PooledCovariance accumulates the within group covariance of k groups drawn from n total
// observations. Each group contributes its covariance weighted by (count-1)/(n-k).
type PooledCovariance struct {
	n     int
	k     int
	added int
	cov   *mat.SymDense
}

// NewPooledCovariance initializes an m by m accumulator for k groups over n observations
func NewPooledCovariance(m, n, k int) (*PooledCovariance, error) {
	if n-k <= 0 {
		return nil, fmt.Errorf("got %d observations and %d groups, %w", n, k, ErrNoDegreesOfFreedom)
	}
	return &PooledCovariance{
		n:   n,
		k:   k,
		cov: mat.NewSymDense(m, nil),
	}, nil
}

// Add accumulates the group covariance. Groups are summed in the order they are added.
func (p *PooledCovariance) Add(g *Group) error {
	if p.added >= p.k {
		return fmt.Errorf("declared %d groups, %w", p.k, ErrGroupCountExhausted)
	}
	m := p.cov.SymmetricDim()
	if gm := g.Cov.SymmetricDim(); gm != m {
		return fmt.Errorf("group has %d features, pooled covariance has %d, %w", gm, m, ErrFeatureLenMismatch)
	}

	weight := float64(g.Count-1) / float64(p.n-p.k)

	var scaled mat.SymDense
	scaled.ScaleSym(weight, g.Cov)
	p.cov.AddSym(p.cov, &scaled)
	p.added++
	return nil
}

// Matrix returns a copy of the accumulated pooled covariance
func (p *PooledCovariance) Matrix() *mat.SymDense {
	out := mat.NewSymDense(p.cov.SymmetricDim(), nil)
	out.CopySym(p.cov)
	return out
}
