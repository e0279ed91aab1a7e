package simulate

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrLenMismatch         = errors.New("means, counts and labels must have the same length")
	ErrDimMismatch         = errors.New("mean length does not match covariance dimension")
	ErrNotPositiveDefinite = errors.New("covariance is not positive definite")
	ErrNegativeCount       = errors.New("negative class count")
)

// NewRand returns a deterministic random generator for the seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Classes draws counts[i] observations from a multivariate normal centered on means[i]
// with a covariance shared by every class, labelled labels[i]. Rows are emitted class by
// class in the order given.
func Classes[L cmp.Ordered](rng *rand.Rand, means [][]float64, cov mat.Symmetric, counts []int, labels []L) (*mat.Dense, []L, error) {
	if len(means) != len(counts) || len(means) != len(labels) {
		return nil, nil, fmt.Errorf("got %d means, %d counts and %d labels, %w", len(means), len(counts), len(labels), ErrLenMismatch)
	}
	m := cov.SymmetricDim()

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, nil, ErrNotPositiveDefinite
	}
	var lower mat.TriDense
	chol.LTo(&lower)

	total := 0
	for i, count := range counts {
		if count < 0 {
			return nil, nil, fmt.Errorf("class %d has count %d, %w", i, count, ErrNegativeCount)
		}
		if len(means[i]) != m {
			return nil, nil, fmt.Errorf("class %d has mean length %d with %d features, %w", i, len(means[i]), m, ErrDimMismatch)
		}
		total += count
	}

	x := mat.NewDense(total, m, nil)
	y := make([]L, 0, total)

	z := mat.NewVecDense(m, nil)
	var obs mat.VecDense
	row := 0
	for i, count := range counts {
		mu := mat.NewVecDense(m, means[i])
		for c := 0; c < count; c++ {
			for j := 0; j < m; j++ {
				z.SetVec(j, rng.NormFloat64())
			}
			obs.MulVec(&lower, z)
			obs.AddVec(&obs, mu)
			x.SetRow(row, obs.RawVector().Data)
			y = append(y, labels[i])
			row++
		}
	}
	return x, y, nil
}

// ScaleColumns multiplies every column j of x by scale[j] in place
func ScaleColumns(x *mat.Dense, scale []float64) *mat.Dense {
	r, c := x.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x.Set(i, j, x.At(i, j)*scale[j])
		}
	}
	return x
}
