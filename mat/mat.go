package mat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch        = errors.New("column size mismatch")
	ErrEmptyArray         = errors.New("empty array")
	ErrUninitializedArray = errors.New("uninitialized array")
	ErrRowOutOfBounds     = errors.New("row is out of bounds")
	ErrNonFinite          = errors.New("non-finite value")
	ErrNotSquare          = errors.New("matrix is not square")
	ErrSingular           = errors.New("matrix is singular")
)

// NewDenseFromArray builds a row major dense matrix from a slice of rows. Every row
// must have the same number of columns.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, expected %d columns but got %d, %w", i, n, len(row), ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if m == 0 || n <= 0 {
		return nil, ErrEmptyArray
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// SelectRows copies the rows of x at the provided indices, in the order given, into a
// new dense matrix.
func SelectRows(x mat.Matrix, idx []int) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrUninitializedArray
	}
	if len(idx) == 0 {
		return nil, ErrEmptyArray
	}
	r, c := x.Dims()

	dst := mat.NewDense(len(idx), c, nil)
	row := make([]float64, c)
	for i, ri := range idx {
		if ri < 0 || ri >= r {
			return nil, fmt.Errorf("row index %d with %d rows, %w", ri, r, ErrRowOutOfBounds)
		}
		mat.Row(row, ri, x)
		dst.SetRow(i, row)
	}
	return dst, nil
}

// CheckFinite returns an error naming the first NaN or infinite element of x in row
// major order.
func CheckFinite(x mat.Matrix) error {
	if x == nil {
		return ErrUninitializedArray
	}
	r, c := x.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := x.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("value %v at row %d column %d, %w", v, i, j, ErrNonFinite)
			}
		}
	}
	return nil
}

// SingularError reports the condition number of a matrix that could not be inverted
type SingularError struct {
	Cond float64
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("condition number %g, %s", e.Cond, ErrSingular)
}

func (e *SingularError) Unwrap() error {
	return ErrSingular
}

// Inverse computes the dense inverse of a square matrix through an LU factorization.
// A matrix that is exactly singular, or whose condition number exceeds maxCond, returns
// a *SingularError and no result.
func Inverse(a mat.Matrix, maxCond float64) (*mat.Dense, error) {
	if a == nil {
		return nil, ErrUninitializedArray
	}
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("got %d rows and %d columns, %w", r, c, ErrNotSquare)
	}

	var lu mat.LU
	lu.Factorize(a)
	cond := lu.Cond()
	if math.IsNaN(cond) || math.IsInf(cond, 0) || cond > maxCond {
		return nil, &SingularError{Cond: cond}
	}

	inv := new(mat.Dense)
	if err := inv.Inverse(a); err != nil {
		var condErr mat.Condition
		if !errors.As(err, &condErr) {
			return nil, err
		}
		if math.IsInf(float64(condErr), 0) || float64(condErr) > maxCond {
			return nil, &SingularError{Cond: float64(condErr)}
		}
	}
	return inv, nil
}
