package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoRows         = errors.New("no rows")
	ErrNonPositiveDim = errors.New("column dimension must be positive")
	ErrColMismatch    = errors.New("column size mismatch")
)

// NewDenseFromRows copies a slice of rows into a dense row major matrix. Every row must
// have exactly n columns.
func NewDenseFromRows(x [][]float64, n int) (*mat.Dense, error) {
	if n < 1 {
		return nil, fmt.Errorf("got %d, %w", n, ErrNonPositiveDim)
	}
	m := len(x)
	if m == 0 {
		return nil, ErrNoRows
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for i, row := range x {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, expected %d, %w", i, len(row), n, ErrColMismatch)
		}
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}
