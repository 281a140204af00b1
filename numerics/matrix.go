// Package numerics provides the dense array containers shared by the
// grid and fields packages: a generic Matrix[T] for arbitrary-typed
// arenas (used for the Cell grid) and FieldMatrix, a gonum-backed
// float64 container for the staggered physical fields.
package numerics

import "fmt"

// Matrix is a row-major dense array addressed by (i, j), i in
// [0, cols) and j in [0, rows). It is the backing arena for any
// non-scalar grid data - most notably the Cell matrix owned by Grid.
type Matrix[T any] struct {
	cols, rows int
	data       []T
}

// NewMatrix allocates a (cols, rows) matrix with every entry set to
// the zero value of T.
func NewMatrix[T any](cols, rows int) *Matrix[T] {
	return &Matrix[T]{cols: cols, rows: rows, data: make([]T, cols*rows)}
}

// NewMatrixFill allocates a (cols, rows) matrix with every entry set
// to fill.
func NewMatrixFill[T any](cols, rows int, fill T) *Matrix[T] {
	m := NewMatrix[T](cols, rows)
	for i := range m.data {
		m.data[i] = fill
	}
	return m
}

// Dims returns (num_cols, num_rows).
func (m *Matrix[T]) Dims() (cols, rows int) { return m.cols, m.rows }

func (m *Matrix[T]) index(i, j int) int {
	if i < 0 || i >= m.cols || j < 0 || j >= m.rows {
		panic(fmt.Sprintf("numerics: index (%d,%d) out of bounds for (%d,%d) matrix", i, j, m.cols, m.rows))
	}
	return i + j*m.cols
}

// At returns the value at (i, j).
func (m *Matrix[T]) At(i, j int) T { return m.data[m.index(i, j)] }

// Set assigns the value at (i, j).
func (m *Matrix[T]) Set(i, j int, v T) { m.data[m.index(i, j)] = v }

// Data returns the raw backing slice in row-major (i + j*cols)
// order, for callers that need bulk access.
func (m *Matrix[T]) Data() []T { return m.data }
