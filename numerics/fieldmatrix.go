package numerics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FieldMatrix wraps a gonum *mat.Dense with readOnly/name bookkeeping
// plus a handful of chainable helpers, specialized to the (cols, rows)
// addressing the
// staggered grid expects: At/Set take (i, j) with i the column
// (x-index) and j the row (y-index), matching Fields' U(i,j)/V(i,j)
// convention rather than gonum's native row-major (r,c).
type FieldMatrix struct {
	M        *mat.Dense
	cols     int
	rows     int
	readOnly bool
	name     string
}

// NewFieldMatrix allocates a (cols, rows) field, optionally filled
// with fill (defaults to zero).
func NewFieldMatrix(cols, rows int, fill ...float64) FieldMatrix {
	data := make([]float64, cols*rows)
	if len(fill) != 0 {
		for i := range data {
			data[i] = fill[0]
		}
	}
	return FieldMatrix{
		M:    mat.NewDense(rows, cols, data),
		cols: cols,
		rows: rows,
		name: "unnamed - hint: pass a variable name to SetReadOnly()",
	}
}

// Dims returns (num_cols, num_rows).
func (m FieldMatrix) Dims() (cols, rows int) { return m.cols, m.rows }

// At returns U(i,j)-style value at column i, row j.
func (m FieldMatrix) At(i, j int) float64 { return m.M.At(j, i) }

// Set assigns the value at column i, row j.
func (m FieldMatrix) Set(i, j int, v float64) {
	m.checkWritable()
	m.M.Set(j, i, v)
}

// SetReadOnly marks the field immutable; name, if given, is reported
// in the panic message on a subsequent write attempt.
func (m *FieldMatrix) SetReadOnly(name ...string) FieldMatrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

// SetWritable clears the read-only flag.
func (m *FieldMatrix) SetWritable() FieldMatrix {
	m.readOnly = false
	return *m
}

func (m FieldMatrix) checkWritable() {
	if m.readOnly {
		panic(fmt.Sprintf("numerics: attempt to write to a read only field named %q", m.name))
	}
}

// Fill sets every entry to v.
func (m FieldMatrix) Fill(v float64) {
	m.checkWritable()
	raw := m.M.RawMatrix()
	for i := range raw.Data {
		raw.Data[i] = v
	}
}

// Copy returns a deep copy, writable regardless of the receiver's
// read-only flag.
func (m FieldMatrix) Copy() FieldMatrix {
	R := NewFieldMatrix(m.cols, m.rows)
	R.M.Copy(m.M)
	return R
}

// CopyInto copies the receiver's data into dst, which must share
// dimensions.
func (m FieldMatrix) CopyInto(dst FieldMatrix) {
	dst.checkWritable()
	dst.M.Copy(m.M)
}

// Max returns the maximum entry.
func (m FieldMatrix) Max() float64 {
	raw := m.M.RawMatrix().Data
	mx := raw[0]
	for _, v := range raw[1:] {
		if v > mx {
			mx = v
		}
	}
	return mx
}

// MaxAbs returns the maximum absolute value entry - used by the
// convective CFL limit, which bounds dt by dx/|U|_max and dy/|V|_max.
func (m FieldMatrix) MaxAbs() float64 {
	raw := m.M.RawMatrix().Data
	mx := 0.0
	for _, v := range raw {
		if a := absf(v); a > mx {
			mx = a
		}
	}
	return mx
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
