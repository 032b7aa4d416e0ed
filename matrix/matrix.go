// Package matrix implements dense matrices over GF(2^8), the linear
// algebra the Reed-Solomon generator matrix and its submatrix inversions
// are built from.
package matrix

import (
	"github.com/pkg/errors"

	"lukechampine.com/rscode/galois"
)

// ErrShapeMismatch is returned when two matrices have incompatible
// dimensions for the requested operation.
var ErrShapeMismatch = errors.New("matrix: shape mismatch")

// ErrRangeError is returned when a row/column index or submatrix range is
// out of bounds.
var ErrRangeError = errors.New("matrix: index out of range")

// ErrSingular is returned by Invert when the matrix has no inverse.
var ErrSingular = errors.New("matrix: singular matrix")

// Matrix is a dense, row-major matrix of GF(2^8) elements, stored as one
// contiguous buffer with a fixed row stride so that rows are cache-local
// and extractable without an extra allocation per row.
type Matrix struct {
	rows, cols int
	data       []byte // len == rows*cols, row r at data[r*cols : r*cols+cols]
}

// New allocates a zero r x c matrix.
func New(r, c int) (Matrix, error) {
	if r < 1 || c < 1 {
		return Matrix{}, errors.Wrapf(ErrRangeError, "invalid dimensions %dx%d", r, c)
	}
	return Matrix{rows: r, cols: c, data: make([]byte, r*c)}, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) (Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return Matrix{}, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Vandermonde returns the r x c matrix with entry (row,col) = row^col in
// GF(2^8), the row index taken as a field element; it is the basis every
// Reed-Solomon generator matrix is derived from. For r <= 256 every row is
// a distinct evaluation point, so any c of its rows form an invertible
// square matrix.
func Vandermonde(r, c int) (Matrix, error) {
	m, err := New(r, c)
	if err != nil {
		return Matrix{}, err
	}
	for row := 0; row < r; row++ {
		for col := 0; col < c; col++ {
			m.set(row, col, galois.Exp(byte(row), col))
		}
	}
	return m, nil
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

func (m Matrix) checkBounds(r, c int) error {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return errors.Wrapf(ErrRangeError, "index (%d,%d) out of bounds for %dx%d matrix", r, c, m.rows, m.cols)
	}
	return nil
}

// get returns the element at (r,c) without bounds checking, for use by
// this package's own loops where the indices are already known valid by
// construction.
func (m Matrix) get(r, c int) byte {
	return m.data[r*m.cols+c]
}

// set assigns the element at (r,c) without bounds checking; see get.
func (m Matrix) set(r, c int, v byte) {
	m.data[r*m.cols+c] = v
}

// Get returns the element at (r,c), or ErrRangeError if the index is out
// of bounds.
func (m Matrix) Get(r, c int) (byte, error) {
	if err := m.checkBounds(r, c); err != nil {
		return 0, err
	}
	return m.get(r, c), nil
}

// Set assigns the element at (r,c), or returns ErrRangeError if the
// index is out of bounds.
func (m Matrix) Set(r, c int, v byte) error {
	if err := m.checkBounds(r, c); err != nil {
		return err
	}
	m.set(r, c, v)
	return nil
}

// Equals reports whether m and other have identical dimensions and
// elements.
func (m Matrix) Equals(other Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Row returns a fresh copy of row r, length Cols().
func (m Matrix) Row(r int) ([]byte, error) {
	if r < 0 || r >= m.rows {
		return nil, errors.Wrapf(ErrRangeError, "row %d out of bounds for %d rows", r, m.rows)
	}
	out := make([]byte, m.cols)
	copy(out, m.data[r*m.cols:r*m.cols+m.cols])
	return out, nil
}

// SwapRows exchanges rows i and j in place.
func (m Matrix) SwapRows(i, j int) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.rows {
		return errors.Wrapf(ErrRangeError, "row index out of bounds for %d rows", m.rows)
	}
	if i == j {
		return nil
	}
	ri := m.data[i*m.cols : i*m.cols+m.cols]
	rj := m.data[j*m.cols : j*m.cols+m.cols]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
	return nil
}

// Multiply computes m . other, an (m.rows x other.cols) result. Requires
// m.cols == other.rows.
func (m Matrix) Multiply(other Matrix) (Matrix, error) {
	if m.cols != other.rows {
		return Matrix{}, errors.Wrapf(ErrShapeMismatch, "cannot multiply %dx%d by %dx%d", m.rows, m.cols, other.rows, other.cols)
	}
	result, err := New(m.rows, other.cols)
	if err != nil {
		return Matrix{}, err
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			var sum byte
			for i := 0; i < m.cols; i++ {
				sum = galois.Add(sum, galois.Mul(m.get(r, i), other.get(i, c)))
			}
			result.set(r, c, sum)
		}
	}
	return result, nil
}

// Augment returns [m | other], requiring equal row counts.
func (m Matrix) Augment(other Matrix) (Matrix, error) {
	if m.rows != other.rows {
		return Matrix{}, errors.Wrapf(ErrShapeMismatch, "cannot augment %dx%d with %dx%d", m.rows, m.cols, other.rows, other.cols)
	}
	result, err := New(m.rows, m.cols+other.cols)
	if err != nil {
		return Matrix{}, err
	}
	for r := 0; r < m.rows; r++ {
		copy(result.data[r*result.cols:r*result.cols+m.cols], m.data[r*m.cols:r*m.cols+m.cols])
		copy(result.data[r*result.cols+m.cols:r*result.cols+result.cols], other.data[r*other.cols:r*other.cols+other.cols])
	}
	return result, nil
}

// SubMatrix extracts the half-open range [rmin,rmax) x [cmin,cmax).
func (m Matrix) SubMatrix(rmin, cmin, rmax, cmax int) (Matrix, error) {
	if rmin < 0 || cmin < 0 || rmax > m.rows || cmax > m.cols || rmin >= rmax || cmin >= cmax {
		return Matrix{}, errors.Wrapf(ErrRangeError, "invalid submatrix range [%d:%d, %d:%d] of %dx%d", rmin, rmax, cmin, cmax, m.rows, m.cols)
	}
	result, err := New(rmax-rmin, cmax-cmin)
	if err != nil {
		return Matrix{}, err
	}
	for r := rmin; r < rmax; r++ {
		copy(result.data[(r-rmin)*result.cols:(r-rmin)*result.cols+result.cols], m.data[r*m.cols+cmin:r*m.cols+cmax])
	}
	return result, nil
}

// Invert returns m^-1 via Gauss-Jordan elimination. m must be square;
// ErrSingular is returned if no pivot can be found for some column.
func (m Matrix) Invert() (Matrix, error) {
	if m.rows != m.cols {
		return Matrix{}, errors.Wrapf(ErrShapeMismatch, "cannot invert non-square %dx%d matrix", m.rows, m.cols)
	}
	n := m.rows
	ident, err := Identity(n)
	if err != nil {
		return Matrix{}, err
	}
	work, err := m.Augment(ident)
	if err != nil {
		return Matrix{}, err
	}

	for r := 0; r < n; r++ {
		if work.get(r, r) == 0 {
			swapped := false
			for s := r + 1; s < n; s++ {
				if work.get(s, r) != 0 {
					work.SwapRows(r, s)
					swapped = true
					break
				}
			}
			if !swapped {
				return Matrix{}, ErrSingular
			}
		}

		if work.get(r, r) != 1 {
			scale := galois.Div(1, work.get(r, r))
			for c := 0; c < work.cols; c++ {
				work.set(r, c, galois.Mul(work.get(r, c), scale))
			}
		}

		for s := 0; s < n; s++ {
			if s == r {
				continue
			}
			factor := work.get(s, r)
			if factor == 0 {
				continue
			}
			for c := 0; c < work.cols; c++ {
				work.set(s, c, galois.Add(work.get(s, c), galois.Mul(factor, work.get(r, c))))
			}
		}
	}

	return work.SubMatrix(0, n, n, 2*n)
}
