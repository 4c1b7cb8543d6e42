package poly

import "koalabear-perm/pkg/field"

// Matrix is a dense row-major matrix.
type Matrix [][]field.Element

// NewMatrix returns a rows x cols zero matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]field.Element, cols)
	}
	return m
}

// MatrixOf returns the n x n matrix of the linear map f, column j being f
// applied to the j-th unit vector. f works in place.
func MatrixOf(f func([]field.Element), n int) Matrix {
	m := NewMatrix(n, n)
	for j := 0; j < n; j++ {
		col := make([]field.Element, n)
		col[j].SetOne()
		f(col)
		for i := 0; i < n; i++ {
			m[i][j] = col[i]
		}
	}
	return m
}

// MulVec returns m * v.
func (m Matrix) MulVec(v []field.Element) []field.Element {
	out := make([]field.Element, len(m))
	var t field.Element
	for i, row := range m {
		for j := range row {
			t.Mul(&row[j], &v[j])
			out[i].Add(&out[i], &t)
		}
	}
	return out
}

// Submatrix returns the matrix restricted to the given rows and columns.
func (m Matrix) Submatrix(rows, cols []int) Matrix {
	s := NewMatrix(len(rows), len(cols))
	for i, r := range rows {
		for j, c := range cols {
			s[i][j] = m[r][c]
		}
	}
	return s
}

// Determinant computes the determinant of a square matrix by Gaussian
// elimination. m is not modified.
func (m Matrix) Determinant() field.Element {
	n := len(m)
	a := NewMatrix(n, n)
	for i := range m {
		copy(a[i], m[i])
	}

	det := field.FromCanonical(1)
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if !a[r][col].IsZero() {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return field.Element{}
		}
		if pivot != col {
			a[pivot], a[col] = a[col], a[pivot]
			det.Neg(&det)
		}
		det.Mul(&det, &a[col][col])

		inv := field.Inverse(a[col][col])
		for r := col + 1; r < n; r++ {
			if a[r][col].IsZero() {
				continue
			}
			var factor, t field.Element
			factor.Mul(&a[r][col], &inv)
			for c := col; c < n; c++ {
				t.Mul(&factor, &a[col][c])
				a[r][c].Sub(&a[r][c], &t)
			}
		}
	}
	return det
}

// Combinations calls fn with every k-subset of {0..n-1} in lexicographic
// order. The slice passed to fn is reused between calls.
func Combinations(n, k int, fn func([]int)) {
	if k > n || k < 0 {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
