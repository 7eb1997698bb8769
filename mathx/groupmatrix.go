package mathx

import "github.com/streetU/crypto-primitives/ccerrors"

// GroupMatrix is a non-empty rectangular table of Sized values: every
// row has the same width, every entry shares an element-size.
// Internally rows are stored row-major; Column/Transpose/flatten
// helpers give the column-major and linearised views the mixnet
// package needs (spec §2.3: "slicing, append/prepend column,
// transpose, flat/row/column streams").
type GroupMatrix[T Sized] struct {
	rows [][]T
	size int
}

// NewGroupMatrix validates rectangularity and uniform element-size,
// then wraps rows. At least one row and one column are required.
func NewGroupMatrix[T Sized](rows [][]T) (GroupMatrix[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return GroupMatrix[T]{}, ccerrors.New(ccerrors.InvalidInput, "matrix must have at least one row and one column")
	}
	width := len(rows[0])
	size := rows[0][0].ElementSize()
	cp := make([][]T, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return GroupMatrix[T]{}, ccerrors.New(ccerrors.ShapeError, "row %d has width %d, expected %d", i, len(row), width)
		}
		cp[i] = make([]T, width)
		for j, e := range row {
			if e.ElementSize() != size {
				return GroupMatrix[T]{}, ccerrors.New(ccerrors.ShapeError, "entry (%d,%d) has element-size %d, expected %d", i, j, e.ElementSize(), size)
			}
			cp[i][j] = e
		}
	}
	return GroupMatrix[T]{rows: cp, size: size}, nil
}

// NumRows returns the row count m.
func (m GroupMatrix[T]) NumRows() int { return len(m.rows) }

// NumColumns returns the column count n.
func (m GroupMatrix[T]) NumColumns() int {
	if len(m.rows) == 0 {
		return 0
	}
	return len(m.rows[0])
}

// ElementSize returns the shared per-entry size.
func (m GroupMatrix[T]) ElementSize() int { return m.size }

// Get returns entry (i, j), range-checked.
func (m GroupMatrix[T]) Get(i, j int) (T, error) {
	var zero T
	if i < 0 || i >= m.NumRows() || j < 0 || j >= m.NumColumns() {
		return zero, ccerrors.New(ccerrors.InvalidInput, "index (%d,%d) out of range", i, j)
	}
	return m.rows[i][j], nil
}

// Row returns the i-th row as a GroupVector.
func (m GroupMatrix[T]) Row(i int) (GroupVector[T], error) {
	if i < 0 || i >= m.NumRows() {
		return GroupVector[T]{}, ccerrors.New(ccerrors.InvalidInput, "row index %d out of range", i)
	}
	return NewGroupVector(m.rows[i])
}

// Column returns the j-th column as a GroupVector.
func (m GroupMatrix[T]) Column(j int) (GroupVector[T], error) {
	if j < 0 || j >= m.NumColumns() {
		return GroupVector[T]{}, ccerrors.New(ccerrors.InvalidInput, "column index %d out of range", j)
	}
	col := make([]T, m.NumRows())
	for i := range m.rows {
		col[i] = m.rows[i][j]
	}
	return NewGroupVector(col)
}

// Transpose returns the n x m transpose of an m x n matrix.
func (m GroupMatrix[T]) Transpose() (GroupMatrix[T], error) {
	out := make([][]T, m.NumColumns())
	for j := range out {
		out[j] = make([]T, m.NumRows())
		for i := 0; i < m.NumRows(); i++ {
			out[j][i] = m.rows[i][j]
		}
	}
	return NewGroupMatrix(out)
}

// FlattenByColumn returns all entries read column by column, top to
// bottom within each column (the layout the Bayer-Groth commitment
// scheme commits column-wise).
func (m GroupMatrix[T]) FlattenByColumn() []T {
	out := make([]T, 0, m.NumRows()*m.NumColumns())
	for j := 0; j < m.NumColumns(); j++ {
		for i := 0; i < m.NumRows(); i++ {
			out = append(out, m.rows[i][j])
		}
	}
	return out
}

// FlattenByRow returns all entries read row by row.
func (m GroupMatrix[T]) FlattenByRow() []T {
	out := make([]T, 0, m.NumRows()*m.NumColumns())
	for i := 0; i < m.NumRows(); i++ {
		out = append(out, m.rows[i]...)
	}
	return out
}

// MatrixFromColumns builds an m x n matrix from n columns of length m
// (the natural shape to build in, since the shuffle argument commits
// column-wise).
func MatrixFromColumns[T Sized](columns [][]T) (GroupMatrix[T], error) {
	if len(columns) == 0 {
		return GroupMatrix[T]{}, ccerrors.New(ccerrors.InvalidInput, "need at least one column")
	}
	m := len(columns[0])
	rows := make([][]T, m)
	for i := 0; i < m; i++ {
		rows[i] = make([]T, len(columns))
	}
	for j, col := range columns {
		if len(col) != m {
			return GroupMatrix[T]{}, ccerrors.New(ccerrors.ShapeError, "column %d has length %d, expected %d", j, len(col), m)
		}
		for i, e := range col {
			rows[i][j] = e
		}
	}
	return NewGroupMatrix(rows)
}

// VectorToMatrix reshapes a length-m*n vector into an m x n matrix,
// filling column-major (the layout spec §2 describes for reshaping
// the permutation-derived exponent vector a into an m x n matrix).
func VectorToMatrix[T Sized](v GroupVector[T], m, n int) (GroupMatrix[T], error) {
	if v.Len() != m*n {
		return GroupMatrix[T]{}, ccerrors.New(ccerrors.ShapeError, "vector of length %d cannot reshape to %dx%d", v.Len(), m, n)
	}
	elems := v.ToSlice()
	columns := make([][]T, n)
	for j := 0; j < n; j++ {
		columns[j] = make([]T, m)
		for i := 0; i < m; i++ {
			columns[j][i] = elems[j*m+i]
		}
	}
	return MatrixFromColumns(columns)
}
