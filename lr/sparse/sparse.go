/*
Package sparse stores parser tables as sparse matrices of int32 cells.

A cell may carry a primary value and a shadow value. The primary value is
the one a parser acts on; the shadow value records a competing entry that
lost against the primary one, e.g. the reduce action of a shift/reduce
conflict. Cells are kept sorted in row-major order (coordinate list
encoding), which keeps lookups logarithmic and iteration deterministic.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a sparse rows × cols matrix of int32 cells.
//
//	M := NewIntMatrix(22, 6)
//	M.Put(3, 1, 5)          // cell (3,1) now has primary value 5
//	M.Put(3, 1, -7)         // returns false; -7 becomes the shadow of (3,1)
//	v, ok := M.Primary(3, 1) // 5, true
//
// Cells cannot be removed.
type IntMatrix struct {
	cells []cell
	rows  int
	cols  int
}

type cell struct {
	key       int // row*cols + col
	primary   int32
	shadow    int32
	hasShadow bool
}

// NewIntMatrix creates an empty matrix with the given dimensions.
func NewIntMatrix(rows, cols int) *IntMatrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("sparse.IntMatrix: negative dimension %dx%d", rows, cols))
	}
	return &IntMatrix{rows: rows, cols: cols}
}

// Rows returns the row count.
func (m *IntMatrix) Rows() int {
	return m.rows
}

// Cols returns the column count.
func (m *IntMatrix) Cols() int {
	return m.cols
}

// Count returns the number of occupied cells.
func (m *IntMatrix) Count() int {
	return len(m.cells)
}

// Contains is true if (i,j) is a position within the matrix.
func (m *IntMatrix) Contains(i, j int) bool {
	return i >= 0 && j >= 0 && i < m.rows && j < m.cols
}

// Primary returns the primary value of cell (i,j). The boolean is false for
// empty cells and for positions outside the matrix.
func (m *IntMatrix) Primary(i, j int) (int32, bool) {
	if k, found := m.find(i, j); found {
		return m.cells[k].primary, true
	}
	return 0, false
}

// Shadow returns the value which lost against the primary value of (i,j),
// if any.
func (m *IntMatrix) Shadow(i, j int) (int32, bool) {
	if k, found := m.find(i, j); found && m.cells[k].hasShadow {
		return m.cells[k].shadow, true
	}
	return 0, false
}

// Put enters v into cell (i,j). The first value entered into a cell stays
// primary. A differing later value is kept as the cell's shadow, unless a
// shadow is already present. Put returns false if v did not become or
// equal the primary value.
//
// Put panics if (i,j) is out of range.
func (m *IntMatrix) Put(i, j int, v int32) bool {
	k, found := m.locate(i, j)
	if !found {
		m.insert(k, cell{key: i*m.cols + j, primary: v})
		return true
	}
	c := &m.cells[k]
	if c.primary == v {
		return true
	}
	if !c.hasShadow {
		c.shadow, c.hasShadow = v, true
	}
	return false
}

// Set overwrites the primary value of cell (i,j), leaving any shadow intact.
//
// Set panics if (i,j) is out of range.
func (m *IntMatrix) Set(i, j int, v int32) {
	k, found := m.locate(i, j)
	if !found {
		m.insert(k, cell{key: i*m.cols + j, primary: v})
		return
	}
	m.cells[k].primary = v
}

// Each calls f for every occupied cell in row-major order.
func (m *IntMatrix) Each(f func(i, j int, primary int32)) {
	for _, c := range m.cells {
		f(c.key/m.cols, c.key%m.cols, c.primary)
	}
}

func (m *IntMatrix) locate(i, j int) (int, bool) {
	if !m.Contains(i, j) {
		panic(fmt.Sprintf("sparse.IntMatrix: index (%d,%d) out of range %dx%d", i, j, m.rows, m.cols))
	}
	return m.search(i*m.cols + j)
}

func (m *IntMatrix) find(i, j int) (int, bool) {
	if !m.Contains(i, j) {
		return 0, false
	}
	return m.search(i*m.cols + j)
}

func (m *IntMatrix) search(key int) (int, bool) {
	k := sort.Search(len(m.cells), func(n int) bool {
		return m.cells[n].key >= key
	})
	return k, k < len(m.cells) && m.cells[k].key == key
}

func (m *IntMatrix) insert(at int, c cell) {
	m.cells = append(m.cells, cell{})
	copy(m.cells[at+1:], m.cells[at:])
	m.cells[at] = c
}
