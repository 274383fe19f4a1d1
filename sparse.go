package gridsheet

import (
	"iter"
	"slices"
)

// blockSize is the number of columns held by one storage block.
const blockSize = 32

type sparseBlock[T comparable] [blockSize]T

// sparseRow stores the allocated column blocks of one row. Nil blocks are empty.
type sparseRow[T comparable] struct {
	blocks []*sparseBlock[T]
}

// sparseMatrix maps (row, col) to T without allocating storage for untouched
// regions. Rows are pointers so inserting or removing rows only moves pointers.
type sparseMatrix[T comparable] struct {
	rows []*sparseRow[T]
}

func newSparseMatrix[T comparable]() *sparseMatrix[T] {
	return &sparseMatrix[T]{}
}

func (m *sparseMatrix[T]) get(row, col int) T {
	var zero T
	if row < 0 || col < 0 || row >= len(m.rows) {
		return zero
	}
	r := m.rows[row]
	if r == nil {
		return zero
	}
	b := col / blockSize
	if b >= len(r.blocks) || r.blocks[b] == nil {
		return zero
	}
	return r.blocks[b][col%blockSize]
}

func (m *sparseMatrix[T]) set(row, col int, v T) {
	var zero T
	if v == zero {
		m.delete(row, col)
		return
	}
	if row >= len(m.rows) {
		m.rows = append(m.rows, make([]*sparseRow[T], row+1-len(m.rows))...)
	}
	r := m.rows[row]
	if r == nil {
		r = &sparseRow[T]{}
		m.rows[row] = r
	}
	b := col / blockSize
	if b >= len(r.blocks) {
		r.blocks = append(r.blocks, make([]*sparseBlock[T], b+1-len(r.blocks))...)
	}
	if r.blocks[b] == nil {
		r.blocks[b] = &sparseBlock[T]{}
	}
	r.blocks[b][col%blockSize] = v
}

func (m *sparseMatrix[T]) delete(row, col int) {
	var zero T
	if row < 0 || col < 0 || row >= len(m.rows) || m.rows[row] == nil {
		return
	}
	r := m.rows[row]
	b := col / blockSize
	if b >= len(r.blocks) || r.blocks[b] == nil {
		return
	}
	r.blocks[b][col%blockSize] = zero
}

// clear drops every block.
func (m *sparseMatrix[T]) clear() {
	m.rows = nil
}

// rowLen returns one past the last row that may hold values.
func (m *sparseMatrix[T]) rowLen() int {
	return len(m.rows)
}

// colLen returns one past the last column of row that may hold values.
func (m *sparseMatrix[T]) colLen(row int) int {
	if row < 0 || row >= len(m.rows) || m.rows[row] == nil {
		return 0
	}
	return len(m.rows[row].blocks) * blockSize
}

// all yields the slots of r in row-major order. When includeEmpty is false,
// unallocated rows and blocks and zero slots are skipped without visiting them.
// r must be finite.
func (m *sparseMatrix[T]) all(r RangePosition, includeEmpty bool) iter.Seq2[CellPosition, T] {
	return func(yield func(CellPosition, T) bool) {
		if r.IsEmpty() {
			return
		}
		var zero T
		lastRow := r.EndRow()
		if !includeEmpty {
			lastRow = min(lastRow, len(m.rows)-1)
		}
		for row := r.Row; row <= lastRow; row++ {
			var sr *sparseRow[T]
			if row < len(m.rows) {
				sr = m.rows[row]
			}
			if sr == nil && !includeEmpty {
				continue
			}
			lastCol := r.EndCol()
			if !includeEmpty {
				lastCol = min(lastCol, len(sr.blocks)*blockSize-1)
			}
			for col := r.Col; col <= lastCol; col++ {
				var v T
				if sr != nil {
					b := col / blockSize
					if b < len(sr.blocks) && sr.blocks[b] != nil {
						v = sr.blocks[b][col%blockSize]
					} else if !includeEmpty {
						col = (b+1)*blockSize - 1
						continue
					}
				}
				if v == zero && !includeEmpty {
					continue
				}
				if !yield(CellPosition{Row: row, Col: col}, v) {
					return
				}
			}
		}
	}
}

// allocated yields every non-zero slot in row-major order.
func (m *sparseMatrix[T]) allocated() iter.Seq2[CellPosition, T] {
	return func(yield func(CellPosition, T) bool) {
		var zero T
		for row, sr := range m.rows {
			if sr == nil {
				continue
			}
			for b, blk := range sr.blocks {
				if blk == nil {
					continue
				}
				for i, v := range blk {
					if v == zero {
						continue
					}
					if !yield(CellPosition{Row: row, Col: b*blockSize + i}, v) {
						return
					}
				}
			}
		}
	}
}

// insertRows shifts rows at and below `at` down by count.
func (m *sparseMatrix[T]) insertRows(at, count int) {
	if at >= len(m.rows) {
		return
	}
	m.rows = slices.Insert(m.rows, at, make([]*sparseRow[T], count)...)
}

// deleteRows removes rows [at, at+count) and shifts the rest up.
func (m *sparseMatrix[T]) deleteRows(at, count int) {
	if at >= len(m.rows) {
		return
	}
	m.rows = slices.Delete(m.rows, at, min(at+count, len(m.rows)))
}

// insertColumns shifts columns at and right of `at` by count. Block-aligned
// inserts only move block pointers.
func (m *sparseMatrix[T]) insertColumns(at, count int) {
	var zero T
	for _, sr := range m.rows {
		if sr == nil || at >= len(sr.blocks)*blockSize {
			continue
		}
		if at%blockSize == 0 && count%blockSize == 0 {
			sr.blocks = slices.Insert(sr.blocks, at/blockSize, make([]*sparseBlock[T], count/blockSize)...)
			continue
		}
		width := len(sr.blocks) * blockSize
		for col := width - 1; col >= at; col-- {
			v := sr.at(col)
			if v == zero {
				continue
			}
			sr.put(col+count, v)
			sr.put(col, zero)
		}
	}
}

// deleteColumns removes columns [at, at+count) and shifts the rest left.
func (m *sparseMatrix[T]) deleteColumns(at, count int) {
	var zero T
	for _, sr := range m.rows {
		if sr == nil || at >= len(sr.blocks)*blockSize {
			continue
		}
		if at%blockSize == 0 && count%blockSize == 0 {
			from := at / blockSize
			sr.blocks = slices.Delete(sr.blocks, from, min(from+count/blockSize, len(sr.blocks)))
			continue
		}
		width := len(sr.blocks) * blockSize
		for col := at; col < width; col++ {
			sr.put(col, zero)
			if col+count < width {
				if v := sr.at(col + count); v != zero {
					sr.put(col, v)
				}
			}
		}
	}
}

// clone copies the matrix, duplicating each value with dup.
func (m *sparseMatrix[T]) clone(dup func(T) T) *sparseMatrix[T] {
	c := newSparseMatrix[T]()
	for pos, v := range m.allocated() {
		c.set(pos.Row, pos.Col, dup(v))
	}
	return c
}

func (r *sparseRow[T]) at(col int) T {
	var zero T
	b := col / blockSize
	if b >= len(r.blocks) || r.blocks[b] == nil {
		return zero
	}
	return r.blocks[b][col%blockSize]
}

func (r *sparseRow[T]) put(col int, v T) {
	var zero T
	b := col / blockSize
	if b >= len(r.blocks) {
		if v == zero {
			return
		}
		r.blocks = append(r.blocks, make([]*sparseBlock[T], b+1-len(r.blocks))...)
	}
	if r.blocks[b] == nil {
		if v == zero {
			return
		}
		r.blocks[b] = &sparseBlock[T]{}
	}
	r.blocks[b][col%blockSize] = v
}
