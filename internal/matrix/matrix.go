// Package matrix implements a sparse, jagged, immutable 2D grid.
package matrix

import (
	"iter"
	"slices"

	"grider/internal/point"
)

// slot is a single matrix position. A slot with ok == false is a hole.
type slot[T any] struct {
	value T
	ok    bool
}

// Matrix is a sparse grid of T. Rows may differ in length and may contain
// holes, which are distinct from present zero values. Every operation
// returns a new Matrix and leaves its receiver untouched.
type Matrix[T any] struct {
	rows [][]slot[T]
}

// Size is the rectangular view of a matrix.
type Size struct {
	Rows    int
	Columns int
}

// Has reports whether p lies inside the rectangle described by s.
func (s Size) Has(p point.Point) bool {
	return p.Row >= 0 && p.Column >= 0 && p.Row < s.Rows && p.Column < s.Columns
}

// Empty reports whether s has no cells.
func (s Size) Empty() bool {
	return s.Rows == 0 || s.Columns == 0
}

// CreateEmpty returns a rows×columns matrix made only of holes.
func CreateEmpty[T any](rows, columns int) Matrix[T] {
	m := Matrix[T]{rows: make([][]slot[T], rows)}
	for i := range m.rows {
		m.rows[i] = make([]slot[T], columns)
	}
	return m
}

// From builds a matrix whose every slot is present.
func From[T any](rows [][]T) Matrix[T] {
	m := Matrix[T]{rows: make([][]slot[T], len(rows))}
	for r, row := range rows {
		m.rows[r] = make([]slot[T], len(row))
		for c, v := range row {
			m.rows[r][c] = slot[T]{value: v, ok: true}
		}
	}
	return m
}

// Get returns the value at p. Points outside the matrix and holes report false.
func (m Matrix[T]) Get(p point.Point) (T, bool) {
	var zero T
	if p.Row < 0 || p.Column < 0 || p.Row >= len(m.rows) || p.Column >= len(m.rows[p.Row]) {
		return zero, false
	}
	s := m.rows[p.Row][p.Column]
	return s.value, s.ok
}

// Has reports whether a value is present at p.
func (m Matrix[T]) Has(p point.Point) bool {
	_, ok := m.Get(p)
	return ok
}

// Set returns a copy of m with v stored at p, growing rows and columns as
// needed. Only the touched row is copied.
func (m Matrix[T]) Set(p point.Point, v T) Matrix[T] {
	if p.Row < 0 || p.Column < 0 {
		return m
	}
	rows := slices.Clone(m.rows)
	for len(rows) <= p.Row {
		rows = append(rows, nil)
	}
	row := slices.Clone(rows[p.Row])
	for len(row) <= p.Column {
		row = append(row, slot[T]{})
	}
	row[p.Column] = slot[T]{value: v, ok: true}
	rows[p.Row] = row
	return Matrix[T]{rows: rows}
}

// Unset returns a copy of m with a hole at p. m is returned as is when p is
// already a hole or out of bounds.
func (m Matrix[T]) Unset(p point.Point) Matrix[T] {
	if !m.Has(p) {
		return m
	}
	rows := slices.Clone(m.rows)
	row := slices.Clone(rows[p.Row])
	row[p.Column] = slot[T]{}
	rows[p.Row] = row
	return Matrix[T]{rows: rows}
}

// Size scans m: rows is the row count, columns the longest row.
func (m Matrix[T]) Size() Size {
	columns := 0
	for _, row := range m.rows {
		columns = max(columns, len(row))
	}
	return Size{Rows: len(m.rows), Columns: columns}
}

// Slice extracts the rectangle between start and end (inclusive), re-indexed
// from the origin. Holes and out of bounds positions stay holes.
func (m Matrix[T]) Slice(start, end point.Point) Matrix[T] {
	r := point.NewRange(start, end)
	out := CreateEmpty[T](r.Rows(), r.Columns())
	for p := range r.Points() {
		if v, ok := m.Get(p); ok {
			d := p.Sub(r.Start)
			out.rows[d.Row][d.Column] = slot[T]{value: v, ok: true}
		}
	}
	return out
}

// Pad grows m to at least rows×columns with holes. Existing values and
// longer rows are kept.
func (m Matrix[T]) Pad(rows, columns int) Matrix[T] {
	size := m.Size()
	if size.Rows >= rows && size.Columns >= columns {
		return m
	}
	out := make([][]slot[T], max(len(m.rows), rows))
	for r := range out {
		var row []slot[T]
		if r < len(m.rows) {
			row = m.rows[r]
		}
		width := max(len(row), columns)
		padded := make([]slot[T], width)
		copy(padded, row)
		out[r] = padded
	}
	return Matrix[T]{rows: out}
}

// Entries yields every present value of m in row-major order.
func (m Matrix[T]) Entries() iter.Seq2[point.Point, T] {
	return func(yield func(point.Point, T) bool) {
		for r, row := range m.rows {
			for c, s := range row {
				if !s.ok {
					continue
				}
				if !yield(point.Point{Row: r, Column: c}, s.value) {
					return
				}
			}
		}
	}
}

// Map transforms every present value of m, keeping holes and shape.
func Map[T, U any](m Matrix[T], fn func(point.Point, T) U) Matrix[U] {
	out := Matrix[U]{rows: make([][]slot[U], len(m.rows))}
	for r, row := range m.rows {
		out.rows[r] = make([]slot[U], len(row))
		for c, s := range row {
			if s.ok {
				out.rows[r][c] = slot[U]{value: fn(point.Point{Row: r, Column: c}, s.value), ok: true}
			}
		}
	}
	return out
}

// Rows returns m as nested slices; holes become the zero value of T.
func (m Matrix[T]) Rows() [][]T {
	out := make([][]T, len(m.rows))
	for r, row := range m.rows {
		out[r] = make([]T, len(row))
		for c, s := range row {
			out[r][c] = s.value
		}
	}
	return out
}
