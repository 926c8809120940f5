// Package pointmap provides copy-on-write containers keyed by point.Point.
package pointmap

import (
	"iter"
	"maps"
	"slices"

	"grider/internal/point"
)

// Map associates values with points. Values are stored by row, then by
// column. A Map is never modified after construction: Set and Delete return
// a new Map sharing the untouched rows.
type Map[T any] struct {
	rows map[int]map[int]T
	size int
}

// From builds a Map from entries. Later entries replace earlier ones.
func From[T any](entries ...Entry[T]) Map[T] {
	m := Map[T]{rows: make(map[int]map[int]T)}
	for _, e := range entries {
		row, ok := m.rows[e.Point.Row]
		if !ok {
			row = make(map[int]T)
			m.rows[e.Point.Row] = row
		}
		if _, exists := row[e.Point.Column]; !exists {
			m.size++
		}
		row[e.Point.Column] = e.Value
	}
	return m
}

// Entry is a single key/value pair.
type Entry[T any] struct {
	Point point.Point
	Value T
}

func (m Map[T]) Get(p point.Point) (T, bool) {
	v, ok := m.rows[p.Row][p.Column]
	return v, ok
}

func (m Map[T]) Has(p point.Point) bool {
	_, ok := m.rows[p.Row][p.Column]
	return ok
}

// Set returns a copy of m with p mapped to v.
func (m Map[T]) Set(p point.Point, v T) Map[T] {
	rows := maps.Clone(m.rows)
	if rows == nil {
		rows = make(map[int]map[int]T)
	}
	row := maps.Clone(m.rows[p.Row])
	if row == nil {
		row = make(map[int]T)
	}
	size := m.size
	if _, exists := row[p.Column]; !exists {
		size++
	}
	row[p.Column] = v
	rows[p.Row] = row
	return Map[T]{rows: rows, size: size}
}

// Delete returns a copy of m without p. m is returned as is when p is absent.
func (m Map[T]) Delete(p point.Point) Map[T] {
	if !m.Has(p) {
		return m
	}
	rows := maps.Clone(m.rows)
	row := maps.Clone(m.rows[p.Row])
	delete(row, p.Column)
	if len(row) == 0 {
		delete(rows, p.Row)
	} else {
		rows[p.Row] = row
	}
	return Map[T]{rows: rows, size: m.size - 1}
}

func (m Map[T]) Len() int {
	return m.size
}

// Entries yields the pairs of m in row-major order.
func (m Map[T]) Entries() iter.Seq2[point.Point, T] {
	return func(yield func(point.Point, T) bool) {
		for _, r := range slices.Sorted(maps.Keys(m.rows)) {
			row := m.rows[r]
			for _, c := range slices.Sorted(maps.Keys(row)) {
				if !yield(point.Point{Row: r, Column: c}, row[c]) {
					return
				}
			}
		}
	}
}

// Keys yields the points of m in row-major order.
func (m Map[T]) Keys() iter.Seq[point.Point] {
	return func(yield func(point.Point) bool) {
		for p := range m.Entries() {
			if !yield(p) {
				return
			}
		}
	}
}

// Filter returns the entries of m accepted by keep.
func (m Map[T]) Filter(keep func(point.Point, T) bool) Map[T] {
	var entries []Entry[T]
	for p, v := range m.Entries() {
		if keep(p, v) {
			entries = append(entries, Entry[T]{Point: p, Value: v})
		}
	}
	return From(entries...)
}

// Transform maps every value of m through fn, keeping the keys.
func Transform[T, U any](m Map[T], fn func(point.Point, T) U) Map[U] {
	entries := make([]Entry[U], 0, m.Len())
	for p, v := range m.Entries() {
		entries = append(entries, Entry[U]{Point: p, Value: fn(p, v)})
	}
	return From(entries...)
}

// Extent returns the smallest range holding every key of m, and false for
// an empty map.
func (m Map[T]) Extent() (point.Range, bool) {
	if m.size == 0 {
		return point.Range{}, false
	}
	first := true
	var r point.Range
	for p := range m.Entries() {
		if first {
			r = point.Single(p)
			first = false
			continue
		}
		r = point.Range{
			Start: point.Point{Row: min(r.Start.Row, p.Row), Column: min(r.Start.Column, p.Column)},
			End:   point.Point{Row: max(r.End.Row, p.Row), Column: max(r.End.Column, p.Column)},
		}
	}
	return r, true
}
