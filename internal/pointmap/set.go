package pointmap

import (
	"iter"
	"slices"

	"grider/internal/point"
)

// Set is a set of points.
type Set struct {
	m Map[struct{}]
}

// NewSet builds a set holding points.
func NewSet(points ...point.Point) Set {
	entries := make([]Entry[struct{}], len(points))
	for i, p := range points {
		entries[i] = Entry[struct{}]{Point: p}
	}
	return Set{m: From(entries...)}
}

func (s Set) Has(p point.Point) bool {
	return s.m.Has(p)
}

// Add returns a copy of s holding p.
func (s Set) Add(p point.Point) Set {
	if s.m.Has(p) {
		return s
	}
	return Set{m: s.m.Set(p, struct{}{})}
}

// Remove returns a copy of s without p.
func (s Set) Remove(p point.Point) Set {
	return Set{m: s.m.Delete(p)}
}

func (s Set) Len() int {
	return s.m.Len()
}

// Points yields the members of s in row-major order.
func (s Set) Points() iter.Seq[point.Point] {
	return s.m.Keys()
}

// Slice returns the members of s in row-major order.
func (s Set) Slice() []point.Point {
	return slices.Collect(s.Points())
}

// Extent returns the bounding range of s.
func (s Set) Extent() (point.Range, bool) {
	return s.m.Extent()
}
