// Package point holds grid coordinates and rectangular ranges of them.
package point

import (
	"fmt"
	"iter"
)

// Point is a 0-based cell coordinate.
type Point struct {
	Row    int
	Column int
}

// Origin is the top-left cell.
var Origin = Point{}

func Equal(a, b Point) bool {
	return a.Row == b.Row && a.Column == b.Column
}

// Add offsets p by d.
func (p Point) Add(d Point) Point {
	return Point{Row: p.Row + d.Row, Column: p.Column + d.Column}
}

// Sub returns the offset from o to p.
func (p Point) Sub(o Point) Point {
	return Point{Row: p.Row - o.Row, Column: p.Column - o.Column}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
}

// Less orders points row-major.
func Less(a, b Point) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

// Range is a rectangle of points. Start is always the top-left corner and
// End the bottom-right one when built with NewRange.
type Range struct {
	Start Point
	End   Point
}

// NewRange builds a normalized range from two arbitrary corners.
func NewRange(a, b Point) Range {
	return Range{
		Start: Point{Row: min(a.Row, b.Row), Column: min(a.Column, b.Column)},
		End:   Point{Row: max(a.Row, b.Row), Column: max(a.Column, b.Column)},
	}
}

// Single is the range covering only p.
func Single(p Point) Range {
	return Range{Start: p, End: p}
}

// Normalized returns r with its corners ordered per axis.
func (r Range) Normalized() Range {
	return NewRange(r.Start, r.End)
}

// Has reports whether p lies inside r.
func (r Range) Has(p Point) bool {
	n := r.Normalized()
	return p.Row >= n.Start.Row && p.Row <= n.End.Row &&
		p.Column >= n.Start.Column && p.Column <= n.End.Column
}

// Rows returns the number of rows covered.
func (r Range) Rows() int {
	n := r.Normalized()
	return n.End.Row - n.Start.Row + 1
}

// Columns returns the number of columns covered.
func (r Range) Columns() int {
	n := r.Normalized()
	return n.End.Column - n.Start.Column + 1
}

func (r Range) Size() int {
	return r.Rows() * r.Columns()
}

// Points yields every point of r in row-major order. The sequence can be
// ranged over any number of times.
func (r Range) Points() iter.Seq[Point] {
	n := r.Normalized()
	return func(yield func(Point) bool) {
		for row := n.Start.Row; row <= n.End.Row; row++ {
			for column := n.Start.Column; column <= n.End.Column; column++ {
				if !yield(Point{Row: row, Column: column}) {
					return
				}
			}
		}
	}
}

// Intersect returns the overlap of r and o, and false when they are disjoint.
func (r Range) Intersect(o Range) (Range, bool) {
	a, b := r.Normalized(), o.Normalized()
	start := Point{Row: max(a.Start.Row, b.Start.Row), Column: max(a.Start.Column, b.Start.Column)}
	end := Point{Row: min(a.End.Row, b.End.Row), Column: min(a.End.Column, b.End.Column)}
	if start.Row > end.Row || start.Column > end.Column {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
