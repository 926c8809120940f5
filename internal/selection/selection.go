// Package selection models what part of the sheet is selected: nothing, a
// rectangle of cells, whole rows, whole columns or the whole worksheet.
package selection

import (
	"fmt"

	"grider/internal/matrix"
	"grider/internal/point"
)

// Selection is implemented by Empty, Range, EntireRows, EntireColumns and
// EntireWorksheet. Queries take the current sheet size because row, column
// and worksheet selections grow with the data.
type Selection interface {
	// Normalize clamps the selection to size.
	Normalize(size matrix.Size) Selection
	// ToRange returns the cells covered, or false when nothing is covered.
	ToRange(size matrix.Size) (point.Range, bool)
	HasEntireRow(row int) bool
	HasEntireColumn(column int) bool
	fmt.Stringer
}

// Has reports whether p is selected.
func Has(s Selection, size matrix.Size, p point.Point) bool {
	r, ok := s.ToRange(size)
	return ok && r.Has(p)
}

// Size returns the number of selected cells.
func Size(s Selection, size matrix.Size) int {
	r, ok := s.ToRange(size)
	if !ok {
		return 0
	}
	return r.Size()
}

// Points returns the selected points in row-major order.
func Points(s Selection, size matrix.Size) []point.Point {
	r, ok := s.ToRange(size)
	if !ok {
		return nil
	}
	out := make([]point.Point, 0, r.Size())
	for p := range r.Points() {
		out = append(out, p)
	}
	return out
}

// IsEmpty reports whether s covers no cell of a sheet of the given size.
func IsEmpty(s Selection, size matrix.Size) bool {
	_, ok := s.ToRange(size)
	return !ok
}

func sheetRange(size matrix.Size) (point.Range, bool) {
	if size.Empty() {
		return point.Range{}, false
	}
	return point.Range{End: point.Point{Row: size.Rows - 1, Column: size.Columns - 1}}, true
}

// Empty selects nothing.
type Empty struct{}

func (Empty) Normalize(matrix.Size) Selection         { return Empty{} }
func (Empty) ToRange(matrix.Size) (point.Range, bool) { return point.Range{}, false }
func (Empty) HasEntireRow(int) bool                   { return false }
func (Empty) HasEntireColumn(int) bool                { return false }
func (Empty) String() string                          { return "empty" }

// Range selects a rectangle of cells.
type Range struct {
	point.Range
}

// NewRange selects the rectangle between two corners.
func NewRange(a, b point.Point) Range {
	return Range{point.NewRange(a, b)}
}

// Cell selects the single cell p.
func Cell(p point.Point) Range {
	return Range{point.Single(p)}
}

func (s Range) Normalize(size matrix.Size) Selection {
	all, ok := sheetRange(size)
	if !ok {
		return Empty{}
	}
	r, ok := s.Range.Intersect(all)
	if !ok {
		return Empty{}
	}
	return Range{r}
}

func (s Range) ToRange(size matrix.Size) (point.Range, bool) {
	n, ok := s.Normalize(size).(Range)
	if !ok {
		return point.Range{}, false
	}
	return n.Range, true
}

func (Range) HasEntireRow(int) bool    { return false }
func (Range) HasEntireColumn(int) bool { return false }

func (s Range) String() string { return "range " + s.Range.String() }

// EntireRows selects rows Start through End inclusive.
type EntireRows struct {
	Start, End int
}

// NewEntireRows selects the rows between a and b.
func NewEntireRows(a, b int) EntireRows {
	return EntireRows{Start: max(min(a, b), 0), End: max(a, b, 0)}
}

func (s EntireRows) Normalize(size matrix.Size) Selection {
	if size.Rows == 0 || s.Start >= size.Rows {
		return Empty{}
	}
	return EntireRows{Start: max(s.Start, 0), End: min(s.End, size.Rows-1)}
}

func (s EntireRows) ToRange(size matrix.Size) (point.Range, bool) {
	n, ok := s.Normalize(size).(EntireRows)
	if !ok || size.Columns == 0 {
		return point.Range{}, false
	}
	return point.Range{
		Start: point.Point{Row: n.Start, Column: 0},
		End:   point.Point{Row: n.End, Column: size.Columns - 1},
	}, true
}

func (s EntireRows) HasEntireRow(row int) bool { return row >= s.Start && row <= s.End }
func (EntireRows) HasEntireColumn(int) bool    { return false }

func (s EntireRows) String() string { return fmt.Sprintf("rows %d-%d", s.Start, s.End) }

// EntireColumns selects columns Start through End inclusive.
type EntireColumns struct {
	Start, End int
}

// NewEntireColumns selects the columns between a and b.
func NewEntireColumns(a, b int) EntireColumns {
	return EntireColumns{Start: max(min(a, b), 0), End: max(a, b, 0)}
}

func (s EntireColumns) Normalize(size matrix.Size) Selection {
	if size.Columns == 0 || s.Start >= size.Columns {
		return Empty{}
	}
	return EntireColumns{Start: max(s.Start, 0), End: min(s.End, size.Columns-1)}
}

func (s EntireColumns) ToRange(size matrix.Size) (point.Range, bool) {
	n, ok := s.Normalize(size).(EntireColumns)
	if !ok || size.Rows == 0 {
		return point.Range{}, false
	}
	return point.Range{
		Start: point.Point{Row: 0, Column: n.Start},
		End:   point.Point{Row: size.Rows - 1, Column: n.End},
	}, true
}

func (EntireColumns) HasEntireRow(int) bool             { return false }
func (s EntireColumns) HasEntireColumn(column int) bool { return column >= s.Start && column <= s.End }

func (s EntireColumns) String() string { return fmt.Sprintf("columns %d-%d", s.Start, s.End) }

// EntireWorksheet selects every cell.
type EntireWorksheet struct{}

func (EntireWorksheet) Normalize(matrix.Size) Selection { return EntireWorksheet{} }

func (EntireWorksheet) ToRange(size matrix.Size) (point.Range, bool) {
	return sheetRange(size)
}

func (EntireWorksheet) HasEntireRow(int) bool    { return true }
func (EntireWorksheet) HasEntireColumn(int) bool { return true }
func (EntireWorksheet) String() string           { return "worksheet" }
