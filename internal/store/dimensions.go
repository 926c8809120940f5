package store

import (
	"slices"

	"grider/internal/formula"
	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/pointmap"
	"grider/internal/selection"
)

// CellDimensions returns the laid out rectangle of p. It reports false when
// the row or column has not been laid out or p is outside visible.
func CellDimensions(p point.Point, rows map[int]RowDimensions, columns map[int]ColumnDimensions, visible *point.Range) (Dimensions, bool) {
	if visible != nil && !visible.Has(p) {
		return Dimensions{}, false
	}
	row, ok := rows[p.Row]
	if !ok {
		return Dimensions{}, false
	}
	column, ok := columns[p.Column]
	if !ok {
		return Dimensions{}, false
	}
	return Dimensions{Top: row.Top, Left: column.Left, Width: column.Width, Height: row.Height}, true
}

// RangeDimensions returns the rectangle spanning r, clipped to visible.
func RangeDimensions(r point.Range, rows map[int]RowDimensions, columns map[int]ColumnDimensions, visible *point.Range) (Dimensions, bool) {
	r = r.Normalized()
	if visible != nil {
		clipped, ok := r.Intersect(*visible)
		if !ok {
			return Dimensions{}, false
		}
		r = clipped
	}
	start, ok := CellDimensions(r.Start, rows, columns, visible)
	if !ok {
		return Dimensions{}, false
	}
	end, ok := CellDimensions(r.End, rows, columns, visible)
	if !ok {
		return Dimensions{}, false
	}
	return Dimensions{
		Top:    start.Top,
		Left:   start.Left,
		Width:  end.Left + end.Width - start.Left,
		Height: end.Top + end.Height - start.Top,
	}, true
}

// SelectedDimensions returns the rectangle covered by the selection of s.
func SelectedDimensions(s State) (Dimensions, bool) {
	r, ok := s.Selected.ToRange(s.Size())
	if !ok {
		return Dimensions{}, false
	}
	return RangeDimensions(r, s.RowDimensions, s.ColumnDimensions, s.VisibleBoundary)
}

// CalculateSpreadsheetSize is the size of data, grown to fit any labels.
func CalculateSpreadsheetSize(data matrix.Matrix[grid.Cell], rowLabels, columnLabels []string) matrix.Size {
	size := data.Size()
	return matrix.Size{
		Rows:    max(size.Rows, len(rowLabels)),
		Columns: max(size.Columns, len(columnLabels)),
	}
}

// CopiedRange is the bounding range of copied cells. Nothing is reported
// once the copied cells have been pasted.
func CopiedRange(copied pointmap.Map[grid.Cell], hasPasted bool) (point.Range, bool) {
	if hasPasted || copied.Len() == 0 {
		return point.Range{}, false
	}
	return copied.Extent()
}

func IsActive(active *point.Point, p point.Point) bool {
	return active != nil && point.Equal(*active, p)
}

// IsSelected reports whether p is in the selection of s.
func IsSelected(s State, p point.Point) bool {
	return selection.Has(s.Selected, s.Size(), p)
}

// ShouldRerender reports whether the cell at p has to be drawn again after
// the last change: either it changed itself or its formula reads the
// changed cell, directly or through other formulas. It is meant for hosts
// that redraw cell by cell; the terminal host repaints the whole grid.
func ShouldRerender(s State, p point.Point) bool {
	if s.LastChanged == nil {
		return false
	}
	if point.Equal(*s.LastChanged, p) {
		return true
	}
	if !s.Bindings.Has(p) {
		return false
	}
	return slices.Contains(formula.Dependents(s.Bindings, *s.LastChanged), p)
}
