// Package store holds the sheet state, the reducer that drives every
// transition and the single-owner Store that dispatches actions to it.
package store

import (
	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/pointmap"
	"grider/internal/selection"
)

// Mode is the interaction mode of the active cell.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// CellChange is one cell write of a commit. A nil Prev or Next means the
// cell was absent before or after the write.
type CellChange struct {
	Point point.Point
	Prev  *grid.Cell
	Next  *grid.Cell
}

// RowDimensions is the laid out position of a row.
type RowDimensions struct {
	Top    int
	Height int
}

// ColumnDimensions is the laid out position of a column.
type ColumnDimensions struct {
	Left  int
	Width int
}

// Dimensions is the laid out rectangle of a cell or range.
type Dimensions struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// State is the complete state of a sheet. It is treated as a value: the
// reducer never modifies a State it was given.
type State struct {
	Data     matrix.Matrix[grid.Cell]
	Active   *point.Point
	Mode     Mode
	Selected selection.Selection
	Dragging bool

	Copied      pointmap.Map[grid.Cell]
	CopiedRange *point.Range
	Cut         bool
	HasPasted   bool

	// Bindings maps each formula cell to the points it reads.
	Bindings    pointmap.Map[pointmap.Set]
	LastChanged *point.Point
	LastCommit  []CellChange

	RowDimensions    map[int]RowDimensions
	ColumnDimensions map[int]ColumnDimensions
	VisibleBoundary  *point.Range
	IsScrolling      bool
}

// NewState returns the initial state for data with nothing active or
// selected.
func NewState(data matrix.Matrix[grid.Cell]) State {
	return State{
		Data:             data,
		Mode:             ModeView,
		Selected:         selection.Empty{},
		RowDimensions:    map[int]RowDimensions{},
		ColumnDimensions: map[int]ColumnDimensions{},
	}
}

// Size is the size of the state's data.
func (s State) Size() matrix.Size {
	return s.Data.Size()
}

// ActiveCell returns the active cell, if any. A present active point may
// still have no cell in the data.
func (s State) ActiveCell() (grid.Cell, bool) {
	if s.Active == nil {
		return grid.Cell{}, false
	}
	return s.Data.Get(*s.Active)
}

// SelectedPoints returns the selected points in row-major order.
func (s State) SelectedPoints() []point.Point {
	return selection.Points(s.Selected, s.Size())
}

// ClipboardText renders the copied cells as TSV. Holes inside the copied
// range become empty fields.
func ClipboardText(s State) string {
	if s.CopiedRange == nil {
		return ""
	}
	r := s.CopiedRange.Normalized()
	m := matrix.CreateEmpty[grid.Cell](r.Rows(), r.Columns())
	for p, cell := range s.Copied.Entries() {
		m = m.Set(p.Sub(r.Start), cell)
	}
	return matrix.Join(m, grid.Cell.Text)
}
