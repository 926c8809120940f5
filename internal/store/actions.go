package store

import (
	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/selection"
)

// Action is a request to change the state. Every action is a plain value;
// the reducer decides what it means for the current state.
type Action interface {
	Type() string
}

// SetData replaces the whole sheet.
type SetData struct {
	Data matrix.Matrix[grid.Cell]
}

// SetCellData writes a single cell.
type SetCellData struct {
	Point point.Point
	Cell  grid.Cell
}

// SetCellDimensions records the laid out rectangle of a cell.
type SetCellDimensions struct {
	Point      point.Point
	Dimensions Dimensions
}

type SetRowDimensions struct {
	Row        int
	Dimensions RowDimensions
}

type SetColumnDimensions struct {
	Column     int
	Dimensions ColumnDimensions
}

// SetVisibleBoundary records which cells the host currently shows.
type SetVisibleBoundary struct {
	Boundary *point.Range
}

type SetScrolling struct {
	Scrolling bool
}

// Select extends the selection from the active cell to Point.
type Select struct {
	Point point.Point
}

// SelectEntireRow selects a row. With Extend, the rows between the active
// cell and Row are selected instead.
type SelectEntireRow struct {
	Row    int
	Extend bool
}

// SelectEntireColumn selects a column. With Extend, the columns between the
// active cell and Column are selected instead.
type SelectEntireColumn struct {
	Column int
	Extend bool
}

type SelectEntireWorksheet struct{}

// SetSelection replaces the selection.
type SetSelection struct {
	Selection selection.Selection
}

// Activate makes Point the active cell.
type Activate struct {
	Point point.Point
}

// Edit switches the active cell to edit mode.
type Edit struct{}

// Commit writes Value into the active cell and leaves edit mode.
type Commit struct {
	Value any
}

type CancelEdit struct{}

type Copy struct{}

type Cut struct{}

// Paste writes clipboard Text at the active cell.
type Paste struct {
	Text string
}

type SetDragging struct {
	Dragging bool
}

// Move activates the cell at the given offset from the active cell.
type Move struct {
	Rows    int
	Columns int
}

// ModifyEdge grows or shrinks the selection by one cell toward Edge.
type ModifyEdge struct {
	Edge selection.Direction
}

// Clear empties the values of the selected cells.
type Clear struct{}

// Blur drops the active cell and the selection.
type Blur struct{}

func (SetData) Type() string               { return "set-data" }
func (SetCellData) Type() string           { return "set-cell-data" }
func (SetCellDimensions) Type() string     { return "set-cell-dimensions" }
func (SetRowDimensions) Type() string      { return "set-row-dimensions" }
func (SetColumnDimensions) Type() string   { return "set-column-dimensions" }
func (SetVisibleBoundary) Type() string    { return "set-visible-boundary" }
func (SetScrolling) Type() string          { return "set-scrolling" }
func (Select) Type() string                { return "select" }
func (SelectEntireRow) Type() string       { return "select-entire-row" }
func (SelectEntireColumn) Type() string    { return "select-entire-column" }
func (SelectEntireWorksheet) Type() string { return "select-entire-worksheet" }
func (SetSelection) Type() string          { return "set-selection" }
func (Activate) Type() string              { return "activate" }
func (Edit) Type() string                  { return "edit" }
func (Commit) Type() string                { return "commit" }
func (CancelEdit) Type() string            { return "cancel-edit" }
func (Copy) Type() string                  { return "copy" }
func (Cut) Type() string                   { return "cut" }
func (Paste) Type() string                 { return "paste" }
func (SetDragging) Type() string           { return "set-dragging" }
func (Move) Type() string                  { return "move" }
func (ModifyEdge) Type() string            { return "modify-edge" }
func (Clear) Type() string                 { return "clear" }
func (Blur) Type() string                  { return "blur" }
