package app

import (
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/store"
)

func (a *App) gutter() int {
	if a.HideRowIndicators {
		return 0
	}
	return a.LeftGutter
}

func (a *App) header() int {
	if a.HideColumnIndicators {
		return 0
	}
	return 1
}

// sheetSize is the data size grown to fit the labels.
func (a *App) sheetSize() matrix.Size {
	return store.CalculateSpreadsheetSize(a.store.State().Data, a.RowLabels, a.ColumnLabels)
}

func (a *App) colWidth(c int) int {
	if w, ok := a.ColWidths[c]; ok {
		return w
	}
	return a.DefaultWidth
}

func (a *App) rowHeight(r int) int {
	if h, ok := a.RowHeights[r]; ok {
		return h
	}
	return a.DefaultHeight
}

// layout places the visible rows and columns on screen and reports their
// positions and the visible boundary to the store.
func (a *App) layout() {
	if a.follow {
		a.ensureActiveVisible()
		a.follow = false
	}
	w, h := a.screen.Size()
	st := a.store.State()
	size := a.sheetSize()
	var actions []store.Action

	lastCol := a.ViewCol - 1
	x := a.gutter()
	for c := a.ViewCol; c < size.Columns && x < w; c++ {
		d := store.ColumnDimensions{Left: x, Width: a.colWidth(c)}
		if prev, ok := st.ColumnDimensions[c]; !ok || prev != d {
			actions = append(actions, store.SetColumnDimensions{Column: c, Dimensions: d})
		}
		x += d.Width
		lastCol = c
	}

	lastRow := a.ViewRow - 1
	y := a.header()
	bottom := h - a.StatusLines
	for r := a.ViewRow; r < size.Rows && y < bottom; r++ {
		d := store.RowDimensions{Top: y, Height: a.rowHeight(r)}
		if prev, ok := st.RowDimensions[r]; !ok || prev != d {
			actions = append(actions, store.SetRowDimensions{Row: r, Dimensions: d})
		}
		y += d.Height
		lastRow = r
	}

	var boundary *point.Range
	if lastRow >= a.ViewRow && lastCol >= a.ViewCol {
		b := point.NewRange(point.Point{Row: a.ViewRow, Column: a.ViewCol}, point.Point{Row: lastRow, Column: lastCol})
		boundary = &b
	}
	if !sameRange(st.VisibleBoundary, boundary) {
		actions = append(actions, store.SetVisibleBoundary{Boundary: boundary})
	}
	if len(actions) > 0 {
		a.store.Dispatch(actions...)
	}
}

func sameRange(a, b *point.Range) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ensureActiveVisible scrolls so that the active cell is fully on screen.
func (a *App) ensureActiveVisible() {
	active := a.store.State().Active
	if active == nil {
		return
	}
	w, h := a.screen.Size()
	a.ViewCol = scrollInto(a.ViewCol, active.Column, w-a.gutter(), a.colWidth)
	a.ViewRow = scrollInto(a.ViewRow, active.Row, h-a.StatusLines-a.header(), a.rowHeight)
}

// scrollInto returns the first visible index that keeps target inside span.
// A target larger than span ends up first.
func scrollInto(first, target, span int, extent func(int) int) int {
	if target < first {
		return target
	}
	for first < target {
		used := 0
		for i := first; i <= target; i++ {
			used += extent(i)
		}
		if used <= span {
			break
		}
		first++
	}
	return first
}

// CellAt returns the visible cell drawn at screen position x, y.
func (a *App) CellAt(x, y int) (point.Point, bool) {
	st := a.store.State()
	if st.VisibleBoundary == nil {
		return point.Point{}, false
	}
	for p := range st.VisibleBoundary.Points() {
		d, ok := store.CellDimensions(p, st.RowDimensions, st.ColumnDimensions, st.VisibleBoundary)
		if !ok {
			continue
		}
		if x >= d.Left && x < d.Left+d.Width && y >= d.Top && y < d.Top+d.Height {
			return p, true
		}
	}
	return point.Point{}, false
}
