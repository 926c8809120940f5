package store

import (
	"maps"

	"grider/internal/formula"
	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/pointmap"
	"grider/internal/selection"
)

// Reducer computes state transitions. Parser evaluates formulas when
// bindings are recomputed; a nil Parser leaves formulas unbound.
type Reducer struct {
	Parser formula.Parser
}

// Reduce returns the state that results from applying a to s. Actions that
// do not apply to s return s unchanged.
func (r Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetData:
		return r.setData(s, a.Data)
	case SetCellData:
		return r.setCellData(s, a.Point, a.Cell)
	case SetCellDimensions:
		return setCellDimensions(s, a.Point, a.Dimensions)
	case SetRowDimensions:
		if prev, ok := s.RowDimensions[a.Row]; ok && prev == a.Dimensions {
			return s
		}
		s.RowDimensions = maps.Clone(s.RowDimensions)
		if s.RowDimensions == nil {
			s.RowDimensions = map[int]RowDimensions{}
		}
		s.RowDimensions[a.Row] = a.Dimensions
		return s
	case SetColumnDimensions:
		if prev, ok := s.ColumnDimensions[a.Column]; ok && prev == a.Dimensions {
			return s
		}
		s.ColumnDimensions = maps.Clone(s.ColumnDimensions)
		if s.ColumnDimensions == nil {
			s.ColumnDimensions = map[int]ColumnDimensions{}
		}
		s.ColumnDimensions[a.Column] = a.Dimensions
		return s
	case SetVisibleBoundary:
		s.VisibleBoundary = a.Boundary
		return s
	case SetScrolling:
		s.IsScrolling = a.Scrolling
		return s
	case Select:
		return selectPoint(s, a.Point)
	case SelectEntireRow:
		return selectEntireRow(s, a.Row, a.Extend)
	case SelectEntireColumn:
		return selectEntireColumn(s, a.Column, a.Extend)
	case SelectEntireWorksheet:
		s.Selected = selection.EntireWorksheet{}
		if s.Active == nil {
			origin := point.Origin
			s.Active = &origin
		}
		s.Mode = ModeView
		return s
	case SetSelection:
		return setSelection(s, a.Selection)
	case Activate:
		if !s.Size().Has(a.Point) {
			return s
		}
		p := a.Point
		s.Active = &p
		s.Selected = selection.Cell(p)
		s.Mode = ModeView
		return s
	case Edit:
		return edit(s)
	case Commit:
		return r.commit(s, a.Value)
	case CancelEdit:
		if s.Mode != ModeEdit {
			return s
		}
		s.Mode = ModeView
		return s
	case Copy:
		return copySelection(s, false)
	case Cut:
		return copySelection(s, true)
	case Paste:
		return r.paste(s, a.Text)
	case SetDragging:
		s.Dragging = a.Dragging
		return s
	case Move:
		return move(s, a.Rows, a.Columns)
	case ModifyEdge:
		if s.Active == nil || s.Mode == ModeEdit {
			return s
		}
		s.Selected = selection.ModifyEdge(s.Selected, *s.Active, s.Size(), a.Edge)
		return s
	case Clear:
		return r.clear(s)
	case Blur:
		s.Active = nil
		s.Selected = selection.Empty{}
		s.Mode = ModeView
		return s
	}
	return s
}

func (r Reducer) setData(s State, data matrix.Matrix[grid.Cell]) State {
	size := data.Size()
	s.Data = data
	if s.Active != nil && !size.Has(*s.Active) {
		s.Active = nil
		s.Mode = ModeView
	}
	if s.Selected == nil {
		s.Selected = selection.Empty{}
	}
	s.Selected = s.Selected.Normalize(size)
	s.Bindings = formula.AllBindings(r.Parser, data)
	return s
}

func (r Reducer) setCellData(s State, p point.Point, cell grid.Cell) State {
	prev, ok := s.Data.Get(p)
	if ok && prev.ReadOnly {
		return s
	}
	change := CellChange{Point: p, Next: &cell}
	if ok {
		change.Prev = &prev
	}
	before := s.Data.Size()
	s.Data = s.Data.Set(p, cell)
	s.LastChanged = &p
	s.LastCommit = []CellChange{change}
	s.Bindings = r.rebind(s.Bindings, before, s.Data, p)
	return s
}

// rebind recomputes the bindings of points and of every formula that reads
// them. Formula ranges are bound only where they overlap the data, so a
// sheet that changed size rebinds every formula.
func (r Reducer) rebind(bindings pointmap.Map[pointmap.Set], before matrix.Size, data matrix.Matrix[grid.Cell], points ...point.Point) pointmap.Map[pointmap.Set] {
	if data.Size() != before {
		return formula.AllBindings(r.Parser, data)
	}
	for _, p := range points {
		bindings = r.bind(bindings, data, p)
	}
	for _, p := range points {
		for _, dep := range formula.Dependents(bindings, p) {
			bindings = r.bind(bindings, data, dep)
		}
	}
	return bindings
}

func (r Reducer) bind(bindings pointmap.Map[pointmap.Set], data matrix.Matrix[grid.Cell], p point.Point) pointmap.Map[pointmap.Set] {
	cell, ok := data.Get(p)
	if r.Parser == nil || !ok || !formula.IsFormulaValue(cell.Value) {
		return bindings.Delete(p)
	}
	return bindings.Set(p, formula.Bindings(r.Parser, data, p))
}

func setCellDimensions(s State, p point.Point, d Dimensions) State {
	row, rowOK := s.RowDimensions[p.Row]
	column, columnOK := s.ColumnDimensions[p.Column]
	nextRow := RowDimensions{Top: d.Top, Height: d.Height}
	nextColumn := ColumnDimensions{Left: d.Left, Width: d.Width}
	if rowOK && columnOK && row == nextRow && column == nextColumn {
		return s
	}
	s.RowDimensions = maps.Clone(s.RowDimensions)
	if s.RowDimensions == nil {
		s.RowDimensions = map[int]RowDimensions{}
	}
	s.ColumnDimensions = maps.Clone(s.ColumnDimensions)
	if s.ColumnDimensions == nil {
		s.ColumnDimensions = map[int]ColumnDimensions{}
	}
	s.RowDimensions[p.Row] = nextRow
	s.ColumnDimensions[p.Column] = nextColumn
	return s
}

func selectPoint(s State, p point.Point) State {
	if !s.Size().Has(p) {
		return s
	}
	if s.Active != nil {
		s.Selected = selection.NewRange(*s.Active, p)
	} else {
		s.Selected = selection.Cell(p)
	}
	s.Mode = ModeView
	return s
}

func selectEntireRow(s State, row int, extend bool) State {
	if row < 0 || row >= s.Size().Rows {
		return s
	}
	if extend && s.Active != nil {
		s.Selected = selection.NewEntireRows(s.Active.Row, row)
	} else {
		s.Selected = selection.NewEntireRows(row, row)
		s.Active = &point.Point{Row: row, Column: 0}
	}
	s.Mode = ModeView
	return s
}

func selectEntireColumn(s State, column int, extend bool) State {
	if column < 0 || column >= s.Size().Columns {
		return s
	}
	if extend && s.Active != nil {
		s.Selected = selection.NewEntireColumns(s.Active.Column, column)
	} else {
		s.Selected = selection.NewEntireColumns(column, column)
		s.Active = &point.Point{Row: 0, Column: column}
	}
	s.Mode = ModeView
	return s
}

// setSelection clamps sel to the data, keeps the active cell when the
// clamped selection contains it and otherwise moves it to the selection's
// first cell. A selection entirely off the sheet clears both.
func setSelection(s State, sel selection.Selection) State {
	if sel == nil {
		sel = selection.Empty{}
	}
	size := s.Size()
	sel = sel.Normalize(size)
	s.Selected = sel
	s.Mode = ModeView
	if s.Active != nil && selection.Has(sel, size, *s.Active) {
		return s
	}
	if r, ok := sel.ToRange(size); ok {
		start := r.Start
		s.Active = &start
	} else {
		s.Active = nil
	}
	return s
}

func edit(s State) State {
	if s.Mode != ModeView || s.Active == nil {
		return s
	}
	if cell, ok := s.ActiveCell(); ok && cell.ReadOnly {
		return s
	}
	s.Mode = ModeEdit
	return s
}

func (r Reducer) commit(s State, value any) State {
	if s.Mode != ModeEdit || s.Active == nil {
		return s
	}
	cell, _ := s.ActiveCell()
	s = r.setCellData(s, *s.Active, cell.WithValue(value))
	s.Mode = ModeView
	return s
}

func copySelection(s State, cut bool) State {
	r, ok := s.Selected.ToRange(s.Size())
	if !ok {
		return s
	}
	var copied pointmap.Map[grid.Cell]
	for p := range r.Points() {
		if cell, ok := s.Data.Get(p); ok {
			copied = copied.Set(p, cell)
		}
	}
	s.Copied = copied
	s.CopiedRange = &r
	s.Cut = cut
	s.HasPasted = false
	return s
}

func move(s State, rows, columns int) State {
	if s.Active == nil {
		return s
	}
	target := s.Active.Add(point.Point{Row: rows, Column: columns})
	if !s.Size().Has(target) {
		s.Mode = ModeView
		return s
	}
	s.Active = &target
	s.Selected = selection.Cell(target)
	s.Mode = ModeView
	return s
}

// batch collects the writes of a multi-cell transition so they can be
// reported as a single commit.
type batch struct {
	before  matrix.Matrix[grid.Cell]
	data    matrix.Matrix[grid.Cell]
	touched pointmap.Set
}

func newBatch(data matrix.Matrix[grid.Cell]) *batch {
	return &batch{before: data, data: data}
}

// writable reports whether p may be written.
func (b *batch) writable(p point.Point) bool {
	cell, ok := b.data.Get(p)
	return !ok || !cell.ReadOnly
}

func (b *batch) set(p point.Point, cell grid.Cell) {
	b.data = b.data.Set(p, cell)
	b.touched = b.touched.Add(p)
}

func (b *batch) unset(p point.Point) {
	if !b.data.Has(p) {
		return
	}
	b.data = b.data.Unset(p)
	b.touched = b.touched.Add(p)
}

func (b *batch) changes() []CellChange {
	var out []CellChange
	for p := range b.touched.Points() {
		change := CellChange{Point: p}
		if prev, ok := b.before.Get(p); ok {
			change.Prev = &prev
		}
		if next, ok := b.data.Get(p); ok {
			change.Next = &next
		}
		out = append(out, change)
	}
	return out
}

func (r Reducer) paste(s State, text string) State {
	if s.Active == nil || s.Mode != ModeView || text == "" {
		return s
	}
	active := *s.Active
	b := newBatch(s.Data)
	var pasted point.Range

	if s.CopiedRange != nil && text == ClipboardText(s) {
		source := s.CopiedRange.Normalized()
		if s.Cut {
			for p := range source.Points() {
				if b.writable(p) {
					b.unset(p)
				}
			}
		}
		for p := range source.Points() {
			dst := active.Add(p.Sub(source.Start))
			if !b.writable(dst) {
				continue
			}
			if cell, ok := s.Copied.Get(p); ok {
				b.set(dst, cell)
			} else {
				b.unset(dst)
			}
		}
		pasted = point.NewRange(active, active.Add(source.End.Sub(source.Start)))
		if s.Cut {
			s.Copied = pointmap.Map[grid.Cell]{}
			s.CopiedRange = nil
		}
	} else {
		payload := matrix.Split(text, func(field string) string { return field })
		size := payload.Size()
		if size.Rows == 1 && size.Columns == 1 {
			value, _ := payload.Get(point.Origin)
			target, ok := s.Selected.ToRange(s.Size())
			if !ok {
				target = point.Single(active)
			}
			for p := range target.Points() {
				mergeValue(b, p, value)
			}
			pasted = target
		} else {
			for rel, value := range payload.Entries() {
				mergeValue(b, active.Add(rel), value)
			}
			pasted = point.NewRange(active, active.Add(point.Point{Row: size.Rows - 1, Column: size.Columns - 1}))
		}
	}

	s.Data = b.data
	s.LastCommit = b.changes()
	s.Bindings = r.rebind(s.Bindings, b.before.Size(), s.Data, b.touched.Slice()...)
	s.Selected = selection.Range{Range: pasted}.Normalize(s.Size())
	s.HasPasted = true
	s.Cut = false
	return s
}

// mergeValue writes value into the cell at p, keeping its other attributes.
func mergeValue(b *batch, p point.Point, value string) {
	if !b.writable(p) {
		return
	}
	cell, _ := b.data.Get(p)
	b.set(p, cell.WithValue(value))
}

func (r Reducer) clear(s State) State {
	if s.Mode != ModeView {
		return s
	}
	target, ok := s.Selected.ToRange(s.Size())
	if !ok {
		return s
	}
	b := newBatch(s.Data)
	for p := range target.Points() {
		cell, ok := b.data.Get(p)
		if !ok || cell.ReadOnly || cell.Value == nil {
			continue
		}
		b.set(p, cell.WithValue(nil))
	}
	if b.touched.Len() == 0 {
		return s
	}
	s.Data = b.data
	s.LastCommit = b.changes()
	s.Bindings = r.rebind(s.Bindings, b.before.Size(), s.Data, b.touched.Slice()...)
	return s
}
