// Package keys translates terminal key and mouse events into sheet actions.
package keys

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"grider/internal/grid"
	"grider/internal/point"
	"grider/internal/selection"
	"grider/internal/store"
)

// Clipboard is a clipboard operation the host has to carry out.
type Clipboard int

const (
	ClipboardNone Clipboard = iota
	// ClipboardCopy asks the host to write the copied cells to the system
	// clipboard after dispatching.
	ClipboardCopy
	// ClipboardPaste asks the host to read the system clipboard and
	// dispatch a store.Paste with its text.
	ClipboardPaste
)

// Result is what a single event maps to.
type Result struct {
	Actions   []store.Action
	Clipboard Clipboard
	// Resize is a requested change of the active row height (Row) and
	// column width (Column).
	Resize point.Point
	// Scroll is a requested number of rows to scroll the view by.
	Scroll int
	// Handled is set when the event was consumed, even without actions.
	Handled bool
}

// Mapper maps events for one sheet. It owns the edit buffer.
type Mapper struct {
	// OnKeyDown sees every key first. Returning true skips the built-in
	// handling.
	OnKeyDown func(ev *tcell.EventKey) bool

	EnterStartsEdit bool
	MoveAfterEnter  bool
	// PageRows is the number of rows PgUp and PgDn move by.
	PageRows int

	Editor Editor

	pressed bool
}

// NewMapper returns a Mapper with the default key behavior.
func NewMapper() *Mapper {
	return &Mapper{EnterStartsEdit: true, MoveAfterEnter: true, PageRows: 10}
}

func handled(actions ...store.Action) Result {
	return Result{Actions: actions, Handled: true}
}

// Key maps a key event given the current state.
func (m *Mapper) Key(ev *tcell.EventKey, s store.State) Result {
	if m.OnKeyDown != nil && m.OnKeyDown(ev) {
		return Result{Handled: true}
	}
	if s.Mode == store.ModeEdit {
		return m.editKey(ev)
	}
	return m.viewKey(ev, s)
}

func (m *Mapper) editKey(ev *tcell.EventKey) Result {
	mod := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyEsc:
		m.Editor.Reset()
		return handled(store.CancelEdit{})
	case tcell.KeyEnter:
		// Shift+Enter or Alt+Enter -> newline inside the cell
		if mod&tcell.ModShift != 0 || mod&tcell.ModAlt != 0 {
			m.Editor.Insert('\n')
			return Result{Handled: true}
		}
		commit := m.commit()
		// move after enter unless Ctrl held
		if m.MoveAfterEnter && mod&tcell.ModCtrl == 0 {
			return handled(commit, store.Move{Rows: 1})
		}
		return handled(commit)
	case tcell.KeyTab:
		return handled(m.commit(), store.Move{Columns: 1})
	case tcell.KeyBacktab:
		return handled(m.commit(), store.Move{Columns: -1})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		m.Editor.Backspace()
		return Result{Handled: true}
	case tcell.KeyRune:
		m.Editor.Insert(ev.Rune())
		return Result{Handled: true}
	}
	return Result{}
}

func (m *Mapper) commit() store.Action {
	value := m.Editor.Text()
	m.Editor.Reset()
	if value == "" {
		return store.Commit{Value: nil}
	}
	return store.Commit{Value: value}
}

func (m *Mapper) viewKey(ev *tcell.EventKey, s store.State) Result {
	mod := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		return m.arrow(ev.Key(), mod)
	case tcell.KeyTab:
		return handled(store.Move{Columns: 1})
	case tcell.KeyBacktab:
		return handled(store.Move{Columns: -1})
	case tcell.KeyPgUp:
		return handled(store.Move{Rows: -m.pageRows()})
	case tcell.KeyPgDn:
		return handled(store.Move{Rows: m.pageRows()})
	case tcell.KeyHome:
		if s.Active == nil {
			return Result{}
		}
		return handled(store.Activate{Point: point.Point{Row: s.Active.Row}})
	case tcell.KeyEnd:
		if s.Active == nil {
			return Result{}
		}
		return handled(store.Activate{Point: point.Point{Row: s.Active.Row, Column: s.Size().Columns - 1}})
	case tcell.KeyEnter:
		if !m.EnterStartsEdit {
			return handled(store.Move{Rows: 1})
		}
		return m.startEdit(s, 0)
	case tcell.KeyF2:
		return m.startEdit(s, 0)
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return handled(store.Clear{})
	case tcell.KeyEsc:
		return handled(store.Blur{})
	case tcell.KeyCtrlA:
		return handled(store.SelectEntireWorksheet{})
	case tcell.KeyCtrlC:
		return Result{Actions: []store.Action{store.Copy{}}, Clipboard: ClipboardCopy, Handled: true}
	case tcell.KeyCtrlX:
		return Result{Actions: []store.Action{store.Cut{}}, Clipboard: ClipboardCopy, Handled: true}
	case tcell.KeyCtrlV:
		return Result{Clipboard: ClipboardPaste, Handled: true}
	case tcell.KeyRune:
		r := ev.Rune()
		if !unicode.IsPrint(r) {
			return Result{}
		}
		return m.startEdit(s, r)
	}
	return Result{}
}

func (m *Mapper) pageRows() int {
	if m.PageRows > 0 {
		return m.PageRows
	}
	return 1
}

func (m *Mapper) arrow(key tcell.Key, mod tcell.ModMask) Result {
	var delta point.Point
	var edge selection.Direction
	switch key {
	case tcell.KeyUp:
		delta, edge = point.Point{Row: -1}, selection.Top
	case tcell.KeyDown:
		delta, edge = point.Point{Row: 1}, selection.Bottom
	case tcell.KeyLeft:
		delta, edge = point.Point{Column: -1}, selection.Left
	case tcell.KeyRight:
		delta, edge = point.Point{Column: 1}, selection.Right
	}
	switch {
	case mod&tcell.ModCtrl != 0:
		// ctrl+arrows resize the active row and column
		return Result{Resize: delta, Handled: true}
	case mod&tcell.ModShift != 0:
		return handled(store.ModifyEdge{Edge: edge})
	}
	return handled(store.Move{Rows: delta.Row, Columns: delta.Column})
}

// startEdit enters edit mode on the active cell. A non-zero seed replaces
// the cell's text with that rune.
func (m *Mapper) startEdit(s store.State, seed rune) Result {
	if s.Active == nil {
		return Result{}
	}
	cell, _ := s.ActiveCell()
	if cell.ReadOnly {
		return Result{Handled: true}
	}
	if seed != 0 {
		m.Editor.Start(string(seed), false)
	} else {
		m.Editor.Start(grid.FormatValue(cell.Value), true)
	}
	return handled(store.Edit{})
}
