package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"grider/internal/grid"
	"grider/internal/point"
	"grider/internal/store"
)

const helpText = "\n Enter / F2 - edit \n typing - replace cell \n Ctrl+Enter - save&stay \n Shift/Alt+Enter - newline \n Esc - cancel / clear selection \n Shift+arrows - extend selection \n Ctrl+A - select all \n Ctrl+C / Ctrl+X / Ctrl+V - copy / cut / paste \n Del - clear \n Ctrl←/Ctrl→ - col width \n Ctrl↑/Ctrl↓ - row height \n PgUp/PgDn/Home/End - scroll \n : - command (q, cw N, rh N, o file.csv) \n Ctrl+Q - quit \n"

var (
	headerStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	markedStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	activeStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	statusStyle   = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	cursorStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorLightGray)
)

// Draw paints the laid out sheet, the status area and any popup.
func (a *App) Draw() {
	s := a.screen
	s.Clear()
	st := a.store.State()

	if st.VisibleBoundary != nil {
		a.drawHeaders(st)
		a.drawCells(st)
	}
	a.drawStatus(st)

	if a.HelpVisible {
		a.drawHelpPopup(helpText)
	}

	s.HideCursor()
	if st.Mode == store.ModeEdit {
		a.drawEditCursor(st)
	}
	s.Show()
}

func (a *App) drawHeaders(st store.State) {
	visible := *st.VisibleBoundary
	if !a.HideColumnIndicators {
		for c := visible.Start.Column; c <= visible.End.Column; c++ {
			d := st.ColumnDimensions[c]
			style := headerStyle
			if st.Active != nil && st.Active.Column == c {
				style = markedStyle
				a.fill(d.Left, 0, d.Width, 1, style)
			}
			a.printPadded(d.Left, 0, d.Width, label(a.ColumnLabels, c, grid.ColToName(c)), style)
		}
	}
	if !a.HideRowIndicators {
		for r := visible.Start.Row; r <= visible.End.Row; r++ {
			d := st.RowDimensions[r]
			style := headerStyle
			if st.Active != nil && st.Active.Row == r {
				style = markedStyle
				a.fill(0, d.Top, a.LeftGutter-1, 1, style)
			}
			a.printTextFixedWidth(0, d.Top, label(a.RowLabels, r, strconv.Itoa(r+1)), style, a.LeftGutter-1)
		}
	}
}

// label returns labels[i] when it is set and fallback otherwise.
func label(labels []string, i int, fallback string) string {
	if i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return fallback
}

func (a *App) drawCells(st store.State) {
	copied, hasCopied := store.CopiedRange(st.Copied, st.HasPasted)
	for p := range st.VisibleBoundary.Points() {
		d, ok := store.CellDimensions(p, st.RowDimensions, st.ColumnDimensions, st.VisibleBoundary)
		if !ok {
			continue
		}
		style := a.cellStyle(st, p)
		if hasCopied && copied.Has(p) {
			style = style.Underline(true)
		}
		a.fill(d.Left, d.Top, d.Width, d.Height, style)

		text := a.cellText(st, p)
		lines := splitLines(text, d.Height)
		for dy, line := range lines {
			a.printPadded(d.Left, d.Top+dy, d.Width, line, style)
		}
	}
}

func (a *App) cellStyle(st store.State, p point.Point) tcell.Style {
	switch {
	case store.IsActive(st.Active, p):
		return activeStyle
	case store.IsSelected(st, p):
		return selectedStyle
	}
	style := tcell.StyleDefault
	if cell, ok := st.Data.Get(p); ok && cell.ReadOnly {
		style = style.Dim(true)
	}
	return style
}

// cellText is what the cell at p shows: the edit buffer for the cell being
// edited, the rendered computed value otherwise.
func (a *App) cellText(st store.State, p point.Point) string {
	if st.Mode == store.ModeEdit && store.IsActive(st.Active, p) {
		return a.mapper.Editor.Text()
	}
	cell, ok := st.Data.Get(p)
	if !ok {
		return ""
	}
	return a.viewer(cell)(a.store.Evaluate(p))
}

func (a *App) drawStatus(st store.State) {
	w, h := a.screen.Size()
	statusY := max(h-a.StatusLines, 0)

	cellName := "-"
	raw := ""
	if st.Active != nil {
		cellName = grid.PointName(*st.Active)
		if cell, ok := st.ActiveCell(); ok {
			raw = cell.Text()
		}
	}
	statusLeft := fmt.Sprintf("Mode:%s  Cell:%s  Sel:%s  View:%d,%d", st.Mode, cellName, st.Selected, a.ViewRow+1, a.ViewCol+1)
	a.printTextFixedWidth(0, statusY, statusLeft, statusStyle, w)

	line := raw
	switch {
	case st.Mode == store.ModeEdit:
		line = "EDIT: " + a.mapper.Editor.Text()
	case a.Status != "":
		line = a.Status
	}
	if a.StatusLines > 1 {
		a.printTextFixedWidth(0, statusY+1, strings.ReplaceAll(line, "\n", "⏎"), statusStyle, w)
	}
}

// drawEditCursor marks the insertion point after the last line of the edit
// buffer.
func (a *App) drawEditCursor(st store.State) {
	if st.Active == nil {
		return
	}
	d, ok := store.CellDimensions(*st.Active, st.RowDimensions, st.ColumnDimensions, st.VisibleBoundary)
	if !ok {
		return
	}
	lines := strings.Split(a.mapper.Editor.Text(), "\n")
	lastIdx := len(lines) - 1
	lastLine := lines[lastIdx]

	x := d.Left
	innerW := d.Width - 2*a.CellPadding
	if innerW < 1 {
		x += min(runewidth.StringWidth(lastLine), max(0, d.Width-1))
	} else {
		x += a.CellPadding + min(runewidth.StringWidth(lastLine), max(0, innerW-1))
	}
	y := d.Top + min(lastIdx, max(0, d.Height-1))

	w, h := a.screen.Size()
	if x >= 0 && x < w && y >= 0 && y < h {
		a.screen.SetContent(x, y, '▏', nil, cursorStyle)
	}
}

func (a *App) fill(x, y, width, height int, style tcell.Style) {
	w, h := a.screen.Size()
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			if x+dx >= 0 && y+dy >= 0 && x+dx < w && y+dy < h {
				a.screen.SetContent(x+dx, y+dy, ' ', nil, style)
			}
		}
	}
}

// printPadded prints str inside a cell of the given width, keeping the
// cell padding on both sides when there is room for it.
func (a *App) printPadded(x, y, width int, str string, style tcell.Style) {
	innerW := width - 2*a.CellPadding
	if innerW > 0 {
		a.printTextFixedWidth(x+a.CellPadding, y, str, style, innerW)
		return
	}
	a.printTextFixedWidth(x, y, str, style, width)
}

// printTextFixedWidth prints str in exactly width columns, truncating wide
// text and padding short text with spaces.
func (a *App) printTextFixedWidth(x, y int, str string, style tcell.Style, width int) {
	if width <= 0 || y < 0 {
		return
	}
	str = runewidth.Truncate(str, width, "")
	col := 0
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+col >= 0 {
			a.screen.SetContent(x+col, y, r, nil, style)
		}
		col += rw
	}
	for ; col < width; col++ {
		if x+col >= 0 {
			a.screen.SetContent(x+col, y, ' ', nil, style)
		}
	}
}

// splitLines returns exactly maxLines lines of text.
func splitLines(text string, maxLines int) []string {
	if maxLines <= 0 {
		return []string{}
	}
	out := make([]string, maxLines)
	copy(out, strings.Split(text, "\n"))
	return out
}

func (a *App) drawHelpPopup(help string) {
	w, h := a.screen.Size()
	if w < 10 || h < 5 {
		return
	}

	padding := 2
	maxPW := w - 6
	maxPH := h - 4

	innerW := min(maxPW-padding*2, 50)
	if innerW < 30 {
		innerW = max(30, maxPW-padding*2)
	}
	innerW = min(innerW, maxPW-padding*2)
	if innerW < 3 {
		return
	}

	lines := wrapText(help, innerW)
	if limit := max(maxPH-padding*2, 0); len(lines) > limit {
		lines = lines[:limit]
	}
	innerH := max(len(lines), 3)

	pw := innerW + padding*2
	ph := innerH + padding*2
	left := (w - pw) / 2
	top := (h - ph) / 2

	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDefault)
	bgStyle := tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorWhite)

	a.fill(left, top, pw, ph, bgStyle)
	drawBox(a.screen, left, top, pw, ph, borderStyle)

	vOffset := (ph - padding*2 - len(lines)) / 2
	for i, ln := range lines {
		a.printTextFixedWidth(left+padding, top+padding+vOffset+i, ln, bgStyle, innerW)
	}
}

// drawBox draws a single line frame around the given rectangle.
func drawBox(s tcell.Screen, left, top, width, height int, style tcell.Style) {
	for x := left + 1; x < left+width-1; x++ {
		s.SetContent(x, top, tcell.RuneHLine, nil, style)
		s.SetContent(x, top+height-1, tcell.RuneHLine, nil, style)
	}
	for y := top + 1; y < top+height-1; y++ {
		s.SetContent(left, y, tcell.RuneVLine, nil, style)
		s.SetContent(left+width-1, y, tcell.RuneVLine, nil, style)
	}
	s.SetContent(left, top, tcell.RuneULCorner, nil, style)
	s.SetContent(left+width-1, top, tcell.RuneURCorner, nil, style)
	s.SetContent(left, top+height-1, tcell.RuneLLCorner, nil, style)
	s.SetContent(left+width-1, top+height-1, tcell.RuneLRCorner, nil, style)
}

// wrapText wraps each line of s at word boundaries into lines at most limit
// columns wide. Blank lines are dropped.
func wrapText(s string, limit int) []string {
	if limit <= 2 {
		return []string{s}
	}

	var result []string
	paragraphs := strings.Split(s, "\n")

	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}

		cur := ""
		for _, w := range words {
			for runewidth.StringWidth(w) > limit {
				if cur != "" {
					result = append(result, cur)
					cur = ""
				}
				head := runewidth.Truncate(w, limit, "")
				result = append(result, head)
				w = w[len(head):]
			}
			switch {
			case w == "":
			case cur == "":
				cur = w
			case runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= limit:
				cur += " " + w
			default:
				result = append(result, cur)
				cur = w
			}
		}
		if cur != "" {
			result = append(result, cur)
		}
	}
	return result
}
