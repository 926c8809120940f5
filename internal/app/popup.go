package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const maxPopupInput = 4096

// PopupInput shows a modal input box with prompt and initial text on top of
// the sheet. It returns the entered text and true on Enter, or false when
// the user cancels with Esc.
func (a *App) PopupInput(prompt, initial string) (string, bool) {
	s := a.screen
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorReset)

	promptW := runewidth.StringWidth(prompt)
	buf := []rune(initial)
	pos := len(buf)

	boxH := 3
	var boxW, left, top int
	place := func() {
		w, h := s.Size()
		boxW = min(max(20, promptW+len(buf)+2), w-4) + 4
		left = (w - boxW) / 2
		top = (h - boxH) / 2
	}

	drawInput := func() {
		a.fill(left, top, boxW, boxH, style)
		drawBox(a.screen, left, top, boxW, boxH, style)

		x := left + 2
		y := top + 1
		a.printTextFixedWidth(x, y, prompt, style, promptW)
		x += promptW + 1

		maxField := max(boxW-4-promptW-1, 1)
		start := 0
		if pos > maxField {
			start = pos - maxField
		}
		end := min(len(buf), start+maxField)
		a.printTextFixedWidth(x, y, string(buf[start:end]), style, maxField)

		s.ShowCursor(x+runewidth.StringWidth(string(buf[start:pos])), y)
	}

	redraw := func() {
		a.Draw()
		drawInput()
		s.Show()
	}

	place()
	redraw()

	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return "", false
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEsc:
				s.HideCursor()
				return "", false
			case tcell.KeyEnter:
				s.HideCursor()
				return string(buf), true
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if pos > 0 {
					buf = append(buf[:pos-1], buf[pos:]...)
					pos--
				}
			case tcell.KeyDelete:
				if pos < len(buf) {
					buf = append(buf[:pos], buf[pos+1:]...)
				}
			case tcell.KeyLeft:
				if pos > 0 {
					pos--
				}
			case tcell.KeyRight:
				if pos < len(buf) {
					pos++
				}
			case tcell.KeyHome:
				pos = 0
			case tcell.KeyEnd:
				pos = len(buf)
			case tcell.KeyRune:
				if len(buf) < maxPopupInput {
					buf = append(buf[:pos], append([]rune{ev.Rune()}, buf[pos:]...)...)
					pos++
				}
			}
			redraw()
		case *tcell.EventResize:
			s.Sync()
			a.follow = true
			a.layout()
			place()
			redraw()
		case *tcell.EventInterrupt:
			a.HandleEvent(ev)
			redraw()
		}
	}
}
