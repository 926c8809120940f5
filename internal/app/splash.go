package app

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	splashTitle = "GRI:DER"
	splashHint  = "any key: open sheet   Esc: quit"
)

var (
	splashFrameStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	splashHintStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	splashInfoStyle  = tcell.StyleDefault.Foreground(tcell.ColorLightGray).Italic(true)
)

// splash is the start screen: a framed box with the title, a line about the
// sheet being opened and the key hint.
type splash struct {
	screen tcell.Screen
	info   string
}

// Splash types out the title one letter per step inside a frame and waits
// for a key. It reports false when the user asked to quit with Esc or
// Ctrl+Q instead of opening the sheet.
func Splash(s tcell.Screen, info string, step time.Duration) bool {
	sp := splash{screen: s, info: info}
	title := []rune(splashTitle)
	for n := 1; n <= len(title); n++ {
		sp.draw(string(title[:n]))
		time.Sleep(step)
	}

	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventKey:
			return ev.Key() != tcell.KeyEsc && ev.Key() != tcell.KeyCtrlQ
		case *tcell.EventResize:
			s.Sync()
			sp.draw(splashTitle)
		}
	}
}

func (sp splash) draw(title string) {
	s := sp.screen
	s.Clear()
	w, h := s.Size()

	inner := max(runewidth.StringWidth(splashTitle), runewidth.StringWidth(splashHint), runewidth.StringWidth(sp.info))
	bw, bh := inner+4, 8
	left, top := (w-bw)/2, (h-bh)/2
	drawBox(s, left, top, bw, bh, splashFrameStyle)

	sp.drawTitle(title, top+2)
	sp.center(top+3, sp.info, splashInfoStyle)
	sp.center(top+5, splashHint, splashHintStyle)
	s.Show()
}

// drawTitle writes the revealed part of the title at its final position.
// The letters around the colon are highlighted.
func (sp splash) drawTitle(title string, y int) {
	w, _ := sp.screen.Size()
	x := (w - runewidth.StringWidth(splashTitle)) / 2
	colon := strings.IndexRune(splashTitle, ':')
	for i, ch := range []rune(title) {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
		if i >= colon-1 && i <= colon+1 {
			style = style.Foreground(tcell.ColorYellow)
		}
		sp.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

func (sp splash) center(y int, text string, style tcell.Style) {
	w, _ := sp.screen.Size()
	x := (w - runewidth.StringWidth(text)) / 2
	for _, ch := range text {
		sp.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}
