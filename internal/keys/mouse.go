package keys

import (
	"github.com/gdamore/tcell/v2"

	"grider/internal/point"
	"grider/internal/store"
)

// Mouse maps a mouse event. at is the cell under the pointer, when there is
// one.
func (m *Mapper) Mouse(ev *tcell.EventMouse, at *point.Point, s store.State) Result {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		return Result{Scroll: -1, Handled: true}
	case buttons&tcell.WheelDown != 0:
		return Result{Scroll: 1, Handled: true}
	case buttons&tcell.Button1 != 0:
		if m.pressed {
			// drag
			if at == nil {
				return Result{Handled: true}
			}
			return handled(store.Select{Point: *at})
		}
		if at == nil {
			return Result{}
		}
		m.pressed = true
		var actions []store.Action
		if s.Mode == store.ModeEdit {
			actions = append(actions, m.commit())
		}
		if ev.Modifiers()&tcell.ModShift != 0 && s.Active != nil {
			actions = append(actions, store.Select{Point: *at})
		} else {
			actions = append(actions, store.Activate{Point: *at})
		}
		return handled(append(actions, store.SetDragging{Dragging: true})...)
	case buttons == tcell.ButtonNone && m.pressed:
		m.pressed = false
		return handled(store.SetDragging{Dragging: false})
	}
	return Result{}
}
