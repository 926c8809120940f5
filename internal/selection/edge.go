package selection

import (
	"grider/internal/matrix"
	"grider/internal/point"
)

// Direction is the edge a selection is extended toward.
type Direction int

const (
	Left Direction = iota
	Right
	Top
	Bottom
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}

func (d Direction) horizontal() bool { return d == Left || d == Right }

// delta is -1 toward the start of an axis and 1 toward its end.
func (d Direction) delta() int {
	if d == Left || d == Top {
		return -1
	}
	return 1
}

// ModifyEdge extends or shrinks s by one cell toward edge, keeping active as
// the anchor. When the cell on the far side of active is selected, the far
// edge moves in; otherwise the edge toward the direction moves out.
func ModifyEdge(s Selection, active point.Point, size matrix.Size, edge Direction) Selection {
	switch sel := s.(type) {
	case Range:
		return modifyRangeEdge(sel, active, size, edge)
	case EntireRows:
		if edge.horizontal() {
			return s
		}
		start, end := modifyBounds(sel.Start, sel.End, active.Row, edge.delta())
		return EntireRows{Start: start, End: end}.Normalize(size)
	case EntireColumns:
		if !edge.horizontal() {
			return s
		}
		start, end := modifyBounds(sel.Start, sel.End, active.Column, edge.delta())
		return EntireColumns{Start: start, End: end}.Normalize(size)
	}
	return s
}

func modifyRangeEdge(s Range, active point.Point, size matrix.Size, edge Direction) Selection {
	r := s.Range.Normalized()
	delta := edge.delta()
	opposite := active
	if edge.horizontal() {
		opposite.Column -= delta
	} else {
		opposite.Row -= delta
	}
	// shrink from the far side or grow toward the edge
	moveStart := delta < 0
	if r.Has(opposite) {
		moveStart = !moveStart
	}
	target := &r.End
	if moveStart {
		target = &r.Start
	}
	if edge.horizontal() {
		target.Column += delta
	} else {
		target.Row += delta
	}
	return Range{r}.Normalize(size)
}

func modifyBounds(start, end, anchor, delta int) (int, int) {
	if delta < 0 {
		if end > anchor {
			end--
		} else {
			start--
		}
	} else {
		if start < anchor {
			start++
		} else {
			end++
		}
	}
	return max(start, 0), max(end, 0)
}
