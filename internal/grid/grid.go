// Package grid holds the cell payload stored in the sheet matrix and the
// A1-style naming of cell coordinates.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"grider/internal/point"
)

// Cell represents a single cell content.
//
// DataViewer and DataEditor name per-cell renderer overrides. An empty name
// means the host's default renderer is used.
type Cell struct {
	Value      any
	ReadOnly   bool
	ClassName  string
	DataViewer string
	DataEditor string
}

// WithValue returns a copy of c holding v.
func (c Cell) WithValue(v any) Cell {
	c.Value = v
	return c
}

// Text renders the raw value of c the way it is edited and copied.
func (c Cell) Text() string {
	return FormatValue(c.Value)
}

// FormatValue renders a raw or computed cell value as text.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// ColToName: 0 -> A, 25 -> Z, 26 -> AA and so on
func ColToName(col int) string {
	if col < 0 {
		return "?"
	}
	result := ""
	n := col + 1
	for n > 0 {
		n--
		result = string(rune('A'+(n%26))) + result
		n /= 26
	}
	return result
}

// PointName builds the A1 name of p, e.g. row 0, column 0 -> "A1".
func PointName(p point.Point) string {
	return ColToName(p.Column) + strconv.Itoa(p.Row+1)
}

// ParseCellRef parses names like A1, AA10.
// Accepts sheet prefixes like Sheet!A1 and removes $ signs.
func ParseCellRef(name string) (point.Point, bool) {
	name = strings.TrimSpace(name)
	// remove sheet! prefix if present
	if idx := strings.LastIndex(name, "!"); idx != -1 {
		name = strings.TrimSpace(name[idx+1:])
	}
	// remove $ from absolute refs
	name = strings.ReplaceAll(name, "$", "")
	if name == "" {
		return point.Point{}, false
	}

	i := 0
	for i < len(name) && isLetter(name[i]) {
		i++
	}
	if i == 0 || i >= len(name) {
		return point.Point{}, false
	}
	colPart := strings.ToUpper(name[:i])
	col := 0
	for j := 0; j < len(colPart); j++ {
		col = col*26 + int(colPart[j]-'A') + 1
	}
	rowNum, err := strconv.Atoi(name[i:])
	if err != nil || rowNum < 1 {
		return point.Point{}, false
	}
	return point.Point{Row: rowNum - 1, Column: col - 1}, true
}

// ParseRangeRef parses "A1:B2" style references. A single reference is a
// one-cell range.
func ParseRangeRef(ref string) (point.Range, bool) {
	left, right, found := strings.Cut(ref, ":")
	start, ok := ParseCellRef(left)
	if !ok {
		return point.Range{}, false
	}
	if !found {
		return point.Single(start), true
	}
	end, ok := ParseCellRef(right)
	if !ok {
		return point.Range{}, false
	}
	return point.NewRange(start, end), true
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
