package app

import (
	"math"
	"strconv"
	"strings"

	"grider/internal/grid"
)

// Viewer renders the computed value of a cell.
type Viewer func(value any) string

// DefaultViewers returns the viewers a cell can pick by name.
func DefaultViewers() map[string]Viewer {
	return map[string]Viewer{
		"":         displayValue,
		"checkbox": checkboxViewer,
		"percent":  percentViewer,
	}
}

// viewer returns the viewer named by cell, falling back to the default.
func (a *App) viewer(cell grid.Cell) Viewer {
	if v, ok := a.Viewers[cell.DataViewer]; ok {
		return v
	}
	return displayValue
}

// displayValue shows whole numbers without decimals and others with at
// most six.
func displayValue(v any) string {
	f, ok := v.(float64)
	if !ok {
		return grid.FormatValue(v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "#ERR"
	}
	if math.Abs(f-math.Round(f)) < 1e-9 {
		return strconv.FormatFloat(math.Round(f), 'f', 0, 64)
	}
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

func checkboxViewer(v any) string {
	switch t := v.(type) {
	case nil:
		return "[ ]"
	case bool:
		if t {
			return "[x]"
		}
		return "[ ]"
	case string:
		if strings.EqualFold(t, "true") || t == "1" {
			return "[x]"
		}
		return "[ ]"
	case float64:
		if t != 0 {
			return "[x]"
		}
		return "[ ]"
	}
	return displayValue(v)
}

func percentViewer(v any) string {
	f, ok := v.(float64)
	if !ok {
		s, isText := v.(string)
		if !isText {
			return displayValue(v)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return s
		}
		f = n
	}
	return displayValue(f*100) + "%"
}
