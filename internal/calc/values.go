package calc

import (
	"math"
	"strconv"
	"strings"

	"grider/internal/formula"
	"grider/internal/grid"
)

// scalar collapses a one-cell range to its value. Larger ranges are not
// valid outside function arguments.
func scalar(v any) any {
	r, ok := v.(rangeValue)
	if !ok {
		return v
	}
	if len(r) == 1 {
		return r[0]
	}
	return formula.ErrValue
}

// firstError returns the first error operand, if any.
func firstError(values ...any) (formula.ErrorValue, bool) {
	for _, v := range values {
		if e, ok := scalar(v).(formula.ErrorValue); ok {
			return e, true
		}
	}
	return "", false
}

// toNumber coerces v for arithmetic. Absent cells count as zero.
func toNumber(v any) (float64, formula.ErrorValue) {
	switch t := scalar(v).(type) {
	case nil:
		return 0, ""
	case float64:
		return t, ""
	case int:
		return float64(t), ""
	case bool:
		if t {
			return 1, ""
		}
		return 0, ""
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, ""
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, formula.ErrValue
		}
		return n, ""
	case formula.ErrorValue:
		return 0, t
	}
	return 0, formula.ErrValue
}

func toBool(v any) (bool, formula.ErrorValue) {
	switch t := scalar(v).(type) {
	case bool:
		return t, ""
	case string:
		switch strings.ToUpper(strings.TrimSpace(t)) {
		case "TRUE":
			return true, ""
		case "FALSE":
			return false, ""
		}
	}
	n, err := toNumber(v)
	if err != "" {
		return false, err
	}
	return n != 0, ""
}

func arithmetic(op string, left, right any) any {
	if e, ok := firstError(left, right); ok {
		return e
	}
	l, err := toNumber(left)
	if err != "" {
		return err
	}
	r, err := toNumber(right)
	if err != "" {
		return err
	}
	switch op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		if r == 0 {
			return formula.ErrDivZero
		}
		return l / r
	case "^":
		v := math.Pow(l, r)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return formula.ErrValue
		}
		return v
	}
	return formula.ErrGeneric
}

func concat(left, right any) any {
	if e, ok := firstError(left, right); ok {
		return e
	}
	return grid.FormatValue(scalar(left)) + grid.FormatValue(scalar(right))
}

func compare(op string, left, right any) any {
	if e, ok := firstError(left, right); ok {
		return e
	}
	var c int
	l, lerr := toNumber(left)
	r, rerr := toNumber(right)
	if lerr == "" && rerr == "" {
		switch {
		case l < r:
			c = -1
		case l > r:
			c = 1
		}
	} else {
		c = strings.Compare(
			strings.ToUpper(grid.FormatValue(scalar(left))),
			strings.ToUpper(grid.FormatValue(scalar(right))),
		)
	}
	switch op {
	case "=":
		return c == 0
	case "<>":
		return c != 0
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	case ">=":
		return c >= 0
	}
	return formula.ErrGeneric
}
