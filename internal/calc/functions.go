package calc

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"grider/internal/formula"
	"grider/internal/grid"
)

type function func(args []any) any

var functions = map[string]function{
	"SUM":     fnSum,
	"AVERAGE": fnAverage,
	"MIN":     fnMin,
	"MAX":     fnMax,
	"COUNT":   fnCount,
	"ROUND":   fnRound,
	"IF":      fnIf,
	"AND":     fnAnd,
	"OR":      fnOr,
	"NOT":     fnNot,
	"TRUE":    func(args []any) any { return noArgs(args, true) },
	"FALSE":   func(args []any) any { return noArgs(args, false) },
	"CONCAT":  fnConcat,
}

// Functions lists the names the evaluator knows, sorted.
func Functions() []string {
	return slices.Sorted(maps.Keys(functions))
}

func call(name string, args []any) any {
	fn, ok := functions[name]
	if !ok {
		return formula.ErrName
	}
	return fn(args)
}

// numbers flattens args into numbers. Direct arguments must be numeric;
// text and booleans inside ranges are skipped.
func numbers(args []any) ([]float64, formula.ErrorValue) {
	var out []float64
	for _, arg := range args {
		if r, ok := arg.(rangeValue); ok {
			for _, v := range r {
				switch t := v.(type) {
				case formula.ErrorValue:
					return nil, t
				case float64:
					out = append(out, t)
				case string:
					if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
						out = append(out, n)
					}
				}
			}
			continue
		}
		n, err := toNumber(arg)
		if err != "" {
			return nil, err
		}
		out = append(out, n)
	}
	return out, ""
}

func fnSum(args []any) any {
	values, err := numbers(args)
	if err != "" {
		return err
	}
	return floats.Sum(values)
}

func fnAverage(args []any) any {
	values, err := numbers(args)
	if err != "" {
		return err
	}
	if len(values) == 0 {
		return formula.ErrDivZero
	}
	return stat.Mean(values, nil)
}

func fnMin(args []any) any {
	values, err := numbers(args)
	if err != "" {
		return err
	}
	if len(values) == 0 {
		return 0.0
	}
	return floats.Min(values)
}

func fnMax(args []any) any {
	values, err := numbers(args)
	if err != "" {
		return err
	}
	if len(values) == 0 {
		return 0.0
	}
	return floats.Max(values)
}

// fnCount counts numeric values, skipping errors.
func fnCount(args []any) any {
	count := 0.0
	for _, arg := range args {
		values, ok := arg.(rangeValue)
		if !ok {
			values = rangeValue{arg}
		}
		for _, v := range values {
			switch t := v.(type) {
			case float64:
				count++
			case string:
				if _, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
					count++
				}
			}
		}
	}
	return count
}

func fnRound(args []any) any {
	if len(args) < 1 || len(args) > 2 {
		return formula.ErrValue
	}
	value, err := toNumber(args[0])
	if err != "" {
		return err
	}
	digits := 0.0
	if len(args) == 2 {
		if digits, err = toNumber(args[1]); err != "" {
			return err
		}
	}
	multiplier := math.Pow(10, math.Trunc(digits))
	return math.Round(value*multiplier) / multiplier
}

func fnIf(args []any) any {
	if len(args) < 2 || len(args) > 3 {
		return formula.ErrValue
	}
	cond, err := toBool(args[0])
	if err != "" {
		return err
	}
	if cond {
		return scalar(args[1])
	}
	if len(args) == 3 {
		return scalar(args[2])
	}
	return false
}

func booleans(args []any) ([]bool, formula.ErrorValue) {
	var out []bool
	for _, arg := range args {
		values, ok := arg.(rangeValue)
		if !ok {
			values = rangeValue{arg}
		}
		for _, v := range values {
			if v == nil {
				continue
			}
			b, err := toBool(v)
			if err != "" {
				return nil, err
			}
			out = append(out, b)
		}
	}
	return out, ""
}

func fnAnd(args []any) any {
	values, err := booleans(args)
	if err != "" {
		return err
	}
	if len(values) == 0 {
		return formula.ErrValue
	}
	for _, v := range values {
		if !v {
			return false
		}
	}
	return true
}

func fnOr(args []any) any {
	values, err := booleans(args)
	if err != "" {
		return err
	}
	if len(values) == 0 {
		return formula.ErrValue
	}
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}

func fnNot(args []any) any {
	if len(args) != 1 {
		return formula.ErrValue
	}
	b, err := toBool(args[0])
	if err != "" {
		return err
	}
	return !b
}

func fnConcat(args []any) any {
	var b strings.Builder
	for _, arg := range args {
		values, ok := arg.(rangeValue)
		if !ok {
			values = rangeValue{arg}
		}
		for _, v := range values {
			if e, ok := v.(formula.ErrorValue); ok {
				return e
			}
			b.WriteString(grid.FormatValue(v))
		}
	}
	return b.String()
}

func noArgs(args []any, v bool) any {
	if len(args) != 0 {
		return formula.ErrValue
	}
	return v
}
