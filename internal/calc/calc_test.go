package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grider/internal/calc"
	"grider/internal/formula"
	"grider/internal/point"
)

// values is a resolver over a fixed set of cell values.
type values map[point.Point]any

func (v values) CellValue(p point.Point) any { return v[p] }

func (v values) CellRangeValue(start, end point.Point) []any {
	var out []any
	for p := range point.NewRange(start, end).Points() {
		out = append(out, v[p])
	}
	return out
}

func at(row, column int) point.Point { return point.Point{Row: row, Column: column} }

func TestEvaluatorParse(t *testing.T) {
	cells := values{
		at(0, 0): 1.0,
		at(1, 0): 2.0,
		at(2, 0): "3",
		at(0, 1): "text",
		at(1, 1): formula.ErrCycle,
	}

	cases := []struct {
		name string
		expr string
		want any
		err  formula.ErrorValue
	}{
		{name: "addition", expr: "1+1", want: 2.0},
		{name: "precedence", expr: "2*3+4", want: 10.0},
		{name: "parentheses", expr: "(1+2)*3", want: 9.0},
		{name: "unary minus", expr: "-2+5", want: 3.0},
		{name: "power", expr: "2^3", want: 8.0},
		{name: "percent", expr: "50%", want: 0.5},
		{name: "division by zero", expr: "10/0", err: formula.ErrDivZero},
		{name: "cell reference", expr: "A1+A2", want: 3.0},
		{name: "numeric text", expr: "A3*2", want: 6.0},
		{name: "text in arithmetic", expr: "B1+1", err: formula.ErrValue},
		{name: "absent cell", expr: "C9", want: nil},
		{name: "absent cell counts as zero", expr: "C9+1", want: 1.0},
		{name: "error operand propagates", expr: "B2+1", err: formula.ErrCycle},
		{name: "sum range", expr: "SUM(A1:A3)", want: 6.0},
		{name: "sum mixed", expr: "SUM(A1:A2, 10)", want: 13.0},
		{name: "average", expr: "AVERAGE(A1:A2)", want: 1.5},
		{name: "average of nothing", expr: "AVERAGE(C1:C2)", err: formula.ErrDivZero},
		{name: "min", expr: "MIN(A1:A3)", want: 1.0},
		{name: "max", expr: "MAX(A1:A3, 7)", want: 7.0},
		{name: "count skips text", expr: "COUNT(A1:B3)", want: 3.0},
		{name: "round", expr: "ROUND(2.456, 2)", want: 2.46},
		{name: "if true branch", expr: `IF(A1>0, "pos", "neg")`, want: "pos"},
		{name: "if false branch", expr: `IF(A1>5, "pos", "neg")`, want: "neg"},
		{name: "if ignores unused error", expr: "IF(TRUE, 1, 1/0)", want: 1.0},
		{name: "and", expr: "AND(TRUE, A1=1)", want: true},
		{name: "or", expr: "OR(FALSE, A1<>1)", want: false},
		{name: "not", expr: "NOT(FALSE)", want: true},
		{name: "concatenation", expr: `"a"&"b"&1`, want: "ab1"},
		{name: "concat function", expr: `CONCAT(B1, "-", A1)`, want: "text-1"},
		{name: "unknown function", expr: "NOPE(1)", err: formula.ErrName},
		{name: "range outside function", expr: "A1:A2", err: formula.ErrValue},
		{name: "dangling operator", expr: "1+", err: formula.ErrGeneric},
		{name: "empty", expr: "", err: formula.ErrGeneric},
	}

	e := calc.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Parse(tc.expr, cells)
			if tc.err != "" {
				assert.Equal(t, tc.err, got.Error)
				return
			}
			require.Empty(t, got.Error)
			if f, ok := tc.want.(float64); ok {
				assert.InDelta(t, f, got.Result, 1e-9)
				return
			}
			assert.Equal(t, tc.want, got.Result)
		})
	}
}

func TestFunctionsSorted(t *testing.T) {
	names := calc.Functions()
	assert.Contains(t, names, "SUM")
	assert.IsIncreasing(t, names)
}
