package formula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grider/internal/calc"
	"grider/internal/formula"
	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
)

func at(row, column int) point.Point { return point.Point{Row: row, Column: column} }

func sheet(rows ...[]any) matrix.Matrix[grid.Cell] {
	m := matrix.CreateEmpty[grid.Cell](0, 0)
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			m = m.Set(at(r, c), grid.Cell{Value: v})
		}
	}
	return m
}

func TestIsFormulaValue(t *testing.T) {
	assert.True(t, formula.IsFormulaValue("=1+1"))
	assert.False(t, formula.IsFormulaValue("1+1"))
	assert.False(t, formula.IsFormulaValue(2.0))
	assert.False(t, formula.IsFormulaValue(nil))
	assert.Equal(t, "SUM(A1)", formula.ExtractFormula("=SUM(A1)"))
}

func TestComputedValue(t *testing.T) {
	p := calc.New()
	data := sheet([]any{"2", "=A1*3"})

	assert.Nil(t, formula.ComputedValue(p, data, nil))
	assert.Equal(t, "plain", formula.ComputedValue(p, data, &grid.Cell{Value: "plain"}))
	assert.Equal(t, 2.0, formula.ComputedValue(p, data, &grid.Cell{Value: "=1+1"}))
	assert.Equal(t, 6.0, formula.Evaluate(p, data, at(0, 1)))
	assert.Equal(t, formula.ErrDivZero, formula.ComputedValue(p, data, &grid.Cell{Value: "=1/0"}))
}

func TestAbsentReferenceBindsPoint(t *testing.T) {
	p := calc.New()
	data := sheet([]any{nil, "=A1"})

	assert.Nil(t, formula.Evaluate(p, data, at(0, 1)))
	assert.Equal(t, []point.Point{at(0, 0)}, formula.Bindings(p, data, at(0, 1)).Slice())
}

func TestBindingsRecordDirectReadsOnly(t *testing.T) {
	p := calc.New()
	data := sheet(
		[]any{"1", "2", "=SUM(A1:B1)"},
		[]any{"=C1+A1"},
	)

	assert.Equal(t, []point.Point{at(0, 0), at(0, 1)}, formula.Bindings(p, data, at(0, 2)).Slice())
	assert.Equal(t, []point.Point{at(0, 0), at(0, 2)}, formula.Bindings(p, data, at(1, 0)).Slice())
	assert.Zero(t, formula.Bindings(p, data, at(0, 0)).Len())

	all := formula.AllBindings(p, data)
	assert.Equal(t, 2, all.Len())
	assert.Equal(t, []point.Point{at(0, 2), at(1, 0)}, formula.Dependents(all, at(0, 1)))
	assert.Equal(t, []point.Point{at(1, 0)}, formula.Dependents(all, at(0, 2)))
	assert.Empty(t, formula.Dependents(all, at(5, 5)))
}

func TestCycles(t *testing.T) {
	p := calc.New()
	data := sheet([]any{"=B1", "=A1", "=C1"})

	assert.Equal(t, formula.ErrCycle, formula.Evaluate(p, data, at(0, 0)))
	assert.Equal(t, formula.ErrCycle, formula.Evaluate(p, data, at(0, 1)))
	assert.Equal(t, formula.ErrCycle, formula.Evaluate(p, data, at(0, 2)))
	assert.Equal(t, []point.Point{at(0, 2)}, formula.Bindings(p, data, at(0, 2)).Slice())
}

func TestDiamondIsNotACycle(t *testing.T) {
	p := calc.New()
	data := sheet([]any{"1", "=A1+1", "=A1+B1"})

	assert.Equal(t, 3.0, formula.Evaluate(p, data, at(0, 2)))
}

func TestNilParser(t *testing.T) {
	data := sheet([]any{"=1+1"})
	assert.Equal(t, formula.ErrName, formula.Evaluate(nil, data, at(0, 0)))
}

func TestRangeBindingsStayInsideData(t *testing.T) {
	p := calc.New()
	data := sheet(
		[]any{"=SUM(B1:Z200000)", "1"},
		[]any{nil, "2"},
		[]any{nil, "3"},
	)

	assert.Equal(t, 6.0, formula.Evaluate(p, data, at(0, 0)))
	assert.Equal(t, []point.Point{at(0, 1), at(1, 1), at(2, 1)}, formula.Bindings(p, data, at(0, 0)).Slice())
	assert.Zero(t, formula.Bindings(p, sheet([]any{"=SUM(D5:E9)"}), at(0, 0)).Len())
}

func TestLongRangeBindings(t *testing.T) {
	const n = 20000
	rows := make([][]grid.Cell, n)
	for i := range rows {
		rows[i] = []grid.Cell{{}, {Value: "1"}}
	}
	rows[0][0] = grid.Cell{Value: "=SUM(B1:B20000)"}
	data := matrix.From(rows)

	p := calc.New()
	assert.Equal(t, float64(n), formula.Evaluate(p, data, at(0, 0)))
	reads := formula.Bindings(p, data, at(0, 0))
	assert.Equal(t, n, reads.Len())
	assert.True(t, reads.Has(at(n-1, 1)))
}
