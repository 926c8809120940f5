package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/selection"
)

func at(row, column int) point.Point { return point.Point{Row: row, Column: column} }

var size4 = matrix.Size{Rows: 4, Columns: 4}

func TestRangeSelection(t *testing.T) {
	s := selection.NewRange(at(1, 1), at(0, 0))

	assert.True(t, selection.Has(s, size4, at(1, 0)))
	assert.False(t, selection.Has(s, size4, at(2, 0)))
	assert.Equal(t, 4, selection.Size(s, size4))
	assert.Equal(t, []point.Point{at(0, 0), at(0, 1), at(1, 0), at(1, 1)}, selection.Points(s, size4))
	assert.False(t, s.HasEntireRow(0))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   selection.Selection
		size matrix.Size
		want selection.Selection
	}{
		{"range clamped", selection.NewRange(at(2, 2), at(9, 9)), size4, selection.NewRange(at(2, 2), at(3, 3))},
		{"range outside", selection.Cell(at(7, 7)), size4, selection.Empty{}},
		{"range on empty sheet", selection.Cell(at(0, 0)), matrix.Size{}, selection.Empty{}},
		{"rows clamped", selection.NewEntireRows(2, 10), size4, selection.EntireRows{Start: 2, End: 3}},
		{"rows outside", selection.NewEntireRows(5, 6), size4, selection.Empty{}},
		{"columns clamped", selection.NewEntireColumns(3, 1), matrix.Size{Rows: 1, Columns: 2}, selection.EntireColumns{Start: 1, End: 1}},
		{"worksheet", selection.EntireWorksheet{}, size4, selection.EntireWorksheet{}},
		{"empty", selection.Empty{}, size4, selection.Empty{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize(tc.size))
		})
	}
}

func TestEntireSelectionsGrowWithData(t *testing.T) {
	rows := selection.NewEntireRows(1, 1)
	assert.Equal(t, 4, selection.Size(rows, size4))
	assert.Equal(t, 6, selection.Size(rows, matrix.Size{Rows: 4, Columns: 6}))
	assert.True(t, rows.HasEntireRow(1))
	assert.False(t, rows.HasEntireColumn(1))

	cols := selection.NewEntireColumns(0, 1)
	assert.Equal(t, 8, selection.Size(cols, size4))
	assert.True(t, selection.Has(cols, size4, at(3, 1)))
	assert.False(t, selection.Has(cols, size4, at(3, 2)))

	all := selection.EntireWorksheet{}
	assert.Equal(t, 16, selection.Size(all, size4))
	assert.True(t, all.HasEntireRow(3) && all.HasEntireColumn(3))
	assert.True(t, selection.IsEmpty(all, matrix.Size{}))
	assert.True(t, selection.IsEmpty(selection.Empty{}, size4))
}

func TestQueriesClampToSize(t *testing.T) {
	cases := []struct {
		name    string
		in      selection.Selection
		inside  point.Point
		outside point.Point
		want    int
	}{
		{"range past the corner", selection.NewRange(at(0, 0), at(9, 9)), at(3, 3), at(8, 8), 16},
		{"range partly out", selection.NewRange(at(2, 2), at(5, 5)), at(3, 3), at(4, 4), 4},
		{"rows partly out", selection.NewEntireRows(3, 6), at(3, 0), at(5, 0), 4},
		{"rows outside", selection.NewEntireRows(5, 6), at(-1, -1), at(5, 0), 0},
		{"columns outside", selection.NewEntireColumns(4, 8), at(-1, -1), at(0, 4), 0},
		{"columns partly out", selection.NewEntireColumns(2, 7), at(0, 3), at(0, 6), 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, selection.Size(tc.in, size4))
			assert.Len(t, selection.Points(tc.in, size4), tc.want)
			assert.False(t, selection.Has(tc.in, size4, tc.outside))
			if tc.want > 0 {
				assert.True(t, selection.Has(tc.in, size4, tc.inside))
			} else {
				assert.True(t, selection.IsEmpty(tc.in, size4))
			}
		})
	}
}

func TestModifyEdge(t *testing.T) {
	cases := []struct {
		name   string
		in     selection.Selection
		active point.Point
		edge   selection.Direction
		want   selection.Selection
	}{
		{"grow right", selection.Cell(at(1, 1)), at(1, 1), selection.Right, selection.NewRange(at(1, 1), at(1, 2))},
		{"grow left", selection.Cell(at(1, 1)), at(1, 1), selection.Left, selection.NewRange(at(1, 0), at(1, 1))},
		{"grow down", selection.Cell(at(1, 1)), at(1, 1), selection.Bottom, selection.NewRange(at(1, 1), at(2, 1))},
		{"grow up", selection.Cell(at(1, 1)), at(1, 1), selection.Top, selection.NewRange(at(0, 1), at(1, 1))},
		{"shrink from right", selection.NewRange(at(1, 1), at(1, 3)), at(1, 1), selection.Left, selection.NewRange(at(1, 1), at(1, 2))},
		{"shrink from top", selection.NewRange(at(0, 1), at(2, 1)), at(2, 1), selection.Bottom, selection.NewRange(at(1, 1), at(2, 1))},
		{"clamped at sheet edge", selection.Cell(at(0, 0)), at(0, 0), selection.Left, selection.Cell(at(0, 0))},
		{"clamped at far edge", selection.Cell(at(3, 3)), at(3, 3), selection.Bottom, selection.Cell(at(3, 3))},
		{"rows grow", selection.NewEntireRows(1, 1), at(1, 0), selection.Bottom, selection.EntireRows{Start: 1, End: 2}},
		{"rows shrink", selection.NewEntireRows(0, 2), at(2, 0), selection.Bottom, selection.EntireRows{Start: 1, End: 2}},
		{"rows ignore horizontal", selection.NewEntireRows(1, 1), at(1, 0), selection.Left, selection.EntireRows{Start: 1, End: 1}},
		{"columns grow left", selection.NewEntireColumns(2, 2), at(0, 2), selection.Left, selection.EntireColumns{Start: 1, End: 2}},
		{"columns ignore vertical", selection.NewEntireColumns(2, 2), at(0, 2), selection.Top, selection.EntireColumns{Start: 2, End: 2}},
		{"worksheet unchanged", selection.EntireWorksheet{}, at(0, 0), selection.Right, selection.EntireWorksheet{}},
		{"empty unchanged", selection.Empty{}, at(0, 0), selection.Right, selection.Empty{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, selection.ModifyEdge(tc.in, tc.active, size4, tc.edge))
		})
	}
}
