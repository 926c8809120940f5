package point_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grider/internal/point"
)

func TestNewRange_Normalizes(t *testing.T) {
	corners := []point.Point{
		{Row: 0, Column: 0},
		{Row: 3, Column: 1},
		{Row: 1, Column: 4},
		{Row: 5, Column: 5},
		{Row: 2, Column: 0},
	}
	for _, p := range corners {
		for _, q := range corners {
			r := point.NewRange(p, q)
			assert.LessOrEqual(t, r.Start.Row, r.End.Row)
			assert.LessOrEqual(t, r.Start.Column, r.End.Column)
			assert.Equal(t, r.Size(), point.NewRange(q, p).Size())
			assert.GreaterOrEqual(t, r.Size(), 1)
		}
	}
}

func TestRange_Has(t *testing.T) {
	r := point.NewRange(point.Point{Row: 2, Column: 3}, point.Point{Row: 0, Column: 1})

	assert.True(t, r.Has(point.Point{Row: 0, Column: 1}))
	assert.True(t, r.Has(point.Point{Row: 1, Column: 2}))
	assert.True(t, r.Has(point.Point{Row: 2, Column: 3}))
	assert.False(t, r.Has(point.Point{Row: 3, Column: 3}))
	assert.False(t, r.Has(point.Point{Row: 1, Column: 0}))
}

func TestRange_PointsRowMajorAndRestartable(t *testing.T) {
	r := point.NewRange(point.Point{Row: 1, Column: 1}, point.Origin)
	want := []point.Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

	require.Equal(t, want, slices.Collect(r.Points()))
	require.Equal(t, want, slices.Collect(r.Points()))
	assert.Equal(t, 4, r.Size())
}

func TestRange_PointsStopsEarly(t *testing.T) {
	r := point.NewRange(point.Origin, point.Point{Row: 9, Column: 9})
	n := 0
	for range r.Points() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestRange_Intersect(t *testing.T) {
	a := point.NewRange(point.Origin, point.Point{Row: 3, Column: 3})
	b := point.NewRange(point.Point{Row: 2, Column: 2}, point.Point{Row: 5, Column: 5})

	got, ok := a.Intersect(b)
	require.True(t, ok)
	assert.Equal(t, point.NewRange(point.Point{Row: 2, Column: 2}, point.Point{Row: 3, Column: 3}), got)

	_, ok = a.Intersect(point.Single(point.Point{Row: 9, Column: 9}))
	assert.False(t, ok)
}

func TestEqualAndLess(t *testing.T) {
	assert.True(t, point.Equal(point.Point{Row: 1, Column: 2}, point.Point{Row: 1, Column: 2}))
	assert.False(t, point.Equal(point.Point{Row: 1, Column: 2}, point.Point{Row: 2, Column: 1}))
	assert.True(t, point.Less(point.Point{Row: 0, Column: 9}, point.Point{Row: 1, Column: 0}))
	assert.True(t, point.Less(point.Point{Row: 1, Column: 0}, point.Point{Row: 1, Column: 1}))
}
