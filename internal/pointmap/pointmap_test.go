package pointmap_test

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grider/internal/point"
	"grider/internal/pointmap"
)

func p(row, column int) point.Point {
	return point.Point{Row: row, Column: column}
}

func TestMap_SetIsCopyOnWrite(t *testing.T) {
	empty := pointmap.From[string]()
	one := empty.Set(p(1, 2), "a")
	two := one.Set(p(1, 3), "b")

	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Has(p(1, 2)))
	assert.Equal(t, 1, one.Len())
	assert.False(t, one.Has(p(1, 3)))
	assert.Equal(t, 2, two.Len())

	v, ok := two.Get(p(1, 2))
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestMap_SetExistingKeyKeepsSize(t *testing.T) {
	m := pointmap.From(pointmap.Entry[int]{Point: p(0, 0), Value: 1})
	m2 := m.Set(p(0, 0), 2)

	assert.Equal(t, 1, m2.Len())
	v, _ := m2.Get(p(0, 0))
	assert.Equal(t, 2, v)
	v, _ = m.Get(p(0, 0))
	assert.Equal(t, 1, v)
}

func TestMap_ZeroValueIsUsable(t *testing.T) {
	var m pointmap.Map[int]
	assert.False(t, m.Has(p(0, 0)))
	assert.Equal(t, 0, m.Len())

	m = m.Set(p(4, 4), 7)
	assert.True(t, m.Has(p(4, 4)))
}

func TestMap_Delete(t *testing.T) {
	m := pointmap.From(
		pointmap.Entry[int]{Point: p(0, 0), Value: 1},
		pointmap.Entry[int]{Point: p(0, 1), Value: 2},
	)
	d := m.Delete(p(0, 0))

	assert.Equal(t, 1, d.Len())
	assert.False(t, d.Has(p(0, 0)))
	assert.True(t, m.Has(p(0, 0)))
	assert.Equal(t, d, d.Delete(p(5, 5)))
}

func TestMap_EntriesRowMajor(t *testing.T) {
	m := pointmap.From(
		pointmap.Entry[string]{Point: p(2, 0), Value: "c"},
		pointmap.Entry[string]{Point: p(0, 5), Value: "b"},
		pointmap.Entry[string]{Point: p(0, 1), Value: "a"},
	)
	keys := slices.Collect(maps.Keys(maps.Collect(m.Entries())))
	assert.Len(t, keys, 3)

	var order []string
	for _, v := range m.Entries() {
		order = append(order, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestMap_FilterAndTransform(t *testing.T) {
	m := pointmap.From(
		pointmap.Entry[int]{Point: p(0, 0), Value: 1},
		pointmap.Entry[int]{Point: p(1, 1), Value: 2},
		pointmap.Entry[int]{Point: p(2, 2), Value: 3},
	)
	odd := m.Filter(func(_ point.Point, v int) bool { return v%2 == 1 })
	assert.Equal(t, 2, odd.Len())
	assert.False(t, odd.Has(p(1, 1)))

	doubled := pointmap.Transform(m, func(_ point.Point, v int) int { return v * 2 })
	v, _ := doubled.Get(p(2, 2))
	assert.Equal(t, 6, v)
}

func TestMap_Extent(t *testing.T) {
	_, ok := pointmap.From[int]().Extent()
	assert.False(t, ok)

	m := pointmap.From(
		pointmap.Entry[int]{Point: p(3, 1)},
		pointmap.Entry[int]{Point: p(1, 4)},
	)
	r, ok := m.Extent()
	require.True(t, ok)
	assert.Equal(t, point.NewRange(p(1, 1), p(3, 4)), r)
}

func TestSet(t *testing.T) {
	s := pointmap.NewSet(p(1, 1), p(0, 0), p(1, 1))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []point.Point{p(0, 0), p(1, 1)}, s.Slice())

	s2 := s.Add(p(0, 3))
	assert.True(t, s2.Has(p(0, 3)))
	assert.False(t, s.Has(p(0, 3)))

	s3 := s2.Remove(p(0, 0))
	assert.Equal(t, []point.Point{p(0, 3), p(1, 1)}, s3.Slice())
}
