package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
)

func TestReadCSV(t *testing.T) {
	data, err := ReadCSV(strings.NewReader("a,b,c\n1,,\"x,y\"\nlast\n"))
	require.NoError(t, err)

	assert.Equal(t, matrix.Size{Rows: 3, Columns: 3}, data.Size())

	cell, ok := data.Get(point.Point{Row: 1, Column: 2})
	require.True(t, ok)
	assert.Equal(t, "x,y", cell.Value)

	cell, ok = data.Get(point.Point{Row: 1, Column: 1})
	require.True(t, ok)
	assert.Nil(t, cell.Value)

	assert.False(t, data.Has(point.Point{Row: 2, Column: 1}))
}

func TestReadCSVError(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("\"unterminated\n"))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n=A1+B1\n"), 0o644))

	data, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, [][]grid.Cell{
		{{Value: "1"}, {Value: "2"}},
		{{Value: "=A1+B1"}},
	}, data.Rows())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitHeader(t *testing.T) {
	data, err := ReadCSV(strings.NewReader("name,price\napple,3\npear\n"))
	require.NoError(t, err)

	labels, rest := SplitHeader(data)
	assert.Equal(t, []string{"name", "price"}, labels)
	assert.Equal(t, matrix.Size{Rows: 2, Columns: 2}, rest.Size())
	cell, ok := rest.Get(point.Point{Row: 1, Column: 0})
	require.True(t, ok)
	assert.Equal(t, "pear", cell.Value)
	assert.False(t, rest.Has(point.Point{Row: 1, Column: 1}))

	labels, rest = SplitHeader(matrix.From([][]grid.Cell{{{Value: "only"}}}))
	assert.Equal(t, []string{"only"}, labels)
	assert.True(t, rest.Size().Empty())

	labels, _ = SplitHeader(matrix.Matrix[grid.Cell]{})
	assert.Nil(t, labels)
}
