// Package storage seeds a sheet from CSV files.
package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
)

// ReadCSV decodes CSV records into a cell matrix. Rows keep their own length
// and empty fields become empty cells. Values are kept as text.
func ReadCSV(r io.Reader) (matrix.Matrix[grid.Cell], error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return matrix.Matrix[grid.Cell]{}, fmt.Errorf("error reading CSV: %w", err)
	}
	rows := make([][]grid.Cell, len(records))
	for i, record := range records {
		rows[i] = make([]grid.Cell, len(record))
		for j, val := range record {
			if val != "" {
				rows[i][j] = grid.Cell{Value: val}
			}
		}
	}
	return matrix.From(rows), nil
}

// LoadCSV reads the CSV file at filename.
func LoadCSV(filename string) (matrix.Matrix[grid.Cell], error) {
	f, err := os.Open(filename)
	if err != nil {
		return matrix.Matrix[grid.Cell]{}, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer f.Close()
	data, err := ReadCSV(f)
	if err != nil {
		return matrix.Matrix[grid.Cell]{}, fmt.Errorf("could not load %s: %w", filename, err)
	}
	return data, nil
}

// SplitHeader takes the first row of data as column labels and returns the
// remaining rows.
func SplitHeader(data matrix.Matrix[grid.Cell]) ([]string, matrix.Matrix[grid.Cell]) {
	size := data.Size()
	if size.Empty() {
		return nil, data
	}
	labels := make([]string, size.Columns)
	for c := range labels {
		if cell, ok := data.Get(point.Point{Column: c}); ok {
			labels[c] = cell.Text()
		}
	}
	if size.Rows == 1 {
		return labels, matrix.Matrix[grid.Cell]{}
	}
	return labels, data.Slice(point.Point{Row: 1}, point.Point{Row: size.Rows - 1, Column: size.Columns - 1})
}
