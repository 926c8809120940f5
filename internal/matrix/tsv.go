package matrix

import (
	"strings"

	"grider/internal/point"
)

const (
	fieldSeparator = '\t'
	rowSeparator   = '\n'
	quote          = '"'
)

// Join serializes m as tab separated rows joined by newlines. Every row is
// written out to the full column count of m; holes become empty fields.
// Fields holding a tab, a line break or a quote are quoted with inner quotes
// doubled.
func Join[T any](m Matrix[T], format func(T) string) string {
	var b strings.Builder
	size := m.Size()
	for r := 0; r < size.Rows; r++ {
		if r > 0 {
			b.WriteByte(rowSeparator)
		}
		for c := 0; c < size.Columns; c++ {
			if c > 0 {
				b.WriteByte(fieldSeparator)
			}
			if v, ok := m.Get(point.Point{Row: r, Column: c}); ok {
				writeField(&b, format(v))
			}
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, field string) {
	if !strings.ContainsAny(field, "\t\n\r\"") {
		b.WriteString(field)
		return
	}
	b.WriteByte(quote)
	b.WriteString(strings.ReplaceAll(field, `"`, `""`))
	b.WriteByte(quote)
}

// Split parses text produced by Join (or by another spreadsheet) back into a
// matrix. Rows end at \n, \r\n or \r outside of quotes. Parsing never fails:
// a stray quote inside an unquoted field is kept literally and an unclosed
// quoted field runs to the end of the text. Any text, including the empty
// string, yields at least one field. Separators are ASCII, so text is
// scanned byte by byte and field bytes, valid UTF-8 or not, pass through
// unchanged.
func Split[T any](text string, parse func(string) T) Matrix[T] {
	var (
		rows  [][]T
		row   []T
		field strings.Builder
	)
	endField := func() {
		row = append(row, parse(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
	}

	atFieldStart := true
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == quote && atFieldStart:
			i = readQuoted(text, i+1, &field)
			atFieldStart = false
		case ch == fieldSeparator:
			endField()
			atFieldStart = true
		case ch == '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
			atFieldStart = true
		case ch == rowSeparator:
			endRow()
			atFieldStart = true
		default:
			field.WriteByte(ch)
			atFieldStart = false
		}
	}
	endRow()
	return From(rows)
}

// readQuoted consumes a quoted field body starting after the opening quote
// and returns the index of the last byte consumed.
func readQuoted(text string, i int, field *strings.Builder) int {
	for ; i < len(text); i++ {
		if text[i] != quote {
			field.WriteByte(text[i])
			continue
		}
		if i+1 < len(text) && text[i+1] == quote {
			field.WriteByte(quote)
			i++
			continue
		}
		return i
	}
	return i - 1
}
