// Package formula detects formula cells, evaluates them through a pluggable
// Parser and records which cells each formula reads.
package formula

import (
	"maps"
	"slices"
	"strings"

	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/pointmap"
)

// ErrorValue is the value a failed formula evaluates to.
type ErrorValue string

const (
	ErrGeneric ErrorValue = "#ERROR!"
	ErrDivZero ErrorValue = "#DIV/0!"
	ErrValue   ErrorValue = "#VALUE!"
	ErrRef     ErrorValue = "#REF!"
	ErrName    ErrorValue = "#NAME?"
	ErrNA      ErrorValue = "#N/A"
	// ErrCycle is returned for a cell that is read again while it is
	// still being evaluated.
	ErrCycle ErrorValue = "#CYCLE!"
)

func (e ErrorValue) Error() string  { return string(e) }
func (e ErrorValue) String() string { return string(e) }

// Resolver gives an evaluator access to the values of other cells.
type Resolver interface {
	// CellValue returns the computed value at p, or nil for an absent cell.
	CellValue(p point.Point) any
	// CellRangeValue returns the computed values of the points between
	// start and end that lie inside the data, in row-major order. Absent
	// cells yield nil.
	CellRangeValue(start, end point.Point) []any
}

// Result is the outcome of a single evaluation. Error is empty on success.
type Result struct {
	Result any
	Error  ErrorValue
}

// Parser evaluates formula text (without the leading "=").
type Parser interface {
	Parse(expr string, r Resolver) Result
}

// IsFormulaValue reports whether v is formula text.
func IsFormulaValue(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, "=")
}

// ExtractFormula strips the leading "=" of formula text.
func ExtractFormula(s string) string {
	return strings.TrimPrefix(s, "=")
}

// ComputedValue returns the value to display for cell. A nil cell is
// absent.
func ComputedValue(p Parser, data matrix.Matrix[grid.Cell], cell *grid.Cell) any {
	if cell == nil {
		return nil
	}
	if !IsFormulaValue(cell.Value) {
		return cell.Value
	}
	return FormulaComputedValue(p, data, cell.Value.(string))
}

// FormulaComputedValue evaluates formula text that does not live in a cell.
func FormulaComputedValue(p Parser, data matrix.Matrix[grid.Cell], text string) any {
	r := newResolver(p, data, nil)
	return r.evaluate(text)
}

// Evaluate returns the computed value of the cell at at.
func Evaluate(p Parser, data matrix.Matrix[grid.Cell], at point.Point) any {
	r := newResolver(p, data, nil)
	return r.CellValue(at)
}

// Bindings returns the points the formula at at reads. Cells without a
// formula bind nothing, and nothing is bound without a parser.
func Bindings(p Parser, data matrix.Matrix[grid.Cell], at point.Point) pointmap.Set {
	cell, ok := data.Get(at)
	if p == nil || !ok || !IsFormulaValue(cell.Value) {
		return pointmap.Set{}
	}
	reads := make(map[point.Point]struct{})
	r := newResolver(p, data, reads)
	r.visiting[at] = true
	r.evaluate(cell.Value.(string))
	return pointmap.NewSet(slices.Collect(maps.Keys(reads))...)
}

// AllBindings computes the bindings of every formula cell in data.
func AllBindings(p Parser, data matrix.Matrix[grid.Cell]) pointmap.Map[pointmap.Set] {
	var out pointmap.Map[pointmap.Set]
	if p == nil {
		return out
	}
	for at, cell := range data.Entries() {
		if !IsFormulaValue(cell.Value) {
			continue
		}
		out = out.Set(at, Bindings(p, data, at))
	}
	return out
}

// Dependents returns every formula cell that reads at, directly or through
// other formulas, in row-major order. at itself is never included.
func Dependents(bindings pointmap.Map[pointmap.Set], at point.Point) []point.Point {
	found := make(map[point.Point]struct{})
	queue := []point.Point{at}
	for len(queue) > 0 {
		target := queue[0]
		queue = queue[1:]
		for cell, reads := range bindings.Entries() {
			if _, seen := found[cell]; seen || cell == at || !reads.Has(target) {
				continue
			}
			found[cell] = struct{}{}
			queue = append(queue, cell)
		}
	}
	return pointmap.NewSet(slices.Collect(maps.Keys(found))...).Slice()
}

// resolver evaluates nested formula cells on demand. visiting holds the
// cells currently being evaluated. reads, when set, collects every point
// the top-level formula asks for.
type resolver struct {
	parser   Parser
	data     matrix.Matrix[grid.Cell]
	visiting map[point.Point]bool
	reads    map[point.Point]struct{}
}

func newResolver(p Parser, data matrix.Matrix[grid.Cell], reads map[point.Point]struct{}) *resolver {
	return &resolver{parser: p, data: data, visiting: make(map[point.Point]bool), reads: reads}
}

func (r *resolver) evaluate(text string) any {
	if r.parser == nil {
		return ErrName
	}
	res := r.parser.Parse(ExtractFormula(text), r)
	if res.Error != "" {
		return res.Error
	}
	return res.Result
}

func (r *resolver) CellValue(p point.Point) any {
	if r.reads != nil {
		r.reads[p] = struct{}{}
	}
	if r.visiting[p] {
		return ErrCycle
	}
	cell, ok := r.data.Get(p)
	if !ok {
		return nil
	}
	if !IsFormulaValue(cell.Value) {
		return cell.Value
	}
	nested := &resolver{parser: r.parser, data: r.data, visiting: r.visiting}
	r.visiting[p] = true
	defer delete(r.visiting, p)
	return nested.evaluate(cell.Value.(string))
}

func (r *resolver) CellRangeValue(start, end point.Point) []any {
	size := r.data.Size()
	if size.Empty() {
		return nil
	}
	extent := point.Range{End: point.Point{Row: size.Rows - 1, Column: size.Columns - 1}}
	rng, ok := point.NewRange(start, end).Intersect(extent)
	if !ok {
		return nil
	}
	values := make([]any, 0, rng.Size())
	for p := range rng.Points() {
		values = append(values, r.CellValue(p))
	}
	return values
}
