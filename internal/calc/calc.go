// Package calc is the formula evaluator used by the grid. It tokenizes
// formulas with efp and evaluates the token stream with a small
// recursive-descent parser.
package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/efp"

	"grider/internal/formula"
	"grider/internal/grid"
)

// Evaluator implements formula.Parser.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Parse evaluates expr (formula text without the leading "=").
func (e *Evaluator) Parse(expr string, r formula.Resolver) formula.Result {
	if strings.TrimSpace(expr) == "" {
		return formula.Result{Error: formula.ErrGeneric}
	}
	ps := efp.ExcelParser()
	p := parser{
		tokens:  significant(ps.Parse(expr)),
		resolve: r,
	}
	if len(p.tokens) == 0 {
		return formula.Result{Error: formula.ErrGeneric}
	}

	val, err := p.parseExpr()
	if err != nil {
		return formula.Result{Error: formula.ErrGeneric}
	}
	if p.pos < len(p.tokens) {
		return formula.Result{Error: formula.ErrGeneric}
	}
	val = scalar(val)
	switch v := val.(type) {
	case formula.ErrorValue:
		return formula.Result{Error: v}
	case float64:
		// avoid NaN/Inf leaking
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return formula.Result{Error: formula.ErrValue}
		}
	}
	return formula.Result{Result: val}
}

// significant drops tokens that carry no meaning for evaluation.
func significant(tokens []efp.Token) []efp.Token {
	out := tokens[:0:0]
	for _, t := range tokens {
		if t.TType == efp.TokenTypeWhitespace || t.TType == efp.TokenTypeNoop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// rangeValue is the value of an A1:B2 operand. It is only meaningful as a
// function argument.
type rangeValue []any

type parser struct {
	tokens  []efp.Token
	pos     int
	resolve formula.Resolver
}

func (p *parser) peek() (efp.Token, bool) {
	if p.pos >= len(p.tokens) {
		return efp.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) peekOperator(ttype, subtype string, values ...string) (string, bool) {
	t, ok := p.peek()
	if !ok || t.TType != ttype || (subtype != "" && t.TSubType != subtype) {
		return "", false
	}
	for _, v := range values {
		if t.TValue == v {
			return v, true
		}
	}
	return "", false
}

func (p *parser) parseExpr() (any, error) {
	return p.parseComparison()
}

func (p *parser) parseComparison() (any, error) {
	val, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator(efp.TokenTypeOperatorInfix, efp.TokenSubTypeLogical, "=", "<>", "<", ">", "<=", ">=")
		if !ok {
			return val, nil
		}
		p.pos++
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		val = compare(op, val, right)
	}
}

func (p *parser) parseConcat() (any, error) {
	val, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.peekOperator(efp.TokenTypeOperatorInfix, efp.TokenSubTypeConcatenation, "&"); !ok {
			return val, nil
		}
		p.pos++
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		val = concat(val, right)
	}
}

func (p *parser) parseAddSub() (any, error) {
	val, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator(efp.TokenTypeOperatorInfix, efp.TokenSubTypeMath, "+", "-")
		if !ok {
			return val, nil
		}
		p.pos++
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		val = arithmetic(op, val, right)
	}
}

func (p *parser) parseMulDiv() (any, error) {
	val, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator(efp.TokenTypeOperatorInfix, efp.TokenSubTypeMath, "*", "/")
		if !ok {
			return val, nil
		}
		p.pos++
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		val = arithmetic(op, val, right)
	}
}

func (p *parser) parsePower() (any, error) {
	val, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.peekOperator(efp.TokenTypeOperatorInfix, efp.TokenSubTypeMath, "^"); !ok {
			return val, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		val = arithmetic("^", val, right)
	}
}

func (p *parser) parseFactor() (any, error) {
	if op, ok := p.peekOperator(efp.TokenTypeOperatorPrefix, "", "-", "+"); ok {
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			return v, nil
		}
		return arithmetic("*", -1.0, v), nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (any, error) {
	val, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.peekOperator(efp.TokenTypeOperatorPostfix, "", "%"); !ok {
			return val, nil
		}
		p.pos++
		val = arithmetic("/", val, 100.0)
	}
}

func (p *parser) parsePrimary() (any, error) {
	t, ok := p.peek()
	if !ok {
		return nil, formula.ErrGeneric
	}
	p.pos++
	switch t.TType {
	case efp.TokenTypeOperand:
		return p.operand(t), nil
	case efp.TokenTypeSubexpression:
		if t.TSubType != efp.TokenSubTypeStart {
			return nil, formula.ErrGeneric
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing.TType != efp.TokenTypeSubexpression || closing.TSubType != efp.TokenSubTypeStop {
			return nil, formula.ErrGeneric
		}
		p.pos++
		return v, nil
	case efp.TokenTypeFunction:
		if t.TSubType != efp.TokenSubTypeStart {
			return nil, formula.ErrGeneric
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return call(strings.ToUpper(t.TValue), args), nil
	}
	return nil, formula.ErrGeneric
}

// parseArgs reads function arguments up to and including the closing
// function token.
func (p *parser) parseArgs() ([]any, error) {
	var args []any
	if t, ok := p.peek(); ok && t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStop {
		p.pos++
		return args, nil
	}
	for {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		t, ok := p.peek()
		if !ok {
			return nil, formula.ErrGeneric
		}
		p.pos++
		switch {
		case t.TType == efp.TokenTypeArgument:
			continue
		case t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStop:
			return args, nil
		default:
			return nil, formula.ErrGeneric
		}
	}
}

func (p *parser) operand(t efp.Token) any {
	switch t.TSubType {
	case efp.TokenSubTypeNumber:
		v, err := strconv.ParseFloat(t.TValue, 64)
		if err != nil {
			return formula.ErrValue
		}
		return v
	case efp.TokenSubTypeText:
		return t.TValue
	case efp.TokenSubTypeLogical:
		return strings.EqualFold(t.TValue, "TRUE")
	case efp.TokenSubTypeError:
		return formula.ErrorValue(strings.ToUpper(t.TValue))
	case efp.TokenSubTypeRange:
		return p.reference(t.TValue)
	}
	return formula.ErrValue
}

// reference resolves a cell or range operand through the resolver.
func (p *parser) reference(ref string) any {
	if p.resolve == nil {
		return formula.ErrRef
	}
	if !strings.Contains(ref, ":") {
		at, ok := grid.ParseCellRef(ref)
		if !ok {
			return formula.ErrName
		}
		return p.resolve.CellValue(at)
	}
	rng, ok := grid.ParseRangeRef(ref)
	if !ok {
		return formula.ErrRef
	}
	return rangeValue(p.resolve.CellRangeValue(rng.Start, rng.End))
}
