package formula

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/efp"
)

// Function names an aggregate the evaluator understands.
type Function string

const (
	FuncSum     Function = "SUM"
	FuncAverage Function = "AVERAGE"
)

// Expr is a parsed formula: a Literal, a Reference or a Call.
type Expr interface {
	eval(ctx Context) (float64, error)
}

// Literal is a number written directly in the formula.
type Literal float64

// Reference is a bare name looked up in the context as-is.
type Reference string

// Call applies an aggregate function to a range.
type Call struct {
	Func  Function
	Range CellRange
}

// Parse parses a formula. A single leading "=" is ignored.
//
// The accepted forms are a number literal, a bare reference, and
// FUNC(START:END) where FUNC is SUM or AVERAGE (case-sensitive).
func Parse(formula string) (Expr, error) {
	text := strings.TrimSpace(formula)
	text = strings.TrimSpace(strings.TrimPrefix(text, "="))
	if text == "" {
		return nil, NewFormulaError(formula, fmt.Errorf("%w: empty formula", ErrMalformed))
	}

	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return Literal(n), nil
	}

	ps := efp.ExcelParser()
	tokens := ps.Parse("=" + text)

	switch {
	case len(tokens) == 1 && tokens[0].TType == efp.TokenTypeOperand:
		if tokens[0].TSubType == efp.TokenSubTypeText || tokens[0].TSubType == efp.TokenSubTypeError {
			break
		}
		return Reference(text), nil
	case len(tokens) > 0 && tokens[0].TType == efp.TokenTypeFunction && tokens[0].TSubType == efp.TokenSubTypeStart:
		call, err := parseCall(tokens)
		if err != nil {
			return nil, NewFormulaError(formula, err)
		}
		return call, nil
	}
	return nil, NewFormulaError(formula, ErrMalformed)
}

// parseCall expects exactly: FUNC start, one range operand, FUNC stop.
func parseCall(tokens []efp.Token) (Call, error) {
	name := Function(tokens[0].TValue)
	if name != FuncSum && name != FuncAverage {
		return Call{}, fmt.Errorf("%w: %s", ErrUnknownFunction, tokens[0].TValue)
	}

	if len(tokens) != 3 ||
		tokens[1].TType != efp.TokenTypeOperand || tokens[1].TSubType != efp.TokenSubTypeRange ||
		tokens[2].TType != efp.TokenTypeFunction || tokens[2].TSubType != efp.TokenSubTypeStop {
		return Call{}, fmt.Errorf("%w: %s expects a single START:END range argument", ErrMalformed, name)
	}

	r, err := ParseRange(tokens[1].TValue)
	if err != nil {
		return Call{}, err
	}
	return Call{Func: name, Range: r}, nil
}

func (l Literal) eval(Context) (float64, error) {
	return float64(l), nil
}

func (r Reference) eval(ctx Context) (float64, error) {
	v, ok := ctx[string(r)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnresolvedReference, string(r))
	}
	return v, nil
}

// eval resolves every cell of the range, counting missing cells as 0.
func (c Call) eval(ctx Context) (float64, error) {
	cells, err := c.Range.Cells()
	if err != nil {
		return 0, err
	}
	values := make([]float64, len(cells))
	for i, cell := range cells {
		values[i] = ctx[cell]
	}

	switch c.Func {
	case FuncSum:
		return Sum(values), nil
	case FuncAverage:
		return Average(values)
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFunction, c.Func)
}
