// Package formula evaluates a small formula language: number literals, bare
// cell references, and SUM/AVERAGE over a START:END range, against a mapping
// of cell addresses to numbers.
package formula

import (
	"errors"
	"strings"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/tiendc/go-deepcopy"
)

// Context maps cell addresses (or arbitrary names) to numeric values.
type Context map[string]float64

// Evaluator evaluates formulas against a context it owns. Each call replaces
// the context wholesale with a copy of the caller's map. An Evaluator is not
// safe for concurrent use; use one per goroutine.
type Evaluator struct {
	context Context
}

// NewEvaluator returns an Evaluator with an empty context.
func NewEvaluator() *Evaluator {
	return &Evaluator{context: Context{}}
}

// Context returns the context used by the last evaluation.
func (e *Evaluator) Context() Context {
	return e.context
}

// Evaluate replaces the context with ctx and evaluates formula.
//
// Number literals and SUM/AVERAGE calls are evaluated first. Anything else is
// looked up in the context by its trimmed text, so keys need not look like
// cell addresses. All failures are returned as *FormulaError.
func (e *Evaluator) Evaluate(formula string, ctx map[string]float64) (float64, error) {
	snapshot := map[string]float64{}
	if ctx != nil {
		if err := deepcopy.Copy(&snapshot, ctx); err != nil {
			return 0, NewFormulaError(formula, err)
		}
	}
	e.context = Context(snapshot)

	expr, err := Parse(formula)
	switch expr.(type) {
	case nil, Reference:
		// Any context key matches verbatim, whether or not it reads as an address.
		if v, ok := e.context[strings.TrimSpace(formula)]; ok {
			return v, nil
		}
	}
	if err != nil {
		return 0, err
	}
	v, err := expr.eval(e.context)
	if err != nil {
		return 0, NewFormulaError(formula, err)
	}
	return v, nil
}

// EvaluateResult evaluates formula and wraps the outcome in a FormulaResult.
// It never returns an error; failures are reported through IsError.
func (e *Evaluator) EvaluateResult(formula, cellAddress string, ctx map[string]float64) models.FormulaResult {
	result := models.FormulaResult{Formula: formula, CellAddress: cellAddress}
	v, err := e.Evaluate(formula, ctx)
	if err != nil {
		msg := err.Error()
		var fe *FormulaError
		if errors.As(err, &fe) {
			msg = fe.Err.Error()
		}
		result.IsError = true
		result.ErrorMessage = &msg
		return result
	}
	result.Value = v
	return result
}

// Evaluate evaluates formula against ctx with a fresh Evaluator.
func Evaluate(formula string, ctx map[string]float64) (float64, error) {
	return NewEvaluator().Evaluate(formula, ctx)
}
