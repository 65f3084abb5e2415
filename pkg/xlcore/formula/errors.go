package formula

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates an aggregate over zero values.
	ErrEmptyInput = errors.New("cannot aggregate an empty sequence")
	// ErrUnknownFunction indicates a function other than SUM or AVERAGE.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrMalformed indicates a formula that does not match the grammar.
	ErrMalformed = errors.New("malformed formula")
	// ErrUnresolvedReference indicates a bare reference missing from the context.
	ErrUnresolvedReference = errors.New("unknown cell reference")
	// ErrRangeTooLarge indicates a range spanning more than MaxRangeCells cells.
	ErrRangeTooLarge = errors.New("range too large")
)

// FormulaError reports a formula that could not be parsed or evaluated.
type FormulaError struct {
	Formula string
	Err     error
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("formula %q: %v", e.Formula, e.Err)
}

func (e *FormulaError) Unwrap() error {
	return e.Err
}

// NewFormulaError creates a new FormulaError.
func NewFormulaError(formula string, err error) *FormulaError {
	return &FormulaError{Formula: formula, Err: err}
}
