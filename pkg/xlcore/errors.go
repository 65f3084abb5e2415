package xlcore

import (
	"fmt"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/formula"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
)

// Sentinel errors, matchable with errors.Is.
var (
	ErrSheetNotFound       = source.ErrSheetNotFound
	ErrUnsupportedFormat   = source.ErrUnsupportedFormat
	ErrPasswordRequired    = source.ErrPasswordRequired
	ErrEmptyInput          = source.ErrEmptyInput
	ErrEmptyAggregateInput = formula.ErrEmptyInput
)

// DecodeError indicates the workbook container could not be decoded. Nothing
// is produced when it is returned.
type DecodeError struct {
	Format source.Format
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" || e.Format == source.FormatUnknown {
		return fmt.Sprintf("failed to open workbook: %v", e.Err)
	}
	return fmt.Sprintf("failed to open %s workbook: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(format source.Format, err error) *DecodeError {
	return &DecodeError{Format: format, Err: err}
}

// SheetAccessError indicates a sheet that is absent or whose range could not
// be read.
type SheetAccessError struct {
	SheetName string
	Err       error
}

func (e *SheetAccessError) Error() string {
	return fmt.Sprintf("failed to read sheet %q: %v", e.SheetName, e.Err)
}

func (e *SheetAccessError) Unwrap() error {
	return e.Err
}

// NewSheetAccessError creates a new SheetAccessError.
func NewSheetAccessError(sheetName string, err error) *SheetAccessError {
	return &SheetAccessError{
		SheetName: sheetName,
		Err:       err,
	}
}

// FormulaError is returned by EvaluateFormula.
type FormulaError = formula.FormulaError
