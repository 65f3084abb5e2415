// Package output serializes decoded workbooks and errors to JSON.
package output

import (
	"errors"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/goccy/go-json"
)

// ToJSON serializes any value to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WorkbookToJSON serializes a workbook.
func WorkbookToJSON(wb *models.Workbook, pretty bool) ([]byte, error) {
	return ToJSON(wb, pretty)
}

// SheetToJSON serializes a single sheet.
func SheetToJSON(sheet *models.Sheet, pretty bool) ([]byte, error) {
	return ToJSON(sheet, pretty)
}

// Error kinds reported by ErrorToJSON.
const (
	KindDecode      = "decode"
	KindSheetAccess = "sheet_access"
	KindFormula     = "formula"
	KindEmptyInput  = "empty_input"
	KindInternal    = "internal"
)

// ErrorPayload is the JSON shape of an error crossing the output boundary.
type ErrorPayload struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Kind classifies err into one of the Kind constants.
func Kind(err error) string {
	var (
		decodeErr  *xlcore.DecodeError
		sheetErr   *xlcore.SheetAccessError
		formulaErr *xlcore.FormulaError
	)
	switch {
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &sheetErr):
		return KindSheetAccess
	case errors.As(err, &formulaErr):
		return KindFormula
	case errors.Is(err, xlcore.ErrEmptyAggregateInput):
		return KindEmptyInput
	}
	return KindInternal
}

// ErrorToJSON serializes err as {"error": message, "kind": kind}.
func ErrorToJSON(err error, pretty bool) ([]byte, error) {
	return ToJSON(ErrorPayload{Error: err.Error(), Kind: Kind(err)}, pretty)
}
