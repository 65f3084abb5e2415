// Package models defines the normalized workbook data structures.
package models

// CellType is the semantic type tag of a cell.
type CellType string

const (
	CellTypeNumber  CellType = "number"
	CellTypeString  CellType = "string"
	CellTypeBoolean CellType = "boolean"
	CellTypeDate    CellType = "date"
	CellTypeError   CellType = "error"
	CellTypeEmpty   CellType = "empty"
)

// CellTypes lists every tag a classified cell can carry.
var CellTypes = []CellType{
	CellTypeNumber,
	CellTypeString,
	CellTypeBoolean,
	CellTypeDate,
	CellTypeError,
	CellTypeEmpty,
}

// Cell represents a single spreadsheet position.
type Cell struct {
	// Value is the display text of the cell (nil iff the cell is empty).
	Value *string `json:"value"`
	// Formula is the raw formula text, when the decoder can surface it.
	Formula *string `json:"formula"`
	// CellType is the semantic type of the value.
	CellType CellType `json:"cell_type"`
	// Address is the A1-style position (e.g. "B12").
	Address string `json:"address"`
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Value == nil
}
