// Package parser turns decoded ranges into normalized sheet models.
package parser

import (
	"fmt"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/address"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
)

// Unbounded disables the row limit of ExtractSheet.
const Unbounded = -1

// SheetOptions configures ExtractSheet.
type SheetOptions struct {
	// MaxRows caps the rows materialized; negative means no cap.
	MaxRows int
	// IncludeFormulas fills Cell.Formula from the range when available.
	IncludeFormulas bool
}

// ExtractSheet reads the named sheet from src and materializes it.
func ExtractSheet(src source.Source, sheetName string, opts SheetOptions) (*models.Sheet, error) {
	r, err := src.Range(sheetName)
	if err != nil {
		return nil, err
	}
	return Materialize(r, sheetName, opts)
}

// Materialize walks a range in row order and builds the sheet model.
//
// Addresses are derived from enumeration order (first yielded row is row 1,
// first value is column A), so r must be dense and origin-aligned. Rows
// shorter than the reported column count are padded with empty cells.
func Materialize(r source.Range, sheetName string, opts SheetOptions) (*models.Sheet, error) {
	totalRows, colCount := r.Size()
	limit := totalRows
	if opts.MaxRows >= 0 && opts.MaxRows < limit {
		limit = opts.MaxRows
	}

	rows := make([][]models.Cell, 0, limit)
	if limit > 0 {
		for values := range r.Rows() {
			rowNum := len(rows) + 1
			width := max(colCount, len(values))
			row := make([]models.Cell, width)
			for colIdx := range row {
				var v source.Value = source.Empty{}
				if colIdx < len(values) {
					v = values[colIdx]
				}
				row[colIdx] = newCell(v, colIdx+1, rowNum)
				if opts.IncludeFormulas {
					if formula := r.Formula(rowNum-1, colIdx); formula != "" {
						row[colIdx].Formula = &formula
					}
				}
			}
			rows = append(rows, row)
			if len(rows) >= limit {
				break
			}
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return &models.Sheet{
		Name:     sheetName,
		Rows:     rows,
		RowCount: len(rows),
		ColCount: colCount,
	}, nil
}

// newCell builds the cell at the given 1-based column and row.
func newCell(v source.Value, col, row int) models.Cell {
	cell := models.Cell{
		CellType: Classify(v),
		Address:  address.MustCellName(col, row),
	}
	if cell.CellType != models.CellTypeEmpty {
		text := v.String()
		cell.Value = &text
	}
	return cell
}
