package models

// Sheet represents the materialized cells of a single worksheet.
type Sheet struct {
	// Name is the sheet name as declared in the workbook.
	Name string `json:"name"`
	// Rows contains the cells in row-major order.
	Rows [][]Cell `json:"rows"`
	// RowCount is the number of rows materialized. For bounded decodes this
	// is at most the row limit, not the sheet's true height.
	RowCount int `json:"row_count"`
	// ColCount is the column count reported by the source range.
	ColCount int `json:"col_count"`
}
