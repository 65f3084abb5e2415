package models

// FormulaResult is the outcome of evaluating one formula.
type FormulaResult struct {
	// Value is the numeric result (0 when IsError is set).
	Value float64 `json:"value"`
	// Formula echoes the evaluated input.
	Formula string `json:"formula"`
	// CellAddress is the address the formula belongs to, if any.
	CellAddress string `json:"cell_address"`
	// IsError reports whether evaluation failed.
	IsError bool `json:"is_error"`
	// ErrorMessage describes the failure.
	ErrorMessage *string `json:"error_message"`
}
