package models

// Workbook is the decoded document: ordered sheets plus metadata.
type Workbook struct {
	// Sheets holds the decoded sheets in source declaration order.
	Sheets []Sheet `json:"sheets"`
	// Metadata holds parser identity and document properties.
	Metadata map[string]string `json:"metadata"`
	// HasErrors is set when at least one sheet was skipped.
	HasErrors bool `json:"has_errors"`
	// ProcessingTimeMs is the wall-clock duration of the whole decode.
	ProcessingTimeMs float64 `json:"processing_time_ms"`
}

// Sheet returns the first sheet with the given name, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}

// WorkbookMetadata is the result of a metadata-only decode.
type WorkbookMetadata struct {
	SheetCount int      `json:"sheet_count"`
	SheetNames []string `json:"sheet_names"`
}
