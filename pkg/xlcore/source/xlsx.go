package source

import (
	"bytes"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/address"
	"github.com/xuri/excelize/v2"
)

// xmlSizeLimit is excelize's default cap for a single unzipped XML part.
const xmlSizeLimit int64 = 16 << 20

// xlsxSource decodes OOXML workbooks through excelize. All access to the
// excelize file is serialized by mu so ranges of different sheets may be
// read from different goroutines.
type xlsxSource struct {
	mu         sync.Mutex
	f          *excelize.File
	format     Format
	date1904   bool
	dateStyles map[int]bool
}

func openXLSX(data []byte, format Format, opts OpenOptions) (*xlsxSource, error) {
	limit := opts.sizeLimit()
	xmlLimit := min(xmlSizeLimit, limit)

	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{
		Password:          opts.Password,
		UnzipSizeLimit:    limit,
		UnzipXMLSizeLimit: xmlLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", format, err)
	}

	src := &xlsxSource{
		f:          f,
		format:     format,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		src.date1904 = *props.Date1904
	}
	return src, nil
}

func (s *xlsxSource) Format() Format {
	return s.format
}

func (s *xlsxSource) SheetNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.GetSheetList()
}

func (s *xlsxSource) Properties() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	props := make(map[string]string)
	dp, err := s.f.GetDocProps()
	if err != nil || dp == nil {
		return props
	}
	for key, value := range map[string]string{
		"author":           dp.Creator,
		"title":            dp.Title,
		"subject":          dp.Subject,
		"created":          dp.Created,
		"modified":         dp.Modified,
		"last_modified_by": dp.LastModifiedBy,
	} {
		if value = strings.TrimSpace(value); value != "" {
			props[key] = value
		}
	}
	return props
}

func (s *xlsxSource) Close() error {
	return s.f.Close()
}

// Range scans the sheet once to size it, then returns a range that streams
// rows on demand. The size is the extent of non-empty cells measured from A1.
// The scan visits every row, and the first typed cell lookup loads the whole
// worksheet, so a bounded read still costs O(total rows).
func (s *xlsxSource) Range(sheet string) (Range, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasSheet(sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := s.f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nRows, nCols := 0, 0
	for cur := 1; rows.Next(); cur++ {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		if last := lastNonEmpty(cols); last >= 0 {
			nRows = cur
			nCols = max(nCols, last+1)
		}
	}
	if err := rows.Error(); err != nil {
		return nil, err
	}

	return &xlsxRange{src: s, sheet: sheet, rows: nRows, cols: nCols}, nil
}

// hasSheet matches names exactly; excelize itself compares case-insensitively.
func (s *xlsxSource) hasSheet(name string) bool {
	for _, n := range s.f.GetSheetList() {
		if n == name {
			return true
		}
	}
	return false
}

func lastNonEmpty(cols []string) int {
	for i := len(cols) - 1; i >= 0; i-- {
		if cols[i] != "" {
			return i
		}
	}
	return -1
}

// value converts the raw text of one cell into a typed Value. Callers hold mu.
func (s *xlsxSource) value(sheet, cell, raw string) Value {
	if raw == "" {
		return Empty{}
	}

	ctype, err := s.f.GetCellType(sheet, cell)
	if err != nil {
		return String(raw)
	}

	switch ctype {
	case excelize.CellTypeBool:
		return Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeError:
		return Error(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return String(raw)
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return DateTime{t}
			}
		}
		return String(raw)
	}

	v := NumberValue(raw)
	if _, isText := v.(String); isText || !s.isDateStyle(sheet, cell) {
		return v
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, s.date1904)
	if err != nil {
		return v
	}
	return DateTime{t}
}

// isDateStyle reports whether the cell's number format renders a date or time.
func (s *xlsxSource) isDateStyle(sheet, cell string) bool {
	id, err := s.f.GetCellStyle(sheet, cell)
	if err != nil {
		return false
	}
	if isDate, ok := s.dateStyles[id]; ok {
		return isDate
	}
	isDate := false
	if style, err := s.f.GetStyle(id); err == nil && style != nil {
		isDate = isDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	s.dateStyles[id] = isDate
	return isDate
}

type xlsxRange struct {
	src   *xlsxSource
	sheet string
	rows  int
	cols  int
	err   error
}

func (r *xlsxRange) Size() (int, int) {
	return r.rows, r.cols
}

func (r *xlsxRange) Err() error {
	return r.err
}

func (r *xlsxRange) Formula(row, col int) string {
	cell, err := address.CellName(col+1, row+1)
	if err != nil {
		return ""
	}
	r.src.mu.Lock()
	defer r.src.mu.Unlock()
	formula, err := r.src.f.GetCellFormula(r.sheet, cell)
	if err != nil {
		return ""
	}
	return formula
}

func (r *xlsxRange) Rows() iter.Seq[[]Value] {
	return func(yield func([]Value) bool) {
		r.err = nil
		if r.rows == 0 {
			return
		}

		r.src.mu.Lock()
		rows, err := r.src.f.Rows(r.sheet)
		r.src.mu.Unlock()
		if err != nil {
			r.err = err
			return
		}
		defer rows.Close()

		for rowIdx := 0; rowIdx < r.rows; rowIdx++ {
			row, ok, err := r.readRow(rows, rowIdx)
			if err != nil {
				r.err = err
				return
			}
			if !ok {
				return
			}
			if !yield(row) {
				return
			}
		}
	}
}

// readRow advances the row iterator and converts one row. It returns false
// when the sheet ends before the expected row.
func (r *xlsxRange) readRow(rows *excelize.Rows, rowIdx int) ([]Value, bool, error) {
	r.src.mu.Lock()
	defer r.src.mu.Unlock()

	if !rows.Next() {
		return nil, false, rows.Error()
	}
	cols, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, false, err
	}

	row := make([]Value, r.cols)
	for colIdx := range row {
		if colIdx >= len(cols) {
			row[colIdx] = Empty{}
			continue
		}
		cell := address.MustCellName(colIdx+1, rowIdx+1)
		row[colIdx] = r.src.value(r.sheet, cell, cols[colIdx])
	}
	return row, true, nil
}
