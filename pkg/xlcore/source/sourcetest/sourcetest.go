// Package sourcetest provides an in-memory source.Source for tests.
package sourcetest

import (
	"fmt"
	"iter"
	"sync"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
)

// Sheet describes one in-memory sheet.
type Sheet struct {
	Name string
	// Rows holds the values; rows may be ragged.
	Rows [][]source.Value
	// Cols overrides the reported column count when non-zero.
	Cols int
	// Formulas maps [row, col] (0-based) to formula text.
	Formulas map[[2]int]string
	// RangeErr makes Range fail for this sheet.
	RangeErr error
	// IterErr makes row iteration stop with this error after the first row.
	IterErr error
}

// Source is an in-memory source.Source.
type Source struct {
	mu     sync.Mutex
	Sheets []Sheet
	Props  map[string]string
	// RangeCalls counts Range invocations per sheet name.
	RangeCalls map[string]int
	Closed     bool
}

// New returns a Source holding the given sheets.
func New(sheets ...Sheet) *Source {
	return &Source{Sheets: sheets, RangeCalls: make(map[string]int)}
}

func (s *Source) Format() source.Format { return "memory" }

func (s *Source) SheetNames() []string {
	names := make([]string, len(s.Sheets))
	for i, sh := range s.Sheets {
		names[i] = sh.Name
	}
	return names
}

func (s *Source) Range(name string) (source.Range, error) {
	s.mu.Lock()
	s.RangeCalls[name]++
	s.mu.Unlock()

	for i := range s.Sheets {
		sh := &s.Sheets[i]
		if sh.Name != name {
			continue
		}
		if sh.RangeErr != nil {
			return nil, sh.RangeErr
		}
		cols := sh.Cols
		if cols == 0 {
			for _, row := range sh.Rows {
				cols = max(cols, len(row))
			}
		}
		return &Range{sheet: sh, cols: cols}, nil
	}
	return nil, fmt.Errorf("%w: %q", source.ErrSheetNotFound, name)
}

func (s *Source) Properties() map[string]string {
	props := make(map[string]string, len(s.Props))
	for k, v := range s.Props {
		props[k] = v
	}
	return props
}

func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// Range is an in-memory source.Range.
type Range struct {
	sheet *Sheet
	cols  int
	err   error
	// Yielded counts rows handed to the consumer.
	Yielded int
}

func (r *Range) Size() (int, int) { return len(r.sheet.Rows), r.cols }

func (r *Range) Err() error { return r.err }

func (r *Range) Formula(row, col int) string {
	return r.sheet.Formulas[[2]int{row, col}]
}

func (r *Range) Rows() iter.Seq[[]source.Value] {
	return func(yield func([]source.Value) bool) {
		r.err = nil
		for i, row := range r.sheet.Rows {
			if i > 0 && r.sheet.IterErr != nil {
				r.err = r.sheet.IterErr
				return
			}
			r.Yielded++
			if !yield(row) {
				return
			}
		}
	}
}

// Grid builds rows x cols of Int values numbered from 1 in row-major order.
func Grid(rows, cols int) [][]source.Value {
	out := make([][]source.Value, rows)
	n := 0
	for i := range out {
		out[i] = make([]source.Value, cols)
		for j := range out[i] {
			n++
			out[i][j] = source.Int(n)
		}
	}
	return out
}
