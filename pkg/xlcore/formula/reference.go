package formula

import (
	"fmt"
	"strings"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/address"
)

// MaxRangeCells bounds the number of cells a single range may expand to.
const MaxRangeCells = 1 << 20

// CellRange is a rectangular block of cells with 1-based inclusive bounds.
// Bounds are normalized so that R1 <= R2 and C1 <= C2.
type CellRange struct {
	R1, C1 int
	R2, C2 int
}

// ParseRange parses a range such as "A1:A10" or "$B$2:$D$4". The corners may
// be given in any order.
func ParseRange(ref string) (CellRange, error) {
	parts := strings.Split(strings.TrimSpace(ref), ":")
	if len(parts) != 2 {
		return CellRange{}, fmt.Errorf("%w: range %q must have the form START:END", ErrMalformed, ref)
	}

	startCol, startRow, err := address.SplitCellName(parts[0])
	if err != nil {
		return CellRange{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	endCol, endRow, err := address.SplitCellName(parts[1])
	if err != nil {
		return CellRange{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return CellRange{
		R1: min(startRow, endRow),
		C1: min(startCol, endCol),
		R2: max(startRow, endRow),
		C2: max(startCol, endCol),
	}, nil
}

// Len returns the number of cells in the range.
func (r CellRange) Len() int {
	return (r.R2 - r.R1 + 1) * (r.C2 - r.C1 + 1)
}

// Cells returns the addresses of the range in row-major order. A single
// column yields its rows top to bottom and a single row yields its columns
// left to right.
func (r CellRange) Cells() ([]string, error) {
	if n := r.Len(); n > MaxRangeCells {
		return nil, fmt.Errorf("%w: %d cells exceeds %d", ErrRangeTooLarge, n, MaxRangeCells)
	}

	letters := make([]string, 0, r.C2-r.C1+1)
	for col := r.C1; col <= r.C2; col++ {
		l, err := address.ColumnToLetters(col)
		if err != nil {
			return nil, err
		}
		letters = append(letters, l)
	}

	cells := make([]string, 0, r.Len())
	for row := r.R1; row <= r.R2; row++ {
		for _, l := range letters {
			cells = append(cells, fmt.Sprintf("%s%d", l, row))
		}
	}
	return cells, nil
}

func (r CellRange) String() string {
	return address.MustCellName(r.C1, r.R1) + ":" + address.MustCellName(r.C2, r.R2)
}
