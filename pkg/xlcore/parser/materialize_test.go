package parser

import (
	"errors"
	"testing"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source/sourcetest"
)

func unbounded() SheetOptions {
	return SheetOptions{MaxRows: Unbounded}
}

func TestExtractSheetAddresses(t *testing.T) {
	src := sourcetest.New(sourcetest.Sheet{
		Name: "Sheet1",
		Rows: [][]source.Value{
			{source.String("Header1"), source.String("Header2")},
			{source.Int(100), source.Float(200.5)},
		},
	})

	sheet, err := ExtractSheet(src, "Sheet1", unbounded())
	if err != nil {
		t.Fatalf("ExtractSheet failed: %v", err)
	}

	expected := [][]string{{"A1", "B1"}, {"A2", "B2"}}
	if len(sheet.Rows) != len(expected) {
		t.Fatalf("Expected %d rows, got %d", len(expected), len(sheet.Rows))
	}
	for i, row := range sheet.Rows {
		if len(row) != len(expected[i]) {
			t.Fatalf("row %d: expected %d cells, got %d", i, len(expected[i]), len(row))
		}
		for j, cell := range row {
			if cell.Address != expected[i][j] {
				t.Errorf("cell (%d,%d) address = %q, expected %q", i, j, cell.Address, expected[i][j])
			}
		}
	}

	if sheet.Name != "Sheet1" || sheet.RowCount != 2 || sheet.ColCount != 2 {
		t.Errorf("sheet = %q %dx%d, expected Sheet1 2x2", sheet.Name, sheet.RowCount, sheet.ColCount)
	}
	if got := *sheet.Rows[1][1].Value; got != "200.5" {
		t.Errorf("B2 value = %q, expected 200.5", got)
	}
	if sheet.Rows[1][0].CellType != models.CellTypeNumber {
		t.Errorf("A2 type = %q, expected number", sheet.Rows[1][0].CellType)
	}
	if sheet.Rows[0][0].Formula != nil {
		t.Errorf("formula should be absent by default")
	}
}

func TestExtractSheetBounded(t *testing.T) {
	src := sourcetest.New(sourcetest.Sheet{Name: "Big", Rows: sourcetest.Grid(10, 3)})

	sheet, err := ExtractSheet(src, "Big", SheetOptions{MaxRows: 5})
	if err != nil {
		t.Fatalf("ExtractSheet failed: %v", err)
	}
	if sheet.RowCount != 5 || len(sheet.Rows) != 5 {
		t.Errorf("RowCount = %d, len(Rows) = %d, expected 5", sheet.RowCount, len(sheet.Rows))
	}
	if sheet.ColCount != 3 {
		t.Errorf("ColCount = %d, expected 3", sheet.ColCount)
	}
	if last := sheet.Rows[4][2].Address; last != "C5" {
		t.Errorf("last address = %q, expected C5", last)
	}
}

func TestMaterializeStopsReadingAtLimit(t *testing.T) {
	src := sourcetest.New(sourcetest.Sheet{Name: "Big", Rows: sourcetest.Grid(100, 1)})
	r, err := src.Range("Big")
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}

	if _, err := Materialize(r, "Big", SheetOptions{MaxRows: 3}); err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if yielded := r.(*sourcetest.Range).Yielded; yielded != 3 {
		t.Errorf("source yielded %d rows, expected 3", yielded)
	}
}

func TestExtractSheetLimitAboveTotal(t *testing.T) {
	src := sourcetest.New(sourcetest.Sheet{Name: "Small", Rows: sourcetest.Grid(2, 2)})

	sheet, err := ExtractSheet(src, "Small", SheetOptions{MaxRows: 10000})
	if err != nil {
		t.Fatalf("ExtractSheet failed: %v", err)
	}
	if sheet.RowCount != 2 {
		t.Errorf("RowCount = %d, expected 2", sheet.RowCount)
	}
}

func TestExtractSheetRaggedRowsArePadded(t *testing.T) {
	src := sourcetest.New(sourcetest.Sheet{
		Name: "Ragged",
		Rows: [][]source.Value{
			{source.Int(1), source.Int(2), source.Int(3)},
			{source.Int(4)},
		},
	})

	sheet, err := ExtractSheet(src, "Ragged", unbounded())
	if err != nil {
		t.Fatalf("ExtractSheet failed: %v", err)
	}
	row := sheet.Rows[1]
	if len(row) != 3 {
		t.Fatalf("row 2 has %d cells, expected 3", len(row))
	}
	if row[2].CellType != models.CellTypeEmpty || row[2].Value != nil || row[2].Address != "C2" {
		t.Errorf("padding cell = %+v, expected empty C2", row[2])
	}
}

func TestExtractSheetFormulas(t *testing.T) {
	src := sourcetest.New(sourcetest.Sheet{
		Name:     "F",
		Rows:     [][]source.Value{{source.Int(1), source.Int(2), source.Int(3)}},
		Formulas: map[[2]int]string{{0, 2}: "SUM(A1:B1)"},
	})

	sheet, err := ExtractSheet(src, "F", SheetOptions{MaxRows: Unbounded, IncludeFormulas: true})
	if err != nil {
		t.Fatalf("ExtractSheet failed: %v", err)
	}
	if f := sheet.Rows[0][2].Formula; f == nil || *f != "SUM(A1:B1)" {
		t.Errorf("C1 formula = %v, expected SUM(A1:B1)", f)
	}
	if sheet.Rows[0][0].Formula != nil {
		t.Errorf("A1 formula should be nil")
	}
}

func TestExtractSheetErrors(t *testing.T) {
	boom := errors.New("corrupt part")
	src := sourcetest.New(
		sourcetest.Sheet{Name: "Broken", RangeErr: boom},
		sourcetest.Sheet{Name: "Truncated", Rows: sourcetest.Grid(3, 1), IterErr: boom},
	)

	if _, err := ExtractSheet(src, "Missing", unbounded()); !errors.Is(err, source.ErrSheetNotFound) {
		t.Errorf("missing sheet error = %v, expected ErrSheetNotFound", err)
	}
	if _, err := ExtractSheet(src, "Broken", unbounded()); !errors.Is(err, boom) {
		t.Errorf("broken sheet error = %v, expected %v", err, boom)
	}
	if _, err := ExtractSheet(src, "Truncated", unbounded()); !errors.Is(err, boom) {
		t.Errorf("truncated sheet error = %v, expected %v", err, boom)
	}
}

func TestExtractSheetEmpty(t *testing.T) {
	src := sourcetest.New(sourcetest.Sheet{Name: "Empty"})

	sheet, err := ExtractSheet(src, "Empty", unbounded())
	if err != nil {
		t.Fatalf("ExtractSheet failed: %v", err)
	}
	if sheet.RowCount != 0 || sheet.ColCount != 0 || len(sheet.Rows) != 0 {
		t.Errorf("empty sheet = %+v", sheet)
	}
}
