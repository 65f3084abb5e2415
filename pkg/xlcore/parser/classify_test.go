package parser

import (
	"testing"
	"time"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input    source.Value
		expected models.CellType
	}{
		{source.Int(42), models.CellTypeNumber},
		{source.Float(2.5), models.CellTypeNumber},
		{source.String("hello"), models.CellTypeString},
		{source.Bool(true), models.CellTypeBoolean},
		{source.DateTime{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, models.CellTypeDate},
		{source.Error("#DIV/0!"), models.CellTypeError},
		{source.Empty{}, models.CellTypeEmpty},
		{nil, models.CellTypeEmpty},
	}

	for _, tt := range tests {
		result := Classify(tt.input)
		if result != tt.expected {
			t.Errorf("Classify(%#v) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

// Every value variant must map to one of the known tags without panicking.
func TestClassifyIsTotal(t *testing.T) {
	variants := []source.Value{
		source.Int(0),
		source.Float(0),
		source.String(""),
		source.Bool(false),
		source.DateTime{},
		source.Error(""),
		source.Empty{},
	}
	known := make(map[models.CellType]bool)
	for _, ct := range models.CellTypes {
		known[ct] = true
	}

	seen := make(map[models.CellType]bool)
	for _, v := range variants {
		ct := Classify(v)
		if !known[ct] {
			t.Errorf("Classify(%T) = %q, not a known cell type", v, ct)
		}
		seen[ct] = true
	}
	if len(seen) != len(models.CellTypes) {
		t.Errorf("variants cover %d cell types, expected %d", len(seen), len(models.CellTypes))
	}
}

func TestEmptyCellHasNoValue(t *testing.T) {
	cell := newCell(source.Empty{}, 1, 1)
	if cell.Value != nil {
		t.Errorf("empty cell value = %q, expected nil", *cell.Value)
	}
	if cell.CellType != models.CellTypeEmpty {
		t.Errorf("empty cell type = %q", cell.CellType)
	}

	cell = newCell(source.Float(1.5), 3, 7)
	if cell.Value == nil || *cell.Value != "1.5" {
		t.Errorf("number cell value = %v, expected 1.5", cell.Value)
	}
	if cell.Address != "C7" {
		t.Errorf("address = %q, expected C7", cell.Address)
	}
}
