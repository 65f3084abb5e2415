package parser

import (
	"fmt"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
)

// Classify maps a decoded value to its semantic cell type. Integers and
// floats are both numbers.
func Classify(v source.Value) models.CellType {
	switch v.(type) {
	case source.Int, source.Float:
		return models.CellTypeNumber
	case source.String:
		return models.CellTypeString
	case source.Bool:
		return models.CellTypeBoolean
	case source.DateTime:
		return models.CellTypeDate
	case source.Error:
		return models.CellTypeError
	case source.Empty, nil:
		return models.CellTypeEmpty
	}
	// source.Value is sealed; reaching this means a variant was added there
	// without a mapping here.
	panic(fmt.Sprintf("parser: unclassified cell value %T", v))
}
