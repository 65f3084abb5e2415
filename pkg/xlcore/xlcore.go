package xlcore

import (
	"time"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/formula"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/parser"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
)

// version is the build identity; override with -ldflags "-X ...xlcore.version=...".
var version = "0.1.0"

// Version returns the static build identity.
func Version() string {
	return "xlcore v" + version
}

// ParseWorkbook decodes every sheet of the workbook in data.
func ParseWorkbook(data []byte, opts Options) (*models.Workbook, error) {
	start := time.Now()

	src, err := open(data, opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	wb := assemble(src, opts)
	wb.ProcessingTimeMs = elapsedMs(start)
	return wb, nil
}

// ParseStreaming decodes every sheet, keeping at most maxRows rows per sheet.
// A maxRows of zero or less selects DefaultStreamingRows.
//
// The cap bounds the rows this package materializes and retains. It does not
// bound decoding cost: the decoder holds the unzipped workbook in memory, and
// sizing each sheet scans all of its rows, so time and memory remain
// O(total rows) per sheet.
func ParseStreaming(data []byte, maxRows int, opts Options) (*models.Workbook, error) {
	if maxRows <= 0 {
		maxRows = DefaultStreamingRows
	}
	opts.RowLimit = maxRows
	return ParseWorkbook(data, opts)
}

// ParseMetadata returns sheet names and count without reading any cells.
func ParseMetadata(data []byte, opts Options) (*models.WorkbookMetadata, error) {
	src, err := open(data, opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return describe(src), nil
}

func describe(src source.Source) *models.WorkbookMetadata {
	names := src.SheetNames()
	return &models.WorkbookMetadata{
		SheetCount: len(names),
		SheetNames: names,
	}
}

// ParseSheet decodes exactly one sheet. It returns *SheetAccessError when the
// sheet is absent or unreadable.
func ParseSheet(data []byte, sheetName string, opts Options) (*models.Sheet, error) {
	src, err := open(data, opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	sheet, err := parser.ExtractSheet(src, sheetName, sheetOptions(opts))
	if err != nil {
		return nil, NewSheetAccessError(sheetName, err)
	}
	return sheet, nil
}

func open(data []byte, opts Options) (source.Source, error) {
	src, format, err := source.Open(data, opts.openOptions())
	if err != nil {
		return nil, NewDecodeError(format, err)
	}
	return src, nil
}

// EvaluateFormula evaluates formula against ctx. Failures are *FormulaError.
func EvaluateFormula(f string, ctx map[string]float64) (float64, error) {
	return formula.Evaluate(f, ctx)
}

// EvaluateFormulaResult evaluates f and reports the outcome, including any
// failure, as a FormulaResult.
func EvaluateFormulaResult(f, cellAddress string, ctx map[string]float64) models.FormulaResult {
	return formula.NewEvaluator().EvaluateResult(f, cellAddress, ctx)
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	return formula.Sum(values)
}

// Average returns the mean of values, or ErrEmptyAggregateInput when empty.
func Average(values []float64) (float64, error) {
	return formula.Average(values)
}
