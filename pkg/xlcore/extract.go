package xlcore

import (
	"maps"
	"strconv"
	"time"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/models"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/parser"
	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
	"golang.org/x/sync/errgroup"
)

// ParserName identifies this decoder in workbook metadata.
const ParserName = "xlcore-excelize"

// Assemble materializes every sheet of src, in source order, into a workbook.
//
// A sheet that fails to materialize is skipped: the failure is logged as a
// warning, HasErrors is set, and the remaining sheets are still decoded.
func Assemble(src source.Source, opts Options) *models.Workbook {
	start := time.Now()
	wb := assemble(src, opts)
	wb.ProcessingTimeMs = elapsedMs(start)
	return wb
}

func assemble(src source.Source, opts Options) *models.Workbook {
	log := opts.logger()
	names := src.SheetNames()
	sheetOpts := sheetOptions(opts)

	// Each goroutine writes only its own slot, so results keep source order
	// regardless of completion order.
	results := make([]*models.Sheet, len(names))
	errs := make([]error, len(names))

	var g errgroup.Group
	g.SetLimit(max(1, opts.Parallelism))
	for i, name := range names {
		g.Go(func() error {
			results[i], errs[i] = parser.ExtractSheet(src, name, sheetOpts)
			return nil
		})
	}
	_ = g.Wait()

	sheets := make([]models.Sheet, 0, len(names))
	skipped := 0
	for i, name := range names {
		if errs[i] != nil {
			skipped++
			log.Warn("Skipping sheet", "sheet", name, "error", NewSheetAccessError(name, errs[i]))
			continue
		}
		sheets = append(sheets, *results[i])
	}

	return &models.Workbook{
		Sheets:    sheets,
		Metadata:  metadata(src, opts, skipped),
		HasErrors: skipped > 0,
	}
}

// metadata merges parser identity with the document properties of src.
func metadata(src source.Source, opts Options, skipped int) map[string]string {
	meta := make(map[string]string)
	maps.Copy(meta, src.Properties())

	meta["parser"] = ParserName
	meta["version"] = version
	meta["format"] = string(src.Format())
	if opts.RowLimit > 0 {
		meta["row_limit"] = strconv.Itoa(opts.RowLimit)
	}
	if skipped > 0 {
		meta["skipped_sheets"] = strconv.Itoa(skipped)
	}
	return meta
}

func sheetOptions(opts Options) parser.SheetOptions {
	maxRows := parser.Unbounded
	if opts.RowLimit > 0 {
		maxRows = opts.RowLimit
	}
	return parser.SheetOptions{
		MaxRows:         maxRows,
		IncludeFormulas: opts.IncludeFormulas,
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
}
