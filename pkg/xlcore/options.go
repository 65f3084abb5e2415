// Package xlcore decodes spreadsheet workbooks into a normalized model and
// evaluates simple range formulas.
package xlcore

import (
	"log/slog"

	"github.com/LEONFROMWORK/xlcore/pkg/xlcore/source"
)

// DefaultStreamingRows is the row cap ParseStreaming applies when none is given.
const DefaultStreamingRows = 10000

// Options configures decoding behavior.
type Options struct {
	// RowLimit caps the rows materialized per sheet. Zero or negative means
	// no limit. ParseStreaming overrides it.
	RowLimit int
	// IncludeFormulas fills Cell.Formula when the decoder exposes formula text.
	IncludeFormulas bool
	// Parallelism is the number of sheets materialized concurrently.
	// Values below 2 decode sheets one at a time.
	Parallelism int
	// Password decrypts encrypted workbooks.
	Password string
	// SizeLimit caps decompressed and unzipped content in bytes.
	// Zero selects source.DefaultSizeLimit.
	SizeLimit int64
	// Logger receives warnings about skipped sheets.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default decoding options.
func DefaultOptions() Options {
	return Options{
		Parallelism: 1,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) openOptions() source.OpenOptions {
	return source.OpenOptions{
		Password:  o.Password,
		SizeLimit: o.SizeLimit,
	}
}
