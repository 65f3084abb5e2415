// Package source decodes spreadsheet containers into named, rectangular
// ranges of typed values.
//
// A Range is dense and origin-aligned: row 0, column 0 is cell A1 and every
// row yielded spans the reported column count (shorter rows are allowed and
// mean trailing empty cells). Consumers derive addresses from enumeration
// order, so implementations must not skip leading empty rows or columns.
package source

import (
	"errors"
	"iter"
)

// Format identifies the container a buffer was decoded from.
type Format string

const (
	FormatXLSX          Format = "xlsx"
	FormatEncryptedXLSX Format = "xlsx-encrypted"
	FormatXLS           Format = "xls"
	FormatXLSB          Format = "xlsb"
	FormatUnknown       Format = "unknown"
)

var (
	// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrUnsupportedFormat indicates a container this package cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrPasswordRequired indicates an encrypted workbook opened without a password.
	ErrPasswordRequired = errors.New("workbook is encrypted and no password was supplied")
	// ErrEmptyInput indicates a zero-length buffer.
	ErrEmptyInput = errors.New("empty input")
	// ErrTooLarge indicates decompressed content above the configured limit.
	ErrTooLarge = errors.New("decompressed content exceeds size limit")
)

// Source is an opened workbook.
type Source interface {
	// Format reports the detected container format.
	Format() Format
	// SheetNames returns sheet names in declaration order.
	SheetNames() []string
	// Range returns the cell range of the named sheet.
	Range(sheet string) (Range, error)
	// Properties returns document properties (author, title, ...) keyed by
	// snake_case name. Missing properties are omitted.
	Properties() map[string]string
	// Close releases resources held by the source.
	Close() error
}

// Range is a rectangular window of cell values.
type Range interface {
	// Size returns the number of rows and columns in the range.
	Size() (rows, cols int)
	// Rows yields each row in order. Iteration may stop early; any decode
	// error is reported by Err afterwards.
	Rows() iter.Seq[[]Value]
	// Formula returns the formula text stored at the 0-based position, or ""
	// when there is none or the decoder cannot expose it.
	Formula(row, col int) string
	// Err returns the first error encountered by Rows.
	Err() error
}

// OpenOptions configures Open.
type OpenOptions struct {
	// Password decrypts encrypted OOXML workbooks.
	Password string
	// SizeLimit caps the decompressed size of the workbook and of its
	// unzipped parts. Zero selects DefaultSizeLimit.
	SizeLimit int64
}

// DefaultSizeLimit is the default cap on decompressed content (1 GiB).
const DefaultSizeLimit int64 = 1 << 30

func (o OpenOptions) sizeLimit() int64 {
	if o.SizeLimit > 0 {
		return o.SizeLimit
	}
	return DefaultSizeLimit
}

// Open detects the container format of data and opens it.
// It returns the detected format alongside any error so callers can report it.
func Open(data []byte, opts OpenOptions) (Source, Format, error) {
	if len(data) == 0 {
		return nil, FormatUnknown, ErrEmptyInput
	}

	data, err := decompress(data, opts.sizeLimit())
	if err != nil {
		return nil, FormatUnknown, err
	}

	format := Detect(data)
	switch format {
	case FormatXLSX:
	case FormatEncryptedXLSX:
		if opts.Password == "" {
			return nil, format, ErrPasswordRequired
		}
	default:
		return nil, format, ErrUnsupportedFormat
	}

	src, err := openXLSX(data, format, opts)
	if err != nil {
		return nil, format, err
	}
	return src, format, nil
}
