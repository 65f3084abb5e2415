package source

import (
	"archive/zip"
	"bytes"

	"github.com/gabriel-vasile/mimetype"
	"github.com/richardlehane/mscfb"
)

const (
	mimeZip = "application/zip"
	mimeOLE = "application/x-ole-storage"
	// OOXML documents that are zip based but not spreadsheets.
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Detect sniffs the container format of an uncompressed buffer.
func Detect(data []byte) Format {
	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is(mimeDocx), mtype.Is(mimePptx):
		return FormatUnknown
	case isA(mtype, mimeZip):
		return detectZip(data)
	case isA(mtype, mimeOLE):
		return detectCompound(data)
	}
	return FormatUnknown
}

// isA reports whether mtype or one of its ancestors is the given MIME type.
func isA(mtype *mimetype.MIME, expected string) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(expected) {
			return true
		}
	}
	return false
}

// detectZip distinguishes XML workbooks from binary (xlsb) ones.
func detectZip(data []byte) Format {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return FormatUnknown
	}
	for _, f := range zr.File {
		switch f.Name {
		case "xl/workbook.xml":
			return FormatXLSX
		case "xl/workbook.bin":
			return FormatXLSB
		}
	}
	return FormatUnknown
}

// detectCompound inspects an OLE2 compound file. Encrypted OOXML workbooks
// carry an EncryptedPackage stream; legacy BIFF workbooks carry Workbook or
// Book.
func detectCompound(data []byte) Format {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return FormatUnknown
	}
	format := FormatUnknown
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptedPackage":
			return FormatEncryptedXLSX
		case "Workbook", "Book":
			format = FormatXLS
		}
	}
	return format
}
