package source

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory xlsx with build applied to a fresh file.
func workbook(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func collect(t *testing.T, r Range) [][]Value {
	t.Helper()
	var rows [][]Value
	for row := range r.Rows() {
		rows = append(rows, row)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("row iteration failed: %v", err)
	}
	return rows
}

func TestOpenXLSXValues(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Name")
		f.SetCellValue("Sheet1", "B1", 42)
		f.SetCellValue("Sheet1", "C1", 2.5)
		f.SetCellValue("Sheet1", "D1", true)
		f.SetCellValue("Sheet1", "E1", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	})

	src, format, err := Open(data, OpenOptions{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()
	if format != FormatXLSX || src.Format() != FormatXLSX {
		t.Errorf("format = %q, expected xlsx", format)
	}

	r, err := src.Range("Sheet1")
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if rows, cols := r.Size(); rows != 1 || cols != 5 {
		t.Fatalf("Size() = %dx%d, expected 1x5", rows, cols)
	}

	rows := collect(t, r)
	expected := []Value{String("Name"), Int(42), Float(2.5), Bool(true), DateTime{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}}
	for i, want := range expected {
		got := rows[0][i]
		if got.String() != want.String() {
			t.Errorf("col %d = %q, expected %q", i, got.String(), want.String())
		}
		if gotType, wantType := typeName(got), typeName(want); gotType != wantType {
			t.Errorf("col %d type = %s, expected %s", i, gotType, wantType)
		}
	}
}

func typeName(v Value) string {
	switch v.(type) {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Bool:
		return "Bool"
	case DateTime:
		return "DateTime"
	case Error:
		return "Error"
	case Empty:
		return "Empty"
	}
	return "unknown"
}

func TestXLSXRangeIsOriginAligned(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "C3", "x")
	})

	src, _, err := Open(data, OpenOptions{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	r, err := src.Range("Sheet1")
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if rows, cols := r.Size(); rows != 3 || cols != 3 {
		t.Fatalf("Size() = %dx%d, expected 3x3", rows, cols)
	}

	rows := collect(t, r)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			t.Fatalf("row %d has %d values, expected 3", i, len(row))
		}
	}
	if _, ok := rows[0][0].(Empty); !ok {
		t.Errorf("A1 = %#v, expected Empty", rows[0][0])
	}
	if rows[2][2] != String("x") {
		t.Errorf("C3 = %#v, expected String(x)", rows[2][2])
	}
}

func TestXLSXEmptySheet(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {})

	src, _, err := Open(data, OpenOptions{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	r, err := src.Range("Sheet1")
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if rows, cols := r.Size(); rows != 0 || cols != 0 {
		t.Errorf("Size() = %dx%d, expected 0x0", rows, cols)
	}
	if rows := collect(t, r); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestXLSXSheetNamesAndLookup(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		f.NewSheet("Data")
		f.NewSheet("Summary")
	})

	src, _, err := Open(data, OpenOptions{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	names := src.SheetNames()
	expected := []string{"Sheet1", "Data", "Summary"}
	if len(names) != len(expected) {
		t.Fatalf("SheetNames() = %v, expected %v", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("SheetNames()[%d] = %q, expected %q", i, names[i], expected[i])
		}
	}

	for _, name := range []string{"Missing", "data"} {
		if _, err := src.Range(name); !errors.Is(err, ErrSheetNotFound) {
			t.Errorf("Range(%q) error = %v, expected ErrSheetNotFound", name, err)
		}
	}
}

func TestXLSXFormula(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", 3)
		f.SetCellValue("Sheet1", "B1", 4)
		f.SetCellValue("Sheet1", "C1", 7)
		f.SetCellFormula("Sheet1", "C1", "SUM(A1:B1)")
	})

	src, _, err := Open(data, OpenOptions{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	r, err := src.Range("Sheet1")
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if got := r.Formula(0, 2); got != "SUM(A1:B1)" {
		t.Errorf("Formula(0, 2) = %q, expected SUM(A1:B1)", got)
	}
	if got := r.Formula(0, 0); got != "" {
		t.Errorf("Formula(0, 0) = %q, expected empty", got)
	}
}

func TestXLSXProperties(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		f.SetDocProps(&excelize.DocProperties{
			Creator: "Alice",
			Title:   "Budget",
		})
	})

	src, _, err := Open(data, OpenOptions{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	props := src.Properties()
	if props["author"] != "Alice" {
		t.Errorf("author = %q, expected Alice", props["author"])
	}
	if props["title"] != "Budget" {
		t.Errorf("title = %q, expected Budget", props["title"])
	}
	if _, ok := props["subject"]; ok {
		t.Errorf("empty subject should be omitted")
	}
}

func TestOpenEncrypted(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "secret")
	var buf bytes.Buffer
	if err := f.Write(&buf, excelize.Options{Password: "pw"}); err != nil {
		t.Fatalf("failed to write encrypted workbook: %v", err)
	}
	f.Close()

	if got := Detect(buf.Bytes()); got != FormatEncryptedXLSX {
		t.Fatalf("Detect() = %q, expected %q", got, FormatEncryptedXLSX)
	}

	_, format, err := Open(buf.Bytes(), OpenOptions{})
	if !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("Open without password error = %v, expected ErrPasswordRequired", err)
	}
	if format != FormatEncryptedXLSX {
		t.Errorf("format = %q, expected %q", format, FormatEncryptedXLSX)
	}

	src, _, err := Open(buf.Bytes(), OpenOptions{Password: "pw"})
	if err != nil {
		t.Fatalf("Open with password failed: %v", err)
	}
	defer src.Close()
	r, err := src.Range("Sheet1")
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	rows := collect(t, r)
	if len(rows) != 1 || rows[0][0] != String("secret") {
		t.Errorf("rows = %v, expected [[secret]]", rows)
	}
}

func TestOpenRejects(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty", nil, ErrEmptyInput},
		{"text", []byte("hello, world"), ErrUnsupportedFormat},
		{"pdf", []byte("%PDF-1.4\n%binary"), ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		_, _, err := Open(tt.data, OpenOptions{})
		if !errors.Is(err, tt.expected) {
			t.Errorf("%s: Open error = %v, expected %v", tt.name, err, tt.expected)
		}
	}
}
