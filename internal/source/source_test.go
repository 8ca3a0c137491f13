package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/mkalv/faktura/internal/grid"
)

func TestForPathDispatch(t *testing.T) {
	if _, err := ForPath("invoice.csv"); err != nil {
		t.Errorf("csv: %v", err)
	}
	if _, err := ForPath("invoice.XLSX"); err != nil {
		t.Errorf("upper-case xlsx: %v", err)
	}
	if _, err := ForPath("invoice.xls"); err != nil {
		t.Errorf("xls: %v", err)
	}

	_, err := ForPath("invoice.pdf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	if !Supported("dir/invoice.xlsx") {
		t.Error("xlsx should be supported")
	}
	if Supported("dir/~$invoice.xlsx") {
		t.Error("Office lock files should be filtered")
	}
	if Supported("notes.txt") {
		t.Error("txt should not be supported")
	}
}

func TestCSVSourceNormalizesCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.csv")
	content := "Suma Eur ,,\n10.567,  label  \n121\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sheets, err := CSVSource{}.Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	g := sheets[0].Grid

	// Trailing space trimmed from text.
	if v := g.At(0, 0); v.Kind != grid.Text || v.Text != "Suma Eur" {
		t.Errorf("expected trimmed text \"Suma Eur\", got %+v", v)
	}
	// Empty fields stay empty.
	if v := g.At(1, 0); !v.IsEmpty() {
		t.Errorf("expected empty cell, got %+v", v)
	}
	// Numbers are typed and rounded to cents.
	if v := g.At(0, 1); v.Kind != grid.Number || v.Number != 10.57 {
		t.Errorf("expected number 10.57, got %+v", v)
	}
	if v := g.At(1, 1); v.Kind != grid.Text || v.Text != "label" {
		t.Errorf("expected trimmed \"label\", got %+v", v)
	}
	// Rows stay jagged.
	if g.RowLen(0) != 3 || g.RowLen(2) != 1 {
		t.Errorf("unexpected row lengths %d, %d", g.RowLen(0), g.RowLen(2))
	}
	if v := g.At(1, 2); !v.IsAbsent() {
		t.Errorf("expected absent beyond the short row, got %+v", v)
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	if _, err := (CSVSource{}).Parse("/nonexistent/invoice.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestXLSXSourceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "Suma Eur "); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "A2", 121); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "C2", "text"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	sheets, err := XLSXSource{}.Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	g := sheets[0].Grid

	if v := g.At(0, 0); v.Kind != grid.Text || v.Text != "Suma Eur" {
		t.Errorf("expected trimmed \"Suma Eur\", got %+v", v)
	}
	if v := g.At(0, 1); v.Kind != grid.Number || v.Number != 121 {
		t.Errorf("expected number 121, got %+v", v)
	}
	if v := g.At(1, 1); !v.IsEmpty() {
		t.Errorf("expected empty gap cell, got %+v", v)
	}
	if v := g.At(2, 1); v.Kind != grid.Text || v.Text != "text" {
		t.Errorf("expected \"text\", got %+v", v)
	}
}

func TestXLSXSourceInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := (XLSXSource{}).Parse(path); err == nil {
		t.Error("expected error for an invalid workbook")
	}
}

func TestXLSSourceInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.xls")
	if err := os.WriteFile(path, []byte("not a workbook"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := (XLSSource{}).Parse(path); err == nil {
		t.Error("expected error for an invalid legacy workbook")
	}
}
