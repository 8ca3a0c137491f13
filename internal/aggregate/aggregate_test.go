package aggregate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkalv/faktura/internal/extract"
	"github.com/mkalv/faktura/internal/grid"
	"github.com/mkalv/faktura/internal/layouts"
	"github.com/mkalv/faktura/internal/rule"
)

func testLayout() layouts.Layout {
	return layouts.Layout{
		Name: "test",
		Columns: []extract.Column{
			{Name: "VALUE", Rule: rule.FindExact("Label").AdvanceToValue(grid.Right)},
		},
	}
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestRunAggregatesDirectory(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "invoices")
	if err := os.Mkdir(inputDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, inputDir, "a.csv", "Label,alpha\n")
	writeFixture(t, inputDir, "b.csv", "Label,beta\n")
	writeFixture(t, inputDir, "notes.txt", "not an invoice\n")
	writeFixture(t, inputDir, "~$lock.xlsx", "office lock file\n")

	outDir := filepath.Join(base, "out")
	res, err := Run(Options{
		InputDir:  inputDir,
		Layout:    testLayout(),
		OutDir:    outDir,
		Timestamp: time.Date(2024, 8, 1, 12, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Processed != 2 {
		t.Errorf("processed %d files, want 2", res.Processed)
	}
	if res.Skipped != 2 {
		t.Errorf("skipped %d files, want 2", res.Skipped)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	wantName := "aggregated-invoices-2024-08-01_12-30-00.csv"
	if filepath.Base(res.OutputPath) != wantName {
		t.Errorf("output name %q, want %q", filepath.Base(res.OutputPath), wantName)
	}

	records := readCSV(t, res.OutputPath)
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != extract.SourceColumn || records[0][1] != "VALUE" {
		t.Errorf("unexpected header %v", records[0])
	}
	// Directory listing order keeps the output deterministic.
	if records[1][0] != "a.csv" || records[1][1] != "alpha" {
		t.Errorf("unexpected first row %v", records[1])
	}
	if records[2][0] != "b.csv" || records[2][1] != "beta" {
		t.Errorf("unexpected second row %v", records[2])
	}
}

func TestRunRendersMissingColumnsEmpty(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "invoices")
	if err := os.Mkdir(inputDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, inputDir, "bare.csv", "Something,else\n")

	res, err := Run(Options{
		InputDir:  inputDir,
		Layout:    testLayout(),
		OutDir:    filepath.Join(base, "out"),
		Timestamp: time.Date(2024, 8, 1, 12, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	records := readCSV(t, res.OutputPath)
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	if records[1][0] != "bare.csv" || records[1][1] != "" {
		t.Errorf("missing column must render empty, got %v", records[1])
	}
}

func TestRunReportsTransformWarnings(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "invoices")
	if err := os.Mkdir(inputDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, inputDir, "bad.csv", "Suma,n/a\n")

	layout := layouts.Layout{
		Name: "test",
		Columns: []extract.Column{
			{Name: "KAINA", Rule: rule.FindExact("Suma").AdvanceToValue(grid.Right).Apply(rule.ExcludeVAT(1.21))},
		},
	}

	var logged []string
	res, err := Run(Options{
		InputDir:  inputDir,
		Layout:    layout,
		OutDir:    filepath.Join(base, "out"),
		Timestamp: time.Date(2024, 8, 1, 12, 30, 0, 0, time.UTC),
		Logf: func(format string, args ...interface{}) {
			logged = append(logged, format)
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(res.Warnings))
	}
	w := res.Warnings[0]
	if w.File != "bad.csv" || w.Column != "KAINA" {
		t.Errorf("warning attribution %+v", w)
	}
	if !strings.Contains(w.Message, "exclude-vat") {
		t.Errorf("warning should name the transform: %q", w.Message)
	}
	if len(logged) == 0 {
		t.Error("warnings should also reach the log")
	}
	// The row still exists, just without the failed column.
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}
	if _, ok := res.Rows[0]["KAINA"]; ok {
		t.Error("failed column must be omitted from the row")
	}
}

func TestRunMultiSheetWorkbook(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "invoices")
	if err := os.Mkdir(inputDir, 0755); err != nil {
		t.Fatal(err)
	}

	f := excelize.NewFile()
	first := f.GetSheetName(0)
	if err := f.SetCellValue(first, "A1", "Label"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(first, "B1", "one"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Lapas2"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Lapas2", "A1", "Label"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Lapas2", "B1", "two"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(filepath.Join(inputDir, "multi.xlsx")); err != nil {
		t.Fatal(err)
	}
	f.Close()

	res, err := Run(Options{
		InputDir:  inputDir,
		Layout:    testLayout(),
		OutDir:    filepath.Join(base, "out"),
		Timestamp: time.Date(2024, 8, 1, 12, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Processed != 1 {
		t.Errorf("processed %d, want 1", res.Processed)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected one row per sheet, got %d", len(res.Rows))
	}
	// Sheet rows are disambiguated in the source column.
	src0 := res.Rows[0][extract.SourceColumn]
	src1 := res.Rows[1][extract.SourceColumn]
	if src0 != "multi.xlsx_"+first || src1 != "multi.xlsx_Lapas2" {
		t.Errorf("unexpected source names %q, %q", src0, src1)
	}
}

func TestRunXLSXOutput(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "invoices")
	if err := os.Mkdir(inputDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, inputDir, "a.csv", "Label,alpha\n")

	res, err := Run(Options{
		InputDir:  inputDir,
		Layout:    testLayout(),
		OutDir:    filepath.Join(base, "out"),
		Format:    "xlsx",
		Timestamp: time.Date(2024, 8, 1, 12, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if filepath.Ext(res.OutputPath) != ".xlsx" {
		t.Fatalf("unexpected output path %q", res.OutputPath)
	}

	f, err := excelize.OpenFile(res.OutputPath)
	if err != nil {
		t.Fatalf("could not reopen output: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "a.csv" || rows[1][1] != "alpha" {
		t.Errorf("unexpected row %v", rows[1])
	}
}

func TestRunUnknownFormat(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "invoices")
	if err := os.Mkdir(inputDir, 0755); err != nil {
		t.Fatal(err)
	}

	_, err := Run(Options{
		InputDir: inputDir,
		Layout:   testLayout(),
		OutDir:   filepath.Join(base, "out"),
		Format:   "pdf",
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestRunMissingInputDir(t *testing.T) {
	_, err := Run(Options{InputDir: "/nonexistent/invoices", Layout: testLayout()})
	if err == nil {
		t.Error("expected error for missing input directory")
	}
}
