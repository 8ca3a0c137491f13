// Package convert writes per-sheet CSV copies of spreadsheet invoices.
// The CSVs carry the same normalization the extraction sources apply, so
// aggregating the copies gives the same rows as aggregating the originals.
package convert

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkalv/faktura/internal/grid"
	"github.com/mkalv/faktura/internal/source"
)

// ExcelToCSV converts every spreadsheet in inputDir into one CSV per
// sheet under outputDir: file.csv for single-sheet workbooks,
// file_sheet.csv otherwise. It returns the paths written.
func ExcelToCSV(inputDir, outputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", inputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create %s: %w", outputDir, err)
	}

	var written []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".xlsx" && ext != ".xls" {
			continue
		}
		path := filepath.Join(inputDir, name)
		if !source.Supported(path) {
			continue // Office lock file
		}

		src, err := source.ForPath(path)
		if err != nil {
			continue
		}
		sheets, err := src.Parse(path)
		if err != nil {
			return written, fmt.Errorf("could not convert %s: %w", name, err)
		}

		for _, sheet := range sheets {
			outName := name + ".csv"
			if len(sheets) > 1 {
				outName = name + "_" + sheet.Name + ".csv"
			}
			outPath := filepath.Join(outputDir, outName)
			if err := writeGridCSV(outPath, sheet.Grid); err != nil {
				return written, err
			}
			written = append(written, outPath)
		}
	}
	return written, nil
}

func writeGridCSV(path string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(g.Strings()); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}
