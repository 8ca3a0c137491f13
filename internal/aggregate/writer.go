package aggregate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkalv/faktura/internal/extract"
	"github.com/mkalv/faktura/internal/layouts"
)

// columnOrder is the source column first, then the layout's declared
// column order.
func columnOrder(l layouts.Layout) []string {
	header := []string{extract.SourceColumn}
	for _, c := range l.Columns {
		header = append(header, c.Name)
	}
	return header
}

// writeRows persists the aggregated table as
// aggregated-<dirname>-<timestamp>.<format> under OutDir.
func writeRows(opts Options, rows []extract.Row) (string, error) {
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return "", fmt.Errorf("could not create %s: %w", opts.OutDir, err)
	}

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	dirName := filepath.Base(filepath.Clean(opts.InputDir))
	name := fmt.Sprintf("aggregated-%s-%s.%s", dirName, ts.Format("2006-01-02_15-04-05"), opts.Format)
	path := filepath.Join(opts.OutDir, name)

	header := columnOrder(opts.Layout)
	switch opts.Format {
	case "csv":
		if err := writeCSV(path, header, rows); err != nil {
			return "", err
		}
	case "xlsx":
		if err := writeXLSX(path, header, rows); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported output format %q (want csv or xlsx)", opts.Format)
	}
	return path, nil
}

func writeCSV(path string, header []string, rows []extract.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = row[col] // missing keys render empty
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("could not write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}

func writeXLSX(path string, header []string, rows []extract.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	records := [][]string{header}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = row[col]
		}
		records = append(records, record)
	}

	for y, record := range records {
		for x, cell := range record {
			cellName, err := excelize.CoordinatesToCellName(x+1, y+1)
			if err != nil {
				return fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cellName, cell); err != nil {
				return fmt.Errorf("could not set cell %s: %w", cellName, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}
