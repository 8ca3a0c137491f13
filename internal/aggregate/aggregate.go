// Package aggregate runs the extraction pass over a directory of
// invoices and writes the collected rows to one output table. Each
// document is isolated: unsupported or unreadable files are counted and
// skipped, and a failed column in one row never affects another row.
package aggregate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkalv/faktura/internal/extract"
	"github.com/mkalv/faktura/internal/layouts"
	"github.com/mkalv/faktura/internal/source"
)

// Options configures one aggregation run. All state is passed in
// explicitly; nothing carries over between runs.
type Options struct {
	InputDir string
	Layout   layouts.Layout
	OutDir   string // default "out"
	Format   string // "csv" (default) or "xlsx"

	// Timestamp feeds the output file name; zero means now. Tests pin it
	// for deterministic names.
	Timestamp time.Time

	// Logf receives per-document diagnostics when set.
	Logf func(format string, args ...interface{})

	// Progress is called after each processed document.
	Progress func(done, total int, name string)
}

// Warning is a per-column extraction failure, attributed to its document.
type Warning struct {
	File    string `json:"file"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// Result summarizes one aggregation run.
type Result struct {
	OutputPath string        `json:"outputPath"`
	Rows       []extract.Row `json:"rows"`
	Processed  int           `json:"processed"`
	Skipped    int           `json:"skipped"`
	Warnings   []Warning     `json:"warnings,omitempty"`
}

// Run extracts one row per sheet from every supported document in
// InputDir and writes the aggregated table. The directory listing is
// processed in name order, so output row order is deterministic.
func Run(opts Options) (*Result, error) {
	if opts.OutDir == "" {
		opts.OutDir = "out"
	}
	if opts.Format == "" {
		opts.Format = "csv"
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}

	entries, err := os.ReadDir(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", opts.InputDir, err)
	}

	var files []string
	res := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !source.Supported(entry.Name()) {
			res.Skipped++
			logf("skipping %s: unsupported format", entry.Name())
			continue
		}
		files = append(files, entry.Name())
	}

	for _, name := range files {
		path := filepath.Join(opts.InputDir, name)
		src, err := source.ForPath(path)
		if err != nil {
			res.Skipped++
			logf("skipping %s: %v", name, err)
			continue
		}

		sheets, err := src.Parse(path)
		if err != nil {
			res.Skipped++
			logf("skipping %s: %v", name, err)
			continue
		}

		for _, sheet := range sheets {
			sourceName := name
			if len(sheets) > 1 {
				sourceName = name + "_" + sheet.Name
			}
			row, warns := extract.Pass(sheet.Grid, opts.Layout.Columns, sourceName)
			for _, w := range warns {
				res.Warnings = append(res.Warnings, Warning{File: sourceName, Column: w.Column, Message: w.Err.Error()})
				logf("%s: column %q: %v", sourceName, w.Column, w.Err)
			}
			res.Rows = append(res.Rows, row)
		}

		res.Processed++
		if opts.Progress != nil {
			opts.Progress(res.Processed, len(files), name)
		}
	}

	outPath, err := writeRows(opts, res.Rows)
	if err != nil {
		return nil, err
	}
	res.OutputPath = outPath
	return res, nil
}
