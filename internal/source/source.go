// Package source converts invoice documents into grids. Every supported
// format sits behind the same narrow Source contract, so the extraction
// core never sees format quirks: 1-based native indices, legacy binary
// decoding, and delimiter handling all stay here.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mkalv/faktura/internal/grid"
)

// ErrUnsupportedFormat marks a file extension no source can parse.
// Callers skip such documents and continue; one unreadable file never
// aborts a run.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Sheet is one worksheet normalized to a grid. Single-sheet formats leave
// Name empty.
type Sheet struct {
	Name string
	Grid *grid.Grid
}

// Source parses one document into its sheets.
type Source interface {
	Parse(path string) ([]Sheet, error)
}

// ForPath selects a source by file extension.
func ForPath(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVSource{}, nil
	case ".xlsx":
		return XLSXSource{}, nil
	case ".xls":
		return XLSSource{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Supported reports whether path names a parseable document. Office lock
// files ("~$..." companions of an open workbook) are excluded.
func Supported(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}
