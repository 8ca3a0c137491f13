package source

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVSource reads delimited text documents. A CSV holds exactly one sheet.
type CSVSource struct{}

// Parse reads the whole file into one jagged grid.
func (CSVSource) Parse(path string) ([]Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // invoice sheets are jagged
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	return []Sheet{{Grid: gridFromStrings(records)}}, nil
}
