package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads modern Excel workbooks, one grid per worksheet.
type XLSXSource struct{}

func (XLSXSource) Parse(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Grid: gridFromStrings(rows)})
	}
	return sheets, nil
}
