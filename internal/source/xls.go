package source

import (
	"fmt"

	"github.com/extrame/xls"
)

// XLSSource decodes legacy binary Excel workbooks. The decoder exposes
// sparse rows, so missing rows become empty grid rows to keep coordinates
// stable for navigation.
type XLSSource struct{}

func (XLSSource) Parse(path string) ([]Sheet, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xls file? %w", path, err)
	}

	var sheets []Sheet
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, Sheet{Name: ws.Name, Grid: gridFromStrings(rows)})
	}
	return sheets, nil
}
