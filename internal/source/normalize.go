package source

import (
	"strconv"
	"strings"

	"github.com/mkalv/faktura/internal/grid"
)

// cellValue normalizes one raw cell: text is trimmed, and anything that
// parses as a decimal number becomes a Number rounded to two decimals.
// Trimming matters for fixed-width legacy sheets that pad cells with
// trailing spaces; without it exact and prefix matches would depend on
// the source format.
func cellValue(raw string) grid.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return grid.Value{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return grid.NumberValue(grid.Round2(f))
	}
	return grid.TextValue(s)
}

func gridFromStrings(rows [][]string) *grid.Grid {
	cells := make([][]grid.Value, len(rows))
	for y, row := range rows {
		cells[y] = make([]grid.Value, len(row))
		for x, raw := range row {
			cells[y][x] = cellValue(raw)
		}
	}
	return grid.New(cells)
}
