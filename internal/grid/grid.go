// Package grid models one worksheet as an immutable jagged grid of cell
// values and provides cursor-based navigation over it. It is the leaf of
// the extraction DSL: rules in the rule package compose the operations
// defined here.
package grid

// Grid is a read-only, possibly jagged, rectangle of cell values. Rows may
// have different lengths; coordinates are zero-based with (0,0) top-left.
// A grid is built once per document sheet and never mutated afterwards,
// which keeps every navigation operation safe to repeat and to share.
type Grid struct {
	rows [][]Value
}

// New builds a grid from rows of values. The slice is not copied; callers
// must not mutate it after handing it over.
func New(rows [][]Value) *Grid {
	return &Grid{rows: rows}
}

// FromStrings builds a grid of raw text cells, empty strings becoming
// Empty values. Sources apply their own normalization before calling New;
// this constructor is for tests and other pre-normalized input.
func FromStrings(rows [][]string) *Grid {
	cells := make([][]Value, len(rows))
	for y, row := range rows {
		cells[y] = make([]Value, len(row))
		for x, s := range row {
			cells[y][x] = TextValue(s)
		}
	}
	return New(cells)
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// RowLen returns the length of row y, or 0 when y is out of range.
func (g *Grid) RowLen(y int) int {
	if y < 0 || y >= len(g.rows) {
		return 0
	}
	return len(g.rows[y])
}

// InBounds reports whether (x, y) addresses a cell of the grid. Rows are
// jagged, so the answer depends on the length of row y.
func (g *Grid) InBounds(x, y int) bool {
	return y >= 0 && y < len(g.rows) && x >= 0 && x < len(g.rows[y])
}

// At returns the value at (x, y), or an Absent value out of bounds.
func (g *Grid) At(x, y int) Value {
	if !g.InBounds(x, y) {
		return Value{Kind: Absent}
	}
	return g.rows[y][x]
}

// Strings renders every cell in canonical form, one slice per row.
func (g *Grid) Strings() [][]string {
	out := make([][]string, len(g.rows))
	for y, row := range g.rows {
		out[y] = make([]string, len(row))
		for x, v := range row {
			out[y][x] = v.String()
		}
	}
	return out
}
