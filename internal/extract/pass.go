// Package extract applies a layout's column rules to one grid and
// produces one output row per sheet.
package extract

import (
	"errors"

	"github.com/mkalv/faktura/internal/grid"
	"github.com/mkalv/faktura/internal/rule"
)

// SourceColumn is present in every row and names the originating file
// (and sheet, for multi-sheet workbooks).
const SourceColumn = "Filename"

// Column pairs an output column name with the rule that locates its value.
type Column struct {
	Name string
	Rule rule.Rule
}

// Row maps column names to extracted values. Columns whose rule found
// nothing are absent from the map rather than set to a placeholder, so
// sinks must tolerate missing keys per row.
type Row map[string]string

// Warning reports a per-column extraction failure worth surfacing to the
// operator. Plain not-found outcomes are expected and produce none.
type Warning struct {
	Column string
	Err    error
}

// Pass evaluates every column rule against g. Rules that find nothing
// leave their column out of the row; transform failures additionally
// yield a warning. No failure aborts the pass, and rows of different
// documents never affect each other.
func Pass(g *grid.Grid, columns []Column, sourceName string) (Row, []Warning) {
	row := Row{SourceColumn: sourceName}
	var warnings []Warning
	for _, col := range columns {
		cur, err := col.Rule.Eval(g)
		if err != nil {
			if !errors.Is(err, rule.ErrNotFound) {
				warnings = append(warnings, Warning{Column: col.Name, Err: err})
			}
			continue
		}
		row[col.Name] = cur.Value.String()
	}
	return row, warnings
}
