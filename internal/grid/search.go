package grid

// FindExact returns a cursor at the first text cell equal to target,
// scanning rows top to bottom and cells left to right. Reading order makes
// the result deterministic when several cells match.
func (g *Grid) FindExact(target string) (Cursor, bool) {
	return g.find(Equals(target))
}

// FindPrefix returns a cursor at the first text cell starting with prefix,
// in the same reading order as FindExact. The matched prefix and the
// remainder of the cell text are recorded on the cursor.
func (g *Grid) FindPrefix(prefix string) (Cursor, bool) {
	c, ok := g.find(HasPrefix(prefix))
	if !ok {
		return Cursor{}, false
	}
	c.MatchedPrefix = prefix
	c.MatchedSuffix = c.Value.Text[len(prefix):]
	return c, true
}

func (g *Grid) find(pred func(Value) bool) (Cursor, bool) {
	for y, row := range g.rows {
		for x, v := range row {
			if pred(v) {
				return Cursor{X: x, Y: y, Value: v, grid: g}, true
			}
		}
	}
	return Cursor{}, false
}
