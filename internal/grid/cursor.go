package grid

// Direction is one of the four unit steps a cursor can take.
type Direction struct {
	DX, DY int
}

var (
	Right = Direction{1, 0}
	Left  = Direction{-1, 0}
	Down  = Direction{0, 1}
	Up    = Direction{0, -1}
)

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	return Direction{-d.DX, -d.DY}
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return "invalid"
}

// Cursor is an immutable pointer to one cell plus the value seen there.
// MatchedPrefix and MatchedSuffix carry the context captured where a
// prefix search matched; they are empty otherwise. Navigation never
// mutates a cursor: every operation returns a new one, or ok=false when
// no satisfying cell exists within bounds. A cursor is only ever
// constructed for an in-bounds coordinate.
type Cursor struct {
	X, Y          int
	Value         Value
	MatchedPrefix string
	MatchedSuffix string

	grid *Grid
}

// WithValue returns a cursor at the same cell carrying a replacement
// value. Rule steps that reinterpret the cell (suffix reads, transforms)
// use this; the coordinate and grid binding stay intact.
func (c Cursor) WithValue(v Value) Cursor {
	c.Value = v
	return c
}

// MoveBy jumps exactly count cells in d. Empty cells are not skipped;
// bounds are checked on every single step, so a jump through a short row
// of a jagged grid fails even when the destination would exist.
func (c Cursor) MoveBy(d Direction, count int) (Cursor, bool) {
	x, y := c.X, c.Y
	for i := 0; i < count; i++ {
		x += d.DX
		y += d.DY
		if !c.grid.InBounds(x, y) {
			return Cursor{}, false
		}
	}
	return Cursor{X: x, Y: y, Value: c.grid.At(x, y), grid: c.grid}, true
}

// AdvanceToValue steps in d, skipping empty cells, and returns the first
// non-empty cell. ok is false when the grid edge is reached first.
func (c Cursor) AdvanceToValue(d Direction) (Cursor, bool) {
	x, y := c.X, c.Y
	for {
		x += d.DX
		y += d.DY
		if !c.grid.InBounds(x, y) {
			return Cursor{}, false
		}
		if v := c.grid.At(x, y); !v.IsEmpty() {
			return Cursor{X: x, Y: y, Value: v, grid: c.grid}, true
		}
	}
}

// AdvanceUntil repeatedly advances to the next non-empty cell in d until
// pred accepts the value there. Termination is bounded by the grid edge.
func (c Cursor) AdvanceUntil(d Direction, pred func(Value) bool) (Cursor, bool) {
	cur := c
	for {
		next, ok := cur.AdvanceToValue(d)
		if !ok {
			return Cursor{}, false
		}
		if pred(next.Value) {
			return next, true
		}
		cur = next
	}
}

// AdvanceUntilExact advances over empty cells until a text cell equal to
// target.
func (c Cursor) AdvanceUntilExact(d Direction, target string) (Cursor, bool) {
	return c.AdvanceUntil(d, Equals(target))
}

// AdvanceUntilPrefix advances over empty cells until a text cell starting
// with prefix, and records the prefix and its remainder on the result so
// a later suffix read can pick the remainder up.
func (c Cursor) AdvanceUntilPrefix(d Direction, prefix string) (Cursor, bool) {
	found, ok := c.AdvanceUntil(d, HasPrefix(prefix))
	if !ok {
		return Cursor{}, false
	}
	found.MatchedPrefix = prefix
	found.MatchedSuffix = found.Value.Text[len(prefix):]
	return found, true
}

// AdvanceWhileContinuous follows the contiguous run of non-empty cells
// starting at the cursor and returns the last one. The run uses raw
// single steps with no empty-skipping, so it ends just before the first
// empty or absent cell. With an empty or absent immediate neighbor the
// receiver comes back unchanged (a zero-length run).
func (c Cursor) AdvanceWhileContinuous(d Direction) Cursor {
	cur := c
	for {
		next, ok := cur.MoveBy(d, 1)
		if !ok || next.Value.IsEmpty() {
			return cur
		}
		cur = next
	}
}

// Equals matches text cells equal to target.
func Equals(target string) func(Value) bool {
	return func(v Value) bool {
		return v.Kind == Text && v.Text == target
	}
}

// HasPrefix matches text cells starting with prefix.
func HasPrefix(prefix string) func(Value) bool {
	return func(v Value) bool {
		return v.Kind == Text && len(v.Text) >= len(prefix) && v.Text[:len(prefix)] == prefix
	}
}
