// Package rule implements the extraction DSL: a rule is a deferred,
// composable chain of cursor operations that binds to a grid only at
// evaluation time. A rule starts from a search primitive and carries an
// ordered list of step descriptors interpreted by a single evaluator.
// Steps are plain data rather than closures, which keeps rules
// inspectable and lets YAML layouts map onto them one to one.
package rule

import (
	"errors"

	"github.com/mkalv/faktura/internal/grid"
)

// ErrNotFound reports that a search or navigation step ran out of grid
// before satisfying its condition. It short-circuits the remaining steps
// of a rule; it never aborts an extraction pass.
var ErrNotFound = errors.New("no matching cell")

// Op identifies a step kind.
type Op int

const (
	OpMove Op = iota
	OpAdvanceToValue
	OpAdvanceUntilExact
	OpAdvanceUntilPrefix
	OpAdvanceWhileContinuous
	OpReadSuffix
	OpTransform
)

// Step is one descriptor in a rule chain. Which fields are meaningful
// depends on Op: Dir for every navigation step, Count for moves, Target
// for the until-steps, Transform for transforms.
type Step struct {
	Op        Op
	Dir       grid.Direction
	Count     int
	Target    string
	Transform Transform
}

type search struct {
	prefix bool
	target string
}

// Rule locates one cell in a grid by running a search primitive and then
// a fixed step sequence. Rules are immutable values: every extender
// returns a new rule and evaluation holds no state, so one rule can be
// evaluated any number of times against any number of grids with
// identical results.
type Rule struct {
	search search
	steps  []Step
}

// FindExact starts a rule at the first cell whose text equals target,
// in row-major reading order.
func FindExact(target string) Rule {
	return Rule{search: search{target: target}}
}

// FindPrefix starts a rule at the first text cell starting with prefix
// and captures the remainder for a later ReadSuffix step.
func FindPrefix(prefix string) Rule {
	return Rule{search: search{prefix: true, target: prefix}}
}

func (r Rule) with(s Step) Rule {
	steps := make([]Step, len(r.steps), len(r.steps)+1)
	copy(steps, r.steps)
	return Rule{search: r.search, steps: append(steps, s)}
}

// Move jumps exactly count cells in d without skipping empty cells.
func (r Rule) Move(d grid.Direction, count int) Rule {
	return r.with(Step{Op: OpMove, Dir: d, Count: count})
}

// AdvanceToValue skips empty cells in d and lands on the first value.
func (r Rule) AdvanceToValue(d grid.Direction) Rule {
	return r.with(Step{Op: OpAdvanceToValue, Dir: d})
}

// AdvanceUntilExact advances in d until a cell equal to target.
func (r Rule) AdvanceUntilExact(d grid.Direction, target string) Rule {
	return r.with(Step{Op: OpAdvanceUntilExact, Dir: d, Target: target})
}

// AdvanceUntilPrefix advances in d until a cell starting with prefix,
// capturing the remainder for a later ReadSuffix step.
func (r Rule) AdvanceUntilPrefix(d grid.Direction, prefix string) Rule {
	return r.with(Step{Op: OpAdvanceUntilPrefix, Dir: d, Target: prefix})
}

// AdvanceWhileContinuous follows the contiguous non-empty run in d and
// lands on its last cell.
func (r Rule) AdvanceWhileContinuous(d grid.Direction) Rule {
	return r.with(Step{Op: OpAdvanceWhileContinuous, Dir: d})
}

// ReadSuffix replaces the value with the remainder captured by the most
// recent prefix match.
func (r Rule) ReadSuffix() Rule {
	return r.with(Step{Op: OpReadSuffix})
}

// Apply appends a value transform.
func (r Rule) Apply(t Transform) Rule {
	return r.with(Step{Op: OpTransform, Transform: t})
}

// Steps returns a copy of the step chain, for inspection.
func (r Rule) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Eval runs the rule against g. It returns ErrNotFound when the search or
// any navigation step runs out of grid, or a *TransformError when a
// transform rejects its input. Evaluation is pure and repeatable: the
// same rule on the same grid always yields the same result, and g is
// never modified.
func (r Rule) Eval(g *grid.Grid) (grid.Cursor, error) {
	var cur grid.Cursor
	var ok bool
	if r.search.prefix {
		cur, ok = g.FindPrefix(r.search.target)
	} else {
		cur, ok = g.FindExact(r.search.target)
	}
	if !ok {
		return grid.Cursor{}, ErrNotFound
	}

	for _, s := range r.steps {
		switch s.Op {
		case OpMove:
			cur, ok = cur.MoveBy(s.Dir, s.Count)
		case OpAdvanceToValue:
			cur, ok = cur.AdvanceToValue(s.Dir)
		case OpAdvanceUntilExact:
			cur, ok = cur.AdvanceUntilExact(s.Dir, s.Target)
		case OpAdvanceUntilPrefix:
			cur, ok = cur.AdvanceUntilPrefix(s.Dir, s.Target)
		case OpAdvanceWhileContinuous:
			cur = cur.AdvanceWhileContinuous(s.Dir)
		case OpReadSuffix:
			cur = cur.WithValue(grid.TextValue(cur.MatchedSuffix))
		case OpTransform:
			v, err := s.Transform.Fn(cur.Value)
			if err != nil {
				return grid.Cursor{}, &TransformError{Transform: s.Transform.Name, Value: cur.Value, Err: err}
			}
			cur = cur.WithValue(v)
		}
		if !ok {
			return grid.Cursor{}, ErrNotFound
		}
	}
	return cur, nil
}
