package rule

import (
	"fmt"
	"strings"

	"github.com/mkalv/faktura/internal/grid"
)

// Transform rewrites a cell value in place. Name is carried for error
// reporting and for referencing transforms from YAML layout files.
type Transform struct {
	Name string
	Fn   func(grid.Value) (grid.Value, error)
}

// TransformError reports a transform that rejected its input. It is a
// per-column, per-document failure: the column is dropped from the row
// and the pass continues.
type TransformError struct {
	Transform string
	Value     grid.Value
	Err       error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %q failed on %q: %v", e.Transform, e.Value.String(), e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// Trim strips leading and trailing whitespace.
func Trim() Transform {
	return Transform{Name: "trim", Fn: func(v grid.Value) (grid.Value, error) {
		return grid.TextValue(strings.TrimSpace(v.String())), nil
	}}
}

// Word picks one whitespace-separated token of the value. Negative
// indexes count from the end, so Word(-1) is the last token.
func Word(index int) Transform {
	return Transform{Name: fmt.Sprintf("word[%d]", index), Fn: func(v grid.Value) (grid.Value, error) {
		fields := strings.Fields(v.String())
		i := index
		if i < 0 {
			i += len(fields)
		}
		if i < 0 || i >= len(fields) {
			return grid.Value{}, fmt.Errorf("token %d out of range in %q", index, v.String())
		}
		return grid.TextValue(fields[i]), nil
	}}
}

// ExcludeVAT divides a gross amount by the VAT multiplier and rounds to
// two decimals. Non-numeric input is a transform failure, not a crash.
func ExcludeVAT(rate float64) Transform {
	return Transform{Name: "exclude-vat", Fn: func(v grid.Value) (grid.Value, error) {
		f, err := v.Float()
		if err != nil {
			return grid.Value{}, err
		}
		return grid.NumberValue(grid.Round2(f / rate)), nil
	}}
}
