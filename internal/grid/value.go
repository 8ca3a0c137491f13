package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the cell value union.
type Kind int

const (
	// Empty is a present cell holding the empty string.
	Empty Kind = iota
	// Text is a non-empty string cell.
	Text
	// Number is a numeric cell. Sources round numbers to two decimals so
	// matches behave the same regardless of the input format.
	Number
	// Absent marks a coordinate outside the grid bounds. It is never
	// stored in a grid; At returns it for out-of-bounds reads.
	Absent
)

// Value is one cell value: text, number, empty, or absent. Empty and
// Absent are distinct outcomes: a continuous-run scan stops on an empty
// cell inside the grid, while Absent means there was no cell at all.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
}

// TextValue returns a Text value, or an Empty one for the empty string.
func TextValue(s string) Value {
	if s == "" {
		return Value{Kind: Empty}
	}
	return Value{Kind: Text, Text: s}
}

// NumberValue returns a Number value.
func NumberValue(f float64) Value {
	return Value{Kind: Number, Number: f}
}

// IsEmpty reports whether the value is a present-but-empty cell.
func (v Value) IsEmpty() bool { return v.Kind == Empty }

// IsAbsent reports whether the value marks an out-of-bounds coordinate.
func (v Value) IsAbsent() bool { return v.Kind == Absent }

// String renders the canonical form used in output rows. Empty and absent
// values render as "".
func (v Value) String() string {
	switch v.Kind {
	case Text:
		return v.Text
	case Number:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Float coerces the value to a number: Number cells directly, Text cells
// via decimal parsing. Anything else is an error.
func (v Value) Float() (float64, error) {
	switch v.Kind {
	case Number:
		return v.Number, nil
	case Text:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v.Text)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("no numeric value at this cell")
	}
}

// Equal reports type-sensitive equality: a Number never equals a Text
// value even when they render the same.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Text:
		return v.Text == o.Text
	case Number:
		return v.Number == o.Number
	default:
		return true
	}
}

// Round2 rounds to two fractional digits, the stable precision all
// sources and numeric transforms emit.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
