// Package progress prints a lightweight per-document status line to
// stderr, keeping stdout clean for piped output.
package progress

import (
	"fmt"
	"os"
)

// Printer redraws one status line in place. Output is suppressed when
// stderr is not a terminal or FAKTURA_NO_PROGRESS=1.
type Printer struct {
	label   string
	enabled bool
}

// New creates a printer with the given label.
func New(label string) *Printer {
	return &Printer{label: label, enabled: enabled()}
}

// Step redraws the line as "label [done/total] name".
func (p *Printer) Step(done, total int, name string) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r\033[K%s [%d/%d] %s", p.label, done, total, name)
}

// Done clears the line and prints a completion summary.
func (p *Printer) Done(summary string) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r\033[K✓ %s\n", summary)
}

func enabled() bool {
	if os.Getenv("FAKTURA_NO_PROGRESS") == "1" {
		return false
	}
	stat, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
