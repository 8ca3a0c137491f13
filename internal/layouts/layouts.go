// Package layouts holds the invoice layouts: named, ordered rule sets
// describing where each output column lives on a particular invoice form.
// Two forms are built in; additional ones load from YAML files.
package layouts

import (
	"fmt"
	"sort"

	"github.com/mkalv/faktura/internal/extract"
	"github.com/mkalv/faktura/internal/grid"
	"github.com/mkalv/faktura/internal/rule"
)

// DefaultVATRate is the standard Lithuanian VAT multiplier applied when a
// layout or config does not override it.
const DefaultVATRate = 1.21

// Layout is a named rule set for one invoice form. Column order is the
// output column order.
type Layout struct {
	Name        string
	Description string
	Columns     []extract.Column
}

// Builtin returns the layouts compiled into the binary. vatRate feeds the
// VAT-exclusive amount columns.
func Builtin(vatRate float64) []Layout {
	return []Layout{vatInvoice(), serija(vatRate)}
}

// Get returns the built-in layout with the given name.
func Get(name string, vatRate float64) (Layout, error) {
	for _, l := range Builtin(vatRate) {
		if l.Name == name {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("unknown layout %q — available: %v", name, Names())
}

// Names lists the built-in layout names, sorted.
func Names() []string {
	var names []string
	for _, l := range Builtin(DefaultVATRate) {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks a layout for a run: an explicit YAML file wins over a
// built-in name.
func Resolve(name, file string, vatRate float64) (Layout, error) {
	if file != "" {
		return Load(file)
	}
	return Get(name, vatRate)
}

// vatInvoice reads the bilingual "PVM SĄSKAITA FAKTŪRA" form: fields are
// anchored on labeled cells, with buyer details stacked under the
// "Pirkėjas / Buyer" header and the total in a separate sums block.
func vatInvoice() Layout {
	return Layout{
		Name:        "vat-invoice",
		Description: "Bilingual VAT invoice form with labeled buyer block",
		Columns: []extract.Column{
			{Name: "SF NUMERIS", Rule: rule.FindPrefix("PVM SĄSKAITA FAKTŪRA (VAT INVOICE)").Apply(rule.Word(-1))},
			{Name: "DATA", Rule: rule.FindPrefix("Išrašymo data / Date:").ReadSuffix()},
			{Name: "KODAS", Rule: rule.FindPrefix("Pirkėjas / Buyer").AdvanceUntilPrefix(grid.Down, "Įmones kodas:").ReadSuffix()},
			{Name: "PVM KODAS", Rule: rule.FindPrefix("Pirkėjas / Buyer").AdvanceUntilPrefix(grid.Down, "PVM kodas:").ReadSuffix()},
			{Name: "VARDAS PAVARDĖ/ĮM. PAVADINIMAS", Rule: rule.FindExact("Pirkėjas / Buyer").AdvanceToValue(grid.Down)},
			{Name: "KAINA BE PVM", Rule: rule.FindExact("Bendros sumos EUR").AdvanceUntilExact(grid.Down, "Suma be PVM / total amount:").AdvanceToValue(grid.Right)},
		},
	}
}

// serija reads the "Serija X Nr. N" form: the header carries the series
// and number, buyer fields sit above their parenthesized captions, and
// the gross total is the last cell of the amount column.
func serija(vatRate float64) Layout {
	return Layout{
		Name:        "serija",
		Description: "Numbered series form with captioned buyer fields",
		Columns: []extract.Column{
			{Name: "SERIJA", Rule: rule.FindPrefix("Serija ").Apply(rule.Word(1))},
			{Name: "NR", Rule: rule.FindPrefix("Serija ").Apply(rule.Word(-1))},
			{Name: "DATA", Rule: rule.FindPrefix("Serija ").AdvanceToValue(grid.Down).Apply(rule.Trim())},
			{Name: "PIRKEJAS", Rule: rule.FindExact("Pirkėjas:").Move(grid.Right, 1).AdvanceUntilExact(grid.Down, "(pavadinimas)").Move(grid.Up, 1)},
			{Name: "KODAS", Rule: rule.FindExact("Pirkėjas:").Move(grid.Right, 1).AdvanceUntilExact(grid.Down, "(pirkėjo kodas)").Move(grid.Up, 1)},
			{Name: "PVM KODAS", Rule: rule.FindExact("Pirkėjas:").Move(grid.Right, 1).AdvanceUntilExact(grid.Down, "(PVM mokėtojo kodas)").Move(grid.Up, 1)},
			{Name: "KAINA BE PVM", Rule: rule.FindExact("Suma Eur").AdvanceWhileContinuous(grid.Down).Apply(rule.ExcludeVAT(vatRate))},
		},
	}
}
