package benchmarks

import (
	"fmt"
	"testing"

	"github.com/mkalv/faktura/internal/extract"
	"github.com/mkalv/faktura/internal/grid"
	"github.com/mkalv/faktura/internal/layouts"
	"github.com/mkalv/faktura/internal/rule"
)

// syntheticSheet builds a rows×cols grid of filler text with a labelled
// amount block near the bottom, roughly the shape of a real invoice sheet.
func syntheticSheet(rows, cols int) *grid.Grid {
	cells := make([][]string, rows)
	for y := range cells {
		row := make([]string, cols)
		for x := range row {
			if (x+y)%3 == 0 {
				row[x] = fmt.Sprintf("cell %d-%d", x, y)
			}
		}
		cells[y] = row
	}
	cells[rows-4][0] = "Suma Eur"
	cells[rows-3][0] = "121"
	cells[rows-2][0] = "242"
	cells[rows-1][0] = "60.50"
	return grid.FromStrings(cells)
}

func serijaSheet() *grid.Grid {
	return grid.FromStrings([][]string{
		{"Serija AB Nr. 00123"},
		{"2024-08-01"},
		{"Pirkėjas:", "UAB Testas"},
		{"", "(pavadinimas)"},
		{"", "300123456"},
		{"", "(pirkėjo kodas)"},
		{"", "LT100001234567"},
		{"", "(PVM mokėtojo kodas)"},
		{"Suma Eur"},
		{"121"},
	})
}

func BenchmarkFindExact(b *testing.B) {
	g := syntheticSheet(200, 30)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := g.FindExact("Suma Eur"); !ok {
			b.Fatal("label not found")
		}
	}
}

func BenchmarkFindPrefix(b *testing.B) {
	g := syntheticSheet(200, 30)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := g.FindPrefix("Suma"); !ok {
			b.Fatal("prefix not found")
		}
	}
}

func BenchmarkRuleEval(b *testing.B) {
	g := syntheticSheet(200, 30)
	r := rule.FindExact("Suma Eur").
		AdvanceWhileContinuous(grid.Down).
		Apply(rule.ExcludeVAT(layouts.DefaultVATRate))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Eval(g); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtractPass(b *testing.B) {
	l, err := layouts.Get("serija", layouts.DefaultVATRate)
	if err != nil {
		b.Fatal(err)
	}
	g := serijaSheet()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		row, _ := extract.Pass(g, l.Columns, "invoice.xlsx")
		if len(row) < 2 {
			b.Fatal("extraction produced no columns")
		}
	}
}

func BenchmarkExtractPassLargeSheet(b *testing.B) {
	l, err := layouts.Get("serija", layouts.DefaultVATRate)
	if err != nil {
		b.Fatal(err)
	}
	g := syntheticSheet(500, 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		extract.Pass(g, l.Columns, "invoice.xlsx")
	}
}
