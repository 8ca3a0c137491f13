package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mkalv/faktura/internal/layouts"
)

// Wizard runs the interactive setup wizard.
// If reader is nil, reads from os.Stdin.
func Wizard(reader io.Reader) error {
	if reader == nil {
		reader = os.Stdin
	}
	scanner := bufio.NewScanner(reader)
	v := newViper()

	fmt.Println("Faktura Setup")
	fmt.Println()
	fmt.Println(strings.Repeat("-", 48))
	fmt.Println()

	// Step 1: layout
	fmt.Println("Step 1/3: Invoice layout")
	fmt.Println("  Which invoice form do your files follow?")
	names := layouts.Names()
	for i, name := range names {
		fmt.Printf("  [%d] %s\n", i+1, name)
	}
	fmt.Print("  Choice (default: serija): ")
	scanner.Scan()
	choice := strings.TrimSpace(scanner.Text())
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(names) {
		v.Set("layout", names[n-1])
	}
	fmt.Printf("  Using layout %q\n", v.GetString("layout"))
	fmt.Println()

	// Step 2: output
	fmt.Println("Step 2/3: Output")
	fmt.Print("  Output directory (default: out): ")
	scanner.Scan()
	if dir := strings.TrimSpace(scanner.Text()); dir != "" {
		v.Set("out_dir", dir)
	}
	fmt.Print("  Output format, csv or xlsx (default: csv): ")
	scanner.Scan()
	format := strings.ToLower(strings.TrimSpace(scanner.Text()))
	if format == "csv" || format == "xlsx" {
		v.Set("format", format)
	} else if format != "" {
		fmt.Printf("  Unknown format %q, keeping %q\n", format, v.GetString("format"))
	}
	fmt.Println()

	// Step 3: VAT
	fmt.Println("Step 3/3: VAT")
	fmt.Printf("  VAT divisor for net amounts (default: %v): ", layouts.DefaultVATRate)
	scanner.Scan()
	if raw := strings.TrimSpace(scanner.Text()); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 {
			fmt.Printf("  Invalid rate %q, keeping %s\n", raw, v.GetString("vat_rate"))
		} else {
			v.Set("vat_rate", rate)
		}
	}
	fmt.Println()

	if err := save(v); err != nil {
		return err
	}

	fmt.Println(strings.Repeat("-", 48))
	fmt.Println()
	fmt.Println("Faktura is ready!")
	fmt.Println()
	fmt.Println("Quick start:")
	fmt.Println("  faktura run ./invoices            (aggregate a directory)")
	fmt.Println("  faktura watch ./invoices          (re-run on new files)")
	fmt.Println("  faktura layouts                   (list available layouts)")
	fmt.Println()
	fmt.Printf("Config file: %s\n", Path())
	fmt.Println("Type 'faktura config show' to see all settings.")

	return nil
}

// WizardNonInteractive writes a config file with defaults only.
func WizardNonInteractive() error {
	v := viper.New()
	v.Set("layout", "serija")
	v.Set("out_dir", "out")
	v.Set("format", "csv")
	v.Set("vat_rate", layouts.DefaultVATRate)
	v.Set("output.color", true)
	return save(v)
}
