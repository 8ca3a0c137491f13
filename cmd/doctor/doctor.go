// Package doctor provides the "faktura doctor" command for checking setup health.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mkalv/faktura/internal/config"
	"github.com/mkalv/faktura/internal/layouts"
)

// Check represents a single health check result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// NewCommand creates the "doctor" command.
func NewCommand() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check setup health",
		Long:  "Run diagnostic checks to verify faktura is properly configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runChecks()

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(checks)
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			fmt.Println("Faktura Doctor")
			fmt.Println("==============")
			fmt.Println()

			okCount, warnCount, errCount := 0, 0, 0
			for _, c := range checks {
				var icon string
				switch c.Status {
				case "ok":
					icon = green("✓")
					okCount++
				case "warning":
					icon = yellow("!")
					warnCount++
				case "error":
					icon = red("✗")
					errCount++
				}
				fmt.Printf("  %s %s: %s\n", icon, c.Name, c.Message)
			}

			fmt.Println()
			fmt.Printf("  %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

			if errCount > 0 {
				return fmt.Errorf("%d check(s) failed", errCount)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output checks as JSON")
	return cmd
}

func runChecks() []Check {
	var checks []Check

	checks = append(checks, Check{
		Name:    "Go Runtime",
		Status:  "ok",
		Message: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	})

	configFile := config.Path()
	if _, err := os.Stat(configFile); err == nil {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "ok",
			Message: configFile,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "warning",
			Message: "Not found — run 'faktura config init' (defaults apply)",
		})
	}

	cfg, err := config.Load()
	if err != nil {
		checks = append(checks, Check{
			Name:    "Configuration",
			Status:  "error",
			Message: err.Error(),
		})
		return checks
	}

	if _, err := layouts.Get(cfg.Layout, cfg.VATRate); err == nil {
		checks = append(checks, Check{
			Name:    "Default Layout",
			Status:  "ok",
			Message: cfg.Layout,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Default Layout",
			Status:  "error",
			Message: fmt.Sprintf("%v — run 'faktura layouts' to list available layouts", err),
		})
	}

	switch {
	case cfg.VATRate <= 0:
		checks = append(checks, Check{
			Name:    "VAT Rate",
			Status:  "error",
			Message: fmt.Sprintf("%v is not a usable divisor", cfg.VATRate),
		})
	case cfg.VATRate < 1:
		checks = append(checks, Check{
			Name:    "VAT Rate",
			Status:  "warning",
			Message: fmt.Sprintf("%v is below 1, net amounts would exceed gross amounts", cfg.VATRate),
		})
	default:
		checks = append(checks, Check{
			Name:    "VAT Rate",
			Status:  "ok",
			Message: fmt.Sprintf("%v", cfg.VATRate),
		})
	}

	if cfg.Format == "csv" || cfg.Format == "xlsx" {
		checks = append(checks, Check{
			Name:    "Output Format",
			Status:  "ok",
			Message: cfg.Format,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Output Format",
			Status:  "error",
			Message: fmt.Sprintf("%q is not supported (want csv or xlsx)", cfg.Format),
		})
	}

	if info, err := os.Stat(cfg.OutDir); err == nil && info.IsDir() {
		checks = append(checks, Check{
			Name:    "Output Directory",
			Status:  "ok",
			Message: cfg.OutDir,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Output Directory",
			Status:  "warning",
			Message: fmt.Sprintf("%s does not exist yet — created on first run", cfg.OutDir),
		})
	}

	return checks
}
