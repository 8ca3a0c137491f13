// Package cmd contains all CLI commands for the faktura binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mkalv/faktura/cmd/completion"
	cmdconfig "github.com/mkalv/faktura/cmd/config"
	cmdconvert "github.com/mkalv/faktura/cmd/convert"
	"github.com/mkalv/faktura/cmd/doctor"
	cmdlayouts "github.com/mkalv/faktura/cmd/layouts"
	"github.com/mkalv/faktura/cmd/run"
	"github.com/mkalv/faktura/cmd/version"
	cmdwatch "github.com/mkalv/faktura/cmd/watch"
	"github.com/mkalv/faktura/internal/update"
)

var (
	verbose bool
	noColor bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "faktura",
		Short: "Extract and aggregate invoice fields from spreadsheets",
		Long: `Faktura — invoice field extraction for the terminal.

Scans a directory of invoices (.xlsx, .xls, .csv), applies a layout's
extraction rules to every sheet, and aggregates one row per document
into a single table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable diagnostic logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	rootCmd.AddCommand(run.NewCommand())
	rootCmd.AddCommand(cmdconvert.NewCommand())
	rootCmd.AddCommand(cmdlayouts.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(doctor.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	update.CheckInBackground(version.Version)

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
