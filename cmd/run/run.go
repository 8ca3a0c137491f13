// Package run implements the main aggregation command.
package run

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mkalv/faktura/internal/aggregate"
	"github.com/mkalv/faktura/internal/config"
	"github.com/mkalv/faktura/internal/layouts"
	"github.com/mkalv/faktura/internal/progress"
)

// NewCommand returns the run subcommand.
func NewCommand() *cobra.Command {
	var layoutName string
	var layoutFile string
	var outDir string
	var format string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Extract fields from every invoice in a directory",
		Long: `Applies the selected layout's rules to every supported document in the
directory and writes the aggregated rows to a timestamped output table.
When no directory is given, prompts for one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}
			if layoutName == "" {
				layoutName = cfg.Layout
			}
			if outDir == "" {
				outDir = cfg.OutDir
			}
			if format == "" {
				format = cfg.Format
			}

			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				dir, err = promptDir()
				if err != nil {
					return err
				}
			}

			layout, err := layouts.Resolve(layoutName, layoutFile, cfg.VATRate)
			if err != nil {
				return err
			}

			opts := aggregate.Options{
				InputDir: dir,
				Layout:   layout,
				OutDir:   outDir,
				Format:   format,
			}

			dim := color.New(color.FgHiBlack)
			if verbose {
				opts.Logf = func(format string, args ...interface{}) {
					dim.Fprintf(os.Stderr, format+"\n", args...)
				}
			}

			bar := progress.New("Extracting")
			if !jsonOutput {
				opts.Progress = bar.Step
			}

			res, err := aggregate.Run(opts)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			bar.Done(fmt.Sprintf("%d document(s) processed", res.Processed))
			color.New(color.FgGreen).Printf("Aggregated %d row(s) to %s\n", len(res.Rows), res.OutputPath)
			if res.Skipped > 0 {
				dim.Printf("%d file(s) skipped\n", res.Skipped)
			}
			for _, w := range res.Warnings {
				color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %s: column %q: %s\n", w.File, w.Column, w.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&layoutName, "layout", "", "Built-in layout name (default from config)")
	cmd.Flags().StringVar(&layoutFile, "layout-file", "", "YAML layout file (overrides --layout)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: csv | xlsx (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run result as JSON")

	return cmd
}

func promptDir() (string, error) {
	rl, err := readline.New("Invoice directory: ")
	if err != nil {
		return "", fmt.Errorf("could not start prompt: %w", err)
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return "", fmt.Errorf("no directory given — pass it as an argument")
	}
	dir := strings.TrimSpace(line)
	if dir == "" {
		return "", fmt.Errorf("no directory given — pass it as an argument or type a path")
	}
	return dir, nil
}
