// Package watch implements the directory watch command.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mkalv/faktura/internal/aggregate"
	"github.com/mkalv/faktura/internal/config"
	"github.com/mkalv/faktura/internal/layouts"
	iwatch "github.com/mkalv/faktura/internal/watch"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var layoutName string
	var layoutFile string
	var outDir string
	var format string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory and re-aggregate when invoices arrive",
		Long: `Monitors the directory for new or modified invoices and re-runs the
aggregation after the directory settles. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

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

			layout, err := layouts.Resolve(layoutName, layoutFile, cfg.VATRate)
			if err != nil {
				return err
			}

			logf := func(format string, args ...interface{}) {
				color.New(color.FgHiBlack).Fprintf(os.Stderr, format+"\n", args...)
			}

			handler := func() error {
				res, err := aggregate.Run(aggregate.Options{
					InputDir: dir,
					Layout:   layout,
					OutDir:   outDir,
					Format:   format,
				})
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Printf("Aggregated %d row(s) to %s\n", len(res.Rows), res.OutputPath)
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			w := iwatch.New(dir, debounce, logf, handler)
			return w.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&layoutName, "layout", "", "Built-in layout name (default from config)")
	cmd.Flags().StringVar(&layoutFile, "layout-file", "", "YAML layout file (overrides --layout)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: csv | xlsx (default from config)")
	cmd.Flags().DurationVar(&debounce, "debounce", 2*time.Second, "Quiet period before re-running")

	return cmd
}
