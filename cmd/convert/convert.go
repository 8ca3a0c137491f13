// Package convert implements the spreadsheet-to-CSV command.
package convert

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	iconvert "github.com/mkalv/faktura/internal/convert"
)

// NewCommand returns the convert subcommand.
func NewCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "convert <dir>",
		Short: "Convert spreadsheets in a directory to per-sheet CSV files",
		Long: `Writes one CSV per worksheet for every .xlsx and .xls file in the
directory. Multi-sheet workbooks produce file_sheet.csv names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputDir := args[0]
			if outDir == "" {
				outDir = filepath.Join(inputDir, "csv-"+filepath.Base(filepath.Clean(inputDir)))
			}

			written, err := iconvert.ExcelToCSV(inputDir, outDir)
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %d CSV file(s) to %s\n", len(written), outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: csv-<dir> inside the input directory)")

	return cmd
}
