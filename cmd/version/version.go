// Package version provides the version command for the faktura CLI.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkalv/faktura/internal/update"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewCommand returns the version subcommand.
func NewCommand() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the faktura version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("faktura %s\n", Version)
			if !check {
				return nil
			}

			release, err := update.CheckLatest(Version)
			if err != nil {
				return err
			}
			if release == nil {
				fmt.Println("You are up to date.")
				return nil
			}
			fmt.Println()
			fmt.Print(update.FormatUpdateNotice(Version, release))
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	return cmd
}
