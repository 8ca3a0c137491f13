// Package layouts implements the layout listing command.
package layouts

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mkalv/faktura/internal/layouts"
)

// NewCommand returns the layouts subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the built-in invoice layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			bold := color.New(color.Bold)
			dim := color.New(color.FgHiBlack)

			for _, l := range layouts.Builtin(layouts.DefaultVATRate) {
				bold.Println(l.Name)
				dim.Printf("  %s\n", l.Description)
				for _, c := range l.Columns {
					fmt.Printf("  %-35s %d step(s)\n", c.Name, len(c.Rule.Steps()))
				}
				fmt.Println()
			}
			return nil
		},
	}
}
