package main

import (
	"fmt"
	"strings"

	"github.com/rpgo/investment-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:")
			for _, n := range output.AvailableFormatterNames() {
				fmt.Fprintf(out, "  %s\n", n)
			}
			fmt.Fprintln(out, "  all (console + detailed-csv, files only)")
			fmt.Fprintf(out, "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
			return nil
		},
	}
}
