package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/minish/core"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the commands run inside the shell process
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 8, 8, 2, ' ', 0)
		defer tw.Flush()

		for _, kind := range core.Builtins() {
			fmt.Fprintf(tw, "%s\t%s\n", kind.Usage(), kind.Short())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
