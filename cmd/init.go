package cmd

import (
	"log"

	"github.com/josephlewis42/minish/core/config"
	"github.com/spf13/cobra"
)

// initCmd intializes the shell configuration
var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Initialize the shell configuration in DIR or the current directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		_, err := config.Initialize(dir, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
