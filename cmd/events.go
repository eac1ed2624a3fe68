package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the shell event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report [EVENTS.jsonl]",
	Short: "Show a report of events.",
	Long: `Summarize the event log. The log configured with --config is read
unless a file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var fd io.ReadCloser
		if len(args) > 0 {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			fd = file
		} else {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			file, err := config.ReadEventLog()
			if err != nil {
				return err
			}
			fd = file
		}
		defer fd.Close()

		var report logger.Report
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
}
