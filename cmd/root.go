package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/minish/core"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgPath string
	command string
	verbose bool

	exitCode int
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

func appLogger(cmd *cobra.Command) *log.Logger {
	if verbose {
		return log.New(cmd.ErrOrStderr(), "[minish] ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish",
	Short: "A minimal interactive shell",
	Long: `minish reads command lines from standard input and runs builtins or
programs found on the PATH. A prompt is shown when standard input is a
terminal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}
		appLog := appLogger(cmd)

		events := logger.NewNopLogger()
		if configuration.EventLogEnabled() {
			fd, err := configuration.OpenEventLog()
			if err != nil {
				return err
			}
			defer fd.Close()
			events = logger.NewJsonLinesLogRecorder(fd)
		}

		runCommand := cmd.Flags().Changed("command")
		sh, err := core.NewShell(core.Options{
			Config:      configuration,
			IO:          vos.NewOSIO(),
			Interactive: !runCommand && term.IsTerminal(int(os.Stdin.Fd())),
			Events:      events,
			Log:         appLog,
		})
		if err != nil {
			return err
		}
		defer sh.Close()
		appLog.Printf("session %s started, interactive: %t", sh.SessionID(), sh.Interactive())

		if runCommand {
			exitCode = sh.RunCommand(cmd.Context(), command)
		} else {
			exitCode = sh.RunContext(cmd.Context())
		}
		appLog.Printf("session %s ended with status %d", sh.SessionID(), exitCode)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// The returned value is the shell's exit status.
func Execute() int {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory, the built-in defaults are used if empty")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "run a single command line and exit with its status")
}
