package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/process"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/tevino/abool/v2"
)

// Options configure a new Shell. Only Config and IO are required.
type Options struct {
	Config *config.Configuration
	IO     vos.VIO

	// Env is the initial environment, defaults to the process environment.
	Env vos.VEnv
	// OS defaults to the host.
	OS vos.VOS
	// Reader overrides the line source, by default a terminal editor is used
	// for interactive sessions and plain line reads otherwise.
	Reader LineReader
	// Interactive sessions show a prompt, report finished jobs and survive
	// interrupts.
	Interactive bool
	// Events receives command events, nil drops them.
	Events *logger.Logger
	// Log receives diagnostics, nil drops them.
	Log *log.Logger
}

// Shell reads lines and runs the commands on them.
type Shell struct {
	Env      vos.VEnv
	Aliases  *vos.Aliases
	OS       vos.VOS
	IO       vos.VIO
	Executor *process.Executor
	Config   *config.Configuration

	reader      LineReader
	interactive bool
	events      *logger.SessionLogger
	log         *log.Logger
	ctx         context.Context

	history     []string
	interrupted *abool.AtomicBool

	status       int
	lastNotFound bool
}

// NewShell creates a shell from opts.
func NewShell(opts Options) (*Shell, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	env := opts.Env
	if env == nil {
		env = vos.NewOrderedEnvFromList(os.Environ())
	}

	virtOS := opts.OS
	if virtOS == nil {
		virtOS = vos.HostOS{}
	}

	appLog := opts.Log
	if appLog == nil {
		appLog = process.Discard
	}

	events := opts.Events
	if events == nil {
		events = logger.NewNopLogger()
	}

	// Shared with the executor so the shell's writes and those of background
	// children take the same lock.
	stdio := vos.NewSyncIO(opts.IO)

	reader := opts.Reader
	if reader == nil {
		var err error
		if opts.Interactive {
			reader, err = NewTerminalReader(cfg, stdio)
		} else {
			reader = NewLineReader(stdio.Stdin(), nil)
		}
		if err != nil {
			return nil, err
		}
	}

	aliases := vos.NewAliases()
	for _, alias := range cfg.Aliases {
		if err := aliases.Set(alias.Name, alias.Value); err != nil {
			return nil, fmt.Errorf("alias %q: %w", alias.Name, err)
		}
	}

	s := &Shell{
		Env:      env,
		Aliases:  aliases,
		OS:       virtOS,
		IO:       stdio,
		Executor: process.NewExecutor(env, stdio, appLog),
		Config:   cfg,

		reader:      reader,
		interactive: opts.Interactive,
		events:      events.NewSession(),
		log:         appLog,
		ctx:         context.Background(),
		interrupted: abool.New(),
	}
	s.init()

	return s, nil
}

// init fills in the variables a login would normally provide.
func (s *Shell) init() {
	if wd, err := s.OS.Getwd(); err == nil {
		_ = s.Env.SetenvOverwrite(vos.EnvPWD, wd, false)
	}
}

// Status returns the status of the last command.
func (s *Shell) Status() int {
	return s.status
}

// Interactive is true if the session prompts for input.
func (s *Shell) Interactive() bool {
	return s.interactive
}

// SessionID identifies the session in the event log.
func (s *Shell) SessionID() string {
	return s.events.SessionID()
}

// Close releases the line reader.
func (s *Shell) Close() error {
	return s.reader.Close()
}

// Run reads and runs commands until input ends or the shell exits, it
// returns the status the shell should exit with.
func (s *Shell) Run() int {
	return s.RunContext(context.Background())
}

// RunContext is Run, foreground commands are killed if ctx is canceled.
func (s *Shell) RunContext(ctx context.Context) int {
	s.ctx = ctx
	s.record(&logger.SessionStart{Pid: os.Getpid(), Interactive: s.interactive})

	if s.interactive {
		stop := s.notifyInterrupts()
		defer stop()
	}

	status := s.loop()
	s.record(&logger.SessionEnd{Status: status})
	return status
}

// RunCommand runs a single line like a script of one command and returns
// its status.
func (s *Shell) RunCommand(ctx context.Context, line string) int {
	s.ctx = ctx
	s.record(&logger.SessionStart{Pid: os.Getpid(), Interactive: false})
	outcome := s.RunLine(line)
	s.record(&logger.SessionEnd{Status: outcome.Status})
	return outcome.Status
}

func (s *Shell) loop() int {
	for {
		s.reapJobs()
		if s.takeInterrupt() {
			fmt.Fprintln(s.IO.Stdout())
		}

		line, err := s.reader.ReadLine(s.prompt())
		switch {
		case errors.Is(err, io.EOF):
			if s.lastNotFound {
				return process.StatusNotFound
			}
			return 0

		case errors.Is(err, ErrInterrupted):
			continue

		case err != nil:
			fmt.Fprintf(s.IO.Stderr(), "minish: %v\n", err)
			return StatusFailure
		}

		if outcome := s.RunLine(line); outcome.Terminates() {
			if outcome.Err != nil {
				s.log.Printf("terminating: %v", outcome.Err)
			}
			return outcome.Status
		}
	}
}

// RunLine tokenizes and runs a single line. Blank lines and comments leave
// the shell's state untouched.
func (s *Shell) RunLine(line string) Outcome {
	argv, background := shell.SplitBackground(shell.Tokenize(line))
	if argv.Empty() {
		return Continue(s.status)
	}
	s.addHistory(line)

	argv = s.expandAlias(argv)
	if argv.Empty() {
		return Continue(s.status)
	}

	var outcome Outcome
	if kind, ok := LookupBuiltin(argv.Name()); ok {
		outcome = s.runBuiltin(kind, argv)
		s.lastNotFound = false
		s.record(&logger.Builtin{Command: argv, Status: outcome.Status})
	} else {
		outcome = s.execute(argv, background)
	}

	s.status = outcome.Status
	return outcome
}

// expandAlias replaces the command name with its alias. Expansion is a
// single level so recursive aliases can't loop.
func (s *Shell) expandAlias(argv shell.Argv) shell.Argv {
	value, ok := s.Aliases.Get(argv.Name())
	if !ok {
		return argv
	}

	expanded := shell.Tokenize(value)
	return append(expanded, argv.Args()...)
}

func (s *Shell) execute(argv shell.Argv, background bool) Outcome {
	result, err := s.Executor.Run(s.ctx, argv, background)
	if !background {
		s.lastNotFound = errors.Is(err, vos.ErrNotFound)
	}

	if err != nil {
		s.record(&logger.UnknownCommand{
			Command:      argv,
			Status:       result.Status,
			ErrorMessage: err.Error(),
		})
		if errors.Is(err, process.ErrSpawn) && !background {
			return Fail(err)
		}
		return Continue(result.Status)
	}

	event := &logger.RunCommand{
		Command:             argv,
		ResolvedCommandPath: result.Path,
		Pid:                 result.Pid,
		Status:              result.Status,
		Signaled:            result.Signaled,
	}
	if job := result.Job; job != nil {
		event.Background = true
		event.JobID = job.ID
		if s.interactive {
			fmt.Fprintf(s.IO.Stderr(), "[%d] %d\n", job.ID, job.Pid)
		}
	}
	s.record(event)

	return Continue(result.Status)
}

// reapJobs collects finished background commands.
func (s *Shell) reapJobs() {
	for _, job := range s.Executor.Jobs.Reap() {
		s.record(&logger.JobDone{
			JobID:    job.ID,
			Pid:      job.Pid,
			Command:  job.Argv,
			Status:   job.Result.Status,
			Signaled: job.Result.Signaled,
		})

		if s.interactive && s.Config.ReportJobs {
			fmt.Fprintf(s.IO.Stdout(), "[%d]+ %s  %s\n", job.ID, jobState(job.Result), job.Argv)
		}
	}
}

func jobState(result process.Result) string {
	switch {
	case result.Signaled:
		return fmt.Sprintf("Signal %d", result.Status-process.StatusSignalBase)
	case result.Status != 0:
		return fmt.Sprintf("Exit %d", result.Status)
	default:
		return "Done"
	}
}

func (s *Shell) addHistory(line string) {
	limit := s.Config.HistoryLimit
	if limit <= 0 {
		return
	}

	s.history = append(s.history, strings.TrimRight(line, "\r\n"))
	if extra := len(s.history) - limit; extra > 0 {
		s.history = s.history[extra:]
	}
}

// History returns the lines entered this session, oldest first.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

func (s *Shell) record(event logger.LogType) {
	if err := s.events.Record(event); err != nil {
		s.log.Printf("couldn't record event: %v", err)
	}
}

func (s *Shell) prompt() string {
	if !s.interactive {
		return ""
	}
	return s.Prompt()
}

// Prompt renders the configured prompt. The escapes \u, \h, \w and \$ are
// replaced with the user, short hostname, working directory and a # for root
// or $ for everyone else.
func (s *Shell) Prompt() string {
	prompt := s.Config.Prompt
	prompt = strings.ReplaceAll(prompt, `\u`, s.Env.Getenv(vos.EnvUser))

	host, _ := s.OS.Hostname()
	host, _, _ = strings.Cut(host, ".")
	prompt = strings.ReplaceAll(prompt, `\h`, host)

	pwd, _ := s.OS.Getwd()
	if home := strings.TrimSuffix(s.Env.Getenv(vos.EnvHome), "/"); home != "" {
		if pwd == home || strings.HasPrefix(pwd, home+"/") {
			pwd = "~" + strings.TrimPrefix(pwd, home)
		}
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if s.OS.Getuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return s.promptColor().Sprint(prompt)
}

func (s *Shell) promptColor() *color.Color {
	c := color.New(color.FgGreen, color.Bold)
	switch s.Config.Color {
	case config.ColorAlways:
		c.EnableColor()
	case config.ColorNever:
		c.DisableColor()
	}
	return c
}
