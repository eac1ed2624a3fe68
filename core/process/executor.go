// Package process resolves and runs external commands.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"syscall"

	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
)

const (
	// StatusNotExecutable is reported when a command was found but couldn't
	// be started.
	StatusNotExecutable = 126
	// StatusNotFound is reported when a command couldn't be resolved.
	StatusNotFound = 127
	// StatusSignalBase is added to the signal number for commands killed by a
	// signal.
	StatusSignalBase = 128
)

// ErrSpawn is returned when the shell couldn't create a new process at all,
// as opposed to the program failing to start in it.
var ErrSpawn = errors.New("couldn't create process")

// Result describes how a command ended.
type Result struct {
	// Path is the resolved executable.
	Path string
	// Pid of the child, 0 if it never started.
	Pid int
	// Status is the exit code, or StatusSignalBase+signal if Signaled.
	Status int
	// Signaled is true if the child was killed by a signal.
	Signaled bool
	// Job is set for background commands.
	Job *Job
}

// Executor runs external commands on behalf of the shell.
type Executor struct {
	// Env supplies PATH and the environment snapshot of children.
	Env vos.VEnv
	// Fs is used to resolve commands.
	Fs afero.Fs
	// IO holds the streams children inherit.
	IO vos.VIO
	// Jobs tracks background children.
	Jobs *Jobs
	// Log receives diagnostics about child processes.
	Log *log.Logger
}

// NewExecutor creates an executor resolving commands on the host filesystem.
// Writers in stdio that aren't files are locked because background children
// keep writing to them after Run returns.
func NewExecutor(env vos.VEnv, stdio vos.VIO, logger *log.Logger) *Executor {
	return &Executor{
		Env:  env,
		Fs:   afero.NewOsFs(),
		IO:   vos.NewSyncIO(stdio),
		Jobs: NewJobs(),
		Log:  logger,
	}
}

// Resolve finds the executable for name.
func (e *Executor) Resolve(name string) (string, error) {
	return vos.LookPath(e.Fs, e.Env, name)
}

// Run resolves argv[0] and runs it with the rest of argv as arguments. Unless
// background is set it waits for the child to finish.
//
// Errors are reported on the executor's stderr before being returned so the
// caller only needs to inspect them. vos.ErrNotFound and vos.ErrNotExecutable
// come with StatusNotFound and StatusNotExecutable, ErrSpawn means no child
// was created.
func (e *Executor) Run(ctx context.Context, argv shell.Argv, background bool) (Result, error) {
	name := argv.Name()
	path, err := e.Resolve(name)
	switch {
	case errors.Is(err, vos.ErrNotFound):
		fmt.Fprintf(e.IO.Stderr(), "%s: command not found\n", name)
		return Result{Status: StatusNotFound}, err
	case errors.Is(err, vos.ErrNotExecutable):
		fmt.Fprintf(e.IO.Stderr(), "%s: permission denied\n", name)
		return Result{Status: StatusNotExecutable}, err
	case err != nil:
		fmt.Fprintf(e.IO.Stderr(), "%s: %v\n", name, err)
		return Result{Status: StatusNotExecutable}, err
	}

	if background {
		// Background children aren't tied to the shell's context.
		ctx = context.Background()
	}
	cmd := e.command(ctx, path, argv, background)

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(e.IO.Stderr(), "%s: %v\n", name, err)
		if isSpawnFailure(err) {
			return Result{Path: path, Status: StatusNotExecutable}, fmt.Errorf("%w: %v", ErrSpawn, err)
		}
		return Result{Path: path, Status: StatusNotExecutable}, err
	}

	result := Result{Path: path, Pid: cmd.Process.Pid}
	if background {
		started := result
		result.Job = e.Jobs.start(result.Pid, argv, func() Result {
			return e.wait(cmd, started)
		})
		return result, nil
	}

	return e.wait(cmd, result), nil
}

func (e *Executor) command(ctx context.Context, path string, argv shell.Argv, background bool) *exec.Cmd {
	// path always contains a separator here so exec doesn't search for it again.
	cmd := exec.CommandContext(ctx, path)
	cmd.Args = append([]string{}, argv...)
	cmd.Env = e.Env.Environ()
	cmd.Stdin = e.IO.Stdin()
	cmd.Stdout = e.IO.Stdout()
	cmd.Stderr = e.IO.Stderr()
	cmd.SysProcAttr = sysProcAttr(background)
	return cmd
}

func (e *Executor) wait(cmd *exec.Cmd, result Result) Result {
	err := cmd.Wait()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// The child ran but copying its I/O failed.
		e.logger().Printf("%s: wait: %v", cmd.Args[0], err)
	}

	if cmd.ProcessState != nil {
		result.Status, result.Signaled = exitStatus(cmd.ProcessState)
	}
	return result
}

func (e *Executor) logger() *log.Logger {
	if e.Log == nil {
		return Discard
	}
	return e.Log
}

func isSpawnFailure(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.ENOMEM)
}

// Discard is a logger that drops everything.
var Discard = log.New(io.Discard, "", 0)
