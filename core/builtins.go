package core

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/pborman/getopt/v2"
)

// BuiltinKind identifies a command executed inside the shell process.
type BuiltinKind int

const (
	BuiltinExit BuiltinKind = iota
	BuiltinEnv
	BuiltinSetenv
	BuiltinUnsetenv
	BuiltinCd
	BuiltinAlias
	BuiltinUnalias
	BuiltinHelp
	BuiltinHistory

	numBuiltins
)

type builtinInfo struct {
	name  string
	usage string
	short string
}

var builtinTable = [numBuiltins]builtinInfo{
	BuiltinExit:     {"exit", "exit [n]", "Exit the shell with status n, or 0."},
	BuiltinEnv:      {"env", "env", "Print the environment."},
	BuiltinSetenv:   {"setenv", "setenv VARIABLE VALUE", "Set an environment variable."},
	BuiltinUnsetenv: {"unsetenv", "unsetenv VARIABLE", "Remove an environment variable."},
	BuiltinCd:       {"cd", "cd [dir | -]", "Change the working directory."},
	BuiltinAlias:    {"alias", "alias [name[=value] ...]", "Define or display aliases."},
	BuiltinUnalias:  {"unalias", "unalias name [name ...]", "Remove aliases."},
	BuiltinHelp:     {"help", "help [-h] [name]", "Display information about builtin commands."},
	BuiltinHistory:  {"history", "history [-ch]", "Display or clear the command history."},
}

// String returns the command name of the builtin.
func (k BuiltinKind) String() string {
	if k < 0 || k >= numBuiltins {
		return fmt.Sprintf("BuiltinKind(%d)", int(k))
	}
	return builtinTable[k].name
}

// Usage returns a one line synopsis of the builtin.
func (k BuiltinKind) Usage() string {
	return builtinTable[k].usage
}

// Short returns a description of the builtin.
func (k BuiltinKind) Short() string {
	return builtinTable[k].short
}

// Builtins lists every builtin in help order.
func Builtins() []BuiltinKind {
	out := make([]BuiltinKind, numBuiltins)
	for i := range out {
		out[i] = BuiltinKind(i)
	}
	return out
}

// LookupBuiltin resolves a command name to a builtin.
func LookupBuiltin(name string) (BuiltinKind, bool) {
	for i, info := range builtinTable {
		if info.name == name {
			return BuiltinKind(i), true
		}
	}
	return 0, false
}

func (s *Shell) runBuiltin(kind BuiltinKind, argv shell.Argv) Outcome {
	switch kind {
	case BuiltinExit:
		return s.builtinExit(argv)
	case BuiltinEnv:
		return s.builtinEnv(argv)
	case BuiltinSetenv:
		return s.builtinSetenv(argv)
	case BuiltinUnsetenv:
		return s.builtinUnsetenv(argv)
	case BuiltinCd:
		return s.builtinCd(argv)
	case BuiltinAlias:
		return s.builtinAlias(argv)
	case BuiltinUnalias:
		return s.builtinUnalias(argv)
	case BuiltinHelp:
		return s.builtinHelp(argv)
	case BuiltinHistory:
		return s.builtinHistory(argv)
	default:
		panic(fmt.Sprintf("unhandled builtin %v", kind))
	}
}

func (s *Shell) usage(kind BuiltinKind) Outcome {
	fmt.Fprintf(s.IO.Stderr(), "Usage: %s\n", kind.Usage())
	return Continue(StatusUsage)
}

func (s *Shell) builtinExit(argv shell.Argv) Outcome {
	args := argv.Args()
	if len(args) == 0 {
		return Exit(0)
	}

	code, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(s.IO.Stderr(), "exit: %s: numeric argument required\n", args[0])
		return Exit(StatusBadExit)
	}
	return Exit(int(code & 0xff))
}

func (s *Shell) builtinEnv(argv shell.Argv) Outcome {
	if len(argv.Args()) != 0 {
		return s.usage(BuiltinEnv)
	}

	w := s.IO.Stdout()
	for _, envDef := range s.Env.Environ() {
		fmt.Fprintln(w, envDef)
	}
	return Continue(0)
}

func (s *Shell) builtinSetenv(argv shell.Argv) Outcome {
	args := argv.Args()
	if len(args) != 2 {
		return s.usage(BuiltinSetenv)
	}

	if err := s.Env.Setenv(args[0], args[1]); err != nil {
		fmt.Fprintf(s.IO.Stderr(), "setenv: %s: %v\n", args[0], err)
		return Continue(StatusFailure)
	}
	return Continue(0)
}

func (s *Shell) builtinUnsetenv(argv shell.Argv) Outcome {
	args := argv.Args()
	if len(args) != 1 {
		return s.usage(BuiltinUnsetenv)
	}

	if err := s.Env.Unsetenv(args[0]); err != nil {
		fmt.Fprintf(s.IO.Stderr(), "unsetenv: %s: %v\n", args[0], err)
		return Continue(StatusFailure)
	}
	return Continue(0)
}

func (s *Shell) builtinCd(argv shell.Argv) Outcome {
	args := argv.Args()
	stderr := s.IO.Stderr()

	var dir string
	printDir := false
	switch len(args) {
	case 0:
		dir = s.Env.Getenv(vos.EnvHome)
		if dir == "" {
			fmt.Fprintln(stderr, "cd: HOME not set")
			return Continue(StatusFailure)
		}
	case 1:
		dir = args[0]
		if dir == "-" {
			dir = s.Env.Getenv(vos.EnvOldPWD)
			if dir == "" {
				fmt.Fprintln(stderr, "cd: OLDPWD not set")
				return Continue(StatusFailure)
			}
			printDir = true
		}
	default:
		fmt.Fprintln(stderr, "cd: too many arguments")
		return Continue(StatusFailure)
	}

	prev := s.Env.Getenv(vos.EnvPWD)
	if prev == "" {
		prev, _ = s.OS.Getwd()
	}

	if err := s.OS.Chdir(dir); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		fmt.Fprintf(stderr, "cd: %s: %v\n", dir, err)
		return Continue(StatusFailure)
	}

	wd, err := s.OS.Getwd()
	if err != nil {
		wd = dir
	}
	if prev != "" {
		_ = s.Env.Setenv(vos.EnvOldPWD, prev)
	}
	_ = s.Env.Setenv(vos.EnvPWD, wd)

	if printDir {
		fmt.Fprintln(s.IO.Stdout(), wd)
	}
	return Continue(0)
}

func (s *Shell) builtinAlias(argv shell.Argv) Outcome {
	args := argv.Args()
	w := s.IO.Stdout()

	if len(args) == 0 {
		for _, alias := range s.Aliases.List() {
			fmt.Fprintln(w, alias)
		}
		return Continue(0)
	}

	status := 0
	for _, arg := range args {
		if def, ok := vos.ParseAlias(arg); ok {
			if err := s.Aliases.Set(def.Name, def.Value); err != nil {
				fmt.Fprintf(s.IO.Stderr(), "alias: %s: invalid alias name\n", def.Name)
				status = StatusFailure
			}
			continue
		}

		value, ok := s.Aliases.Get(arg)
		if !ok {
			fmt.Fprintf(s.IO.Stderr(), "alias: %s: not found\n", arg)
			status = StatusFailure
			continue
		}
		fmt.Fprintln(w, vos.Alias{Name: arg, Value: value})
	}
	return Continue(status)
}

func (s *Shell) builtinUnalias(argv shell.Argv) Outcome {
	args := argv.Args()
	if len(args) == 0 {
		return s.usage(BuiltinUnalias)
	}

	status := 0
	for _, name := range args {
		if !s.Aliases.Delete(name) {
			fmt.Fprintf(s.IO.Stderr(), "unalias: %s: not found\n", name)
			status = StatusFailure
		}
	}
	return Continue(status)
}

func (s *Shell) builtinHelp(argv shell.Argv) Outcome {
	opts := getopt.New()
	opts.SetProgram(BuiltinHelp.String())
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(argv, nil); err != nil || *helpOpt {
		w := s.IO.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintf(w, "Usage: %s\n", BuiltinHelp.Usage())
		fmt.Fprintln(w, BuiltinHelp.Short())
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		return Continue(StatusUsage)
	}

	w := s.IO.Stdout()
	if topics := opts.Args(); len(topics) > 0 {
		status := 0
		for _, topic := range topics {
			kind, ok := LookupBuiltin(topic)
			if !ok {
				fmt.Fprintf(s.IO.Stderr(), "help: no help topics match `%s'.\n", topic)
				status = StatusFailure
				continue
			}
			fmt.Fprintf(w, "%s: %s\n    %s\n", kind, kind.Usage(), kind.Short())
		}
		return Continue(status)
	}

	fmt.Fprintln(w, "minish, a minimal shell.")
	fmt.Fprintln(w, "These shell commands are defined internally.  Type `help' to see this list.")
	fmt.Fprintln(w, "Type `help name' to find out more about the function `name'.")
	fmt.Fprintln(w)
	for _, kind := range Builtins() {
		fmt.Fprintf(w, " %s\n", kind.Usage())
	}
	return Continue(0)
}

func (s *Shell) builtinHistory(argv shell.Argv) Outcome {
	opts := getopt.New()
	opts.SetProgram(BuiltinHistory.String())
	clearOpt := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(argv, nil); err != nil || *helpOpt {
		w := s.IO.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "Display or manipulate the history list.")
		fmt.Fprintln(w, "Display the history list with line numbers.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		return Continue(StatusUsage)
	}

	if *clearOpt {
		s.history = nil
		s.reader.ResetHistory()
		return Continue(0)
	}

	for i, line := range s.history {
		fmt.Fprintf(s.IO.Stdout(), "% 5d  %s\n", i+1, line)
	}
	return Continue(0)
}
