package core

// OutcomeKind discriminates what the shell loop does after a command.
type OutcomeKind int

const (
	// OutcomeContinue keeps reading commands.
	OutcomeContinue OutcomeKind = iota
	// OutcomeExit terminates the shell with the outcome's status.
	OutcomeExit
	// OutcomeError terminates the shell because it can't keep running
	// commands, e.g. it couldn't create a process.
	OutcomeError
)

const (
	// StatusFailure is the generic failure status.
	StatusFailure = 1
	// StatusUsage is reported when a builtin is invoked incorrectly.
	StatusUsage = 2
	// StatusBadExit is used when exit is given an argument that isn't a
	// non-negative integer.
	StatusBadExit = 255
)

// Outcome is the result of running a single line.
type Outcome struct {
	Kind   OutcomeKind
	Status int
	// Err is set for OutcomeError.
	Err error
}

// Continue creates an outcome that keeps the shell running.
func Continue(status int) Outcome {
	return Outcome{Kind: OutcomeContinue, Status: status}
}

// Exit creates an outcome that terminates the shell with status.
func Exit(status int) Outcome {
	return Outcome{Kind: OutcomeExit, Status: status}
}

// Fail creates an outcome that terminates the shell because of err.
func Fail(err error) Outcome {
	return Outcome{Kind: OutcomeError, Status: StatusFailure, Err: err}
}

// Terminates is true if the shell should stop after this outcome.
func (o Outcome) Terminates() bool {
	return o.Kind != OutcomeContinue
}
