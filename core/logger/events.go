package logger

// LogEntry is a single line of the event log. Exactly one of the event
// fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart   *SessionStart   `json:"session_start,omitempty"`
	SessionEnd     *SessionEnd     `json:"session_end,omitempty"`
	Builtin        *Builtin        `json:"builtin,omitempty"`
	RunCommand     *RunCommand     `json:"run_command,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
	JobDone        *JobDone        `json:"job_done,omitempty"`
}

// GetLogType returns the event held by the entry, or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.Builtin != nil:
		return le.Builtin
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.JobDone != nil:
		return le.JobDone
	default:
		return nil
	}
}

// LogType is implemented by every event.
type LogType interface {
	setOn(le *LogEntry)
}

// SessionStart is logged when the shell starts reading commands.
type SessionStart struct {
	Pid         int  `json:"pid"`
	Interactive bool `json:"interactive"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// SessionEnd is logged when the shell terminates.
type SessionEnd struct {
	Status int `json:"status"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// Builtin is logged for every builtin invocation.
type Builtin struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }

// RunCommand is logged once an external command was started, foreground
// commands are logged after they finish.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	Pid                 int      `json:"pid"`
	Status              int      `json:"status"`
	Signaled            bool     `json:"signaled,omitempty"`
	Background          bool     `json:"background,omitempty"`
	JobID               int      `json:"job_id,omitempty"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is logged when a command couldn't be resolved or started.
type UnknownCommand struct {
	Command      []string `json:"command"`
	Status       int      `json:"status"`
	ErrorMessage string   `json:"error_message"`
}

func (e *UnknownCommand) setOn(le *LogEntry) { le.UnknownCommand = e }

// JobDone is logged when a background command is reaped.
type JobDone struct {
	JobID    int      `json:"job_id"`
	Pid      int      `json:"pid"`
	Command  []string `json:"command"`
	Status   int      `json:"status"`
	Signaled bool     `json:"signaled,omitempty"`
}

func (e *JobDone) setOn(le *LogEntry) { le.JobDone = e }
