package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries int        `json:"invalid_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	Builtin        BuiltinReport        `json:"builtin_report"`
	Jobs           JobReport            `json:"job_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Sessions.Increment(le.SessionID)
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *Builtin:
		r.Builtin.update(event)
	case *JobDone:
		r.Jobs.update(event)
	case *SessionEnd:
		// Ignore
	default:
		r.InvalidEntries++
	}
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Exit statuses per command
	Statuses *PathCounter `json:"statuses"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if r.Statuses == nil {
		r.Statuses = NewPathCounter("command", "status")
	}
	r.ResolvedCommandPaths.Increment(rc.ResolvedCommandPath)
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
		if !rc.Background {
			r.Statuses.Increment(rc.Command[0], strconv.Itoa(rc.Status))
		}
	}
}

type UnknownCommandReport struct {
	CommandNames    StrCounter `json:"command_names"`
	CommandStatuses StrCounter `json:"command_statuses"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}

	r.CommandStatuses.Increment(strconv.Itoa(logEntry.Status))
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_counts"`
}

func (r *BuiltinReport) update(logEntry *Builtin) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type JobReport struct {
	Count    int `json:"count"`
	Signaled int `json:"signaled"`
}

func (r *JobReport) update(logEntry *JobDone) {
	r.Count++
	if logEntry.Signaled {
		r.Signaled++
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// Len returns the number of distinct keys.
func (s *StrCounter) Len() int {
	return len(s.internal)
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of times each combination of column values
// was seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic(fmt.Sprintf("wrong number of columns to add: got %d want %d", len(toAdd), len(ctr.cols)))
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the combination of values.
func (ctr *PathCounter) Get(vals ...string) int {
	if ctr == nil {
		return 0
	}
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
