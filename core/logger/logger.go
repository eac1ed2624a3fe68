package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures the commands executed by shell sessions.
type Logger struct {
	Record LogRecorder
	// Now is the time source for entries, defaults to time.Now.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops all events.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{}
	le.TimestampMicros = l.now().UnixMicro()
	le.SessionID = sessionID
	event.setOn(le)

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID gets the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}
