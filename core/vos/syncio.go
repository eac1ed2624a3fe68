package vos

import (
	"io"
	"os"
	"sync"
)

// SyncIO serializes writes to the output streams of a VIO. The shell and the
// copy goroutines os/exec starts for children write their output
// concurrently when a stream isn't an *os.File.
type SyncIO struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

var _ VIO = (*SyncIO)(nil)

// NewSyncIO wraps the writers of stdio that aren't files with a single lock
// shared by stdout and stderr, so both may be the same buffer. Files are
// passed through so children inherit them directly.
func NewSyncIO(stdio VIO) *SyncIO {
	if s, ok := stdio.(*SyncIO); ok {
		return s
	}

	mu := &sync.Mutex{}
	return &SyncIO{
		stdin:  stdio.Stdin(),
		stdout: lockWriter(mu, stdio.Stdout()),
		stderr: lockWriter(mu, stdio.Stderr()),
	}
}

func (s *SyncIO) Stdin() io.Reader {
	return s.stdin
}

func (s *SyncIO) Stdout() io.Writer {
	return s.stdout
}

func (s *SyncIO) Stderr() io.Writer {
	return s.stderr
}

func lockWriter(mu *sync.Mutex, w io.Writer) io.Writer {
	switch w.(type) {
	case nil:
		return io.Discard
	case *os.File:
		return w
	}
	if w == io.Discard {
		return w
	}
	return &lockedWriter{mu: mu, w: w}
}

// lockedWriter has no ReadFrom method, io.Copy must only reach w through
// Write with the lock held.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
