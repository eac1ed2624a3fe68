package vos

import (
	"io"
	"os"
)

// VIO provides the standard streams of a shell and the processes it starts.
type VIO interface {
	// Stdin gets the input stream, nil is a closed input.
	Stdin() io.Reader
	// Stdout gets the output stream.
	Stdout() io.Writer
	// Stderr gets the error stream.
	Stderr() io.Writer
}

type VIOAdapter struct {
	IStdin  io.Reader
	IStdout io.Writer
	IStderr io.Writer
}

// NewVIOAdapter bundles the given streams, nil writers discard their output.
func NewVIOAdapter(stdin io.Reader, stdout, stderr io.Writer) *VIOAdapter {
	return &VIOAdapter{
		IStdin:  stdin,
		IStdout: writerOrDiscard(stdout),
		IStderr: writerOrDiscard(stderr),
	}
}

// NewOSIO uses the streams of the current process.
func NewOSIO() *VIOAdapter {
	return NewVIOAdapter(os.Stdin, os.Stdout, os.Stderr)
}

// NewNullIO creates a valid /dev/null style I/O, reads hit EOF and writes
// are discarded.
func NewNullIO() VIO {
	return NewVIOAdapter(nil, nil, nil)
}

var _ VIO = (*VIOAdapter)(nil)

func (pr *VIOAdapter) Stdin() io.Reader {
	return pr.IStdin
}

func (pr *VIOAdapter) Stdout() io.Writer {
	return pr.IStdout
}

func (pr *VIOAdapter) Stderr() io.Writer {
	return pr.IStderr
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
