package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/vos"
)

// ErrInterrupted is returned by a LineReader when the user pressed the
// interrupt key while editing a line. The partial line is discarded.
var ErrInterrupted = errors.New("interrupted")

// LineReader supplies the shell with input lines.
type LineReader interface {
	// ReadLine reads the next line, showing prompt if it isn't empty.
	// io.EOF is returned once the input is exhausted.
	ReadLine(prompt string) (string, error)
	// ResetHistory forgets any history kept by the reader.
	ResetHistory()
	io.Closer
}

// NewLineReader creates a reader for scripts and pipes. A final line without
// a trailing newline is still returned before io.EOF.
func NewLineReader(r io.Reader, promptOut io.Writer) LineReader {
	if r == nil {
		r = strings.NewReader("")
	}
	return &bufioReader{in: bufio.NewReader(r), out: promptOut}
}

type bufioReader struct {
	in  *bufio.Reader
	out io.Writer
}

func (b *bufioReader) ReadLine(prompt string) (string, error) {
	if prompt != "" && b.out != nil {
		fmt.Fprint(b.out, prompt)
	}

	line, err := b.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

func (*bufioReader) ResetHistory() {}

func (*bufioReader) Close() error {
	return nil
}

// NewTerminalReader creates a line editor for interactive sessions, history
// is persisted according to cfg.
func NewTerminalReader(cfg *config.Configuration, stdio vos.VIO) (LineReader, error) {
	historyLimit := cfg.HistoryLimit
	if historyLimit == 0 {
		// readline treats 0 as its default size.
		historyLimit = -1
	}

	rlConfig := &readline.Config{
		Stdin:        readline.NewCancelableStdin(stdio.Stdin()),
		Stdout:       stdio.Stdout(),
		Stderr:       stdio.Stderr(),
		HistoryFile:  cfg.HistoryPath(),
		HistoryLimit: historyLimit,
	}
	if err := rlConfig.Init(); err != nil {
		return nil, err
	}

	instance, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}
	return &terminalReader{rl: instance}, nil
}

type terminalReader struct {
	rl *readline.Instance
}

func (t *terminalReader) ReadLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

func (t *terminalReader) ResetHistory() {
	t.rl.Operation.ResetHistory()
}

func (t *terminalReader) Close() error {
	return t.rl.Close()
}
