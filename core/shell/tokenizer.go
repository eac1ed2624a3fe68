// Package shell turns raw input lines into argument vectors.
//
// The rules are a small subset of
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html:
// the line is broken into words on blanks, a word starting with '#' begins a
// comment, and no quoting, expansion or operators are recognized.
package shell

import "strings"

const (
	// Delimiters separate words, BEL is included to strip stray control
	// characters pasted into the terminal.
	Delimiters = " \t\r\n\a"

	// CommentChar starts a comment when it begins a word.
	CommentChar = '#'

	// BackgroundToken marks a command to run without waiting when it is the
	// last word on the line.
	BackgroundToken = "&"
)

// Argv is an argument vector, the first element is the command name.
type Argv []string

// Empty is true for blank lines.
func (a Argv) Empty() bool {
	return len(a) == 0
}

// Name returns the command name or "" for an empty vector.
func (a Argv) Name() string {
	if a.Empty() {
		return ""
	}
	return a[0]
}

// Args returns the arguments following the command name.
func (a Argv) Args() []string {
	if a.Empty() {
		return nil
	}
	return a[1:]
}

// String joins the vector with single spaces.
func (a Argv) String() string {
	return strings.Join(a, " ")
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(Delimiters, r)
}

// StripComment removes a trailing comment from the line.
func StripComment(line string) string {
	atWordStart := true
	for i, r := range line {
		switch {
		case isDelimiter(r):
			atWordStart = true
		case r == CommentChar && atWordStart:
			return line[:i]
		default:
			atWordStart = false
		}
	}
	return line
}

// Tokenize splits a line into words, discarding comments. Runs of delimiters
// never produce empty words.
func Tokenize(line string) Argv {
	fields := strings.FieldsFunc(StripComment(line), isDelimiter)
	out := make(Argv, len(fields))
	copy(out, fields)
	return out
}

// SplitBackground removes a trailing BackgroundToken from argv and reports
// whether it was present.
func SplitBackground(argv Argv) (Argv, bool) {
	if n := len(argv); n > 0 && argv[n-1] == BackgroundToken {
		return argv[:n-1], true
	}
	return argv, false
}
