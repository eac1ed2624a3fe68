package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleTokenize() {
	fmt.Printf("%q\n", []string(Tokenize("  ls   -l  ")))
	fmt.Printf("%q\n", []string(Tokenize("echo hi # comment")))

	// Output: ["ls" "-l"]
	// ["echo" "hi"]
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		expected Argv
	}{
		{"empty", "", Argv{}},
		{"whitespace", " \t \r\n ", Argv{}},
		{"bell", "\a\a", Argv{}},
		{"collapsed", "  ls   -l  ", Argv{"ls", "-l"}},
		{"tabs", "ls\t-l\t/tmp", Argv{"ls", "-l", "/tmp"}},
		{"newline", "pwd\n", Argv{"pwd"}},
		{"control-chars", "ls\a -l\r\n", Argv{"ls", "-l"}},
		{"comment", "echo hi # comment", Argv{"echo", "hi"}},
		{"comment-no-space", "echo hi #comment", Argv{"echo", "hi"}},
		{"comment-only", "# just a comment", Argv{}},
		{"comment-after-tab", "echo\t#x", Argv{"echo"}},
		{"hash-inside-word", "echo a#b", Argv{"echo", "a#b"}},
		{"no-quoting", `echo "a b"`, Argv{"echo", `"a`, `b"`}},
		{"no-expansion", "echo $HOME", Argv{"echo", "$HOME"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Tokenize(tc.line))
		})
	}
}

func TestTokenize_ownsStorage(t *testing.T) {
	line := []byte("echo hello")
	argv := Tokenize(string(line))
	line[0] = 'X'

	assert.Equal(t, Argv{"echo", "hello"}, argv)
}

func TestStripComment(t *testing.T) {
	assert.Equal(t, "echo hi ", StripComment("echo hi # comment"))
	assert.Equal(t, "echo a#b", StripComment("echo a#b"))
	assert.Equal(t, "", StripComment("#"))
}

func TestSplitBackground(t *testing.T) {
	cases := []struct {
		name       string
		argv       Argv
		expected   Argv
		background bool
	}{
		{"foreground", Argv{"sleep", "1"}, Argv{"sleep", "1"}, false},
		{"background", Argv{"sleep", "1", "&"}, Argv{"sleep", "1"}, true},
		{"only-ampersand", Argv{"&"}, Argv{}, true},
		{"attached-ampersand", Argv{"sleep", "1&"}, Argv{"sleep", "1&"}, false},
		{"ampersand-not-last", Argv{"echo", "&", "x"}, Argv{"echo", "&", "x"}, false},
		{"empty", Argv{}, Argv{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			argv, background := SplitBackground(tc.argv)
			assert.Equal(t, tc.expected, argv)
			assert.Equal(t, tc.background, background)
		})
	}
}

func TestArgv(t *testing.T) {
	var empty Argv
	assert.True(t, empty.Empty())
	assert.Equal(t, "", empty.Name())
	assert.Nil(t, empty.Args())

	argv := Argv{"ls", "-l", "/"}
	assert.Equal(t, "ls", argv.Name())
	assert.Equal(t, []string{"-l", "/"}, argv.Args())
	assert.Equal(t, "ls -l /", argv.String())
}
