package core

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestLookupBuiltin(t *testing.T) {
	for _, kind := range Builtins() {
		t.Run(kind.String(), func(t *testing.T) {
			got, ok := LookupBuiltin(kind.String())
			assert.True(t, ok)
			assert.Equal(t, kind, got)
			assert.NotEmpty(t, kind.Usage())
			assert.NotEmpty(t, kind.Short())
		})
	}

	_, ok := LookupBuiltin("ls")
	assert.False(t, ok)
	_, ok = LookupBuiltin("")
	assert.False(t, ok)
}

func TestBuiltins_order(t *testing.T) {
	var names []string
	for _, kind := range Builtins() {
		names = append(names, kind.String())
	}

	assert.Equal(t, []string{"exit", "env", "setenv", "unsetenv", "cd", "alias", "unalias", "help", "history"}, names)
	assert.Equal(t, "BuiltinKind(99)", BuiltinKind(99).String())
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Line   string
	Status int
}

func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			sh := newTestShell(t, "")
			outcome := sh.RunLine(tc.Line)
			assert.Equal(t, tc.Status, outcome.Status)

			g.Assert(t, tn, append(sh.stdout.Bytes(), sh.stderr.Bytes()...))
		})
	}
}

func TestHelp(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":  {"help", 0},
		"topic":   {"help cd alias", 0},
		"unknown": {"help ls", StatusFailure},
	}

	cases.Run(t)
}
