package vos

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func newTestFs(t *testing.T) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, mode := range map[string]os.FileMode{
		"/bin/ls":           0755,
		"/usr/bin/ls":       0755,
		"/usr/bin/env":      0755,
		"/usr/bin/readme":   0644,
		"/opt/tool/run":     0700,
		"/home/user/script": 0755,
	} {
		if err := afero.WriteFile(fsys, path, []byte("#!/bin/sh\n"), mode); err != nil {
			t.Fatal(err)
		}
		if err := fsys.Chmod(path, mode); err != nil {
			t.Fatal(err)
		}
	}
	if err := fsys.MkdirAll("/usr/bin/dir.d", 0755); err != nil {
		t.Fatal(err)
	}
	return fsys
}

func TestLookPath(t *testing.T) {
	fsys := newTestFs(t)

	cases := []struct {
		name     string
		path     string
		file     string
		expected string
		err      error
	}{
		{"first-match-wins", "/bin:/usr/bin", "ls", "/bin/ls", nil},
		{"order-matters", "/usr/bin:/bin", "ls", "/usr/bin/ls", nil},
		{"later-dir", "/bin:/usr/bin", "env", "/usr/bin/env", nil},
		{"not-found", "/bin:/usr/bin", "boguscmd123", "", ErrNotFound},
		{"skips-non-executable", "/usr/bin", "readme", "", ErrNotFound},
		{"skips-directories", "/usr/bin", "dir.d", "", ErrNotFound},
		{"empty-path", "", "ls", "", ErrNotFound},
		{"empty-name", "/bin", "", "", ErrNotFound},
		{"absolute", "", "/opt/tool/run", "/opt/tool/run", nil},
		{"absolute-ignores-path", "/bin", "/usr/bin/env", "/usr/bin/env", nil},
		{"absolute-missing", "/bin", "/bin/missing", "", ErrNotFound},
		{"absolute-not-executable", "/bin", "/usr/bin/readme", "", ErrNotExecutable},
		{"absolute-directory", "/bin", "/usr/bin", "", ErrNotExecutable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := NewOrderedEnvFromList([]string{"PATH=" + tc.path})
			actual, err := LookPath(fsys, env, tc.file)

			assert.ErrorIs(t, err, tc.err)
			if tc.err == nil {
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestLookPath_unsetPath(t *testing.T) {
	_, err := LookPath(newTestFs(t), NewOrderedEnv(), "ls")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookPath_relative(t *testing.T) {
	fsys := afero.NewBasePathFs(newTestFs(t), "/home/user")
	env := NewOrderedEnvFromList([]string{"PATH=:/bin"})

	actual, err := LookPath(fsys, env, "script")
	assert.Nil(t, err)
	assert.Equal(t, "./script", actual)

	actual, err = LookPath(fsys, env, "./script")
	assert.Nil(t, err)
	assert.Equal(t, "./script", actual)
}

func TestSearchPath(t *testing.T) {
	env := NewOrderedEnvFromList([]string{"PATH=/bin::/usr/bin"})
	assert.Equal(t, []string{"/bin", "", "/usr/bin"}, SearchPath(env))
	assert.Nil(t, SearchPath(NewOrderedEnv()))
}
