package vos

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// EnvPath holds the command search path.
	EnvPath = "PATH"
	// EnvHome holds the user's home directory.
	EnvHome = "HOME"
	// EnvPWD holds the current working directory.
	EnvPWD = "PWD"
	// EnvOldPWD holds the previous working directory.
	EnvOldPWD = "OLDPWD"
	// EnvUser holds the login name.
	EnvUser = "USER"
)

var (
	// ErrNotFound is the error resulting if a path search failed to find an
	// executable file.
	ErrNotFound = errors.New("command not found")

	// ErrNotExecutable is returned when a path given directly exists but can't
	// be executed.
	ErrNotExecutable = errors.New("permission denied")
)

func findExecutable(fsys afero.Fs, file string) error {
	d, err := fsys.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); m.IsRegular() && m&0111 != 0 {
		return nil
	}
	return ErrNotExecutable
}

// SearchPath splits the PATH variable of env into directories.
func SearchPath(env VEnv) []string {
	path, ok := env.LookupEnv(EnvPath)
	if !ok || path == "" {
		return nil
	}
	return filepath.SplitList(path)
}

// LookPath searches for an executable named file in the directories named by
// the PATH environment variable. If file contains a slash, it is tried directly
// and the PATH is not consulted. The result may be an absolute path or a path
// relative to the current directory, relative results always contain a slash
// so they are never searched for again.
func LookPath(fsys afero.Fs, env VEnv, file string) (string, error) {
	if file == "" {
		return "", ErrNotFound
	}
	if strings.Contains(file, "/") {
		err := findExecutable(fsys, file)
		if err == nil {
			return file, nil
		}
		return "", err
	}
	for _, dir := range SearchPath(env) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(fsys, path); err == nil {
			if !strings.Contains(path, "/") {
				path = "./" + path
			}
			return path, nil
		}
	}
	return "", ErrNotFound
}
