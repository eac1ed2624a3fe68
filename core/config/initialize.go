package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration to dir if there isn't one
// already and returns the loaded configuration.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewOsFs(), dir, logger)
}

// InitializeFs is Initialize on an arbitrary filesystem.
func InitializeFs(fsys afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	if err := fsys.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch _, err := fsys.Stat(configPath); {
	case err == nil:
		logger.Printf("- %s already exists, keeping it", configPath)
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("- writing %s", configPath)
		if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return LoadFs(fsys, dir)
}
