package config

import (
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs loads the configuration from a directory of fsys.
func LoadFs(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	out.configDir = path
	out.configFs = afero.NewBasePathFs(fsys, path)
	return out, nil
}
