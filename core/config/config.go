package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	// configFs is rooted at the configuration directory, nil when running
	// from the built-in defaults.
	configFs afero.Fs
	// configDir is the on-disk location of configFs.
	configDir string

	Prompt       string `json:"prompt" validate:"required"`
	Color        string `json:"color" validate:"oneof=always auto never"`
	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0"`
	EventLog     string `json:"event_log"`
	ReportJobs   bool   `json:"report_jobs"`

	Aliases []Alias `json:"aliases" validate:"unique=Name,dive"`
}

type Alias struct {
	Name  string `json:"name" validate:"required,excludes=="`
	Value string `json:"value"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Dir returns the configuration directory or "" for the built-in defaults.
func (c *Configuration) Dir() string {
	return c.configDir
}

// resolve gets the on-disk path of a file in the configuration directory.
func (c *Configuration) resolve(name string) string {
	switch {
	case name == "":
		return ""
	case filepath.IsAbs(name):
		return name
	case c.configDir == "":
		return ""
	default:
		return filepath.Join(c.configDir, name)
	}
}

// HistoryPath returns where interactive history is persisted, "" if it isn't.
func (c *Configuration) HistoryPath() string {
	return c.resolve(c.HistoryFile)
}

// EventLogEnabled is true if command events should be recorded.
func (c *Configuration) EventLogEnabled() bool {
	return c.resolve(c.EventLog) != ""
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if filepath.IsAbs(c.EventLog) {
		return afero.NewOsFs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	}
	if c.configFs == nil {
		return nil, os.ErrNotExist
	}
	return c.configFs.OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	if filepath.IsAbs(c.EventLog) {
		return afero.NewOsFs().Open(c.EventLog)
	}
	if c.configFs == nil || c.EventLog == "" {
		return nil, os.ErrNotExist
	}
	return c.configFs.Open(c.EventLog)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration, not backed by a directory.
func Default() *Configuration {
	return defaultConfig()
}
