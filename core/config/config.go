package config

import (
	_ "embed"
	"errors"
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
)

// ErrNoConfigDir is returned by file operations on a configuration that
// isn't backed by a directory.
var ErrNoConfigDir = errors.New("configuration has no directory")

type Configuration struct {
	configFs  afero.Fs
	configDir string

	Banner       string `json:"banner"`
	PromptMarker string `json:"prompt_marker" validate:"required"`
	Color        string `json:"color" validate:"oneof=always auto never"`
	HistoryFile  string `json:"history_file" validate:"omitempty,excludesall=/\\"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0"`
	AppLog       string `json:"app_log" validate:"omitempty,excludesall=/\\"`
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

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// Dir returns the directory the configuration was loaded from, or "" for
// the built-in defaults.
func (c *Configuration) Dir() string {
	return c.configDir
}

// HistoryPath returns the OS path of the line editor history, or "" if
// history isn't persisted.
func (c *Configuration) HistoryPath() string {
	if c.configDir == "" || c.HistoryFile == "" {
		return ""
	}
	return filepath.Join(c.configDir, c.HistoryFile)
}

// EventLogEnabled reports whether shell events should be recorded.
func (c *Configuration) EventLogEnabled() bool {
	return c.fs() != nil && c.AppLog != ""
}

// OpenAppLog opens the event log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	if !c.EventLogEnabled() {
		return nil, ErrNoConfigDir
	}
	return c.fs().OpenFile(c.AppLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadAppLog opens the event log for reading.
func (c *Configuration) ReadAppLog() (afero.File, error) {
	if !c.EventLogEnabled() {
		return nil, ErrNoConfigDir
	}
	return c.fs().OpenFile(c.AppLog, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration without a backing directory,
// history and the event log are disabled.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
