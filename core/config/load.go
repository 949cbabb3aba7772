package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(fs afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fs, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = afero.NewBasePathFs(fs, path)
	out.configDir = path
	return &out, nil
}

// Initialize writes the default configuration to dir unless one already
// exists, then loads it.
func Initialize(fs afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	logger.Printf("Initializing configuration in %s\n", dir)
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	exists, err := afero.Exists(fs, configPath)
	switch {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("- %s already exists, skipping\n", ConfigurationName)
	default:
		logger.Printf("- Writing %s\n", ConfigurationName)
		if err := afero.WriteFile(fs, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return Load(fs, dir)
}
