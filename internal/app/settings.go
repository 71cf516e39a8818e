package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blitz/hydrasect/internal/helpers"
	"github.com/blitz/hydrasect/internal/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsPath returns the optional configuration file location
// following the XDG base directory convention.
func DefaultSettingsPath() (string, error) {
	if config := helpers.GetEnv("XDG_CONFIG_HOME", ""); config != "" {
		return filepath.Join(config, "hydrasect", "config.yaml"), nil
	}

	if home := helpers.GetEnv("HOME", ""); home != "" {
		return filepath.Join(home, ".config", "hydrasect", "config.yaml"), nil
	}

	return "", errors.New("XDG_CONFIG_HOME and HOME are both unset or empty")
}

// LoadSettings reads the configuration file at path. A missing file is not
// an error since every setting has a default.
func LoadSettings(fs afero.Fs, path string) (models.Settings, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Settings{}, nil
		}
		return models.Settings{}, fmt.Errorf("reading settings file: %w", err)
	}

	var settings models.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("parsing settings file [%s]: %w", path, err)
	}

	return settings, nil
}
