package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Loader reads and writes settings files.
type Loader struct {
	fs        afero.Fs
	validator *validator.Validate
}

// NewLoader creates a loader on top of fsys.
func NewLoader(fsys afero.Fs) *Loader {
	return &Loader{
		fs:        fsys,
		validator: validator.New(),
	}
}

// Load reads the settings file at path. A missing file yields Default().
// Fields absent from the file keep their default values. JSON and YAML are
// both accepted.
func (l *Loader) Load(path string) (Settings, error) {
	settings := Default()

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Default(), fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if err := l.Validate(settings); err != nil {
		return Default(), fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	return settings, nil
}

// Validate checks the required fields of s.
func (l *Loader) Validate(s Settings) error {
	return l.validator.Struct(s)
}

// Save validates s and writes it to path as indented JSON.
func (l *Loader) Save(path string, s Settings) error {
	if err := l.Validate(s); err != nil {
		return fmt.Errorf("refusing to save invalid settings: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := afero.WriteFile(l.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}
