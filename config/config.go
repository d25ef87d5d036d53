// Package config loads the user preferences of the miditrack tools.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type (
	Preferences struct {
		Output OutputPreferences
		Header HeaderPreferences

		// Strict makes the tools validate the ranges of all the event numbers
		// and values, and fail on the first invalid track.
		Strict bool `yaml:",omitempty"`
	}

	OutputPreferences struct {
		Format string // json, yaml, midi or text
		Indent string `yaml:",omitempty"`
	}

	// HeaderPreferences are used for the tempo map of tracks that come
	// without one.
	HeaderPreferences struct {
		Resolution int
		BPM        float64 `yaml:"bpm"`
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// Path returns the path of the user's preferences file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "miditrack", "preferences.yml"), nil
}

// Load returns the default preferences overridden by the user's preferences
// file, if there is one. A missing file is not an error.
func Load() (Preferences, error) {
	path, err := Path()
	if err != nil {
		return loadDefaultPreferences(), nil
	}
	return LoadFile(path)
}

// LoadFile is like Load, but reads the overrides from the given path.
func LoadFile(path string) (Preferences, error) {
	preferences := loadDefaultPreferences()
	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return preferences, nil
	}
	if err != nil {
		return preferences, err
	}
	if err := yaml.UnmarshalStrict(bytes, &preferences); err != nil {
		return preferences, fmt.Errorf("invalid preferences file %v: %w", path, err)
	}
	return preferences, preferences.Validate()
}

// Validate checks that the preferences make sense.
func (p Preferences) Validate() error {
	switch p.Output.Format {
	case "json", "yaml", "midi", "text":
	default:
		return fmt.Errorf("unknown output format %q", p.Output.Format)
	}
	if p.Header.Resolution <= 0 || p.Header.Resolution > 0x7FFF {
		return fmt.Errorf("resolution %d out of range", p.Header.Resolution)
	}
	if p.Header.BPM <= 0 {
		return errors.New("BPM should be > 0")
	}
	return nil
}
