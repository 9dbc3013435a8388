package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go-euclid/euclid"
	"go-euclid/sequencer"
)

// TrackConfig is the startup setup of one track.
type TrackConfig struct {
	Name   string `yaml:"name"`
	Note   uint8  `yaml:"note"`
	Pulses int    `yaml:"k"`
	Steps  int    `yaml:"n"`
}

// Config is the main configuration structure
type Config struct {
	BPM      float64       `yaml:"bpm"`
	Port     string        `yaml:"port"`
	Autoplay bool          `yaml:"autoplay,omitempty"`
	Tracks   []TrackConfig `yaml:"tracks"`
}

// DefaultConfig is six silent drum tracks at 120 BPM on the "loop" port.
func DefaultConfig() *Config {
	c := &Config{
		BPM:  120,
		Port: "loop",
	}
	for i, name := range sequencer.DefaultNames {
		c.Tracks = append(c.Tracks, TrackConfig{Name: name, Note: sequencer.DefaultNotes[i]})
	}
	return c
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-euclid"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, or returns defaults if there
// is none.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.Tracks = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if len(cfg.Tracks) == 0 {
		cfg.Tracks = DefaultConfig().Tracks
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Validate checks tempo and track table.
func (c *Config) Validate() error {
	if !(c.BPM > 0) {
		return errors.Errorf("bpm must be positive, got %v", c.BPM)
	}
	if len(c.Tracks) == 0 {
		return errors.New("no tracks")
	}
	for i, t := range c.Tracks {
		if t.Note > 127 {
			return errors.Errorf("track %d: note %d out of range", i, t.Note)
		}
		if _, err := euclid.Pattern(t.Pulses, t.Steps); err != nil {
			return errors.Wrapf(err, "track %d", i)
		}
	}
	return nil
}

// Notes returns the note of every track, in order.
func (c *Config) Notes() []uint8 {
	notes := make([]uint8, len(c.Tracks))
	for i, t := range c.Tracks {
		notes[i] = t.Note
	}
	return notes
}

// Names returns the name of every track, in order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Tracks))
	for i, t := range c.Tracks {
		names[i] = t.Name
	}
	return names
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
