package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Variant   string  `toml:"variant"`
	EdgeLevel float64 `toml:"edge_level"`
	Channel   int     `toml:"channel"`
	Strict    *bool   `toml:"strict"`
	Overwrite *bool   `toml:"overwrite"`
	Workers   int     `toml:"workers"`
	Debounce  string  `toml:"debounce"`
	LogLevel  string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.gtptools/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gtptools", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("variant", fc.Variant, &cfg.Variant)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setFloat("edge-level", fc.EdgeLevel, &cfg.EdgeLevel)
	s.setInt("channel", fc.Channel, &cfg.Channel)
	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setBool("strict", fc.Strict, &cfg.Strict)
	s.setBool("overwrite", fc.Overwrite, &cfg.Overwrite)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
