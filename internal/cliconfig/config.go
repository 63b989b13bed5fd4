package cliconfig

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ysh86/GTPtools/adc"
	"github.com/ysh86/GTPtools/galaksija"
)

// Config holds CLI configuration for wav2gtp.
type Config struct {
	Variant   string
	EdgeLevel float64
	Channel   int

	Strict    bool
	Overwrite bool
	Workers   int
	Debounce  time.Duration
	LogLevel  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Variant:   galaksija.Ternary.String(),
		EdgeLevel: adc.DefaultEdgeLevel,
		Channel:   1,
		Overwrite: true,
		Workers:   runtime.NumCPU(),
		Debounce:  500 * time.Millisecond,
		LogLevel:  "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := galaksija.ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.EdgeLevel <= 0 || c.EdgeLevel >= 1 {
		return fmt.Errorf("edge level must be in (0, 1), got %v", c.EdgeLevel)
	}
	if c.Channel < 1 {
		return fmt.Errorf("channel must be 1 or greater, got %d", c.Channel)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil || c.LogLevel == "" {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// DecoderConfig converts the CLI settings for the decoder. Call Validate first.
func (c *Config) DecoderConfig() galaksija.Config {
	v, _ := galaksija.ParseVariant(c.Variant)
	return galaksija.Config{
		Variant:   v,
		EdgeLevel: c.EdgeLevel,
		Channel:   c.Channel,
	}
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setInt(flag, i, dst)
	return nil
}

func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setFloat(flag, f, dst)
	return nil
}

// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
