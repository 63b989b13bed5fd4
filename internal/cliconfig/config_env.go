package cliconfig

import "os"

// ApplyEnvConfig applies GTP_* environment variables.
// They override the file config but not explicitly set flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("variant", os.Getenv("GTP_VARIANT"), &cfg.Variant)
	s.setString("log-level", os.Getenv("GTP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setFloatFromString("edge-level", os.Getenv("GTP_EDGE_LEVEL"), &cfg.EdgeLevel); err != nil {
		return err
	}
	if err := s.setIntFromString("channel", os.Getenv("GTP_CHANNEL"), &cfg.Channel); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("GTP_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("GTP_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("strict", os.Getenv("GTP_STRICT"), &cfg.Strict)
	s.setBoolFromString("overwrite", os.Getenv("GTP_OVERWRITE"), &cfg.Overwrite)

	return nil
}
