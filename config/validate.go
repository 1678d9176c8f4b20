package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLog(); err != nil {
		return err
	}
	if c.Matrix.Workers < 1 {
		return errors.New("matrix.workers must be at least 1")
	}
	// Written so that NaN fails too
	if !(c.Rank.Threshold >= 0 && c.Rank.Threshold <= 1) {
		return errors.New("rank.threshold must be between 0 and 1")
	}
	if c.Rank.Top < 0 {
		return errors.New("rank.top must not be negative")
	}
	return nil
}

func (c *Config) validateLog() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unsupported value %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("log.format: unsupported value %q", c.Log.Format)
	}
	return nil
}
