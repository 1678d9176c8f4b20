package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath = "RESEMBLE_CONFIG"
	EnvLogLevel   = "RESEMBLE_LOG_LEVEL"
	EnvLogFormat  = "RESEMBLE_LOG_FORMAT"
)

// ProjectFileName is the configuration file looked up in the working directory.
const ProjectFileName = "resemble.toml"

// Log contains configuration for diagnostic output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Matrix contains configuration for the pairwise matrix command.
type Matrix struct {
	Workers int `toml:"workers"`
}

// Rank contains defaults for the rank command.
type Rank struct {
	Threshold float64 `toml:"threshold"`
	Top       int     `toml:"top"`
}

// Config is the complete resemble configuration.
type Config struct {
	Log    Log    `toml:"log"`
	Matrix Matrix `toml:"matrix"`
	Rank   Rank   `toml:"rank"`
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "resemble", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "resemble", "config.toml"), nil
}

// Load locates, parses, and validates a configuration file. It returns the
// resolved path and whether a file was actually read.
func Load(path string) (*Config, string, bool, error) {
	// A missing .env is not an error
	_ = godotenv.Load()

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the file to read. An explicit path that does not
// exist is an error; a missing file on the search path is not.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return path, true, nil
	}

	var candidates []string
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, ProjectFileName)

	defaultPath, err := DefaultConfigPath()
	if err == nil {
		candidates = append(candidates, defaultPath)
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}

	return defaultPath, false, nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Log.Level = value
	}
	if value, ok := os.LookupEnv(EnvLogFormat); ok && strings.TrimSpace(value) != "" {
		c.Log.Format = value
	}
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}
