// Package config loads resemble's TOML configuration.
//
// A configuration file is optional. Values are layered as built-in defaults,
// then the first file found on the search path, then environment overrides.
// A .env file in the working directory is read before the environment is
// consulted.
package config
