// Package config loads default CLI flag values from a ".loxrc.yaml"
// file, so a user's preferred run/repl flags don't need to be typed on
// every invocation. Flags explicitly passed on the command line always
// take precedence over whatever this package loads.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config is the set of CLI defaults a ".loxrc.yaml" file may override.
type Config struct {
	// Prompt is the string the REPL prints before reading a line.
	Prompt string `yaml:"prompt"`
	// TraceCalls enables `run --trace` by default.
	TraceCalls bool `yaml:"traceCalls"`
	// DumpAST enables `run --dump-ast` by default.
	DumpAST bool `yaml:"dumpAST"`
}

// Default returns the built-in defaults used when no config file is
// found, or when loading one fails.
func Default() *Config {
	return &Config{
		Prompt:     "[lox]> ",
		TraceCalls: false,
		DumpAST:    false,
	}
}

// fileName is the config file Load looks for, in the current directory
// first and then the user's home directory.
const fileName = ".loxrc.yaml"

// Load reads ".loxrc.yaml" from the current directory, falling back to
// the user's home directory, and merges it over Default(). It is not
// an error for no config file to exist; Load simply returns the
// defaults in that case.
func Load() (*Config, error) {
	cfg := Default()

	path, err := locate()
	if err != nil || path == "" {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// locate returns the path of the first ".loxrc.yaml" found in the
// current directory or $HOME, or "" if neither has one.
func locate() (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	candidate := filepath.Join(home, fileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}
