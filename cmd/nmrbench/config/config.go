// Package config persists the two user preferences that survive restarts:
// the color theme and the last selected solvent column. Nothing else is
// persisted; calculator state is session-scoped by design.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds user preferences.
type Config struct {
	Theme       string `json:"theme"`        // "light" or "dark"
	LastSolvent string `json:"last_solvent"` // solvent column identifier
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:       "light",
		LastSolvent: "chloroform_d",
	}
}

// ConfigDir returns the directory where config is stored.
func ConfigDir() (string, error) {
	// Prefer a project-local .nmrbench directory if present.
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".nmrbench")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nmrbench"), nil
}

// ConfigFile returns the full path to the config file.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk, falling back to defaults when
// no file exists yet.
func Load() (Config, error) {
	path, err := ConfigFile()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigFile()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
