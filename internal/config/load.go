package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in each search directory.
const FileName = "config.yaml"

// Load builds the effective settings. Built-in defaults come first, then the
// config file (-config, or the first hit from SearchPaths), then flags. The
// merged result must pass Validate.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolveConfigFile(ConfigPath()); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SearchPaths lists the config files tried when -config is not given: the
// working directory first, then the per-user directory.
func SearchPaths() []string {
	return []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	}
}

// resolveConfigFile returns explicit unchanged, so a bad -config path is
// reported by the read. Otherwise it picks the first existing search path,
// or "" to run on defaults.
func resolveConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir is the sandbox directory under the user config root
// ($XDG_CONFIG_HOME, ~/Library/Application Support or %AppData%).
func ConfigDir() string {
	root, err := os.UserConfigDir()
	if err != nil {
		// No home directory; keep settings beside the working directory
		root, _ = filepath.Abs(".")
	}
	return filepath.Join(root, "glsandbox")
}

// loadFromFile overlays the YAML at path onto cfg. Keys missing from the file
// keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
