package factory

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfigFromFile loads a backend Config from a YAML file. A missing
// file is not an error: it yields DefaultConfig so first-run solvers work
// without requiring the user to hand-author a config file first.
func LoadConfigFromFile(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfigToFile writes cfg to path as YAML, creating parent directories
// as needed.
func SaveConfigToFile(cfg Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ConfigPaths returns the common locations a backend config file is looked
// for, in search order.
func ConfigPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".cuckaroo29", "backend.yaml"),
		"/etc/cuckaroo29/backend.yaml",
		"./cuckaroo29-backend.yaml",
	}
}
