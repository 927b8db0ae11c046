// Package config loads pool credentials from a .env file (with environment
// variable overrides) and solver tuning from a YAML file, the way the
// teacher's device config loader layers .env over the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencuckoo/cuckaroo29/internal/solver"
)

// PoolConfig holds the credentials and endpoint needed to connect to a
// mining pool.
type PoolConfig struct {
	Address  string
	Username string
	Password string
	TLS      bool
}

var (
	poolConfig *PoolConfig
	poolLoaded bool
)

// LoadPoolConfig reads POOL_* values from a .env file in the project root,
// then lets POOL_* environment variables override them. The result is
// cached after the first successful load.
func LoadPoolConfig() (*PoolConfig, error) {
	if poolConfig != nil && poolLoaded {
		return poolConfig, nil
	}

	cfg := &PoolConfig{}

	projectRoot := findProjectRoot()
	envPath := filepath.Join(projectRoot, ".env")

	data, err := os.ReadFile(envPath)
	if err == nil {
		parseEnvFile(string(data), cfg)
	}

	if addr := os.Getenv("POOL_ADDRESS"); addr != "" {
		cfg.Address = addr
	}
	if user := os.Getenv("POOL_USERNAME"); user != "" {
		cfg.Username = user
	}
	if pass := os.Getenv("POOL_PASSWORD"); pass != "" {
		cfg.Password = pass
	}
	if tls := os.Getenv("POOL_TLS"); tls != "" {
		cfg.TLS = tls == "1" || strings.EqualFold(tls, "true")
	}

	poolConfig = cfg
	poolLoaded = true
	return cfg, nil
}

func parseEnvFile(content string, cfg *PoolConfig) {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "POOL_ADDRESS":
			cfg.Address = value
		case "POOL_USERNAME":
			cfg.Username = value
		case "POOL_PASSWORD":
			cfg.Password = value
		case "POOL_TLS":
			cfg.TLS = value == "1" || strings.EqualFold(value, "true")
		}
	}
}

func findProjectRoot() string {
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
		return cwd
	}
	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return cwd
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return cwd
		}
		cwd = parent
	}
}

// MustGetPoolConfig loads the pool config and panics if the address is
// missing, for CLI entrypoints that cannot proceed without one.
func MustGetPoolConfig() PoolConfig {
	cfg, err := LoadPoolConfig()
	if err != nil || cfg.Address == "" {
		panic("POOL_ADDRESS must be set via .env or the environment")
	}
	return *cfg
}

// solverTuning is the on-disk YAML shape for solver.Config; it mirrors the
// Go struct field-for-field so LoadSolverConfig can copy each field the file
// sets onto a solver.Config that starts from the defaults.
type solverTuning struct {
	Buckets         int  `yaml:"buckets"`
	MaxPerBucket    int  `yaml:"max_per_bucket"`
	Rounds          int  `yaml:"rounds"`
	CounterWords    int  `yaml:"counter_words"`
	Workers         int  `yaml:"workers"`
	FailOnOverflow  bool `yaml:"fail_on_overflow"`
	RecoveryWorkers int  `yaml:"recovery_workers"`
}

// LoadSolverConfig reads solver tuning from a YAML file, falling back to
// solver.DefaultConfig() for a missing file and for any zero-valued field
// the file leaves unset.
func LoadSolverConfig(path string) (solver.Config, error) {
	cfg := solver.DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var tuning solverTuning
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if tuning.Buckets != 0 {
		cfg.Buckets = tuning.Buckets
	}
	if tuning.MaxPerBucket != 0 {
		cfg.MaxPerBucket = tuning.MaxPerBucket
	}
	if tuning.Rounds != 0 {
		cfg.Rounds = tuning.Rounds
	}
	if tuning.CounterWords != 0 {
		cfg.CounterWords = tuning.CounterWords
	}
	if tuning.Workers != 0 {
		cfg.Workers = tuning.Workers
	}
	if tuning.RecoveryWorkers != 0 {
		cfg.RecoveryWorkers = tuning.RecoveryWorkers
	}
	cfg.FailOnOverflow = tuning.FailOnOverflow

	return cfg, nil
}
