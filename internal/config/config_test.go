package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvFileOverridesFields(t *testing.T) {
	cfg := &PoolConfig{}
	parseEnvFile("POOL_ADDRESS=pool.example.com:3333\nPOOL_USERNAME=alice\n# comment\nPOOL_TLS=true\n", cfg)

	if cfg.Address != "pool.example.com:3333" {
		t.Fatalf("Address = %q", cfg.Address)
	}
	if cfg.Username != "alice" {
		t.Fatalf("Username = %q", cfg.Username)
	}
	if !cfg.TLS {
		t.Fatalf("expected TLS true")
	}
}

func TestLoadSolverConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadSolverConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadSolverConfig returned error: %v", err)
	}
	if cfg.Buckets == 0 {
		t.Fatalf("expected default Buckets to be non-zero")
	}
}

func TestLoadSolverConfigAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solver.yaml")
	content := "buckets: 128\nworkers: 4\nfail_on_overflow: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := LoadSolverConfig(path)
	if err != nil {
		t.Fatalf("LoadSolverConfig returned error: %v", err)
	}
	if cfg.Buckets != 128 {
		t.Fatalf("Buckets = %d, want 128", cfg.Buckets)
	}
	if cfg.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", cfg.Workers)
	}
	if !cfg.FailOnOverflow {
		t.Fatalf("expected FailOnOverflow true")
	}
	// Rounds was left unset in the fixture and should keep its default.
	if cfg.Rounds == 0 {
		t.Fatalf("expected default Rounds to survive a partial override file")
	}
}
