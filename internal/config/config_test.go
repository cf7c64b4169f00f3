package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetDefaultsFillsZeroFields(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	if cfg.Attack.Tolerance != 0.01 {
		t.Fatalf("Attack.Tolerance: want 0.01, got %v", cfg.Attack.Tolerance)
	}
	if cfg.GCMS.K != 1000 {
		t.Fatalf("GCMS.K: want 1000, got %d", cfg.GCMS.K)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("Logging.Level: want info, got %q", cfg.Logging.Level)
	}
	if cfg.UnknownDomain.Delta != 1e-6 {
		t.Fatalf("UnknownDomain.Delta: want 1e-6, got %v", cfg.UnknownDomain.Delta)
	}
}

func TestSetDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Attack.Tau = 42
	cfg.GCMS.K = 7
	cfg.Logging.Level = "debug"
	cfg.SetDefaults()

	if cfg.Attack.Tau != 42 {
		t.Fatalf("Attack.Tau: explicit value overwritten, got %d", cfg.Attack.Tau)
	}
	if cfg.GCMS.K != 7 {
		t.Fatalf("GCMS.K: explicit value overwritten, got %d", cfg.GCMS.K)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level: explicit value overwritten, got %q", cfg.Logging.Level)
	}
}

func TestLoadParsesYAMLAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "attack:\n  tau: 15\ngcms:\n  k: 500\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Attack.Tau != 15 {
		t.Fatalf("Attack.Tau: want 15, got %d", cfg.Attack.Tau)
	}
	if cfg.GCMS.K != 500 {
		t.Fatalf("GCMS.K: want 500, got %d", cfg.GCMS.K)
	}
	if cfg.GCMS.M != 1024 {
		t.Fatalf("GCMS.M: want default 1024, got %d", cfg.GCMS.M)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Load: expected an error for a missing file")
	}
}
