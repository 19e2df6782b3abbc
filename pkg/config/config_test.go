package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Repo != DefaultRepo {
		t.Errorf("Repo = %q, want %q", cfg.Repo, DefaultRepo)
	}
	if cfg.Suite != "jammy" || cfg.Component != "main" || cfg.Arch != "amd64" {
		t.Errorf("suite/component/arch = %s/%s/%s, want jammy/main/amd64",
			cfg.Suite, cfg.Component, cfg.Arch)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, DefaultMaxDepth)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
repo = "https://deb.debian.org/debian"
suite = "bookworm"
max_depth = 10
cache_ttl = "48h"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Repo != "https://deb.debian.org/debian" {
		t.Errorf("Repo = %q, want overridden value", cfg.Repo)
	}
	if cfg.Suite != "bookworm" {
		t.Errorf("Suite = %q, want %q", cfg.Suite, "bookworm")
	}
	if cfg.MaxDepth != 10 {
		t.Errorf("MaxDepth = %d, want 10", cfg.MaxDepth)
	}
	if cfg.CacheTTL != "48h" {
		t.Errorf("CacheTTL = %q, want %q", cfg.CacheTTL, "48h")
	}
	// Untouched fields keep their defaults.
	if cfg.Component != DefaultComponent || cfg.Arch != DefaultArch {
		t.Errorf("component/arch = %s/%s, want defaults", cfg.Component, cfg.Arch)
	}
}

func TestLoad_InvalidDepthFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_depth = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want default %d", cfg.MaxDepth, DefaultMaxDepth)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("repo = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() succeeded for malformed TOML")
	}
}
