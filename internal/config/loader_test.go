package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Package.Name != "layergen" {
		t.Errorf("Package.Name = %q", cfg.Package.Name)
	}
	if cfg.Trunk != "main" {
		t.Errorf("Trunk = %q", cfg.Trunk)
	}
	if cfg.Registry.APIBase != "https://api.github.com" {
		t.Errorf("Registry.APIBase = %q", cfg.Registry.APIBase)
	}
}

func TestLoad_PartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "package:\n  name: mytool\nregistry:\n  owner: acme\n  repo: mytool\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Package.Name != "mytool" {
		t.Errorf("Package.Name = %q", cfg.Package.Name)
	}
	if cfg.Registry.Owner != "acme" || cfg.Registry.Repo != "mytool" {
		t.Errorf("Registry = %+v", cfg.Registry)
	}
	// Untouched fields fall back to defaults.
	if cfg.Trunk != "main" {
		t.Errorf("Trunk = %q, want default", cfg.Trunk)
	}
	if cfg.Dist != "dist" {
		t.Errorf("Dist = %q, want default", cfg.Dist)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("package: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load with invalid YAML: expected error")
	}
}
