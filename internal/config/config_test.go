package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadToolingDefaults(t *testing.T) {
	cfg, err := LoadTooling(t.TempDir())
	if err != nil {
		t.Fatalf("LoadTooling failed: %v", err)
	}
	if cfg.HistorySize != 1000 || cfg.Color != "auto" || cfg.DefaultRef != "master" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadToolingFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "historySize: 50\ncolor: \"off\"\ndefaultRef: main\ncacheDir: /tmp/voss-cache\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTooling(dir)
	if err != nil {
		t.Fatalf("LoadTooling failed: %v", err)
	}
	if cfg.HistorySize != 50 {
		t.Errorf("historySize = %d", cfg.HistorySize)
	}
	if cfg.Color != "off" {
		t.Errorf("color = %q", cfg.Color)
	}
	if cfg.DefaultRef != "main" {
		t.Errorf("defaultRef = %q", cfg.DefaultRef)
	}
	if cfg.CacheDir != "/tmp/voss-cache" {
		t.Errorf("cacheDir = %q", cfg.CacheDir)
	}
}

func TestLoadToolingBadValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("historySize: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTooling(dir)
	if err != nil {
		t.Fatalf("LoadTooling failed: %v", err)
	}
	if cfg.HistorySize != 1000 {
		t.Errorf("historySize = %d, want fallback 1000", cfg.HistorySize)
	}
}

func TestSaveToolingRoundtrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := &Tooling{HistorySize: 10, Color: "on", DefaultRef: "main"}
	if err := SaveTooling(dir, cfg); err != nil {
		t.Fatalf("SaveTooling failed: %v", err)
	}

	loaded, err := LoadTooling(dir)
	if err != nil {
		t.Fatalf("LoadTooling failed: %v", err)
	}
	if loaded.HistorySize != 10 || loaded.Color != "on" || loaded.DefaultRef != "main" {
		t.Errorf("roundtrip mismatch: %+v", loaded)
	}
}
