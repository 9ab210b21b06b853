package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"scanmatch/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCSV := filepath.Join(tempHome, ".local", "share", "scanmatch", "scan-id.csv")
	if cfg.Paths.ScanCSV != wantCSV {
		t.Fatalf("unexpected scan csv path: got %q want %q", cfg.Paths.ScanCSV, wantCSV)
	}
	if cfg.Watcher.PollInterval != 2000 {
		t.Fatalf("unexpected poll interval: %d", cfg.Watcher.PollInterval)
	}
	if cfg.Search.PageSize != 50 {
		t.Fatalf("unexpected page size: %d", cfg.Search.PageSize)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[paths]
scan_csv = "` + filepath.Join(dir, "scans.csv") + `"

[watcher]
poll_interval_ms = 500

[search]
page_size = 25

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Paths.ScanCSV != filepath.Join(dir, "scans.csv") {
		t.Fatalf("unexpected scan csv: %q", cfg.Paths.ScanCSV)
	}
	if cfg.Watcher.PollInterval != 500 {
		t.Fatalf("unexpected poll interval: %d", cfg.Watcher.PollInterval)
	}
	if cfg.Search.PageSize != 25 {
		t.Fatalf("unexpected page size: %d", cfg.Search.PageSize)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty scan csv", func(c *config.Config) { c.Paths.ScanCSV = "" }},
		{"empty contacts db", func(c *config.Config) { c.Paths.ContactsDB = "" }},
		{"tiny poll interval", func(c *config.Config) { c.Watcher.PollInterval = 50 }},
		{"zero page size", func(c *config.Config) { c.Search.PageSize = 0 }},
		{"huge page size", func(c *config.Config) { c.Search.PageSize = 1000 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sample config on disk: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected overwrite refusal")
	}

	// The sample must itself be loadable.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}
