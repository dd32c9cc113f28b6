package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("default base URL = %q", cfg.API.BaseURL)
	}
	if cfg.UI.ItemsPerPage != 10 {
		t.Errorf("default items per page = %d, want 10", cfg.UI.ItemsPerPage)
	}
	if cfg.UI.PageWindow != 5 {
		t.Errorf("default page window = %d, want 5", cfg.UI.PageWindow)
	}
	if cfg.Filters.SearchAffectsMarkers {
		t.Error("search should not affect markers by default")
	}
	if cfg.Filters.DefaultTab != "all" {
		t.Errorf("default tab = %q, want all", cfg.Filters.DefaultTab)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stargazer.yaml")
	content := `
api:
  base_url: https://sky.example.com
  user_id: u42
ui:
  items_per_page: 25
filters:
  search_affects_markers: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://sky.example.com" || cfg.API.UserID != "u42" {
		t.Errorf("file values not applied: %+v", cfg.API)
	}
	if cfg.UI.ItemsPerPage != 25 {
		t.Errorf("items per page = %d, want 25", cfg.UI.ItemsPerPage)
	}
	if !cfg.Filters.SearchAffectsMarkers {
		t.Error("search_affects_markers from file not applied")
	}
	// Untouched keys keep defaults
	if cfg.UI.PageWindow != 5 {
		t.Errorf("page window should keep default 5, got %d", cfg.UI.PageWindow)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stargazer.yaml")
	os.WriteFile(path, []byte("api:\n  base_url: https://file.example.com\n"), 0644)

	t.Setenv("STARGAZER_API__BASE_URL", "https://env.example.com")
	t.Setenv("STARGAZER_LOG__LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("env should beat file, got %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stargazer.yaml")
	os.WriteFile(path, []byte("ui:\n  items_per_page: 0\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("items_per_page of 0 should be rejected")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("an explicitly named missing file should be an error")
	}
}
