// Package config loads application settings: defaults first, then an optional
// YAML file, then STARGAZER_* environment variables on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, first match wins
var DefaultConfigPaths = []string{
	"stargazer.yaml",
	"stargazer.yml",
}

// EnvPrefix is the prefix for environment overrides. Double underscores
// separate nesting levels, e.g. STARGAZER_API__BASE_URL maps to api.base_url.
const EnvPrefix = "STARGAZER_"

// Config is the full application configuration
type Config struct {
	API     APIConfig     `koanf:"api"`
	UI      UIConfig      `koanf:"ui"`
	Filters FiltersConfig `koanf:"filters"`
	Data    DataConfig    `koanf:"data"`
	Log     LogConfig     `koanf:"log"`
}

type APIConfig struct {
	BaseURL string `koanf:"base_url"`
	UserID  string `koanf:"user_id"`
}

type UIConfig struct {
	ItemsPerPage int `koanf:"items_per_page"`
	PageWindow   int `koanf:"page_window"`
}

type FiltersConfig struct {
	// SearchAffectsMarkers couples the list text search into marker
	// visibility. Off by default: searching narrows the list but keeps map
	// context.
	SearchAffectsMarkers bool   `koanf:"search_affects_markers"`
	DefaultTab           string `koanf:"default_tab"`
}

type DataConfig struct {
	Dir string `koanf:"dir"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func defaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			UserID:  "",
		},
		UI: UIConfig{
			ItemsPerPage: 10,
			PageWindow:   5,
		},
		Filters: FiltersConfig{
			SearchAffectsMarkers: false,
			DefaultTab:           "all",
		},
		Data: DataConfig{
			Dir: filepath.Join(home, ".local", "share", "stargazer"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration. An explicit path must exist; the
// default paths are optional.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else {
		for _, p := range DefaultConfigPaths {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", p, err)
			}
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.UI.ItemsPerPage < 1 {
		return nil, fmt.Errorf("ui.items_per_page must be at least 1, got %d", cfg.UI.ItemsPerPage)
	}
	if cfg.UI.PageWindow < 1 {
		return nil, fmt.Errorf("ui.page_window must be at least 1, got %d", cfg.UI.PageWindow)
	}
	return &cfg, nil
}
