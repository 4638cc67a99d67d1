// Package config is the startup configuration source: a TOML file in the
// user config directory, with SWB_* environment variables layered on
// top. It is read once at startup; there is no hot reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/vidyasagar/swb/internal/chrome"
)

const (
	dirName  = "swb"
	fileName = "config.toml"
)

// Config holds everything swb reads at startup. Bookmarks keep the
// nested [folder][entry][label,url] array shape of the on-disk format;
// Folders converts them to typed values.
type Config struct {
	StartPage    string       `toml:"start_page" envconfig:"START_PAGE"`
	SearchEngine string       `toml:"search_engine" envconfig:"SEARCH_ENGINE"`
	Local        bool         `toml:"local" envconfig:"LOCAL"`
	SyncURL      string       `toml:"sync_url" envconfig:"SYNC_URL"`
	Theme        string       `toml:"theme" envconfig:"THEME"`
	Bookmarks    [][][]string `toml:"bookmarks" ignored:"true"`
}

// Default returns the built-in configuration used when no file exists or
// the file cannot be read.
func Default() Config {
	return Config{
		StartPage:    "https://duckduckgo.com",
		SearchEngine: "https://html.duckduckgo.com/html/?q=" + chrome.SearchToken,
		Local:        false,
		SyncURL:      "",
		Theme:        "default",
	}
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// Load reads the config file at path and applies SWB_* environment
// overrides. Missing or malformed files are errors here; use
// LoadOrDefault for the absorbing variant.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := envconfig.Process("swb", &cfg); err != nil {
		return cfg, fmt.Errorf("applying env overrides: %w", err)
	}
	if !strings.Contains(cfg.SearchEngine, chrome.SearchToken) {
		return cfg, fmt.Errorf("search_engine %q is missing the %s token", cfg.SearchEngine, chrome.SearchToken)
	}
	return cfg, nil
}

// LoadOrDefault loads the config from the standard location, absorbing
// every failure into the built-in defaults with a logged warning. On
// first run it writes the default file so the user has something to
// edit.
func LoadOrDefault(log *zap.Logger) Config {
	path, err := Path()
	if err != nil {
		log.Warn("config dir unavailable, using defaults", zap.Error(err))
		return Default()
	}

	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = Default()
			if werr := cfg.Save(path); werr != nil {
				log.Warn("could not write default config", zap.String("path", path), zap.Error(werr))
			}
			// Env overrides still apply on a fresh install.
			if eerr := envconfig.Process("swb", &cfg); eerr != nil {
				log.Warn("bad env override ignored", zap.Error(eerr))
				cfg = Default()
			}
			return cfg
		}
		log.Warn("config unusable, using defaults", zap.String("path", path), zap.Error(err))
		return Default()
	}
	return cfg
}

// Save writes the config as TOML to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Folders converts the raw bookmark arrays into typed folders. An entry
// needs at least a label and a URL; shorter rows are silently skipped,
// malformed entries are defined as absent rather than erroneous.
func (c Config) Folders() []chrome.Folder {
	var folders []chrome.Folder
	for _, rawFolder := range c.Bookmarks {
		var folder chrome.Folder
		for _, entry := range rawFolder {
			if len(entry) < 2 {
				continue
			}
			folder = append(folder, chrome.Entry{Label: entry[0], URL: entry[1]})
		}
		folders = append(folders, folder)
	}
	return folders
}
