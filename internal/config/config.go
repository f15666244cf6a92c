// Package config holds the settings for one grepview session: where to
// search, what to skip, and how much to show.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the optional per-project configuration file, looked up at the
// project root.
const FileName = ".grepview.toml"

type Config struct {
	Root string `toml:"-"`

	// Include and Exclude are glob patterns matched against relative
	// slash paths and base names. Empty Include means everything.
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`

	// MaxFileSize caps how large a file may be and still get scanned,
	// in bytes. 0 means no cap.
	MaxFileSize int64 `toml:"max_file_size"`

	// Workers bounds concurrent file loads.
	Workers int `toml:"workers"`

	// MaxResults caps how many matches the results panel renders. Every
	// file is still scanned and counted past the cap.
	MaxResults int `toml:"max_results"`

	// CacheSizeMB bounds the in-memory file text cache.
	CacheSizeMB int `toml:"cache_size_mb"`

	// Editor is the command used to open a match, falling back to
	// $EDITOR. It is invoked as `editor +LINE PATH`.
	Editor string `toml:"editor"`

	// Watch re-runs the current search when project files change.
	Watch bool `toml:"watch"`
}

func Default() Config {
	return Config{
		Root:        ".",
		MaxFileSize: 2 * 1024 * 1024,
		Workers:     8,
		MaxResults:  100,
		CacheSizeMB: 64,
	}
}

// Load returns the defaults overlaid with .grepview.toml from root, if one
// exists. A missing file is not an error; a malformed one is.
func Load(root string) (Config, error) {
	cfg := Default()
	cfg.Root = root

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", FileName, err)
	}
	cfg.Root = root
	return cfg, nil
}

func (c Config) Validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project root %s is not a directory", c.Root)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be at least 1, got %d", c.MaxResults)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}
	return nil
}

// EditorCommand resolves the editor to launch for a selected match.
func (c Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}
