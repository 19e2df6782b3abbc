// Package config loads aptgraph settings from an optional TOML file at
// ~/.config/aptgraph/config.toml. Command-line flags override file values;
// file values override the built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults used when neither the config file nor a flag sets a value.
const (
	DefaultRepo      = "http://archive.ubuntu.com/ubuntu"
	DefaultSuite     = "jammy"
	DefaultComponent = "main"
	DefaultArch      = "amd64"
	DefaultMaxDepth  = 5
)

// Config holds the settings the resolve command starts from.
type Config struct {
	Repo      string `toml:"repo"`       // Repository base URL or local index path
	Suite     string `toml:"suite"`      // Distribution suite
	Component string `toml:"component"`  // Repository component
	Arch      string `toml:"arch"`       // Binary architecture
	MaxDepth  int    `toml:"max_depth"`  // Traversal depth limit
	CacheDir  string `toml:"cache_dir"`  // HTTP cache directory ("" = default)
	CacheTTL  string `toml:"cache_ttl"`  // HTTP cache TTL as a duration string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Repo:      DefaultRepo,
		Suite:     DefaultSuite,
		Component: DefaultComponent,
		Arch:      DefaultArch,
		MaxDepth:  DefaultMaxDepth,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "aptgraph", "config.toml"), nil
}

// Load reads the config file at path, merged over the defaults. An empty
// path selects the default location. A missing file is not an error: the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	cfg := c
	if cfg.Repo == "" {
		cfg.Repo = DefaultRepo
	}
	if cfg.Suite == "" {
		cfg.Suite = DefaultSuite
	}
	if cfg.Component == "" {
		cfg.Component = DefaultComponent
	}
	if cfg.Arch == "" {
		cfg.Arch = DefaultArch
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}
