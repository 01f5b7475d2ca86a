package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds editor settings loaded from a TOML file.
type Config struct {
	// UndoCapacity is the number of document snapshots kept for undo.
	UndoCapacity int `toml:"undo_capacity"`
	// IndentStep is the number of spaces one list indent level adds.
	IndentStep int `toml:"indent_step"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// PluginDir is where Lua filter scripts are loaded from.
	PluginDir string `toml:"plugin_dir"`
	// AutoSave saves the document whenever focus leaves a block.
	AutoSave bool `toml:"auto_save"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UndoCapacity: 5,
		IndentStep:   2,
		LogLevel:     "info",
	}
}

// Load reads configuration from a TOML file, layered over the defaults.
// A missing file is not an error: the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg.sanitized(), nil
}

// sanitized clamps nonsense values back to defaults.
func (c Config) sanitized() Config {
	def := Default()
	if c.UndoCapacity <= 0 {
		c.UndoCapacity = def.UndoCapacity
	}
	if c.IndentStep <= 0 {
		c.IndentStep = def.IndentStep
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = def.LogLevel
	}
	return c
}
