package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockpad.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
undo_capacity = 20
indent_step = 4
log_level = "debug"
plugin_dir = "/tmp/filters"
auto_save = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UndoCapacity != 20 || cfg.IndentStep != 4 {
		t.Errorf("numeric settings = %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.PluginDir != "/tmp/filters" || !cfg.AutoSave {
		t.Errorf("settings = %+v", cfg)
	}
}

func TestLoadSanitizesBadValues(t *testing.T) {
	path := writeConfig(t, `
undo_capacity = -3
indent_step = 0
log_level = "loud"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UndoCapacity != Default().UndoCapacity {
		t.Errorf("undo capacity = %d, want default", cfg.UndoCapacity)
	}
	if cfg.IndentStep != Default().IndentStep {
		t.Errorf("indent step = %d, want default", cfg.IndentStep)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, "not = [valid")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
