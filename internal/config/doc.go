// Package config loads editor settings from a single TOML file and can
// watch it for live reload. Absent or broken files fall back to defaults;
// configuration never stops the editor from starting.
package config
