// Package config loads the optional imbue configuration file and the
// last-run state used to replay an apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the user configuration. Every field is optional; a missing
// file yields the defaults.
type Config struct {
	// Mode is the default theme mode when the CLI flag is absent:
	// "dark" or "light".
	Mode string `yaml:"mode"`
	// SetWallpaper controls whether apply also sets the desktop
	// wallpaper keys. Defaults to true.
	SetWallpaper *bool `yaml:"set_wallpaper"`
	// Targets enables the optional targets.
	Targets TargetPrefs `yaml:"targets"`
}

// TargetPrefs switches the optional targets on. Core desktop targets are
// always enabled and have no preference here.
type TargetPrefs struct {
	Spotify  bool `yaml:"spotify"`
	Discord  bool `yaml:"discord"`
	VSCode   bool `yaml:"vscode"`
	Obsidian bool `yaml:"obsidian"`
	Vivaldi  bool `yaml:"vivaldi"`
	// ObsidianVault is the vault root the obsidian target writes into.
	ObsidianVault string `yaml:"obsidian_vault"`
}

// Enabled reports whether an optional target is switched on. Unknown
// names are treated as core targets and are always enabled.
func (p TargetPrefs) Enabled(name string) bool {
	switch name {
	case "spotify":
		return p.Spotify
	case "discord":
		return p.Discord
	case "vscode":
		return p.VSCode
	case "obsidian":
		return p.Obsidian
	case "vivaldi":
		return p.Vivaldi
	default:
		return true
	}
}

// WallpaperEnabled reports whether apply should set the desktop
// wallpaper keys.
func (c *Config) WallpaperEnabled() bool {
	return c.SetWallpaper == nil || *c.SetWallpaper
}

// DefaultConfigPath returns ~/.config/imbue/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "imbue", "config.yaml"), nil
}

// Load reads the configuration from path, falling back to the default
// location when path is empty. A missing file is not an error: the
// defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	path = expandPath(path)

	var config Config
	data, err := os.ReadFile(path) // #nosec G304 - user-specified config file, intended to be read
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&config)
			return &config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// applyDefaults fills zero values with their defaults.
func applyDefaults(config *Config) {
	if config.SetWallpaper == nil {
		enabled := true
		config.SetWallpaper = &enabled
	}
	config.Targets.ObsidianVault = expandPath(config.Targets.ObsidianVault)
}

// validateConfig rejects values that cannot be acted on. Note an enabled
// obsidian target without a vault is valid here; apply reports it as a
// skip instead.
func validateConfig(config *Config) error {
	switch config.Mode {
	case "", "dark", "light":
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", "dark", "light", config.Mode)
	}
	return nil
}

// expandPath expands a leading ~/ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
