package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LastRun records the inputs of the most recent successful apply so a
// bare `imbue apply` can replay it.
type LastRun struct {
	Wallpaper string   `json:"wallpaper"`
	Mode      string   `json:"mode"`
	Targets   []string `json:"targets,omitempty"`
}

// StateDir returns the imbue state directory, honouring XDG_STATE_HOME
// and defaulting to ~/.local/state/imbue.
func StateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "imbue"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "imbue"), nil
}

// DefaultLastRunPath returns the last-run state file location.
func DefaultLastRunPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "last-run.json"), nil
}

// DefaultManifestPath returns the apply manifest location.
func DefaultManifestPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "manifest"), nil
}

// LoadLastRun reads the last-run state. A missing file surfaces as an
// os.IsNotExist error for the caller to turn into a friendly message.
func LoadLastRun(path string) (*LastRun, error) {
	data, err := os.ReadFile(path) // #nosec G304 - state file under the user's own state dir
	if err != nil {
		return nil, err
	}
	var run LastRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse last-run state: %w", err)
	}
	if run.Wallpaper == "" {
		return nil, fmt.Errorf("last-run state has no wallpaper")
	}
	return &run, nil
}

// SaveLastRun writes the last-run state, creating the state directory if
// needed.
func SaveLastRun(path string, run LastRun) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode last-run state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - state file, not a secret
		return fmt.Errorf("failed to write last-run state: %w", err)
	}
	return nil
}
