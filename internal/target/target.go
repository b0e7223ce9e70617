// Package target enumerates the applications imbue can theme. Each target
// maps template files to destination paths and declares the activation
// steps that make the written theme take effect. The set is static and
// versioned with the binary; there is no runtime discovery.
package target

import (
	"errors"
	"path/filepath"

	"github.com/jmylchreest/imbue/internal/colour"
	imbueimage "github.com/jmylchreest/imbue/internal/image"
)

// Env carries the per-apply inputs a target needs to resolve its file
// destinations and activation values.
type Env struct {
	Mode      colour.ThemeMode
	Scheme    colour.Scheme
	Stats     imbueimage.Stats
	Wallpaper string
	// Home is the resolved home directory; destinations are always
	// absolute by the time they leave a target.
	Home string
	// ObsidianVault is the configured vault root, empty when unset.
	ObsidianVault string
}

// FileSpec pairs one template file with the destination it renders to.
type FileSpec struct {
	// Template is the filename within the target's template directory.
	Template string
	// Destination is the absolute output path.
	Destination string
}

// Activation is one post-write step: either a desktop setting write or a
// reload hook. Exactly one of the two shapes is populated.
type Activation struct {
	// Key and Value describe a setting write. Key doubles as the manifest
	// record for the later Reset.
	Key   string
	Value string
	// Hook describes a reload-style step instead of a setting write.
	Hook *Hook
}

// IsSetting reports whether this activation is a setting write.
func (a Activation) IsSetting() bool { return a.Hook == nil }

// Hook is an external reload step. Argv runs a command when the binary is
// installed; SignalProcess instead sends SIGHUP to a running process.
// Either way, an unavailable subject skips the hook rather than failing
// the target.
type Hook struct {
	Name          string
	Argv          []string
	SignalProcess string
}

// ErrNotConfigured marks a target that needs configuration the user has
// not provided (for example the obsidian vault path). The orchestrator
// records these as skips, not failures.
var ErrNotConfigured = errors.New("target not configured")

// Target is one themed application: its template/output mapping and its
// activation steps.
type Target interface {
	// Name is the stable identifier used on the CLI, in configuration and
	// in the manifest.
	Name() string
	// Description is a one-line summary for listings.
	Description() string
	// Optional targets only apply when enabled in configuration.
	Optional() bool
	// Files resolves the (template, destination) pairs for this apply.
	// Returns ErrNotConfigured when required configuration is missing.
	Files(env Env) ([]FileSpec, error)
	// Activations resolves the post-write steps for this apply, in order.
	Activations(env Env) []Activation
}

// themeDirName is the mode-specific theme directory under
// ~/.local/share/themes. The "Imbue-" prefix is load-bearing: uninstall's
// conservative fallback only ever touches paths carrying it.
func themeDirName(mode colour.ThemeMode) string {
	if mode == colour.ModeLight {
		return "Imbue-light"
	}
	return "Imbue-dark"
}

// themeDir returns the installed theme directory for a mode.
func themeDir(home string, mode colour.ThemeMode) string {
	return filepath.Join(home, ".local", "share", "themes", themeDirName(mode))
}
