package target

import (
	"path/filepath"
	"strconv"

	"github.com/jmylchreest/imbue/internal/colour"
)

type baseTarget struct {
	name        string
	description string
	optional    bool
}

func (b baseTarget) Name() string        { return b.name }
func (b baseTarget) Description() string { return b.description }
func (b baseTarget) Optional() bool      { return b.optional }

// gtkTarget themes GTK3 or GTK4 applications. The generated stylesheet is
// written both into the mode-specific theme directory and into the user's
// gtk config directory, so apps pick it up whether or not they honour the
// selected theme.
type gtkTarget struct {
	baseTarget
	// configDir is "gtk-3.0" or "gtk-4.0".
	configDir string
	// activating selects which of the two gtk targets owns the shared
	// desktop settings writes. Only one may, or the manifest would record
	// the same keys twice.
	activating bool
}

func newGTK3Target() *gtkTarget {
	return &gtkTarget{
		baseTarget: baseTarget{name: "gtk3", description: "GTK3 application theme"},
		configDir:  "gtk-3.0",
		activating: true,
	}
}

func newGTK4Target() *gtkTarget {
	return &gtkTarget{
		baseTarget: baseTarget{name: "gtk4", description: "GTK4 application theme"},
		configDir:  "gtk-4.0",
	}
}

func (t *gtkTarget) Files(env Env) ([]FileSpec, error) {
	return []FileSpec{
		{Template: "gtk.css.tmpl", Destination: filepath.Join(themeDir(env.Home, env.Mode), t.configDir, "gtk.css")},
		{Template: "gtk.css.tmpl", Destination: filepath.Join(env.Home, ".config", t.configDir, "gtk.css")},
	}, nil
}

func (t *gtkTarget) Activations(env Env) []Activation {
	if !t.activating {
		return nil
	}
	colourScheme := "prefer-dark"
	if env.Mode == colour.ModeLight {
		colourScheme = "default"
	}
	return []Activation{
		{Key: "org.gnome.desktop.interface color-scheme", Value: colourScheme},
		// Toggling through Adwaita forces GTK to re-read the theme even
		// when the name has not changed between runs.
		{Key: "org.gnome.desktop.interface gtk-theme", Value: "Adwaita"},
		{Key: "org.gnome.desktop.interface gtk-theme", Value: themeDirName(env.Mode)},
		{Hook: &Hook{Name: "xsettingsd", SignalProcess: "xsettingsd"}},
	}
}

// shellTarget themes GNOME Shell through the user-theme extension.
type shellTarget struct {
	baseTarget
}

func newShellTarget() *shellTarget {
	return &shellTarget{baseTarget{name: "gnome-shell", description: "GNOME Shell theme"}}
}

func (t *shellTarget) Files(env Env) ([]FileSpec, error) {
	return []FileSpec{
		{Template: "gnome-shell.css.tmpl", Destination: filepath.Join(themeDir(env.Home, env.Mode), "gnome-shell", "gnome-shell.css")},
	}, nil
}

func (t *shellTarget) Activations(env Env) []Activation {
	return []Activation{
		{Key: "org.gnome.shell.extensions.user-theme name", Value: themeDirName(env.Mode)},
	}
}

// terminalTarget recolours the default gnome-terminal profile in place.
// It writes no files; everything happens through profile settings. The
// "{profile}" placeholder is resolved to the default profile UUID by the
// activation sink.
type terminalTarget struct {
	baseTarget
}

func newTerminalTarget() *terminalTarget {
	return &terminalTarget{baseTarget{name: "gnome-terminal", description: "gnome-terminal profile colours"}}
}

func (t *terminalTarget) Files(Env) ([]FileSpec, error) { return nil, nil }

func (t *terminalTarget) Activations(env Env) []Activation {
	bg := env.Scheme.Colour(colour.RoleSurface, env.Mode)
	fg := env.Scheme.Colour(colour.RoleOnSurface, env.Mode)
	transparency := TerminalTransparency(env.Stats, env.Mode)
	return []Activation{
		{Key: terminalProfileKey("use-theme-colors"), Value: "false"},
		{Key: terminalProfileKey("background-color"), Value: bg.Hex()},
		{Key: terminalProfileKey("foreground-color"), Value: fg.Hex()},
		{Key: terminalProfileKey("use-transparent-background"), Value: "true"},
		{Key: terminalProfileKey("background-transparency-percent"), Value: strconv.Itoa(transparency)},
	}
}

func terminalProfileKey(key string) string {
	return "org.gnome.Terminal.Legacy.Profile:{profile} " + key
}

// fileTarget covers the targets that only write rendered files and rely
// on the application to pick them up, optionally followed by hooks.
type fileTarget struct {
	baseTarget
	files func(env Env) ([]FileSpec, error)
	hooks []Activation
}

func (t *fileTarget) Files(env Env) ([]FileSpec, error) { return t.files(env) }
func (t *fileTarget) Activations(Env) []Activation      { return t.hooks }

func newChromeTarget() *fileTarget {
	return &fileTarget{
		baseTarget: baseTarget{name: "chrome", description: "Chrome/Chromium accent stylesheet"},
		files: func(env Env) ([]FileSpec, error) {
			return []FileSpec{
				{Template: "imbue-theme.css.tmpl", Destination: filepath.Join(env.Home, ".config", "imbue", "chrome", "imbue-theme.css")},
			}, nil
		},
	}
}

func newSpotifyTarget() *fileTarget {
	return &fileTarget{
		baseTarget: baseTarget{name: "spotify", description: "Spotify theme via spicetify", optional: true},
		files: func(env Env) ([]FileSpec, error) {
			return []FileSpec{
				{Template: "color.ini.tmpl", Destination: filepath.Join(env.Home, ".config", "spicetify", "Themes", "Imbue", "color.ini")},
			}, nil
		},
		hooks: []Activation{
			{Hook: &Hook{Name: "spicetify", Argv: []string{"spicetify", "apply"}}},
		},
	}
}

func newDiscordTarget() *fileTarget {
	return &fileTarget{
		baseTarget: baseTarget{name: "discord", description: "BetterDiscord theme", optional: true},
		files: func(env Env) ([]FileSpec, error) {
			return []FileSpec{
				{Template: "imbue.theme.css.tmpl", Destination: filepath.Join(env.Home, ".config", "BetterDiscord", "themes", "imbue.theme.css")},
			}, nil
		},
	}
}

func newVSCodeTarget() *fileTarget {
	return &fileTarget{
		baseTarget: baseTarget{name: "vscode", description: "VS Code theme extension", optional: true},
		files: func(env Env) ([]FileSpec, error) {
			ext := filepath.Join(env.Home, ".vscode", "extensions", "imbue-theme")
			return []FileSpec{
				{Template: "package.json.tmpl", Destination: filepath.Join(ext, "package.json")},
				{Template: "imbue-color-theme.json.tmpl", Destination: filepath.Join(ext, "themes", "imbue-color-theme.json")},
			}, nil
		},
	}
}

func newObsidianTarget() *fileTarget {
	return &fileTarget{
		baseTarget: baseTarget{name: "obsidian", description: "Obsidian vault snippet", optional: true},
		files: func(env Env) ([]FileSpec, error) {
			if env.ObsidianVault == "" {
				return nil, ErrNotConfigured
			}
			return []FileSpec{
				{Template: "imbue.css.tmpl", Destination: filepath.Join(env.ObsidianVault, ".obsidian", "snippets", "imbue.css")},
			}, nil
		},
	}
}

func newVivaldiTarget() *fileTarget {
	return &fileTarget{
		baseTarget: baseTarget{name: "vivaldi", description: "Vivaldi custom UI stylesheet", optional: true},
		files: func(env Env) ([]FileSpec, error) {
			return []FileSpec{
				{Template: "imbue.css.tmpl", Destination: filepath.Join(env.Home, ".config", "imbue", "vivaldi", "imbue.css")},
			}, nil
		},
	}
}
