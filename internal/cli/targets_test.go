package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/imbue/internal/config"
	"github.com/jmylchreest/imbue/internal/target"
)

func TestTargetState(t *testing.T) {
	registry := target.NewRegistry()
	get := func(name string) target.Target {
		tgt, ok := registry.Get(name)
		if !ok {
			t.Fatalf("target %s not registered", name)
		}
		return tgt
	}

	tests := []struct {
		name   string
		target string
		cfg    config.Config
		want   string
	}{
		{
			name:   "core target",
			target: "gtk3",
			want:   "core",
		},
		{
			name:   "optional default off",
			target: "spotify",
			want:   "disabled",
		},
		{
			name:   "optional switched on",
			target: "vivaldi",
			cfg:    config.Config{Targets: config.TargetPrefs{Vivaldi: true}},
			want:   "enabled",
		},
		{
			name:   "obsidian without vault",
			target: "obsidian",
			cfg:    config.Config{Targets: config.TargetPrefs{Obsidian: true}},
			want:   "enabled, no vault",
		},
		{
			name:   "obsidian with vault",
			target: "obsidian",
			cfg:    config.Config{Targets: config.TargetPrefs{Obsidian: true, ObsidianVault: "/home/test/vault"}},
			want:   "enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := targetState(get(tt.target), &tt.cfg); got != tt.want {
				t.Errorf("targetState(%s) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestResolveTemplateLoadersAll(t *testing.T) {
	loaders, err := resolveTemplateLoaders(nil, "")
	if err != nil {
		t.Fatalf("resolveTemplateLoaders: %v", err)
	}

	names := make(map[string]bool, len(loaders))
	for _, tt := range loaders {
		names[tt.name] = true
	}
	if !names["gtk3"] || !names["discord"] {
		t.Errorf("loaders missing expected targets: %v", names)
	}
	if names["gnome-terminal"] {
		t.Error("gnome-terminal has no templates and should be left out")
	}
	if want := len(target.NewRegistry().Names()) - 1; len(loaders) != want {
		t.Errorf("got %d loaders, want %d (all targets except gnome-terminal)", len(loaders), want)
	}
}

func TestResolveTemplateLoadersUnknownTarget(t *testing.T) {
	_, err := resolveTemplateLoaders([]string{"winamp"}, "")
	if err == nil || !strings.Contains(err.Error(), "unknown target: winamp") {
		t.Errorf("error = %v, want unknown target", err)
	}
}

func TestResolveTemplateLoadersExplicitNoTemplates(t *testing.T) {
	_, err := resolveTemplateLoaders([]string{"gnome-terminal"}, "")
	if err == nil || !strings.Contains(err.Error(), "has no templates") {
		t.Errorf("error = %v, want no-templates error", err)
	}
}
