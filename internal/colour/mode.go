package colour

import "fmt"

// ThemeMode selects which half of a Scheme drives rendering.
type ThemeMode int

const (
	ModeDark ThemeMode = iota
	ModeLight
)

// String returns the mode name used on the CLI and in persisted state.
func (m ThemeMode) String() string {
	switch m {
	case ModeDark:
		return "dark"
	case ModeLight:
		return "light"
	default:
		return "unknown"
	}
}

// ParseThemeMode parses a CLI or persisted mode name.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch s {
	case "dark":
		return ModeDark, nil
	case "light":
		return ModeLight, nil
	default:
		return ModeDark, fmt.Errorf("invalid theme mode %q (must be dark or light)", s)
	}
}
