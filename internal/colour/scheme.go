package colour

import (
	"encoding/json"
	"fmt"
)

// Role is a semantic colour slot consumed by templates. The set is closed:
// roles are addressed by this enum, never by free-form strings, so a Scheme
// cannot be missing one.
type Role int

const (
	RolePrimary Role = iota
	RoleOnPrimary
	RolePrimaryContainer
	RoleOnPrimaryContainer
	RoleSecondary
	RoleOnSecondary
	RoleSecondaryContainer
	RoleOnSecondaryContainer
	RoleTertiary
	RoleOnTertiary
	RoleTertiaryContainer
	RoleOnTertiaryContainer
	RoleError
	RoleOnError
	RoleErrorContainer
	RoleOnErrorContainer
	RoleBackground
	RoleOnBackground
	RoleSurface
	RoleOnSurface
	RoleSurfaceVariant
	RoleOnSurfaceVariant
	RoleOutline
	RoleOutlineVariant
	RoleShadow
	RoleScrim
	RoleInverseSurface
	RoleInverseOnSurface
	RoleInversePrimary

	RoleCount
)

// roleNames are the template-facing names, index-aligned with the Role
// constants.
var roleNames = [RoleCount]string{
	"primary", "onPrimary", "primaryContainer", "onPrimaryContainer",
	"secondary", "onSecondary", "secondaryContainer", "onSecondaryContainer",
	"tertiary", "onTertiary", "tertiaryContainer", "onTertiaryContainer",
	"error", "onError", "errorContainer", "onErrorContainer",
	"background", "onBackground", "surface", "onSurface",
	"surfaceVariant", "onSurfaceVariant", "outline", "outlineVariant",
	"shadow", "scrim", "inverseSurface", "inverseOnSurface", "inversePrimary",
}

// String returns the template-facing role name.
func (r Role) String() string {
	if r < 0 || r >= RoleCount {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

var rolesByName = func() map[string]Role {
	m := make(map[string]Role, RoleCount)
	for r := Role(0); r < RoleCount; r++ {
		m[roleNames[r]] = r
	}
	return m
}()

// RoleFromName resolves a template token's role name.
func RoleFromName(name string) (Role, bool) {
	r, ok := rolesByName[name]
	return r, ok
}

// Roles iterates the closed role set in declaration order.
func Roles(yield func(Role) bool) {
	for r := Role(0); r < RoleCount; r++ {
		if !yield(r) {
			return
		}
	}
}

// paletteRef names one of the six core tonal palettes in a tone table row.
type paletteRef int

const (
	palA1 paletteRef = iota
	palA2
	palA3
	palN1
	palN2
	palErr
)

type roleTone struct {
	pal  paletteRef
	tone float64
}

// Tone tables: one (palette, tone) pair per role per mode. Fixed lookup
// tables, covered by TableVersion.
var lightTones = [RoleCount]roleTone{
	RolePrimary:              {palA1, 40},
	RoleOnPrimary:            {palA1, 100},
	RolePrimaryContainer:     {palA1, 90},
	RoleOnPrimaryContainer:   {palA1, 10},
	RoleSecondary:            {palA2, 40},
	RoleOnSecondary:          {palA2, 100},
	RoleSecondaryContainer:   {palA2, 90},
	RoleOnSecondaryContainer: {palA2, 10},
	RoleTertiary:             {palA3, 40},
	RoleOnTertiary:           {palA3, 100},
	RoleTertiaryContainer:    {palA3, 90},
	RoleOnTertiaryContainer:  {palA3, 10},
	RoleError:                {palErr, 40},
	RoleOnError:              {palErr, 100},
	RoleErrorContainer:       {palErr, 90},
	RoleOnErrorContainer:     {palErr, 10},
	RoleBackground:           {palN1, 99},
	RoleOnBackground:         {palN1, 10},
	RoleSurface:              {palN1, 99},
	RoleOnSurface:            {palN1, 10},
	RoleSurfaceVariant:       {palN2, 90},
	RoleOnSurfaceVariant:     {palN2, 30},
	RoleOutline:              {palN2, 50},
	RoleOutlineVariant:       {palN2, 80},
	RoleShadow:               {palN1, 0},
	RoleScrim:                {palN1, 0},
	RoleInverseSurface:       {palN1, 20},
	RoleInverseOnSurface:     {palN1, 95},
	RoleInversePrimary:       {palA1, 80},
}

var darkTones = [RoleCount]roleTone{
	RolePrimary:              {palA1, 80},
	RoleOnPrimary:            {palA1, 20},
	RolePrimaryContainer:     {palA1, 30},
	RoleOnPrimaryContainer:   {palA1, 90},
	RoleSecondary:            {palA2, 80},
	RoleOnSecondary:          {palA2, 20},
	RoleSecondaryContainer:   {palA2, 30},
	RoleOnSecondaryContainer: {palA2, 90},
	RoleTertiary:             {palA3, 80},
	RoleOnTertiary:           {palA3, 20},
	RoleTertiaryContainer:    {palA3, 30},
	RoleOnTertiaryContainer:  {palA3, 90},
	RoleError:                {palErr, 80},
	RoleOnError:              {palErr, 20},
	RoleErrorContainer:       {palErr, 30},
	RoleOnErrorContainer:     {palErr, 80},
	RoleBackground:           {palN1, 10},
	RoleOnBackground:         {palN1, 90},
	RoleSurface:              {palN1, 10},
	RoleOnSurface:            {palN1, 90},
	RoleSurfaceVariant:       {palN2, 30},
	RoleOnSurfaceVariant:     {palN2, 80},
	RoleOutline:              {palN2, 60},
	RoleOutlineVariant:       {palN2, 30},
	RoleShadow:               {palN1, 0},
	RoleScrim:                {palN1, 0},
	RoleInverseSurface:       {palN1, 90},
	RoleInverseOnSurface:     {palN1, 20},
	RoleInversePrimary:       {palA1, 40},
}

// Scheme is the full set of role colours derived from one seed, covering
// both display modes so a renderer can serve either without re-sampling.
type Scheme struct {
	Seed  ARGB
	Dark  [RoleCount]ARGB
	Light [RoleCount]ARGB
}

// SchemeFromSeed expands a seed colour into the complete scheme.
func SchemeFromSeed(seed ARGB) Scheme {
	core := newCorePalette(seed)
	pick := func(ref paletteRef) TonalPalette {
		switch ref {
		case palA1:
			return core.a1
		case palA2:
			return core.a2
		case palA3:
			return core.a3
		case palN1:
			return core.n1
		case palN2:
			return core.n2
		default:
			return core.err
		}
	}
	s := Scheme{Seed: seed}
	for r := Role(0); r < RoleCount; r++ {
		lt := lightTones[r]
		dt := darkTones[r]
		s.Light[r] = pick(lt.pal).Tone(lt.tone)
		s.Dark[r] = pick(dt.pal).Tone(dt.tone)
	}
	return s
}

// Colour returns the role colour for the given mode.
func (s Scheme) Colour(role Role, mode ThemeMode) ARGB {
	if mode == ModeLight {
		return s.Light[role]
	}
	return s.Dark[role]
}

// schemeJSON is the persisted form: hex strings keyed by role name, which
// keeps cache files and exports human-inspectable.
type schemeJSON struct {
	Seed  string            `json:"seed"`
	Dark  map[string]string `json:"dark"`
	Light map[string]string `json:"light"`
}

// MarshalJSON encodes the scheme with hex strings keyed by role name.
func (s Scheme) MarshalJSON() ([]byte, error) {
	out := schemeJSON{
		Seed:  s.Seed.Hex(),
		Dark:  make(map[string]string, RoleCount),
		Light: make(map[string]string, RoleCount),
	}
	for r := Role(0); r < RoleCount; r++ {
		out.Dark[r.String()] = s.Dark[r].Hex()
		out.Light[r.String()] = s.Light[r].Hex()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a persisted scheme, requiring every role in both
// modes; a missing role means the file predates the current role set.
func (s *Scheme) UnmarshalJSON(data []byte) error {
	var in schemeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	seed, err := ParseHex(in.Seed)
	if err != nil {
		return fmt.Errorf("scheme seed: %w", err)
	}
	s.Seed = seed
	for r := Role(0); r < RoleCount; r++ {
		name := r.String()
		darkHex, ok := in.Dark[name]
		if !ok {
			return fmt.Errorf("scheme missing dark role %q", name)
		}
		lightHex, ok := in.Light[name]
		if !ok {
			return fmt.Errorf("scheme missing light role %q", name)
		}
		if s.Dark[r], err = ParseHex(darkHex); err != nil {
			return fmt.Errorf("dark role %q: %w", name, err)
		}
		if s.Light[r], err = ParseHex(lightHex); err != nil {
			return fmt.Errorf("light role %q: %w", name, err)
		}
	}
	return nil
}
