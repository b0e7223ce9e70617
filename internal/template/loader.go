package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCustomBase is the directory user template overrides live under,
// one subdirectory per target.
func DefaultCustomBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ".config", "imbue", "templates")
}

// Loader resolves a target's template files, preferring user overrides
// under <customBase>/<target>/ and falling back to the embedded copies.
type Loader struct {
	targetName string
	embedded   fs.FS
	customBase string
}

// NewLoader builds a Loader over a target's embedded template tree.
func NewLoader(targetName string, embedded fs.FS) *Loader {
	return &Loader{
		targetName: targetName,
		embedded:   embedded,
		customBase: DefaultCustomBase(),
	}
}

// WithCustomBase points override resolution at a different base directory.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// CustomDir is the directory this target's overrides live in.
func (l *Loader) CustomDir() string {
	return filepath.Join(l.customBase, l.targetName)
}

func (l *Loader) customPath(filename string) string {
	return filepath.Join(l.CustomDir(), filename)
}

// Load reads filename, trying the override first. fromCustom reports
// which source the bytes came from.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	if content, err := os.ReadFile(l.customPath(filename)); err == nil { // #nosec G304 - override path under the user's config dir
		return content, true, nil
	}

	content, err = fs.ReadFile(l.embedded, filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	return content, false, nil
}

// ListEmbedded walks the embedded tree and returns its .tmpl files.
func (l *Loader) ListEmbedded() ([]string, error) {
	var templates []string
	err := fs.WalkDir(l.embedded, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".tmpl") {
			templates = append(templates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return templates, nil
}

// OverrideExistsError reports dump destinations that already hold an
// override and were left untouched.
type OverrideExistsError struct {
	Paths []string
}

func (e *OverrideExistsError) Error() string {
	return fmt.Sprintf("override already exists (use --force to overwrite): %s",
		strings.Join(e.Paths, ", "))
}

// DumpTemplate copies one embedded template into the override directory.
// Without force, an existing override is an *OverrideExistsError.
func (l *Loader) DumpTemplate(filename string, force bool) error {
	content, err := fs.ReadFile(l.embedded, filename)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	dest := l.customPath(filename)
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return &OverrideExistsError{Paths: []string{dest}}
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", dest, err)
	}
	return nil
}

// DumpAllTemplates dumps every embedded template. Existing overrides are
// collected into one *OverrideExistsError while the rest are written, so
// a partial dump still reports everything it skipped.
func (l *Loader) DumpAllTemplates(force bool) ([]string, error) {
	templates, err := l.ListEmbedded()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var exists *OverrideExistsError
	for _, tmpl := range templates {
		err := l.DumpTemplate(tmpl, force)
		var oe *OverrideExistsError
		switch {
		case err == nil:
			dumped = append(dumped, l.customPath(tmpl))
		case errors.As(err, &oe):
			if exists == nil {
				exists = &OverrideExistsError{}
			}
			exists.Paths = append(exists.Paths, oe.Paths...)
		default:
			return dumped, err
		}
	}

	if exists != nil {
		return dumped, exists
	}
	return dumped, nil
}

// Info describes where one template resolves from.
type Info struct {
	Filename       string
	EmbeddedExists bool
	CustomExists   bool
	CustomPath     string
	UsingCustom    bool
}

// GetInfo reports the resolution state of one template.
func (l *Loader) GetInfo(filename string) Info {
	_, embeddedErr := fs.ReadFile(l.embedded, filename)
	_, customErr := os.Stat(l.customPath(filename))
	return Info{
		Filename:       filename,
		EmbeddedExists: embeddedErr == nil,
		CustomExists:   customErr == nil,
		CustomPath:     l.customPath(filename),
		UsingCustom:    customErr == nil,
	}
}
