// Package apply orchestrates a theme run: scheme generation, template
// rendering, destination writes, activation and the manifest that makes
// every run revertible.
package apply

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// manifestVersion is the on-disk format version. Bump only with a
// migration path in ReadManifest.
const manifestVersion = 1

// BackupSuffix is appended to a pre-existing file displaced by a write.
// Uninstall renames the backup over the destination again.
const BackupSuffix = ".imbue-backup"

// Manifest records one apply run: what was written and which desktop
// keys were touched. The format is plain tab-separated text so a user
// can read and, at worst, hand-edit it.
type Manifest struct {
	RunID       string
	Fingerprint string
	Mode        string
	Wallpaper   string
	AppliedAt   time.Time
	Files       []FileRecord
	Settings    []SettingRecord
}

// FileRecord is one written destination. Backup marks that a displaced
// original exists next to it under BackupSuffix.
type FileRecord struct {
	Target string
	Path   string
	Backup bool
}

// SettingRecord is one desktop key written during activation.
type SettingRecord struct {
	Target string
	Key    string
}

// OwnedFiles indexes the manifest's file records by path.
func (m *Manifest) OwnedFiles() map[string]FileRecord {
	owned := make(map[string]FileRecord, len(m.Files))
	for _, f := range m.Files {
		owned[f.Path] = f
	}
	return owned
}

// WriteManifest persists a manifest atomically: a temp file in the same
// directory, then a rename. A crash leaves either the old manifest or
// the new one, never a torn file.
func WriteManifest(path string, m *Manifest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "imbue-manifest\t%d\n", manifestVersion)
	fmt.Fprintf(&b, "run\t%s\n", m.RunID)
	fmt.Fprintf(&b, "scheme\t%s\n", m.Fingerprint)
	fmt.Fprintf(&b, "mode\t%s\n", m.Mode)
	fmt.Fprintf(&b, "wallpaper\t%s\n", m.Wallpaper)
	fmt.Fprintf(&b, "applied\t%s\n", m.AppliedAt.UTC().Format(time.RFC3339))
	for _, f := range m.Files {
		backup := "none"
		if f.Backup {
			backup = "backup"
		}
		fmt.Fprintf(&b, "file\t%s\t%s\t%s\n", f.Target, backup, f.Path)
	}
	for _, s := range m.Settings {
		fmt.Fprintf(&b, "setting\t%s\t%s\n", s.Target, s.Key)
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("failed to create manifest temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close manifest temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to commit manifest: %w", err)
	}
	return nil
}

// ReadManifest parses a manifest. A missing file surfaces as an
// os.IsNotExist error; damage surfaces as *ManifestCorruptError.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 - manifest under the user's own state dir
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, NewManifestCorruptError(path, 0, "empty file")
	}

	header := strings.Split(lines[0], "\t")
	if len(header) != 2 || header[0] != "imbue-manifest" {
		return nil, NewManifestCorruptError(path, 1, "missing imbue-manifest header")
	}
	if header[1] != fmt.Sprintf("%d", manifestVersion) {
		return nil, NewManifestCorruptError(path, 1, fmt.Sprintf("unsupported version %q", header[1]))
	}

	m := &Manifest{}
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "run", "scheme", "mode", "wallpaper", "applied":
			if len(fields) != 2 {
				return nil, NewManifestCorruptError(path, lineNo, fmt.Sprintf("%s record needs one value", fields[0]))
			}
			switch fields[0] {
			case "run":
				m.RunID = fields[1]
			case "scheme":
				m.Fingerprint = fields[1]
			case "mode":
				m.Mode = fields[1]
			case "wallpaper":
				m.Wallpaper = fields[1]
			case "applied":
				at, err := time.Parse(time.RFC3339, fields[1])
				if err != nil {
					return nil, NewManifestCorruptError(path, lineNo, "unparseable applied timestamp")
				}
				m.AppliedAt = at
			}
		case "file":
			if len(fields) != 4 || (fields[2] != "none" && fields[2] != "backup") {
				return nil, NewManifestCorruptError(path, lineNo, "malformed file record")
			}
			if !filepath.IsAbs(fields[3]) {
				return nil, NewManifestCorruptError(path, lineNo, "file record path is not absolute")
			}
			m.Files = append(m.Files, FileRecord{Target: fields[1], Backup: fields[2] == "backup", Path: fields[3]})
		case "setting":
			if len(fields) != 3 {
				return nil, NewManifestCorruptError(path, lineNo, "malformed setting record")
			}
			m.Settings = append(m.Settings, SettingRecord{Target: fields[1], Key: fields[2]})
		default:
			return nil, NewManifestCorruptError(path, lineNo, fmt.Sprintf("unknown record type %q", fields[0]))
		}
	}
	return m, nil
}
