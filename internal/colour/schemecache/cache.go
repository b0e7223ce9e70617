// Package schemecache persists generated schemes keyed by wallpaper content
// hash, so reapplying the same wallpaper skips sampling and generation.
package schemecache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmylchreest/imbue/internal/colour"
)

// Cache is a directory of scheme JSON files, one per wallpaper fingerprint.
type Cache struct {
	dir string
}

// DefaultCacheDir returns the default scheme cache directory path.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "imbue", "schemes"), nil
	}
	return filepath.Join(cacheDir, "imbue", "schemes"), nil
}

// New opens a cache rooted at dir, defaulting to the user cache directory.
func New(dir string) (*Cache, error) {
	if dir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = defaultDir
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root. Uninstall removes it wholesale.
func (c *Cache) Dir() string { return c.dir }

// Fingerprint hashes a wallpaper's full content. Equal bytes always map to
// the same fingerprint, which is what makes cached schemes and manifest
// records comparable across runs.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 - user-specified wallpaper path
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", hash.Sum(nil)[:16]), nil
}

// entry is the persisted cache record. Table carries colour.TableVersion so
// schemes generated under an older constant set read as misses.
type entry struct {
	Table  int           `json:"table"`
	Scheme colour.Scheme `json:"scheme"`
}

func (c *Cache) entryPath(fingerprint string) string {
	return filepath.Join(c.dir, fingerprint+".json")
}

// Load returns the cached scheme for a fingerprint. Absent, unreadable or
// stale entries report a miss, never an error: the cache is disposable and
// a miss just means regenerating.
func (c *Cache) Load(fingerprint string) (colour.Scheme, bool) {
	data, err := os.ReadFile(c.entryPath(fingerprint)) // #nosec G304 - path built from hex fingerprint
	if err != nil {
		return colour.Scheme{}, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return colour.Scheme{}, false
	}
	if e.Table != colour.TableVersion {
		return colour.Scheme{}, false
	}
	return e.Scheme, true
}

// Store writes a scheme under its fingerprint, creating the cache directory
// on first use.
func (c *Cache) Store(fingerprint string, scheme colour.Scheme) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil { // #nosec G301 - cache directory needs standard permissions
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(entry{Table: colour.TableVersion, Scheme: scheme}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scheme: %w", err)
	}
	if err := os.WriteFile(c.entryPath(fingerprint), data, 0o644); err != nil { // #nosec G306 - cache files need standard read permissions
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}
