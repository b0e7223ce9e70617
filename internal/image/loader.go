// Package image loads wallpaper images and reduces them to the weighted
// colour samples the palette generator consumes.
package image

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format
)

// supportedExtensions lists the raster formats the blank imports above
// register, lowercased the way filepath.Ext reports them.
var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Loader turns a wallpaper path into a decoded image.
type Loader interface {
	Load(path string) (image.Image, error)
}

// FileLoader reads wallpapers from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a filesystem-backed Loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load decodes the image at path. Every failure comes back as a
// *ReadError so callers treat wallpaper problems uniformly.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, NewReadError(path, fmt.Errorf("empty wallpaper path"))
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil, NewReadError(path, fmt.Errorf("no such file"))
	case err != nil:
		return nil, NewReadError(path, err)
	case info.IsDir():
		return nil, NewReadError(path, fmt.Errorf("path is a directory, not an image"))
	}

	file, err := os.Open(path) // #nosec G304 - wallpaper path chosen by the user
	if err != nil {
		return nil, NewReadError(path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, NewReadError(path, fmt.Errorf("decode (format %q): %w", format, err))
	}
	return img, nil
}

// ResolveWallpaper turns a user-supplied wallpaper argument into a
// concrete file path. A directory yields one of the image files directly
// inside it, chosen at random, so a wallpaper collection can be pointed
// at as a whole. Anything else passes through untouched; the sampler
// reports precise errors for paths that turn out to be unreadable.
func ResolveWallpaper(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path, nil
	}

	files, err := listImages(path)
	if err != nil {
		return "", err
	}
	return files[rand.IntN(len(files))], nil
}

// listImages collects the image files directly inside dir. Symlinks are
// followed, subdirectories and unreadable entries are skipped.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewReadError(dir, err)
	}

	var files []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		if slices.Contains(supportedExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			files = append(files, full)
		}
	}

	if len(files) == 0 {
		return nil, NewReadError(dir, fmt.Errorf("no image files in directory"))
	}
	return files, nil
}
