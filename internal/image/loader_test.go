package image

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestResolveWallpaperFilePassthrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	writePNG(t, path)

	got, err := ResolveWallpaper(path)
	if err != nil {
		t.Fatalf("ResolveWallpaper() error = %v", err)
	}
	if got != path {
		t.Errorf("ResolveWallpaper() = %q, want %q", got, path)
	}
}

func TestResolveWallpaperMissingPassthrough(t *testing.T) {
	// Nonexistent paths flow through so the sampler reports the error.
	path := filepath.Join(t.TempDir(), "absent.png")
	got, err := ResolveWallpaper(path)
	if err != nil {
		t.Fatalf("ResolveWallpaper() error = %v", err)
	}
	if got != path {
		t.Errorf("ResolveWallpaper() = %q, want %q", got, path)
	}
}

func TestResolveWallpaperPicksFromDirectory(t *testing.T) {
	dir := t.TempDir()
	members := map[string]bool{}
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		path := filepath.Join(dir, name)
		writePNG(t, path)
		members[path] = true
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		got, err := ResolveWallpaper(dir)
		if err != nil {
			t.Fatalf("ResolveWallpaper() error = %v", err)
		}
		if !members[got] {
			t.Fatalf("ResolveWallpaper() = %q, not an image in the directory", got)
		}
	}
}

func TestResolveWallpaperEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ResolveWallpaper(dir)
	if err == nil {
		t.Fatal("ResolveWallpaper() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "no image files") {
		t.Errorf("error = %v, want mention of missing image files", err)
	}
}
