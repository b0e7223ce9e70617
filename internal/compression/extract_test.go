package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

type packEntry struct {
	name    string
	content string
}

func writeTarEntries(t *testing.T, w io.Writer, entries []packEntry) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.name,
			Mode:     0o644,
			Size:     int64(len(e.content)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing tar header %q: %v", e.name, err)
		}
		if _, err := tw.Write([]byte(e.content)); err != nil {
			t.Fatalf("writing tar entry %q: %v", e.name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar writer: %v", err)
	}
}

func tarGzPack(t *testing.T, entries []packEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	writeTarEntries(t, gzw, entries)
	if err := gzw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return buf.Bytes()
}

func tarXzPack(t *testing.T, entries []packEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	xzw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("creating xz writer: %v", err)
	}
	writeTarEntries(t, xzw, entries)
	if err := xzw.Close(); err != nil {
		t.Fatalf("closing xz writer: %v", err)
	}
	return buf.Bytes()
}

func zipPack(t *testing.T, entries []packEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("creating zip entry %q: %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			t.Fatalf("writing zip entry %q: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	return buf.Bytes()
}

var templatePack = []packEntry{
	{"gtk3/gtk.css.tmpl", "window { background-color: @{surface.hex}; }\n"},
	{"discord/imbue.theme.css.tmpl", ".theme-@{mode} { --accent: @{primary.hex}; }\n"},
}

func TestExtractPackFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		pack     func(*testing.T, []packEntry) []byte
	}{
		{name: "tar.gz", filename: "pack.tar.gz", pack: tarGzPack},
		{name: "tgz", filename: "pack.tgz", pack: tarGzPack},
		{name: "tar.xz", filename: "pack.tar.xz", pack: tarXzPack},
		{name: "zip", filename: "pack.zip", pack: zipPack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := t.TempDir()

			result, err := ExtractPack(tt.pack(t, templatePack), tt.filename, dest)
			if err != nil {
				t.Fatalf("ExtractPack: %v", err)
			}
			if len(result.Files) != 2 {
				t.Fatalf("extracted %d files, want 2: %v", len(result.Files), result.Files)
			}

			gtk := filepath.Join(dest, "gtk3", "gtk.css.tmpl")
			content, err := os.ReadFile(gtk)
			if err != nil {
				t.Fatalf("reading extracted file: %v", err)
			}
			if string(content) != templatePack[0].content {
				t.Errorf("extracted content = %q, want %q", content, templatePack[0].content)
			}

			// Files come back sorted.
			if result.Files[0] != filepath.Join(dest, "discord", "imbue.theme.css.tmpl") {
				t.Errorf("Files[0] = %q, want discord entry first", result.Files[0])
			}
		})
	}
}

func TestExtractPackRejectsTraversal(t *testing.T) {
	dest := t.TempDir()
	data := tarGzPack(t, []packEntry{
		{"../evil.tmpl", "outside\n"},
	})

	_, err := ExtractPack(data, "pack.tar.gz", dest)
	if err == nil {
		t.Fatal("ExtractPack accepted a traversal entry")
	}
	if !strings.Contains(err.Error(), "rejecting archive entry") {
		t.Errorf("error = %v, want a rejection naming the entry", err)
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(dest), "evil.tmpl")); !os.IsNotExist(statErr) {
		t.Error("traversal entry escaped the destination directory")
	}
}

func TestExtractPackSkipsNonRegularEntries(t *testing.T) {
	dest := t.TempDir()

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)
	if err := tw.WriteHeader(&tar.Header{Name: "gtk3", Typeflag: tar.TypeDir, Mode: 0o755}); err != nil {
		t.Fatalf("writing dir header: %v", err)
	}
	if err := tw.WriteHeader(&tar.Header{Name: "gtk3/link.tmpl", Typeflag: tar.TypeSymlink, Linkname: "/etc/passwd"}); err != nil {
		t.Fatalf("writing symlink header: %v", err)
	}
	content := "body {}\n"
	if err := tw.WriteHeader(&tar.Header{Name: "gtk3/gtk.css.tmpl", Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content))}); err != nil {
		t.Fatalf("writing file header: %v", err)
	}
	if _, err := tw.Write([]byte(content)); err != nil {
		t.Fatalf("writing file body: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar: %v", err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatalf("closing gzip: %v", err)
	}

	result, err := ExtractPack(buf.Bytes(), "pack.tar.gz", dest)
	if err != nil {
		t.Fatalf("ExtractPack: %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("extracted %d files, want only the regular one: %v", len(result.Files), result.Files)
	}
	if _, err := os.Lstat(filepath.Join(dest, "gtk3", "link.tmpl")); !os.IsNotExist(err) {
		t.Error("symlink entry was materialised")
	}
}

func TestExtractPackUnsupportedFormat(t *testing.T) {
	_, err := ExtractPack([]byte("not an archive"), "pack.rar", t.TempDir())
	if err == nil {
		t.Fatal("ExtractPack accepted an unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported archive format") || !strings.Contains(err.Error(), ".tar.gz") {
		t.Errorf("error = %v, want the supported format list", err)
	}
}

func TestExtractPackEmptyArchive(t *testing.T) {
	data := tarGzPack(t, nil)

	_, err := ExtractPack(data, "pack.tar.gz", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no files found in archive") {
		t.Errorf("error = %v, want no-files error", err)
	}
}
