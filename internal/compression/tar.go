package compression

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/imbue/internal/security"
)

// extractTarGz unpacks a gzip-compressed tar archive.
func extractTarGz(data []byte, destDir string) (*ExtractResult, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	return extractTar(tar.NewReader(gzr), destDir)
}

// extractTarXz unpacks an xz-compressed tar archive.
func extractTarXz(data []byte, destDir string) (*ExtractResult, error) {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	return extractTar(tar.NewReader(xzr), destDir)
}

// extractTarBz2 unpacks a bzip2-compressed tar archive.
func extractTarBz2(data []byte, destDir string) (*ExtractResult, error) {
	return extractTar(tar.NewReader(bzip2.NewReader(bytes.NewReader(data))), destDir)
}

// extractTar writes every regular file in the archive under destDir.
// Directories materialise through their files; anything that is not a
// regular file (symlinks, devices) stays out of the config directory.
func extractTar(tr *tar.Reader, destDir string) (*ExtractResult, error) {
	result := &ExtractResult{}

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		path, err := writeEntry(destDir, header.Name, tr)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	return result, nil
}

// writeEntry validates one archive path and streams its content to disk,
// bounded by maxDecompressedSize.
func writeEntry(destDir, name string, r io.Reader) (string, error) {
	if err := security.ValidateFilePath(name, destDir); err != nil {
		return "", fmt.Errorf("rejecting archive entry %q: %w", name, err)
	}

	destPath := filepath.Join(destDir, name)
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", filepath.Dir(destPath), err)
	}

	out, err := os.Create(destPath) // #nosec G304 - path validated against destDir above
	if err != nil {
		return "", fmt.Errorf("failed to create %q: %w", destPath, err)
	}

	limited := security.NewLimitedReader(r, maxDecompressedSize)
	_, copyErr := io.Copy(out, limited)
	closeErr := out.Close()

	if copyErr != nil {
		return "", fmt.Errorf("failed to extract %q: %w", destPath, copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close %q: %w", destPath, closeErr)
	}

	return destPath, nil
}
