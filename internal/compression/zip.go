package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// extractZip writes every regular file in the archive under destDir.
func extractZip(data []byte, destDir string) (*ExtractResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	result := &ExtractResult{}
	for _, f := range zr.File {
		if !f.FileInfo().Mode().IsRegular() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %q in archive: %w", f.Name, err)
		}
		path, writeErr := writeEntry(destDir, f.Name, rc)
		closeErr := rc.Close()

		if writeErr != nil {
			return nil, writeErr
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to read %q in archive: %w", f.Name, closeErr)
		}
		result.Files = append(result.Files, path)
	}

	return result, nil
}
