// Package compression unpacks template pack archives.
package compression

import (
	"fmt"
	"sort"
	"strings"
)

// maxDecompressedSize bounds each extracted file so a crafted archive
// cannot fill the disk.
const maxDecompressedSize = 100 * 1024 * 1024

// ExtractResult lists what an archive unpacked to.
type ExtractResult struct {
	// Files are the written paths, sorted.
	Files []string
}

// ExtractPack unpacks a template pack archive into destDir. The format
// is chosen by filename extension. Entry paths are validated against
// directory traversal, and only regular files are written.
func ExtractPack(data []byte, filename, destDir string) (*ExtractResult, error) {
	lower := strings.ToLower(filename)

	var (
		result *ExtractResult
		err    error
	)
	switch {
	case strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz"):
		result, err = extractTarGz(data, destDir)
	case strings.HasSuffix(lower, ".tar.xz") || strings.HasSuffix(lower, ".txz"):
		result, err = extractTarXz(data, destDir)
	case strings.HasSuffix(lower, ".tar.bz2") || strings.HasSuffix(lower, ".tbz2"):
		result, err = extractTarBz2(data, destDir)
	case strings.HasSuffix(lower, ".zip"):
		result, err = extractZip(data, destDir)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s (supported: .tar.gz, .tgz, .tar.xz, .tar.bz2, .zip)", filename)
	}
	if err != nil {
		return nil, err
	}

	if len(result.Files) == 0 {
		return nil, fmt.Errorf("no files found in archive")
	}
	sort.Strings(result.Files)
	return result, nil
}
