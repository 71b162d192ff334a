package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDirectoryExist creates dirPath and any missing parents.
func EnsureDirectoryExist(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dirPath, err)
	}
	return nil
}

// dirSize sums the sizes of the regular files directly under path.
// Subdirectories are not traversed, and the metadata sidecar is not
// counted: the recorded size covers the copied store files only, so
// verification can recompute it and compare.
func dirSize(path string) (uint64, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, fmt.Errorf("read directory %q: %w", path, err)
	}
	var total uint64
	for _, entry := range entries {
		if !entry.Type().IsRegular() || entry.Name() == MetadataFilename {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return 0, fmt.Errorf("stat %q: %w", filepath.Join(path, entry.Name()), err)
		}
		total += uint64(info.Size())
	}
	return total, nil
}

// copyFile copies src to dst byte for byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %q to %q: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %q: %w", dst, err)
	}
	return nil
}
