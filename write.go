package plugincache

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes c and writes the result to path.
//
// Uses atomic writes (temp file + rename) so a failure never leaves a
// partial cache file at path. The parent directory must exist.
func WriteFile(c *Cache, path string) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write cache file %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic stages data in a temp file beside target and renames
// it into place, so target either keeps its old content or holds the
// complete new bytes. The temp file is removed on every failure path.
func writeFileAtomic(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".plugincache-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		if writeErr != nil {
			return writeErr
		}
		return closeErr
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
