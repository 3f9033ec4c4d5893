// Package store reads and writes the palette and project documents. Loaders
// always hand back something usable; the error only says why defaults were used.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	DefaultPalettePath = "knitting_settings.json"
	DefaultProjectPath = "knitting_pattern.json"
)

// writeAtomic writes data next to path under a unique temp name, then renames
// it into place so a crash never leaves a half-written document.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
