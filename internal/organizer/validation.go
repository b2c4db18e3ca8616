package organizer

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filesorter/internal/services"
)

// validateSource resolves the source root, symlinks included, and checks that
// it is a readable directory. Nothing is created.
func validateSource(root string) (string, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return "", services.Wrap(services.ErrInvalidSource, "validate", "check source", "source path is empty", nil)
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidSource, "validate", "resolve source", trimmed, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrInvalidSource, "validate", "check source", abs+" does not exist", err)
		}
		return "", services.Wrap(services.ErrInvalidSource, "validate", "check source", abs, err)
	}
	if !info.IsDir() {
		return "", services.Wrap(services.ErrInvalidSource, "validate", "check source", abs+" is not a directory", nil)
	}
	dir, err := os.Open(abs)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidSource, "validate", "open source", abs, err)
	}
	_, readErr := dir.ReadDir(1)
	_ = dir.Close()
	if readErr != nil && !errors.Is(readErr, io.EOF) {
		return "", services.Wrap(services.ErrInvalidSource, "validate", "read source", abs, readErr)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidSource, "validate", "resolve source links", abs, err)
	}
	return resolved, nil
}

// prepareDestination creates the destination root with its parents when
// missing and returns it with symlinks resolved. source must already be
// resolved so a destination linking to the source is caught.
func prepareDestination(root, source string) (string, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return "", services.Wrap(services.ErrInvalidDestination, "validate", "check destination", "destination path is empty", nil)
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidDestination, "validate", "resolve destination", trimmed, err)
	}
	if abs == source {
		return "", services.Wrap(services.ErrInvalidDestination, "validate", "check destination", "destination must differ from source", nil)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", services.Wrap(services.ErrInvalidDestination, "validate", "create destination", abs, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidDestination, "validate", "resolve destination links", abs, err)
	}
	if resolved == source {
		return "", services.Wrap(services.ErrInvalidDestination, "validate", "check destination",
			abs+" resolves to the source; destination must differ from source", nil)
	}
	return resolved, nil
}

// isWithin reports whether path lies strictly inside root.
func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
