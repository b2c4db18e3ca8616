package cleanup

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"filesorter/internal/logging"
)

// Result lists what a prune removed and what it could not.
type Result struct {
	Removed []string
	Errors  []Error
}

// Error pairs a directory path with the error that kept it in place.
type Error struct {
	Path string
	Err  error
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// PruneEmptyDirs removes each directory in emptied that has no entries left,
// then walks up through its ancestors below root doing the same. Directories
// outside root are ignored. Errors are collected rather than returned so one
// stubborn directory does not stop the rest.
func PruneEmptyDirs(ctx context.Context, root string, emptied []string, logger *slog.Logger) Result {
	var result Result

	root = strings.TrimSpace(root)
	if root == "" {
		return result
	}
	root = filepath.Clean(root)

	candidates := make(map[string]struct{})
	for _, dir := range emptied {
		for dir = filepath.Clean(dir); isBelow(root, dir); dir = filepath.Dir(dir) {
			candidates[dir] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(candidates))
	for dir := range candidates {
		ordered = append(ordered, dir)
	}
	// Deeper paths first; ties broken by name for a stable order.
	slices.SortFunc(ordered, func(a, b string) int {
		if c := cmp.Compare(depth(b), depth(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	for _, dir := range ordered {
		if ctx.Err() != nil {
			break
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				result.Errors = append(result.Errors, Error{Path: dir, Err: err})
			}
			continue
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			result.Errors = append(result.Errors, Error{Path: dir, Err: err})
			logging.WarnWithContext(logger, "empty directory not removed", "prune_failed",
				logging.String("path", dir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the source tree"),
				logging.String(logging.FieldImpact, "empty folder remains in the source"),
			)
			continue
		}
		result.Removed = append(result.Removed, dir)
		if logger != nil {
			logger.Debug("removed empty directory",
				logging.String("path", dir),
				logging.String(logging.FieldEventType, "dir_pruned"),
			)
		}
	}
	return result
}

// isBelow reports whether path lies strictly inside root.
func isBelow(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func depth(path string) int {
	return strings.Count(path, string(filepath.Separator))
}
