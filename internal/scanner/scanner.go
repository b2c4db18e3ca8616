package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"filesorter/internal/services"
)

// Entry is one discovered regular file.
type Entry struct {
	Path string
	Name string
	Ext  string
}

// Options tunes a scan.
type Options struct {
	// Exclude lists directories whose subtrees are not visited.
	Exclude []string
}

// NewEntry builds an Entry for path. Ext is the lower-cased suffix of the base
// name starting at its last dot. A dot in first or last position does not
// start an extension, so ".bashrc" and "notes." have none.
func NewEntry(path string) Entry {
	name := filepath.Base(path)
	return Entry{Path: path, Name: name, Ext: Extension(name)}
}

// Extension returns the lower-cased extension of a base name, or "" when the
// name has none.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

// Seq walks root lazily in lexical order and yields regular files only.
// Symbolic links, directories, and special files are skipped. The sequence is
// single use: ranging over it a second time walks the tree again, which is
// not what a run wants, so runs call Collect once.
func Seq(ctx context.Context, root string, opts Options) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		absRoot, err := validateRoot(root)
		if err != nil {
			yield(Entry{}, err)
			return
		}
		excluded := excludeSet(opts.Exclude)

		walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				return fmt.Errorf("walk %s: %w", path, err)
			}
			if d.IsDir() {
				if path != absRoot {
					if _, skip := excluded[path]; skip {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(NewEntry(path), nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if walkErr != nil {
			yield(Entry{}, walkErr)
		}
	}
}

// Collect materializes the scan so the total is known before any file moves.
func Collect(ctx context.Context, root string, opts Options) ([]Entry, error) {
	var entries []Entry
	for entry, err := range Seq(ctx, root, opts) {
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func validateRoot(root string) (string, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return "", services.Wrap(services.ErrNotFound, "scan", "validate root", "root path is empty", nil)
	}
	absRoot, err := filepath.Abs(trimmed)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "scan", "resolve root", trimmed, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, "scan", "stat root", absRoot+" does not exist", err)
		}
		return "", services.Wrap(services.ErrNotFound, "scan", "stat root", absRoot, err)
	}
	if !info.IsDir() {
		return "", services.Wrap(services.ErrNotFound, "scan", "stat root", absRoot+" is not a directory", nil)
	}
	return absRoot, nil
}

func excludeSet(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			set[abs] = struct{}{}
		}
	}
	return set
}
