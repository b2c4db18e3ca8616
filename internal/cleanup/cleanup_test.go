package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"filesorter/internal/logging"
	"filesorter/internal/testsupport"
)

func mkdirs(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
	}
}

func TestPruneEmptyDirsInvalidRoots(t *testing.T) {
	outside := t.TempDir()
	for _, root := range []string{"", "   "} {
		result := PruneEmptyDirs(context.Background(), root, []string{outside}, logging.NewNop())
		if len(result.Removed) != 0 {
			t.Errorf("expected nothing removed for %q, got %v", root, result.Removed)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("directory outside the root must survive: %v", err)
	}
}

func TestPruneEmptyDirsRemovesEmptiedChain(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b/c", "keep/inner", "untouched/empty")
	testsupport.WriteText(t, filepath.Join(root, "keep", "noext"), "stays")

	emptied := []string{
		filepath.Join(root, "a", "b", "c"),
		filepath.Join(root, "keep", "inner"),
		root,
	}
	result := PruneEmptyDirs(context.Background(), root, emptied, logging.NewNop())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	for _, gone := range []string{"a", "a/b", "a/b/c", "keep/inner"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(gone))); !os.IsNotExist(err) {
			t.Errorf("expected %s removed, stat err=%v", gone, err)
		}
	}
	for _, kept := range []string{"keep", "untouched/empty"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(kept))); err != nil {
			t.Errorf("expected %s kept: %v", kept, err)
		}
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("root must survive: %v", err)
	}
	if len(result.Removed) != 4 {
		t.Fatalf("expected 4 removed directories, got %v", result.Removed)
	}
	if result.Removed[0] != filepath.Join(root, "a", "b", "c") {
		t.Fatalf("expected deepest directory first, got %v", result.Removed)
	}
}

func TestPruneEmptyDirsStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "x/y")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := PruneEmptyDirs(ctx, root, []string{filepath.Join(root, "x", "y")}, nil)
	if len(result.Removed) != 0 {
		t.Fatalf("expected no removals after cancellation, got %v", result.Removed)
	}
}
