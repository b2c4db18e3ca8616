package scanner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"filesorter/internal/scanner"
	"filesorter/internal/services"
	"filesorter/internal/testsupport"
)

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"a.jpg":          ".jpg",
		"A.JPG":          ".jpg",
		"archive.tar.gz": ".gz",
		"noext":          "",
		".bashrc":        "",
		"..hidden":       ".hidden",
		"trailing.":      "",
		".config.json":   ".json",
	}
	for name, want := range cases {
		if got := scanner.Extension(name); got != want {
			t.Errorf("Extension(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestCollectFindsRegularFilesRecursively(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "b.txt"), 4)
	testsupport.WriteFile(t, filepath.Join(root, "a.jpg"), 4)
	testsupport.WriteFile(t, filepath.Join(root, "nested", "deep", "c.XYZ"), 4)
	testsupport.WriteFile(t, filepath.Join(root, "noext"), 4)
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := scanner.Collect(context.Background(), root, scanner.Options{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
		if !filepath.IsAbs(e.Path) {
			t.Fatalf("expected absolute path, got %q", e.Path)
		}
	}
	want := []string{"a.jpg", "b.txt", "c.XYZ", "noext"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if entries[2].Ext != ".xyz" {
		t.Fatalf("expected lower-cased extension, got %q", entries[2].Ext)
	}
	if entries[3].Ext != "" {
		t.Fatalf("expected empty extension, got %q", entries[3].Ext)
	}
}

func TestCollectOrderIsStable(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"z.txt", "m/a.txt", "a.txt", "m/b.txt"} {
		testsupport.WriteFile(t, filepath.Join(root, name), 1)
	}
	first, err := scanner.Collect(context.Background(), root, scanner.Options{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	second, err := scanner.Collect(context.Background(), root, scanner.Options{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("length mismatch %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestCollectSkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	target := filepath.Join(root, "real.txt")
	testsupport.WriteFile(t, target, 1)
	if err := os.Symlink(target, filepath.Join(root, "link.txt")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(t.TempDir(), filepath.Join(root, "linkdir")); err != nil {
		t.Fatalf("symlink dir: %v", err)
	}

	entries, err := scanner.Collect(context.Background(), root, scanner.Options{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "real.txt" {
		t.Fatalf("expected only the regular file, got %v", entries)
	}
}

func TestCollectHonoursExclude(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "keep.txt"), 1)
	testsupport.WriteFile(t, filepath.Join(root, "sorted", "Images", "old.jpg"), 1)

	entries, err := scanner.Collect(context.Background(), root, scanner.Options{Exclude: []string{filepath.Join(root, "sorted")}})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "keep.txt" {
		t.Fatalf("expected excluded subtree to be skipped, got %v", entries)
	}
}

func TestCollectMissingRoot(t *testing.T) {
	_, err := scanner.Collect(context.Background(), filepath.Join(t.TempDir(), "missing"), scanner.Options{})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCollectRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	testsupport.WriteFile(t, file, 1)
	_, err := scanner.Collect(context.Background(), file, scanner.Options{})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeqStopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		testsupport.WriteFile(t, filepath.Join(root, name), 1)
	}
	count := 0
	for _, err := range scanner.Seq(context.Background(), root, scanner.Options{}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected to stop after two entries, got %d", count)
	}
}

func TestCollectCancelled(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a.txt"), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := scanner.Collect(ctx, root, scanner.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
