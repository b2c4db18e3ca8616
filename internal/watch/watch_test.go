package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"filesorter/internal/testsupport"
	"filesorter/internal/watch"
)

func TestDirsSkipsExcludedSubtrees(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"a/b", "sorted/Images", "c"} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	dirs, err := watch.Dirs(root, []string{filepath.Join(root, "sorted")})
	if err != nil {
		t.Fatalf("Dirs: %v", err)
	}
	want := []string{root, filepath.Join(root, "a"), filepath.Join(root, "a", "b"), filepath.Join(root, "c")}
	if !slices.Equal(dirs, want) {
		t.Fatalf("Dirs = %v, want %v", dirs, want)
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := watch.New(watch.Options{Root: t.TempDir()}, nil); err == nil {
		t.Fatal("expected error for nil run func")
	}
	noop := func(context.Context) error { return nil }
	if _, err := watch.New(watch.Options{Root: "  "}, noop); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestRunTriggersOnNewFiles(t *testing.T) {
	root := t.TempDir()
	var runs atomic.Int32
	triggered := make(chan struct{}, 8)

	w, err := watch.New(watch.Options{Root: root, Debounce: 50 * time.Millisecond, RunOnStart: true}, func(context.Context) error {
		runs.Add(1)
		triggered <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, triggered, "startup run")
	testsupport.WriteText(t, filepath.Join(root, "new.txt"), "hello")
	waitFor(t, triggered, "run after file creation")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	if runs.Load() < 2 {
		t.Fatalf("expected at least two runs, got %d", runs.Load())
	}
}

func TestRunWatchesNewSubdirectories(t *testing.T) {
	root := t.TempDir()
	triggered := make(chan struct{}, 8)

	w, err := watch.New(watch.Options{Root: root, Debounce: 50 * time.Millisecond}, func(context.Context) error {
		triggered <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// Give the watcher time to register the root before mutating it.
	time.Sleep(100 * time.Millisecond)
	sub := filepath.Join(root, "incoming")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	waitFor(t, triggered, "run after directory creation")

	time.Sleep(100 * time.Millisecond)
	testsupport.WriteText(t, filepath.Join(sub, "late.pdf"), "pdf")
	waitFor(t, triggered, "run after file in new directory")
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
