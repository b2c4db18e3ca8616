//go:build linux

package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"filesorter/internal/organizer"
	"filesorter/internal/services"
	"filesorter/internal/testsupport"
)

func TestOrganizeAuditWriteFailureMidRun(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skipf("/dev/full unavailable: %v", err)
	}
	base := t.TempDir()
	src := testsupport.Tree(t, filepath.Join(base, "src"), map[string]string{
		"a.jpg": "a",
		"b.jpg": "b",
		"c.jpg": "c",
	})
	dst := filepath.Join(base, "dst")
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink("/dev/full", filepath.Join(dst, "log.txt")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	progress := &progressLog{}
	summary, err := organizer.New().Organize(context.Background(), organizer.Request{SourceRoot: src, DestinationRoot: dst}, progress.record)
	if !errors.Is(err, services.ErrLogIO) {
		t.Fatalf("expected ErrLogIO, got %v", err)
	}
	if summary.Discovered != 3 || summary.Moved != 1 || summary.Processed() != 1 {
		t.Fatalf("expected partial summary after the first file, got %+v", summary)
	}
	if len(progress.events) != 0 {
		t.Fatalf("expected no progress after the failed write, got %v", progress.events)
	}
	for _, name := range []string{"b.jpg", "c.jpg"} {
		if _, err := os.Stat(filepath.Join(src, name)); err != nil {
			t.Fatalf("expected %s left in the source: %v", name, err)
		}
	}
}
