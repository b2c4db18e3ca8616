//go:build unix

package mover_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"

	"filesorter/internal/mover"
	"filesorter/internal/services"
	"filesorter/internal/testsupport"
)

func crossDeviceRename(oldpath, newpath string) error {
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: unix.EXDEV}
}

func TestMoveCrossDeviceFallsBackToCopy(t *testing.T) {
	dst := t.TempDir()
	entry := writeEntry(t, t.TempDir(), "archive.zip", "zipped bytes")

	outcome := mover.New(nil, mover.WithRenameFunc(crossDeviceRename)).Move(context.Background(), entry, dst)
	if outcome.Kind != mover.KindMoved {
		t.Fatalf("expected cross-device move to succeed, got %+v", outcome)
	}
	if got := testsupport.ReadText(t, filepath.Join(dst, "Archives", "archive.zip")); got != "zipped bytes" {
		t.Fatalf("unexpected copied content %q", got)
	}
	if _, err := os.Stat(entry.Path); !os.IsNotExist(err) {
		t.Fatalf("expected source removed after copy, stat err=%v", err)
	}
}

func TestMoveCrossDeviceRemoveFailureKeepsBothCopies(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	srcDir := t.TempDir()
	dst := t.TempDir()
	entry := writeEntry(t, srcDir, "notes.txt", "keep me")
	if err := os.Chmod(srcDir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(srcDir, 0o755) })

	outcome := mover.New(nil, mover.WithRenameFunc(crossDeviceRename)).Move(context.Background(), entry, dst)
	if outcome.Kind != mover.KindFailed || !errors.Is(outcome.Err, services.ErrMove) {
		t.Fatalf("expected failure when source cannot be removed, got %+v", outcome)
	}
	if got := testsupport.ReadText(t, entry.Path); got != "keep me" {
		t.Fatalf("expected source to remain, got %q", got)
	}
	if got := testsupport.ReadText(t, filepath.Join(dst, "Documents", "notes.txt")); got != "keep me" {
		t.Fatalf("expected copy at destination, got %q", got)
	}
}
