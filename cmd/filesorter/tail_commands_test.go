package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"filesorter/internal/logging"
	"filesorter/internal/testsupport"
)

func TestReportLinesShowsTrailingEntries(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.Tree(t, env.cfg.Paths.SourceDir, map[string]string{
		"a.jpg": "a",
		"b.txt": "b",
		"c.mp3": "c",
	})
	if _, _, err := runCLI(t, []string{"organize", "--no-progress"}, env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, _, err := runCLI(t, []string{"report", "--lines", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("report --lines: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "Moved: ") {
		t.Fatalf("expected a single trailing entry, got %q", out)
	}
}

func TestReportFollowPrintsAppendedEntries(t *testing.T) {
	env := setupCLITestEnv(t)
	logPath := filepath.Join(env.cfg.Paths.DestinationDir, "log.txt")
	testsupport.WriteText(t, logPath, "Moved: first.jpg -> Images  :: Mon, 2024-01-15 10:00:00\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--no-color", "--config", env.configPath, "report", "--follow"})
	cmd.SetContext(ctx)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Execute()
	}()

	time.Sleep(100 * time.Millisecond)
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	if _, err := file.WriteString("ERROR moving second.png: permission denied\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	file.Close()
	time.Sleep(600 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("report --follow: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("report --follow did not exit")
	}
	requireContains(t, stdout.String(), "first.jpg")
	requireContains(t, stdout.String(), "ERROR moving second.png")
}

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"logs"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "No log entries available")

	testsupport.WriteText(t, filepath.Join(env.cfg.Paths.LogDir, logging.LogFileName), "one\ntwo\nthree\n")
	out, _, err = runCLI(t, []string{"logs", "--lines", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("logs --lines: %v", err)
	}
	if strings.TrimSpace(out) != "two\nthree" {
		t.Fatalf("unexpected logs output %q", out)
	}
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail without a source directory")
	}
	requireContains(t, out, "Source")
	requireContains(t, out, "FAIL")

	if err := os.MkdirAll(env.cfg.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}
	out, _, err = runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "All checks passed.")
}

func TestOrganizeCommandPruneEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.Tree(t, env.cfg.Paths.SourceDir, map[string]string{"albums/x/track.flac": "t"})

	out, _, err := runCLI(t, []string{"organize", "--no-progress", "--prune-empty"}, env.configPath)
	if err != nil {
		t.Fatalf("organize --prune-empty: %v", err)
	}
	requireContains(t, out, "Pruned dirs: 2")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.SourceDir, "albums")); !os.IsNotExist(err) {
		t.Fatalf("expected emptied folder removed, stat err=%v", err)
	}
	if _, err := os.Stat(env.cfg.Paths.SourceDir); err != nil {
		t.Fatalf("source root must remain: %v", err)
	}
}

func TestHistoryPrune(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.Tree(t, env.cfg.Paths.SourceDir, map[string]string{"a.jpg": "a"})
	if _, _, err := runCLI(t, []string{"organize", "--no-progress"}, env.configPath); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "prune", "--days", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history prune: %v", err)
	}
	requireContains(t, out, "Removed 0 run(s) older than 1 day(s)")

	if _, _, err := runCLI(t, []string{"history", "prune", "--days", "0"}, env.configPath); err == nil {
		t.Fatal("expected non-positive --days to be rejected")
	}
}
