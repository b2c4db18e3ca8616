package auditlog

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"filesorter/internal/mover"
	"filesorter/internal/services"
)

// DefaultName is the audit log file name used when none is configured.
const DefaultName = "log.txt"

// TimestampLayout renders the move time as "Mon, 2006-01-02 15:04:05".
const TimestampLayout = "Mon, 2006-01-02 15:04:05"

// Writer appends outcome lines to an open audit log.
type Writer struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	lines  int
	closed bool
}

// Create opens path for writing, truncating any previous contents.
func Create(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, services.Wrap(services.ErrLogIO, "audit", "open audit log", path, err)
	}
	return &Writer{path: path, file: file}, nil
}

// FormatMoved renders the line recorded for a moved file.
func FormatMoved(outcome mover.Outcome) string {
	return fmt.Sprintf("Moved: %s -> %s  :: %s\n",
		outcome.Entry.Name, outcome.CategoryDir, outcome.At.Local().Format(TimestampLayout))
}

// FormatFailed renders the line recorded for a failed file.
func FormatFailed(outcome mover.Outcome) string {
	detail := outcome.Reason
	if detail == "" && outcome.Err != nil {
		detail = outcome.Err.Error()
	}
	return fmt.Sprintf("ERROR moving %s: %s\n", outcome.Entry.Name, detail)
}

// Record writes the line for outcome. Skipped outcomes write nothing.
func (w *Writer) Record(outcome mover.Outcome) error {
	var line string
	switch outcome.Kind {
	case mover.KindMoved:
		line = FormatMoved(outcome)
	case mover.KindFailed:
		line = FormatFailed(outcome)
	default:
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return services.Wrap(services.ErrLogIO, "audit", "write audit log", w.path, os.ErrClosed)
	}
	if _, err := w.file.WriteString(line); err != nil {
		return services.Wrap(services.ErrLogIO, "audit", "write audit log", w.path, err)
	}
	w.lines++
	return nil
}

// Lines reports how many lines have been written.
func (w *Writer) Lines() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lines
}

// Path returns the audit log location.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes and closes the file. Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	syncErr := w.file.Sync()
	closeErr := w.file.Close()
	if err := errors.Join(syncErr, closeErr); err != nil {
		return services.Wrap(services.ErrLogIO, "audit", "close audit log", w.path, err)
	}
	return nil
}
