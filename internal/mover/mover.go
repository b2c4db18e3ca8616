package mover

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filesorter/internal/category"
	"filesorter/internal/fileutil"
	"filesorter/internal/logging"
	"filesorter/internal/scanner"
	"filesorter/internal/services"
)

// CollisionPolicy decides what happens when the destination file already exists.
type CollisionPolicy string

const (
	PolicyOverwrite CollisionPolicy = "overwrite"
	PolicySkip      CollisionPolicy = "skip"
	PolicyRename    CollisionPolicy = "rename"
)

// ParsePolicy validates a policy name. Empty selects PolicyOverwrite.
func ParsePolicy(value string) (CollisionPolicy, error) {
	switch p := CollisionPolicy(strings.ToLower(strings.TrimSpace(value))); p {
	case "":
		return PolicyOverwrite, nil
	case PolicyOverwrite, PolicySkip, PolicyRename:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported collision policy %q", value)
	}
}

const maxRenameAttempts = 10000

// Mover relocates single entries into their category folder.
type Mover struct {
	classifier *category.Classifier
	policy     CollisionPolicy
	logger     *slog.Logger
	now        func() time.Time
	rename     func(oldpath, newpath string) error
}

// Option customizes a Mover.
type Option func(*Mover)

// WithPolicy sets the collision policy.
func WithPolicy(policy CollisionPolicy) Option {
	return func(m *Mover) {
		if policy != "" {
			m.policy = policy
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mover) {
		m.logger = logging.NewComponentLogger(logger, "mover")
	}
}

// WithClock overrides the timestamp source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(m *Mover) {
		if now != nil {
			m.now = now
		}
	}
}

// WithRenameFunc overrides os.Rename (used in tests to simulate failures).
func WithRenameFunc(rename func(oldpath, newpath string) error) Option {
	return func(m *Mover) {
		if rename != nil {
			m.rename = rename
		}
	}
}

// New constructs a Mover. A nil classifier uses the built-in table.
func New(classifier *category.Classifier, opts ...Option) *Mover {
	if classifier == nil {
		classifier = category.Default()
	}
	m := &Mover{
		classifier: classifier,
		policy:     PolicyOverwrite,
		logger:     logging.NewComponentLogger(nil, "mover"),
		now:        time.Now,
		rename:     os.Rename,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the active collision policy.
func (m *Mover) Policy() CollisionPolicy {
	return m.policy
}

// Move relocates entry into destinationRoot/<category>/<name>. It never
// panics or returns an error; every failure is reported through the outcome.
// The move is best effort: a cross-device move copies then removes, and a
// failed removal leaves the file in both places.
func (m *Mover) Move(ctx context.Context, entry scanner.Entry, destinationRoot string) Outcome {
	logger := logging.WithContext(ctx, m.logger)
	if entry.Ext == "" {
		logger.Debug("skipping file without extension", logging.String("path", entry.Path))
		return skipped(entry, "", ReasonNoExtension)
	}

	cat := m.classifier.Classify(entry.Ext)
	categoryDir := filepath.Join(destinationRoot, cat)
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		return failed(entry, cat, categoryDir,
			"category folder creation: "+err.Error(),
			services.Wrap(services.ErrCategoryFolder, "move", "create category folder", categoryDir, err),
		)
	}

	destination := filepath.Join(categoryDir, entry.Name)
	if filepath.Clean(entry.Path) == destination {
		return skipped(entry, cat, ReasonAlreadyInPlace)
	}

	exists, err := fileutil.Exists(destination)
	if err != nil {
		return failed(entry, cat, categoryDir, err.Error(),
			services.Wrap(services.ErrMove, "move", "inspect destination", destination, err))
	}
	overwrote := false
	if exists {
		switch m.policy {
		case PolicySkip:
			logger.Debug("destination exists; skipping", logging.String("destination", destination))
			return skipped(entry, cat, ReasonDestinationExists)
		case PolicyRename:
			destination, err = nextFreePath(categoryDir, entry.Name)
			if err != nil {
				return failed(entry, cat, categoryDir, err.Error(),
					services.Wrap(services.ErrMove, "move", "allocate destination name", entry.Name, err))
			}
		default:
			overwrote = true
		}
	}

	if err := m.relocate(entry.Path, destination); err != nil {
		return failed(entry, cat, categoryDir, err.Error(),
			services.Wrap(services.ErrMove, "move", "relocate file", entry.Name, err))
	}

	logger.Debug("file relocated",
		logging.String("source", entry.Path),
		logging.String("destination", destination),
		logging.Bool("overwrote", overwrote),
	)
	return moved(entry, cat, categoryDir, destination, m.now(), overwrote)
}

func (m *Mover) relocate(src, dst string) error {
	renameErr := m.rename(src, dst)
	if renameErr == nil {
		return nil
	}
	if !isCrossDevice(renameErr) {
		return renameErr
	}
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after cross-device copy: %w", err)
	}
	return nil
}

// nextFreePath returns dir/"stem (N)ext" for the first unused N.
func nextFreePath(dir, name string) (string, error) {
	ext := scanner.Extension(name)
	stem := name
	if ext != "" {
		stem = name[:len(name)-len(ext)]
		ext = name[len(stem):]
	}
	for attempt := 1; attempt <= maxRenameAttempts; attempt++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, attempt, ext))
		exists, err := fileutil.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", name, maxRenameAttempts)
}
