package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"filesorter/internal/auditlog"
	"filesorter/internal/cleanup"
	"filesorter/internal/config"
	"filesorter/internal/history"
	"filesorter/internal/logging"
	"filesorter/internal/mover"
	"filesorter/internal/runlock"
	"filesorter/internal/scanner"
	"filesorter/internal/services"
)

// Recorder persists finished runs.
type Recorder interface {
	RecordRun(ctx context.Context, run history.Run) error
}

// Organizer drives runs. It holds no per-run state, so one value can serve
// many sequential runs.
type Organizer struct {
	mover        *mover.Mover
	logger       *slog.Logger
	recorder     Recorder
	lockDir      string
	auditLogName string
	pruneEmpty   bool
	now          func() time.Time
	newID        func() string
}

// Option customizes an Organizer.
type Option func(*Organizer)

// WithMover replaces the default mover.
func WithMover(m *mover.Mover) Option {
	return func(o *Organizer) {
		if m != nil {
			o.mover = m
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Organizer) {
		o.logger = logging.NewComponentLogger(logger, "organizer")
	}
}

// WithRecorder records every run that passes its preconditions.
func WithRecorder(recorder Recorder) Option {
	return func(o *Organizer) {
		o.recorder = recorder
	}
}

// WithLockDir enables destination locking with lock files under dir.
func WithLockDir(dir string) Option {
	return func(o *Organizer) {
		o.lockDir = dir
	}
}

// WithAuditLogName overrides the audit log file name.
func WithAuditLogName(name string) Option {
	return func(o *Organizer) {
		if name != "" {
			o.auditLogName = name
		}
	}
}

// WithPruneEmptyDirs removes folders left empty in the source after a run
// that finished without fatal error.
func WithPruneEmptyDirs(enabled bool) Option {
	return func(o *Organizer) {
		o.pruneEmpty = enabled
	}
}

// WithClock overrides the run timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Organizer) {
		if now != nil {
			o.now = now
		}
	}
}

// New constructs an Organizer using the default category table and the
// overwrite collision policy unless options say otherwise.
func New(opts ...Option) *Organizer {
	o := &Organizer{
		mover:        mover.New(nil),
		logger:       logging.NewComponentLogger(nil, "organizer"),
		auditLogName: auditlog.DefaultName,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewFromConfig wires an Organizer from configuration. recorder may be nil.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, recorder Recorder) (*Organizer, error) {
	policy, err := mover.ParsePolicy(cfg.Organize.CollisionPolicy)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "collision policy", "", err)
	}
	m := mover.New(nil, mover.WithPolicy(policy), mover.WithLogger(logger))
	return New(
		WithMover(m),
		WithLogger(logger),
		WithRecorder(recorder),
		WithLockDir(cfg.LockDir()),
		WithAuditLogName(cfg.Organize.AuditLogName),
		WithPruneEmptyDirs(cfg.Organize.PruneEmptyDirs),
	), nil
}

// Organize moves every file under req.SourceRoot into its category folder
// below req.DestinationRoot. A non-nil error is fatal; per-file failures are
// reported through the summary counters and the audit log instead. The
// summary is returned alongside fatal errors with the counts reached so far.
func (o *Organizer) Organize(ctx context.Context, req Request, progress ProgressFunc) (Summary, error) {
	summary := Summary{RunID: o.newID(), StartedAt: o.now()}
	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, o.logger)

	source, err := validateSource(req.SourceRoot)
	if err != nil {
		return o.abort(logger, summary, err)
	}
	summary.SourceRoot = source
	dest, err := prepareDestination(req.DestinationRoot, source)
	if err != nil {
		return o.abort(logger, summary, err)
	}
	summary.DestinationRoot = dest
	summary.AuditLogPath = filepath.Join(dest, o.auditLogName)

	if o.lockDir != "" {
		lock, err := runlock.Acquire(o.lockDir, dest)
		if err != nil {
			return o.abort(logger, summary, err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logging.WarnWithContext(logger, "destination lock release failed", "lock_release_failed",
					logging.String("lock", lock.Path()),
					logging.Error(err),
					logging.String(logging.FieldImpact, "next run into this destination may report it as busy"),
				)
			}
		}()
	}

	logger.Info("organize run started",
		logging.String("source", source),
		logging.String("destination", dest),
		logging.String("collision_policy", string(o.mover.Policy())),
		logging.String(logging.FieldEventType, "run_started"),
	)

	runErr := o.run(ctx, logger, &summary, progress)
	summary.FinishedAt = o.now()
	o.record(ctx, logger, summary, runErr)

	if runErr != nil {
		logging.ErrorWithContext(logger, "organize run stopped", "run_failed",
			logging.Int("processed", summary.Processed()),
			logging.Int("discovered", summary.Discovered),
			logging.Error(runErr),
			logging.String(logging.FieldErrorHint, errorHint(runErr)),
		)
		return summary, runErr
	}
	logger.Info("organize run completed",
		logging.Int("discovered", summary.Discovered),
		logging.Int("moved", summary.Moved),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration()),
		logging.String("audit_log", summary.AuditLogPath),
		logging.String(logging.FieldEventType, "run_completed"),
	)
	return summary, nil
}

func (o *Organizer) run(ctx context.Context, logger *slog.Logger, summary *Summary, progress ProgressFunc) (err error) {
	audit, err := auditlog.Create(summary.AuditLogPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := audit.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var opts scanner.Options
	if isWithin(summary.SourceRoot, summary.DestinationRoot) {
		opts.Exclude = []string{summary.DestinationRoot}
	}
	scanCtx := services.WithStage(ctx, "scan")
	entries, err := scanner.Collect(scanCtx, summary.SourceRoot, opts)
	summary.Discovered = len(entries)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("scan source: %w", err)
	}
	total := len(entries)
	logging.WithContext(scanCtx, o.logger).Info("source scanned",
		logging.Int("discovered", total),
		logging.Bool("destination_excluded", len(opts.Exclude) > 0),
	)

	moveCtx := services.WithStage(ctx, "move")
	moveLogger := logging.WithContext(moveCtx, o.logger)
	sampler := logging.NewProgressSampler(10)
	var emptied []string
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome := o.mover.Move(moveCtx, entry, summary.DestinationRoot)
		switch outcome.Kind {
		case mover.KindMoved:
			summary.Moved++
			emptied = append(emptied, filepath.Dir(entry.Path))
		case mover.KindSkipped:
			summary.Skipped++
		default:
			summary.Failed++
			logging.WarnWithContext(moveLogger, "file not moved", "file_failed",
				logging.String("path", entry.Path),
				logging.String("category", outcome.Category),
				logging.String("error_kind", services.Kind(outcome.Err)),
				logging.Error(outcome.Err),
				logging.String(logging.FieldErrorHint, "see the audit log for the failure detail"),
				logging.String(logging.FieldImpact, "file left in the source tree"),
			)
		}
		if err := audit.Record(outcome); err != nil {
			return err
		}

		completed := i + 1
		if progress != nil {
			progress(completed, total)
		}
		if sampler.ShouldLog(completed, total) {
			moveLogger.Info("organize progress",
				logging.Int("completed", completed),
				logging.Int("total", total),
			)
		}
	}

	if o.pruneEmpty {
		pruned := cleanup.PruneEmptyDirs(ctx, summary.SourceRoot, emptied, moveLogger)
		summary.PrunedDirs = len(pruned.Removed)
		if len(pruned.Removed) > 0 || len(pruned.Errors) > 0 {
			moveLogger.Info("empty source folders pruned",
				logging.Int("removed", len(pruned.Removed)),
				logging.Int("errors", len(pruned.Errors)),
				logging.String(logging.FieldEventType, "prune_complete"),
			)
		}
	}
	return nil
}

func (o *Organizer) abort(logger *slog.Logger, summary Summary, err error) (Summary, error) {
	summary.FinishedAt = o.now()
	logging.ErrorWithContext(logger, "organize run rejected", "run_rejected",
		logging.String("error_kind", services.Kind(err)),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, errorHint(err)),
	)
	return summary, err
}

func (o *Organizer) record(ctx context.Context, logger *slog.Logger, summary Summary, runErr error) {
	if o.recorder == nil {
		return
	}
	run := history.Run{
		ID:              summary.RunID,
		SourceRoot:      summary.SourceRoot,
		DestinationRoot: summary.DestinationRoot,
		AuditLogPath:    summary.AuditLogPath,
		Status:          history.StatusCompleted,
		Discovered:      summary.Discovered,
		Moved:           summary.Moved,
		Skipped:         summary.Skipped,
		Failed:          summary.Failed,
		StartedAt:       summary.StartedAt,
		FinishedAt:      summary.FinishedAt,
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			run.Status = history.StatusCanceled
		}
		run.ErrorMessage = runErr.Error()
	}
	// A canceled run context must not prevent recording the cancellation.
	if err := o.recorder.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		logging.WarnWithContext(logger, "run history not recorded", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run missing from history; audit log unaffected"),
		)
	}
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidSource):
		return "check that the source directory exists and is readable"
	case errors.Is(err, services.ErrInvalidDestination):
		return "check that the destination can be created and differs from the source"
	case errors.Is(err, services.ErrLocked):
		return "wait for the other run into this destination to finish"
	case errors.Is(err, services.ErrConfiguration):
		return "check paths.state_dir permissions or set organize.lock = false"
	case errors.Is(err, services.ErrLogIO):
		return "check free space and permissions in the destination"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "run was interrupted; rerun to finish sorting"
	default:
		return "check the source tree for unreadable directories"
	}
}
