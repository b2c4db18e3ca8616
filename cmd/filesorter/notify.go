package main

import (
	"context"
	"errors"
	"log/slog"

	"filesorter/internal/logging"
	"filesorter/internal/notifications"
	"filesorter/internal/organizer"
)

// notifyRun announces a finished run. Canceled runs and runs that found
// nothing to do stay quiet; delivery failures are only logged.
func notifyRun(ctx context.Context, logger *slog.Logger, svc notifications.Service, summary organizer.Summary, runErr error) {
	if svc == nil || errors.Is(runErr, context.Canceled) {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var err error
	switch {
	case runErr != nil:
		err = svc.NotifyRunFailed(ctx, runErr, summary.SourceRoot)
	case summary.Discovered == 0:
		return
	default:
		err = svc.NotifyRunCompleted(ctx, notifications.RunResult{
			Source:      summary.SourceRoot,
			Destination: summary.Destination(),
			Moved:       summary.Moved,
			Skipped:     summary.Skipped,
			Failed:      summary.Failed,
			Duration:    summary.Duration(),
		})
	}
	if err != nil {
		logging.WarnWithContext(logger, "notification not delivered", "notify_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic or run filesorter test-notify"),
			logging.String(logging.FieldImpact, "run result was not pushed"),
		)
	}
}
