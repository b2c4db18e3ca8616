// Package logging assembles structured slog loggers and formatting helpers used
// across filesorter.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so run code can tag log lines
// with run IDs and stages automatically. It also provides a no-op logger for
// tests, a progress sampler that keeps per-file progress from flooding the
// log, and retention pruning for the log directory.
//
// This is the operator-facing log. The per-run audit trail written into the
// destination folder lives in package auditlog.
package logging
