// Package history persists organize run summaries in SQLite.
//
// The Store applies embedded migrations on open and keeps one row per run,
// keyed by the run id the organizer generates. It is a convenience record
// for the history command; the audit log in the destination remains the
// authoritative per-file account of a run.
package history
