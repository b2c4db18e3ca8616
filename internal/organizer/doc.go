// Package organizer runs one classification-and-move pass from a source tree
// into a destination root.
//
// A run validates its Request before touching anything, takes the destination
// lock, truncates the audit log, materializes the scan so the total is known,
// and then moves entries one at a time in scan order. Per-file problems are
// counted and written to the audit log; only precondition failures, scan
// failures, and audit log I/O stop a run. Progress is delivered through a
// ProgressFunc after every processed entry so callers can drive any indicator
// without the core knowing about it. Finished runs are handed to an optional
// Recorder, typically the sqlite history.
package organizer
