// Package services defines shared utilities consumed by the organize pipeline.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper that let callers tell
//     fatal run errors (invalid source, invalid destination, audit log I/O)
//     apart from per-file failures that are recorded and skipped.
//
// Use these helpers when adding new run logic so error classification and
// observability stay uniform.
package services
