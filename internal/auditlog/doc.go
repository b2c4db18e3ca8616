// Package auditlog writes the per-run plain-text audit log placed in the
// destination root.
//
// The log is truncated when a run opens it. Each moved file produces a
// "Moved:" line naming the category folder and the local time of the move;
// each failed file produces an "ERROR moving" line with the failure detail.
// Skipped files are not recorded. Lines are written straight to the file so
// a crashed run still leaves everything recorded up to that point.
package auditlog
