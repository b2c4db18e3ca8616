// Package mover performs the per-file step of a run: classify the entry,
// ensure its category folder exists, apply the collision policy, and rename
// the file into place.
//
// Renames across filesystems fall back to a verified copy followed by removal
// of the source. Outcomes are values, never errors, so a single bad file can
// not abort a run; fatal conditions belong to the organizer.
package mover
