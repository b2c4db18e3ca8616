// Package preflight checks that a run has what it needs before any file
// moves: a readable source, a writable (or creatable) destination, and
// usable log and state directories.
//
// The organizer performs its own precondition checks on every run; these
// checks are the read-only diagnostic behind `filesorter doctor` and report
// every problem at once instead of stopping at the first.
package preflight
