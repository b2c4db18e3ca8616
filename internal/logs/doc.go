// Package logs reads the tail of line-oriented files and follows them as
// they grow.
//
// The CLI uses it for the audit log in a destination and for the structured
// filesorter.log. Reading keeps memory bounded to the requested number of
// lines. Following polls for growth and starts over from the top when the
// file shrinks, which is what happens when a new run truncates the audit log.
package logs
