// Package notifications pushes run results to ntfy.
//
// NewService returns a no-op Service when no topic is configured, so callers
// notify unconditionally. Delivery failures are returned to the caller, which
// logs them; a lost notification never fails a run.
package notifications
