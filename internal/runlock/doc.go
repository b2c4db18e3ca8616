// Package runlock guards a destination root against concurrent organize runs.
//
// Each destination maps to a lock file under the configured lock directory.
// Acquisition never blocks: a held lock surfaces as services.ErrLocked so the
// caller can report that another run is already sorting into the same place.
// A lock directory that cannot be used surfaces as services.ErrConfiguration.
package runlock
