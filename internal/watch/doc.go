// Package watch re-runs an organize pass whenever new files land in the
// source tree.
//
// fsnotify is not recursive, so the watcher registers every directory below
// the root and adds new ones as they appear. Create and write events restart
// a debounce timer; when it fires the run callback executes synchronously.
// Events arriving during a run queue up and collapse into a single follow-up
// run. Removals are ignored because a run's own moves generate them.
package watch
