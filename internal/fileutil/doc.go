// Package fileutil holds the copy helpers behind the mover's cross-device
// fallback.
package fileutil
