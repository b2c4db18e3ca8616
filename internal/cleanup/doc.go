// Package cleanup removes source directories that an organize run emptied.
//
// Only the folders that held moved files, and their ancestors below the
// source root, are considered. Each is removed when it has no entries left,
// deepest first, so a parent emptied by removing its children goes too.
// Folders that were already empty before the run are left alone, and the
// root itself is never removed.
package cleanup
