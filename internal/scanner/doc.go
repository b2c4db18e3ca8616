// Package scanner discovers the regular files under a source root.
//
// Seq exposes the walk as a lazy iterator; Collect materializes it once so a
// run knows its total before touching anything. Traversal is lexical and
// therefore stable for a given tree.
package scanner
