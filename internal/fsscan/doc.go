// Package fsscan collects per-file metadata for a directory tree.
//
// It walks the tree with fastwalk, prunes excluded directories before any of
// their children are read, and records one Record per accessible file keyed by
// absolute path. Summaries and size ordering are derived from the collected
// Result.
package fsscan
