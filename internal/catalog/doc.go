// Package catalog inspects image files and walks directory trees to build
// the list of cataloged images.
//
// Inspector turns one path into an Image or a classified error; Walker visits
// a tree in lexical depth-first order, hands every entry to the inspector,
// and keeps the successes in traversal order. Per-entry failures never abort
// a walk: they are returned as Skip records so callers can log or count them.
package catalog
