// Package gallery defines the shared data model for the exported gallery
// tree: album and photo nodes as produced by the export tool and consumed
// by the search index and the runtime loaders.
//
// The tree mirrors a filesystem hierarchy. It is assumed acyclic and its
// depth is bounded by real-world album nesting; consumers that walk it
// enforce an explicit depth limit so a corrupt export is detected instead
// of overflowing the stack.
package gallery
