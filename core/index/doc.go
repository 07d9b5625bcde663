// Package index builds a flat free-text search index over the exported
// gallery tree.
//
// The Builder walks the tree depth first through an injected fetch
// function, one album per round-trip, and flattens every node into an
// id-keyed map. Building is idempotent and tolerant of per-subtree fetch
// failures: a broken branch is logged and skipped, siblings still get
// indexed, and the caller can only tell a partial index apart from a full
// one through BuildStats. This trades visibility for graceful degradation
// on purpose; the UI consuming the index prefers fewer results over an
// error state.
package index
