// Package repair matches broken asset URLs against a listing of real
// files on disk so a one-time bulk repair can fix the links the legacy
// export mangled.
//
// # Pipeline
//
// Each mismatch URL goes through candidate pooling (three cheap index
// lookups unioned under a cap, no source allowed to starve the others),
// an optional narrowing pass when the pool is large, weighted similarity
// scoring, and tiered-threshold acceptance. A consensus mode runs the
// scorer under two different similarity functions and combines their
// rankings by Borda count.
//
// Eleven independent strategies run side by side over the whole report,
// each tallying hits and misses. The ranking by raw hit count tells the
// operator which algorithm to hand to the downstream repair tool; the
// winner is serialized as a small JSON artifact.
//
// # Training
//
// Train sweeps a grid of scoring weights against a hand-labeled golden
// set and reports the combination with the most correct matches. It is a
// grid-search tuner, nothing more.
//
// # Error model
//
// A strategy that finds nothing returns nil, tallied as a miss, never an
// error. Only unreadable input files are fatal, because a run without
// its reference data is meaningless; that exit is handled by the CLI
// layer.
package repair
