// Package similarity provides the string distance and normalization
// primitives used by the fuzzy path repair tool.
//
// All functions are pure and total: identical inputs always score 1.0,
// and an empty string against a non-empty one scores 0 without division
// by zero. Scores are byte-oriented; inputs are expected to be the
// already-transliterated ASCII names produced by the gallery export.
package similarity
