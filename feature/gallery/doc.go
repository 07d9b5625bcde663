// Package gallery loads an exported gallery tree back into memory, one
// child listing at a time.
//
// Fetchers resolve album ids against the path-addressed layout the
// exporter writes: DirFetcher reads children.json files from local
// disk, StorageFetcher from an object storage bucket, and CachedFetcher
// layers an LRU cache plus request deduplication over either. The
// fetchers plug straight into the search index builder.
package gallery
