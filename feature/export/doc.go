// Package export materializes a static gallery tree from a legacy
// Gallery 2 MySQL database.
//
// One offline run walks the album hierarchy from the configured root,
// cleans up titles into filesystem-safe names, copies originals under
// their cleaned names, renders center-cropped square thumbnails, and
// writes a children.json listing per album. The listings are the tree the
// runtime loaders and the search index consume. With upload enabled the
// listings are mirrored to object storage so the gallery can be hosted
// straight from a bucket.
//
// The export is an operator tool: database and filesystem errors abort
// the run, while per-photo problems (missing or corrupt originals) are
// tallied into the report and left for the repair tool.
package export
