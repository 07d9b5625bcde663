// Package database manages the connection to the legacy Gallery 2 MySQL
// database that the export tool reads from.
//
// The connection is read-only by convention: the exporter only ever
// SELECTs over the prefixed Gallery 2 tables (ChildEntity, Entity, Item,
// FileSystemEntity, PhotoItem, DerivativeImage). VerifyGallerySchema
// checks those tables exist before a walk starts so a misconfigured DSN
// fails fast instead of producing an empty export.
package database
