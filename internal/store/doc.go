// Package store is the persistence collaborator: an opaque key/value blob
// store the catalog engine writes serialized state through.
//
// The production implementation keeps blobs in a SQLite database guarded by a
// file lock so only one process owns a catalog at a time. A map-backed
// implementation exists for tests. The engine never touches the filesystem
// directly; everything goes through Put/Get, and collaborator failures
// surface as ErrPersistenceUnavailable for callers to classify.
package store
