// Package projection derives the row-level views the presentation layer
// renders from the catalog.
//
// Two shapes exist: the occasion view emits one row per preaching occasion
// with the row's date and place overridden to that occasion, and the sermon
// view emits exactly one row per sermon using its most recent occasion.
// Rows are never persisted; they are recomputed from the catalog on demand.
// Filtering and sorting operate over projected rows, after projection.
package projection
