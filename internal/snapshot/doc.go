// Package snapshot serializes whole-catalog snapshots for manual and
// automatic backup, and restores them as a full replacement of current state.
//
// A snapshot is a single JSON object carrying sermons, series, optional view
// state, and optionally every referenced image inlined as base64. Decoding is
// tolerant: optional collections may be absent and unknown fields are
// ignored, so older and newer writers interoperate. Restore rewrites sermon
// image references to the freshly materialized copies; references that match
// no restored image are left alone since they may still resolve locally.
package snapshot
