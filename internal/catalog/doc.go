// Package catalog holds the in-memory sermon catalog and the mutation paths
// that keep it consistent.
//
// Three record kinds live here: sermons, the preaching occasions recorded
// against each sermon, and the thematic series sermons are grouped into. Two
// invariants are enforced on every mutation: a sermon's canonical date and
// place always mirror its earliest preaching occasion, and the series
// collection is always a pure function of the series titles currently
// referenced by sermons. Sermons point at series by title, not by id, so the
// reconciler rebuilds series membership by scanning sermons rather than
// trusting stored member lists.
//
// Treat this package as the single source of truth for catalog semantics;
// mutations go through Catalog methods, never through direct slice edits.
package catalog
