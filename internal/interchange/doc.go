// Package interchange reads and writes the delimited tabular format used to
// exchange sermon catalogs with spreadsheets and other tools.
//
// Import is deliberately tolerant: columns are located by heuristic header
// matching rather than fixed position, dates go through the ambiguous
// multi-format grammar with a current-date fallback, malformed rows are
// skipped with a warning instead of aborting the batch, and repeated titles
// merge into one sermon with an extra preaching occasion. Export is strict:
// a fixed column order with every field quoted, one row per sermon.
//
// Round-trips preserve fields, not bytes; export has no columns for history,
// versions, or images.
package interchange
