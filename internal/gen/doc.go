// Package gen emits row mappers for model descriptors.
//
// Generation uses text/template and golang.org/x/tools/imports for
// readable, deterministic output. For a model T the emitted file holds:
//   - TFromRowAt: reads T starting at a shared column cursor
//   - TFromRow: the same, starting at column 0
//   - T.String: optional, lists every leaf column with its value
//
// Nested models are read by calling their own FromRowAt with the same
// cursor, so the column layout is a pre-order depth-first flattening of
// every scalar property in declaration order.
package gen
