// Package match provides edit-distance based name similarity and ranking,
// used to suggest recognized type names for unsupported property types.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Similarity: case-insensitive normalized similarity score
//   - Closest: ranks candidate names against a query
package match
