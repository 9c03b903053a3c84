// Package diagnostic provides structured errors, warnings and infos about
// model declarations, each attached to a source location.
//
// Key capabilities:
//   - Severity levels and stable rule codes (ORM000..ORM004)
//   - Source positions for editor-friendly reporting
//   - Suggested fixes (e.g. close scalar type names)
//   - Deterministic ordering for stable output
package diagnostic
