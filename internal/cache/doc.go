// Package cache keeps the last descriptor and artifact of every model for
// the lifetime of a generation session.
//
// A Store is created per session and passed into the pipeline. Entries are
// compared structurally: an unchanged descriptor returns the cached artifact
// without emitting again. Each key has its own lock, so unrelated models are
// resolved in parallel.
package cache
