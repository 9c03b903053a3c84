// Package pipeline runs analysis passes: it builds descriptors from a
// snapshot, validates the declarations and resolves every model through the
// session's cache, emitting only what changed.
package pipeline
