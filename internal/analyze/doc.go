// Package analyze provides package loading and declaration snapshots.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// struct types marked for row mapping and to describe their fields the way
// the rest of the generator consumes them.
//
// Key types:
//   - TypeID: package import path + type name
//   - Marker: the resolved marker directive of a declaration (plain/nestable)
//   - Declaration: a marked struct with its directive arguments and fields
//   - Snapshot: the immutable set of declarations of one analysis pass
package analyze
