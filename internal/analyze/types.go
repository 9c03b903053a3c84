package analyze

import (
	"fmt"
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "orm-generator/examples/shapes"
	Name    string // e.g., "Point"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

//go:generate go tool stringer -type=Marker -trimprefix=Marker -output=marker_string.go

// Marker is the resolved marker directive carried by a type declaration.
type Marker int

const (
	MarkerNone     Marker = iota // not marked
	MarkerPlain                  // //orm:model
	MarkerNestable               // //orm:nestable
)

// Marked reports whether the marker qualifies a type as a mappable model.
func (m Marker) Marked() bool {
	return m == MarkerPlain || m == MarkerNestable
}

// TypeRef describes the declared type of a field.
type TypeRef struct {
	// ID holds the short name of the type and, for named types, the package
	// path. Composite types (pointers, slices, maps, ...) have an empty name.
	ID TypeID
	// PkgName is the package name of ID.PkgPath (empty for builtins).
	PkgName string
	// Display is the type as written relative to the declaring package.
	Display string
	// Marker is the referenced type's own marker.
	Marker Marker
}

// ShortName returns the unqualified type name used for classification.
func (r TypeRef) ShortName() string {
	return r.ID.Name
}

// String returns the display form of the type.
func (r TypeRef) String() string {
	if r.Display != "" {
		return r.Display
	}

	return r.ID.Name
}

// Field describes a struct field of a declaration.
type Field struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Settable bool              // False when tagged `orm:"-"`
	Embedded bool              // Whether the field is embedded (anonymous)
	Type     TypeRef           // Declared type
	Tag      reflect.StructTag // Raw struct tag
	Pos      token.Position    // Field declaration site
}

// Eligible reports whether the field takes part in row mapping.
func (f *Field) Eligible() bool {
	return f.Exported && f.Settable
}

// Declaration is a marked struct type as seen by one analysis pass.
type Declaration struct {
	ID      TypeID
	PkgName string
	// Dir is the directory holding the package sources.
	Dir    string
	Marker Marker
	// Args holds the directive's named arguments, keys lower-cased.
	Args   map[string]string
	Fields []Field
	Pos    token.Position
	// Generate is false for declarations loaded only to resolve references
	// from other packages.
	Generate bool
}

// Option returns a directive argument by case-insensitive key.
func (d *Declaration) Option(key string) (string, bool) {
	v, ok := d.Args[strings.ToLower(key)]
	return v, ok
}

// BoolOption returns a boolean directive argument, false when absent.
func (d *Declaration) BoolOption(key string) (bool, error) {
	v, ok := d.Option(key)
	if !ok {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: option %s=%q is not a boolean", d.ID, key, v)
	}

	return b, nil
}

// EligibleFields returns the fields that take part in row mapping, in
// declaration order.
func (d *Declaration) EligibleFields() []Field {
	var out []Field

	for _, f := range d.Fields {
		if f.Eligible() {
			out = append(out, f)
		}
	}

	return out
}

// Snapshot is the immutable set of declarations of one analysis pass.
type Snapshot struct {
	Declarations []Declaration
	index        map[TypeID]int
}

// NewSnapshot creates a snapshot from declarations. A later declaration
// with the same identity replaces an earlier one.
func NewSnapshot(decls ...Declaration) *Snapshot {
	s := &Snapshot{index: make(map[TypeID]int, len(decls))}

	for _, d := range decls {
		if i, ok := s.index[d.ID]; ok {
			s.Declarations[i] = d
			continue
		}

		s.index[d.ID] = len(s.Declarations)
		s.Declarations = append(s.Declarations, d)
	}

	return s
}

// Lookup returns the declaration with the given identity.
func (s *Snapshot) Lookup(id TypeID) (*Declaration, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}

	return &s.Declarations[i], true
}

// Index returns the position of the declaration with the given identity in
// Declarations.
func (s *Snapshot) Index(id TypeID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Targets returns the declarations code is generated for.
func (s *Snapshot) Targets() []*Declaration {
	var out []*Declaration

	for i := range s.Declarations {
		if s.Declarations[i].Generate {
			out = append(out, &s.Declarations[i])
		}
	}

	return out
}

// Len returns the number of declarations.
func (s *Snapshot) Len() int {
	return len(s.Declarations)
}
