package model

import (
	"fmt"
	"hash/fnv"
	"io"

	"orm-generator/internal/analyze"
)

// Property is an eligible field of a model, classified.
type Property struct {
	Name  string
	Class Classification
	// Type is the declared field type. The emitter converts accessor results
	// to it when it differs from the accessor's canonical type.
	Type analyze.TypeRef
}

// Equal reports whether two properties are structurally equal.
func (p Property) Equal(o Property) bool {
	return p.Name == o.Name &&
		p.Class == o.Class &&
		p.Type.ID == o.Type.ID &&
		p.Type.PkgName == o.Type.PkgName &&
		p.Type.Display == o.Type.Display
}

// Descriptor describes one model. It is immutable once Build returns it.
type Descriptor struct {
	ID      analyze.TypeID
	Package string // package name, the artifact namespace
	Marker  analyze.Marker
	// GenerateString enables the String method.
	GenerateString bool
	Properties     []Property
}

// Nestable reports whether the model carries the nestable marker.
func (d *Descriptor) Nestable() bool {
	return d.Marker == analyze.MarkerNestable
}

// HasNested reports whether any property references another model.
func (d *Descriptor) HasNested() bool {
	for _, p := range d.Properties {
		if p.Class.IsNested() {
			return true
		}
	}

	return false
}

// NestedRefs returns the referenced model identities in declaration order,
// duplicates removed.
func (d *Descriptor) NestedRefs() []analyze.TypeID {
	var (
		out  []analyze.TypeID
		seen = make(map[analyze.TypeID]bool)
	)

	for _, p := range d.Properties {
		if !p.Class.IsNested() || seen[p.Class.Ref] {
			continue
		}

		seen[p.Class.Ref] = true
		out = append(out, p.Class.Ref)
	}

	return out
}

// Equal compares two descriptors structurally: identity, marker, string
// option and the ordered property list. A nil descriptor equals only nil.
func (d *Descriptor) Equal(o *Descriptor) bool {
	if d == nil || o == nil {
		return d == o
	}

	if d.ID != o.ID || d.Package != o.Package || d.Marker != o.Marker ||
		d.GenerateString != o.GenerateString || len(d.Properties) != len(o.Properties) {
		return false
	}

	for i := range d.Properties {
		if !d.Properties[i].Equal(o.Properties[i]) {
			return false
		}
	}

	return true
}

// Fingerprint hashes the fields compared by Equal. Equal descriptors have
// equal fingerprints.
func (d *Descriptor) Fingerprint() string {
	h := fnv.New64a()
	d.writeTo(h)

	return fmt.Sprintf("%016x", h.Sum64())
}

func (d *Descriptor) writeTo(w io.Writer) {
	fmt.Fprintf(w, "%s|%s|%d|%t|%d\n", d.ID, d.Package, d.Marker, d.GenerateString, len(d.Properties))

	for _, p := range d.Properties {
		fmt.Fprintf(w, "%s|%d|%d|%s|%s|%s|%s\n",
			p.Name, p.Class.Kind, p.Class.Basic, p.Class.Ref, p.Type.ID, p.Type.PkgName, p.Type.Display)
	}
}

// String returns a short description, e.g. "shapes.Point(Plain, 2 properties)".
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s.%s(%s, %d properties)", d.Package, d.ID.Name, d.Marker, len(d.Properties))
}

// Registry holds the descriptors of one pass by identity.
type Registry map[analyze.TypeID]*Descriptor

// Lookup returns the descriptor for id.
func (r Registry) Lookup(id analyze.TypeID) (*Descriptor, bool) {
	d, ok := r[id]
	return d, ok
}
