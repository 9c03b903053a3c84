package gen

import (
	"errors"
	"fmt"
	"strings"

	"orm-generator/internal/analyze"
	"orm-generator/internal/model"
)

var (
	// ErrCycle is returned when a model nests itself, directly or not.
	ErrCycle = errors.New("model nests itself")
	// ErrUnresolved is returned when a nested model has no descriptor.
	ErrUnresolved = errors.New("nested model not resolved")
)

// Resolver gives access to the descriptors of nested models.
type Resolver interface {
	Lookup(id analyze.TypeID) (*model.Descriptor, bool)
}

// Column is one scalar column of a model's flattened layout.
type Column struct {
	Index int
	// Path is the dotted property path from the root model, e.g. "Point.X".
	Path string
	Kind model.BasicType
}

// Layout flattens the scalar properties of d and every model it nests into
// the column order read by the generated mapper. The cursor is shared across
// the whole tree: nested models continue where their container left off.
func Layout(d *model.Descriptor, res Resolver) ([]Column, error) {
	var cols []Column

	err := walkLeaves(d, res, func(path []string, p model.Property) {
		cols = append(cols, Column{
			Index: len(cols),
			Path:  strings.Join(path, "."),
			Kind:  p.Class.Basic,
		})
	})
	if err != nil {
		return nil, err
	}

	return cols, nil
}

// walkLeaves visits the scalar properties below d in pre-order, declaration
// order, passing the property path from d.
func walkLeaves(d *model.Descriptor, res Resolver, visit func(path []string, p model.Property)) error {
	onPath := map[analyze.TypeID]bool{}

	var walk func(cur *model.Descriptor, prefix []string) error
	walk = func(cur *model.Descriptor, prefix []string) error {
		if onPath[cur.ID] {
			return fmt.Errorf("%s: %w", cur.ID, ErrCycle)
		}

		onPath[cur.ID] = true
		defer delete(onPath, cur.ID)

		for _, p := range cur.Properties {
			path := append(prefix[:len(prefix):len(prefix)], p.Name)

			if !p.Class.IsNested() {
				visit(path, p)
				continue
			}

			nested, ok := res.Lookup(p.Class.Ref)
			if !ok {
				return fmt.Errorf("%s.%s: %s: %w", cur.ID.Name, p.Name, p.Class.Ref, ErrUnresolved)
			}

			if err := walk(nested, path); err != nil {
				return err
			}
		}

		return nil
	}

	return walk(d, nil)
}
