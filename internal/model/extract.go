package model

import (
	"fmt"

	"orm-generator/internal/analyze"
)

// InvalidPropertyError reports a property whose type is neither a scalar
// nor a marked model. It aborts the build of the declaring model.
type InvalidPropertyError struct {
	Model    analyze.TypeID
	Property string
	Type     string
}

func (e *InvalidPropertyError) Error() string {
	return fmt.Sprintf("%s: property %s has unsupported type %s", e.Model, e.Property, e.Type)
}

// Extract returns the eligible properties of decl in declaration order,
// classified. It fails on the first Invalid property.
func Extract(decl *analyze.Declaration) ([]Property, error) {
	fields := decl.EligibleFields()
	props := make([]Property, 0, len(fields))

	for _, f := range fields {
		class := Classify(f.Type)
		if class.IsInvalid() {
			return nil, &InvalidPropertyError{
				Model:    decl.ID,
				Property: f.Name,
				Type:     f.Type.String(),
			}
		}

		props = append(props, Property{Name: f.Name, Class: class, Type: f.Type})
	}

	return props, nil
}

// ClassifyAll classifies every eligible field of decl without failing,
// pairing each field with its classification. Invalid entries are kept.
func ClassifyAll(decl *analyze.Declaration) []FieldClass {
	fields := decl.EligibleFields()
	out := make([]FieldClass, len(fields))

	for i, f := range fields {
		out[i] = FieldClass{Field: f, Class: Classify(f.Type)}
	}

	return out
}

// FieldClass is an eligible field with its classification.
type FieldClass struct {
	Field analyze.Field
	Class Classification
}
