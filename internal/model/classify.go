package model

import (
	"strings"

	"orm-generator/internal/analyze"
	"orm-generator/internal/match"
)

// ClassKind tags a property classification.
type ClassKind int

const (
	ClassInvalid ClassKind = iota
	ClassBasic
	ClassNested
)

// Classification is the result of classifying a property type:
// Basic(kind), Nested(reference) or Invalid.
type Classification struct {
	Kind  ClassKind
	Basic BasicType      // set for ClassBasic
	Ref   analyze.TypeID // set for ClassNested
}

// Basic returns a scalar classification.
func Basic(k BasicType) Classification {
	return Classification{Kind: ClassBasic, Basic: k}
}

// Nested returns a nested model reference.
func Nested(id analyze.TypeID) Classification {
	return Classification{Kind: ClassNested, Ref: id}
}

// Invalid returns the classification of an unsupported type.
func Invalid() Classification {
	return Classification{}
}

// IsBasic reports whether c is a scalar classification.
func (c Classification) IsBasic() bool { return c.Kind == ClassBasic }

// IsNested reports whether c references a nested model.
func (c Classification) IsNested() bool { return c.Kind == ClassNested }

// IsInvalid reports whether c is Invalid.
func (c Classification) IsInvalid() bool { return c.Kind == ClassInvalid }

// String returns e.g. "Basic(Int32)", "Nested(pkg.Point)" or "Invalid".
func (c Classification) String() string {
	switch c.Kind {
	case ClassBasic:
		return "Basic(" + c.Basic.String() + ")"
	case ClassNested:
		return "Nested(" + c.Ref.String() + ")"
	default:
		return "Invalid"
	}
}

// Classify classifies a declared field type. A recognized scalar short name
// wins; otherwise a named type carrying a marker is a nested reference;
// anything else is Invalid.
func Classify(ref analyze.TypeRef) Classification {
	if k, ok := LookupBasic(ref.ShortName()); ok {
		return Basic(k)
	}

	if ref.ShortName() != "" && ref.Marker.Marked() {
		return Nested(ref.ID)
	}

	return Invalid()
}

// suggestionScore is the minimum similarity for a scalar name suggestion.
const suggestionScore = 0.5

// Suggest returns up to three recognized scalar names close to shortName.
func Suggest(shortName string) []string {
	if shortName == "" {
		return nil
	}

	seen := make(map[string]bool, len(scalarNames))
	candidates := make([]string, 0, len(scalarNames))

	for _, s := range scalarNames {
		key := strings.ToLower(s.name)
		if seen[key] {
			continue
		}

		seen[key] = true
		candidates = append(candidates, s.name)
	}

	return match.Closest(shortName, candidates, suggestionScore, 3)
}
