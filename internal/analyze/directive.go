package analyze

import (
	"go/ast"
	"strings"
)

// Directive names recognized in type doc comments.
const (
	DirectiveModel    = "orm:model"
	DirectiveNestable = "orm:nestable"
)

// ParseDirective parses a single comment line such as
//
//	//orm:nestable GenerateToString=true
//
// Arguments are whitespace separated key=value pairs; a bare key means
// "true". Keys are lower-cased. ok is false when the line is not a marker
// directive.
func ParseDirective(line string) (marker Marker, args map[string]string, ok bool) {
	text, found := strings.CutPrefix(line, "//")
	if !found {
		return MarkerNone, nil, false
	}

	parts := strings.Fields(text)
	if len(parts) == 0 {
		return MarkerNone, nil, false
	}

	switch parts[0] {
	case DirectiveModel:
		marker = MarkerPlain
	case DirectiveNestable:
		marker = MarkerNestable
	default:
		return MarkerNone, nil, false
	}

	args = make(map[string]string, len(parts)-1)

	for _, p := range parts[1:] {
		key, value, hasValue := strings.Cut(p, "=")
		if key == "" {
			continue
		}

		if !hasValue {
			value = "true"
		}

		args[strings.ToLower(key)] = value
	}

	return marker, args, true
}

// markerFromDoc resolves the marker of a type from its doc comment.
// The last directive in the comment group wins.
func markerFromDoc(doc *ast.CommentGroup) (Marker, map[string]string) {
	if doc == nil {
		return MarkerNone, nil
	}

	marker := MarkerNone

	var args map[string]string

	for _, c := range doc.List {
		if m, a, ok := ParseDirective(c.Text); ok {
			marker, args = m, a
		}
	}

	return marker, args
}
