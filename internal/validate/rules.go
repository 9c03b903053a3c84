package validate

import (
	"fmt"

	"orm-generator/internal/analyze"
	"orm-generator/internal/diagnostic"
	"orm-generator/internal/model"
)

// Rule codes.
const (
	CodeBuildFailure   = "ORM000"
	CodeInvalidType    = "ORM001"
	CodeNeedlessNest   = "ORM002"
	CodeMissingNest    = "ORM003"
	CodeNestingCycle   = "ORM004"
	msgInvalidType     = "The type %s of property %s must be a marked model"
	msgNeedlessNest    = "The model of type %s doesn't contain other models and shouldn't be nestable"
	msgMissingNest     = "The model of type %s isn't nestable and mustn't contain other models"
	msgNestingCycle    = "The model of type %s nests itself through %s"
	suggestionTemplate = "use the %s marker"
)

// Target is a declaration with its eligible fields classified.
type Target struct {
	Decl   *analyze.Declaration
	Fields []model.FieldClass
}

// Rule checks one declaration.
type Rule struct {
	Code     string
	Severity diagnostic.DiagnosticSeverity
	Check    func(t *Target) []diagnostic.Diagnostic
}

// Rules lists the per-declaration rules in code order.
var Rules = []Rule{
	{Code: CodeInvalidType, Severity: diagnostic.DiagnosticError, Check: invalidType},
	{Code: CodeNeedlessNest, Severity: diagnostic.DiagnosticInfo, Check: needlessNestable},
	{Code: CodeMissingNest, Severity: diagnostic.DiagnosticError, Check: missingNestable},
}

// invalidType reports every property whose type is neither a scalar nor a
// marked model.
func invalidType(t *Target) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic

	for _, f := range t.Fields {
		if !f.Class.IsInvalid() {
			continue
		}

		out = append(out, diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticError,
			Code:        CodeInvalidType,
			Message:     fmt.Sprintf(msgInvalidType, f.Field.Type.String(), f.Field.Name),
			Location:    f.Field.Pos,
			TypeName:    t.Decl.ID.Name,
			Property:    f.Field.Name,
			Suggestions: model.Suggest(f.Field.Type.ShortName()),
		})
	}

	return out
}

// needlessNestable flags a nestable model whose properties are all scalars.
// A model without properties qualifies as well.
func needlessNestable(t *Target) []diagnostic.Diagnostic {
	if t.Decl.Marker != analyze.MarkerNestable {
		return nil
	}

	for _, f := range t.Fields {
		if !f.Class.IsBasic() {
			return nil
		}
	}

	return []diagnostic.Diagnostic{{
		Severity:    diagnostic.DiagnosticInfo,
		Code:        CodeNeedlessNest,
		Message:     fmt.Sprintf(msgNeedlessNest, t.Decl.ID.Name),
		Location:    t.Decl.Pos,
		TypeName:    t.Decl.ID.Name,
		Suggestions: []string{fmt.Sprintf(suggestionTemplate, "//"+analyze.DirectiveModel)},
	}}
}

// missingNestable flags a plain model that nests another model.
func missingNestable(t *Target) []diagnostic.Diagnostic {
	if t.Decl.Marker != analyze.MarkerPlain {
		return nil
	}

	for _, f := range t.Fields {
		if f.Class.IsNested() {
			return []diagnostic.Diagnostic{{
				Severity:    diagnostic.DiagnosticError,
				Code:        CodeMissingNest,
				Message:     fmt.Sprintf(msgMissingNest, t.Decl.ID.Name),
				Location:    t.Decl.Pos,
				TypeName:    t.Decl.ID.Name,
				Property:    f.Field.Name,
				Suggestions: []string{fmt.Sprintf(suggestionTemplate, "//"+analyze.DirectiveNestable)},
			}}
		}
	}

	return nil
}
