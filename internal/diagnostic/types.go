package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"orm-generator/internal/common"
)

// Diagnostics holds all diagnostic information of an analysis pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is the rule identifier, e.g. "ORM001".
	Code string
	// Message is the human-readable description.
	Message string
	// Location is the source position the diagnostic is reported at.
	Location token.Position
	// TypeName identifies the model this relates to.
	TypeName string
	// Property identifies the property this relates to (if any).
	Property string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, loc token.Position, typeName, property string) {
	d.Add(Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Location: loc,
		TypeName: typeName,
		Property: property,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, loc token.Position, typeName string) {
	d.Add(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Location: loc,
		TypeName: typeName,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// Filter returns the diagnostics with the given code.
func (d *Diagnostics) Filter(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Sort orders each severity list by file, line, column and code.
func (d *Diagnostics) Sort() {
	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		slices.SortStableFunc(list, compare)
	}
}

func compare(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Location.Filename, b.Location.Filename),
		cmp.Compare(a.Location.Line, b.Location.Line),
		cmp.Compare(a.Location.Column, b.Location.Column),
		cmp.Compare(a.Code, b.Code),
		cmp.Compare(a.TypeName, b.TypeName),
		cmp.Compare(a.Property, b.Property),
	)
}

// Error returns a combined error from all error diagnostics, or nil if
// there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string, e.g.
// "shapes/models.go:12:2: error ORM001: ... (did you mean: int32?)".
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Location.IsValid() {
		sb.WriteString(d.Location.String())
		sb.WriteString(": ")
	}

	sb.WriteString(d.Severity.String())

	if d.Code != "" {
		fmt.Fprintf(&sb, " %s", d.Code)
	}

	sb.WriteString(": ")
	sb.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&sb, " (did you mean: %s?)", strings.Join(d.Suggestions, ", "))
	}

	return sb.String()
}
