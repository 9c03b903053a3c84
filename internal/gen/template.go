package gen

import (
	"strings"
	"text/template"
)

// fileData holds everything the mapper template renders.
type fileData struct {
	Package      string
	Imports      []importSpec
	Model        string
	Row          string // local name of the row package
	Fmt          string // local name of fmt, set when String is emitted
	Layout       []Column
	Steps        []step
	String       bool
	StringFormat string // quoted format string
	StringArgs   []string
}

// step reads one property.
type step struct {
	Field    string
	Accessor string // row accessor suffix for scalar properties
	Var      string // temporary, set when the value needs a conversion
	Convert  string // field type expression used for the conversion
	Call     string // nested mapper function, set for nested properties
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

var mapperTemplate = template.Must(template.New("mapper").Funcs(funcs).Parse(`// Code generated by orm-generator. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.Model}}FromRow reads a {{.Model}} from r starting at column 0.
func {{.Model}}FromRow(r {{.Row}}.Reader) ({{.Model}}, error) {
	index := 0
	return {{.Model}}FromRowAt(r, &index)
}

// {{.Model}}FromRowAt reads a {{.Model}} from r starting at column *index and
// advances *index past every column it consumed.
{{- if .Layout}}
//
// Columns, relative to the starting index:
//
{{- range .Layout}}
//	{{.Index}}: {{.Path}} ({{.Kind}})
{{- end}}
{{- end}}
func {{.Model}}FromRowAt(r {{.Row}}.Reader, index *int) ({{.Model}}, error) {
	var out {{.Model}}
{{- if .Steps}}
	var err error
{{- end}}
{{range .Steps}}
{{- if .Call}}
	out.{{.Field}}, err = {{.Call}}(r, index)
	if err != nil {
		return out, err
	}
{{- else}}
{{- if .Var}}
	{{.Var}}, err := r.Get{{.Accessor}}(*index)
{{- else}}
	out.{{.Field}}, err = r.Get{{.Accessor}}(*index)
{{- end}}
	if err != nil {
		return out, {{$.Row}}.FieldError("{{$.Model}}", "{{.Field}}", *index, err)
	}
{{- if .Var}}
	out.{{.Field}} = {{.Convert}}({{.Var}})
{{- end}}
	*index++
{{- end}}
{{end}}
	return out, nil
}
{{- if .String}}

// String lists every column of the {{.Model}} with its value.
func (m {{.Model}}) String() string {
{{- if .StringArgs}}
	return {{.Fmt}}.Sprintf({{.StringFormat}}, {{join .StringArgs ", "}})
{{- else}}
	return ""
{{- end}}
}
{{- end}}
`))
