package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"orm-generator/internal/model"
)

// DefaultRowImport is the import path of the runtime row package.
const DefaultRowImport = "orm-generator/row"

// ErrFormat is wrapped when the rendered source could not be formatted.
// The artifact returned alongside holds the unformatted text.
var ErrFormat = errors.New("formatting generated code")

// ErrStringConflict is returned when a model asks for a String method but
// has a property of that name.
var ErrStringConflict = errors.New("model has a String property and cannot get a String method")

// Config holds configuration for code generation.
type Config struct {
	// RowImport is the import path of the package providing row.Reader.
	RowImport string
	// RowName is the package name at RowImport; empty means the last path
	// element.
	RowName string
}

// DefaultConfig returns the default emitter configuration.
func DefaultConfig() Config {
	return Config{RowImport: DefaultRowImport}
}

// Emitter renders mapper source for descriptors.
type Emitter struct {
	cfg Config
}

// NewEmitter creates a new Emitter with the given configuration.
func NewEmitter(cfg Config) *Emitter {
	if cfg.RowImport == "" {
		cfg.RowImport = DefaultRowImport
	}

	return &Emitter{cfg: cfg}
}

// identifiers used by the generated functions.
var reserved = []string{"r", "index", "out", "err", "m"}

// Emit generates the mapper of d. Nested models are looked up in res.
// When formatting fails the unformatted artifact is returned together with
// an error wrapping ErrFormat.
func (e *Emitter) Emit(ctx context.Context, d *model.Descriptor, res Resolver) (Artifact, error) {
	art := Artifact{
		Key: Key{Namespace: d.Package, Name: d.ID.Name},
		ID:  d.ID,
	}

	if err := ctx.Err(); err != nil {
		return art, err
	}

	data, err := e.buildData(d, res)
	if err != nil {
		return art, err
	}

	var buf bytes.Buffer
	if err := mapperTemplate.Execute(&buf, data); err != nil {
		return art, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(art.FileName(), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		art.Text = buf.String()
		return art, fmt.Errorf("%s: %w: %w", art.FileName(), ErrFormat, err)
	}

	art.Text = string(formatted)

	return art, nil
}

func (e *Emitter) buildData(d *model.Descriptor, res Resolver) (*fileData, error) {
	layout, err := Layout(d, res)
	if err != nil {
		return nil, err
	}

	imps := newImportSet(reserved...)
	data := &fileData{
		Package: d.Package,
		Model:   d.ID.Name,
		Layout:  layout,
		Row:     imps.add(e.cfg.RowImport, e.cfg.RowName),
	}

	if d.GenerateString {
		for _, p := range d.Properties {
			if p.Name == "String" {
				return nil, fmt.Errorf("%s: %w", d.ID, ErrStringConflict)
			}
		}

		data.String = true
		if len(layout) > 0 {
			data.Fmt = imps.add("fmt", "")
			data.StringFormat, data.StringArgs = stringFormat(layout)
		}
	}

	for _, p := range d.Properties {
		st := step{Field: p.Name}

		switch {
		case p.Class.IsNested():
			fn := p.Class.Ref.Name + "FromRowAt"
			if p.Class.Ref.PkgPath != d.ID.PkgPath {
				fn = imps.add(p.Class.Ref.PkgPath, p.Type.PkgName) + "." + fn
			}

			st.Call = fn

		case p.Class.IsBasic():
			st.Accessor = p.Class.Basic.Accessor()

			if !p.Class.Basic.Assignable(p.Type) {
				st.Var = imps.unique("v")
				st.Convert = p.Type.ID.Name
				if p.Type.ID.PkgPath != d.ID.PkgPath {
					st.Convert = imps.add(p.Type.ID.PkgPath, p.Type.PkgName) + "." + st.Convert
				}
			}

		default:
			return nil, fmt.Errorf("%s.%s: cannot emit %s property", d.ID, p.Name, p.Class)
		}

		data.Steps = append(data.Steps, st)
	}

	data.Imports = imps.specs()

	return data, nil
}

// stringFormat builds the Sprintf format and arguments listing every
// column as "Path: value", one per line.
func stringFormat(layout []Column) (format string, args []string) {
	lines := make([]string, len(layout))
	args = make([]string, len(layout))

	for i, c := range layout {
		lines[i] = c.Path + ": %v"
		args[i] = "m." + c.Path
	}

	return strconv.Quote(strings.Join(lines, "\n")), args
}
