package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

// TagKey is the struct tag key read from model fields. `orm:"-"` excludes a
// field from mapping.
const TagKey = "orm"

// GeneratedSuffix is the file suffix of generated mappers. Type errors
// inside such files are tolerated so stale output never blocks regeneration.
const GeneratedSuffix = ".generated.go"

// Analyzer loads Go packages and builds declaration snapshots.
type Analyzer struct {
	dir string
}

// NewAnalyzer creates a new Analyzer. dir is the working directory used to
// resolve package patterns; empty means the process working directory.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{dir: dir}
}

// loadState holds the per-pass state of LoadPackages.
type loadState struct {
	decls   []Declaration
	markers map[TypeID]Marker
	loaded  map[string]bool
	modules map[string]bool
}

// LoadPackages loads the packages matching patterns and returns a snapshot
// of their marked struct types. Patterns are standard Go package patterns
// (e.g., "./models", "orm-generator/examples/shapes").
//
// Marked types referenced from other packages of the same module are loaded
// as well so their shape is known; they are returned with Generate=false.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*Snapshot, error) {
	st := &loadState{
		markers: make(map[TypeID]Marker),
		loaded:  make(map[string]bool),
		modules: make(map[string]bool),
	}

	pkgs, err := a.load(ctx, patterns)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		if pkg.Module != nil {
			st.modules[pkg.Module.Path] = true
		}

		st.indexPackage(pkg, true)
	}

	for {
		pending := st.pendingPackages()
		if len(pending) == 0 {
			break
		}

		deps, err := a.load(ctx, pending)
		if err != nil {
			return nil, fmt.Errorf("failed to load referenced packages: %w", err)
		}

		for _, path := range pending {
			st.loaded[path] = true
		}

		for _, pkg := range deps {
			st.indexPackage(pkg, false)
		}
	}

	st.resolveMarkers()

	return NewSnapshot(st.decls...), nil
}

func (a *Analyzer) load(ctx context.Context, patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if a.tolerated(e) {
				continue
			}

			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	return pkgs, nil
}

// tolerated reports whether a package error comes from a generated file.
func (a *Analyzer) tolerated(e packages.Error) bool {
	if e.Kind != packages.TypeError {
		return false
	}

	file, _, _ := strings.Cut(e.Pos, ":")

	return strings.HasSuffix(file, GeneratedSuffix)
}

// indexPackage records every marked struct type of a loaded package.
func (st *loadState) indexPackage(pkg *packages.Package, generate bool) {
	st.loaded[pkg.PkgPath] = true

	if pkg.Types == nil || pkg.TypesInfo == nil {
		return
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				marker, args := markerFromDoc(doc)
				if !marker.Marked() {
					continue
				}

				if d, ok := declarationOf(pkg, ts, marker, args); ok {
					d.Generate = generate
					st.markers[d.ID] = marker
					st.decls = append(st.decls, d)
				}
			}
		}
	}
}

// declarationOf builds a Declaration for a marked type spec. Only
// non-generic struct types qualify.
func declarationOf(pkg *packages.Package, ts *ast.TypeSpec, marker Marker, args map[string]string) (Declaration, bool) {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok || ts.TypeParams != nil {
		return Declaration{}, false
	}

	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return Declaration{}, false
	}

	pos := pkg.Fset.Position(ts.Name.Pos())

	return Declaration{
		ID:       TypeID{PkgPath: pkg.PkgPath, Name: obj.Name()},
		PkgName:  pkg.Name,
		Dir:      filepath.Dir(pos.Filename),
		Marker:   marker,
		Args:     args,
		Fields:   fieldsOf(pkg, st),
		Pos:      pos,
		Generate: true,
	}, true
}

// fieldsOf extracts all fields of a struct type in declaration order.
func fieldsOf(pkg *packages.Package, st *types.Struct) []Field {
	fields := make([]Field, 0, st.NumFields())

	for i := range st.NumFields() {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		fields = append(fields, Field{
			Name:     v.Name(),
			Exported: v.Exported(),
			Settable: tag.Get(TagKey) != "-",
			Embedded: v.Embedded(),
			Type:     refOf(v.Type(), pkg.Types),
			Tag:      tag,
			Pos:      pkg.Fset.Position(v.Pos()),
		})
	}

	return fields
}

// qualifier spells types of other packages by package name, as source does.
func qualifier(from *types.Package) types.Qualifier {
	return func(p *types.Package) string {
		if p == from {
			return ""
		}

		return p.Name()
	}
}

// refOf describes a field type. Only basic and named types carry a short
// name; everything else is reported by its display form alone.
func refOf(t types.Type, from *types.Package) TypeRef {
	ref := TypeRef{Display: types.TypeString(t, qualifier(from))}

	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		ref.ID.Name = tt.Name()

	case *types.Named:
		obj := tt.Obj()
		ref.ID.Name = obj.Name()

		if obj.Pkg() != nil {
			ref.ID.PkgPath = obj.Pkg().Path()
			ref.PkgName = obj.Pkg().Name()
		}
	}

	return ref
}

// pendingPackages lists packages referenced by field types that belong to
// one of the loaded modules but have not been indexed yet.
func (st *loadState) pendingPackages() []string {
	seen := make(map[string]bool)

	var out []string

	for _, d := range st.decls {
		for _, f := range d.Fields {
			path := f.Type.ID.PkgPath
			if path == "" || st.loaded[path] || seen[path] || !st.inModules(path) {
				continue
			}

			seen[path] = true
			out = append(out, path)
		}
	}

	sort.Strings(out)

	return out
}

func (st *loadState) inModules(pkgPath string) bool {
	for mod := range st.modules {
		if pkgPath == mod || strings.HasPrefix(pkgPath, mod+"/") {
			return true
		}
	}

	return false
}

// resolveMarkers stores the marker of each referenced type on the fields.
func (st *loadState) resolveMarkers() {
	for i := range st.decls {
		fields := st.decls[i].Fields
		for j := range fields {
			if m, ok := st.markers[fields[j].Type.ID]; ok {
				fields[j].Type.Marker = m
			}
		}
	}
}
