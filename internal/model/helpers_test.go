package model

import (
	"go/token"

	"orm-generator/internal/analyze"
)

const testPkg = "orm-generator/examples/shapes"

func basicRef(name string) analyze.TypeRef {
	return analyze.TypeRef{ID: analyze.TypeID{Name: name}, Display: name}
}

func namedRef(pkgPath, pkgName, name string, marker analyze.Marker) analyze.TypeRef {
	return analyze.TypeRef{
		ID:      analyze.TypeID{PkgPath: pkgPath, Name: name},
		PkgName: pkgName,
		Display: name,
		Marker:  marker,
	}
}

func field(name string, ref analyze.TypeRef) analyze.Field {
	return analyze.Field{
		Name:     name,
		Exported: token.IsExported(name),
		Settable: true,
		Type:     ref,
	}
}

func decl(name string, marker analyze.Marker, fields ...analyze.Field) *analyze.Declaration {
	return &analyze.Declaration{
		ID:       analyze.TypeID{PkgPath: testPkg, Name: name},
		PkgName:  "shapes",
		Marker:   marker,
		Fields:   fields,
		Generate: true,
	}
}
