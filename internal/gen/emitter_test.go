package gen

import (
	"context"
	"go/parser"
	"go/token"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orm-generator/internal/analyze"
	"orm-generator/internal/model"
)

const shapesPkg = "orm-generator/examples/shapes"

func id(name string) analyze.TypeID {
	return analyze.TypeID{PkgPath: shapesPkg, Name: name}
}

func scalar(name string, k model.BasicType) model.Property {
	_, goName := k.GoType()

	return model.Property{
		Name:  name,
		Class: model.Basic(k),
		Type:  analyze.TypeRef{ID: analyze.TypeID{Name: goName}, Display: goName},
	}
}

func nested(name string, ref analyze.TypeID, pkgName string) model.Property {
	return model.Property{
		Name:  name,
		Class: model.Nested(ref),
		Type:  analyze.TypeRef{ID: ref, PkgName: pkgName, Display: ref.Name},
	}
}

func descriptor(name string, marker analyze.Marker, props ...model.Property) *model.Descriptor {
	return &model.Descriptor{
		ID:         id(name),
		Package:    "shapes",
		Marker:     marker,
		Properties: props,
	}
}

func point() *model.Descriptor {
	return descriptor("Point", analyze.MarkerPlain,
		scalar("X", model.BasicInt32),
		scalar("Y", model.BasicInt32),
	)
}

func dbModel() *model.Descriptor {
	d := descriptor("DbModel", analyze.MarkerNestable,
		scalar("Id", model.BasicInt32),
		scalar("Row1", model.BasicString),
		nested("Point", id("Point"), "shapes"),
		scalar("Row4", model.BasicString),
	)
	d.GenerateString = true

	return d
}

func registry(ds ...*model.Descriptor) model.Registry {
	reg := model.Registry{}
	for _, d := range ds {
		reg[d.ID] = d
	}

	return reg
}

func emit(t *testing.T, d *model.Descriptor, res Resolver) Artifact {
	t.Helper()

	art, err := NewEmitter(DefaultConfig()).Emit(context.Background(), d, res)
	require.NoError(t, err, art.Text)

	_, err = parser.ParseFile(token.NewFileSet(), art.FileName(), art.Text, parser.ParseComments)
	require.NoError(t, err, art.Text)

	return art
}

func TestEmit_Point(t *testing.T) {
	art := emit(t, point(), registry(point()))

	assert.Equal(t, Key{Namespace: "shapes", Name: "Point"}, art.Key)
	assert.Equal(t, "shapes.Point.generated", art.Name())
	assert.Equal(t, "shapes.Point.generated.go", art.FileName())

	assert.Contains(t, art.Text, "// Code generated by orm-generator. DO NOT EDIT.")
	assert.Contains(t, art.Text, "package shapes")
	assert.Contains(t, art.Text, `"orm-generator/row"`)
	assert.Contains(t, art.Text, "func PointFromRow(r row.Reader) (Point, error) {")
	assert.Contains(t, art.Text, "func PointFromRowAt(r row.Reader, index *int) (Point, error) {")
	assert.Contains(t, art.Text, "out.X, err = r.GetInt32(*index)")
	assert.Contains(t, art.Text, "out.Y, err = r.GetInt32(*index)")
	assert.Contains(t, art.Text, `return out, row.FieldError("Point", "X", *index, err)`)
	assert.Contains(t, art.Text, "//\t0: X (Int32)")
	assert.Contains(t, art.Text, "//\t1: Y (Int32)")
	assert.NotContains(t, art.Text, "String()")
	assert.NotContains(t, art.Text, `"fmt"`)
}

func TestEmit_DbModel(t *testing.T) {
	art := emit(t, dbModel(), registry(point(), dbModel()))

	assert.Contains(t, art.Text, "out.Id, err = r.GetInt32(*index)")
	assert.Contains(t, art.Text, "out.Row1, err = r.GetString(*index)")
	assert.Contains(t, art.Text, "out.Point, err = PointFromRowAt(r, index)")
	assert.Contains(t, art.Text, "out.Row4, err = r.GetString(*index)")
	assert.Contains(t, art.Text, "//\t2: Point.X (Int32)")
	assert.Contains(t, art.Text, "//\t4: Row4 (String)")

	assert.Contains(t, art.Text, "func (m DbModel) String() string {")
	assert.Contains(t, art.Text,
		`return fmt.Sprintf("Id: %v\nRow1: %v\nPoint.X: %v\nPoint.Y: %v\nRow4: %v", m.Id, m.Row1, m.Point.X, m.Point.Y, m.Row4)`)
}

func TestLayout_DbModel(t *testing.T) {
	cols, err := Layout(dbModel(), registry(point(), dbModel()))
	require.NoError(t, err)

	want := []Column{
		{Index: 0, Path: "Id", Kind: model.BasicInt32},
		{Index: 1, Path: "Row1", Kind: model.BasicString},
		{Index: 2, Path: "Point.X", Kind: model.BasicInt32},
		{Index: 3, Path: "Point.Y", Kind: model.BasicInt32},
		{Index: 4, Path: "Row4", Kind: model.BasicString},
	}

	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_ThreeLevels(t *testing.T) {
	c := descriptor("C", analyze.MarkerPlain, scalar("Col1", model.BasicInt64))
	b := descriptor("B", analyze.MarkerNestable,
		scalar("Col1", model.BasicString),
		scalar("Col2", model.BasicString),
		nested("C", c.ID, "shapes"),
	)
	a := descriptor("A", analyze.MarkerNestable,
		scalar("First", model.BasicGuid),
		nested("B", b.ID, "shapes"),
		scalar("Last", model.BasicBoolean),
	)

	cols, err := Layout(a, registry(a, b, c))
	require.NoError(t, err)

	paths := make([]string, len(cols))
	for i, col := range cols {
		assert.Equal(t, i, col.Index)
		paths[i] = col.Path
	}

	want := []string{"First", "B.Col1", "B.Col2", "B.C.Col1", "Last"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s\n%s", diff, spew.Sdump(cols))
	}

	// Nested mappers are called with the shared cursor, never at a fixed column.
	art := emit(t, a, registry(a, b, c))
	assert.Contains(t, art.Text, "out.B, err = BFromRowAt(r, index)")
	assert.Contains(t, art.Text, "//\t3: B.C.Col1 (Int64)")
}

func TestEmit_SingleReadsFloat(t *testing.T) {
	d := descriptor("Reading", analyze.MarkerPlain, scalar("Value", model.BasicSingle))

	art := emit(t, d, registry(d))
	assert.Contains(t, art.Text, "out.Value, err = r.GetFloat(*index)")
	assert.NotContains(t, art.Text, "GetSingle")
}

func TestEmit_ConvertsNamedFieldTypes(t *testing.T) {
	local := model.Property{
		Name:  "Count",
		Class: model.Basic(model.BasicInt32),
		Type:  analyze.TypeRef{ID: id("Int32"), PkgName: "shapes", Display: "Int32"},
	}
	foreign := model.Property{
		Name:  "Key",
		Class: model.Basic(model.BasicGuid),
		Type: analyze.TypeRef{
			ID:      analyze.TypeID{PkgPath: "example.com/ids", Name: "Guid"},
			PkgName: "ids",
			Display: "ids.Guid",
		},
	}
	when := model.Property{
		Name:  "When",
		Class: model.Basic(model.BasicDateTime),
		Type:  analyze.TypeRef{ID: analyze.TypeID{PkgPath: "time", Name: "Time"}, PkgName: "time", Display: "time.Time"},
	}

	d := descriptor("Counter", analyze.MarkerPlain, local, foreign, when)
	art := emit(t, d, registry(d))

	assert.Contains(t, art.Text, "v1, err := r.GetInt32(*index)")
	assert.Contains(t, art.Text, "out.Count = Int32(v1)")
	assert.Contains(t, art.Text, "v2, err := r.GetGuid(*index)")
	assert.Contains(t, art.Text, "out.Key = ids.Guid(v2)")
	assert.Contains(t, art.Text, `"example.com/ids"`)
	assert.Contains(t, art.Text, "out.When, err = r.GetDateTime(*index)")
	assert.NotContains(t, art.Text, `"time"`)
}

func TestEmit_CrossPackageNested(t *testing.T) {
	coord := &model.Descriptor{
		ID:      analyze.TypeID{PkgPath: "orm-generator/examples/geo", Name: "Coord"},
		Package: "geo",
		Marker:  analyze.MarkerPlain,
		Properties: []model.Property{
			scalar("Lat", model.BasicDouble),
			scalar("Lng", model.BasicDouble),
		},
	}
	other := model.Property{
		Name:  "Zone",
		Class: model.Basic(model.BasicString),
		Type: analyze.TypeRef{
			ID:      analyze.TypeID{PkgPath: "example.com/other/geo", Name: "String"},
			PkgName: "geo",
		},
	}

	d := descriptor("Place", analyze.MarkerNestable, nested("At", coord.ID, "geo"), other)
	d.GenerateString = true

	art := emit(t, d, registry(d, coord))

	assert.Contains(t, art.Text, `"orm-generator/examples/geo"`)
	assert.Contains(t, art.Text, `geo1 "example.com/other/geo"`)
	assert.Contains(t, art.Text, "out.At, err = geo.CoordFromRowAt(r, index)")
	assert.Contains(t, art.Text, "out.Zone = geo1.String(v1)")
	assert.Contains(t, art.Text, `fmt.Sprintf("At.Lat: %v\nAt.Lng: %v\nZone: %v", m.At.Lat, m.At.Lng, m.Zone)`)
}

func TestEmit_ZeroProperties(t *testing.T) {
	d := descriptor("Empty", analyze.MarkerNestable)
	d.GenerateString = true

	art := emit(t, d, registry(d))

	assert.Contains(t, art.Text, "var out Empty")
	assert.NotContains(t, art.Text, "var err error")
	assert.Contains(t, art.Text, `return ""`)
	assert.NotContains(t, art.Text, `"fmt"`)
}

func TestEmit_Errors(t *testing.T) {
	ctx := context.Background()
	e := NewEmitter(Config{})

	self := descriptor("Node", analyze.MarkerNestable,
		scalar("Id", model.BasicInt32),
		nested("Next", id("Node"), "shapes"),
	)
	_, err := e.Emit(ctx, self, registry(self))
	require.ErrorIs(t, err, ErrCycle)

	_, err = e.Emit(ctx, dbModel(), registry(dbModel()))
	require.ErrorIs(t, err, ErrUnresolved)

	clash := descriptor("Label", analyze.MarkerPlain, scalar("String", model.BasicString))
	clash.GenerateString = true
	_, err = e.Emit(ctx, clash, registry(clash))
	require.ErrorIs(t, err, ErrStringConflict)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.Emit(cancelled, point(), registry(point()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestEmit_FormatFailureReturnsUnformatted(t *testing.T) {
	bad := descriptor("Bad Name", analyze.MarkerPlain, scalar("X", model.BasicInt32))

	art, err := NewEmitter(DefaultConfig()).Emit(context.Background(), bad, registry(bad))
	require.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, art.Text, "func Bad NameFromRowAt")
}

func TestEmit_Deterministic(t *testing.T) {
	reg := registry(point(), dbModel())

	a := emit(t, dbModel(), reg)
	b := emit(t, dbModel(), reg)
	assert.Equal(t, a.Text, b.Text)
}
