package model

import (
	"strings"

	"orm-generator/internal/analyze"
)

//go:generate go tool stringer -type=BasicType -trimprefix=Basic -output=basictype_string.go

// BasicType is a scalar column kind directly readable from a row.
type BasicType int

const (
	BasicUnknown BasicType = iota // not a recognized scalar
	BasicBoolean
	BasicByte
	BasicChar
	BasicDateTime
	BasicDecimal
	BasicDouble
	BasicSingle
	BasicGuid
	BasicInt16
	BasicInt32
	BasicInt64
	BasicString
	BasicTimeSpan

	// BasicTotal is the number of kinds defined, BasicUnknown included.
	BasicTotal = int(iota)
)

// scalarNames lists every short type name recognized as a scalar. Go
// spellings come first so suggestions prefer them.
var scalarNames = []struct {
	name string
	kind BasicType
}{
	{"bool", BasicBoolean},
	{"byte", BasicByte},
	{"uint8", BasicByte},
	{"rune", BasicChar},
	{"Time", BasicDateTime},
	{"float64", BasicDouble},
	{"float32", BasicSingle},
	{"UUID", BasicGuid},
	{"Duration", BasicTimeSpan},
	{"int16", BasicInt16},
	{"int32", BasicInt32},
	{"int64", BasicInt64},
	{"string", BasicString},

	{"Boolean", BasicBoolean},
	{"Byte", BasicByte},
	{"Char", BasicChar},
	{"DateTime", BasicDateTime},
	{"Decimal", BasicDecimal},
	{"Double", BasicDouble},
	{"Single", BasicSingle},
	{"Guid", BasicGuid},
	{"Int16", BasicInt16},
	{"Int32", BasicInt32},
	{"Int64", BasicInt64},
	{"String", BasicString},
	{"TimeSpan", BasicTimeSpan},
}

// scalarLookup is keyed by the lower-cased short name.
var scalarLookup = func() map[string]BasicType {
	m := make(map[string]BasicType, len(scalarNames))
	for _, s := range scalarNames {
		m[strings.ToLower(s.name)] = s.kind
	}

	return m
}()

// LookupBasic matches a short type name case-insensitively against the
// recognized scalar names. Namespace qualification is never considered.
func LookupBasic(shortName string) (BasicType, bool) {
	if shortName == "" {
		return BasicUnknown, false
	}

	k, ok := scalarLookup[strings.ToLower(shortName)]

	return k, ok
}

// accessors maps each kind to the name of its row accessor. Single reads
// through "Float", which is not derivable from the kind name.
var accessors = [BasicTotal]string{
	BasicUnknown:  "",
	BasicBoolean:  "Boolean",
	BasicByte:     "Byte",
	BasicChar:     "Char",
	BasicDateTime: "DateTime",
	BasicDecimal:  "Decimal",
	BasicDouble:   "Double",
	BasicSingle:   "Float",
	BasicGuid:     "Guid",
	BasicInt16:    "Int16",
	BasicInt32:    "Int32",
	BasicInt64:    "Int64",
	BasicString:   "String",
	BasicTimeSpan: "TimeSpan",
}

// Accessor returns the row accessor suffix for the kind ("Get" + Accessor).
// It is empty for BasicUnknown.
func (k BasicType) Accessor() string {
	if k < 0 || int(k) >= BasicTotal {
		return ""
	}

	return accessors[k]
}

// Valid reports whether k is a readable scalar kind.
func (k BasicType) Valid() bool {
	return k > BasicUnknown && int(k) < BasicTotal
}

// goTypes is the Go type returned by each row accessor.
var goTypes = [BasicTotal]struct{ pkgPath, name string }{
	BasicBoolean:  {"", "bool"},
	BasicByte:     {"", "byte"},
	BasicChar:     {"", "rune"},
	BasicDateTime: {"time", "Time"},
	BasicDecimal:  {"github.com/shopspring/decimal", "Decimal"},
	BasicDouble:   {"", "float64"},
	BasicSingle:   {"", "float32"},
	BasicGuid:     {"github.com/google/uuid", "UUID"},
	BasicInt16:    {"", "int16"},
	BasicInt32:    {"", "int32"},
	BasicInt64:    {"", "int64"},
	BasicString:   {"", "string"},
	BasicTimeSpan: {"time", "Duration"},
}

// GoType returns the package path and name of the type the kind's accessor
// returns. The path is empty for predeclared types.
func (k BasicType) GoType() (pkgPath, name string) {
	if !k.Valid() {
		return "", ""
	}

	t := goTypes[k]

	return t.pkgPath, t.name
}

// Assignable reports whether a value of the accessor's result type can be
// assigned to a field of type ref without a conversion. Predeclared types
// always match, since the lookup maps each of them to its own kind.
func (k BasicType) Assignable(ref analyze.TypeRef) bool {
	if ref.ID.PkgPath == "" {
		return true
	}

	pkgPath, name := k.GoType()

	return ref.ID.PkgPath == pkgPath && ref.ID.Name == name
}
