package gen

import (
	"slices"
	"strconv"
	"strings"

	"orm-generator/internal/common"
)

// importSpec is a single import line.
type importSpec struct {
	Alias string // empty when the path's last element is the package name
	Path  string
}

// importSet assigns collision-free local names to imported packages.
type importSet struct {
	names map[string]string // path -> local name
	taken map[string]struct{}
}

func newImportSet(reserved ...string) *importSet {
	s := &importSet{
		names: make(map[string]string),
		taken: make(map[string]struct{}, len(reserved)),
	}

	for _, r := range reserved {
		s.taken[r] = struct{}{}
	}

	return s
}

// add registers path and returns the name code must use to refer to it.
// name is the package name; when empty the last path element is assumed.
func (s *importSet) add(path, name string) string {
	if local, ok := s.names[path]; ok {
		return local
	}

	if name == "" {
		name = common.PkgAlias(path)
	}

	local := name
	if _, clash := s.taken[local]; clash {
		local = s.unique(name)
	}

	s.taken[local] = struct{}{}
	s.names[path] = local

	return local
}

// unique returns the first of stem1, stem2, ... not taken yet and takes it.
func (s *importSet) unique(stem string) string {
	for i := 1; ; i++ {
		name := stem + strconv.Itoa(i)
		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}

// specs returns the import lines sorted by path.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.names))

	for path, local := range s.names {
		spec := importSpec{Path: path}
		if local != common.PkgAlias(path) {
			spec.Alias = local
		}

		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}
