package common

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

// majorVersion matches a trailing /vN module path element.
var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// PkgAlias guesses the package name of an import path the way goimports
// does: the last element, skipping a /vN major version, with a gopkg.in
// ".vN" suffix and a "go-" prefix dropped. Characters that cannot appear in
// an identifier become underscores. Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if majorVersion.MatchString(base) {
		if parent := path.Dir(pkgPath); parent != "." {
			base = path.Base(parent)
		}
	}

	if i := strings.Index(base, ".v"); i > 0 && majorVersion.MatchString(base[i+1:]) {
		base = base[:i]
	}

	base = strings.TrimPrefix(base, "go-")

	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, base)
}
