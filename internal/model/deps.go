package model

import (
	"fmt"
	"hash/fnv"
	"slices"

	"orm-generator/internal/analyze"
)

// DepsKey fingerprints every model reachable from d through nested
// references, d itself excluded. A container's generated code depends on the
// shape of the models it nests, so a change anywhere below it changes the
// key. References missing from reg hash as "missing"; cycles are visited
// once.
func DepsKey(reg Registry, d *Descriptor) string {
	seen := map[analyze.TypeID]bool{d.ID: true}

	var lines []string

	var walk func(*Descriptor)
	walk = func(cur *Descriptor) {
		for _, ref := range cur.NestedRefs() {
			if seen[ref] {
				continue
			}

			seen[ref] = true

			dep, ok := reg.Lookup(ref)
			if !ok {
				lines = append(lines, ref.String()+"=missing")
				continue
			}

			lines = append(lines, ref.String()+"="+dep.Fingerprint())
			walk(dep)
		}
	}
	walk(d)

	if len(lines) == 0 {
		return ""
	}

	slices.Sort(lines)

	h := fnv.New64a()
	for _, l := range lines {
		fmt.Fprintln(h, l)
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
