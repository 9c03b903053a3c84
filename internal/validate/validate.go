package validate

import (
	"errors"
	"fmt"
	"strings"

	"orm-generator/internal/analyze"
	"orm-generator/internal/diagnostic"
	"orm-generator/internal/model"
)

// Validator runs rules over a snapshot.
type Validator struct {
	rules []Rule
}

// New creates a Validator running rules, or Rules when none are given.
func New(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = Rules
	}

	return &Validator{rules: rules}
}

// Validate checks every declaration code is generated for, then looks for
// models nesting themselves. The result is sorted by location.
func (v *Validator) Validate(snap *analyze.Snapshot) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, decl := range snap.Targets() {
		t := &Target{Decl: decl, Fields: model.ClassifyAll(decl)}

		for _, r := range v.rules {
			for _, d := range r.Check(t) {
				diags.Add(d)
			}
		}
	}

	for _, d := range Cycles(snap) {
		diags.Add(d)
	}

	diags.Sort()

	return diags
}

// Validate runs the default rules over snap.
func Validate(snap *analyze.Snapshot) diagnostic.Diagnostics {
	return New().Validate(snap)
}

// Cycles reports every target model that nests itself, directly or through
// other models. Models only reachable from a cycle are not reported.
func Cycles(snap *analyze.Snapshot) []diagnostic.Diagnostic {
	decls := snap.Declarations
	edges := make([][]int, len(decls))

	for i := range decls {
		for _, f := range model.ClassifyAll(&decls[i]) {
			if !f.Class.IsNested() {
				continue
			}

			if j, ok := snap.Index(f.Class.Ref); ok {
				edges[i] = append(edges[i], j)
			}
		}
	}

	_, blocked, err := topoSort(edges)
	if !errors.Is(err, errCycle) {
		return nil
	}

	var out []diagnostic.Diagnostic

	for _, i := range blocked {
		if !decls[i].Generate {
			continue
		}

		path := cyclePath(decls, edges, i)
		if path == nil {
			continue
		}

		out = append(out, diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     CodeNestingCycle,
			Message:  fmt.Sprintf(msgNestingCycle, decls[i].ID.Name, strings.Join(path, " -> ")),
			Location: decls[i].Pos,
			TypeName: decls[i].ID.Name,
		})
	}

	return out
}

// cyclePath returns the shortest chain of type names leading from start
// back to itself, or nil when start is not on a cycle.
func cyclePath(decls []analyze.Declaration, edges [][]int, start int) []string {
	prev := make(map[int]int)
	queue := []int{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range edges[cur] {
			if next == start {
				chain := []int{start}
				for n := cur; n != start; n = prev[n] {
					chain = append(chain, n)
				}

				names := []string{decls[start].ID.Name}
				for k := len(chain) - 1; k >= 1; k-- {
					names = append(names, decls[chain[k]].ID.Name)
				}

				return append(names, decls[start].ID.Name)
			}

			if _, seen := prev[next]; seen {
				continue
			}

			prev[next] = cur
			queue = append(queue, next)
		}
	}

	return nil
}
