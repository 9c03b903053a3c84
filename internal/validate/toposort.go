package validate

import (
	"errors"
	"fmt"
	"slices"
)

// errCycle is returned by topoSort when the nesting graph is not acyclic.
var errCycle = errors.New("cycle detected")

// topoSort orders models so that every model comes after the models it
// nests. nests[i] lists the indices model i nests.
//
// Among ready models the lowest index goes first, so the order is stable
// across passes. On a cycle errCycle is returned together with the models
// that could not be placed, ascending: those on a cycle and those nesting
// one.
func topoSort(nests [][]int) (order, blocked []int, err error) {
	n := len(nests)
	pending := make([]int, n)
	nestedBy := make([][]int, n)

	for i, refs := range nests {
		for _, j := range refs {
			if j < 0 || j >= n {
				return nil, nil, fmt.Errorf("model %d nests unknown model %d", i, j)
			}

			pending[i]++
			nestedBy[j] = append(nestedBy[j], i)
		}
	}

	var ready []int

	for i, p := range pending {
		if p == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, i)

		for _, j := range nestedBy[i] {
			pending[j]--
			if pending[j] > 0 {
				continue
			}

			k, _ := slices.BinarySearch(ready, j)
			ready = slices.Insert(ready, k, j)
		}
	}

	if len(order) == n {
		return order, nil, nil
	}

	for i, p := range pending {
		if p > 0 {
			blocked = append(blocked, i)
		}
	}

	return order, blocked, errCycle
}
