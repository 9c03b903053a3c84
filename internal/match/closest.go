package match

import (
	"cmp"
	"slices"
)

// Candidate is a scored name.
type Candidate struct {
	Label string
	Score float64
}

// Rank scores every candidate against query and returns those scoring at
// least minScore, sorted by score (descending) then label.
func Rank(query string, candidates []string, minScore float64) []Candidate {
	var out []Candidate

	for _, c := range candidates {
		s := Similarity(query, c)
		if s < minScore {
			continue
		}

		out = append(out, Candidate{Label: c, Score: s})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}

		return cmp.Compare(a.Label, b.Label)
	})

	return out
}

// Closest returns the labels of the best n candidates of Rank.
func Closest(query string, candidates []string, minScore float64, n int) []string {
	ranked := Rank(query, candidates, minScore)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	if len(ranked) == 0 {
		return nil
	}

	labels := make([]string, len(ranked))
	for i, c := range ranked {
		labels[i] = c.Label
	}

	return labels
}
