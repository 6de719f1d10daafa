package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/kiru/beadtrack/internal/database/repository"
)

// SearchProjects ranks projects against a query: substring matches first,
// then close names by edit distance. An empty query returns the input
// order unchanged.
func SearchProjects(projects []repository.Project, query string) []repository.Project {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return projects
	}

	type scored struct {
		p    repository.Project
		rank int
	}
	var out []scored
	for _, p := range projects {
		name := strings.ToLower(p.Name)
		switch {
		case strings.HasPrefix(name, q):
			out = append(out, scored{p, 0})
		case strings.Contains(name, q):
			out = append(out, scored{p, 1})
		default:
			// Compare against the whole name and each word so a typo in
			// one word of a long name still matches. Allow roughly one
			// typo per three query characters.
			d := levenshtein.ComputeDistance(q, name)
			for _, w := range strings.Fields(name) {
				if wd := levenshtein.ComputeDistance(q, w); wd < d {
					d = wd
				}
			}
			if d <= len(q)/3+1 {
				out = append(out, scored{p, 2 + d})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].rank < out[j].rank })

	ranked := make([]repository.Project, 0, len(out))
	for _, s := range out {
		ranked = append(ranked, s.p)
	}
	return ranked
}
