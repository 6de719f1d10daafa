package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiru/beadtrack/internal/database/repository"
)

func names(ps []repository.Project) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestSearchProjects(t *testing.T) {
	t.Parallel()

	projects := []repository.Project{
		{Name: "Spiral Bracelet"},
		{Name: "Peyote Band"},
		{Name: "Braclet Cuff"}, // misspelled on purpose
		{Name: "Amulet Bag"},
	}

	require.Equal(t,
		[]string{"Spiral Bracelet", "Peyote Band", "Braclet Cuff", "Amulet Bag"},
		names(SearchProjects(projects, "")))

	got := names(SearchProjects(projects, "peyote"))
	require.Equal(t, []string{"Peyote Band"}, got)

	// Substring beats fuzzy; the misspelled name still matches by edit
	// distance on its first word.
	got = names(SearchProjects(projects, "bracelet"))
	require.Equal(t, []string{"Spiral Bracelet", "Braclet Cuff"}, got)

	// Nothing close at all.
	require.Empty(t, names(SearchProjects(projects, "zzzzzz")))
}
