package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kiru/beadtrack/internal/pattern"
)

// SeedDefaults ensures a small sample project exists for new databases so
// the picker is never empty on first launch. It is idempotent and safe to
// run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := NewProjectRepo(db)
	existing, err := repo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}

	rows := []pattern.Row{
		{ID: 1, Steps: []pattern.Step{
			pattern.NewStep(1, 6, "MC"),
		}},
		{ID: 2, Steps: []pattern.Step{
			pattern.NewStep(1, 2, "MC"),
			pattern.NewStep(2, 1, "CC"),
			pattern.NewStep(3, 2, "MC"),
			pattern.NewStep(4, 1, "CC"),
		}},
		{ID: 3, Steps: []pattern.Step{
			pattern.NewStep(1, 1, "CC"),
			pattern.NewStep(2, 4, "MC"),
			pattern.NewStep(3, 1, "CC"),
		}},
	}

	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("project:Sample Spiral")).String()
	return repo.Insert(ctx, Project{ID: id, Name: "Sample Spiral"}, rows)
}
