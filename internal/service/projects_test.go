package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kiru/beadtrack/internal/database"
	"github.com/kiru/beadtrack/internal/database/repository"
	"github.com/kiru/beadtrack/internal/pattern"
	"github.com/kiru/beadtrack/internal/prefs"
)

func newTestService(t *testing.T) (*ProjectService, *repository.PositionRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	positions := repository.NewPositionRepo(db)
	svc := &ProjectService{
		Projects:  repository.NewProjectRepo(db),
		Positions: positions,
		Marks:     repository.NewMarkRepo(db),
	}
	return svc, positions
}

func TestImportAndLoad(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, _ := newTestService(t)

	id, err := svc.Import(ctx, prefs.ProjectFile{
		Name: "Bracelet",
		Rows: []prefs.RowFile{
			{Steps: []prefs.StepFile{{Count: 3, Label: "A"}}},
			{Steps: []prefs.StepFile{{Count: 2, Label: "B"}}},
		},
		Marks: []prefs.MarkFile{{Row: 0, Step: 0, Mark: 4}, {Row: 1, Step: -1, Mark: 2}},
	})
	require.NoError(t, err)

	lp, err := svc.Load(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Bracelet", lp.Project.Name)
	require.Len(t, lp.Rows, 2)
	require.Nil(t, lp.Position)
	require.Equal(t, 4, lp.StepMarks[pattern.Position{Row: 0, Step: 0}])
	require.Equal(t, 2, lp.RowMarks[1])
	require.Empty(t, lp.CombineWarning)
}

func TestLoadAppliesRowCombine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.Import(ctx, prefs.ProjectFile{
		Name:       "Combined",
		RowCombine: true,
		Rows: []prefs.RowFile{
			{Steps: []prefs.StepFile{{Count: 3, Label: "A"}}},
			{Steps: []prefs.StepFile{{Count: 2, Label: "B"}}},
			{Steps: []prefs.StepFile{{Count: 1, Label: "C"}}},
		},
	})
	require.NoError(t, err)

	lp, err := svc.Load(ctx, id)
	require.NoError(t, err)
	require.Len(t, lp.Rows, 2)
	// The first two rows merge into [3×A, 2×B]; row 3 is untouched.
	merged := lp.Rows[0].Steps
	require.Len(t, merged, 2)
	require.Equal(t, 3, merged[0].Count)
	require.Equal(t, "A", merged[0].Label)
	require.Equal(t, 2, merged[1].Count)
	require.Equal(t, "B", merged[1].Label)
	require.Equal(t, "C", lp.Rows[1].Steps[0].Label)
}

func TestLoadCombineMismatchFallsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.Import(ctx, prefs.ProjectFile{
		Name:       "Lopsided",
		RowCombine: true,
		Rows: []prefs.RowFile{
			{Steps: []prefs.StepFile{{Count: 5, Label: "A"}}},
			{Steps: []prefs.StepFile{{Count: 2, Label: "B"}}},
		},
	})
	require.NoError(t, err)

	lp, err := svc.Load(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, lp.CombineWarning)
	require.Len(t, lp.Rows, 2) // rows used unmodified
	require.Equal(t, 5, lp.Rows[0].Steps[0].Count)
}

func TestLoadDropsStalePosition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, positions := newTestService(t)

	id, err := svc.Import(ctx, prefs.ProjectFile{
		Name: "Short",
		Rows: []prefs.RowFile{{Steps: []prefs.StepFile{{Count: 1, Label: "A"}, {Count: 1, Label: "B"}}}},
	})
	require.NoError(t, err)

	require.NoError(t, positions.Upsert(ctx, id, 0, 1))
	lp, err := svc.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, lp.Position)
	require.Equal(t, pattern.Position{Row: 0, Step: 1}, *lp.Position)

	// A saved cursor beyond the pattern is dropped, not clamped.
	require.NoError(t, positions.Upsert(ctx, id, 4, 9))
	lp, err = svc.Load(ctx, id)
	require.NoError(t, err)
	require.Nil(t, lp.Position)
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	in := prefs.ProjectFile{
		Name:       "Round",
		RowCombine: true,
		Rows: []prefs.RowFile{
			{Steps: []prefs.StepFile{{Count: 2, Label: "A"}}},
			{Steps: []prefs.StepFile{{Count: 2, Label: "B"}}},
		},
		Marks: []prefs.MarkFile{{Row: 0, Step: 0, Mark: 1}},
	}
	id, err := svc.Import(ctx, in)
	require.NoError(t, err)

	out, err := svc.Export(ctx, id)
	require.NoError(t, err)
	require.Equal(t, in.Name, out.Name)
	require.Equal(t, in.RowCombine, out.RowCombine)
	require.Equal(t, in.Rows, out.Rows) // export uses stored rows, not the combined view
	require.Equal(t, in.Marks, out.Marks)
}

func TestPositionWriterFlushesOnClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, positions := newTestService(t)

	id, err := svc.Import(ctx, prefs.ProjectFile{
		Name: "Writer",
		Rows: []prefs.RowFile{{Steps: []prefs.StepFile{{Count: 3, Label: "A"}}}},
	})
	require.NoError(t, err)

	w := NewPositionWriter(ctx, positions, id)
	w.NotifyPosition(0, 0)
	w.NotifyPosition(0, 1)
	w.NotifyPosition(0, 2)
	w.Close()

	saved, err := positions.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, 0, saved.RowIndex)
	require.Equal(t, 2, saved.StepIndex)
}
