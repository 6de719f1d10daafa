package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiru/beadtrack/internal/database/repository"
	"github.com/kiru/beadtrack/internal/pattern"
	"github.com/kiru/beadtrack/internal/prefs"
)

// LoadedProject is everything a pattern view needs: the combined rows, the
// saved cursor if one is still valid, and the mark state.
type LoadedProject struct {
	Project   repository.Project
	Rows      []pattern.Row
	Position  *pattern.Position
	StepMarks map[pattern.Position]int
	RowMarks  map[int]int
	// CombineWarning is set when row-combine was requested but the first
	// two rows could not be zipped; the rows are then used unmodified.
	CombineWarning string
}

// ProjectService loads and stores projects.
type ProjectService struct {
	Projects  *repository.ProjectRepo
	Positions *repository.PositionRepo
	Marks     *repository.MarkRepo
}

// Load fetches a project and prepares it for navigation. With row-combine
// enabled the first two rows are zipped into one before anything else; a
// length mismatch downgrades to the unmodified rows with a warning rather
// than failing the load.
func (s *ProjectService) Load(ctx context.Context, id string) (*LoadedProject, error) {
	proj, err := s.Projects.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if proj == nil {
		return nil, fmt.Errorf("load project %s: not found", id)
	}

	rows, err := s.Projects.Rows(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}

	out := &LoadedProject{Project: *proj, Rows: rows}

	if proj.RowCombine && len(rows) >= 2 {
		merged, err := pattern.Zip(rows[0].Steps, rows[1].Steps)
		if err != nil {
			var lm *pattern.LengthMismatchError
			if !errors.As(err, &lm) {
				return nil, fmt.Errorf("combine rows: %w", err)
			}
			out.CombineWarning = fmt.Sprintf("rows 1 and 2 not combined: %v", lm)
		} else {
			combined := make([]pattern.Row, 0, len(rows)-1)
			combined = append(combined, pattern.Row{ID: rows[0].ID, Steps: merged})
			combined = append(combined, rows[2:]...)
			out.Rows = combined
		}
	}

	if err := s.loadPosition(ctx, out); err != nil {
		return nil, err
	}
	if err := s.loadMarks(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProjectService) loadPosition(ctx context.Context, lp *LoadedProject) error {
	saved, err := s.Positions.Get(ctx, lp.Project.ID)
	if err != nil {
		return fmt.Errorf("load position: %w", err)
	}
	if saved == nil {
		return nil
	}
	pos := pattern.Position{Row: saved.RowIndex, Step: saved.StepIndex}
	// A stale cursor (pattern edited or combined since it was saved) is
	// dropped rather than clamped.
	if pos.Valid(lp.Rows) {
		lp.Position = &pos
	}
	return nil
}

func (s *ProjectService) loadMarks(ctx context.Context, lp *LoadedProject) error {
	all, err := s.Marks.List(ctx, lp.Project.ID)
	if err != nil {
		return fmt.Errorf("load marks: %w", err)
	}
	lp.StepMarks = make(map[pattern.Position]int)
	lp.RowMarks = make(map[int]int)
	for _, m := range all {
		if m.IsRowMark() {
			lp.RowMarks[m.RowIndex] = m.Mark
			continue
		}
		lp.StepMarks[pattern.Position{Row: m.RowIndex, Step: m.StepIndex}] = m.Mark
	}
	return nil
}

// Import stores an exchange file as a new project and returns its id.
func (s *ProjectService) Import(ctx context.Context, f prefs.ProjectFile) (string, error) {
	id := uuid.NewString()
	p := repository.Project{ID: id, Name: f.Name, RowCombine: f.RowCombine}
	if err := s.Projects.Insert(ctx, p, f.Pattern()); err != nil {
		return "", fmt.Errorf("import %s: %w", f.Name, err)
	}
	for _, m := range f.Marks {
		if m.Mark < 1 || m.Mark > 6 {
			continue
		}
		var err error
		if m.Step < 0 {
			err = s.Marks.SetRowMark(ctx, id, m.Row, m.Mark)
		} else {
			err = s.Marks.SetStepMark(ctx, id, m.Row, m.Step, m.Mark)
		}
		if err != nil {
			return "", fmt.Errorf("import marks for %s: %w", f.Name, err)
		}
	}
	return id, nil
}

// Export snapshots a project into an exchange file. The stored rows are
// exported, not the combined view.
func (s *ProjectService) Export(ctx context.Context, id string) (prefs.ProjectFile, error) {
	proj, err := s.Projects.Get(ctx, id)
	if err != nil {
		return prefs.ProjectFile{}, err
	}
	if proj == nil {
		return prefs.ProjectFile{}, fmt.Errorf("export %s: not found", id)
	}
	rows, err := s.Projects.Rows(ctx, id)
	if err != nil {
		return prefs.ProjectFile{}, err
	}
	f := prefs.FromPattern(proj.Name, proj.RowCombine, rows)

	all, err := s.Marks.List(ctx, id)
	if err != nil {
		return prefs.ProjectFile{}, err
	}
	for _, m := range all {
		step := m.StepIndex
		if m.IsRowMark() {
			step = -1
		}
		f.Marks = append(f.Marks, prefs.MarkFile{Row: m.RowIndex, Step: step, Mark: m.Mark})
	}
	return f, nil
}
