package repository

import (
	"context"
	"database/sql"
)

// rowMarkStep is the step_index sentinel for row-level marks.
const rowMarkStep = -1

// MarkRepo handles persisted marks.
type MarkRepo struct {
	db *sql.DB
}

func NewMarkRepo(db *sql.DB) *MarkRepo { return &MarkRepo{db: db} }

// SetStepMark stores mark for a step; mark 0 deletes the entry.
func (r *MarkRepo) SetStepMark(ctx context.Context, projectID string, rowIndex, stepIndex, mark int) error {
	return r.set(ctx, projectID, rowIndex, stepIndex, mark)
}

// SetRowMark stores a row-level mark; mark 0 deletes the entry.
func (r *MarkRepo) SetRowMark(ctx context.Context, projectID string, rowIndex, mark int) error {
	return r.set(ctx, projectID, rowIndex, rowMarkStep, mark)
}

func (r *MarkRepo) set(ctx context.Context, projectID string, rowIndex, stepIndex, mark int) error {
	if mark == 0 {
		_, err := r.db.ExecContext(ctx, `DELETE FROM marks WHERE project_id = ? AND row_index = ? AND step_index = ?`, projectID, rowIndex, stepIndex)
		return err
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO marks(project_id, row_index, step_index, mark)
	VALUES(?, ?, ?, ?)
	ON CONFLICT(project_id, row_index, step_index) DO UPDATE SET mark=excluded.mark;
	`, projectID, rowIndex, stepIndex, mark)
	return err
}

// List returns all marks for a project, step marks and row marks together.
func (r *MarkRepo) List(ctx context.Context, projectID string) ([]Mark, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT project_id, row_index, step_index, mark FROM marks WHERE project_id = ? ORDER BY row_index, step_index`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Mark
	for rows.Next() {
		var m Mark
		if err := rows.Scan(&m.ProjectID, &m.RowIndex, &m.StepIndex, &m.Mark); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// IsRowMark reports whether m is a row-level mark.
func (m Mark) IsRowMark() bool { return m.StepIndex == rowMarkStep }

// ClearAll removes every mark for a project.
func (r *MarkRepo) ClearAll(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM marks WHERE project_id = ?`, projectID)
	return err
}
