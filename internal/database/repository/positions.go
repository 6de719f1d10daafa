package repository

import (
	"context"
	"database/sql"
)

// PositionRepo handles the saved cursor per project.
type PositionRepo struct {
	db *sql.DB
}

func NewPositionRepo(db *sql.DB) *PositionRepo { return &PositionRepo{db: db} }

// Upsert records the latest committed position. Notifications may arrive out
// of order from a draining queue; each one carries the absolute position, so
// last-write-wins is enough.
func (r *PositionRepo) Upsert(ctx context.Context, projectID string, rowIndex, stepIndex int) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO positions(project_id, row_index, step_index, updated_at)
	VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(project_id) DO UPDATE SET
	 row_index=excluded.row_index, step_index=excluded.step_index, updated_at=CURRENT_TIMESTAMP;
	`, projectID, rowIndex, stepIndex)
	return err
}

func (r *PositionRepo) Get(ctx context.Context, projectID string) (*SavedPosition, error) {
	row := r.db.QueryRowContext(ctx, `SELECT project_id, row_index, step_index, updated_at FROM positions WHERE project_id = ?`, projectID)
	var p SavedPosition
	if err := row.Scan(&p.ProjectID, &p.RowIndex, &p.StepIndex, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PositionRepo) Clear(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE project_id = ?`, projectID)
	return err
}
