package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kiru/beadtrack/internal/database"
	"github.com/kiru/beadtrack/internal/pattern"
)

// ProjectRepo handles projects and their rows and steps.
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func (r *ProjectRepo) List(ctx context.Context) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, row_combine, created_at, updated_at FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.RowCombine, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) Get(ctx context.Context, id string) (*Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, row_combine, created_at, updated_at FROM projects WHERE id = ?`, id)
	var p Project
	if err := row.Scan(&p.ID, &p.Name, &p.RowCombine, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Insert stores a project together with its rows and steps in one
// transaction.
func (r *ProjectRepo) Insert(ctx context.Context, p Project, rows []pattern.Row) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO projects(id, name, row_combine, created_at, updated_at)
		VALUES(?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
		`, p.ID, p.Name, p.RowCombine); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		return insertRows(ctx, tx, p.ID, rows)
	})
}

// ReplaceRows swaps a project's pattern content, keeping the project row.
func (r *ProjectRepo) ReplaceRows(ctx context.Context, projectID string, rows []pattern.Row) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pattern_rows WHERE project_id = ?`, projectID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE projects SET updated_at=CURRENT_TIMESTAMP WHERE id = ?`, projectID); err != nil {
			return err
		}
		return insertRows(ctx, tx, projectID, rows)
	})
}

func insertRows(ctx context.Context, tx *sql.Tx, projectID string, rows []pattern.Row) error {
	for ri, row := range rows {
		if _, err := tx.ExecContext(ctx, `INSERT INTO pattern_rows(project_id, row_index) VALUES(?, ?)`, projectID, ri); err != nil {
			return fmt.Errorf("insert row %d: %w", ri, err)
		}
		for si, s := range row.Steps {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO pattern_steps(project_id, row_index, step_index, bead_count, label)
			VALUES(?, ?, ?, ?, ?);
			`, projectID, ri, si, s.Count, s.Label); err != nil {
				return fmt.Errorf("insert step %d/%d: %w", ri, si, err)
			}
		}
	}
	return nil
}

// Rows loads a project's pattern content in traversal order.
func (r *ProjectRepo) Rows(ctx context.Context, projectID string) ([]pattern.Row, error) {
	rowIdx, err := r.rowIndexes(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT row_index, step_index, bead_count, label
	FROM pattern_steps WHERE project_id = ?
	ORDER BY row_index, step_index;
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byIndex := make(map[int][]pattern.Step, len(rowIdx))
	for rows.Next() {
		var ri, si, count int
		var label string
		if err := rows.Scan(&ri, &si, &count, &label); err != nil {
			return nil, err
		}
		byIndex[ri] = append(byIndex[ri], pattern.NewStep(si+1, count, label))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]pattern.Row, 0, len(rowIdx))
	for _, ri := range rowIdx {
		out = append(out, pattern.Row{ID: ri + 1, Steps: byIndex[ri]})
	}
	return out, nil
}

func (r *ProjectRepo) rowIndexes(ctx context.Context, projectID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT row_index FROM pattern_rows WHERE project_id = ? ORDER BY row_index`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var ri int
		if err := rows.Scan(&ri); err != nil {
			return nil, err
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) Rename(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET name = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, name, id)
	return err
}

func (r *ProjectRepo) SetRowCombine(ctx context.Context, id string, combine bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET row_combine = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, combine, id)
	return err
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}
