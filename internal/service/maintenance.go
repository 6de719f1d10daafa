package service

import (
	"context"
	"database/sql"
	"fmt"
)

// MaintenanceService performs destructive database operations behind
// explicit confirmation in the UI.
type MaintenanceService struct {
	DB *sql.DB
}

// ResetProgress clears the saved position and all marks for a project,
// leaving the pattern itself intact.
func (m *MaintenanceService) ResetProgress(ctx context.Context, projectID string) error {
	if _, err := m.DB.ExecContext(ctx, `DELETE FROM positions WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clear position: %w", err)
	}
	if _, err := m.DB.ExecContext(ctx, `DELETE FROM marks WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clear marks: %w", err)
	}
	return nil
}

// Vacuum compacts the database file.
func (m *MaintenanceService) Vacuum(ctx context.Context) error {
	_, err := m.DB.ExecContext(ctx, `VACUUM`)
	return err
}
