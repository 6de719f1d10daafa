package repository

import "time"

// Project represents a projects row. Rows and steps live in their own
// tables and are loaded through ProjectRepo.
type Project struct {
	ID         string
	Name       string
	RowCombine bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SavedPosition represents a positions row: the last committed cursor for a
// project. Last-write-wins; the stored value is always an absolute position.
type SavedPosition struct {
	ProjectID string
	RowIndex  int
	StepIndex int
	UpdatedAt time.Time
}

// Mark represents a marks row. StepIndex -1 is a row-level mark.
type Mark struct {
	ProjectID string
	RowIndex  int
	StepIndex int
	Mark      int
}
