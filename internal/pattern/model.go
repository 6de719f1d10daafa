// Package pattern holds the in-memory model for a beading pattern — counted
// steps grouped into rows — and the expand/compress/zip transforms over them.
package pattern

import "strings"

// Step is the smallest counted, labeled element of a pattern.
// Count is always at least 1; use NewStep to construct one from raw input.
type Step struct {
	ID    int
	Count int
	Label string
}

// NewStep builds a step from raw input. The label is trimmed and the count
// is clamped to 1 when it comes in zero or negative; bad input from an
// importer is sanitized here, never rejected.
func NewStep(id, count int, label string) Step {
	if count < 1 {
		count = 1
	}
	return Step{ID: id, Count: count, Label: strings.TrimSpace(label)}
}

// Beads is the total bead count of the step sequence.
func Beads(steps []Step) int {
	total := 0
	for _, s := range steps {
		total += s.Count
	}
	return total
}

// Row is an ordered sequence of steps. Order defines traversal order.
type Row struct {
	ID    int
	Steps []Step
}

// Position is the (row, step) cursor into a pattern. It is a plain value;
// copies are free and there is no shared ownership.
type Position struct {
	Row  int
	Step int
}

// Valid reports whether p addresses an existing step in rows.
func (p Position) Valid(rows []Row) bool {
	if p.Row < 0 || p.Row >= len(rows) {
		return false
	}
	return p.Step >= 0 && p.Step < len(rows[p.Row].Steps)
}

// Project is a loaded pattern: its rows plus the saved cursor, if any.
type Project struct {
	ID         string
	Name       string
	RowCombine bool
	Rows       []Row
	Position   *Position
}
