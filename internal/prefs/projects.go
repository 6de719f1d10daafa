// Package prefs reads and writes project exchange files: a JSON snapshot of
// a project's rows, steps, and marks, used for backup and sharing. Files are
// validated structurally only; counts are clamped and labels trimmed on the
// way in.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kiru/beadtrack/internal/pattern"
)

// ProjectFile is the on-disk exchange format.
type ProjectFile struct {
	Name       string     `json:"name"`
	RowCombine bool       `json:"row_combine,omitempty"`
	Rows       []RowFile  `json:"rows"`
	Marks      []MarkFile `json:"marks,omitempty"`
}

type RowFile struct {
	Steps []StepFile `json:"steps"`
}

type StepFile struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

// MarkFile carries one mark; Step -1 is a row-level mark.
type MarkFile struct {
	Row  int `json:"row"`
	Step int `json:"step"`
	Mark int `json:"mark"`
}

// Pattern converts the file's content into model rows, sanitizing step
// input through the constructor.
func (f ProjectFile) Pattern() []pattern.Row {
	out := make([]pattern.Row, 0, len(f.Rows))
	for ri, row := range f.Rows {
		r := pattern.Row{ID: ri + 1}
		for si, s := range row.Steps {
			r.Steps = append(r.Steps, pattern.NewStep(si+1, s.Count, s.Label))
		}
		out = append(out, r)
	}
	return out
}

// FromPattern builds an exchange file from model rows.
func FromPattern(name string, rowCombine bool, rows []pattern.Row) ProjectFile {
	f := ProjectFile{Name: name, RowCombine: rowCombine}
	for _, row := range rows {
		rf := RowFile{Steps: make([]StepFile, 0, len(row.Steps))}
		for _, s := range row.Steps {
			rf.Steps = append(rf.Steps, StepFile{Count: s.Count, Label: s.Label})
		}
		f.Rows = append(f.Rows, rf)
	}
	return f
}

// SaveProject writes the file atomically.
func SaveProject(path string, f ProjectFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadProject reads and structurally validates an exchange file.
func LoadProject(path string) (ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProjectFile{}, err
	}
	var f ProjectFile
	if err := json.Unmarshal(data, &f); err != nil {
		return ProjectFile{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if f.Name == "" {
		f.Name = filepath.Base(path)
	}
	if len(f.Rows) == 0 {
		return ProjectFile{}, fmt.Errorf("%s: project has no rows", filepath.Base(path))
	}
	return f, nil
}
