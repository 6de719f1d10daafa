// Package nav implements the cursor state machine that walks a pattern's
// rows and steps: single-step and row-level moves, bounded multi-step
// batches, and wraparound at the pattern ends.
package nav

import (
	"fmt"

	"github.com/kiru/beadtrack/internal/pattern"
)

// Boundary is the explicit result of a move. Boundary conditions are normal
// outcomes, not errors: the cursor is left where it was and the caller
// decides what to do next.
type Boundary int

const (
	Moved Boundary = iota
	AtRowEnd
	AtRowStart
	AtPatternEnd
	AtPatternStart
	Wrapped
)

// Notifier receives every committed cursor change. Implementations must be
// fire-and-forget: NotifyPosition is called after the in-memory move is
// already final and must never block it or roll it back.
type Notifier interface {
	NotifyPosition(row, step int)
}

// Activator receives the unit-activation side effect when a row transition
// lands on a step, as if that step had been clicked. The mark overlay hooks
// in here.
type Activator interface {
	ActivateStep(pos pattern.Position)
}

// Tracker owns the single cursor over a loaded pattern. One tracker per open
// pattern view; moves are plain functions of the current state, so callers
// on other goroutines only need to serialize their updates.
type Tracker struct {
	rows      []pattern.Row
	pos       pattern.Position
	set       bool
	notifier  Notifier
	activator Activator
}

// New builds a tracker over rows. Notifier and activator may be nil.
func New(rows []pattern.Row, notifier Notifier, activator Activator) *Tracker {
	return &Tracker{rows: rows, notifier: notifier, activator: activator}
}

// Rows returns the pattern the tracker walks.
func (t *Tracker) Rows() []pattern.Row { return t.rows }

// Position returns the current cursor and whether one is set.
func (t *Tracker) Position() (pattern.Position, bool) { return t.pos, t.set }

// Select moves the cursor directly to pos. It is the "normal click" path.
func (t *Tracker) Select(pos pattern.Position) error {
	if !pos.Valid(t.rows) {
		return fmt.Errorf("select %d/%d: %w", pos.Row, pos.Step, pattern.ErrOutOfRange)
	}
	t.commit(pos)
	return nil
}

// Reset places the cursor on the first step of the first row.
func (t *Tracker) Reset() error {
	start := pattern.Position{}
	if !start.Valid(t.rows) {
		return pattern.ErrOutOfRange
	}
	t.commit(start)
	return nil
}

// StepForward advances one step within the current row. At the last step it
// reports AtRowEnd and leaves the cursor alone; the caller chooses whether
// to cross into the next row.
func (t *Tracker) StepForward() Boundary {
	if !t.set {
		return AtRowStart
	}
	next := pattern.Position{Row: t.pos.Row, Step: t.pos.Step + 1}
	if !next.Valid(t.rows) {
		return AtRowEnd
	}
	t.commit(next)
	return Moved
}

// StepBackward retreats one step within the current row, reporting
// AtRowStart at the first step.
func (t *Tracker) StepBackward() Boundary {
	if !t.set {
		return AtRowStart
	}
	if t.pos.Step == 0 {
		return AtRowStart
	}
	t.commit(pattern.Position{Row: t.pos.Row, Step: t.pos.Step - 1})
	return Moved
}

// RowForward moves to the first step of the next row and re-fires the
// activation side effect for that step, as if it had been clicked. At the
// last row it reports AtPatternEnd with the cursor unchanged.
func (t *Tracker) RowForward() Boundary {
	if !t.set {
		return AtPatternStart
	}
	next := pattern.Position{Row: t.pos.Row + 1, Step: 0}
	if !next.Valid(t.rows) {
		return AtPatternEnd
	}
	t.commit(next)
	if t.activator != nil {
		t.activator.ActivateStep(next)
	}
	return Moved
}

// RowBackward moves to the previous row, landing on its last step — backward
// traversal continues from the end of the prior row, not its start. At the
// first row it reports AtPatternStart.
func (t *Tracker) RowBackward() Boundary {
	if !t.set {
		return AtPatternStart
	}
	if t.pos.Row == 0 {
		return AtPatternStart
	}
	row := t.pos.Row - 1
	last := len(t.rows[row].Steps) - 1
	prev := pattern.Position{Row: row, Step: last}
	if !prev.Valid(t.rows) {
		return AtPatternStart
	}
	t.commit(prev)
	return Moved
}

// Advance applies StepForward up to n times, stopping early the first time
// the row end is hit. It deliberately never chains into RowForward: a batch
// move must not jump rows. Returns how many steps were actually taken.
func (t *Tracker) Advance(n int) int {
	taken := 0
	for i := 0; i < n; i++ {
		if t.StepForward() != Moved {
			break
		}
		taken++
	}
	return taken
}

// Retreat is the backward counterpart of Advance, stopping at the row start.
func (t *Tracker) Retreat(n int) int {
	taken := 0
	for i := 0; i < n; i++ {
		if t.StepBackward() != Moved {
			break
		}
		taken++
	}
	return taken
}

// AdvanceOne is the single-step UI operation: step forward, crossing into
// the next row when the current one is done. Running off the end of the
// pattern wraps the cursor back to the first step of the first row and
// reports Wrapped.
func (t *Tracker) AdvanceOne() Boundary {
	if b := t.StepForward(); b == Moved {
		return Moved
	}
	if b := t.RowForward(); b == Moved {
		return Moved
	}
	t.wrap(true)
	return Wrapped
}

// RetreatOne steps backward, crossing into the previous row's last step when
// the current row is exhausted, and wraps to the very end of the pattern
// when retreating past the start.
func (t *Tracker) RetreatOne() Boundary {
	if b := t.StepBackward(); b == Moved {
		return Moved
	}
	if b := t.RowBackward(); b == Moved {
		return Moved
	}
	t.wrap(false)
	return Wrapped
}

// wrap implements the reset hook for running off either end: the cursor
// loops to the opposite end of the pattern.
func (t *Tracker) wrap(forward bool) {
	if len(t.rows) == 0 {
		return
	}
	if forward {
		start := pattern.Position{}
		if !start.Valid(t.rows) {
			return
		}
		t.commit(start)
		if t.activator != nil {
			t.activator.ActivateStep(start)
		}
		return
	}
	row := len(t.rows) - 1
	end := pattern.Position{Row: row, Step: len(t.rows[row].Steps) - 1}
	if !end.Valid(t.rows) {
		return
	}
	t.commit(end)
}

// Check asserts the tracker's consistency invariant: a set cursor always
// addresses a real step. Intended for tests and debug builds.
func (t *Tracker) Check() error {
	if !t.set {
		return nil
	}
	if !t.pos.Valid(t.rows) {
		return fmt.Errorf("cursor %d/%d: %w", t.pos.Row, t.pos.Step, pattern.ErrOutOfRange)
	}
	return nil
}

func (t *Tracker) commit(pos pattern.Position) {
	t.pos = pos
	t.set = true
	if t.notifier != nil {
		t.notifier.NotifyPosition(pos.Row, pos.Step)
	}
}
