// Package marks implements the per-step and per-row mark overlay: six mark
// classes applied on top of a pattern, gated by a single mark-mode value.
package marks

import "github.com/kiru/beadtrack/internal/pattern"

// MaxMode is the highest mark class. Mode 0 means marking is inactive and
// clicks fall through to normal cursor selection.
const MaxMode = 6

// Activation tells the caller what an activation did.
type Activation int

const (
	// ActivationSelect means mark mode was off; the caller should treat
	// the activation as a normal selection.
	ActivationSelect Activation = iota
	ActivationMarked
	ActivationCleared
)

// Store persists mark changes. SaveMark with mark 0 means the entry was
// removed. Implementations must not block the overlay; a nil store is fine.
type Store interface {
	SaveStepMark(pos pattern.Position, mark int)
	SaveRowMark(row, mark int)
}

// Overlay owns the mark state for one open pattern view. Entries are sparse:
// an absent key is an unmarked unit, and clearing a mark deletes its entry
// rather than storing a zero.
type Overlay struct {
	mode  int
	steps map[pattern.Position]int
	rows  map[int]int
	store Store
}

// New builds an empty overlay. store may be nil.
func New(store Store) *Overlay {
	return &Overlay{
		steps: make(map[pattern.Position]int),
		rows:  make(map[int]int),
		store: store,
	}
}

// Mode returns the current mark mode.
func (o *Overlay) Mode() int { return o.mode }

// SetMode sets the mark mode, clamping into [0, MaxMode].
func (o *Overlay) SetMode(m int) {
	if m < 0 {
		m = 0
	}
	if m > MaxMode {
		m = MaxMode
	}
	o.mode = m
}

// CycleMode advances the mark mode by one, looping 6 back to 0.
func (o *Overlay) CycleMode() int {
	o.mode = (o.mode + 1) % (MaxMode + 1)
	return o.mode
}

// StepMark returns the mark on pos, 0 when unmarked.
func (o *Overlay) StepMark(pos pattern.Position) int { return o.steps[pos] }

// RowMark returns the row-level mark on row, 0 when unmarked.
func (o *Overlay) RowMark(row int) int { return o.rows[row] }

// Activate applies the current mode to the step at pos. With the mode off it
// does nothing and reports ActivationSelect so the caller can run normal
// selection. With a mode active, a step already carrying that same mark is
// cleared; any other mark is overwritten.
func (o *Overlay) Activate(pos pattern.Position) Activation {
	if o.mode == 0 {
		return ActivationSelect
	}
	if o.steps[pos] == o.mode {
		delete(o.steps, pos)
		o.save(pos, 0)
		return ActivationCleared
	}
	o.steps[pos] = o.mode
	o.save(pos, o.mode)
	return ActivationMarked
}

// ActivateRow applies the toggle rule keyed by row index alone, independent
// of any step marks within the row.
func (o *Overlay) ActivateRow(row int) Activation {
	if o.mode == 0 {
		return ActivationSelect
	}
	if o.rows[row] == o.mode {
		delete(o.rows, row)
		o.saveRow(row, 0)
		return ActivationCleared
	}
	o.rows[row] = o.mode
	o.saveRow(row, o.mode)
	return ActivationMarked
}

// Load replaces the overlay's state, used when opening a saved pattern.
func (o *Overlay) Load(steps map[pattern.Position]int, rows map[int]int) {
	o.steps = make(map[pattern.Position]int, len(steps))
	for pos, m := range steps {
		if m > 0 && m <= MaxMode {
			o.steps[pos] = m
		}
	}
	o.rows = make(map[int]int, len(rows))
	for row, m := range rows {
		if m > 0 && m <= MaxMode {
			o.rows[row] = m
		}
	}
}

// MarkedSteps returns a copy of the sparse step-mark map.
func (o *Overlay) MarkedSteps() map[pattern.Position]int {
	out := make(map[pattern.Position]int, len(o.steps))
	for pos, m := range o.steps {
		out[pos] = m
	}
	return out
}

// MarkedRows returns a copy of the sparse row-mark map.
func (o *Overlay) MarkedRows() map[int]int {
	out := make(map[int]int, len(o.rows))
	for row, m := range o.rows {
		out[row] = m
	}
	return out
}

func (o *Overlay) save(pos pattern.Position, mark int) {
	if o.store != nil {
		o.store.SaveStepMark(pos, mark)
	}
}

func (o *Overlay) saveRow(row, mark int) {
	if o.store != nil {
		o.store.SaveRowMark(row, mark)
	}
}
