package marks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiru/beadtrack/internal/pattern"
)

type storeCall struct {
	pos  pattern.Position
	row  int
	mark int
	step bool
}

type recordingStore struct {
	calls []storeCall
}

func (r *recordingStore) SaveStepMark(pos pattern.Position, mark int) {
	r.calls = append(r.calls, storeCall{pos: pos, mark: mark, step: true})
}

func (r *recordingStore) SaveRowMark(row, mark int) {
	r.calls = append(r.calls, storeCall{row: row, mark: mark})
}

func TestActivateToggleAndOverwrite(t *testing.T) {
	t.Parallel()

	o := New(nil)
	pos := pattern.Position{Row: 1, Step: 2}

	o.SetMode(3)
	require.Equal(t, ActivationMarked, o.Activate(pos))
	require.Equal(t, 3, o.StepMark(pos))

	// Same mode toggles off.
	require.Equal(t, ActivationCleared, o.Activate(pos))
	require.Equal(t, 0, o.StepMark(pos))
	require.Empty(t, o.MarkedSteps()) // cleared entries are removed, not zeroed

	// A different mode overwrites instead of toggling.
	require.Equal(t, ActivationMarked, o.Activate(pos))
	o.SetMode(5)
	require.Equal(t, ActivationMarked, o.Activate(pos))
	require.Equal(t, 5, o.StepMark(pos))
}

func TestActivateWithModeOffDelegates(t *testing.T) {
	t.Parallel()

	o := New(nil)
	pos := pattern.Position{Row: 0, Step: 0}
	require.Equal(t, ActivationSelect, o.Activate(pos))
	require.Equal(t, 0, o.StepMark(pos))
	require.Equal(t, ActivationSelect, o.ActivateRow(0))
}

func TestRowMarksIndependentOfStepMarks(t *testing.T) {
	t.Parallel()

	o := New(nil)
	o.SetMode(2)
	o.Activate(pattern.Position{Row: 4, Step: 1})

	require.Equal(t, ActivationMarked, o.ActivateRow(4))
	require.Equal(t, 2, o.RowMark(4))
	require.Equal(t, 2, o.StepMark(pattern.Position{Row: 4, Step: 1}))

	require.Equal(t, ActivationCleared, o.ActivateRow(4))
	require.Equal(t, 0, o.RowMark(4))
	require.Equal(t, 2, o.StepMark(pattern.Position{Row: 4, Step: 1}))
}

func TestCycleModeWrapsAtSix(t *testing.T) {
	t.Parallel()

	o := New(nil)
	var seen []int
	for i := 0; i < 8; i++ {
		seen = append(seen, o.CycleMode())
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 0, 1}, seen)
}

func TestSetModeClamps(t *testing.T) {
	t.Parallel()

	o := New(nil)
	o.SetMode(9)
	require.Equal(t, MaxMode, o.Mode())
	o.SetMode(-1)
	require.Equal(t, 0, o.Mode())
}

func TestStoreSeesChanges(t *testing.T) {
	t.Parallel()

	s := &recordingStore{}
	o := New(s)
	o.SetMode(1)
	pos := pattern.Position{Row: 2, Step: 0}

	o.Activate(pos)
	o.Activate(pos)
	o.ActivateRow(2)

	require.Equal(t, []storeCall{
		{pos: pos, mark: 1, step: true},
		{pos: pos, mark: 0, step: true},
		{row: 2, mark: 1},
	}, s.calls)
}

func TestLoadDropsInvalidMarks(t *testing.T) {
	t.Parallel()

	o := New(nil)
	o.Load(map[pattern.Position]int{
		{Row: 0, Step: 0}: 4,
		{Row: 0, Step: 1}: 0,
		{Row: 0, Step: 2}: 9,
	}, map[int]int{1: 6, 2: -1})

	require.Equal(t, 4, o.StepMark(pattern.Position{Row: 0, Step: 0}))
	require.Len(t, o.MarkedSteps(), 1)
	require.Equal(t, 6, o.RowMark(1))
	require.Len(t, o.MarkedRows(), 1)
}
