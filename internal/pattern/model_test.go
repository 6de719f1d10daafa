package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStepClampsAndTrims(t *testing.T) {
	t.Parallel()

	s := NewStep(1, 0, "  A ")
	require.Equal(t, 1, s.Count)
	require.Equal(t, "A", s.Label)

	s = NewStep(2, -3, "B")
	require.Equal(t, 1, s.Count)

	s = NewStep(3, 12, "B")
	require.Equal(t, 12, s.Count)
}

func TestPositionValid(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{ID: 1, Steps: steps(3, "A")},
		{ID: 2, Steps: steps(1, "B", 1, "C")},
	}

	require.True(t, Position{Row: 0, Step: 0}.Valid(rows))
	require.True(t, Position{Row: 1, Step: 1}.Valid(rows))
	require.False(t, Position{Row: 1, Step: 2}.Valid(rows))
	require.False(t, Position{Row: 2, Step: 0}.Valid(rows))
	require.False(t, Position{Row: -1, Step: 0}.Valid(rows))
	require.False(t, Position{Row: 0, Step: 0}.Valid(nil))
}

func TestBeads(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Beads(nil))
	require.Equal(t, 6, Beads(steps(3, "A", 2, "B", 1, "C")))
}
