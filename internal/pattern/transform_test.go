package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func steps(pairs ...any) []Step {
	out := make([]Step, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, NewStep(i/2+1, pairs[i].(int), pairs[i+1].(string)))
	}
	return out
}

func labelsCounts(t *testing.T, got []Step) []any {
	t.Helper()
	out := make([]any, 0, len(got)*2)
	for _, s := range got {
		out = append(out, s.Count, s.Label)
	}
	return out
}

func TestExpand(t *testing.T) {
	t.Parallel()

	got, err := Expand(steps(3, "A", 2, "B"))
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, s := range got {
		require.Equal(t, 1, s.Count)
		require.Equal(t, i+1, s.ID)
	}
	require.Equal(t, "A", got[0].Label)
	require.Equal(t, "A", got[2].Label)
	require.Equal(t, "B", got[3].Label)
	require.Equal(t, "B", got[4].Label)
}

func TestExpandSkipsNonPositiveCounts(t *testing.T) {
	t.Parallel()

	in := []Step{{ID: 1, Count: 0, Label: "A"}, {ID: 2, Count: 2, Label: "B"}, {ID: 3, Count: -4, Label: "C"}}
	got, err := Expand(in)
	require.NoError(t, err)
	require.Equal(t, []any{1, "B", 1, "B"}, labelsCounts(t, got))
}

func TestExpandMalformedYieldsEmpty(t *testing.T) {
	t.Parallel()

	got, err := Expand([]Step{{ID: 1, Count: 2, Label: "A"}, {ID: 2, Count: 1}})
	require.ErrorIs(t, err, ErrMalformedStep)
	require.Empty(t, got)
}

func TestCompressMergesAdjacentRuns(t *testing.T) {
	t.Parallel()

	got, err := Compress(steps(1, "A", 2, "A", 3, "B", 1, "B", 2, "A"))
	require.NoError(t, err)
	require.Equal(t, []any{3, "A", 4, "B", 2, "A"}, labelsCounts(t, got))
	for i, s := range got {
		require.Equal(t, i+1, s.ID)
	}
}

func TestCompressIdempotent(t *testing.T) {
	t.Parallel()

	once, err := Compress(steps(2, "A", 2, "A", 1, "B", 5, "C", 1, "C"))
	require.NoError(t, err)
	twice, err := Compress(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestCompressExpandRoundTrip(t *testing.T) {
	t.Parallel()

	// No adjacent equal labels, so the round trip reproduces counts and
	// labels exactly. IDs may differ.
	in := steps(3, "A", 2, "B", 4, "A")
	ex, err := Expand(in)
	require.NoError(t, err)
	got, err := Compress(ex)
	require.NoError(t, err)
	require.Equal(t, labelsCounts(t, in), labelsCounts(t, got))
}

func TestCompressOrOriginalFallsBack(t *testing.T) {
	t.Parallel()

	bad := []Step{{ID: 1, Count: 2, Label: "A"}, {ID: 7, Count: 1}}
	require.Equal(t, bad, CompressOrOriginal(bad))

	good := steps(1, "A", 1, "A")
	require.Equal(t, []any{2, "A"}, labelsCounts(t, CompressOrOriginal(good)))
}

func TestZipAlternatesSteps(t *testing.T) {
	t.Parallel()

	got, err := Zip(steps(2, "A", 1, "B"), steps(2, "C", 1, "A")) // 3 beads each
	require.NoError(t, err)
	// a0 b0 a1 b1 → 2A 2C 1B 1A.
	require.Equal(t, []any{2, "A", 2, "C", 1, "B", 1, "A"}, labelsCounts(t, got))
}

func TestZipRecompressesAdjacentRuns(t *testing.T) {
	t.Parallel()

	got, err := Zip(steps(2, "A", 1, "B"), steps(3, "A")) // a0 b0 a1 → 2A 3A 1B
	require.NoError(t, err)
	require.Equal(t, []any{5, "A", 1, "B"}, labelsCounts(t, got))
}

func TestZipLengthInvariant(t *testing.T) {
	t.Parallel()

	a := steps(3, "A", 2, "B")
	b := steps(5, "A")
	got, err := Zip(a, b)
	require.NoError(t, err)
	ex, err := Expand(got)
	require.NoError(t, err)
	require.Len(t, ex, 10)
}

func TestZipToleratesOneBeadDifference(t *testing.T) {
	t.Parallel()

	got, err := Zip(steps(3, "A"), steps(2, "B")) // 3 beads vs 2 beads
	require.NoError(t, err)
	require.Equal(t, []any{3, "A", 2, "B"}, labelsCounts(t, got))
}

func TestZipMismatchFails(t *testing.T) {
	t.Parallel()

	got, err := Zip(steps(4, "A"), steps(2, "B"))
	require.Error(t, err)
	var lm *LengthMismatchError
	require.True(t, errors.As(err, &lm))
	require.Equal(t, 4, lm.LenA)
	require.Equal(t, 2, lm.LenB)
	require.Empty(t, got)
}

func TestZipRowCombineFixture(t *testing.T) {
	t.Parallel()

	// Combining row [3×A] with row [2×B] yields a single merged row of two
	// steps: the alternation exhausts immediately and the compress pass
	// finds no adjacent equals.
	got, err := Zip(steps(3, "A"), steps(2, "B"))
	require.NoError(t, err)
	require.Equal(t, []any{3, "A", 2, "B"}, labelsCounts(t, got))
	require.Equal(t, 5, Beads(got))
}
