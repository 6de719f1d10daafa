package pattern

import "fmt"

// Expand converts counted steps into count-1 steps: a step of count n yields
// n steps of count 1 with the same label and fresh sequential IDs. Steps
// with a non-positive count are dropped before expansion. A step with an
// empty label fails the whole call with ErrMalformedStep and an empty
// result; there is no partial output.
func Expand(steps []Step) ([]Step, error) {
	total := 0
	for _, s := range steps {
		if s.Count > 0 {
			total += s.Count
		}
	}
	out := make([]Step, 0, total)
	id := 1
	for _, s := range steps {
		if s.Label == "" {
			return nil, fmt.Errorf("expand step %d: %w", s.ID, ErrMalformedStep)
		}
		if s.Count <= 0 {
			continue
		}
		for i := 0; i < s.Count; i++ {
			out = append(out, Step{ID: id, Count: 1, Label: s.Label})
			id++
		}
	}
	return out, nil
}

// Compress run-length encodes the sequence: adjacent steps with equal labels
// are always merged into one step whose count is their sum, so the output is
// maximal — no two adjacent output steps share a label. IDs are reassigned
// sequentially from 1. A step with an empty label fails with
// ErrMalformedStep; callers that want the documented fallback should use
// CompressOrOriginal.
func Compress(steps []Step) ([]Step, error) {
	if len(steps) == 0 {
		return []Step{}, nil
	}
	out := make([]Step, 0, len(steps))
	run := Step{ID: 1, Count: 0}
	for _, s := range steps {
		if s.Label == "" {
			return nil, fmt.Errorf("compress step %d: %w", s.ID, ErrMalformedStep)
		}
		if s.Count <= 0 {
			continue
		}
		switch {
		case run.Count == 0:
			run.Label = s.Label
			run.Count = s.Count
		case s.Label == run.Label:
			run.Count += s.Count
		default:
			out = append(out, run)
			run = Step{ID: run.ID + 1, Count: s.Count, Label: s.Label}
		}
	}
	if run.Count > 0 {
		out = append(out, run)
	}
	return out, nil
}

// CompressOrOriginal compresses the sequence, falling back to the original
// unmodified slice when the input is malformed. Note the asymmetry with
// Expand, whose failure mode is an empty sequence.
func CompressOrOriginal(steps []Step) []Step {
	out, err := Compress(steps)
	if err != nil {
		return steps
	}
	return out
}

// Zip merges two rows into one by alternation: one step from a, then one
// from b, until both run out (an exhausted side simply contributes nothing),
// and the interleaved result is re-compressed. Each contributed step keeps
// its full count. The rows must match in total bead count within one bead,
// measured on their expanded forms; otherwise Zip fails with a
// LengthMismatchError and an empty result. The failure is recoverable — the
// caller keeps its rows unmerged.
func Zip(a, b []Step) ([]Step, error) {
	ea, err := Expand(a)
	if err != nil {
		return nil, err
	}
	eb, err := Expand(b)
	if err != nil {
		return nil, err
	}
	diff := len(ea) - len(eb)
	if diff < -1 || diff > 1 {
		return nil, &LengthMismatchError{LenA: len(ea), LenB: len(eb)}
	}
	mixed := make([]Step, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			mixed = append(mixed, a[i])
		}
		if i < len(b) {
			mixed = append(mixed, b[i])
		}
	}
	return Compress(mixed)
}
