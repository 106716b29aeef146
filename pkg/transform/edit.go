package transform

import (
	"errors"
	"fmt"
	"slices"
)

// Edit is one pending replacement of the byte range [Start, End) in the
// original source with Replacement. A zero-length range is an insertion
// at Start.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

var (
	// ErrEditOutOfBounds indicates an edit range outside the source buffer.
	ErrEditOutOfBounds = errors.New("edit out of bounds")
	// ErrEditOverlap indicates two queued edits with intersecting ranges.
	ErrEditOverlap = errors.New("edits overlap")
)

// Apply validates edits against source and applies them, returning the
// rewritten text. Validation sorts a copy of the edits by start offset,
// rejecting out-of-bounds ranges and any intersecting pair; application
// then proceeds by descending start offset so lower-offset ranges stay
// valid as the buffer changes length. Apply never modifies source, and
// a failed validation returns no partial result.
func Apply(source []byte, edits []Edit) (string, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}

		return a.End - b.End
	})

	if err := validate(len(source), sorted); err != nil {
		return "", err
	}

	result := string(source)
	for idx := len(sorted) - 1; idx >= 0; idx-- {
		e := sorted[idx]
		result = result[:e.Start] + e.Replacement + result[e.End:]
	}

	return result, nil
}

func validate(sourceLen int, sorted []Edit) error {
	for _, e := range sorted {
		if e.Start < 0 || e.End > sourceLen || e.Start > e.End {
			return fmt.Errorf("%w: [%d,%d) over %d bytes of source",
				ErrEditOutOfBounds, e.Start, e.End, sourceLen)
		}
	}

	for idx := 1; idx < len(sorted); idx++ {
		prev, next := sorted[idx-1], sorted[idx]
		if prev.End > next.Start {
			return fmt.Errorf("%w: [%d,%d) and [%d,%d)",
				ErrEditOverlap, prev.Start, prev.End, next.Start, next.End)
		}
	}

	return nil
}
