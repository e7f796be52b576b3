package patch

import "fmt"

// DefaultSearchRadius bounds the nearby anchor search around the header's
// declared position. Tuned empirically; changing it changes which drifted
// patches are accepted, so it is a compatibility knob, not a free parameter.
const DefaultSearchRadius = 80

// resolveAnchor determines the 0-based index in originalLines where the hunk's
// source lines (context + removed, in order) actually begin.
//
// Header line numbers drift because the model edits the document hunk-by-hunk
// in its head, so the declared position is only a hint. Resolution order:
// the declared position itself, then a bounded search within radius lines of
// it, then a full linear scan from the cursor. No match anywhere is a hard
// stop - better to reject the patch than apply it at the wrong location.
func resolveAnchor(originalLines []string, cursor int, h Hunk, hunkIndex, radius int) (int, error) {
	if radius < 0 {
		panic(fmt.Sprintf("patch: negative search radius %d", radius))
	}

	preferred := h.OldStart - 1
	if preferred < cursor {
		preferred = cursor
	}

	source := h.sourceLines()
	if len(source) == 0 {
		// Pure insertion: nothing to verify, clamp the declared position
		// into the remaining document.
		if preferred > len(originalLines) {
			return len(originalLines), nil
		}
		return preferred, nil
	}

	maxStart := len(originalLines) - len(source)
	if maxStart < cursor {
		return 0, RangeErrorf("hunk #%d starts outside the original instruction", hunkIndex+1)
	}

	// Fast path: the declared position is usually right.
	if preferred <= maxStart && matchesAt(originalLines, source, preferred) {
		return preferred, nil
	}

	// Bounded nearby search, closest match to the declared position wins;
	// ties go to the smaller index because the scan runs in increasing order.
	lo := preferred - radius
	if lo < cursor {
		lo = cursor
	}
	hi := preferred + radius
	if hi > maxStart {
		hi = maxStart
	}
	best, bestDistance := -1, -1
	for i := lo; i <= hi; i++ {
		if !matchesAt(originalLines, source, i) {
			continue
		}
		distance := i - preferred
		if distance < 0 {
			distance = -distance
		}
		if best < 0 || distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	if best >= 0 {
		return best, nil
	}

	// Last resort: scan everything the cursor has not consumed yet.
	for i := cursor; i <= maxStart; i++ {
		if matchesAt(originalLines, source, i) {
			return i, nil
		}
	}

	return 0, MismatchErrorf("Patch mismatch at hunk #%d, line 1. Please retry enhancement.", hunkIndex+1)
}

// matchesAt reports whether source occurs verbatim at originalLines[start:].
// Comparison is raw string equality, no whitespace normalization.
func matchesAt(originalLines, source []string, start int) bool {
	if start < 0 || start+len(source) > len(originalLines) {
		return false
	}
	for i, want := range source {
		if originalLines[start+i] != want {
			return false
		}
	}
	return true
}
