package patch

import "strings"

// Applier splices parsed hunks into an instruction document. The zero value is
// not usable; construct with NewApplier.
type Applier struct {
	searchRadius int
}

// NewApplier creates an Applier with the given anchor search radius.
// A negative radius is a programmer error and panics.
func NewApplier(searchRadius int) *Applier {
	if searchRadius < 0 {
		panic("patch: negative search radius")
	}
	return &Applier{searchRadius: searchRadius}
}

// Apply applies patchText to original using the default search radius.
func Apply(original, patchText string) (string, error) {
	return NewApplier(DefaultSearchRadius).Apply(original, patchText)
}

// Apply reconstructs the revised document from original and patchText.
//
// The operation is all-or-nothing: the first structural problem, anchor miss,
// or content mismatch aborts the whole apply and the input is left untouched.
// An empty patch is the identity: the original comes back with line endings
// normalized and nothing else changed.
func (a *Applier) Apply(original, patchText string) (string, error) {
	hunks, err := Parse(patchText)
	if err != nil {
		return "", err
	}
	return a.ApplyHunks(original, hunks)
}

// ApplyHunks splices already-parsed hunks into original. Callers that need to
// inspect or cap the hunk list before applying use this instead of Apply.
func (a *Applier) ApplyHunks(original string, hunks []Hunk) (string, error) {
	if len(hunks) == 0 {
		return Normalize(original), nil
	}

	originalLines := strings.Split(Normalize(original), "\n")
	cursor := 0
	output := make([]string, 0, len(originalLines))

	for hunkIndex, h := range hunks {
		anchor, err := resolveAnchor(originalLines, cursor, h, hunkIndex, a.searchRadius)
		if err != nil {
			return "", err
		}

		// Unmodified lines between the previous hunk and this one.
		output = append(output, originalLines[cursor:anchor]...)
		cursor = anchor

		// The anchor already matched the hunk's source lines, but the walk
		// re-validates each one; a divergence here would mean the patch is
		// being applied somewhere it does not belong.
		sourceLine := 0
		for _, line := range h.Lines {
			switch line.Kind {
			case LineAdded:
				output = append(output, line.Content)
			case LineContext, LineRemoved:
				sourceLine++
				if cursor >= len(originalLines) || originalLines[cursor] != line.Content {
					return "", MismatchErrorf(
						"Patch mismatch at hunk #%d, line %d. Please retry enhancement.",
						hunkIndex+1, sourceLine)
				}
				if line.Kind == LineContext {
					output = append(output, line.Content)
				}
				cursor++
			}
		}
	}

	output = append(output, originalLines[cursor:]...)
	return strings.Join(output, "\n"), nil
}
