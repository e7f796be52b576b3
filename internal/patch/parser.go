// Package patch applies model-produced unified diff patches to instruction
// documents. The patch text is not trusted: headers may carry stale line
// numbers and inconsistent counts, so every hunk is verified against the
// original text and the whole apply is rejected on the first ambiguity.
package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies a single hunk body line
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Line is one body line of a hunk, without its leading marker character
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is one @@ block of a unified diff. OldStart/NewStart are the 1-based
// line numbers declared in the header; 0 is permitted only for "insert before
// line 1". Header numbers are treated as hints, never trusted blindly.
type Hunk struct {
	OldStart  int
	OldLength int
	NewStart  int
	NewLength int
	Lines     []Line
}

// sourceLines returns the content of every context and removed line, in order.
// These are the lines that must occur verbatim in the original document.
func (h *Hunk) sourceLines() []string {
	lines := make([]string, 0, len(h.Lines))
	for _, l := range h.Lines {
		if l.Kind == LineContext || l.Kind == LineRemoved {
			lines = append(lines, l.Content)
		}
	}
	return lines
}

// hunkHeaderRE matches "@@ -oldStart[,oldLength] +newStart[,newLength] @@"
// with an optional trailing context note after the closing @@.
var hunkHeaderRE = regexp.MustCompile(`^@@\s+-(\d+)(?:,(\d+))?\s+\+(\d+)(?:,(\d+))?\s+@@(?:\s.*)?$`)

// metadataPrefixes are file-level diff lines allowed (and ignored) before the
// first hunk header.
var metadataPrefixes = []string{
	"diff --git",
	"index ",
	"--- ",
	"+++ ",
	"new file mode ",
	"deleted file mode ",
}

// Normalize rewrites Windows line endings to Unix ones. This is the only
// content transformation the engine ever performs; running it twice is a no-op.
func Normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Parse turns raw patch text into an ordered list of hunks.
//
// Empty or whitespace-only input is not an error: it parses to zero hunks,
// meaning "no changes". Hunks are returned in input order; ordering between
// hunks is validated during application, not here.
func Parse(patchText string) ([]Hunk, error) {
	lines := trimBlankEdges(strings.Split(Normalize(patchText), "\n"))
	if len(lines) == 0 {
		return nil, nil
	}

	// Skip file-level metadata before the first hunk header. Anything else
	// appearing there means this is not a diff at all.
	i := 0
	for i < len(lines) && !strings.HasPrefix(lines[i], "@@") {
		line := lines[i]
		if strings.TrimSpace(line) == "" || isMetadataLine(line) {
			i++
			continue
		}
		return nil, ParseErrorf("line %d: %q is not a valid unified diff hunk format", i+1, line)
	}
	if i == len(lines) {
		return nil, ParseErrorf("patch does not include any @@ hunk blocks")
	}

	var hunks []Hunk
	for i < len(lines) {
		header := hunkHeaderRE.FindStringSubmatch(lines[i])
		if header == nil {
			return nil, ParseErrorf("line %d: %q is not a valid unified diff hunk format", i+1, lines[i])
		}

		h := Hunk{
			OldStart:  mustAtoi(header[1]),
			OldLength: atoiDefault(header[2], 1),
			NewStart:  mustAtoi(header[3]),
			NewLength: atoiDefault(header[4], 1),
		}
		i++

		oldCount, newCount := 0, 0
		for i < len(lines) && !strings.HasPrefix(lines[i], "@@") {
			line := lines[i]
			switch {
			case line == "":
				// Models frequently emit empty context lines without the
				// leading space. Treat them as empty context.
				h.Lines = append(h.Lines, Line{Kind: LineContext})
				oldCount++
				newCount++
			case line[0] == ' ':
				h.Lines = append(h.Lines, Line{Kind: LineContext, Content: line[1:]})
				oldCount++
				newCount++
			case line[0] == '-':
				h.Lines = append(h.Lines, Line{Kind: LineRemoved, Content: line[1:]})
				oldCount++
			case line[0] == '+':
				h.Lines = append(h.Lines, Line{Kind: LineAdded, Content: line[1:]})
				newCount++
			case line[0] == '\\':
				// "\ No newline at end of file" - consumed and ignored.
			default:
				return nil, ParseErrorf("line %d: unsupported hunk line markers: %q", i+1, line)
			}
			i++
		}

		// The header counts are the primary defense against a model that
		// hallucinates consistent-looking but wrong metadata.
		if oldCount != h.OldLength || newCount != h.NewLength {
			return nil, ParseErrorf(
				"hunk counts do not match header metadata (hunk #%d: header declares -%d +%d, body has -%d +%d)",
				len(hunks)+1, h.OldLength, h.NewLength, oldCount, newCount)
		}

		hunks = append(hunks, h)
	}

	return hunks, nil
}

func isMetadataLine(line string) bool {
	for _, prefix := range metadataPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// trimBlankEdges removes leading and trailing whitespace-only lines
func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s) // guarded by hunkHeaderRE digit groups
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return mustAtoi(s)
}
