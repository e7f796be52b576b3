// Package diffview renders a display-only diff between the original and the
// enhanced instruction for human review. The patch engine never consumes this
// output; it exists purely so a user can eyeball what changed before saving.
package diffview

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Color definitions for diff rendering
var (
	addColor    = color.New(color.FgGreen)
	removeColor = color.New(color.FgRed)
	hunkColor   = color.New(color.FgCyan)
	fileColor   = color.New(color.FgWhite, color.Bold)
)

// Unified generates a unified diff between before and after for display.
func Unified(before, after, name string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// Colorize applies ANSI colors to a unified diff: additions green, removals
// red, hunk headers cyan, file headers bold. Honors color.NoColor.
func Colorize(diff string) string {
	if diff == "" {
		return ""
	}
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = fileColor.Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkColor.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addColor.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removeColor.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}
