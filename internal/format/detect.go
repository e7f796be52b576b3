// Package format classifies instruction content to a file extension. Used
// only to pick a name when saving; never part of patch application.
package format

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Known extensions the playground round-trips. Anything else falls back to txt.
const (
	ExtMarkdown = "md"
	ExtText     = "txt"
	ExtXML      = "xml"
	ExtJSON     = "json"
)

var recognized = map[string]string{
	".md":       ExtMarkdown,
	".markdown": ExtMarkdown,
	".txt":      ExtText,
	".xml":      ExtXML,
	".json":     ExtJSON,
}

// Detect picks an extension for the given content. An existing recognized
// extension on filename wins; otherwise the content shape decides. There is no
// failure mode: unclassifiable content is plain text.
func Detect(filename, content string) string {
	if ext, ok := recognized[strings.ToLower(filepath.Ext(filename))]; ok {
		return ext
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ExtText
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		if json.Valid([]byte(trimmed)) {
			return ExtJSON
		}
	}

	if looksLikeXML(trimmed) {
		return ExtXML
	}

	if looksLikeMarkdown(trimmed) {
		return ExtMarkdown
	}

	return ExtText
}

// looksLikeXML is a permissive single-root-tag shape check, not a validator:
// the content must open with a tag and close with the matching tag name.
func looksLikeXML(s string) bool {
	if !strings.HasPrefix(s, "<") || !strings.HasSuffix(s, ">") {
		return false
	}
	// Skip a leading <?xml ...?> declaration.
	if strings.HasPrefix(s, "<?") {
		end := strings.Index(s, "?>")
		if end < 0 {
			return false
		}
		s = strings.TrimSpace(s[end+2:])
		if !strings.HasPrefix(s, "<") || !strings.HasSuffix(s, ">") {
			return false
		}
	}

	name := rootTagName(s)
	if name == "" {
		return false
	}
	return strings.HasSuffix(s, "</"+name+">") || strings.HasSuffix(s, "/>")
}

func rootTagName(s string) string {
	rest := s[1:]
	end := strings.IndexAny(rest, " \t\n\r>/")
	if end <= 0 {
		return ""
	}
	name := rest[:end]
	if name == "" || strings.ContainsAny(name, "<>") {
		return ""
	}
	return name
}

func looksLikeMarkdown(s string) bool {
	if strings.Contains(s, "```") {
		return true
	}
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") || strings.HasPrefix(trimmed, "## ") ||
			strings.HasPrefix(trimmed, "### ") {
			return true
		}
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			return true
		}
	}
	return false
}
