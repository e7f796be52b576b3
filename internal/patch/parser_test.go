package patch

import (
	"strings"
	"testing"
)

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", "\r\n  \r\n"} {
		hunks, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q) error = %v, want nil", input, err)
		}
		if len(hunks) != 0 {
			t.Errorf("Parse(%q) = %d hunks, want 0", input, len(hunks))
		}
	}
}

func TestParse_SingleHunk(t *testing.T) {
	patch := `--- a/instruction.txt
+++ b/instruction.txt
@@ -1,3 +1,4 @@
 line-1
-line-2
+line-2-updated
 line-3
+line-4`

	hunks, err := Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(hunks) != 1 {
		t.Fatalf("Parse() = %d hunks, want 1", len(hunks))
	}

	h := hunks[0]
	if h.OldStart != 1 || h.OldLength != 3 || h.NewStart != 1 || h.NewLength != 4 {
		t.Errorf("header = -%d,%d +%d,%d, want -1,3 +1,4", h.OldStart, h.OldLength, h.NewStart, h.NewLength)
	}
	wantKinds := []LineKind{LineContext, LineRemoved, LineAdded, LineContext, LineAdded}
	if len(h.Lines) != len(wantKinds) {
		t.Fatalf("got %d body lines, want %d", len(h.Lines), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if h.Lines[i].Kind != kind {
			t.Errorf("line %d kind = %d, want %d", i, h.Lines[i].Kind, kind)
		}
	}
	if h.Lines[2].Content != "line-2-updated" {
		t.Errorf("added line content = %q, want %q", h.Lines[2].Content, "line-2-updated")
	}
}

func TestParse_HeaderLengthDefaults(t *testing.T) {
	patch := `@@ -5 +5 @@
-old
+new`

	hunks, err := Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	h := hunks[0]
	if h.OldLength != 1 || h.NewLength != 1 {
		t.Errorf("lengths = %d,%d, want 1,1 (missing ,len defaults to 1)", h.OldLength, h.NewLength)
	}
}

func TestParse_HeaderWithContextNote(t *testing.T) {
	patch := `@@ -2,2 +2,2 @@ section: output rules
 keep
-drop
+add`

	hunks, err := Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if hunks[0].OldStart != 2 {
		t.Errorf("OldStart = %d, want 2", hunks[0].OldStart)
	}
}

func TestParse_MultipleHunks(t *testing.T) {
	patch := `diff --git a/x b/x
index 000..111
--- a/x
+++ b/x
@@ -1,2 +1,2 @@
 a
-b
+B
@@ -10,1 +10,2 @@
 j
+k`

	hunks, err := Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(hunks) != 2 {
		t.Fatalf("got %d hunks, want 2", len(hunks))
	}
	if hunks[1].OldStart != 10 || hunks[1].NewLength != 2 {
		t.Errorf("second hunk header = -%d +,%d, want -10 +,2", hunks[1].OldStart, hunks[1].NewLength)
	}
}

func TestParse_NoNewlineMarkerIgnored(t *testing.T) {
	patch := `@@ -1,1 +1,1 @@
-old
\ No newline at end of file
+new
\ No newline at end of file`

	hunks, err := Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(hunks[0].Lines) != 2 {
		t.Errorf("got %d body lines, want 2 (backslash lines consumed)", len(hunks[0].Lines))
	}
}

func TestParse_EmptyBodyLineIsContext(t *testing.T) {
	patch := "@@ -1,3 +1,3 @@\n before\n\n after"

	hunks, err := Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	h := hunks[0]
	if len(h.Lines) != 3 {
		t.Fatalf("got %d body lines, want 3", len(h.Lines))
	}
	if h.Lines[1].Kind != LineContext || h.Lines[1].Content != "" {
		t.Errorf("middle line = {%d %q}, want empty context", h.Lines[1].Kind, h.Lines[1].Content)
	}
}

func TestParse_CRLFNormalized(t *testing.T) {
	patch := "@@ -1,1 +1,1 @@\r\n-old\r\n+new\r\n"

	hunks, err := Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if hunks[0].Lines[0].Content != "old" {
		t.Errorf("removed content = %q, want %q", hunks[0].Lines[0].Content, "old")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		patch   string
		wantMsg string
	}{
		{
			name:    "plain text instead of a diff",
			patch:   "line-1",
			wantMsg: "not a valid unified diff hunk format",
		},
		{
			name:    "malformed header shape",
			patch:   "@@ -1,3 1,4 @@\n line",
			wantMsg: "not a valid unified diff hunk format",
		},
		{
			name:    "metadata only, zero hunk blocks",
			patch:   "--- a/x\n+++ b/x",
			wantMsg: "does not include any @@ hunk blocks",
		},
		{
			name:    "unsupported body marker",
			patch:   "@@ -1,1 +1,1 @@\n*** what",
			wantMsg: "unsupported hunk line markers",
		},
		{
			name:    "old count disagrees with header",
			patch:   "@@ -1,3 +1,1 @@\n only-line",
			wantMsg: "hunk counts do not match header metadata",
		},
		{
			name:    "new count disagrees with header",
			patch:   "@@ -1,1 +1,3 @@\n only-line",
			wantMsg: "hunk counts do not match header metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hunks, err := Parse(tt.patch)
			if err == nil {
				t.Fatalf("Parse() = %d hunks, want error containing %q", len(hunks), tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
			pe, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if pe.Kind != KindParse {
				t.Errorf("error kind = %d, want KindParse", pe.Kind)
			}
		})
	}
}

func TestParse_HeaderBodyConsistencyInvariant(t *testing.T) {
	// Any patch that reaches the caller satisfies: OldLength == context+removed,
	// NewLength == context+added.
	patch := `@@ -3,4 +3,5 @@
 ctx-1
-gone-1
-gone-2
+new-1
+new-2
+new-3
 ctx-2`

	hunks, err := Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i, h := range hunks {
		oldCount, newCount := 0, 0
		for _, l := range h.Lines {
			if l.Kind != LineAdded {
				oldCount++
			}
			if l.Kind != LineRemoved {
				newCount++
			}
		}
		if oldCount != h.OldLength || newCount != h.NewLength {
			t.Errorf("hunk %d: body counts -%d +%d disagree with header -%d +%d",
				i, oldCount, newCount, h.OldLength, h.NewLength)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	input := "a\r\nb\nc\r\n"
	once := Normalize(input)
	if once != "a\nb\nc\n" {
		t.Errorf("Normalize() = %q, want %q", once, "a\nb\nc\n")
	}
	if twice := Normalize(once); twice != once {
		t.Errorf("Normalize(Normalize(x)) = %q, want %q", twice, once)
	}
}
