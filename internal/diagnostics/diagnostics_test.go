package diagnostics

import (
	"strings"
	"testing"

	"github.com/cwbudde/minicc/internal/lexer"
)

func TestFormatIncludesCaretUnderColumn(t *testing.T) {
	src := "int main() {\n  return y;\n}\n"
	err := New(Scope, lexer.Position{Line: 2, Column: 10}, "undeclared name 'y'", src, "prog.mc")
	out := err.Format(false)

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("Format output too short: %q", out)
	}
	if !strings.Contains(lines[1], "return y;") {
		t.Errorf("line 1 = %q, want source excerpt", lines[1])
	}
	caretLine := lines[2]
	if !strings.HasSuffix(caretLine, "^") {
		t.Errorf("caret line = %q, want it to end with '^'", caretLine)
	}
}

func TestFormatErrorsSingleVsMultiple(t *testing.T) {
	e1 := New(Syntax, lexer.Position{Line: 1, Column: 1}, "unexpected token", "", "a.mc")
	single := FormatErrors([]*CompilerError{e1}, false)
	if strings.Contains(single, "compilation failed") {
		t.Errorf("single-error output should not have the batch header: %q", single)
	}

	e2 := New(Type, lexer.Position{Line: 2, Column: 2}, "narrowing assignment", "", "a.mc")
	multi := FormatErrors([]*CompilerError{e1, e2}, false)
	if !strings.Contains(multi, "2 errors") {
		t.Errorf("multi-error output missing count: %q", multi)
	}
}

func TestCategoryString(t *testing.T) {
	cases := map[Category]string{
		Lexical: "lexical error",
		Syntax:  "syntax error",
		Scope:   "scope error",
		Type:    "type error",
	}
	for cat, want := range cases {
		if got := cat.String(); got != want {
			t.Errorf("Category(%d).String() = %q, want %q", cat, got, want)
		}
	}
}

func TestSuggestFindsCloseMatch(t *testing.T) {
	candidates := []string{"total", "count", "index"}
	got, ok := Suggest("totla", candidates)
	if !ok || got != "total" {
		t.Errorf("Suggest(totla) = (%q, %v), want (total, true)", got, ok)
	}
}

func TestSuggestRejectsFarMatch(t *testing.T) {
	candidates := []string{"xyw", "abc", "accumulateTotal"}
	if _, ok := Suggest("zz", candidates); ok {
		t.Error("Suggest(zz) should find nothing within a short name's tight threshold")
	}
}

func TestSuggestScalesThresholdWithLength(t *testing.T) {
	got, ok := Suggest("acmlate", []string{"accumulate"})
	if !ok || got != "accumulate" {
		t.Errorf("Suggest(acmlate) = (%q, %v), want (accumulate, true) under the longer-name threshold", got, ok)
	}
}

func TestLevenshteinIdenticalIsZero(t *testing.T) {
	if d := levenshtein("same", "same"); d != 0 {
		t.Errorf("levenshtein(same,same) = %d, want 0", d)
	}
}
