// Package diagnostics renders Mini-C compiler errors the way a command-line
// compiler does: a file:line:column header, the offending source line, and
// a caret pointing at the exact column (spec §4, GLOSSARY "Diagnostic").
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/cwbudde/minicc/internal/lexer"
)

// Category classifies which compiler stage raised an error (spec §4:
// Lexical, Syntax, Scope, Type).
type Category int

const (
	Lexical Category = iota
	Syntax
	Scope
	Type
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case Scope:
		return "scope error"
	case Type:
		return "type error"
	default:
		return "error"
	}
}

// CompilerError is a single diagnostic with enough context to render a
// caret under the offending column. Kind is the fine-grained TypeError
// discriminant from spec §4.5 (Narrowing, NonNumeric, ArgCount, ArgType,
// ReturnType, ModFloat, VoidValue) — empty for every other category.
type CompilerError struct {
	Category Category
	Kind     string
	Pos      lexer.Position
	Message  string
	Source   string
	File     string
}

// New builds a CompilerError. Source and File are best supplied by the
// caller that owns the original buffer — they are used only for rendering.
func New(cat Category, pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Category: cat, Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface, returning the plain (uncolored)
// caret-annotated rendering.
func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a source-line excerpt and a caret under
// the failing column. With color true, ANSI codes highlight the caret and
// message, as mccomp does when it reports a failed compile.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	tag := e.Category.String()
	if e.Kind != "" {
		tag = fmt.Sprintf("%s[%s]", tag, e.Kind)
	}
	if e.File != "" {
		fmt.Fprintf(&sb, "%s: %s:%d:%d\n", tag, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s: %d:%d\n", tag, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		pad := e.Pos.Column - 1
		if pad < 0 {
			pad = 0
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+pad))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of errors the way the driver prints a
// failed compilation (spec §7: every stage's errors share this renderer).
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d errors:\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
