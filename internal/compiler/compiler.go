// Package compiler sequences the Mini-C pipeline stages: lexer, parser,
// semantic analyzer, IR emitter (spec §7: the first stage to fail aborts
// the compile).
package compiler

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/minicc/internal/diagnostics"
	"github.com/cwbudde/minicc/internal/irgen"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/parser"
	"github.com/cwbudde/minicc/internal/semantic"
)

// Compile runs source through every pipeline stage and returns either the
// emitted module or the diagnostics from whichever stage reported first.
// filename is used only for diagnostic rendering and the module's
// source_filename record; it need not be a real path.
//
// A panic escaping the IR emitter is not recovered here — spec §7 treats
// that as an internal invariant failure distinct from a user-facing
// diagnostic, and leaves its handling (exit code, message framing) to the
// caller, exactly as go-dws's compileScript leaves VM panics to its own
// caller rather than converting them into CompilerErrors itself.
func Compile(src []byte, filename string) (*irgen.Module, []*diagnostics.CompilerError) {
	source := string(src)

	lx := lexer.New(source)
	p := parser.New(lx)
	prog := p.ParseProgram()

	if lexErrs := lx.Errors(); len(lexErrs) > 0 {
		return nil, []*diagnostics.CompilerError{lexDiagnostic(lexErrs[0], source, filename)}
	}
	if synErrs := p.Errors(); len(synErrs) > 0 {
		return nil, []*diagnostics.CompilerError{syntaxDiagnostic(synErrs[0], source, filename)}
	}

	a := semantic.New(source, filename)
	if semErrs := a.Analyze(prog); len(semErrs) > 0 {
		return nil, semErrs
	}

	return irgen.Emit(prog, filename), nil
}

// CompileVerbose behaves like Compile but narrates each stage's timing and
// token/item count to w, the way `mccomp --verbose` does — mirroring the
// teacher driver's own `compileVerbose` stderr lines in compileScript,
// generalized from bytecode instruction/constant counts to this pipeline's
// token/AST-item counts.
func CompileVerbose(src []byte, filename string, w io.Writer) (*irgen.Module, []*diagnostics.CompilerError) {
	source := string(src)

	lexStart := time.Now()
	tokCount := countTokens(source)
	fmt.Fprintf(w, "lexing %s: %d tokens (%s)\n", filename, tokCount, time.Since(lexStart))

	lx := lexer.New(source, lexer.WithTracing(true))
	p := parser.New(lx)

	parseStart := time.Now()
	prog := p.ParseProgram()
	fmt.Fprintf(w, "parsing: %d top-level items (%s)\n", len(prog.Items), time.Since(parseStart))

	if lexErrs := lx.Errors(); len(lexErrs) > 0 {
		return nil, []*diagnostics.CompilerError{lexDiagnostic(lexErrs[0], source, filename)}
	}
	if synErrs := p.Errors(); len(synErrs) > 0 {
		return nil, []*diagnostics.CompilerError{syntaxDiagnostic(synErrs[0], source, filename)}
	}

	semStart := time.Now()
	a := semantic.New(source, filename)
	semErrs := a.Analyze(prog)
	fmt.Fprintf(w, "semantic analysis: %s\n", time.Since(semStart))
	if len(semErrs) > 0 {
		return nil, semErrs
	}

	emitStart := time.Now()
	mod := irgen.Emit(prog, filename)
	fmt.Fprintf(w, "IR emission: %d function(s) (%s)\n", len(mod.Functions), time.Since(emitStart))

	return mod, nil
}

func countTokens(source string) int {
	lx := lexer.New(source)
	n := 0
	for {
		tok := lx.Advance()
		n++
		if tok.Type == lexer.EOF {
			return n
		}
	}
}

func lexDiagnostic(e lexer.LexicalError, source, file string) *diagnostics.CompilerError {
	return diagnostics.New(diagnostics.Lexical, e.Pos, e.Message, source, file)
}

func syntaxDiagnostic(e *parser.SyntaxError, source, file string) *diagnostics.CompilerError {
	return diagnostics.New(diagnostics.Syntax, e.Pos, e.Error(), source, file)
}
