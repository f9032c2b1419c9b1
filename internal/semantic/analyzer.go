package semantic

import (
	"fmt"

	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/diagnostics"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/types"
)

// Type-error kinds, the fine-grained discriminant of spec §4.5:
// "TypeError{kind, expected, got, pos} where kind ∈ {Narrowing,
// NonNumeric, ArgCount, ArgType, ReturnType, ModFloat, VoidValue}".
const (
	KindNarrowing  = "Narrowing"
	KindNonNumeric = "NonNumeric"
	KindArgCount   = "ArgCount"
	KindArgType    = "ArgType"
	KindReturnType = "ReturnType"
	KindModFloat   = "ModFloat"
	KindVoidValue  = "VoidValue"
)

// semanticAbort is the internal panic payload that unwinds analysis back
// to Analyze once the first diagnostic has been recorded — spec §7: "the
// first error aborts the compile; no partial IR is emitted", mirrored here
// the same way the parser aborts on its first SyntaxError.
type semanticAbort struct{}

// Analyzer resolves names and type-checks one Program against the global
// scope it builds from that program's top-level items.
type Analyzer struct {
	global            *SymbolTable
	errors            []*diagnostics.CompilerError
	source            string
	file              string
	currentReturnType types.Type
}

// New creates an Analyzer. source and file are carried only for
// diagnostic rendering.
func New(source, file string) *Analyzer {
	return &Analyzer{global: NewSymbolTable(nil), source: source, file: file}
}

// Global exposes the resolved global scope, useful for tests and for the
// IR emitter to look up a function's declared signature.
func (a *Analyzer) Global() *SymbolTable { return a.global }

// fail records a diagnostic and aborts analysis.
func (a *Analyzer) fail(cat diagnostics.Category, pos lexer.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.errors = append(a.errors, diagnostics.New(cat, pos, msg, a.source, a.file))
	panic(semanticAbort{})
}

// failType is fail specialized for the Type category, attaching the
// spec §4.5 kind discriminant.
func (a *Analyzer) failType(kind string, pos lexer.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	err := diagnostics.New(diagnostics.Type, pos, msg, a.source, a.file)
	err.Kind = kind
	a.errors = append(a.errors, err)
	panic(semanticAbort{})
}

// failSuggest is fail, plus a "did you mean" hint appended when a close
// candidate exists among names (spec §4.7).
func (a *Analyzer) failSuggest(cat diagnostics.Category, pos lexer.Position, name string, names []string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if hint, ok := diagnostics.Suggest(name, names); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}
	a.errors = append(a.errors, diagnostics.New(cat, pos, msg, a.source, a.file))
	panic(semanticAbort{})
}

// Analyze resolves and type-checks prog. On success it returns nil; on the
// first error it returns a one-element diagnostic slice and the AST must
// not be handed to the IR emitter.
func (a *Analyzer) Analyze(prog *ast.Program) (errs []*diagnostics.CompilerError) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(semanticAbort); !ok {
				panic(r)
			}
			errs = a.errors
		}
	}()

	a.registerGlobals(prog)
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.Function); ok {
			a.checkFunction(fn)
		}
	}
	return nil
}

// registerGlobals populates the global scope from every top-level item
// before any function body is checked, so forward calls between functions
// resolve regardless of declaration order.
func (a *Analyzer) registerGlobals(prog *ast.Program) {
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.ExternDecl:
			a.defineGlobal(&Symbol{
				Name:       it.Name,
				Kind:       SymFunction,
				Type:       it.RetType,
				ParamTypes: paramTypes(it.Params),
				Storage:    Global,
				DefinedAt:  it,
			}, it.Pos())

		case *ast.Function:
			a.defineGlobal(&Symbol{
				Name:       it.Name,
				Kind:       SymFunction,
				Type:       it.RetType,
				ParamTypes: paramTypes(it.Params),
				Storage:    Global,
				DefinedAt:  it,
			}, it.Pos())

		case *ast.VarDecl:
			if it.DeclType.Kind() == types.VoidKind {
				a.failType(KindVoidValue, it.Pos(), "variable %q cannot have type void", it.Name)
			}
			a.defineGlobal(&Symbol{
				Name: it.Name, Kind: SymVar, Type: it.DeclType, Storage: Global, DefinedAt: it,
			}, it.Pos())

		case *ast.ArrayDecl:
			if it.ElemType.Kind() == types.VoidKind {
				a.failType(KindVoidValue, it.Pos(), "array %q cannot have element type void", it.Name)
			}
			a.defineGlobal(&Symbol{
				Name: it.Name, Kind: SymArray, Type: it.ArrayType(), Storage: Global, DefinedAt: it,
			}, it.Pos())
		}
	}
}

// defineGlobal inserts sym into the global scope, reporting the sharper
// "function redefinition" diagnostic when the collision is between two
// function-kind symbols (spec §9 REDESIGN: this is rejected, not silently
// allowed), and the generic duplicate-declaration diagnostic otherwise.
//
// One function-kind collision is not a redefinition: an extern prototype
// followed by its matching definition (or the reverse order) is a
// declaration plus its body, not two bodies for the same name — spec §9's
// REDESIGN only targets the latter. The defining symbol replaces the
// extern's in scope so later lookups see the real function.
func (a *Analyzer) defineGlobal(sym *Symbol, pos lexer.Position) {
	existing, ok := a.global.Resolve(sym.Name)
	if !ok {
		_ = a.global.Define(sym)
		return
	}

	if existing.Kind == SymFunction && sym.Kind == SymFunction {
		if definition, externSym, ok := externThenDefinition(existing, sym); ok {
			if sameSignature(existing, sym) {
				a.global.Replace(definition)
				return
			}
			a.fail(diagnostics.Scope, pos, "definition of %q does not match its extern declaration at %s", sym.Name, externSym.DefinedAt.Pos())
			return
		}
		a.fail(diagnostics.Scope, pos, "redefinition of function %q (first declared at %s)", sym.Name, existing.DefinedAt.Pos())
		return
	}

	a.fail(diagnostics.Scope, pos, "%q is already declared at %s", sym.Name, existing.DefinedAt.Pos())
}

// externThenDefinition reports whether a and b are one *ast.ExternDecl and
// one *ast.Function for the same name, in either order, returning the
// *ast.Function one (the definition to keep) and the extern one.
func externThenDefinition(a, b *Symbol) (definition, extern *Symbol, ok bool) {
	_, aIsExtern := a.DefinedAt.(*ast.ExternDecl)
	_, bIsExtern := b.DefinedAt.(*ast.ExternDecl)
	_, aIsFunc := a.DefinedAt.(*ast.Function)
	_, bIsFunc := b.DefinedAt.(*ast.Function)

	if aIsExtern && bIsFunc {
		return b, a, true
	}
	if bIsExtern && aIsFunc {
		return a, b, true
	}
	return nil, nil, false
}

// sameSignature reports whether two function symbols declare the same
// return type and parameter types, in order.
func sameSignature(a, b *Symbol) bool {
	if !a.Type.Equals(b.Type) {
		return false
	}
	if len(a.ParamTypes) != len(b.ParamTypes) {
		return false
	}
	for i := range a.ParamTypes {
		if !a.ParamTypes[i].Equals(b.ParamTypes[i]) {
			return false
		}
	}
	return true
}

func paramTypes(params []*ast.Param) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = p.ParamType
	}
	return out
}
