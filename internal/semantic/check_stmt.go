package semantic

import (
	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/diagnostics"
	"github.com/cwbudde/minicc/internal/types"
)

// checkFunction binds parameters in a fresh scope and type-checks the
// body against the declared return type (spec §4.4: "Function bodies push
// a scope with parameters already bound").
func (a *Analyzer) checkFunction(fn *ast.Function) {
	paramScope := NewSymbolTable(a.global)
	for _, p := range fn.Params {
		if p.ParamType.Kind() == types.VoidKind {
			a.failType(KindVoidValue, p.Pos(), "parameter %q cannot have type void", p.Name)
		}
		sym := &Symbol{Name: p.Name, Kind: SymVar, Type: p.ParamType, Storage: Param, DefinedAt: p}
		if err := paramScope.Define(sym); err != nil {
			a.fail(diagnostics.Scope, p.Pos(), "parameter %q declared more than once", p.Name)
		}
	}

	prevRet := a.currentReturnType
	a.currentReturnType = fn.RetType
	defer func() { a.currentReturnType = prevRet }()

	a.checkBlock(fn.Body, paramScope)
}

// checkBlock pushes a nested scope for block's own local declarations —
// every nested block, including a function's top-level body block, gets
// its own scope distinct from the scope that bound it (spec §4.4: "each
// nested block pushes another").
func (a *Analyzer) checkBlock(block *ast.Block, parent *SymbolTable) *SymbolTable {
	scope := NewSymbolTable(parent)

	for _, d := range block.Locals {
		switch decl := d.(type) {
		case *ast.VarDecl:
			if decl.DeclType.Kind() == types.VoidKind {
				a.failType(KindVoidValue, decl.Pos(), "variable %q cannot have type void", decl.Name)
			}
			a.defineLocal(scope, &Symbol{Name: decl.Name, Kind: SymVar, Type: decl.DeclType, Storage: Local, DefinedAt: decl})
		case *ast.ArrayDecl:
			if decl.ElemType.Kind() == types.VoidKind {
				a.failType(KindVoidValue, decl.Pos(), "array %q cannot have element type void", decl.Name)
			}
			a.defineLocal(scope, &Symbol{Name: decl.Name, Kind: SymArray, Type: decl.ArrayType(), Storage: Local, DefinedAt: decl})
		}
	}

	for _, s := range block.Stmts {
		a.checkStmt(s, scope)
	}
	return scope
}

// defineLocal enforces spec §3.5's "unique within the block's own scope"
// invariant — shadowing an outer scope's name is fine, redeclaring within
// the same block is not.
func (a *Analyzer) defineLocal(scope *SymbolTable, sym *Symbol) {
	if scope.DeclaredHere(sym.Name) {
		a.fail(diagnostics.Scope, sym.DefinedAt.Pos(), "%q already declared in this block", sym.Name)
	}
	_ = scope.Define(sym)
}

func (a *Analyzer) checkStmt(stmt ast.Statement, scope *SymbolTable) {
	switch st := stmt.(type) {
	case *ast.Block:
		a.checkBlock(st, scope)
	case *ast.If:
		a.checkCondition(st.Cond, scope)
		a.checkStmt(st.Then, scope)
		if st.Else != nil {
			a.checkStmt(st.Else, scope)
		}
	case *ast.While:
		a.checkCondition(st.Cond, scope)
		a.checkStmt(st.Body, scope)
	case *ast.Return:
		a.checkReturn(st, scope)
	case *ast.ExprStmt:
		a.checkExpr(st.Expr, scope)
	case *ast.Empty:
		// no-op
	}
}

// checkCondition type-checks an `if`/`while` condition: any numeric type
// is accepted here, narrowed to Bool by the conditional-context rule
// (spec §4.5) — the narrowing itself is an emission-time coercion, not a
// rewrite of the expression's own deduced type.
func (a *Analyzer) checkCondition(expr ast.Expression, scope *SymbolTable) {
	t := a.checkExpr(expr, scope)
	if !types.IsNumeric(t) {
		a.failType(KindNonNumeric, expr.Pos(), "condition must be numeric, got %s", t)
	}
}

func (a *Analyzer) checkReturn(st *ast.Return, scope *SymbolTable) {
	if st.Value == nil {
		if a.currentReturnType.Kind() != types.VoidKind {
			a.failType(KindReturnType, st.Pos(), "missing return value for a function returning %s", a.currentReturnType)
		}
		return
	}

	vt := a.checkExpr(st.Value, scope)
	if a.currentReturnType.Kind() == types.VoidKind {
		a.failType(KindVoidValue, st.Value.Pos(), "void function must not return a value")
	}
	if !types.CanWiden(vt, a.currentReturnType) {
		a.failType(KindReturnType, st.Value.Pos(), "cannot return %s where %s is expected", vt, a.currentReturnType)
	}
}
