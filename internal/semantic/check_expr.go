package semantic

import (
	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/diagnostics"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/types"
)

// checkExpr deduces expr's type, annotates it via SetType, and returns it —
// the bottom-up fold spec §4.2 describes so the IR emitter never has to
// re-derive a type it already computed here.
func (a *Analyzer) checkExpr(expr ast.Expression, scope *SymbolTable) types.Type {
	var t types.Type
	switch e := expr.(type) {
	case *ast.IntLit:
		t = types.Int
	case *ast.FloatLit:
		t = types.Float
	case *ast.BoolLit:
		t = types.Bool
	case *ast.Var:
		t = a.checkVar(e, scope)
	case *ast.ArrayRef:
		t = a.checkArrayRef(e, scope)
	case *ast.Call:
		t = a.checkCall(e, scope)
	case *ast.Assign:
		t = a.checkAssign(e, scope)
	case *ast.Unary:
		t = a.checkUnary(e, scope)
	case *ast.Binary:
		t = a.checkBinary(e, scope)
	default:
		a.fail(diagnostics.Type, expr.Pos(), "internal error: unhandled expression type %T", expr)
	}
	expr.SetType(t)
	return t
}

func (a *Analyzer) checkVar(e *ast.Var, scope *SymbolTable) types.Type {
	sym, ok := scope.Resolve(e.Name)
	if !ok {
		a.failSuggest(diagnostics.Scope, e.Pos(), e.Name, scope.Names(), "undeclared name %q", e.Name)
	}
	switch sym.Kind {
	case SymArray:
		a.failType(KindNonNumeric, e.Pos(), "%q is an array; an index expression is required", e.Name)
	case SymFunction:
		a.failType(KindNonNumeric, e.Pos(), "%q is a function; call it with ()", e.Name)
	}
	return sym.Type
}

// checkArrayRef validates the subscript count against the array's declared
// rank and each index's type (spec §3.5, §4.5). The float-subscript policy
// is the stricter of the two spec §9 calls acceptable: a Float index is a
// TypeError, not a silent truncation (see DESIGN.md's open-question log).
func (a *Analyzer) checkArrayRef(e *ast.ArrayRef, scope *SymbolTable) types.Type {
	sym, ok := scope.Resolve(e.Name)
	if !ok {
		a.failSuggest(diagnostics.Scope, e.Pos(), e.Name, scope.Names(), "undeclared name %q", e.Name)
	}
	if sym.Kind != SymArray {
		a.failType(KindNonNumeric, e.Pos(), "%q is not an array", e.Name)
	}
	arr := sym.Type.(*types.Array)
	if len(e.Indices) != len(arr.Dims) {
		a.failType(KindArgCount, e.Pos(), "array %q has rank %d, got %d index expression(s)", e.Name, len(arr.Dims), len(e.Indices))
	}
	for _, idx := range e.Indices {
		it := a.checkExpr(idx, scope)
		if !types.IsNumeric(it) || it.Kind() == types.FloatKind {
			a.failType(KindNonNumeric, idx.Pos(), "array subscript must be int, got %s", it)
		}
	}
	return arr.Elem
}

// checkCall validates argument count and per-argument widening against the
// callee's declared parameter types (spec §4.5).
func (a *Analyzer) checkCall(e *ast.Call, scope *SymbolTable) types.Type {
	sym, ok := scope.Resolve(e.Callee)
	if !ok {
		a.failSuggest(diagnostics.Scope, e.Pos(), e.Callee, scope.Names(), "undeclared function %q", e.Callee)
	}
	if sym.Kind != SymFunction {
		a.failType(KindNonNumeric, e.Pos(), "%q is not a function", e.Callee)
	}
	if len(e.Args) != len(sym.ParamTypes) {
		a.failType(KindArgCount, e.Pos(), "%q expects %d argument(s), got %d", e.Callee, len(sym.ParamTypes), len(e.Args))
	}
	for i, argExpr := range e.Args {
		at := a.checkExpr(argExpr, scope)
		pt := sym.ParamTypes[i]
		if !types.CanWiden(at, pt) {
			a.failType(KindArgType, argExpr.Pos(), "argument %d of %q: cannot widen %s to %s", i+1, e.Callee, at, pt)
		}
	}
	return sym.Type
}

// checkAssign enforces `rhs.type ≼ lhs.type` (spec §3.5, §4.5): widening
// is permitted, narrowing is a TypeError{Narrowing}.
func (a *Analyzer) checkAssign(e *ast.Assign, scope *SymbolTable) types.Type {
	targetType := a.checkExpr(e.Target, scope)
	valueType := a.checkExpr(e.Value, scope)
	if !types.CanWiden(valueType, targetType) {
		a.failType(KindNarrowing, e.Pos(), "cannot assign %s to %s (narrowing is never implicit)", valueType, targetType)
	}
	return targetType
}

func (a *Analyzer) checkUnary(e *ast.Unary, scope *SymbolTable) types.Type {
	operand := a.checkExpr(e.Operand, scope)
	if !types.IsNumeric(operand) {
		a.failType(KindNonNumeric, e.Pos(), "unary %s requires a numeric operand, got %s", e.Op, operand)
	}
	switch e.Op {
	case lexer.NOT:
		return types.Bool
	default: // lexer.MINUS — widen Bool to Int first, same rule as the
		// binary arithmetic operators (spec §4.5 doesn't special-case
		// unary minus on Bool, and there is no IR instruction to negate
		// an i1 directly).
		return widenBoolToInt(operand)
	}
}

// checkBinary implements the operator typing table of spec §4.5.
func (a *Analyzer) checkBinary(e *ast.Binary, scope *SymbolTable) types.Type {
	lt := a.checkExpr(e.LHS, scope)
	rt := a.checkExpr(e.RHS, scope)

	switch e.Op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH:
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			a.failType(KindNonNumeric, e.Pos(), "%s requires numeric operands, got %s and %s", e.Op, lt, rt)
		}
		return types.Widened(widenBoolToInt(lt), widenBoolToInt(rt))

	case lexer.PERCENT:
		if lt.Kind() != types.IntKind || rt.Kind() != types.IntKind {
			a.failType(KindModFloat, e.Pos(), "%% requires int operands, got %s and %s", lt, rt)
		}
		return types.Int

	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			a.failType(KindNonNumeric, e.Pos(), "%s requires numeric operands, got %s and %s", e.Op, lt, rt)
		}
		return types.Bool

	case lexer.EQ, lexer.NE:
		bothBool := lt.Kind() == types.BoolKind && rt.Kind() == types.BoolKind
		if !bothBool && (!types.IsNumeric(lt) || !types.IsNumeric(rt)) {
			a.failType(KindNonNumeric, e.Pos(), "%s requires two numeric operands or two bools, got %s and %s", e.Op, lt, rt)
		}
		return types.Bool

	case lexer.AND, lexer.OR:
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			a.failType(KindNonNumeric, e.Pos(), "%s requires numeric operands, got %s and %s", e.Op, lt, rt)
		}
		return types.Bool

	default:
		a.fail(diagnostics.Type, e.Pos(), "internal error: unhandled binary operator %s", e.Op)
		return nil
	}
}

func widenBoolToInt(t types.Type) types.Type {
	if t.Kind() == types.BoolKind {
		return types.Int
	}
	return t
}
