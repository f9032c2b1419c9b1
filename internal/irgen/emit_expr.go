package irgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/types"
)

// emitExpr lowers one already type-checked expression to the IR value it
// produces, using each node's deduced type (set by semantic.Analyze) to
// drive every coercion decision — the bottom-up fold spec §4.2 describes,
// run a second time over the same tree this time to emit instead of check.
func (e *emitter) emitExpr(expr ast.Expression, sc *scope) Value {
	switch ex := expr.(type) {
	case *ast.IntLit:
		return Value{Name: strconv.FormatInt(ex.Value, 10), Type: "i32"}
	case *ast.FloatLit:
		return Value{Name: floatLiteral(ex.Value), Type: "float"}
	case *ast.BoolLit:
		return Value{Name: boolLiteral(ex.Value), Type: "i1"}
	case *ast.Var:
		return e.emitVar(ex, sc)
	case *ast.ArrayRef:
		return e.emitArrayLoad(ex, sc)
	case *ast.Call:
		return e.emitCall(ex, sc)
	case *ast.Assign:
		return e.emitAssign(ex, sc)
	case *ast.Unary:
		return e.emitUnary(ex, sc)
	case *ast.Binary:
		return e.emitBinary(ex, sc)
	default:
		panic(fmt.Sprintf("internal error: unhandled expression type %T", expr))
	}
}

func floatLiteral(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func boolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (e *emitter) emitVar(v *ast.Var, sc *scope) Value {
	s := sc.resolve(v.Name)
	t := llvmType(s.elemType)
	return e.emit(fmt.Sprintf("load %s, ptr %s", t, s.ptr.Name), "load", t)
}

// arrayAddr computes the address of one array-ref's element. Every array
// in this grammar is a local or global, never a parameter (§3.3's param
// grammar has no array-typed parameter form), so the decay-zero GEP index
// is always present — the no-decay, pointer-parameter variant spec §4.6
// describes has no way to be constructed under this grammar and is not
// implemented (see DESIGN.md).
func (e *emitter) arrayAddr(ar *ast.ArrayRef, sc *scope) (Value, types.Type) {
	s := sc.resolve(ar.Name)
	arr := s.elemType.(*types.Array)

	idxStrs := make([]string, 0, len(ar.Indices)+1)
	idxStrs = append(idxStrs, "i32 0")
	for _, idxExpr := range ar.Indices {
		iv := e.emitExpr(idxExpr, sc)
		iv = e.widen(iv, idxExpr.GetType(), types.Int)
		idxStrs = append(idxStrs, fmt.Sprintf("i32 %s", iv.Name))
	}

	rhs := fmt.Sprintf("getelementptr %s, ptr %s, %s", llvmType(s.elemType), s.ptr.Name, strings.Join(idxStrs, ", "))
	addr := e.emit(rhs, "arrayidx", "ptr")
	return addr, arr.Elem
}

func (e *emitter) emitArrayLoad(ar *ast.ArrayRef, sc *scope) Value {
	addr, elem := e.arrayAddr(ar, sc)
	t := llvmType(elem)
	return e.emit(fmt.Sprintf("load %s, ptr %s", t, addr.Name), "load", t)
}

func (e *emitter) emitCall(c *ast.Call, sc *scope) Value {
	s := sc.resolve(c.Callee)
	argStrs := make([]string, len(c.Args))
	for i, a := range c.Args {
		v := e.emitExpr(a, sc)
		pt := s.paramTypes[i]
		v = e.widen(v, a.GetType(), pt)
		argStrs[i] = fmt.Sprintf("%s %s", llvmType(pt), v.Name)
	}

	retT := llvmType(s.elemType)
	callText := fmt.Sprintf("call %s @%s(%s)", retT, c.Callee, strings.Join(argStrs, ", "))
	if retT == "void" {
		e.emitVoidInstr(callText)
		return Value{}
	}
	return e.emit(callText, "calltmp", retT)
}

func (e *emitter) emitAssign(a *ast.Assign, sc *scope) Value {
	val := e.emitExpr(a.Value, sc)
	val = e.widen(val, a.Value.GetType(), a.Target.GetType())

	var ptr Value
	var targetType types.Type
	switch tgt := a.Target.(type) {
	case *ast.Var:
		s := sc.resolve(tgt.Name)
		ptr, targetType = s.ptr, s.elemType
	case *ast.ArrayRef:
		ptr, targetType = e.arrayAddr(tgt, sc)
	default:
		panic(fmt.Sprintf("internal error: unhandled assignment target %T", a.Target))
	}

	e.emitVoidInstr(fmt.Sprintf("store %s %s, ptr %s", llvmType(targetType), val.Name, ptr.Name))
	return val
}

func (e *emitter) emitUnary(u *ast.Unary, sc *scope) Value {
	switch u.Op {
	case lexer.NOT:
		v := e.emitToBool(u.Operand, sc)
		return e.emit(fmt.Sprintf("xor i1 %s, true", v.Name), "nottmp", "i1")
	default: // lexer.MINUS
		ot := u.Operand.GetType()
		v := e.emitExpr(u.Operand, sc)
		wt := widenBoolToInt(ot)
		v = e.widen(v, ot, wt)
		if wt.Kind() == types.FloatKind {
			return e.emit(fmt.Sprintf("fneg float %s", v.Name), "negtmp", "float")
		}
		return e.emit(fmt.Sprintf("sub i32 0, %s", v.Name), "negtmp", "i32")
	}
}

// emitBinary implements the operator typing/lowering table of spec §4.5 and
// §4.6. && and || are handled separately (emitLogicalAnd/Or) since they
// need their own basic blocks for short-circuit evaluation.
func (e *emitter) emitBinary(b *ast.Binary, sc *scope) Value {
	switch b.Op {
	case lexer.AND:
		return e.emitLogicalAnd(b, sc)
	case lexer.OR:
		return e.emitLogicalOr(b, sc)
	}

	lt, rt := b.LHS.GetType(), b.RHS.GetType()
	lv := e.emitExpr(b.LHS, sc)
	rv := e.emitExpr(b.RHS, sc)

	switch b.Op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH:
		wt := types.Widened(widenBoolToInt(lt), widenBoolToInt(rt))
		lv = e.widen(lv, lt, wt)
		rv = e.widen(rv, rt, wt)
		return e.emitArith(b.Op, wt, lv, rv)

	case lexer.PERCENT:
		return e.emit(fmt.Sprintf("srem i32 %s, %s", lv.Name, rv.Name), "modtmp", "i32")

	case lexer.EQ, lexer.NE:
		if lt.Kind() == types.BoolKind && rt.Kind() == types.BoolKind {
			return e.emitCompare(b.Op, types.Bool, lv, rv)
		}
		wt := types.Widened(widenBoolToInt(lt), widenBoolToInt(rt))
		lv = e.widen(lv, lt, wt)
		rv = e.widen(rv, rt, wt)
		return e.emitCompare(b.Op, wt, lv, rv)

	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		wt := types.Widened(widenBoolToInt(lt), widenBoolToInt(rt))
		lv = e.widen(lv, lt, wt)
		rv = e.widen(rv, rt, wt)
		return e.emitCompare(b.Op, wt, lv, rv)

	default:
		panic(fmt.Sprintf("internal error: unhandled binary operator %s", b.Op))
	}
}

func (e *emitter) emitArith(op lexer.TokenType, t types.Type, lv, rv Value) Value {
	isFloat := t.Kind() == types.FloatKind
	var instr, base string
	switch op {
	case lexer.PLUS:
		instr, base = pick(isFloat, "fadd", "add"), "addtmp"
	case lexer.MINUS:
		instr, base = pick(isFloat, "fsub", "sub"), "subtmp"
	case lexer.STAR:
		instr, base = pick(isFloat, "fmul", "mul"), "multmp"
	case lexer.SLASH:
		instr, base = pick(isFloat, "fdiv", "sdiv"), "divtmp"
	default:
		panic(fmt.Sprintf("internal error: unhandled arithmetic operator %s", op))
	}
	tt := llvmType(t)
	return e.emit(fmt.Sprintf("%s %s %s, %s", instr, tt, lv.Name, rv.Name), base, tt)
}

func (e *emitter) emitCompare(op lexer.TokenType, t types.Type, lv, rv Value) Value {
	isFloat := t.Kind() == types.FloatKind
	tt := llvmType(t)
	var cc string
	switch op {
	case lexer.LT:
		cc = pick(isFloat, "olt", "slt")
	case lexer.LE:
		cc = pick(isFloat, "ole", "sle")
	case lexer.GT:
		cc = pick(isFloat, "ogt", "sgt")
	case lexer.GE:
		cc = pick(isFloat, "oge", "sge")
	case lexer.EQ:
		cc = pick(isFloat, "oeq", "eq")
	case lexer.NE:
		cc = pick(isFloat, "one", "ne")
	default:
		panic(fmt.Sprintf("internal error: unhandled comparison operator %s", op))
	}
	instr := pick(isFloat, "fcmp", "icmp")
	return e.emit(fmt.Sprintf("%s %s %s %s, %s", instr, cc, tt, lv.Name, rv.Name), "cmptmp", "i1")
}

// emitLogicalAnd lowers `a && b` so that b is only ever emitted on the path
// where a is true (spec §5, §8: "when a is false, b must not be emitted on
// the taken path"). The result is threaded through a slot rather than a
// phi node, the same "uniform with locals" convention spec §4.6 asks the
// rest of the emitter to follow.
func (e *emitter) emitLogicalAnd(b *ast.Binary, sc *scope) Value {
	lhsVal := e.emitToBool(b.LHS, sc)
	resultSlot := e.allocaAnon("andtmp", types.Bool)

	rhsBB := e.fn.NewBlock("and.rhs")
	mergeBB := e.fn.NewBlock("and.end")

	e.emitVoidInstr(fmt.Sprintf("store i1 %s, ptr %s", lhsVal.Name, resultSlot.Name))
	e.terminateCur(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", lhsVal.Name, rhsBB.Name, mergeBB.Name))

	e.cur = rhsBB
	rhsVal := e.emitToBool(b.RHS, sc)
	e.emitVoidInstr(fmt.Sprintf("store i1 %s, ptr %s", rhsVal.Name, resultSlot.Name))
	e.terminateCur(fmt.Sprintf("br label %%%s", mergeBB.Name))

	e.cur = mergeBB
	return e.emit(fmt.Sprintf("load i1, ptr %s", resultSlot.Name), "andtmp", "i1")
}

func (e *emitter) emitLogicalOr(b *ast.Binary, sc *scope) Value {
	lhsVal := e.emitToBool(b.LHS, sc)
	resultSlot := e.allocaAnon("ortmp", types.Bool)

	rhsBB := e.fn.NewBlock("or.rhs")
	mergeBB := e.fn.NewBlock("or.end")

	e.emitVoidInstr(fmt.Sprintf("store i1 %s, ptr %s", lhsVal.Name, resultSlot.Name))
	e.terminateCur(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", lhsVal.Name, mergeBB.Name, rhsBB.Name))

	e.cur = rhsBB
	rhsVal := e.emitToBool(b.RHS, sc)
	e.emitVoidInstr(fmt.Sprintf("store i1 %s, ptr %s", rhsVal.Name, resultSlot.Name))
	e.terminateCur(fmt.Sprintf("br label %%%s", mergeBB.Name))

	e.cur = mergeBB
	return e.emit(fmt.Sprintf("load i1, ptr %s", resultSlot.Name), "ortmp", "i1")
}

// emitToBool evaluates expr, then applies the conditional-context
// narrowing rule (spec §4.5): any numeric value is compared against zero.
func (e *emitter) emitToBool(expr ast.Expression, sc *scope) Value {
	v := e.emitExpr(expr, sc)
	return e.narrowToBool(v, expr.GetType())
}

func (e *emitter) narrowToBool(v Value, from types.Type) Value {
	switch from.Kind() {
	case types.BoolKind:
		return v
	case types.IntKind:
		return e.emit(fmt.Sprintf("icmp ne i32 %s, 0", v.Name), "booltmp", "i1")
	case types.FloatKind:
		return e.emit(fmt.Sprintf("fcmp une float %s, 0.0", v.Name), "booltmp", "i1")
	default:
		panic(fmt.Sprintf("internal error: %v cannot be narrowed to bool", from))
	}
}

// widen applies the explicit coercion chain spec §4.6 calls for: each
// widening step is its own IR instruction, walked one lattice rank at a
// time so a Bool reaching Float always passes through Int first (matching
// "Bool→Int zero-extends, Int→Float signed-int-to-float" taken as two
// separate, always-available steps).
func (e *emitter) widen(v Value, from, to types.Type) Value {
	if from.Equals(to) {
		return v
	}
	cur, curType := v, from
	for types.Rank(curType) < types.Rank(to) {
		switch curType.Kind() {
		case types.BoolKind:
			cur = e.emit(fmt.Sprintf("zext i1 %s to i32", cur.Name), "zexttmp", "i32")
			curType = types.Int
		case types.IntKind:
			cur = e.emit(fmt.Sprintf("sitofp i32 %s to float", cur.Name), "sitofptmp", "float")
			curType = types.Float
		default:
			panic(fmt.Sprintf("internal error: no widening step from %v", curType))
		}
	}
	return cur
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
