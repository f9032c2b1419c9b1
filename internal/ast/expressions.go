package ast

import (
	"fmt"

	"github.com/cwbudde/minicc/internal/lexer"
)

// IntLit is an integer literal (spec §3.3).
type IntLit struct {
	typedExpr
	Value int64
	pos   lexer.Position
}

func NewIntLit(value int64, pos lexer.Position) *IntLit {
	return &IntLit{Value: value, pos: pos}
}

func (l *IntLit) expressionNode()       {}
func (l *IntLit) TokenLiteral() string  { return fmt.Sprintf("%d", l.Value) }
func (l *IntLit) Pos() lexer.Position   { return l.pos }
func (l *IntLit) String() string        { return fmt.Sprintf("%d", l.Value) }

// FloatLit is a floating-point literal (spec §3.3).
type FloatLit struct {
	typedExpr
	Value float64
	pos   lexer.Position
}

func NewFloatLit(value float64, pos lexer.Position) *FloatLit {
	return &FloatLit{Value: value, pos: pos}
}

func (l *FloatLit) expressionNode()      {}
func (l *FloatLit) TokenLiteral() string { return fmt.Sprintf("%g", l.Value) }
func (l *FloatLit) Pos() lexer.Position  { return l.pos }
func (l *FloatLit) String() string       { return fmt.Sprintf("%g", l.Value) }

// BoolLit is a `true`/`false` literal (spec §3.3).
type BoolLit struct {
	typedExpr
	Value bool
	pos   lexer.Position
}

func NewBoolLit(value bool, pos lexer.Position) *BoolLit {
	return &BoolLit{Value: value, pos: pos}
}

func (l *BoolLit) expressionNode() {}
func (l *BoolLit) TokenLiteral() string {
	if l.Value {
		return "true"
	}
	return "false"
}
func (l *BoolLit) Pos() lexer.Position { return l.pos }
func (l *BoolLit) String() string      { return l.TokenLiteral() }

// Var is a scalar variable reference (spec §3.3).
type Var struct {
	typedExpr
	Name string
	pos  lexer.Position
}

func NewVar(name string, pos lexer.Position) *Var {
	return &Var{Name: name, pos: pos}
}

func (v *Var) expressionNode()      {}
func (v *Var) TokenLiteral() string { return v.Name }
func (v *Var) Pos() lexer.Position  { return v.pos }
func (v *Var) String() string       { return v.Name }

// ArrayRef is a subscript chain `ident '[' expr ']' { '[' expr ']' }`
// (spec §3.3, §4.3). Its index count must match the declared rank of the
// array (spec §3.5).
type ArrayRef struct {
	typedExpr
	Name    string
	Indices []Expression
	pos     lexer.Position
}

func NewArrayRef(name string, indices []Expression, pos lexer.Position) *ArrayRef {
	return &ArrayRef{Name: name, Indices: indices, pos: pos}
}

func (a *ArrayRef) expressionNode()      {}
func (a *ArrayRef) TokenLiteral() string { return a.Name }
func (a *ArrayRef) Pos() lexer.Position  { return a.pos }
func (a *ArrayRef) String() string {
	s := a.Name
	for _, idx := range a.Indices {
		s += "[" + idx.String() + "]"
	}
	return s
}

// Call is a function-call expression (spec §3.3).
type Call struct {
	typedExpr
	Callee string
	Args   []Expression
	pos    lexer.Position
}

func NewCall(callee string, args []Expression, pos lexer.Position) *Call {
	return &Call{Callee: callee, Args: args, pos: pos}
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Callee }
func (c *Call) Pos() lexer.Position  { return c.pos }
func (c *Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Callee, joinExprs(c.Args))
}

// Assign is `target = value`; Target is always a Var or ArrayRef (spec
// §3.3, enforced by the parser, not this type). The parser builds an Assign
// only at statement position, so chained assignments such as `a = b = c;`
// are not parsed.
type Assign struct {
	typedExpr
	Target Expression
	Value  Expression
	pos    lexer.Position
}

func NewAssign(target, value Expression, pos lexer.Position) *Assign {
	return &Assign{Target: target, Value: value, pos: pos}
}

func (a *Assign) expressionNode()      {}
func (a *Assign) TokenLiteral() string { return "=" }
func (a *Assign) Pos() lexer.Position  { return a.pos }
func (a *Assign) String() string {
	return fmt.Sprintf("%s = %s", a.Target.String(), a.Value.String())
}

// Unary is `op operand` for op ∈ {-, !} (spec §3.3).
type Unary struct {
	typedExpr
	Op      lexer.TokenType
	Operand Expression
	pos     lexer.Position
}

func NewUnary(op lexer.TokenType, operand Expression, pos lexer.Position) *Unary {
	return &Unary{Op: op, Operand: operand, pos: pos}
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Op.String() }
func (u *Unary) Pos() lexer.Position  { return u.pos }
func (u *Unary) String() string {
	return fmt.Sprintf("(%s%s)", u.Op.String(), u.Operand.String())
}

// Binary is `lhs op rhs` for the eight-tier operator hierarchy of spec §4.3.
type Binary struct {
	typedExpr
	Op  lexer.TokenType
	LHS Expression
	RHS Expression
	pos lexer.Position
}

func NewBinary(op lexer.TokenType, lhs, rhs Expression, pos lexer.Position) *Binary {
	return &Binary{Op: op, LHS: lhs, RHS: rhs, pos: pos}
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Op.String() }
func (b *Binary) Pos() lexer.Position  { return b.pos }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.LHS.String(), b.Op.String(), b.RHS.String())
}
