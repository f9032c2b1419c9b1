// Package ast defines the Abstract Syntax Tree node types for Mini-C.
package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/types"
)

// Node is the base interface for every AST node: it can report the literal
// text of the token it originates from, render itself for debugging, and
// report its source position for diagnostics (spec §3.3).
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value. Every expression carries a
// deduced type, set by the semantic analyzer; it is nil until analysis
// assigns it (spec §3.3, §4.2: "every expression variant stores its
// deduced type — enabling the IR emitter to run as a bottom-up fold
// without re-deducing").
type Expression interface {
	Node
	expressionNode()
	GetType() types.Type
	SetType(types.Type)
}

// Statement is a node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Item is a top-level declaration: ExternDecl | VarDecl | ArrayDecl | Function
// (spec §3.3's "Top-level" grammar; VarDecl/ArrayDecl double as both global
// items and block-local declarations).
type Item interface {
	Node
	itemNode()
}

// Decl is a block-local declaration: VarDecl | ArrayDecl.
type Decl interface {
	Node
	declNode()
}

// Program is the AST root: an ordered list of top-level items.
type Program struct {
	Items []Item
}

func (p *Program) TokenLiteral() string {
	if len(p.Items) > 0 {
		return p.Items[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, item := range p.Items {
		if i > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(item.String())
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Items) > 0 {
		return p.Items[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// typedExpr is the field embedded by every Expression implementation to
// carry its deduced type.
type typedExpr struct {
	Type types.Type
}

func (t *typedExpr) GetType() types.Type  { return t.Type }
func (t *typedExpr) SetType(typ types.Type) { t.Type = typ }

// renderTypeName renders a scalar declared type the way Mini-C source
// spells it (int/float/bool/void), used by declaration String() methods.
func renderTypeName(t types.Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
