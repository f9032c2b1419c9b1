package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/types"
)

// VarDecl declares a scalar local or global variable: `type ident ';'`
// (spec §3.3).
type VarDecl struct {
	DeclType types.Type
	Name     string
	pos      lexer.Position
}

func NewVarDecl(declType types.Type, name string, pos lexer.Position) *VarDecl {
	return &VarDecl{DeclType: declType, Name: name, pos: pos}
}

func (d *VarDecl) declNode()               {}
func (d *VarDecl) itemNode()               {}
func (d *VarDecl) TokenLiteral() string    { return renderTypeName(d.DeclType) }
func (d *VarDecl) Pos() lexer.Position     { return d.pos }
func (d *VarDecl) String() string {
	return fmt.Sprintf("%s %s;", renderTypeName(d.DeclType), d.Name)
}

// ArrayDecl declares an arbitrary-rank array local or global:
// `type ident '[' int_lit ']' { '[' int_lit ']' } ';'` (spec §3.3, §4.3).
type ArrayDecl struct {
	ElemType types.Type
	Name     string
	Dims     []int
	pos      lexer.Position
}

func NewArrayDecl(elemType types.Type, name string, dims []int, pos lexer.Position) *ArrayDecl {
	d := make([]int, len(dims))
	copy(d, dims)
	return &ArrayDecl{ElemType: elemType, Name: name, Dims: d, pos: pos}
}

func (d *ArrayDecl) declNode()            {}
func (d *ArrayDecl) itemNode()            {}
func (d *ArrayDecl) TokenLiteral() string { return renderTypeName(d.ElemType) }
func (d *ArrayDecl) Pos() lexer.Position  { return d.pos }

func (d *ArrayDecl) String() string {
	var sb strings.Builder
	sb.WriteString(renderTypeName(d.ElemType))
	sb.WriteByte(' ')
	sb.WriteString(d.Name)
	for _, dim := range d.Dims {
		fmt.Fprintf(&sb, "[%d]", dim)
	}
	sb.WriteByte(';')
	return sb.String()
}

// ArrayType returns the full types.Array this declaration introduces.
func (d *ArrayDecl) ArrayType() *types.Array {
	return types.NewArray(d.ElemType, d.Dims)
}

// Param is a single function/extern parameter: `type ident`.
type Param struct {
	ParamType types.Type
	Name      string
	pos       lexer.Position
}

func NewParam(paramType types.Type, name string, pos lexer.Position) *Param {
	return &Param{ParamType: paramType, Name: name, pos: pos}
}

func (p *Param) TokenLiteral() string { return renderTypeName(p.ParamType) }
func (p *Param) Pos() lexer.Position  { return p.pos }
func (p *Param) String() string {
	return fmt.Sprintf("%s %s", renderTypeName(p.ParamType), p.Name)
}

func joinParams(params []*Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// ExternDecl is a bodyless function signature linking to a runtime-provided
// function (spec §3.3, GLOSSARY "Extern declaration").
type ExternDecl struct {
	RetType types.Type
	Name    string
	Params  []*Param
	pos     lexer.Position
}

func NewExternDecl(retType types.Type, name string, params []*Param, pos lexer.Position) *ExternDecl {
	return &ExternDecl{RetType: retType, Name: name, Params: params, pos: pos}
}

func (e *ExternDecl) itemNode()            {}
func (e *ExternDecl) TokenLiteral() string { return "extern" }
func (e *ExternDecl) Pos() lexer.Position  { return e.pos }
func (e *ExternDecl) String() string {
	return fmt.Sprintf("extern %s %s(%s);", renderTypeName(e.RetType), e.Name, joinParams(e.Params))
}

// Function is a complete function definition with a body (spec §3.3).
// A Function has exactly one body (spec §3.5) — ExternDecl, by contrast,
// has none.
type Function struct {
	RetType types.Type
	Name    string
	Params  []*Param
	Body    *Block
	pos     lexer.Position
}

func NewFunction(retType types.Type, name string, params []*Param, body *Block, pos lexer.Position) *Function {
	return &Function{RetType: retType, Name: name, Params: params, Body: body, pos: pos}
}

func (f *Function) itemNode()            {}
func (f *Function) TokenLiteral() string { return renderTypeName(f.RetType) }
func (f *Function) Pos() lexer.Position  { return f.pos }
func (f *Function) String() string {
	return fmt.Sprintf("%s %s(%s) %s", renderTypeName(f.RetType), f.Name, joinParams(f.Params), f.Body.String())
}
