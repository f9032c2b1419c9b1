package ast

import (
	"testing"

	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/types"
)

var zeroPos = lexer.Position{Line: 1, Column: 1}

func TestExpressionTypeStartsUnknown(t *testing.T) {
	v := NewVar("x", zeroPos)
	if v.GetType() != nil {
		t.Fatalf("GetType() = %v, want nil before analysis", v.GetType())
	}
	v.SetType(types.Int)
	if v.GetType() != types.Int {
		t.Fatalf("GetType() = %v, want Int after SetType", v.GetType())
	}
}

func TestFunctionString(t *testing.T) {
	body := NewBlock(nil, []Statement{NewReturn(NewIntLit(0, zeroPos), zeroPos)}, zeroPos)
	fn := NewFunction(types.Int, "addition", []*Param{
		NewParam(types.Int, "a", zeroPos),
		NewParam(types.Int, "b", zeroPos),
	}, body, zeroPos)

	got := fn.String()
	want := "int addition(int a, int b) {\n  return 0;\n}"
	if got != want {
		t.Errorf("Function.String() = %q, want %q", got, want)
	}
}

func TestArrayRefString(t *testing.T) {
	ref := NewArrayRef("b", []Expression{NewIntLit(2, zeroPos), NewIntLit(3, zeroPos)}, zeroPos)
	if got := ref.String(); got != "b[2][3]" {
		t.Errorf("ArrayRef.String() = %q, want b[2][3]", got)
	}
}

func TestArrayDeclArrayType(t *testing.T) {
	decl := NewArrayDecl(types.Int, "b", []int{10, 10}, zeroPos)
	arr := decl.ArrayType()
	if arr.Kind() != types.ArrayKind {
		t.Fatalf("ArrayType().Kind() = %v, want ArrayKind", arr.Kind())
	}
	if len(arr.Dims) != 2 || arr.Dims[0] != 10 || arr.Dims[1] != 10 {
		t.Fatalf("ArrayType().Dims = %v, want [10 10]", arr.Dims)
	}
}

func TestBinaryAndUnaryString(t *testing.T) {
	bin := NewBinary(lexer.PLUS, NewIntLit(1, zeroPos), NewIntLit(2, zeroPos), zeroPos)
	if got := bin.String(); got != "(1 + 2)" {
		t.Errorf("Binary.String() = %q, want (1 + 2)", got)
	}
	un := NewUnary(lexer.MINUS, NewIntLit(1, zeroPos), zeroPos)
	if got := un.String(); got != "(-1)" {
		t.Errorf("Unary.String() = %q, want (-1)", got)
	}
}

func TestProgramPosUsesFirstItem(t *testing.T) {
	pos := lexer.Position{Line: 3, Column: 5}
	decl := NewVarDecl(types.Int, "x", pos)
	prog := &Program{Items: []Item{decl}}
	if prog.Pos() != pos {
		t.Errorf("Program.Pos() = %v, want %v", prog.Pos(), pos)
	}
}
