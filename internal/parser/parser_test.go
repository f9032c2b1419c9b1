package parser

import (
	"testing"

	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected syntax error(s): %v", errs)
	}
	return prog
}

func parseProgramErr(t *testing.T, src string) []*SyntaxError {
	t.Helper()
	p := New(lexer.New(src))
	p.ParseProgram()
	return p.Errors()
}

func TestParseFunctionWithArithmeticBody(t *testing.T) {
	prog := parseProgram(t, `
int add(int a, int b) {
  return a + b * 2;
}
`)
	if len(prog.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(prog.Items))
	}
	fn, ok := prog.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("Items[0] = %T, want *ast.Function", prog.Items[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("fn = %+v", fn)
	}
	ret, ok := fn.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("body stmt = %T, want *ast.Return", fn.Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ast.Binary)
	if !ok || bin.Op != lexer.PLUS {
		t.Fatalf("return value = %+v, want top-level +", ret.Value)
	}
	rhs, ok := bin.RHS.(*ast.Binary)
	if !ok || rhs.Op != lexer.STAR {
		t.Fatalf("return value RHS = %+v, want * to bind tighter than +", bin.RHS)
	}
}

func TestIdentStatementScalarAssignment(t *testing.T) {
	prog := parseProgram(t, `
int main() {
  int x;
  x = 5;
  return x;
}
`)
	fn := prog.Items[0].(*ast.Function)
	assignStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	assign := assignStmt.Expr.(*ast.Assign)
	if _, ok := assign.Target.(*ast.Var); !ok {
		t.Fatalf("target = %T, want *ast.Var", assign.Target)
	}
}

func TestIdentStatementArrayAssignment(t *testing.T) {
	prog := parseProgram(t, `
int main() {
  int b[4];
  b[1] = 5;
  return 0;
}
`)
	fn := prog.Items[0].(*ast.Function)
	assignStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	assign := assignStmt.Expr.(*ast.Assign)
	ref, ok := assign.Target.(*ast.ArrayRef)
	if !ok {
		t.Fatalf("target = %T, want *ast.ArrayRef", assign.Target)
	}
	if ref.Name != "b" || len(ref.Indices) != 1 {
		t.Fatalf("ref = %+v", ref)
	}
}

func TestIdentStatementArrayRvalueContinuesExpression(t *testing.T) {
	prog := parseProgram(t, `
int main() {
  int b[4];
  int y;
  y = b[1] + 2;
  return 0;
}
`)
	fn := prog.Items[0].(*ast.Function)
	assignStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	assign := assignStmt.Expr.(*ast.Assign)
	bin, ok := assign.Value.(*ast.Binary)
	if !ok || bin.Op != lexer.PLUS {
		t.Fatalf("value = %+v, want a + binary", assign.Value)
	}
	if _, ok := bin.LHS.(*ast.ArrayRef); !ok {
		t.Fatalf("LHS = %T, want *ast.ArrayRef", bin.LHS)
	}
}

func TestIdentStatementPlainExpressionIsPushedBackAndReparsed(t *testing.T) {
	// `x + 1;` as a statement: after consuming `x` the parser sees `+`,
	// neither '=' nor '[' nor '(' — this exercises the PushBack path.
	prog := parseProgram(t, `
int main() {
  int x;
  x + 1;
  return 0;
}
`)
	fn := prog.Items[0].(*ast.Function)
	exprStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	bin, ok := exprStmt.Expr.(*ast.Binary)
	if !ok || bin.Op != lexer.PLUS {
		t.Fatalf("expr = %+v, want x + 1", exprStmt.Expr)
	}
	if v, ok := bin.LHS.(*ast.Var); !ok || v.Name != "x" {
		t.Fatalf("LHS = %+v, want Var x", bin.LHS)
	}
}

func TestIdentStatementCallStatement(t *testing.T) {
	prog := parseProgram(t, `
extern void print_int(int v);
int main() {
  print_int(42);
  return 0;
}
`)
	fn := prog.Items[1].(*ast.Function)
	exprStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	call, ok := exprStmt.Expr.(*ast.Call)
	if !ok || call.Callee != "print_int" || len(call.Args) != 1 {
		t.Fatalf("expr = %+v, want call to print_int(42)", exprStmt.Expr)
	}
}

func TestTwoDimensionalArrayDeclAndSubscript(t *testing.T) {
	prog := parseProgram(t, `
int grid[3][3];
int main() {
  grid[1][2] = 9;
  return grid[1][2];
}
`)
	decl := prog.Items[0].(*ast.ArrayDecl)
	if len(decl.Dims) != 2 || decl.Dims[0] != 3 || decl.Dims[1] != 3 {
		t.Fatalf("decl.Dims = %v, want [3 3]", decl.Dims)
	}
	fn := prog.Items[1].(*ast.Function)
	assign := fn.Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.Assign)
	ref := assign.Target.(*ast.ArrayRef)
	if len(ref.Indices) != 2 {
		t.Fatalf("len(ref.Indices) = %d, want 2", len(ref.Indices))
	}
}

func TestOperatorPrecedenceAndAssociativity(t *testing.T) {
	prog := parseProgram(t, `
bool p;
int main() {
  p = 1 < 2 && 3 == 3 || !false;
  return 0;
}
`)
	fn := prog.Items[1].(*ast.Function)
	assign := fn.Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.Assign)
	top, ok := assign.Value.(*ast.Binary)
	if !ok || top.Op != lexer.OR {
		t.Fatalf("top operator = %+v, want || at the loosest tier", assign.Value)
	}
	left, ok := top.LHS.(*ast.Binary)
	if !ok || left.Op != lexer.AND {
		t.Fatalf("top.LHS = %+v, want &&", top.LHS)
	}
}

func TestIfElseAndWhile(t *testing.T) {
	prog := parseProgram(t, `
int main() {
  int i;
  i = 0;
  while (i < 10) {
    if (i == 5) {
      i = i + 1;
    } else {
      i = i + 2;
    }
  }
  return i;
}
`)
	fn := prog.Items[0].(*ast.Function)
	w, ok := fn.Body.Stmts[1].(*ast.While)
	if !ok {
		t.Fatalf("Stmts[1] = %T, want *ast.While", fn.Body.Stmts[1])
	}
	body := w.Body.(*ast.Block)
	ifStmt := body.Stmts[0].(*ast.If)
	if ifStmt.Else == nil {
		t.Fatalf("If.Else = nil, want an else branch")
	}
}

func TestEmptyBlockIsSyntaxError(t *testing.T) {
	errs := parseProgramErr(t, `
int main() {
}
`)
	if len(errs) == 0 {
		t.Fatal("expected a syntax error for an empty block")
	}
}

func TestMissingSemicolonIsSyntaxError(t *testing.T) {
	errs := parseProgramErr(t, `
int main() {
  return 0
}
`)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want exactly 1 (first-error-abort)", len(errs))
	}
}

func TestExternDeclaration(t *testing.T) {
	prog := parseProgram(t, `extern int read_int();`)
	ext, ok := prog.Items[0].(*ast.ExternDecl)
	if !ok {
		t.Fatalf("Items[0] = %T, want *ast.ExternDecl", prog.Items[0])
	}
	if ext.Name != "read_int" || len(ext.Params) != 0 {
		t.Fatalf("ext = %+v", ext)
	}
}

func TestBlockDeclarationsMustPrecedeStatements(t *testing.T) {
	errs := parseProgramErr(t, `
int main() {
  int x;
  x = 1;
  int y;
  return x;
}
`)
	if len(errs) == 0 {
		t.Fatal("expected a syntax error when a declaration follows a statement")
	}
}
