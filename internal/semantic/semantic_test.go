package semantic

import (
	"testing"

	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/parser"
	"github.com/cwbudde/minicc/internal/types"
)

func analyze(t *testing.T, src string) (*ast.Program, []*ast.Program, *Analyzer) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected syntax error(s): %v", errs)
	}
	a := New(src, "test.mc")
	errs := a.Analyze(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic error(s): %v", errs)
	}
	return prog, nil, a
}

func analyzeErr(t *testing.T, src string) []string {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected syntax error(s): %v", errs)
	}
	a := New(src, "test.mc")
	errs := a.Analyze(prog)
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

func TestAdditionDeducesWidenedType(t *testing.T) {
	prog, _, _ := analyze(t, `
int addition(int a, int b) {
  return a + b;
}
`)
	fn := prog.Items[0].(*ast.Function)
	ret := fn.Body.Stmts[0].(*ast.Return)
	if got := ret.Value.GetType(); got != types.Int {
		t.Errorf("return value type = %v, want Int", got)
	}
}

func TestMixedWideningPicksFloat(t *testing.T) {
	prog, _, _ := analyze(t, `
float f;
int i;
float main() {
  f = 2.5;
  i = 3;
  return f + i;
}
`)
	fn := prog.Items[2].(*ast.Function)
	ret := fn.Body.Stmts[2].(*ast.Return)
	if got := ret.Value.GetType(); got != types.Float {
		t.Errorf("f + i type = %v, want Float", got)
	}
}

func TestConditionalNarrowingAcceptsFloatCondition(t *testing.T) {
	analyze(t, `
int main() {
  if (3.14) {
    return 1;
  } else {
    return 0;
  }
}
`)
}

func TestNarrowingAssignmentIsRejected(t *testing.T) {
	errs := analyzeErr(t, `
int main() {
  float f;
  int i;
  f = 3.14;
  i = f;
  return 0;
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one narrowing error", errs)
	}
}

func TestUndeclaredNameIsScopeError(t *testing.T) {
	errs := analyzeErr(t, `
int main() {
  return foo();
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one scope error", errs)
	}
}

func TestUndeclaredNameSuggestsCloseMatch(t *testing.T) {
	errs := analyzeErr(t, `
int total;
int main() {
  return totla;
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v", errs)
	}
	if got := errs[0]; !contains(got, "did you mean") {
		t.Errorf("message = %q, want a did-you-mean suggestion", got)
	}
}

func TestFunctionRedefinitionIsScopeError(t *testing.T) {
	errs := analyzeErr(t, `
int f() { return 0; }
int f() { return 1; }
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one redefinition error", errs)
	}
}

func TestExternFollowedByMatchingDefinitionIsAccepted(t *testing.T) {
	analyze(t, `
extern int f(int n);
int f(int n) { return n; }

int main() { return f(1); }
`)
}

func TestExternFollowedByMismatchedDefinitionIsRejected(t *testing.T) {
	errs := analyzeErr(t, `
extern int f(int n);
float f(int n) { return 0.0; }
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one signature-mismatch error", errs)
	}
}

func TestRedeclarationWithinSameBlockIsRejected(t *testing.T) {
	errs := analyzeErr(t, `
int main() {
  int x;
  int x;
  return 0;
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one redeclaration error", errs)
	}
}

func TestShadowingOuterScopeIsAllowed(t *testing.T) {
	analyze(t, `
int x;
int main() {
  int x;
  x = 1;
  return x;
}
`)
}

func TestArrayRankMismatchIsRejected(t *testing.T) {
	errs := analyzeErr(t, `
int b[10][10];
int main() {
  return b[1];
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one rank-mismatch error", errs)
	}
}

func TestFloatArraySubscriptIsRejected(t *testing.T) {
	errs := analyzeErr(t, `
int b[10];
int main() {
  return b[1.5];
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want the strict float-subscript policy to reject this", errs)
	}
}

func TestModuloOnFloatIsRejected(t *testing.T) {
	errs := analyzeErr(t, `
int main() {
  float f;
  f = 1.0;
  return 0 % f;
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one ModFloat error", errs)
	}
}

func TestArgCountMismatchIsRejected(t *testing.T) {
	errs := analyzeErr(t, `
extern int read_int();
int main() {
  return read_int(1);
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one argument-count error", errs)
	}
}

func TestVoidFunctionCannotReturnValue(t *testing.T) {
	errs := analyzeErr(t, `
void f() {
  return 1;
}
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one void-return error", errs)
	}
}

func TestVoidVariableDeclarationIsRejected(t *testing.T) {
	errs := analyzeErr(t, `
void x;
`)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one void-variable error", errs)
	}
}

func TestArgumentWideningIsAccepted(t *testing.T) {
	analyze(t, `
extern int consume(float f);
int main() {
  return consume(3);
}
`)
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
