// Package irgen lowers a type-checked Mini-C AST into textual,
// LLVM-compatible IR (spec §4.6): a Module of globals, extern declarations
// and functions, each function built from named basic blocks in SSA form.
package irgen

import (
	"fmt"
	"strings"
)

// Value is a reference to an already-computed IR value: either an SSA
// register (`%7`, `%x.1`), a global (`@b`), or an inline constant
// (`3`, `true`). Type is the rendered LLVM type the value carries.
type Value struct {
	Name string
	Type string
}

// Global is a module-level variable with common zero-initialized linkage
// (spec §4.6: "Globals use common zero-initialized linkage").
type Global struct {
	Name string
	Type string
}

// ExternSig is a `declare` line for a runtime-provided function.
type ExternSig struct {
	Name       string
	RetType    string
	ParamTypes []string
}

// Param is one function parameter as it appears in a `define` signature.
// SSA is the register name assigned to the incoming value, distinct from
// the shadow alloca slot the function body stores it into.
type Param struct {
	Name string
	Type string
	SSA  string
}

// BasicBlock is a named, linearly-ordered run of IR instructions that must
// end in a terminator (spec §8: "every basic block in the emitted IR ends
// in a terminator").
type BasicBlock struct {
	Name       string
	Instrs     []string
	Terminated bool
}

// Function is one IR function: an entry block (where every local's alloca
// lives, spec §4.6) followed by whatever control-flow blocks its body
// needs.
type Function struct {
	Name     string
	RetType  string
	Params   []Param
	Blocks   []*BasicBlock
	Entry    *BasicBlock
	counters map[string]int
}

// freshName returns a name derived from base, unique within this function:
// the first use gets base verbatim, later collisions get a `.N` suffix —
// the `%name[.N]` scheme spec §6 describes for duplicate temporaries.
// Block labels and SSA registers share this one counter set per function
// since LLVM IR gives them the same local-value namespace.
func (f *Function) freshName(base string) string {
	n := f.counters[base]
	f.counters[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, n)
}

// NewBlock appends a new basic block to f and returns it; it does not
// change any builder's notion of the "current" block.
func (f *Function) NewBlock(base string) *BasicBlock {
	bb := &BasicBlock{Name: f.freshName(base)}
	f.Blocks = append(f.Blocks, bb)
	return bb
}

// Module is the IR emitter's output: one translation unit.
type Module struct {
	SourceFilename string
	Globals        []*Global
	Externs        []*ExternSig
	Functions      []*Function
}

// NewModule creates an empty Module stamped with the source file that
// produced it (spec §6: IR surface begins with `source_filename`).
func NewModule(filename string) *Module {
	return &Module{SourceFilename: filename}
}

// DeclareGlobal records a module-level global of the given LLVM type.
func (m *Module) DeclareGlobal(name, typ string) {
	m.Globals = append(m.Globals, &Global{Name: name, Type: typ})
}

// DeclareExtern records a `declare` line for a runtime-provided function.
func (m *Module) DeclareExtern(name, retType string, paramTypes []string) {
	m.Externs = append(m.Externs, &ExternSig{Name: name, RetType: retType, ParamTypes: paramTypes})
}

// NewFunction creates a function with its entry block already open and
// registers it on the module.
func (m *Module) NewFunction(name, retType string, params []Param) *Function {
	fn := &Function{Name: name, RetType: retType, Params: params, counters: map[string]int{}}
	fn.Entry = fn.NewBlock("entry")
	m.Functions = append(m.Functions, fn)
	return fn
}

// String renders the module as textual LLVM IR.
func (m *Module) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "source_filename = %q\n", m.SourceFilename)

	if len(m.Globals) > 0 {
		sb.WriteString("\n")
		for _, g := range m.Globals {
			fmt.Fprintf(&sb, "@%s = common global %s zeroinitializer\n", g.Name, g.Type)
		}
	}

	if len(m.Externs) > 0 {
		sb.WriteString("\n")
		for _, ex := range m.Externs {
			fmt.Fprintf(&sb, "declare %s @%s(%s)\n", ex.RetType, ex.Name, strings.Join(ex.ParamTypes, ", "))
		}
	}

	for _, fn := range m.Functions {
		sb.WriteString("\n")
		fn.writeTo(&sb)
	}

	return sb.String()
}

func (f *Function) writeTo(sb *strings.Builder) {
	paramDecls := make([]string, len(f.Params))
	for i, p := range f.Params {
		paramDecls[i] = fmt.Sprintf("%s %%%s", p.Type, p.SSA)
	}
	fmt.Fprintf(sb, "define %s @%s(%s) {\n", f.RetType, f.Name, strings.Join(paramDecls, ", "))
	for _, bb := range f.Blocks {
		fmt.Fprintf(sb, "%s:\n", bb.Name)
		for _, instr := range bb.Instrs {
			sb.WriteString(instr)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("}\n")
}
