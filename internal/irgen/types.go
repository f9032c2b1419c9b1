package irgen

import (
	"fmt"

	"github.com/cwbudde/minicc/internal/types"
)

// llvmType renders a Mini-C source type as its LLVM counterpart. Float is
// LLVM's 32-bit `float` (spec §8's mixed-widening scenario shows
// `sitofp i32 %i to float`, not `double`).
func llvmType(t types.Type) string {
	switch t.Kind() {
	case types.BoolKind:
		return "i1"
	case types.IntKind:
		return "i32"
	case types.FloatKind:
		return "float"
	case types.VoidKind:
		return "void"
	case types.ArrayKind:
		arr := t.(*types.Array)
		return arrayTypeString(arr.Elem, arr.Dims)
	default:
		panic(fmt.Sprintf("internal error: unrenderable type %v", t))
	}
}

// arrayTypeString folds an array's dimensions right-to-left into a nested
// LLVM array type (spec §4.6: "folding dimensions right-to-left (outermost
// first)" — the outermost dimension is Dims[0], so the fold starts from
// the innermost, Dims[len-1], and wraps outward).
func arrayTypeString(elem types.Type, dims []int) string {
	if len(dims) == 0 {
		return llvmType(elem)
	}
	return fmt.Sprintf("[%d x %s]", dims[0], arrayTypeString(elem, dims[1:]))
}

// zeroValueText renders the default-zero literal used to close off a
// fallthrough path in a non-void function (spec §4.6).
func zeroValueText(t types.Type) string {
	switch t.Kind() {
	case types.BoolKind:
		return "false"
	case types.IntKind:
		return "0"
	case types.FloatKind:
		return "0.0"
	default:
		panic(fmt.Sprintf("internal error: no default zero value for %v", t))
	}
}

// widenBoolToInt mirrors semantic.widenBoolToInt for the emitter's own
// "decide the common operand type" step ahead of emitting arithmetic.
func widenBoolToInt(t types.Type) types.Type {
	if t.Kind() == types.BoolKind {
		return types.Int
	}
	return t
}
