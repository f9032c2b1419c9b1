// Package types implements Mini-C's closed source-type lattice: the strict
// widening order Bool ≼ Int ≼ Float, with Void and Array incomparable to
// everything (spec §3.2).
package types

import "fmt"

// Kind identifies which member of the closed type set a Type is.
type Kind int

const (
	Invalid Kind = iota
	BoolKind
	IntKind
	FloatKind
	VoidKind
	ArrayKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case VoidKind:
		return "void"
	case ArrayKind:
		return "array"
	default:
		return "invalid"
	}
}

// Type is any member of the Mini-C source-type set.
type Type interface {
	Kind() Kind
	String() string
	Equals(other Type) bool
}

// primitive is the representation shared by Bool, Int, Float and Void.
type primitive struct{ kind Kind }

func (p *primitive) Kind() Kind      { return p.kind }
func (p *primitive) String() string  { return p.kind.String() }
func (p *primitive) Equals(o Type) bool {
	other, ok := o.(*primitive)
	return ok && other.kind == p.kind
}

// The four scalar/void members of the type set are singletons: every
// comparison against them can use pointer or Kind equality interchangeably.
var (
	Bool  Type = &primitive{kind: BoolKind}
	Int   Type = &primitive{kind: IntKind}
	Float Type = &primitive{kind: FloatKind}
	Void  Type = &primitive{kind: VoidKind}
)

// Array is an arbitrary-rank array of a scalar element type, e.g.
// int[10][10] has Elem=Int, Dims=[10,10] (spec §3.2, §4.6).
type Array struct {
	Elem Type
	Dims []int
}

func NewArray(elem Type, dims []int) *Array {
	d := make([]int, len(dims))
	copy(d, dims)
	return &Array{Elem: elem, Dims: d}
}

func (a *Array) Kind() Kind { return ArrayKind }

func (a *Array) String() string {
	s := a.Elem.String()
	for _, d := range a.Dims {
		s += fmt.Sprintf("[%d]", d)
	}
	return s
}

func (a *Array) Equals(o Type) bool {
	other, ok := o.(*Array)
	if !ok || len(other.Dims) != len(a.Dims) || !a.Elem.Equals(other.Elem) {
		return false
	}
	for i, d := range a.Dims {
		if other.Dims[i] != d {
			return false
		}
	}
	return true
}

// Rank places Bool/Int/Float on the widening order; it returns -1 for Void
// and Array, which the order does not reach.
func Rank(t Type) int {
	switch t.Kind() {
	case BoolKind:
		return 0
	case IntKind:
		return 1
	case FloatKind:
		return 2
	default:
		return -1
	}
}

// IsNumeric reports whether t is Bool, Int or Float — the three kinds that
// sit on the widening lattice and participate in arithmetic (after Bool is
// first widened to Int, per spec §4.5).
func IsNumeric(t Type) bool {
	return Rank(t) >= 0
}

// CanWiden reports whether a value of type from may be used where a value
// of type to is expected without an explicit narrowing conversion —
// from ≼ to in the lattice order. Widening T→T is always allowed
// (idempotent), matching spec §8's "Widening is idempotent" law.
func CanWiden(from, to Type) bool {
	if from.Equals(to) {
		return true
	}
	if !IsNumeric(from) || !IsNumeric(to) {
		return false
	}
	return Rank(from) <= Rank(to)
}

// Widened returns the common widening point of two numeric/bool types: the
// higher-ranked of the two. Callers must check IsNumeric on both operands
// first; Widened is undefined for Void/Array inputs.
func Widened(a, b Type) Type {
	if Rank(a) >= Rank(b) {
		return a
	}
	return b
}
