// Package semantic implements Mini-C's scope/symbol resolution and
// type-checking: Components D and E of spec §4.4/§4.5.
package semantic

import (
	"fmt"

	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/types"
)

// SymbolKind classifies what a name denotes (spec §3.4).
type SymbolKind int

const (
	SymVar SymbolKind = iota
	SymArray
	SymFunction
)

// Storage classifies where a Var/Array symbol's storage lives.
type Storage int

const (
	Local Storage = iota
	Global
	Param
)

// Symbol is one scope entry (spec §3.4). For SymFunction, Type holds the
// return type and ParamTypes holds each parameter's declared type, in
// order; ArgCount-checking and per-argument widening both read ParamTypes.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       types.Type
	ParamTypes []types.Type
	Storage    Storage
	DefinedAt  ast.Node
}

// SymbolTable is one scope level in a stack of name→symbol mappings
// (spec §4.4). lookup walks from the innermost table outward; declare
// inserts only into the table it's called on.
type SymbolTable struct {
	symbols map[string]*Symbol
	outer   *SymbolTable
}

// NewSymbolTable creates a scope nested inside outer. Pass nil to create
// the global scope.
func NewSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol), outer: outer}
}

// IsGlobal reports whether this table has no enclosing scope.
func (s *SymbolTable) IsGlobal() bool { return s.outer == nil }

// DeclaredHere reports whether name already has an entry in this exact
// scope, without walking outward (spec §3.5: "unique within the block's
// own scope; shadowing an outer scope is permitted").
func (s *SymbolTable) DeclaredHere(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

// Define inserts sym into this scope. It returns an error if the name is
// already declared here — the caller decides whether that's a plain
// Redeclaration or a Function Redefinition.
func (s *SymbolTable) Define(sym *Symbol) error {
	if s.DeclaredHere(sym.Name) {
		return fmt.Errorf("%q already declared in this scope", sym.Name)
	}
	s.symbols[sym.Name] = sym
	return nil
}

// Replace overwrites an existing entry in this scope, for the one case a
// second declaration of the same name is legal: an extern prototype
// followed by its matching definition.
func (s *SymbolTable) Replace(sym *Symbol) {
	s.symbols[sym.Name] = sym
}

// Resolve walks from this scope outward to the global scope, returning the
// innermost match (spec §4.4).
func (s *SymbolTable) Resolve(name string) (*Symbol, bool) {
	for t := s; t != nil; t = t.outer {
		if sym, ok := t.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Names returns every name visible from this scope outward, for
// "did you mean" suggestions over in-scope identifiers (spec §4.7).
func (s *SymbolTable) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for t := s; t != nil; t = t.outer {
		for name := range t.symbols {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
