package irgen

import (
	"fmt"

	"github.com/cwbudde/minicc/internal/types"
)

// slot is the emitter's own symbol-table entry: a pointer to the value's
// storage (an alloca or a global) plus enough of its source type to decide
// coercions. Function symbols instead carry a return type and parameter
// types and no storage pointer.
type slot struct {
	ptr        Value
	elemType   types.Type
	isFunc     bool
	paramTypes []types.Type
}

// scope is a chain of name->slot maps mirroring internal/semantic's own
// scope stack (spec §4.4) — the emitter rebuilds it independently because
// it needs storage handles, not just deduced types.
type scope struct {
	vars  map[string]*slot
	outer *scope
}

func newScope(outer *scope) *scope {
	return &scope{vars: map[string]*slot{}, outer: outer}
}

func (s *scope) define(name string, sl *slot) {
	s.vars[name] = sl
}

// resolve walks innermost to outermost. A miss here is an internal
// invariant violation: semantic analysis must have already rejected any
// program with an undeclared name before the emitter ever sees it.
func (s *scope) resolve(name string) *slot {
	for sc := s; sc != nil; sc = sc.outer {
		if sl, ok := sc.vars[name]; ok {
			return sl
		}
	}
	panic(fmt.Sprintf("internal error: unresolved symbol %q reached the IR emitter", name))
}
