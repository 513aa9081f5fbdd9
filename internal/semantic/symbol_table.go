package semantic

import (
	"github.com/conelang/conesema/internal/ast"
)

// Name is an interned identifier: one Name exists per distinct
// string across a whole compilation, and name resolution works by
// rebinding its Node field as scopes are entered and left, rather
// than by allocating a fresh map entry per scope. This mirrors the
// source compiler's binding-slot model (see original_source's
// ir/name.h): a Name *is* the binding, and shadowing in a nested
// scope temporarily overwrites Node, to be restored when the scope
// that did the shadowing is popped.
type Name struct {
	Str  string
	Node ast.Node
}

// mark records a single name's previous binding, so PopScope can
// restore it. A mark with prev == nil means the name was unbound
// before the scope that bound it.
type mark struct {
	name *Name
	prev ast.Node
}

// SymbolTable interns every name seen during a compilation and tracks
// the scope stack used to bind and unbind them. Unlike a stack of
// per-scope maps, there is exactly one map (names), and entering/
// leaving a scope only ever touches the marks slice — lookups never
// have to walk outward through parent scopes, because a name's
// Node field already reflects whatever scope most recently bound it.
type SymbolTable struct {
	names map[string]*Name
	// frames is a stack of scopes; each scope is the list of marks
	// that must be undone, in reverse order, when that scope is
	// popped.
	frames [][]mark
}

// NewSymbolTable creates an empty table with one (global) scope
// already pushed.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{names: make(map[string]*Name)}
	st.PushScope()
	return st
}

// intern returns the Name for str, creating it if this is the first
// time str has been seen.
func (st *SymbolTable) intern(str string) *Name {
	if n, ok := st.names[str]; ok {
		return n
	}
	n := &Name{Str: str}
	st.names[str] = n
	return n
}

// PushScope opens a new nested scope.
func (st *SymbolTable) PushScope() {
	st.frames = append(st.frames, nil)
}

// PopScope closes the innermost scope, restoring every name it bound
// (or shadowed) to whatever it was bound to beforehand.
func (st *SymbolTable) PopScope() {
	if len(st.frames) == 0 {
		return
	}
	top := st.frames[len(st.frames)-1]
	st.frames = st.frames[:len(st.frames)-1]
	for i := len(top) - 1; i >= 0; i-- {
		top[i].name.Node = top[i].prev
	}
}

// Bind binds name to node in the current (innermost) scope, recording
// the name's previous binding so PopScope can undo it. It returns the
// interned Name so callers (overload resolution in particular) can
// attach further overloads to the same slot.
func (st *SymbolTable) Bind(nameStr string, node ast.Node) *Name {
	n := st.intern(nameStr)
	if len(st.frames) > 0 {
		top := len(st.frames) - 1
		st.frames[top] = append(st.frames[top], mark{name: n, prev: n.Node})
	}
	n.Node = node
	return n
}

// Lookup returns the declaration currently bound to nameStr, or nil
// if it is unbound (or was never seen).
func (st *SymbolTable) Lookup(nameStr string) ast.Node {
	if n, ok := st.names[nameStr]; ok {
		return n.Node
	}
	return nil
}

// DeclaredInScope reports whether nameStr was already bound within
// the current (innermost) scope specifically — as opposed to Lookup,
// which also reports bindings inherited from an enclosing scope. Used
// to reject redeclaration within one block/function/struct while
// still permitting ordinary shadowing of an outer name.
func (st *SymbolTable) DeclaredInScope(nameStr string) bool {
	if len(st.frames) == 0 {
		return false
	}
	top := st.frames[len(st.frames)-1]
	for _, m := range top {
		if m.name.Str == nameStr {
			return true
		}
	}
	return false
}

// Depth returns the number of currently open scopes.
func (st *SymbolTable) Depth() int { return len(st.frames) }
