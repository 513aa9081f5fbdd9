// Package arena provides the per-compilation node arena described in
// spec.md §3 (Lifecycle) and §9 ("Back-pointers and cycles"). The
// source compiler frees every node collectively at the end of
// compilation, which is how it gets away with reference cycles (a
// struct method parameter typed as the struct itself) without
// reference counting.
//
// Go's garbage collector already reclaims cycles, so this package does
// not manage memory; it keeps the arena's other role as a single-owner,
// append-only source of stable IDs (NextID). Node constructors in
// package ast do not draw from it, so ast.Base.NID stays zero unless a
// caller assigns one.
package arena

// Arena owns every node allocated during one compilation. It never
// frees anything itself — Go's GC does that — but it is the single
// writer that hands out node IDs, matching spec.md §5's "single-writer"
// requirement for the arena resource.
type Arena struct {
	nextID uint32
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{}
}

// NextID returns a fresh, monotonically increasing node ID. Passes
// never reuse an ID, even for a node that gets discarded mid-pass.
func (a *Arena) NextID() uint32 {
	a.nextID++
	return a.nextID
}

// Count reports how many IDs have been handed out so far.
func (a *Arena) Count() uint32 {
	return a.nextID
}
