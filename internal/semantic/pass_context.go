package semantic

import (
	"github.com/conelang/conesema/internal/arena"
	"github.com/conelang/conesema/internal/ast"
)

// PassContext bundles the state shared across all three passes: the
// process-wide singletons the source compiler keeps as globals
// (arena, interned-name table, error counter), explicit here instead
// so a compilation can run as an ordinary library call rather than
// through global mutable state (spec.md §9 "Global state").
type PassContext struct {
	Arena   *arena.Arena
	Symbols *SymbolTable

	// Errors accumulates every diagnostic raised by any pass, in
	// raise order. Its length doubles as the process-wide error
	// counter the pass driver gates on.
	Errors []*SemanticError

	// CurrentFunction is the FnDcl whose body is currently being
	// walked, used to validate return statements against its
	// signature and to expose "self" when it is a method.
	CurrentFunction *ast.FnDcl

	// CurrentStruct is the Struct whose method body is currently
	// being walked, nil outside of one. Used by struct-literal field
	// privacy checks (spec.md §4.5.3 step 5).
	CurrentStruct *ast.Struct

	// LoopDepth counts the loops the current position is nested
	// inside, for break/continue validation.
	LoopDepth int

	// CurrentLoop is the innermost Loop node being walked, used to
	// collect break-value types for the loop's own value type.
	CurrentLoop *ast.Loop
}

// NewPassContext creates a context with fresh registries.
func NewPassContext() *PassContext {
	return &PassContext{
		Arena:   arena.New(),
		Symbols: NewSymbolTable(),
	}
}

// AddError raises a diagnostic against node and records it.
func (ctx *PassContext) AddError(node ast.Node, kind ErrorKind, format string, args ...interface{}) {
	ctx.Errors = append(ctx.Errors, errorMsgNode(node, kind, format, args...))
}

// HasErrors reports whether any diagnostic has been raised so far.
func (ctx *PassContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}

// ErrorCount returns the number of diagnostics raised so far.
func (ctx *PassContext) ErrorCount() int {
	return len(ctx.Errors)
}

// ToAnalysisError packages every recorded diagnostic into a single
// AnalysisError, or nil if none were raised.
func (ctx *PassContext) ToAnalysisError() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return &AnalysisError{Errors: ctx.Errors}
}
