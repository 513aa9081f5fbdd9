package semantic

import (
	"github.com/conelang/conesema/internal/ast"
)

// Pass represents a single semantic analysis pass.
// The multi-pass architecture allows for:
// - Proper handling of forward declarations
// - Clear separation of concerns between name resolution, type
//   checking, and flow analysis
// - Gating later passes on earlier ones having succeeded
// - Error messages with complete context (a later pass can assume an
//   earlier one already ran)
type Pass interface {
	// Name returns the name of this pass for diagnostics.
	Name() string

	// Run executes this pass on the given module.
	// The pass should:
	// - Read and write to the shared PassContext
	// - Collect any errors in the context's error list
	// - Mutate the tree in place where the pass's job is a rewrite
	//   (e.g. hoisting an If out of tail position), not merely an
	//   annotation
	// Returns an error only for fatal internal errors (not semantic errors).
	Run(module *ast.Module, ctx *PassContext) error
}

// PassManager coordinates the execution of multiple passes in order.
type PassManager struct {
	passes []Pass
}

// NewPassManager creates a new pass manager with the given passes.
// Passes will be executed in the order they are provided.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{
		passes: passes,
	}
}

// RunAll executes all passes in sequence.
// If any pass returns an error, execution stops and the error is returned.
// Semantic errors are collected in the PassContext, not returned as errors.
func (pm *PassManager) RunAll(module *ast.Module, ctx *PassContext) error {
	for _, pass := range pm.passes {
		if err := pass.Run(module, ctx); err != nil {
			return err
		}
		// A pass that found errors leaves the tree in a state later
		// passes aren't built to tolerate (unresolved names, missing
		// types), so stop here rather than cascade bogus diagnostics.
		if ctx.HasErrors() {
			break
		}
	}
	return nil
}

// AddPass adds a pass to the manager.
// The pass will be executed after all previously added passes.
func (pm *PassManager) AddPass(pass Pass) {
	pm.passes = append(pm.passes, pass)
}

// Passes returns the list of registered passes.
func (pm *PassManager) Passes() []Pass {
	return pm.passes
}
