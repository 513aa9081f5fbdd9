package passes

import (
	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/semantic"
	"github.com/conelang/conesema/internal/types"
)

// FlowAnalysisPass is Pass 3: it tracks, per function body, which
// owning local variables (struct/array/tuple values read by value,
// never a Ref/Ptr/ArrayRef/VirtRef handle) have been moved out of
// their slot, flags a read of an already-moved local as an error, and
// records on every Return the set of still-live owning locals that
// need a cleanup emitted ahead of it (spec.md §4.7).
type FlowAnalysisPass struct{}

func (p *FlowAnalysisPass) Name() string { return "flow-analysis" }

func (p *FlowAnalysisPass) Run(module *ast.Module, ctx *semantic.PassContext) error {
	w := &flowWalker{ctx: ctx}
	for _, d := range module.Decls {
		w.walkStmt(d)
	}
	return nil
}

// slotState is the per-local bookkeeping flowLoadValue consults on
// every read.
type slotState int

const (
	slotLive slotState = iota
	slotMoved
)

// flowWalker carries one function body's mutable alias bookkeeping.
// locals and liveLocals are both reset to fresh, empty state at the
// start of every function (walkFnDcl), since ownership never crosses
// a function boundary in this model.
type flowWalker struct {
	ctx *semantic.PassContext

	locals     map[*ast.VarDcl]slotState
	liveLocals []*ast.VarDcl
}

// ownsValue reports whether a value of type t is moved (rather than
// copied) when flowLoadValue consumes it: a plain aggregate held
// in-line, as opposed to a reference/pointer handle (itself always
// Copy) or a primitive number/bool (also always Copy).
func ownsValue(t ast.TypeExpression) bool {
	switch types.GetDecl(t).(type) {
	case *ast.Struct, *ast.Array, *ast.TTuple:
		return true
	default:
		return false
	}
}

func (w *flowWalker) snapshotLocals() map[*ast.VarDcl]slotState {
	snap := make(map[*ast.VarDcl]slotState, len(w.locals))
	for k, v := range w.locals {
		snap[k] = v
	}
	return snap
}

// restoreLocals replaces the working state with a fresh copy of
// saved, used at every branch join (spec.md §4.7: "reset alias
// accumulators so divergent borrows do not leak across arms").
func (w *flowWalker) restoreLocals(saved map[*ast.VarDcl]slotState) {
	w.locals = make(map[*ast.VarDcl]slotState, len(saved))
	for k, v := range saved {
		w.locals[k] = v
	}
}

func (w *flowWalker) declareLocal(v *ast.VarDcl) {
	if !ownsValue(v.Vtype) {
		return
	}
	if w.locals == nil {
		w.locals = make(map[*ast.VarDcl]slotState)
	}
	w.locals[v] = slotLive
	w.liveLocals = append(w.liveLocals, v)
}

// flowLoadValue annotates a read of slot: moving marks it consumed
// (a plain, non-reference assignment source, a by-value call
// argument, a struct-literal field value, a returned value); a
// non-moving read only checks that the slot has not already been
// moved out from under it.
func (w *flowWalker) flowLoadValue(nameUse *ast.NameUse, moving bool) {
	v, ok := nameUse.Decl.(*ast.VarDcl)
	if !ok || !ownsValue(v.Vtype) {
		return
	}
	if w.locals[v] == slotMoved {
		w.ctx.AddError(nameUse, semantic.ErrorGenErr, "use of moved value '%s'", v.NameStr)
		return
	}
	if moving {
		w.locals[v] = slotMoved
	}
}

func (w *flowWalker) walkStmt(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.FnDcl:
		for fn := n; fn != nil; fn = fn.NextNode {
			w.walkFnDcl(fn)
		}
	case *ast.VarDcl:
		if n.Init != nil {
			w.walkExpr(n.Init, true)
		}
		w.declareLocal(n)
	case *ast.Struct:
		for _, head := range n.Methods {
			for fn := head; fn != nil; fn = fn.NextNode {
				w.walkFnDcl(fn)
			}
		}
	case *ast.Block:
		w.walkBlock(n)
	case *ast.If:
		w.walkIf(n)
	case *ast.Loop:
		w.walkLoop(n)
	case *ast.Break:
		if n.Value != nil {
			w.walkExpr(n.Value, true)
		}
	case *ast.Continue:
		// no aliasing concern
	case *ast.Return:
		w.walkReturn(n)
	case *ast.ExprStmt:
		w.walkExpr(n.X, false)
	}
}

// walkFnDcl resets move-tracking state for fn's own body. Parameters
// are deliberately not entered into locals: a NameUse bound to a
// parameter resolves to the *ast.FieldDcl name resolution bound it
// to, not a *ast.VarDcl, and this pass tracks only explicitly
// `let`-declared locals — a scope restriction, not an oversight (see
// DESIGN.md).
func (w *flowWalker) walkFnDcl(fn *ast.FnDcl) {
	savedLocals, savedLive := w.locals, w.liveLocals
	w.locals = make(map[*ast.VarDcl]slotState)
	w.liveLocals = nil
	if fn.Body != nil {
		w.walkBlock(fn.Body)
	}
	w.locals, w.liveLocals = savedLocals, savedLive
}

func (w *flowWalker) walkBlock(b *ast.Block) {
	mark := len(w.liveLocals)
	for _, s := range b.Stmts {
		w.walkStmt(s)
	}
	w.liveLocals = w.liveLocals[:mark]
}

func (w *flowWalker) walkIf(n *ast.If) {
	for _, c := range n.Conds {
		w.walkExpr(c, false)
	}
	saved := w.snapshotLocals()
	for _, blk := range n.Blocks {
		w.restoreLocals(saved)
		w.walkBlock(blk)
	}
	if n.Else != nil {
		w.restoreLocals(saved)
		w.walkBlock(n.Else)
	}
	w.restoreLocals(saved)
}

// walkLoop resets alias state around the body rather than iterating
// to an explicit fixed point: the language forbids a borrow created
// in one iteration from escaping into the next (spec.md §4.7), so a
// single pass over the body, bracketed by the same reset a branch
// join uses, already reaches that fixed point.
func (w *flowWalker) walkLoop(n *ast.Loop) {
	saved := w.snapshotLocals()
	w.walkBlock(n.Body)
	w.restoreLocals(saved)
}

func (w *flowWalker) walkReturn(n *ast.Return) {
	for _, v := range n.Values {
		w.walkExpr(v, true)
	}
	var dealias []*ast.VarDcl
	for _, v := range w.liveLocals {
		if w.locals[v] != slotMoved {
			dealias = append(dealias, v)
		}
	}
	n.Dealias = dealias
}

func (w *flowWalker) walkExpr(e ast.Expression, moving bool) {
	switch n := e.(type) {
	case *ast.NameUse:
		w.flowLoadValue(n, moving)
	case *ast.NamedVal:
		w.walkExpr(n.Val, moving)
	case *ast.Assign:
		w.walkExpr(n.Lhs, false)
		w.walkExpr(n.Rhs, true)
	case *ast.FnCall:
		w.walkFnCall(n)
	case *ast.Cast:
		w.walkExpr(n.Exp, false)
	case *ast.Is:
		w.walkExpr(n.Exp, false)
	case *ast.Deref:
		w.walkExpr(n.Exp, false)
	case *ast.LogicAnd:
		w.walkExpr(n.Lhs, false)
		w.walkExpr(n.Rhs, false)
	case *ast.LogicOr:
		w.walkExpr(n.Lhs, false)
		w.walkExpr(n.Rhs, false)
	case *ast.LogicNot:
		w.walkExpr(n.Exp, false)
	case *ast.VTuple:
		for _, el := range n.Elems {
			w.walkExpr(el, true)
		}
	case *ast.TypeLit:
		for _, a := range n.Args {
			w.walkExpr(a, true)
		}
	case *ast.Block:
		w.walkBlock(n)
	case *ast.If:
		w.walkIf(n)
	case *ast.Loop:
		w.walkLoop(n)
	case *ast.Break:
		if n.Value != nil {
			w.walkExpr(n.Value, true)
		}
	case *ast.Continue:
		// no aliasing concern
	case *ast.Return:
		w.walkReturn(n)
	}
	// Literals carry no local-variable reads.
}

func (w *flowWalker) walkFnCall(n *ast.FnCall) {
	if n.Obj != nil {
		// The receiver of a method call is always treated as borrowed,
		// matching the source language's implicit `self` reference
		// parameter: calling a method never moves the receiver out.
		w.walkExpr(n.Obj, false)
	}

	var params []*ast.FieldDcl
	offset := 0
	if n.Obj != nil {
		offset = 1
	}
	if nameUse, ok := n.Fn.(*ast.NameUse); ok {
		if fn, ok := nameUse.Decl.(*ast.FnDcl); ok {
			params = fn.Sig.Params
		}
	} else {
		w.walkExpr(n.Fn, false)
	}

	for i, a := range n.Args {
		moving := false
		if pi := i + offset; params != nil && pi < len(params) {
			moving = ownsValue(params[pi].Vtype)
		}
		w.walkExpr(a, moving)
	}
}
