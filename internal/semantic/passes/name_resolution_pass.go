// Package passes holds the three tree-walking passes that make up
// the middle-end pipeline: name resolution, type check/inference, and
// flow analysis. Each is a semantic.Pass run in order by a
// semantic.PassManager.
package passes

import (
	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/semantic"
)

// NameResolutionPass binds every NameUse to the declaration currently
// in scope, pushing/popping scopes at block, function, and struct
// boundaries. It runs first because every later pass assumes
// NameUse.Decl is already populated (or the pipeline already aborted
// for a non-zero error count).
type NameResolutionPass struct{}

func (p *NameResolutionPass) Name() string { return "name-resolution" }

func (p *NameResolutionPass) Run(module *ast.Module, ctx *semantic.PassContext) error {
	// Pre-pass: every top-level function and type is visible to every
	// other top-level declaration's body, regardless of source order
	// (spec.md §4.3 "forward references within a module").
	for _, d := range module.Decls {
		p.declareTop(d, ctx)
	}
	for _, d := range module.Decls {
		p.resolveStmt(d, ctx)
	}
	return nil
}

func (p *NameResolutionPass) declareTop(stmt ast.Statement, ctx *semantic.PassContext) {
	switch n := stmt.(type) {
	case *ast.FnDcl:
		p.declareFn(n, ctx)
	case *ast.VarDcl:
		if ctx.Symbols.DeclaredInScope(n.NameStr) {
			ctx.AddError(n, semantic.ErrorDupName, "'%s' is already declared", n.NameStr)
			return
		}
		ctx.Symbols.Bind(n.NameStr, n)
	case *ast.Struct:
		if ctx.Symbols.DeclaredInScope(n.NameStr) {
			ctx.AddError(n, semantic.ErrorDupName, "'%s' is already declared", n.NameStr)
			return
		}
		ctx.Symbols.Bind(n.NameStr, n)
		for _, m := range n.Methods {
			m.Owner = n
		}
	}
}

// declareFn binds fn's name, appending it to the existing overload
// chain when the prior binding at this name in the current scope is
// itself a function. Neither function needs FlagMethFld for this; a
// collision with a non-function binding is an error.
func (p *NameResolutionPass) declareFn(fn *ast.FnDcl, ctx *semantic.PassContext) {
	if !ctx.Symbols.DeclaredInScope(fn.NameStr) {
		ctx.Symbols.Bind(fn.NameStr, fn)
		return
	}
	existing := ctx.Symbols.Lookup(fn.NameStr)
	head, ok := existing.(*ast.FnDcl)
	if !ok {
		ctx.AddError(fn, semantic.ErrorDupName, "'%s' is already declared as a non-function", fn.NameStr)
		return
	}
	tail := head
	for tail.NextNode != nil {
		tail = tail.NextNode
	}
	tail.NextNode = fn
}

func (p *NameResolutionPass) resolveStmt(stmt ast.Statement, ctx *semantic.PassContext) {
	switch n := stmt.(type) {
	case *ast.FnDcl:
		p.resolveFnBody(n, ctx)
	case *ast.VarDcl:
		if n.Vtype != nil {
			p.resolveType(n.Vtype, ctx)
		}
		if n.Init != nil {
			p.resolveExpr(n.Init, ctx)
		}
		// A top-level VarDcl was already bound by the declareTop
		// pre-pass (forward visibility), so this second pass over it
		// must not rebind it as if it were a fresh local — only an
		// actual block-scoped `let` needs binding here.
		if ctx.Symbols.Lookup(n.NameStr) == ast.Node(n) {
			return
		}
		if ctx.Symbols.DeclaredInScope(n.NameStr) {
			ctx.AddError(n, semantic.ErrorDupName, "'%s' is already declared", n.NameStr)
			return
		}
		ctx.Symbols.Bind(n.NameStr, n)
	case *ast.Struct:
		for _, f := range n.Fields {
			p.resolveType(f.Vtype, ctx)
		}
		ctx.Symbols.PushScope()
		ctx.CurrentStruct = n
		// Open the type-method scope: every field name is visible, bare,
		// inside any of this struct's method bodies (spec.md §4.3 "opens
		// a type-method scope ... exposing self and field names"); `self`
		// itself is exposed the same way every other parameter is, by
		// resolveFnBody's own param-binding loop below.
		for _, f := range n.Fields {
			ctx.Symbols.Bind(f.NameStr, f)
		}
		for _, m := range n.Methods {
			for f := m; f != nil; f = f.NextNode {
				p.resolveFnBody(f, ctx)
			}
		}
		ctx.CurrentStruct = nil
		ctx.Symbols.PopScope()
	case *ast.Block:
		p.resolveBlock(n, ctx)
	case *ast.If:
		p.resolveExpr(n, ctx)
	case *ast.Loop:
		p.resolveExpr(n, ctx)
	case *ast.Break:
		p.resolveExpr(n, ctx)
	case *ast.Continue:
		p.resolveExpr(n, ctx)
	case *ast.Return:
		for _, v := range n.Values {
			p.resolveExpr(v, ctx)
		}
	case *ast.ExprStmt:
		p.resolveExpr(n.X, ctx)
	}
}

func (p *NameResolutionPass) resolveFnBody(fn *ast.FnDcl, ctx *semantic.PassContext) {
	ctx.Symbols.PushScope()
	prevFn := ctx.CurrentFunction
	ctx.CurrentFunction = fn
	for _, param := range fn.Sig.Params {
		p.resolveType(param.Vtype, ctx)
		ctx.Symbols.Bind(param.NameStr, param)
	}
	for _, rt := range fn.Sig.Rettypes {
		p.resolveType(rt, ctx)
	}
	if fn.Body != nil {
		p.resolveBlock(fn.Body, ctx)
	}
	ctx.CurrentFunction = prevFn
	ctx.Symbols.PopScope()
}

func (p *NameResolutionPass) resolveBlock(b *ast.Block, ctx *semantic.PassContext) {
	ctx.Symbols.PushScope()
	for _, s := range b.Stmts {
		p.resolveStmt(s, ctx)
	}
	ctx.Symbols.PopScope()
}

func (p *NameResolutionPass) resolveType(t ast.TypeExpression, ctx *semantic.PassContext) {
	switch n := t.(type) {
	case *ast.NameUse:
		decl := ctx.Symbols.Lookup(n.NameStr)
		if decl == nil {
			ctx.AddError(n, semantic.ErrorGenErr, "undefined type '%s'", n.NameStr)
			return
		}
		n.Decl = decl
	case *ast.Ptr:
		p.resolveType(n.Pvtype, ctx)
	case *ast.Ref:
		p.resolveType(n.Pvtype, ctx)
	case *ast.ArrayRef:
		p.resolveType(n.Pvtype, ctx)
	case *ast.VirtRef:
		p.resolveType(n.Pvtype, ctx)
	case *ast.Array:
		p.resolveType(n.Elem, ctx)
	case *ast.TTuple:
		for _, e := range n.Elems {
			p.resolveType(e, ctx)
		}
	case *ast.FnSig:
		for _, param := range n.Params {
			p.resolveType(param.Vtype, ctx)
		}
		for _, rt := range n.Rettypes {
			p.resolveType(rt, ctx)
		}
	}
}

func (p *NameResolutionPass) resolveExpr(e ast.Expression, ctx *semantic.PassContext) {
	switch n := e.(type) {
	case *ast.NameUse:
		decl := ctx.Symbols.Lookup(n.NameStr)
		if decl == nil {
			ctx.AddError(n, semantic.ErrorGenErr, "undefined name '%s'", n.NameStr)
			return
		}
		n.Decl = decl
	case *ast.NamedVal:
		p.resolveExpr(n.Val, ctx)
	case *ast.Assign:
		p.resolveExpr(n.Lhs, ctx)
		p.resolveExpr(n.Rhs, ctx)
	case *ast.FnCall:
		if n.Obj != nil {
			// Method-call syntax (`obj.name(args)`): Fn names a field of
			// obj's receiver type's namespace, not a lexically-scoped
			// binding, so it is left unresolved here for checkFnCall to
			// look up once obj's type is known (spec.md §4.5 "search the
			// receiver type's namespace").
			p.resolveExpr(n.Obj, ctx)
		} else {
			p.resolveExpr(n.Fn, ctx)
		}
		for _, a := range n.Args {
			p.resolveExpr(a, ctx)
		}
	case *ast.Cast:
		p.resolveExpr(n.Exp, ctx)
		p.resolveType(n.Totype, ctx)
	case *ast.Is:
		p.resolveExpr(n.Exp, ctx)
		p.resolveType(n.Totype, ctx)
	case *ast.Deref:
		p.resolveExpr(n.Exp, ctx)
	case *ast.LogicAnd:
		p.resolveExpr(n.Lhs, ctx)
		p.resolveExpr(n.Rhs, ctx)
	case *ast.LogicOr:
		p.resolveExpr(n.Lhs, ctx)
		p.resolveExpr(n.Rhs, ctx)
	case *ast.LogicNot:
		p.resolveExpr(n.Exp, ctx)
	case *ast.VTuple:
		for _, el := range n.Elems {
			p.resolveExpr(el, ctx)
		}
	case *ast.TypeLit:
		p.resolveType(n.Totype, ctx)
		for _, a := range n.Args {
			p.resolveExpr(a, ctx)
		}
	case *ast.Block:
		p.resolveBlock(n, ctx)
	case *ast.If:
		for _, c := range n.Conds {
			p.resolveExpr(c, ctx)
		}
		for _, blk := range n.Blocks {
			p.resolveBlock(blk, ctx)
		}
		if n.Else != nil {
			p.resolveBlock(n.Else, ctx)
		}
	case *ast.Loop:
		ctx.Symbols.PushScope()
		prevLoop := ctx.CurrentLoop
		ctx.CurrentLoop = n
		ctx.LoopDepth++
		p.resolveBlock(n.Body, ctx)
		ctx.LoopDepth--
		ctx.CurrentLoop = prevLoop
		ctx.Symbols.PopScope()
	case *ast.Break:
		if ctx.LoopDepth == 0 {
			ctx.AddError(n, semantic.ErrorGenErr, "break outside of loop")
		} else if ctx.CurrentLoop != nil {
			ctx.CurrentLoop.Breaks = append(ctx.CurrentLoop.Breaks, n)
		}
		if n.Value != nil {
			p.resolveExpr(n.Value, ctx)
		}
	case *ast.Continue:
		if ctx.LoopDepth == 0 {
			ctx.AddError(n, semantic.ErrorGenErr, "continue outside of loop")
		}
	case *ast.Return:
		for _, v := range n.Values {
			p.resolveExpr(v, ctx)
		}
	}
	// Literals (ULit, FLit, BoolLit) carry no names to resolve.
}
