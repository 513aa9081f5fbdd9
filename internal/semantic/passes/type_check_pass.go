package passes

import (
	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/semantic"
	"github.com/conelang/conesema/internal/types"
)

// TypeCheckPass assigns a value type to every expression, validates
// casts, resolves overloaded calls, reorders struct-literal fields,
// and enforces return-type conformance. It assumes NameResolutionPass
// already ran with zero errors: every NameUse it encounters already
// carries a resolved Decl (or is nil, meaning an earlier error already
// fired for that site and this pass should not re-report it).
type TypeCheckPass struct{}

func (p *TypeCheckPass) Name() string { return "type-check" }

func (p *TypeCheckPass) Run(module *ast.Module, ctx *semantic.PassContext) error {
	for i, d := range module.Decls {
		module.Decls[i] = p.checkStmt(d, ctx)
	}
	return nil
}

// declType returns the value type a NameUse bound to decl carries.
func declType(decl ast.Node) ast.TypeExpression {
	switch d := decl.(type) {
	case *ast.VarDcl:
		return d.Vtype
	case *ast.FieldDcl:
		return d.Vtype
	case *ast.FnDcl:
		return d.Sig
	case ast.TypeExpression:
		return d
	default:
		return ast.VoidType
	}
}

func resultTypeOf(rettypes []ast.TypeExpression) ast.TypeExpression {
	switch len(rettypes) {
	case 0:
		return ast.VoidType
	case 1:
		return rettypes[0]
	default:
		return ast.NewTTuple(rettypes)
	}
}

// placeholder returns a minimally-typed stand-in for a slot that
// failed to resolve a real value, so the slot still carries a
// non-nil vtype (spec.md §7: "mark the node's vtype with a
// placeholder so downstream consumers can detect and skip
// re-reporting") without cascading a second diagnostic from every
// later consumer of this slot.
func placeholder(t ast.TypeExpression) ast.Expression {
	n := ast.NewNameUse("<error>")
	n.SetType(t)
	return n
}

func (p *TypeCheckPass) checkStmt(stmt ast.Statement, ctx *semantic.PassContext) ast.Statement {
	switch n := stmt.(type) {
	case *ast.FnDcl:
		for fn := n; fn != nil; fn = fn.NextNode {
			p.checkFnDcl(fn, ctx)
		}
		return n
	case *ast.VarDcl:
		p.checkVarDcl(n, ctx)
		return n
	case *ast.Struct:
		ctx.CurrentStruct = n
		for _, head := range n.Methods {
			for fn := head; fn != nil; fn = fn.NextNode {
				p.checkFnDcl(fn, ctx)
			}
		}
		ctx.CurrentStruct = nil
		return n
	case *ast.Block:
		p.checkBlock(n, ctx)
		return n
	case *ast.If:
		p.checkIf(n, ctx)
		return n
	case *ast.Loop:
		p.checkLoop(n, ctx)
		return n
	case *ast.Break:
		if n.Value != nil {
			n.Value = p.checkExpr(n.Value, ctx)
		}
		n.SetType(ast.VoidType)
		return n
	case *ast.Continue:
		n.SetType(ast.VoidType)
		return n
	case *ast.Return:
		p.checkReturn(n, ctx)
		return n
	case *ast.ExprStmt:
		n.X = p.checkExpr(n.X, ctx)
		return n
	default:
		ctx.AddError(stmt, semantic.ErrorGenErr, "type-check: unhandled statement kind %s", stmt.NodeKind())
		return stmt
	}
}

func (p *TypeCheckPass) checkFnDcl(fn *ast.FnDcl, ctx *semantic.PassContext) {
	prevFn := ctx.CurrentFunction
	ctx.CurrentFunction = fn
	if fn.Body != nil {
		p.checkBlock(fn.Body, ctx)
		if len(fn.Sig.Rettypes) > 0 {
			// A function whose body's tail value already satisfies the
			// return type needs no explicit `return`; anything else is
			// caught by individual Return statements during the walk.
			if ast.Expression(fn.Body) != nil {
				want := resultTypeOf(fn.Sig.Rettypes)
				if !types.IsSame(fn.Body.Type(), want) && !bodyEndsInReturn(fn.Body) {
					ctx.AddError(fn, semantic.ErrorInvType, "function '%s' must return a value of type %s", fn.NameStr, want.String())
				}
			}
		}
	}
	ctx.CurrentFunction = prevFn
}

func bodyEndsInReturn(b *ast.Block) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	_, ok := b.Stmts[len(b.Stmts)-1].(*ast.Return)
	return ok
}

func (p *TypeCheckPass) checkVarDcl(n *ast.VarDcl, ctx *semantic.PassContext) {
	if n.Init != nil {
		n.Init = p.checkExpr(n.Init, ctx)
	}
	if n.Vtype == nil {
		if n.Init == nil {
			ctx.AddError(n, semantic.ErrorNotTyped, "cannot infer type for '%s' with no initializer", n.NameStr)
			n.Vtype = ast.VoidType
			return
		}
		n.Vtype = n.Init.Type()
		return
	}
	if n.Init != nil {
		n.Init = p.coerce(n.Init, n.Vtype, ctx)
	}
}

func (p *TypeCheckPass) checkBlock(b *ast.Block, ctx *semantic.PassContext) {
	for i := range b.Stmts {
		b.Stmts[i] = p.checkStmt(b.Stmts[i], ctx)
	}
	tailType := ast.TypeExpression(ast.VoidType)
	if len(b.Stmts) > 0 {
		switch last := b.Stmts[len(b.Stmts)-1].(type) {
		case *ast.ExprStmt:
			tailType = last.X.Type()
		case *ast.Return:
			if last.IsBlockRet && len(last.Values) == 1 {
				tailType = last.Values[0].Type()
			}
		}
	}
	b.SetType(tailType)
}

// coerceBlockTail rewrites b's trailing expression (an ExprStmt or a
// BlockRet) in place so it satisfies want, and updates b's own type.
func (p *TypeCheckPass) coerceBlockTail(b *ast.Block, want ast.TypeExpression, ctx *semantic.PassContext) {
	if len(b.Stmts) == 0 {
		ctx.AddError(b, semantic.ErrorInvType, "block used as a value must end with an expression")
		return
	}
	switch last := b.Stmts[len(b.Stmts)-1].(type) {
	case *ast.ExprStmt:
		last.X = p.coerce(last.X, want, ctx)
		b.SetType(want)
	case *ast.Return:
		if last.IsBlockRet && len(last.Values) == 1 {
			last.Values[0] = p.coerce(last.Values[0], want, ctx)
			b.SetType(want)
			return
		}
		ctx.AddError(b, semantic.ErrorInvType, "block used as a value must end with an expression")
	default:
		ctx.AddError(b, semantic.ErrorInvType, "block used as a value must end with an expression")
	}
}

func (p *TypeCheckPass) checkIf(n *ast.If, ctx *semantic.PassContext) {
	for i, c := range n.Conds {
		n.Conds[i] = p.coerce(p.checkExpr(c, ctx), ast.BoolType, ctx)
	}
	for _, blk := range n.Blocks {
		p.checkBlock(blk, ctx)
	}
	if n.Else != nil {
		p.checkBlock(n.Else, ctx)
	}
	if !n.HasFlag(ast.FlagAsIf) {
		n.SetType(ast.VoidType)
		return
	}
	if n.Else == nil {
		ctx.AddError(n, semantic.ErrorInvType, "if used as a value requires an else branch")
		n.SetType(ast.VoidType)
		return
	}
	want := n.Blocks[0].Type()
	for _, blk := range n.Blocks {
		p.coerceBlockTail(blk, want, ctx)
	}
	p.coerceBlockTail(n.Else, want, ctx)
	n.SetType(want)
}

func (p *TypeCheckPass) checkLoop(n *ast.Loop, ctx *semantic.PassContext) {
	p.checkBlock(n.Body, ctx)
	if len(n.Breaks) == 0 {
		n.SetType(ast.VoidType)
		return
	}
	var want ast.TypeExpression
	for _, br := range n.Breaks {
		if br.Value == nil {
			continue
		}
		br.Value = p.checkExpr(br.Value, ctx)
		if want == nil {
			want = br.Value.Type()
			continue
		}
		if types.IsSame(br.Value.Type(), want) {
			continue
		}
		br.Value = p.coerce(br.Value, want, ctx)
	}
	if want == nil {
		want = ast.VoidType
	}
	n.SetType(want)
}

// rewriteIfReturns strips a terminal, non-block-ret Return from each
// arm of ifn (turning it into a BlockRet carrying the same values),
// recursing into any arm whose own terminal statement is itself an
// If. This lets `return if c { return 1 } else { 2 }` desugar so every
// arm ends in a plain tail value, with the outer Return left solely
// responsible for returning from the function (spec.md §4.6).
func rewriteIfReturns(ifn *ast.If) {
	blocks := make([]*ast.Block, 0, len(ifn.Blocks)+1)
	blocks = append(blocks, ifn.Blocks...)
	if ifn.Else != nil {
		blocks = append(blocks, ifn.Else)
	}
	for _, blk := range blocks {
		if len(blk.Stmts) == 0 {
			continue
		}
		i := len(blk.Stmts) - 1
		if es, isExpr := blk.Stmts[i].(*ast.ExprStmt); isExpr {
			if nested, isIf := es.X.(*ast.If); isIf {
				rewriteIfReturns(nested)
				nested.SetFlag(ast.FlagAsIf)
			}
			continue
		}
		ret, ok := blk.Stmts[i].(*ast.Return)
		if !ok || ret.IsBlockRet {
			continue
		}
		ret.IsBlockRet = true
		ret.Kind = ast.KindBlockRet
		if len(ret.Values) == 1 {
			if nested, ok := ret.Values[0].(*ast.If); ok {
				rewriteIfReturns(nested)
			}
		}
	}
}

func (p *TypeCheckPass) checkReturn(n *ast.Return, ctx *semantic.PassContext) {
	fn := ctx.CurrentFunction
	if fn == nil {
		ctx.AddError(n, semantic.ErrorGenErr, "return outside of a function")
		return
	}
	if len(n.Values) == 1 {
		if ifNode, ok := n.Values[0].(*ast.If); ok {
			rewriteIfReturns(ifNode)
			ifNode.SetFlag(ast.FlagAsIf)
		}
	}
	for i := range n.Values {
		n.Values[i] = p.checkExpr(n.Values[i], ctx)
	}

	rettypes := fn.Sig.Rettypes
	switch {
	case len(rettypes) == 0:
		if len(n.Values) != 0 {
			ctx.AddError(n, semantic.ErrorInvType, "function '%s' returns void but a value was returned", fn.NameStr)
		}
		n.SetType(ast.VoidType)
	case len(rettypes) == 1:
		if len(n.Values) != 1 {
			ctx.AddError(n, semantic.ErrorInvType, "function '%s' must return a value of type %s", fn.NameStr, rettypes[0].String())
			n.SetType(ast.VoidType)
			return
		}
		n.Values[0] = p.coerce(n.Values[0], rettypes[0], ctx)
		n.SetType(n.Values[0].Type())
	default:
		var tup *ast.VTuple
		if len(n.Values) == 1 {
			tup, _ = n.Values[0].(*ast.VTuple)
		}
		if tup == nil {
			ctx.AddError(n, semantic.ErrorInvType, "function '%s' with multiple return values requires a tuple", fn.NameStr)
			n.SetType(ast.VoidType)
			return
		}
		// "rettypes->used > retnodes->used" (strictly greater) is the
		// only arity failure: a tuple literal with MORE elements than
		// declared return values is tolerated, the extras are simply
		// never read by the caller.
		if len(rettypes) > len(tup.Elems) {
			ctx.AddError(n, semantic.ErrorBadTerm, "not enough return values for '%s': expected %d, got %d", fn.NameStr, len(rettypes), len(tup.Elems))
			n.SetType(ast.VoidType)
			return
		}
		for i, rt := range rettypes {
			tup.Elems[i] = p.coerce(tup.Elems[i], rt, ctx)
		}
		tup.SetType(ast.NewTTuple(rettypes))
		n.SetType(tup.Type())
	}
}

// coerce makes e usable where a value of type target is expected,
// materializing the conversion as an explicit Cast or Deref node
// (never a silent type change) per the output contract in spec.md §6.
func (p *TypeCheckPass) coerce(e ast.Expression, target ast.TypeExpression, ctx *semantic.PassContext) ast.Expression {
	if types.IsSame(e.Type(), target) {
		return e
	}
	if types.IexpCoerces(e, target) {
		cast := ast.NewCast(e, target)
		cast.Tok.Pos = e.Pos()
		cast.SetType(target)
		return cast
	}
	if types.NeedsAutoDeref(e.Type(), target) {
		deref := ast.NewDeref(e)
		deref.Tok.Pos = e.Pos()
		pointee := types.Pointee(e.Type())
		deref.SetType(pointee)
		if types.IsSame(pointee, target) {
			return deref
		}
		cast := ast.NewCast(deref, target)
		cast.Tok.Pos = e.Pos()
		cast.SetType(target)
		return cast
	}
	ctx.AddError(e, semantic.ErrorInvType, "cannot use %s where %s is expected", e.Type().String(), target.String())
	ph := placeholder(target)
	ph.(*ast.NameUse).Tok.Pos = e.Pos()
	return ph
}

func (p *TypeCheckPass) checkExpr(e ast.Expression, ctx *semantic.PassContext) ast.Expression {
	switch n := e.(type) {
	case *ast.ULit:
		n.SetType(ast.NewUintNbr(32))
		return n
	case *ast.FLit:
		n.SetType(ast.NewFloatNbr(64))
		return n
	case *ast.BoolLit:
		n.SetType(ast.BoolType)
		return n
	case *ast.NameUse:
		if n.Decl == nil {
			n.SetType(ast.VoidType)
			return n
		}
		n.SetType(declType(n.Decl))
		return n
	case *ast.NamedVal:
		n.Val = p.checkExpr(n.Val, ctx)
		n.SetType(n.Val.Type())
		return n
	case *ast.Block:
		p.checkBlock(n, ctx)
		return n
	case *ast.If:
		p.checkIf(n, ctx)
		return n
	case *ast.Loop:
		p.checkLoop(n, ctx)
		return n
	case *ast.Break:
		if n.Value != nil {
			n.Value = p.checkExpr(n.Value, ctx)
		}
		n.SetType(ast.VoidType)
		return n
	case *ast.Continue:
		n.SetType(ast.VoidType)
		return n
	case *ast.Return:
		p.checkReturn(n, ctx)
		return n
	case *ast.Assign:
		return p.checkAssign(n, ctx)
	case *ast.FnCall:
		return p.checkFnCall(n, ctx)
	case *ast.Cast:
		return p.checkCast(n, ctx)
	case *ast.Is:
		return p.checkIs(n, ctx)
	case *ast.Deref:
		n.Exp = p.checkExpr(n.Exp, ctx)
		pointee := types.Pointee(n.Exp.Type())
		if pointee == nil {
			ctx.AddError(n, semantic.ErrorNotPtr, "cannot dereference a non-reference type %s", n.Exp.Type().String())
			n.SetType(ast.VoidType)
			return n
		}
		n.SetType(pointee)
		return n
	case *ast.LogicAnd:
		n.Lhs = p.coerce(p.checkExpr(n.Lhs, ctx), ast.BoolType, ctx)
		n.Rhs = p.coerce(p.checkExpr(n.Rhs, ctx), ast.BoolType, ctx)
		n.SetType(ast.BoolType)
		return n
	case *ast.LogicOr:
		n.Lhs = p.coerce(p.checkExpr(n.Lhs, ctx), ast.BoolType, ctx)
		n.Rhs = p.coerce(p.checkExpr(n.Rhs, ctx), ast.BoolType, ctx)
		n.SetType(ast.BoolType)
		return n
	case *ast.LogicNot:
		n.Exp = p.coerce(p.checkExpr(n.Exp, ctx), ast.BoolType, ctx)
		n.SetType(ast.BoolType)
		return n
	case *ast.VTuple:
		elemTypes := make([]ast.TypeExpression, len(n.Elems))
		for i := range n.Elems {
			n.Elems[i] = p.checkExpr(n.Elems[i], ctx)
			elemTypes[i] = n.Elems[i].Type()
		}
		n.SetType(ast.NewTTuple(elemTypes))
		return n
	case *ast.TypeLit:
		return p.checkTypeLit(n, ctx)
	default:
		ctx.AddError(e, semantic.ErrorGenErr, "type-check: unhandled expression kind %s", e.NodeKind())
		return e
	}
}

func (p *TypeCheckPass) checkAssign(n *ast.Assign, ctx *semantic.PassContext) ast.Expression {
	n.Lhs = p.checkExpr(n.Lhs, ctx)
	n.Rhs = p.checkExpr(n.Rhs, ctx)
	if !isAddressable(n.Lhs) {
		ctx.AddError(n, semantic.ErrorBadTerm, "left side of assignment is not assignable")
		n.SetType(n.Lhs.Type())
		return n
	}
	if nu, ok := n.Lhs.(*ast.NameUse); ok {
		if v, ok := nu.Decl.(*ast.VarDcl); ok && !types.IsMutable(v.Perm) {
			ctx.AddError(n, semantic.ErrorBadTerm, "cannot assign to immutable '%s'", v.NameStr)
		}
	}
	if d, ok := n.Lhs.(*ast.Deref); ok {
		if r, ok := types.GetDecl(d.Exp.Type()).(*ast.Ref); ok && !types.IsMutable(r.Perm) {
			ctx.AddError(n, semantic.ErrorBadTerm, "cannot assign through a '%s' reference", r.Perm.Name)
		}
	}
	n.Rhs = p.coerce(n.Rhs, n.Lhs.Type(), ctx)
	n.SetType(n.Lhs.Type())
	return n
}

func isAddressable(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.NameUse:
		switch n.Decl.(type) {
		case *ast.VarDcl, *ast.FieldDcl:
			return true
		default:
			return false
		}
	case *ast.Deref:
		return true
	default:
		return false
	}
}

func (p *TypeCheckPass) checkFnCall(n *ast.FnCall, ctx *semantic.PassContext) ast.Expression {
	if n.Obj != nil {
		n.Obj = p.checkExpr(n.Obj, ctx)
	}
	for i := range n.Args {
		n.Args[i] = p.checkExpr(n.Args[i], ctx)
	}

	nameUse, isName := n.Fn.(*ast.NameUse)
	if !isName {
		n.Fn = p.checkExpr(n.Fn, ctx)
		sig, ok := types.GetDecl(n.Fn.Type()).(*ast.FnSig)
		if !ok {
			ctx.AddError(n, semantic.ErrorBadTerm, "called expression is not a function")
			n.SetType(ast.VoidType)
			return n
		}
		if len(sig.Params) != len(n.Args) {
			ctx.AddError(n, semantic.ErrorBadTerm, "expected %d arguments, got %d", len(sig.Params), len(n.Args))
			n.SetType(ast.VoidType)
			return n
		}
		for i, param := range sig.Params {
			n.Args[i] = p.coerce(n.Args[i], param.Vtype, ctx)
		}
		n.SetType(resultTypeOf(sig.Rettypes))
		return n
	}

	var fnHead *ast.FnDcl
	if n.Obj != nil {
		// Method-call syntax: name resolution deliberately left Fn
		// unresolved (internal/semantic/passes/name_resolution_pass.go),
		// since a method name lives in its receiver type's namespace,
		// not in any lexical scope. Search it here now that Obj's type
		// is known (spec.md §4.5).
		st, ok := types.GetDecl(n.Obj.Type()).(*ast.Struct)
		if !ok {
			if pointee := types.Pointee(n.Obj.Type()); pointee != nil {
				st, ok = types.GetDecl(pointee).(*ast.Struct)
			}
		}
		if !ok {
			ctx.AddError(n, semantic.ErrorBadTerm, "cannot call method '%s' on non-struct type %s", nameUse.NameStr, n.Obj.Type().String())
			n.SetType(ast.VoidType)
			return n
		}
		fnHead = st.MethodByName(nameUse.NameStr)
		if fnHead == nil {
			ctx.AddError(n, semantic.ErrorBadTerm, "'%s' has no method '%s'", st.NameStr, nameUse.NameStr)
			n.SetType(ast.VoidType)
			return n
		}
		nameUse.Decl = fnHead
	} else {
		if nameUse.Decl == nil {
			n.SetType(ast.VoidType)
			return n
		}
		var ok bool
		fnHead, ok = nameUse.Decl.(*ast.FnDcl)
		if !ok {
			ctx.AddError(n, semantic.ErrorBadTerm, "'%s' is not callable", nameUse.NameStr)
			n.SetType(ast.VoidType)
			return n
		}
	}

	matchArgs := n.Args
	offset := 0
	if n.Obj != nil {
		matchArgs = append([]ast.Expression{n.Obj}, n.Args...)
		offset = 1
	}

	best, ok := semantic.FindBestMethod(fnHead, matchArgs)
	if !ok {
		ctx.AddError(n, semantic.ErrorBadTerm, "no matching overload for '%s'", fnHead.NameStr)
		n.SetType(ast.VoidType)
		return n
	}
	nameUse.Decl = best

	for i := offset; i < len(best.Sig.Params); i++ {
		n.Args[i-offset] = p.coerce(n.Args[i-offset], best.Sig.Params[i].Vtype, ctx)
	}
	n.SetType(resultTypeOf(best.Sig.Rettypes))
	return n
}

func (p *TypeCheckPass) checkCast(n *ast.Cast, ctx *semantic.PassContext) ast.Expression {
	n.Exp = p.checkExpr(n.Exp, ctx)
	asIf := n.HasFlag(ast.FlagAsIf)
	switch types.ValidateCast(n.Exp.Type(), n.Totype, asIf) {
	case types.CastInvalid:
		ctx.AddError(n, semantic.ErrorInvType, "invalid cast from %s to %s", n.Exp.Type().String(), n.Totype.String())
	case types.CastReinterpret:
		if !asIf {
			ctx.AddError(n, semantic.ErrorInvType, "cast from %s to %s requires a reinterpret ('as!') cast", n.Exp.Type().String(), n.Totype.String())
		}
	}
	n.SetType(n.Totype)
	return n
}

func (p *TypeCheckPass) checkIs(n *ast.Is, ctx *semantic.PassContext) ast.Expression {
	n.Exp = p.checkExpr(n.Exp, ctx)
	if !types.IsCheckAllowed(n.Exp.Type(), n.Totype) {
		ctx.AddError(n, semantic.ErrorBadTerm, "'is' check not valid between %s and %s", n.Exp.Type().String(), n.Totype.String())
	}
	n.SetType(ast.BoolType)
	return n
}

func (p *TypeCheckPass) checkTypeLit(n *ast.TypeLit, ctx *semantic.PassContext) ast.Expression {
	decl := types.GetDecl(n.Totype)
	switch d := decl.(type) {
	case *ast.Struct:
		return p.checkStructLit(n, d, ctx)
	case *ast.Array:
		return p.checkArrayLit(n, d, ctx)
	default:
		if len(n.Args) != 1 {
			ctx.AddError(n, semantic.ErrorBadArray, "numeric literal construction takes exactly one argument")
			n.SetType(decl)
			return n
		}
		arg := p.checkExpr(n.Args[0], ctx)
		if !types.IsNumeric(arg.Type()) {
			ctx.AddError(n, semantic.ErrorInvType, "numeric literal construction requires a number, got %s", arg.Type().String())
			n.SetType(decl)
			return n
		}
		n.Args[0] = p.coerce(arg, decl, ctx)
		n.SetType(decl)
		return n
	}
}

func (p *TypeCheckPass) checkArrayLit(n *ast.TypeLit, declaredElem *ast.Array, ctx *semantic.PassContext) ast.Expression {
	if len(n.Args) == 0 {
		ctx.AddError(n, semantic.ErrorBadArray, "array literal must not be empty")
		n.SetType(declaredElem)
		return n
	}
	for i := range n.Args {
		n.Args[i] = p.checkExpr(n.Args[i], ctx)
	}
	elemType := n.Args[0].Type()
	for i := 1; i < len(n.Args); i++ {
		if !types.IsSame(n.Args[i].Type(), elemType) {
			ctx.AddError(n.Args[i], semantic.ErrorBadArray, "array literal elements must all share one type")
		}
	}
	n.SetType(ast.NewArray(elemType, uint64(len(n.Args))))
	return n
}

// checkStructLit implements the field-reordering algorithm of
// spec.md §4.5.3: walk the struct's declared fields in order,
// consuming positional and NamedVal arguments (searching forward for
// a name match when the cursor lands on a mismatched NamedVal),
// injecting tag-field literals, substituting default values or a
// typed placeholder for anything unresolved, and enforcing
// leading-underscore field privacy.
func (p *TypeCheckPass) checkStructLit(n *ast.TypeLit, st *ast.Struct, ctx *semantic.PassContext) ast.Expression {
	args := n.Args
	used := make([]bool, len(args))
	argi := 0
	result := make([]ast.Expression, 0, len(st.Fields))

	// A NamedVal that names no field of st at all (a typo, not a
	// reordering) is rejected up front via the receiver type's own
	// field namespace, rather than left to fall through to the vaguer
	// "too many values" diagnostic below.
	for i, a := range args {
		nv, ok := a.(*ast.NamedVal)
		if !ok {
			continue
		}
		if st.FieldByName(nv.NameStr) == nil {
			ctx.AddError(a, semantic.ErrorBadTerm, "'%s' has no field named '%s'", st.NameStr, nv.NameStr)
			used[i] = true
		}
	}

	for _, f := range st.Fields {
		if f.HasFlag(ast.FlagIsTagField) {
			var tagVal uint64
			if f.TagValue != nil {
				tagVal = *f.TagValue
			}
			lit := ast.NewULit(tagVal)
			lit.SetType(f.Vtype)
			result = append(result, lit)
			continue
		}

		var chosen ast.Expression
		if argi < len(args) {
			if nv, ok := args[argi].(*ast.NamedVal); ok {
				if nv.NameStr == f.NameStr {
					chosen = nv.Val
					used[argi] = true
					argi++
				} else if j := findNamedVal(args, used, f.NameStr); j >= 0 {
					chosen = args[j].(*ast.NamedVal).Val
					used[j] = true
				}
			} else {
				chosen = args[argi]
				used[argi] = true
				argi++
			}
		} else if j := findNamedVal(args, used, f.NameStr); j >= 0 {
			chosen = args[j].(*ast.NamedVal).Val
			used[j] = true
		}

		if chosen == nil {
			if f.Default != nil {
				chosen = f.Default
			} else {
				ctx.AddError(n, semantic.ErrorBadTerm, "missing value for field '%s' of '%s'", f.NameStr, st.NameStr)
				chosen = placeholder(f.Vtype)
			}
		}

		if len(f.NameStr) > 0 && f.NameStr[0] == '_' && ctx.CurrentStruct != st {
			ctx.AddError(n, semantic.ErrorBadTerm, "field '%s' of '%s' is private", f.NameStr, st.NameStr)
		}

		chosen = p.checkExpr(chosen, ctx)
		chosen = p.coerce(chosen, f.Vtype, ctx)
		result = append(result, chosen)
	}

	for _, u := range used {
		if !u {
			ctx.AddError(n, semantic.ErrorBadTerm, "too many values in struct literal for '%s'", st.NameStr)
			break
		}
	}

	n.Args = result
	n.SetType(st)
	return n
}

func findNamedVal(args []ast.Expression, used []bool, name string) int {
	for j := range args {
		if used[j] {
			continue
		}
		if nv, ok := args[j].(*ast.NamedVal); ok && nv.NameStr == name {
			return j
		}
	}
	return -1
}
