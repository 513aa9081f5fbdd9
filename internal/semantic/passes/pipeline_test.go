package passes_test

import (
	"testing"

	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/fixtures"
	"github.com/conelang/conesema/internal/semantic"
	"github.com/conelang/conesema/internal/semantic/passes"
	"github.com/conelang/conesema/internal/types"
)

// runThrough runs name resolution, type check, and (if through >= 3)
// flow analysis over the named fixture scenario, stopping early if an
// earlier pass already reported an error (mirroring PassManager.RunAll).
func runThrough(t *testing.T, scenario string, through int) (*ast.Module, *semantic.PassContext) {
	t.Helper()
	sc := fixtures.ByName(scenario)
	if sc == nil {
		t.Fatalf("no such scenario %q", scenario)
	}
	module := sc.Build()
	ctx := semantic.NewPassContext()

	all := []semantic.Pass{&passes.NameResolutionPass{}, &passes.TypeCheckPass{}, &passes.FlowAnalysisPass{}}
	for i := 0; i < through && i < len(all); i++ {
		if err := all[i].Run(module, ctx); err != nil {
			t.Fatalf("pass %q returned an error: %v", all[i].Name(), err)
		}
		if ctx.HasErrors() && i < through-1 {
			break
		}
	}
	return module, ctx
}

func findFnDcl(m *ast.Module, name string) *ast.FnDcl {
	for _, d := range m.Decls {
		if fn, ok := d.(*ast.FnDcl); ok && fn.NameStr == name {
			return fn
		}
	}
	return nil
}

// TestScenario1_CallResolvesAndReturnTypeIsI32 grounds spec.md §8 S1:
// mul's call from sq resolves, and sq's Return carries an i32 value.
func TestScenario1_CallResolvesAndReturnTypeIsI32(t *testing.T) {
	module, ctx := runThrough(t, "s1", 2)
	if ctx.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	sq := findFnDcl(module, "sq")
	if sq == nil {
		t.Fatalf("expected to find fn sq")
	}
	ret, ok := sq.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected sq's body to start with a return")
	}
	if !types.IsSame(ret.Values[0].Type(), ast.NewIntNbr(32)) {
		t.Fatalf("expected sq's returned call to have type i32, got %s", ret.Values[0].Type().String())
	}
	call, ok := ret.Values[0].(*ast.FnCall)
	if !ok {
		t.Fatalf("expected the returned value to be the call to mul")
	}
	nameUse, ok := call.Fn.(*ast.NameUse)
	if !ok || nameUse.Decl == nil {
		t.Fatalf("expected the call's callee to have resolved to mul's declaration")
	}
}

// TestScenario2_OverloadResolution grounds spec.md §8 S2: an
// all-integer call picks add(i32,i32), an all-float call picks
// add(f32,f32), and a call with one argument of each numeric kind
// matches neither overload, since an integer literal does not coerce
// to f32 and a float literal does not coerce to i32.
func TestScenario2_OverloadResolution(t *testing.T) {
	module, ctx := runThrough(t, "s2", 2)
	if len(ctx.Errors) != 1 || ctx.Errors[0].Kind != semantic.ErrorBadTerm {
		t.Fatalf("expected exactly one no-matching-overload error (for r3), got %v", ctx.Errors)
	}
	var r1, r2, r3 *ast.VarDcl
	for _, d := range module.Decls {
		if v, ok := d.(*ast.VarDcl); ok {
			switch v.NameStr {
			case "r1":
				r1 = v
			case "r2":
				r2 = v
			case "r3":
				r3 = v
			}
		}
	}
	if r1 == nil || r2 == nil || r3 == nil {
		t.Fatalf("expected to find r1, r2, r3")
	}
	if !types.IsSame(r1.Vtype, ast.NewIntNbr(32)) {
		t.Fatalf("expected r1 (two integer literals) to resolve to add(i32,i32), got %s", r1.Vtype.String())
	}
	if !types.IsSame(r2.Vtype, ast.NewFloatNbr(32)) {
		t.Fatalf("expected r2 (two float literals) to resolve to add(f32,f32), got %s", r2.Vtype.String())
	}
	if call, ok := r3.Init.(*ast.FnCall); !ok || ctx.Errors[0].Node != ast.Node(call) {
		t.Fatalf("expected r3 (mixed literal kinds) to be rejected with no matching overload, got %v", ctx.Errors)
	}
}

// TestScenario3_IfExpressionArmsInferFromFirstBlock grounds spec.md §8
// S3: both arms of `if c {1} else {2}` unify to one type, taken from
// the first block's own tail value (an untyped literal always defaults
// to u32 per the literal-typing rule), and that type flows through to
// x's inferred declaration type. x's use later in `return x`, against
// a function declared to return i32, is then a plain variable-to-
// variable widening, which only an explicit cast can perform — unlike
// a bare literal, a NameUse gets no implicit promotion — so the
// function is expected to report a type error at the return.
func TestScenario3_IfExpressionArmsInferFromFirstBlock(t *testing.T) {
	module, ctx := runThrough(t, "s3", 2)
	test := findFnDcl(module, "test")
	if test == nil {
		t.Fatalf("expected to find fn test")
	}
	letX, ok := test.Body.Stmts[0].(*ast.VarDcl)
	if !ok {
		t.Fatalf("expected the first statement to be the let x = if ... declaration")
	}
	ifExpr, ok := letX.Init.(*ast.If)
	if !ok {
		t.Fatalf("expected x's initializer to remain an If node")
	}
	if !types.IsSame(ifExpr.Type(), ast.NewUintNbr(32)) {
		t.Fatalf("expected the if expression's unified type to be u32, got %s", ifExpr.Type().String())
	}
	if !types.IsSame(letX.Vtype, ast.NewUintNbr(32)) {
		t.Fatalf("expected x's inferred declared type to be u32, got %s", letX.Vtype.String())
	}
	if !ctx.HasErrors() {
		t.Fatalf("expected returning a u32 local where i32 is declared to be rejected")
	}
}

// TestScenario4_StructLiteralFieldReordering grounds spec.md §8 S4:
// Point[y: 5] reorders to [x: 0 (default), y: 5].
func TestScenario4_StructLiteralFieldReordering(t *testing.T) {
	module, ctx := runThrough(t, "s4", 2)
	if ctx.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	makePoint := findFnDcl(module, "makePoint")
	if makePoint == nil {
		t.Fatalf("expected to find fn makePoint")
	}
	ret, ok := makePoint.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected makePoint's body to start with a return")
	}
	lit, ok := ret.Values[0].(*ast.TypeLit)
	if !ok {
		t.Fatalf("expected the returned value to be a struct literal")
	}
	if len(lit.Args) != 2 {
		t.Fatalf("expected the reordered literal to carry exactly 2 values, got %d", len(lit.Args))
	}
	// Each field value gets coerced to its i32 field type, which wraps
	// the underlying ULit (typed u32 by the literal rule) in a Cast.
	xVal, ok := underlyingULit(lit.Args[0])
	if !ok || xVal != 0 {
		t.Fatalf("expected field x to fall back to its default value 0, got %#v", lit.Args[0])
	}
	yVal, ok := underlyingULit(lit.Args[1])
	if !ok || yVal != 5 {
		t.Fatalf("expected field y to carry the named value 5, got %#v", lit.Args[1])
	}
}

func underlyingULit(e ast.Expression) (uint64, bool) {
	for {
		switch n := e.(type) {
		case *ast.ULit:
			return n.Value, true
		case *ast.Cast:
			e = n.Exp
		default:
			return 0, false
		}
	}
}

// TestScenario5_ReinterpretCastSizeOracle grounds spec.md §8 S5: an
// equal-size reinterpret cast succeeds, a mismatched-size one fails.
func TestScenario5_ReinterpretCastSizeOracle(t *testing.T) {
	module, ctx := runThrough(t, "s5", 2)
	var okVar, badVar *ast.VarDcl
	for _, d := range module.Decls {
		if v, ok := d.(*ast.VarDcl); ok {
			switch v.NameStr {
			case "ok":
				okVar = v
			case "bad":
				badVar = v
			}
		}
	}
	if okVar == nil || badVar == nil {
		t.Fatalf("expected to find ok and bad declarations")
	}
	if !types.IsSame(okVar.Vtype, ast.NewFloatNbr(32)) {
		t.Fatalf("expected ok's cast to type-check to f32, got %s", okVar.Vtype.String())
	}
	if !ctx.HasErrors() {
		t.Fatalf("expected the u64->f32 reinterpret cast to produce an error")
	}
	foundBadCastError := false
	for _, e := range ctx.Errors {
		if e.Kind == semantic.ErrorInvType {
			foundBadCastError = true
		}
	}
	if !foundBadCastError {
		t.Fatalf("expected an ErrorInvType among the reported errors, got %v", ctx.Errors)
	}
}

// TestScenario6_ReturnOfIfRewritesInnerReturnToBlockTail grounds
// spec.md §8 S6: the inner `return 1` becomes a block-tail value so
// only the outer return actually returns from the function.
func TestScenario6_ReturnOfIfRewritesInnerReturnToBlockTail(t *testing.T) {
	module, ctx := runThrough(t, "s6", 2)
	if ctx.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	f := findFnDcl(module, "f")
	if f == nil {
		t.Fatalf("expected to find fn f")
	}
	outerReturn, ok := f.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected f's body to start with the outer return")
	}
	ifExpr, ok := outerReturn.Values[0].(*ast.If)
	if !ok {
		t.Fatalf("expected the outer return's value to be the if expression")
	}
	if !ifExpr.HasFlag(ast.FlagAsIf) {
		t.Fatalf("expected checkReturn to flag the nested if as a value-producing expression")
	}
	innerRet, ok := ifExpr.Blocks[0].Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected the then-arm's statement to remain a Return node")
	}
	if !innerRet.IsBlockRet {
		t.Fatalf("expected the inner return to be rewritten into a block-tail return")
	}
	if !types.IsSame(ifExpr.Type(), ast.NewIntNbr(32)) {
		t.Fatalf("expected the rewritten if's type to be i32, got %s", ifExpr.Type().String())
	}
}

// TestFlowAnalysis_MovedStructLocalRejectedOnSecondUse confirms the
// flow pass flags a second, owning read of a `let`-declared struct
// local already moved out by an earlier by-value use.
func TestFlowAnalysis_MovedStructLocalRejectedOnSecondUse(t *testing.T) {
	st := ast.NewStruct("Pair")
	fa := ast.NewFieldDcl("a", ast.NewIntNbr(32))
	fa.Default = ast.NewULit(0)
	st.Fields = []*ast.FieldDcl{fa}

	consume := ast.NewFnDcl("consume",
		ast.NewFnSig([]*ast.FieldDcl{ast.NewFieldDcl("p", st)}, nil),
		ast.NewBlock(nil),
	)

	let := ast.NewVarDcl("p", st, ast.NewTypeLit(st, nil))
	firstUse := ast.NewExprStmt(ast.NewFnCall(ast.NewNameUse("consume"), []ast.Expression{ast.NewNameUse("p")}))
	secondUse := ast.NewExprStmt(ast.NewFnCall(ast.NewNameUse("consume"), []ast.Expression{ast.NewNameUse("p")}))

	caller := ast.NewFnDcl("caller",
		ast.NewFnSig(nil, nil),
		ast.NewBlock([]ast.Statement{let, firstUse, secondUse}),
	)

	module := ast.NewModule()
	module.Decls = []ast.Statement{st, consume, caller}

	ctx := semantic.NewPassContext()
	if err := (&passes.NameResolutionPass{}).Run(module, ctx); err != nil {
		t.Fatalf("name resolution returned an error: %v", err)
	}
	if ctx.HasErrors() {
		t.Fatalf("unexpected name-resolution errors: %v", ctx.Errors)
	}
	if err := (&passes.TypeCheckPass{}).Run(module, ctx); err != nil {
		t.Fatalf("type check returned an error: %v", err)
	}
	if ctx.HasErrors() {
		t.Fatalf("unexpected type-check errors: %v", ctx.Errors)
	}
	if err := (&passes.FlowAnalysisPass{}).Run(module, ctx); err != nil {
		t.Fatalf("flow analysis returned an error: %v", err)
	}
	if !ctx.HasErrors() {
		t.Fatalf("expected the second, already-moved use of p to be rejected")
	}
}

// TestMethodCall_DispatchesThroughReceiverTypeNamespace builds a
// struct with one method and a free function that calls it through
// method-call syntax (`p.getX()`), confirming obj.name(args) actually
// resolves via the receiver type's method namespace end to end (spec.md
// §4.3/§4.5): name resolution leaves the callee unresolved, checkFnCall
// finds it on the receiver's Struct, and the method body's bare
// reference to its own field `x` resolves through the type-method
// scope opened for it.
func TestMethodCall_DispatchesThroughReceiverTypeNamespace(t *testing.T) {
	i32 := ast.NewIntNbr(32)
	point := ast.NewStruct("Point")
	fx := ast.NewFieldDcl("x", i32)
	fx.Default = ast.NewULit(0)
	point.Fields = []*ast.FieldDcl{fx}

	selfParam := ast.NewFieldDcl("self", point)
	getX := ast.NewFnDcl("getX",
		ast.NewFnSig([]*ast.FieldDcl{selfParam}, []ast.TypeExpression{i32}),
		ast.NewBlock([]ast.Statement{ast.NewReturn([]ast.Expression{ast.NewNameUse("x")})}),
	)
	point.Methods = []*ast.FnDcl{getX}

	call := ast.NewFnCall(ast.NewNameUse("getX"), nil)
	call.Obj = ast.NewNameUse("p")

	caller := ast.NewFnDcl("caller",
		ast.NewFnSig(nil, []ast.TypeExpression{i32}),
		ast.NewBlock([]ast.Statement{
			ast.NewVarDcl("p", point, ast.NewTypeLit(point, nil)),
			ast.NewReturn([]ast.Expression{call}),
		}),
	)

	module := ast.NewModule()
	module.Decls = []ast.Statement{point, caller}

	ctx := semantic.NewPassContext()
	if err := (&passes.NameResolutionPass{}).Run(module, ctx); err != nil {
		t.Fatalf("name resolution returned an error: %v", err)
	}
	if ctx.HasErrors() {
		t.Fatalf("unexpected name-resolution errors: %v", ctx.Errors)
	}
	if err := (&passes.TypeCheckPass{}).Run(module, ctx); err != nil {
		t.Fatalf("type check returned an error: %v", err)
	}
	if ctx.HasErrors() {
		t.Fatalf("unexpected type-check errors: %v", ctx.Errors)
	}

	nameUse, ok := call.Fn.(*ast.NameUse)
	if !ok || nameUse.Decl != ast.Node(getX) {
		t.Fatalf("expected p.getX()'s callee to resolve to Point's getX method, got %#v", call.Fn)
	}
	if !types.IsSame(call.Type(), i32) {
		t.Fatalf("expected the method call's type to be i32, got %s", call.Type().String())
	}
}

// TestMethodCall_UnknownMethodOnReceiverIsReported confirms a method
// name absent from the receiver type's namespace is reported, rather
// than silently type-checking to void with no diagnostic.
func TestMethodCall_UnknownMethodOnReceiverIsReported(t *testing.T) {
	point := ast.NewStruct("Point")

	call := ast.NewFnCall(ast.NewNameUse("missing"), nil)
	call.Obj = ast.NewNameUse("p")

	caller := ast.NewFnDcl("caller",
		ast.NewFnSig(nil, nil),
		ast.NewBlock([]ast.Statement{
			ast.NewVarDcl("p", point, ast.NewTypeLit(point, nil)),
			ast.NewExprStmt(call),
		}),
	)

	module := ast.NewModule()
	module.Decls = []ast.Statement{point, caller}

	ctx := semantic.NewPassContext()
	if err := (&passes.NameResolutionPass{}).Run(module, ctx); err != nil {
		t.Fatalf("name resolution returned an error: %v", err)
	}
	if err := (&passes.TypeCheckPass{}).Run(module, ctx); err != nil {
		t.Fatalf("type check returned an error: %v", err)
	}
	if !ctx.HasErrors() {
		t.Fatalf("expected calling a method absent from Point's namespace to be reported")
	}
}

// TestStructLiteralPrivacy_AllowedWithinOwnMethodRejectedOutside
// confirms ctx.CurrentStruct is actually populated by the type-check
// pass's own struct walk (not only by name resolution, which resets it
// before type-check ever runs): a private (`_`-prefixed) field may be
// set from within the defining struct's own method, but not from an
// unrelated free function.
func TestStructLiteralPrivacy_AllowedWithinOwnMethodRejectedOutside(t *testing.T) {
	i32 := ast.NewIntNbr(32)
	point := ast.NewStruct("Point")
	fSecret := ast.NewFieldDcl("_secret", i32)
	fSecret.Default = ast.NewULit(0)
	point.Fields = []*ast.FieldDcl{fSecret}

	selfParam := ast.NewFieldDcl("self", point)
	makeSelf := ast.NewFnDcl("makeSelf",
		ast.NewFnSig([]*ast.FieldDcl{selfParam}, []ast.TypeExpression{point}),
		ast.NewBlock([]ast.Statement{
			ast.NewReturn([]ast.Expression{
				ast.NewTypeLit(point, []ast.Expression{ast.NewNamedVal("_secret", ast.NewULit(1))}),
			}),
		}),
	)
	point.Methods = []*ast.FnDcl{makeSelf}

	outsideBuilder := ast.NewFnDcl("outsideBuilder",
		ast.NewFnSig(nil, []ast.TypeExpression{point}),
		ast.NewBlock([]ast.Statement{
			ast.NewReturn([]ast.Expression{
				ast.NewTypeLit(point, []ast.Expression{ast.NewNamedVal("_secret", ast.NewULit(2))}),
			}),
		}),
	)

	module := ast.NewModule()
	module.Decls = []ast.Statement{point, outsideBuilder}

	ctx := semantic.NewPassContext()
	if err := (&passes.NameResolutionPass{}).Run(module, ctx); err != nil {
		t.Fatalf("name resolution returned an error: %v", err)
	}
	if ctx.HasErrors() {
		t.Fatalf("unexpected name-resolution errors: %v", ctx.Errors)
	}
	if err := (&passes.TypeCheckPass{}).Run(module, ctx); err != nil {
		t.Fatalf("type check returned an error: %v", err)
	}
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected exactly one privacy error (from outsideBuilder only), got %d: %v", len(ctx.Errors), ctx.Errors)
	}
}

// TestStructLiteral_UnknownNamedFieldIsReported confirms Struct's
// per-type field namespace (FieldByName) is actually consulted: a
// NamedVal naming no field of the struct at all is reported precisely,
// not folded into the generic "too many values" diagnostic.
func TestStructLiteral_UnknownNamedFieldIsReported(t *testing.T) {
	point := ast.NewStruct("Point")
	fx := ast.NewFieldDcl("x", ast.NewIntNbr(32))
	fx.Default = ast.NewULit(0)
	point.Fields = []*ast.FieldDcl{fx}

	lit := ast.NewTypeLit(point, []ast.Expression{ast.NewNamedVal("bogus", ast.NewULit(1))})
	fn := ast.NewFnDcl("makePoint",
		ast.NewFnSig(nil, []ast.TypeExpression{point}),
		ast.NewBlock([]ast.Statement{ast.NewReturn([]ast.Expression{lit})}),
	)

	module := ast.NewModule()
	module.Decls = []ast.Statement{point, fn}

	ctx := semantic.NewPassContext()
	if err := (&passes.NameResolutionPass{}).Run(module, ctx); err != nil {
		t.Fatalf("name resolution returned an error: %v", err)
	}
	if err := (&passes.TypeCheckPass{}).Run(module, ctx); err != nil {
		t.Fatalf("type check returned an error: %v", err)
	}
	foundUnknownField := false
	for _, e := range ctx.Errors {
		if e.Kind == semantic.ErrorBadTerm {
			foundUnknownField = true
		}
	}
	if !foundUnknownField {
		t.Fatalf("expected an unknown-field diagnostic, got %v", ctx.Errors)
	}
}

// TestNameResolution_DuplicateTopLevelNameIsRejected grounds spec.md's
// namespace rule: two top-level VarDcls sharing a name collide.
func TestNameResolution_DuplicateTopLevelNameIsRejected(t *testing.T) {
	a := ast.NewVarDcl("x", ast.NewIntNbr(32), ast.NewULit(1))
	b := ast.NewVarDcl("x", ast.NewIntNbr(32), ast.NewULit(2))
	module := ast.NewModule()
	module.Decls = []ast.Statement{a, b}

	ctx := semantic.NewPassContext()
	if err := (&passes.NameResolutionPass{}).Run(module, ctx); err != nil {
		t.Fatalf("name resolution returned an error: %v", err)
	}
	if !ctx.HasErrors() {
		t.Fatalf("expected a duplicate top-level name to be rejected")
	}
}

// TestNameResolution_UndefinedNameIsRejected grounds the "undefined
// name" diagnostic path.
func TestNameResolution_UndefinedNameIsRejected(t *testing.T) {
	fn := ast.NewFnDcl("f",
		ast.NewFnSig(nil, []ast.TypeExpression{ast.NewIntNbr(32)}),
		ast.NewBlock([]ast.Statement{ast.NewReturn([]ast.Expression{ast.NewNameUse("nowhere")})}),
	)
	module := ast.NewModule()
	module.Decls = []ast.Statement{fn}

	ctx := semantic.NewPassContext()
	if err := (&passes.NameResolutionPass{}).Run(module, ctx); err != nil {
		t.Fatalf("name resolution returned an error: %v", err)
	}
	if !ctx.HasErrors() {
		t.Fatalf("expected a reference to an undefined name to be rejected")
	}
}
