// Package fixtures builds small, hand-constructed IR trees that
// exercise the pipeline end to end. Lexing and parsing are out of
// scope for this module (spec.md §1), so there is no source text to
// feed the CLI: these fixtures stand in for a parser's output, one per
// testable-property scenario (spec.md §8, S1-S6).
//
// The closed node tag list (spec.md §3) has no binary-arithmetic node
// — `x * x` at the source level is represented here, as it would be
// by the real parser, as a call to a declared function (see Scenario1
// below); DESIGN.md records this as the resolution for that gap.
package fixtures

import "github.com/conelang/conesema/internal/ast"

// Scenario is one named, buildable fixture.
type Scenario struct {
	Name        string
	Description string
	Build       func() *ast.Module
}

// All lists every scenario in spec.md §8 order.
var All = []Scenario{
	{"s1", "simple function: fn sq(x i32) i32 { return mul(x, x) }", Scenario1SimpleFunction},
	{"s2", "overload resolution over add(i32,i32)/add(f32,f32)", Scenario2Overload},
	{"s3", "if used as an expression; both arms take the first arm's literal type (u32), so returning it as i32 is rejected", Scenario3IfExpression},
	{"s4", "struct literal field reordering with defaults", Scenario4StructLitReorder},
	{"s5", "reinterpret cast, equal-size succeeds, mismatched size fails", Scenario5ReinterpretCast},
	{"s6", "return-of-if rewritten so the inner return becomes a block tail", Scenario6ReturnRewrite},
}

// ByName looks up a scenario by its short name ("s1".."s6"), or nil.
func ByName(name string) *Scenario {
	for i := range All {
		if All[i].Name == name {
			return &All[i]
		}
	}
	return nil
}

func i32() *ast.IntNbr   { return ast.NewIntNbr(32) }
func f32() *ast.FloatNbr { return ast.NewFloatNbr(32) }

func block(stmts ...ast.Statement) *ast.Block { return ast.NewBlock(stmts) }

func exprStmt(e ast.Expression) ast.Statement { return ast.NewExprStmt(e) }

func module(decls ...ast.Statement) *ast.Module {
	m := ast.NewModule()
	m.Decls = decls
	return m
}

// Scenario1SimpleFunction grounds spec.md §8 S1. `mul` stands in for
// the source language's `*` operator; `sq` calls it with the same
// argument twice, matching the property under test: after type-check
// the call's vtype is i32 and so is the Return's.
func Scenario1SimpleFunction() *ast.Module {
	mul := ast.NewFnDcl("mul",
		ast.NewFnSig([]*ast.FieldDcl{ast.NewFieldDcl("a", i32()), ast.NewFieldDcl("b", i32())}, []ast.TypeExpression{i32()}),
		block(ast.NewReturn([]ast.Expression{ast.NewNameUse("a")})),
	)

	x := ast.NewNameUse("x")
	call := ast.NewFnCall(ast.NewNameUse("mul"), []ast.Expression{x, ast.NewNameUse("x")})
	sq := ast.NewFnDcl("sq",
		ast.NewFnSig([]*ast.FieldDcl{ast.NewFieldDcl("x", i32())}, []ast.TypeExpression{i32()}),
		block(ast.NewReturn([]ast.Expression{call})),
	)

	return module(mul, sq)
}

// Scenario2Overload grounds spec.md §8 S2: add(i32,i32) and
// add(f32,f32) overloads, plus three call sites: two integer literals
// (coercing into add(i32,i32)), two float literals (coercing into
// add(f32,f32)), and a rejected mixed integer/float call.
func Scenario2Overload() *ast.Module {
	addInt := ast.NewFnDcl("add",
		ast.NewFnSig([]*ast.FieldDcl{ast.NewFieldDcl("a", i32()), ast.NewFieldDcl("b", i32())}, []ast.TypeExpression{i32()}),
		block(ast.NewReturn([]ast.Expression{ast.NewNameUse("a")})),
	)
	addFloat := ast.NewFnDcl("add",
		ast.NewFnSig([]*ast.FieldDcl{ast.NewFieldDcl("a", f32()), ast.NewFieldDcl("b", f32())}, []ast.TypeExpression{f32()}),
		block(ast.NewReturn([]ast.Expression{ast.NewNameUse("a")})),
	)

	callInts := ast.NewFnCall(ast.NewNameUse("add"), []ast.Expression{ast.NewULit(1), ast.NewULit(2)})
	callFloats := ast.NewFnCall(ast.NewNameUse("add"), []ast.Expression{ast.NewFLit(1.0), ast.NewFLit(2.0)})
	callMixed := ast.NewFnCall(ast.NewNameUse("add"), []ast.Expression{ast.NewULit(1), ast.NewFLit(2.0)})

	r1 := ast.NewVarDcl("r1", nil, callInts)
	r2 := ast.NewVarDcl("r2", nil, callFloats)
	r3 := ast.NewVarDcl("r3", nil, callMixed)

	return module(addInt, addFloat, r1, r2, r3)
}

// Scenario3IfExpression grounds spec.md §8 S3: `let x = if c {1} else
// {2}` with `c: Bool`. FlagAsIf is set on the If the way the real
// parser would set it upon seeing the construct used in value
// position, since this fixture bypasses parsing entirely.
func Scenario3IfExpression() *ast.Module {
	ifExpr := ast.NewIf(
		[]ast.Expression{ast.NewNameUse("c")},
		[]*ast.Block{block(exprStmt(ast.NewULit(1)))},
		block(exprStmt(ast.NewULit(2))),
	)
	ifExpr.SetFlag(ast.FlagAsIf)

	letX := ast.NewVarDcl("x", nil, ifExpr)
	ret := ast.NewReturn([]ast.Expression{ast.NewNameUse("x")})

	test := ast.NewFnDcl("test",
		ast.NewFnSig([]*ast.FieldDcl{ast.NewFieldDcl("c", ast.NewBool())}, []ast.TypeExpression{i32()}),
		block(letX, ret),
	)
	return module(test)
}

// Scenario4StructLitReorder grounds spec.md §8 S4: `struct Point { x
// i32 = 0, y i32 = 0 }` and the literal `Point[y: 5]`, which reorders
// to `[0, 5]` by consuming the named argument out of order and
// falling back to each skipped field's Default.
func Scenario4StructLitReorder() *ast.Module {
	fx := ast.NewFieldDcl("x", i32())
	fx.Default = ast.NewULit(0)
	fy := ast.NewFieldDcl("y", i32())
	fy.Default = ast.NewULit(0)

	point := ast.NewStruct("Point")
	point.Fields = []*ast.FieldDcl{fx, fy}

	lit := ast.NewTypeLit(point, []ast.Expression{ast.NewNamedVal("y", ast.NewULit(5))})
	makePoint := ast.NewFnDcl("makePoint",
		ast.NewFnSig(nil, []ast.TypeExpression{point}),
		block(ast.NewReturn([]ast.Expression{lit})),
	)

	return module(point, makePoint)
}

// Scenario5ReinterpretCast grounds spec.md §8 S5: a u32->f32
// reinterpret cast (equal size, succeeds) and a u64->f32 reinterpret
// cast (different size, rejected by the cast size oracle).
func Scenario5ReinterpretCast() *ast.Module {
	good := ast.NewCast(ast.NewULit(1), f32()) // ULit type-checks to u32: equal size to f32
	good.SetFlag(ast.FlagAsIf)

	wideSrc := ast.NewTypeLit(ast.NewUintNbr(64), []ast.Expression{ast.NewULit(1)})
	bad := ast.NewCast(wideSrc, f32())
	bad.SetFlag(ast.FlagAsIf)

	okVar := ast.NewVarDcl("ok", nil, good)
	badVar := ast.NewVarDcl("bad", nil, bad)

	return module(okVar, badVar)
}

// Scenario6ReturnRewrite grounds spec.md §8 S6: `fn f() i32 { return
// if c { return 1 } else { 2 } }`, where the inner `return 1` is
// rewritten to a bare block-tail value by rewriteIfReturns.
func Scenario6ReturnRewrite() *ast.Module {
	innerReturn := ast.NewReturn([]ast.Expression{ast.NewULit(1)})
	ifExpr := ast.NewIf(
		[]ast.Expression{ast.NewNameUse("c")},
		[]*ast.Block{block(innerReturn)},
		block(exprStmt(ast.NewULit(2))),
	)
	outerReturn := ast.NewReturn([]ast.Expression{ifExpr})

	f := ast.NewFnDcl("f",
		ast.NewFnSig([]*ast.FieldDcl{ast.NewFieldDcl("c", ast.NewBool())}, []ast.TypeExpression{i32()}),
		block(outerReturn),
	)
	return module(f)
}
