package types_test

import (
	"testing"

	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/types"
)

func TestBoolConvertible(t *testing.T) {
	if !types.BoolConvertible(ast.NewIntNbr(32)) {
		t.Fatalf("expected i32 to be bool-convertible")
	}
	if !types.BoolConvertible(ast.NewUintNbr(8)) {
		t.Fatalf("expected u8 to be bool-convertible")
	}
	if types.BoolConvertible(ast.NewFloatNbr(32)) {
		t.Fatalf("expected f32 not to be bool-convertible")
	}
}

func TestIexpCoerces_IdenticalTypeAlwaysCoerces(t *testing.T) {
	name := ast.NewNameUse("v")
	name.SetType(ast.NewIntNbr(32))
	if !types.IexpCoerces(name, ast.NewIntNbr(32)) {
		t.Fatalf("expected an identically-typed expression to coerce")
	}
}

func TestIexpCoerces_FloatLiteralCoercesToAnyFloatWidth(t *testing.T) {
	lit := ast.NewFLit(1.5)
	lit.SetType(ast.NewFloatNbr(64))
	if !types.IexpCoerces(lit, ast.NewFloatNbr(32)) {
		t.Fatalf("expected an untyped float literal to coerce to any float width")
	}
}

func TestIexpCoerces_RejectsNarrowing(t *testing.T) {
	name := ast.NewNameUse("v")
	name.SetType(ast.NewIntNbr(64))
	if types.IexpCoerces(name, ast.NewIntNbr(32)) {
		t.Fatalf("expected a plain (non-literal) i64 value not to coerce to i32 without an explicit cast")
	}
}

func TestIexpCoerces_RejectsPermissionTightening(t *testing.T) {
	ro := ast.NewPerm("ro")
	mut := ast.NewPerm("mut")
	name := ast.NewNameUse("r")
	name.SetType(ast.NewRef(ast.NewIntNbr(32), ro))
	if types.IexpCoerces(name, ast.NewRef(ast.NewIntNbr(32), mut)) {
		t.Fatalf("expected a &ro i32 not to coerce to a &mut i32 (permission tightening)")
	}
}

func TestIexpCoerces_ArrayRefPermissionWeakening(t *testing.T) {
	mut := ast.NewPerm("mut")
	ro := ast.NewPerm("ro")
	name := ast.NewNameUse("arr")
	name.SetType(ast.NewArrayRef(ast.NewIntNbr(32), mut))
	if !types.IexpCoerces(name, ast.NewArrayRef(ast.NewIntNbr(32), ro)) {
		t.Fatalf("expected a []mut i32 array ref to coerce to a []ro i32 array ref")
	}
}

func TestCanAssignPerm_Ranking(t *testing.T) {
	uni := ast.NewPerm("uni")
	mut := ast.NewPerm("mut")
	roPerm := ast.NewPerm("ro")

	if !types.CanAssignPerm(uni, mut) {
		t.Fatalf("expected uni to satisfy a mut requirement")
	}
	if !types.CanAssignPerm(mut, roPerm) {
		t.Fatalf("expected mut to satisfy a ro requirement")
	}
	if types.CanAssignPerm(roPerm, mut) {
		t.Fatalf("expected ro not to satisfy a mut requirement")
	}
}

func TestPointee(t *testing.T) {
	elem := ast.NewIntNbr(32)
	ref := ast.NewRef(elem, nil)
	if got := types.Pointee(ref); got != ast.TypeExpression(elem) {
		t.Fatalf("expected Pointee(&i32) to return the i32 element type")
	}
	if got := types.Pointee(ast.NewIntNbr(32)); got != nil {
		t.Fatalf("expected Pointee of a non-reference type to return nil")
	}
}
