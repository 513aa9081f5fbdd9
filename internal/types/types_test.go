package types_test

import (
	"testing"

	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/types"
)

func TestIsSame_NumericComparesByKindAndWidth(t *testing.T) {
	if !types.IsSame(ast.NewIntNbr(32), ast.NewIntNbr(32)) {
		t.Fatalf("expected two separately-allocated i32 nodes to compare same")
	}
	if types.IsSame(ast.NewIntNbr(32), ast.NewIntNbr(64)) {
		t.Fatalf("expected i32 and i64 to differ")
	}
	if types.IsSame(ast.NewIntNbr(32), ast.NewUintNbr(32)) {
		t.Fatalf("expected i32 and u32 (different signedness) to differ")
	}
}

func TestIsSame_PrimitiveSingletons(t *testing.T) {
	if !types.IsSame(ast.BoolType, ast.NewBool()) {
		t.Fatalf("expected any Bool node to compare same as the shared sentinel")
	}
}

func TestWidens_SameClassOnly(t *testing.T) {
	if !types.Widens(ast.NewIntNbr(32), ast.NewIntNbr(64)) {
		t.Fatalf("expected i32 to widen to i64")
	}
	if types.Widens(ast.NewIntNbr(64), ast.NewIntNbr(32)) {
		t.Fatalf("narrowing i64 to i32 should not count as widening")
	}
	if types.Widens(ast.NewIntNbr(32), ast.NewUintNbr(64)) {
		t.Fatalf("signed to unsigned should not widen")
	}
	if !types.Widens(ast.NewFloatNbr(32), ast.NewFloatNbr(64)) {
		t.Fatalf("expected f32 to widen to f64")
	}
}

func TestValidateCast_ReinterpretRequiresEqualSize(t *testing.T) {
	// Grounds spec.md §8 S5: u32 -> f32 succeeds (equal size), u64 ->
	// f32 fails (different size), both spelled as reinterpret casts.
	if got := types.ValidateCast(ast.NewUintNbr(32), ast.NewFloatNbr(32), true); got != types.CastReinterpret {
		t.Fatalf("expected u32->f32 reinterpret cast to succeed, got %v", got)
	}
	if got := types.ValidateCast(ast.NewUintNbr(64), ast.NewFloatNbr(32), true); got != types.CastInvalid {
		t.Fatalf("expected u64->f32 reinterpret cast to be rejected for mismatched size, got %v", got)
	}
}

func TestValidateCast_ReinterpretNeverFallsBackToValuePreserving(t *testing.T) {
	// Two numeric types of different size are otherwise a perfectly
	// legal plain (non-reinterpret) cast; as a reinterpret cast they
	// must still be rejected for the size mismatch, since the
	// reinterpret path never falls through to the value-preserving
	// numeric<->numeric rule.
	if got := types.ValidateCast(ast.NewIntNbr(16), ast.NewFloatNbr(64), true); got != types.CastInvalid {
		t.Fatalf("expected i16->f64 reinterpret cast to be rejected, got %v", got)
	}
	if got := types.ValidateCast(ast.NewIntNbr(16), ast.NewFloatNbr(64), false); got != types.CastValue {
		t.Fatalf("expected i16->f64 plain cast to succeed as a value-preserving conversion, got %v", got)
	}
}

func TestValidateCast_NumericValueConversion(t *testing.T) {
	if got := types.ValidateCast(ast.NewIntNbr(32), ast.NewFloatNbr(64), false); got != types.CastValue {
		t.Fatalf("expected i32->f64 plain cast to succeed, got %v", got)
	}
}

func TestValidateCast_BoolConversions(t *testing.T) {
	if got := types.ValidateCast(ast.NewIntNbr(32), ast.BoolType, false); got != types.CastValue {
		t.Fatalf("expected i32->Bool cast to succeed, got %v", got)
	}
	if got := types.ValidateCast(ast.BoolType, ast.NewUintNbr(8), false); got != types.CastValue {
		t.Fatalf("expected Bool->u8 cast to succeed, got %v", got)
	}
}

func TestValidateCast_StructSameSizeBothPlainAndReinterpret(t *testing.T) {
	a := ast.NewStruct("A")
	a.SetFlag(ast.FlagSameSize)
	b := ast.NewStruct("B")
	b.SetFlag(ast.FlagSameSize)

	if got := types.ValidateCast(a, b, false); got != types.CastValue {
		t.Fatalf("expected same-size struct plain cast to succeed, got %v", got)
	}
	if got := types.ValidateCast(a, b, true); got != types.CastReinterpret {
		t.Fatalf("expected same-size struct reinterpret cast to succeed, got %v", got)
	}
}

func TestValidateCast_StructWithoutSameSizeFlagRejected(t *testing.T) {
	a := ast.NewStruct("A")
	b := ast.NewStruct("B")
	if got := types.ValidateCast(a, b, false); got != types.CastInvalid {
		t.Fatalf("expected struct cast without SameSize flag to be rejected, got %v", got)
	}
}

func TestValidateCast_Unrelated(t *testing.T) {
	if got := types.ValidateCast(ast.NewStruct("A"), ast.NewIntNbr(32), false); got != types.CastInvalid {
		t.Fatalf("expected struct->int cast to be rejected, got %v", got)
	}
}

func TestIexpCoerces_UntypedLiteralWidening(t *testing.T) {
	lit := ast.NewULit(5)
	lit.SetType(ast.NewUintNbr(32))
	if !types.IexpCoerces(lit, ast.NewIntNbr(64)) {
		t.Fatalf("expected an unsigned literal to coerce to a wider signed int")
	}
}

func TestIexpCoerces_RefPermissionWeakening(t *testing.T) {
	mut := ast.NewPerm("mut")
	ro := ast.NewPerm("ro")
	from := ast.NewRef(ast.NewIntNbr(32), mut)
	to := ast.NewRef(ast.NewIntNbr(32), ro)
	if !types.IexpCoerces(func() ast.Expression {
		n := ast.NewNameUse("x")
		n.SetType(from)
		return n
	}(), to) {
		t.Fatalf("expected a &mut i32 to coerce to a &ro i32 (permission weakening)")
	}
}

func TestIsCheckAllowed_VirtRefRequiresImplementation(t *testing.T) {
	trait := ast.NewStruct("Shape")
	trait.SetFlag(ast.FlagTraitType)
	circle := ast.NewStruct("Circle")
	circle.Implements = []*ast.Struct{trait}
	square := ast.NewStruct("Square")

	vref := ast.NewVirtRef(trait, nil)
	if !types.IsCheckAllowed(vref, circle) {
		t.Fatalf("expected a VirtRef<Shape> 'is' Circle to be allowed when Circle implements Shape")
	}
	if types.IsCheckAllowed(vref, square) {
		t.Fatalf("expected a VirtRef<Shape> 'is' Square to be rejected when Square does not implement Shape")
	}
}

func TestIsCheckAllowed_TaggedStructRequiresReachableVariant(t *testing.T) {
	base := ast.NewStruct("Shape")
	base.SetFlag(ast.FlagHasTagField)
	circle := ast.NewStruct("Circle")
	circle.Implements = []*ast.Struct{base}
	unrelated := ast.NewStruct("TotallyUnrelatedStruct")

	if !types.IsCheckAllowed(base, circle) {
		t.Fatalf("expected Shape 'is' Circle to be allowed when Circle is a declared variant of Shape")
	}
	if types.IsCheckAllowed(base, unrelated) {
		t.Fatalf("expected Shape 'is' TotallyUnrelatedStruct to be rejected: it declares no relationship to Shape")
	}
}

func TestIsCheckAllowed_StructWithoutTagFieldRejected(t *testing.T) {
	base := ast.NewStruct("Plain")
	other := ast.NewStruct("Other")
	other.Implements = []*ast.Struct{base}
	if types.IsCheckAllowed(base, other) {
		t.Fatalf("expected an 'is' check against a struct with no tag field to be rejected outright")
	}
}

func TestNeedsAutoDeref(t *testing.T) {
	refType := ast.NewRef(ast.NewIntNbr(32), nil)
	if !types.NeedsAutoDeref(refType, ast.NewIntNbr(32)) {
		t.Fatalf("expected a &i32 to need auto-deref to satisfy an i32 context")
	}
	if types.NeedsAutoDeref(ast.NewIntNbr(32), ast.NewIntNbr(32)) {
		t.Fatalf("identical types should never need an auto-deref")
	}
}
