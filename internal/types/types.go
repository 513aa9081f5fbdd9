// Package types implements the type-comparison, coercion, and cast-
// validity rules the type-check and flow-analysis passes consult.
// None of it is a separate type representation: every "type" here is
// simply an ast.TypeExpression, resolved down to its declaration node.
// This package only adds the relations between those nodes that the
// ast package itself has no business knowing about.
package types

import "github.com/conelang/conesema/internal/ast"

// ptrSizeCategory is the sentinel size (in bits) the cast oracle uses
// for any type whose storage size is "pointer-sized" rather than a
// fixed bit width: Ptr, Ref, ArrayRef, VirtRef, and the usize numeric
// type. It is larger than any real bit width so it never accidentally
// compares equal to one, mirroring the source compiler's own
// `ptrsize = 10000` sentinel in its reinterpret-cast size oracle.
const ptrSizeCategory = 10000

// GetDecl unwraps a use-site reference down to the declaration it
// denotes: an ast.NameUse resolves through Decl (itself possibly
// another NameUse, e.g. a type alias chain); anything else is already
// a declaration and is returned as-is.
func GetDecl(t ast.TypeExpression) ast.TypeExpression {
	for {
		nu, ok := t.(*ast.NameUse)
		if !ok || nu.Decl == nil {
			return t
		}
		decl, ok := nu.Decl.(ast.TypeExpression)
		if !ok {
			return t
		}
		t = decl
	}
}

// sizeCategory returns the cast oracle's notion of a type's size: its
// bit width for the fixed-width numeric types, ptrSizeCategory for
// every pointer-shaped type and usize, and -1 for anything with no
// fixed representation size (structs are handled separately via
// FlagSameSize, since their size depends on layout, not a single
// number).
func sizeCategory(t ast.TypeExpression) int {
	switch n := GetDecl(t).(type) {
	case *ast.IntNbr:
		return int(n.Bits)
	case *ast.UintNbr:
		if n.Usize {
			return ptrSizeCategory
		}
		return int(n.Bits)
	case *ast.FloatNbr:
		return int(n.Bits)
	case *ast.Bool:
		return 8
	case *ast.Ptr, *ast.Ref, *ast.ArrayRef, *ast.VirtRef:
		return ptrSizeCategory
	default:
		return -1
	}
}

// IsNumeric reports whether t is one of the fixed-width numeric types
// (signed, unsigned, or floating-point).
func IsNumeric(t ast.TypeExpression) bool {
	switch GetDecl(t).(type) {
	case *ast.IntNbr, *ast.UintNbr, *ast.FloatNbr:
		return true
	default:
		return false
	}
}

// IsSigned reports whether t is a signed integer or float type.
func IsSigned(t ast.TypeExpression) bool {
	switch GetDecl(t).(type) {
	case *ast.IntNbr, *ast.FloatNbr:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether t is an IntNbr or UintNbr.
func IsIntegral(t ast.TypeExpression) bool {
	switch GetDecl(t).(type) {
	case *ast.IntNbr, *ast.UintNbr:
		return true
	default:
		return false
	}
}

// IsPointerish reports whether t is one of the reference/pointer
// variants (Ptr, Ref, ArrayRef, VirtRef).
func IsPointerish(t ast.TypeExpression) bool {
	switch GetDecl(t).(type) {
	case *ast.Ptr, *ast.Ref, *ast.ArrayRef, *ast.VirtRef:
		return true
	default:
		return false
	}
}

// IsSame reports whether two type expressions denote the identical
// type after unwrapping name uses. Bool and Void compare by kind (any
// Bool node is the same type as ast.BoolType); numeric types compare
// by kind+bit width; arrays, tuples and reference types compare
// structurally; everything else compares by declaration node identity.
func IsSame(a, b ast.TypeExpression) bool {
	da, db := GetDecl(a), GetDecl(b)
	if da == db {
		return true
	}
	switch x := da.(type) {
	case *ast.IntNbr:
		y, ok := db.(*ast.IntNbr)
		return ok && x.Bits == y.Bits
	case *ast.UintNbr:
		y, ok := db.(*ast.UintNbr)
		return ok && x.Usize == y.Usize && (x.Usize || x.Bits == y.Bits)
	case *ast.FloatNbr:
		y, ok := db.(*ast.FloatNbr)
		return ok && x.Bits == y.Bits
	case *ast.Bool:
		_, ok := db.(*ast.Bool)
		return ok
	case *ast.Void:
		_, ok := db.(*ast.Void)
		return ok
	case *ast.Array:
		y, ok := db.(*ast.Array)
		return ok && x.Size == y.Size && IsSame(x.Elem, y.Elem)
	case *ast.TTuple:
		y, ok := db.(*ast.TTuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !IsSame(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *ast.Ref:
		y, ok := db.(*ast.Ref)
		return ok && IsSame(x.Pvtype, y.Pvtype) && permsCompatible(x.Perm, y.Perm, true)
	case *ast.Ptr:
		y, ok := db.(*ast.Ptr)
		return ok && IsSame(x.Pvtype, y.Pvtype)
	case *ast.ArrayRef:
		y, ok := db.(*ast.ArrayRef)
		return ok && IsSame(x.Pvtype, y.Pvtype) && permsCompatible(x.Perm, y.Perm, true)
	case *ast.VirtRef:
		y, ok := db.(*ast.VirtRef)
		return ok && IsSame(x.Pvtype, y.Pvtype) && permsCompatible(x.Perm, y.Perm, true)
	default:
		return false
	}
}

// SameSize reports whether two types have the oracle's same size
// category, the precondition for a reinterpret (`as!`) cast between
// them when neither side is individually convertible. Two struct
// types are same-size whenever both carry FlagSameSize; they need not
// name each other. Layout computation itself is a codegen concern out
// of this middle-end's scope, so the flag is taken as the
// declaration's own assertion.
func SameSize(a, b ast.TypeExpression) bool {
	da, db := GetDecl(a), GetDecl(b)
	sa, sb := sizeCategory(da), sizeCategory(db)
	if sa != -1 && sb != -1 {
		return sa == sb
	}
	structA, okA := da.(*ast.Struct)
	structB, okB := db.(*ast.Struct)
	if okA && okB {
		return structA.HasFlag(ast.FlagSameSize) && structB.HasFlag(ast.FlagSameSize)
	}
	return false
}
