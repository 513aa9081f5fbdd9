package types

import "github.com/conelang/conesema/internal/ast"

// numRank gives integer types a widening order within their own
// signedness class: a smaller rank always widens losslessly into a
// larger one. Floats are ranked separately (f32 < f64).
func numRank(t ast.TypeExpression) (rank int, signed, float, ok bool) {
	switch n := GetDecl(t).(type) {
	case *ast.IntNbr:
		return int(n.Bits), true, false, true
	case *ast.UintNbr:
		if n.Usize {
			return int(ptrSizeCategory), false, false, true
		}
		return int(n.Bits), false, false, true
	case *ast.FloatNbr:
		return int(n.Bits), true, true, true
	default:
		return 0, false, false, false
	}
}

// Widens reports whether from may widen implicitly to to: same
// numeric class (both integer of the same signedness, or both float)
// and from's rank is no larger than to's.
func Widens(from, to ast.TypeExpression) bool {
	fr, fs, ff, fok := numRank(from)
	tr, ts, tf, tok := numRank(to)
	if !fok || !tok || ff != tf || fs != ts {
		return false
	}
	return fr <= tr
}

// IexpCoerces reports whether an expression of type from may be used
// directly, with no explicit cast, where a value of type to is
// expected: identical types, an integer literal (ULit) coercing into
// any integer type, a float literal (FLit) coercing into any float
// type, implicit widening within the same numeric class (integers of
// the same signedness, or floats), and reference permission weakening
// (CanAssignPerm) for otherwise-identical pointee types. Integer and
// float types never coerce into one another implicitly.
func IexpCoerces(exp ast.Expression, to ast.TypeExpression) bool {
	from := exp.Type()
	if IsSame(from, to) {
		return true
	}
	switch exp.(type) {
	case *ast.ULit:
		if IsIntegral(to) {
			return true
		}
	case *ast.FLit:
		if _, ok := GetDecl(to).(*ast.FloatNbr); ok {
			return true
		}
	}
	if Widens(from, to) {
		return true
	}
	// Unsigned literal widening to a larger signed int (no sign bit
	// conflict since the literal is never negative at parse time).
	if _, isU := GetDecl(from).(*ast.UintNbr); isU {
		if _, isI := GetDecl(to).(*ast.IntNbr); isI {
			if _, litOk := exp.(*ast.ULit); litOk {
				return true
			}
		}
	}
	if refFrom, ok := GetDecl(from).(*ast.Ref); ok {
		if refTo, ok := GetDecl(to).(*ast.Ref); ok {
			return IsSame(refFrom.Pvtype, refTo.Pvtype) && CanAssignPerm(refFrom.Perm, refTo.Perm)
		}
	}
	if arFrom, ok := GetDecl(from).(*ast.ArrayRef); ok {
		if arTo, ok := GetDecl(to).(*ast.ArrayRef); ok {
			return IsSame(arFrom.Pvtype, arTo.Pvtype) && CanAssignPerm(arFrom.Perm, arTo.Perm)
		}
	}
	return false
}

// BoolConvertible reports whether t may convert to/from Bool under an
// ordinary (non-reinterpret) cast: any integer type, following the
// source compiler's convention that a bool cast from a number tests
// non-zero and a bool cast to a number produces 0 or 1.
func BoolConvertible(t ast.TypeExpression) bool {
	return IsIntegral(t)
}
