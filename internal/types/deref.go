package types

import "github.com/conelang/conesema/internal/ast"

// Pointee returns the type a Ref/Ptr/ArrayRef/VirtRef dereferences
// to, or nil if t is none of those.
func Pointee(t ast.TypeExpression) ast.TypeExpression {
	switch n := GetDecl(t).(type) {
	case *ast.Ref:
		return n.Pvtype
	case *ast.Ptr:
		return n.Pvtype
	case *ast.ArrayRef:
		return n.Pvtype
	case *ast.VirtRef:
		return n.Pvtype
	default:
		return nil
	}
}

// NeedsAutoDeref reports whether an expression of type from must be
// implicitly dereferenced to satisfy a context expecting to: from is
// reference-shaped, its pointee is not itself directly coercible (so
// dereferencing is the only path), and the pointee does coerce.
// Matches the source compiler's auto-deref behavior: a Ref to T is
// usable directly where T is wanted, without the programmer writing
// the dereference explicitly.
func NeedsAutoDeref(from, to ast.TypeExpression) bool {
	if IsSame(from, to) {
		return false
	}
	pointee := Pointee(from)
	if pointee == nil {
		return false
	}
	return IsSame(pointee, to) || Widens(pointee, to)
}
