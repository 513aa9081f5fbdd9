package types

import "github.com/conelang/conesema/internal/ast"

// permRank orders permissions from least to most restrictive for the
// purpose of reference coercion: a reference may always coerce to one
// requiring an equally or less restrictive permission (e.g. "uni" may
// be used where "mut" is wanted, "mut" where "imm"/"const"/"ro" is
// wanted), never the reverse. Unranked (unrecognized) names are
// treated as requiring an exact match.
var permRank = map[string]int{
	"uni":   0,
	"mut":   1,
	"imm":   2,
	"const": 2,
	"ro":    3,
}

// permsCompatible reports whether a value carrying permission `have`
// may be used where permission `want` is expected. A nil permission
// means "unspecified": a nil `want` accepts any `have` (no restriction
// demanded), while a nil `have` satisfies only a nil `want`. When
// exact is true, only an identical
// permission (after nil-defaulting) is accepted — the rule IsSame
// uses for reference type identity, as opposed to the looser
// assignability rule CanAssignPerm uses at call/assignment sites.
func permsCompatible(have, want *ast.Perm, exact bool) bool {
	haveName, wantName := "", ""
	if have != nil {
		haveName = have.Name
	}
	if want != nil {
		wantName = want.Name
	}
	if exact {
		return haveName == wantName
	}
	if wantName == "" {
		return true
	}
	hr, hok := permRank[haveName]
	wr, wok := permRank[wantName]
	if !hok || !wok {
		return haveName == wantName
	}
	return hr <= wr
}

// CanAssignPerm reports whether a reference/pointer carrying
// permission `have` may be passed or assigned to a slot declared with
// permission `want`, following the looser (non-exact) compatibility
// order: `uni` satisfies everything, `mut` satisfies `imm`/`const`/
// `ro`, and so on.
func CanAssignPerm(have, want *ast.Perm) bool {
	return permsCompatible(have, want, false)
}

// IsMutable reports whether perm permits writing through the
// reference it annotates. A nil permission defaults to mutable (bare,
// unannotated local bindings are implicitly read-write).
func IsMutable(perm *ast.Perm) bool {
	if perm == nil {
		return true
	}
	switch perm.Name {
	case "uni", "mut":
		return true
	default:
		return false
	}
}
