package semantic

import (
	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/types"
)

// MatchCode is the result of scoring one candidate overload against a
// call's argument list, following the source compiler's match-code
// convention (see original_source's ir/instype.c, fnSigMatchMethCall):
// 0 means the candidate is rejected outright (wrong arity or an
// incompatible argument), 1 means every argument matches its
// parameter's type exactly, and any value greater than 1 means the
// candidate is viable but required at least one implicit coercion —
// higher is a worse (costlier) match, so the best candidate is the
// viable one with the lowest non-zero MatchCode.
type MatchCode int

const (
	MatchReject MatchCode = 0
	MatchPerfect MatchCode = 1
)

// ScoreCandidate computes fn's MatchCode against args (already-
// type-checked argument expressions; for a method call, args[0] must
// be the receiver when fn is a method field). A variadic-parameter
// list is not part of this middle-end's scope (spec.md Non-goals), so
// arity must match exactly.
func ScoreCandidate(fn *ast.FnDcl, args []ast.Expression) MatchCode {
	params := fn.Sig.Params
	if len(params) != len(args) {
		return MatchReject
	}
	cost := MatchCode(1)
	for i, p := range params {
		arg := args[i]
		if types.IsSame(arg.Type(), p.Vtype) {
			continue
		}
		if types.IexpCoerces(arg, p.Vtype) {
			cost++
			continue
		}
		if types.NeedsAutoDeref(arg.Type(), p.Vtype) {
			cost++
			continue
		}
		return MatchReject
	}
	return cost
}

// FindBestMethod walks the overload chain starting at head and
// returns the single best-scoring candidate for args. ok is false
// only when no candidate matches at all (MatchReject for every
// candidate). A perfect match short-circuits the walk immediately.
// Otherwise the candidate with the smallest nonzero MatchCode wins;
// when two or more candidates tie for that score, the earliest
// declared one wins, since the walk visits NextNode in declaration
// order and only replaces best on a strictly smaller score.
func FindBestMethod(head *ast.FnDcl, args []ast.Expression) (best *ast.FnDcl, ok bool) {
	bestScore := MatchCode(0)
	for fn := head; fn != nil; fn = fn.NextNode {
		score := ScoreCandidate(fn, args)
		if score == MatchReject {
			continue
		}
		if score == MatchPerfect {
			return fn, true
		}
		if best == nil || score < bestScore {
			best = fn
			bestScore = score
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
