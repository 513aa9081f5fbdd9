package ast

import "strings"

// Assign is a mutating assignment of Rhs into the storage location
// denoted by Lhs. Type-check requires Lhs to be an addressable
// expression (a NameUse bound to a VarDcl/parameter, a field access,
// or a Deref) and requires the assignee's permission to allow
// mutation.
type Assign struct {
	ExprBase
	Lhs Expression
	Rhs Expression
}

func NewAssign(lhs, rhs Expression) *Assign {
	return &Assign{ExprBase: ExprBase{Base: Base{Kind: KindAssign}}, Lhs: lhs, Rhs: rhs}
}

func (n *Assign) String() string { return n.Lhs.String() + " = " + n.Rhs.String() }

// FnCall invokes a function or method. Obj is non-nil for method-call
// syntax (`recv.method(args)`), matching the source compiler's
// objfn field on its call node: name resolution/overload resolution
// prepends the evaluated Obj to the argument list when matching
// against a method's signature, then leaves it in Obj rather than
// splicing it into Args. Fn starts as a NameUse and is resolved to a
// concrete *FnDcl by overload resolution (recorded by rebinding the
// NameUse's Decl field).
type FnCall struct {
	ExprBase
	Fn   Expression
	Obj  Expression
	Args []Expression
}

func NewFnCall(fn Expression, args []Expression) *FnCall {
	return &FnCall{ExprBase: ExprBase{Base: Base{Kind: KindFnCall}}, Fn: fn, Args: args}
}

func (n *FnCall) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	prefix := ""
	if n.Obj != nil {
		prefix = n.Obj.String() + "."
	}
	return prefix + n.Fn.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Cast converts Exp to Totype. FlagAsIf distinguishes a value-
// preserving conversion (numeric widening/narrowing, bool<->int) from
// a reinterpret cast (`as! Totype`), which is only legal between
// same-size types per the cast size oracle (internal/types) or
// between a VirtRef and a specific implementing struct.
type Cast struct {
	ExprBase
	Exp    Expression
	Totype TypeExpression
}

func NewCast(exp Expression, totype TypeExpression) *Cast {
	return &Cast{ExprBase: ExprBase{Base: Base{Kind: KindCast}}, Exp: exp, Totype: totype}
}

func (n *Cast) String() string {
	if n.HasFlag(FlagAsIf) {
		return "(asif, " + n.Totype.String() + ", " + n.Exp.String() + ")"
	}
	return "(cast, " + n.Totype.String() + ", " + n.Exp.String() + ")"
}

// Is tests at runtime whether Exp's dynamic type matches Totype,
// producing a Bool. Only legal when Exp's static type is a VirtRef (a
// trait reference) or a Struct with FlagHasTagField set, per the
// preconditions in spec.md §4.6.
type Is struct {
	ExprBase
	Exp    Expression
	Totype TypeExpression
}

func NewIs(exp Expression, totype TypeExpression) *Is {
	return &Is{ExprBase: ExprBase{Base: Base{Kind: KindIs}}, Exp: exp, Totype: totype}
}

func (n *Is) String() string { return "(is, " + n.Totype.String() + ", " + n.Exp.String() + ")" }

// LogicAnd, LogicOr short-circuit; both operands and the result are
// Bool.
type LogicAnd struct {
	ExprBase
	Lhs Expression
	Rhs Expression
}

func NewLogicAnd(lhs, rhs Expression) *LogicAnd {
	return &LogicAnd{ExprBase: ExprBase{Base: Base{Kind: KindLogicAnd}}, Lhs: lhs, Rhs: rhs}
}

func (n *LogicAnd) String() string { return n.Lhs.String() + " && " + n.Rhs.String() }

type LogicOr struct {
	ExprBase
	Lhs Expression
	Rhs Expression
}

func NewLogicOr(lhs, rhs Expression) *LogicOr {
	return &LogicOr{ExprBase: ExprBase{Base: Base{Kind: KindLogicOr}}, Lhs: lhs, Rhs: rhs}
}

func (n *LogicOr) String() string { return n.Lhs.String() + " || " + n.Rhs.String() }

type LogicNot struct {
	ExprBase
	Exp Expression
}

func NewLogicNot(exp Expression) *LogicNot {
	return &LogicNot{ExprBase: ExprBase{Base: Base{Kind: KindLogicNot}}, Exp: exp}
}

func (n *LogicNot) String() string { return "!" + n.Exp.String() }

// VTuple is a value-tuple literal: an ordered, anonymous grouping of
// values, typed as a TTuple once type-check runs.
type VTuple struct {
	ExprBase
	Elems []Expression
}

func NewVTuple(elems []Expression) *VTuple {
	return &VTuple{ExprBase: ExprBase{Base: Base{Kind: KindVTuple}}, Elems: elems}
}

func (n *VTuple) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TypeLit constructs a value of Totype from Args: a struct literal
// (Args a mix of positional Expressions and NamedVal name:value
// pairs, reordered to field-declaration order by type-check), an
// array literal (`[e1, e2, ...]`), or a numeric literal being
// coerced in place. Struct-literal type-check substitutes a typed
// placeholder expression for a field that has neither a value nor a
// default, so a single missing field is reported without poisoning
// every other field's diagnostics; a NamedVal that names no field is
// reported and dropped (see TypeCheckPass.checkStructLit in package
// passes).
type TypeLit struct {
	ExprBase
	Totype TypeExpression
	Args   []Expression
}

func NewTypeLit(totype TypeExpression, args []Expression) *TypeLit {
	return &TypeLit{ExprBase: ExprBase{Base: Base{Kind: KindTypeLit}}, Totype: totype, Args: args}
}

func (n *TypeLit) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Totype.String() + "[" + strings.Join(parts, ", ") + "]"
}
