package ast

// Ptr is a raw, permission-less pointer to a pointee type.
type Ptr struct {
	Base
	Pvtype TypeExpression
}

func NewPtr(pvtype TypeExpression) *Ptr {
	return &Ptr{Base: Base{Kind: KindPtr}, Pvtype: pvtype}
}

func (n *Ptr) typeExpressionNode() {}
func (n *Ptr) String() string      { return "*" + n.Pvtype.String() }

// Ref is a permissioned, lifetime-tracked reference to a pointee type.
// Perm and Life may be nil (meaning: infer/default).
type Ref struct {
	Base
	Pvtype TypeExpression
	Perm   *Perm
	Life   *Lifetime
	// Alloc names the allocator backing this reference, where
	// applicable (e.g. a heap allocator name); nil for stack/local
	// references.
	Alloc string
}

func NewRef(pvtype TypeExpression, perm *Perm) *Ref {
	return &Ref{Base: Base{Kind: KindRef}, Pvtype: pvtype, Perm: perm}
}

func (n *Ref) typeExpressionNode() {}
func (n *Ref) String() string {
	if n.Perm != nil {
		return "&" + n.Perm.String() + " " + n.Pvtype.String()
	}
	return "&" + n.Pvtype.String()
}

// ArrayRef is a fat pointer: a reference plus a runtime length, to an
// array's element type.
type ArrayRef struct {
	Base
	Pvtype TypeExpression
	Perm   *Perm
}

func NewArrayRef(pvtype TypeExpression, perm *Perm) *ArrayRef {
	return &ArrayRef{Base: Base{Kind: KindArrayRef}, Pvtype: pvtype, Perm: perm}
}

func (n *ArrayRef) typeExpressionNode() {}
func (n *ArrayRef) String() string      { return "&[]" + n.Pvtype.String() }

// VirtRef is a fat reference carrying a runtime tag: a reference to a
// trait, specialized at runtime to whichever concrete struct
// implements it. 'is' checks on a VirtRef-typed expression use the
// runtime tag to test for a specific implementing struct.
type VirtRef struct {
	Base
	Pvtype TypeExpression // the trait (a Struct with FlagTraitType set)
	Perm   *Perm
}

func NewVirtRef(pvtype TypeExpression, perm *Perm) *VirtRef {
	return &VirtRef{Base: Base{Kind: KindVirtRef}, Pvtype: pvtype, Perm: perm}
}

func (n *VirtRef) typeExpressionNode() {}
func (n *VirtRef) String() string      { return "&dyn " + n.Pvtype.String() }

// Deref is an explicit (or pass-inserted) dereference of a Ref or Ptr.
// The type-check pass also inserts Deref nodes automatically wherever a
// Ref value flows into a context expecting its pointee type (see
// TypeCheckPass.coerce in package passes and types.NeedsAutoDeref).
type Deref struct {
	ExprBase
	Exp Expression
}

func NewDeref(exp Expression) *Deref {
	return &Deref{ExprBase: ExprBase{Base: Base{Kind: KindDeref}}, Exp: exp}
}

func (n *Deref) String() string { return "*" + n.Exp.String() }
