package ast

// VarDcl declares a local or module-level variable. Function
// parameters are not VarDcls: they are the FieldDcl entries of an FnSig.
// Vtype is nil until either the parser supplied an annotation or
// type-check inferred one from Init.
type VarDcl struct {
	Base
	NameStr string
	Vtype   TypeExpression
	Init    Expression
	Perm    *Perm
}

func NewVarDcl(name string, vtype TypeExpression, init Expression) *VarDcl {
	return &VarDcl{Base: Base{Kind: KindVarDcl}, NameStr: name, Vtype: vtype, Init: init}
}

func (n *VarDcl) statementNode() {}
func (n *VarDcl) String() string { return "let " + n.NameStr }

// FnDcl declares a function or, when FlagMethFld is set, a method
// field of a Struct. Overloaded methods of the same name on the same
// struct are chained through NextNode, mirroring the source
// compiler's singly-linked overload-set representation: name
// resolution binds a NameUse to the chain head, and overload
// resolution walks NextNode to find the best match for a given call's
// argument list.
type FnDcl struct {
	Base
	NameStr string
	Sig     *FnSig
	Body    *Block
	// Owner is the Struct this method is a field of; nil for free
	// functions.
	Owner *Struct
	// NextNode is the next overload of the same name on the same
	// owner, or nil at the end of the chain.
	NextNode *FnDcl
}

func NewFnDcl(name string, sig *FnSig, body *Block) *FnDcl {
	return &FnDcl{Base: Base{Kind: KindFnDcl}, NameStr: name, Sig: sig, Body: body}
}

func (n *FnDcl) statementNode() {}
func (n *FnDcl) String() string { return "fn " + n.NameStr }

// Overloads returns the overload chain starting at (and including) n,
// in declaration order.
func (n *FnDcl) Overloads() []*FnDcl {
	var out []*FnDcl
	for f := n; f != nil; f = f.NextNode {
		out = append(out, f)
	}
	return out
}
