package ast

import "strings"

// Array is a fixed-size, inline array type: Size elements of Elem,
// stored contiguously with no indirection of their own.
type Array struct {
	Base
	Elem TypeExpression
	Size uint64
}

func NewArray(elem TypeExpression, size uint64) *Array {
	return &Array{Base: Base{Kind: KindArray}, Elem: elem, Size: size}
}

func (n *Array) typeExpressionNode() {}
func (n *Array) String() string      { return "[" + n.Elem.String() + "]" }

// FieldDcl is one field of a Struct: a name, its declared type, and
// (for tagged variants) an optional tag value this field's owning
// struct variant corresponds to. FlagIsTagField marks the field
// injected by the compiler to carry a sum type's runtime tag.
type FieldDcl struct {
	Base
	NameStr string
	Vtype   TypeExpression
	// Default is the value a struct literal supplies for this field
	// when the literal's argument list omits it; nil means the field
	// has no default and omitting it is an error (spec.md §4.5.3).
	Default Expression
	// TagValue, when non-nil, gives the discriminant value this field's
	// enclosing Struct variant is selected by. Only meaningful on
	// structs with FlagHasTagField set on them elsewhere in the
	// type's variant chain.
	TagValue *uint64
}

func NewFieldDcl(name string, vtype TypeExpression) *FieldDcl {
	return &FieldDcl{Base: Base{Kind: KindFieldDcl}, NameStr: name, Vtype: vtype}
}

func (n *FieldDcl) String() string { return n.NameStr + ": " + n.Vtype.String() }

// Struct is a product (or, with FlagHasTagField, tagged-sum) aggregate
// type: named fields plus method declarations hung off it via FnDcl's
// overload chain. FlagTraitType marks a pure trait: a Struct with no
// fields of its own, used only as a VirtRef pointee and 'is' target.
// FlagSameSize marks two same-shape structs eligible for reinterpret
// casts into one another.
type Struct struct {
	Base
	NameStr string
	Fields  []*FieldDcl
	// Methods holds the head of each distinctly-named method's overload
	// chain (see FnDcl.NextNode).
	Methods []*FnDcl
	// Implements lists the trait Structs this Struct has been declared
	// to implement, consulted by 'is' checks against a VirtRef of a
	// trait type and by method-call resolution through a VirtRef.
	Implements []*Struct
}

func NewStruct(name string) *Struct {
	return &Struct{Base: Base{Kind: KindStruct}, NameStr: name}
}

func (n *Struct) typeExpressionNode() {}

// statementNode lets a Struct type declaration appear directly among
// a Module's (or a Block's) top-level statements, alongside VarDcl and
// FnDcl.
func (n *Struct) statementNode() {}
func (n *Struct) String() string { return n.NameStr }

// FieldByName returns the named field, or nil.
func (n *Struct) FieldByName(name string) *FieldDcl {
	for _, f := range n.Fields {
		if f.NameStr == name {
			return f
		}
	}
	return nil
}

// MethodByName returns the head of the named method's overload chain,
// or nil.
func (n *Struct) MethodByName(name string) *FnDcl {
	for _, m := range n.Methods {
		if m.NameStr == name {
			return m
		}
	}
	return nil
}

// TTuple is an anonymous, positional product type: an ordered list of
// element types with no field names.
type TTuple struct {
	Base
	Elems []TypeExpression
}

func NewTTuple(elems []TypeExpression) *TTuple {
	return &TTuple{Base: Base{Kind: KindTTuple}, Elems: elems}
}

func (n *TTuple) typeExpressionNode() {}
func (n *TTuple) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FnSig is a function signature type: parameter types (each a
// *FieldDcl so parameters may carry names for diagnostics) and a
// tuple of return types. A single-return function still uses a
// one-element Rettypes slice; multi-value return uses more than one.
type FnSig struct {
	Base
	Params   []*FieldDcl
	Rettypes []TypeExpression
	Variadic bool
}

func NewFnSig(params []*FieldDcl, rettypes []TypeExpression) *FnSig {
	return &FnSig{Base: Base{Kind: KindFnSig}, Params: params, Rettypes: rettypes}
}

func (n *FnSig) typeExpressionNode() {}
func (n *FnSig) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.String()
	}
	rets := make([]string, len(n.Rettypes))
	for i, r := range n.Rettypes {
		rets[i] = r.String()
	}
	return "fn(" + strings.Join(parts, ", ") + ") -> (" + strings.Join(rets, ", ") + ")"
}
