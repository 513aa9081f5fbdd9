package ast

import "strconv"

// IntNbr is a signed integer type of a given bit width (8/16/32/64).
type IntNbr struct {
	Base
	Bits uint8
}

func NewIntNbr(bits uint8) *IntNbr {
	return &IntNbr{Base: Base{Kind: KindIntNbr}, Bits: bits}
}

func (n *IntNbr) typeExpressionNode() {}
func (n *IntNbr) String() string      { return "i" + strconv.Itoa(int(n.Bits)) }

// UintNbr is an unsigned integer type of a given bit width.
type UintNbr struct {
	Base
	Bits uint8
	// Usize marks the abstract pointer-sized unsigned type, which the
	// cast size oracle treats as pointer-sized rather than as a real
	// bit width (spec.md §4.5.2).
	Usize bool
}

func NewUintNbr(bits uint8) *UintNbr {
	return &UintNbr{Base: Base{Kind: KindUintNbr}, Bits: bits}
}

func NewUsizeNbr() *UintNbr {
	return &UintNbr{Base: Base{Kind: KindUintNbr}, Usize: true}
}

func (n *UintNbr) typeExpressionNode() {}
func (n *UintNbr) String() string {
	if n.Usize {
		return "usize"
	}
	return "u" + strconv.Itoa(int(n.Bits))
}

// FloatNbr is a floating-point type of a given bit width (32/64).
type FloatNbr struct {
	Base
	Bits uint8
}

func NewFloatNbr(bits uint8) *FloatNbr {
	return &FloatNbr{Base: Base{Kind: KindFloatNbr}, Bits: bits}
}

func (n *FloatNbr) typeExpressionNode() {}
func (n *FloatNbr) String() string      { return "f" + strconv.Itoa(int(n.Bits)) }

// Bool is the boolean type.
type Bool struct{ Base }

func NewBool() *Bool { return &Bool{Base: Base{Kind: KindBool}} }

func (n *Bool) typeExpressionNode() {}
func (n *Bool) String() string      { return "Bool" }

// Void is the empty/unit type. Freshly constructed expression nodes do
// not point at it: their VType stays nil until type-check assigns one
// (see ExprBase).
type Void struct{ Base }

func NewVoid() *Void { return &Void{Base: Base{Kind: KindVoid}} }

func (n *Void) typeExpressionNode() {}
func (n *Void) String() string      { return "Void" }

// Perm names a reference permission (e.g. "uni", "mut", "imm", "const",
// "ro"). Permission *compatibility* rules live in internal/types; this
// node is just the syntactic carrier.
type Perm struct {
	Base
	Name string
}

func NewPerm(name string) *Perm { return &Perm{Base: Base{Kind: KindPerm}, Name: name} }

func (n *Perm) typeExpressionNode() {}
func (n *Perm) String() string      { return n.Name }

// Lifetime names a reference lifetime parameter. Lifetimes are carried
// through the IR but lifetime *inference* is not part of this
// middle-end's scope; it is carried as-is and no pass reads it.
type Lifetime struct {
	Base
	Name string
}

func NewLifetime(name string) *Lifetime { return &Lifetime{Base: Base{Kind: KindLifetime}, Name: name} }

func (n *Lifetime) typeExpressionNode() {}
func (n *Lifetime) String() string      { return n.Name }

// Sentinel instances shared across a compilation for the primitive
// types that have no parameters. The type-equality check does not
// depend on their identity: any two Bool (or Void) nodes compare as the
// same type (see types.IsSame).
var (
	BoolType = NewBool()
	VoidType = NewVoid()
)
