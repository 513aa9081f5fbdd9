package ast

import "strconv"

// ULit is an unsigned integer literal. Following the source compiler's
// convention, every non-negative integer literal starts life as a
// ULit; type-check coerces it to whichever integer type the surrounding
// context expects (signed or unsigned). It does not coerce to a float
// type; that takes an explicit cast.
type ULit struct {
	ExprBase
	Value uint64
}

func NewULit(value uint64) *ULit {
	return &ULit{ExprBase: ExprBase{Base: Base{Kind: KindULit}}, Value: value}
}

func (n *ULit) String() string { return strconv.FormatUint(n.Value, 10) }

// FLit is a floating-point literal.
type FLit struct {
	ExprBase
	Value float64
}

func NewFLit(value float64) *FLit {
	return &FLit{ExprBase: ExprBase{Base: Base{Kind: KindFLit}}, Value: value}
}

func (n *FLit) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// BoolLit is a boolean literal (true/false).
type BoolLit struct {
	ExprBase
	Value bool
}

func NewBoolLit(value bool) *BoolLit {
	return &BoolLit{ExprBase: ExprBase{Base: Base{Kind: KindBoolLit}}, Value: value}
}

func (n *BoolLit) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}
