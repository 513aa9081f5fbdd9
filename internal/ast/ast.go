// Package ast defines the intermediate representation the middle-end
// walks: a tagged-variant tree over both expressions and types,
// produced by an external parser and consumed, pass by pass, until it
// is ready for an external code generator.
//
// Every concrete node type here corresponds to one tag in the closed
// enumeration from the node model: a numeric literal, a name use, a
// declaration, a control-flow construct, or a type. Dispatch across the
// tree is done with Go type switches rather than a single tagged
// struct — the idiomatic Go expression of the same sum-type idea — but
// every node still carries a NodeKind so a switch's default arm can
// name the offending node in a diagnostic instead of failing silently.
package ast

import "github.com/conelang/conesema/internal/token"

// Node is the base interface implemented by every IR element: every
// expression, statement, declaration, and type.
type Node interface {
	// TokenLiteral returns the literal text of the token the node was
	// built from (empty for nodes synthesized by a pass).
	TokenLiteral() string
	// Pos returns the node's source position handle, used only for
	// diagnostics.
	Pos() token.Position
	// String renders a short debug form; it is not the stable printer
	// format (see pkg/printer for that).
	String() string
	// NodeKind returns the node's tag.
	NodeKind() NodeKind
}

// Expression is any node that produces a value. Expression.Type is
// nil until the type-check pass assigns it; after a successful
// type-check it is always non-nil and points at a type node (or a
// TypeExpression that resolves to one).
type Expression interface {
	Node
	expressionNode()
	Type() TypeExpression
	SetType(TypeExpression)
}

// Statement is a node that performs an action without producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// TypeExpression is any node that denotes a type: a primitive numeric
// type, a reference/pointer variant, an aggregate (array/struct), a
// function signature, or an unresolved name-use that will be bound to
// one of those by name resolution.
type TypeExpression interface {
	Node
	typeExpressionNode()
}

// NodeKind discriminates every concrete node type. It exists purely so
// that printing and pass dispatch can name an unreachable case in an
// error rather than silently doing nothing with it.
type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Literals
	KindULit
	KindFLit
	KindBoolLit

	// Names
	KindNameUse
	KindNamedVal

	// Primitive types
	KindIntNbr
	KindUintNbr
	KindFloatNbr
	KindBool
	KindVoid
	KindPerm
	KindLifetime

	// Reference/pointer types
	KindPtr
	KindRef
	KindArrayRef
	KindVirtRef

	// Aggregate types
	KindArray
	KindStruct
	KindFieldDcl
	KindTTuple
	KindFnSig

	// Declarations
	KindVarDcl
	KindFnDcl

	// Control flow
	KindBlock
	KindIf
	KindLoop
	KindBreak
	KindContinue
	KindReturn
	KindBlockRet

	// Expressions
	KindAssign
	KindFnCall
	KindCast
	KindIs
	KindDeref
	KindLogicAnd
	KindLogicOr
	KindLogicNot
	KindVTuple
	KindTypeLit

	// Root
	KindModule
)

var kindNames = map[NodeKind]string{
	KindInvalid:  "Invalid",
	KindULit:     "ULit",
	KindFLit:     "FLit",
	KindBoolLit:  "BoolLit",
	KindNameUse:  "NameUse",
	KindNamedVal: "NamedVal",
	KindIntNbr:   "IntNbr",
	KindUintNbr:  "UintNbr",
	KindFloatNbr: "FloatNbr",
	KindBool:     "Bool",
	KindVoid:     "Void",
	KindPerm:     "Perm",
	KindLifetime: "Lifetime",
	KindPtr:      "Ptr",
	KindRef:      "Ref",
	KindArrayRef: "ArrayRef",
	KindVirtRef:  "VirtRef",
	KindArray:    "Array",
	KindStruct:   "Struct",
	KindFieldDcl: "FieldDcl",
	KindTTuple:   "TTuple",
	KindFnSig:    "FnSig",
	KindVarDcl:   "VarDcl",
	KindFnDcl:    "FnDcl",
	KindBlock:    "Block",
	KindIf:       "If",
	KindLoop:     "Loop",
	KindBreak:    "Break",
	KindContinue: "Continue",
	KindReturn:   "Return",
	KindBlockRet: "BlockRet",
	KindAssign:   "Assign",
	KindFnCall:   "FnCall",
	KindCast:     "Cast",
	KindIs:       "Is",
	KindDeref:    "Deref",
	KindLogicAnd: "LogicAnd",
	KindLogicOr:  "LogicOr",
	KindLogicNot: "LogicNot",
	KindVTuple:   "VTuple",
	KindTypeLit:  "TypeLit",
	KindModule:   "Module",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownKind"
}

// Flags is the 16-bit bitset every node carries alongside its tag.
type Flags uint16

const (
	// FlagAsIf marks a Cast as a reinterpret cast rather than a
	// value-preserving conversion.
	FlagAsIf Flags = 1 << iota
	// FlagMethFld marks a FnDcl as a method field of a type (as
	// opposed to a free function). Overload chaining does not consult
	// it: name resolution chains same-named functions whether or not
	// they carry it.
	FlagMethFld
	// FlagTraitType marks a Struct as a pure trait (no storage of its
	// own, only a method contract).
	FlagTraitType
	// FlagHasTagField marks a Struct as carrying a hidden discriminant
	// field, the precondition for runtime 'is' checks against it.
	FlagHasTagField
	// FlagSameSize marks a Struct as eligible for reinterpret casts to
	// or from another same-sized struct.
	FlagSameSize
	// FlagIsTagField marks a FieldDcl as the hidden discriminant field
	// injected by a sum-type-style Struct.
	FlagIsTagField
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Base is embedded by every concrete node type. It supplies the common
// Node methods (TokenLiteral, Pos, NodeKind) and the flag bitset so
// individual node structs only need to add their own payload fields.
type Base struct {
	Tok   token.Token
	Kind  NodeKind
	Flags Flags
	// NID is the node's id; zero means unassigned. No constructor in
	// this package assigns one, so it stays zero unless a caller sets it.
	NID uint32
}

func (b *Base) TokenLiteral() string { return b.Tok.Literal }
func (b *Base) Pos() token.Position  { return b.Tok.Pos }
func (b *Base) NodeKind() NodeKind   { return b.Kind }
func (b *Base) HasFlag(f Flags) bool { return b.Flags.Has(f) }
func (b *Base) SetFlag(f Flags)      { b.Flags |= f }
func (b *Base) ClearFlag(f Flags)    { b.Flags &^= f }

// ExprBase is embedded by every expression node. VType is nil when the
// node is constructed and is set by the type-check pass.
type ExprBase struct {
	Base
	VType TypeExpression
}

func (e *ExprBase) expressionNode()          {}
func (e *ExprBase) Type() TypeExpression     { return e.VType }
func (e *ExprBase) SetType(t TypeExpression) { e.VType = t }

// Module is the root node: a single compilation unit's top-level
// declarations, in source order. Multi-module/cross-file resolution is
// out of scope (spec.md §1 Non-goals).
type Module struct {
	Base
	Decls []Statement
}

func NewModule() *Module {
	return &Module{Base: Base{Kind: KindModule}}
}

func (m *Module) statementNode() {}
func (m *Module) String() string { return "module" }
