// Package printer renders the post-pass IR into the stable,
// parenthesized debug form described by spec.md §6: a format precise
// enough for golden-output testing across pipeline runs, not a
// reparsable source-code rendering (there is no lexer/parser in this
// module's scope to round-trip it through).
package printer

import (
	"strconv"
	"strings"

	"github.com/conelang/conesema/internal/ast"
)

// Style picks between a single-line rendering (useful for embedding a
// sub-expression in an error message) and the indented, multi-line
// rendering spec.md §6 describes for blocks and if/elif/else chains.
type Style int

const (
	StyleCompact Style = iota
	StyleIndented
)

// Options configures a Printer. IndentWidth is the number of spaces
// one indentation level advances by in StyleIndented; it defaults to
// 4 (matching spec.md §6's "every four levels" vertical-bar rule)
// when zero.
type Options struct {
	Style       Style
	IndentWidth int
}

// Printer renders ast.Node trees into the stable textual form.
type Printer struct {
	opts  Options
	depth int
}

// New creates a Printer with the given options.
func New(opts Options) *Printer {
	if opts.IndentWidth == 0 {
		opts.IndentWidth = 4
	}
	return &Printer{opts: opts}
}

// Print renders node. A nil node renders as the empty string.
func (p *Printer) Print(node ast.Node) string {
	if node == nil {
		return ""
	}
	var b strings.Builder
	p.write(&b, node)
	return b.String()
}

// indent returns the current line prefix: every fourth level renders
// a vertical bar in place of its leading space, so a reader can count
// nesting depth at a glance in a deeply nested tree (spec.md §6:
// "Indentation uses vertical-bar markers every four levels").
func (p *Printer) indent() string {
	var b strings.Builder
	for level := 1; level <= p.depth; level++ {
		if level%4 == 0 {
			b.WriteString("|")
			b.WriteString(strings.Repeat(" ", p.opts.IndentWidth-1))
		} else {
			b.WriteString(strings.Repeat(" ", p.opts.IndentWidth))
		}
	}
	return b.String()
}

func (p *Printer) write(b *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.ULit:
		b.WriteString(strconv.FormatUint(n.Value, 10))
	case *ast.FLit:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *ast.BoolLit:
		if n.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *ast.NameUse:
		b.WriteString(n.NameStr)
	case *ast.NamedVal:
		b.WriteString(n.NameStr)
		b.WriteString(": ")
		p.write(b, n.Val)
	case *ast.Assign:
		p.write(b, n.Lhs)
		b.WriteString(" = ")
		p.write(b, n.Rhs)
	case *ast.FnCall:
		if n.Obj != nil {
			p.write(b, n.Obj)
			b.WriteString(".")
		}
		p.write(b, n.Fn)
		b.WriteString("(")
		p.writeExprList(b, n.Args)
		b.WriteString(")")
	case *ast.Cast:
		if n.HasFlag(ast.FlagAsIf) {
			b.WriteString("(asif, ")
		} else {
			b.WriteString("(cast, ")
		}
		p.write(b, n.Totype)
		b.WriteString(", ")
		p.write(b, n.Exp)
		b.WriteString(")")
	case *ast.Is:
		b.WriteString("(is, ")
		p.write(b, n.Totype)
		b.WriteString(", ")
		p.write(b, n.Exp)
		b.WriteString(")")
	case *ast.Deref:
		b.WriteString("*")
		p.write(b, n.Exp)
	case *ast.LogicAnd:
		p.write(b, n.Lhs)
		b.WriteString(" && ")
		p.write(b, n.Rhs)
	case *ast.LogicOr:
		p.write(b, n.Lhs)
		b.WriteString(" || ")
		p.write(b, n.Rhs)
	case *ast.LogicNot:
		b.WriteString("!")
		p.write(b, n.Exp)
	case *ast.VTuple:
		b.WriteString("(")
		p.writeExprList(b, n.Elems)
		b.WriteString(")")
	case *ast.TypeLit:
		if _, isArray := n.Totype.(*ast.Array); isArray {
			b.WriteString("[")
			p.writeExprList(b, n.Args)
			b.WriteString("]")
			return
		}
		p.write(b, n.Totype)
		b.WriteString("[")
		p.writeExprList(b, n.Args)
		b.WriteString("]")
	case *ast.Block:
		p.writeBlock(b, n)
	case *ast.If:
		p.writeIf(b, n)
	case *ast.Loop:
		b.WriteString("loop")
		p.writeBlockOnNewLine(b, n.Body)
	case *ast.Break:
		b.WriteString("break")
		if n.Value != nil {
			b.WriteString(" ")
			p.write(b, n.Value)
		}
	case *ast.Continue:
		b.WriteString("continue")
	case *ast.Return:
		if n.IsBlockRet {
			p.writeExprList(b, n.Values)
			return
		}
		b.WriteString("return")
		if len(n.Values) > 0 {
			b.WriteString(" ")
			p.writeExprList(b, n.Values)
		}
	case *ast.ExprStmt:
		p.write(b, n.X)
	case *ast.VarDcl:
		b.WriteString("let ")
		b.WriteString(n.NameStr)
		if n.Vtype != nil {
			b.WriteString(" ")
			p.write(b, n.Vtype)
		}
		if n.Init != nil {
			b.WriteString(" = ")
			p.write(b, n.Init)
		}
	case *ast.FnDcl:
		p.writeFnDcl(b, n)
	case *ast.Struct:
		p.writeStruct(b, n)
	case *ast.FieldDcl:
		b.WriteString(n.NameStr)
		b.WriteString(" ")
		p.write(b, n.Vtype)
	case *ast.Module:
		for i, d := range n.Decls {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(p.indent())
			p.write(b, d)
		}
	case ast.TypeExpression:
		p.writeType(b, n)
	default:
		b.WriteString(node.String())
	}
}

func (p *Printer) writeType(b *strings.Builder, t ast.TypeExpression) {
	switch n := t.(type) {
	case *ast.IntNbr:
		b.WriteString("i")
		b.WriteString(strconv.Itoa(int(n.Bits)))
	case *ast.UintNbr:
		if n.Usize {
			b.WriteString("usize")
		} else {
			b.WriteString("u")
			b.WriteString(strconv.Itoa(int(n.Bits)))
		}
	case *ast.FloatNbr:
		b.WriteString("f")
		b.WriteString(strconv.Itoa(int(n.Bits)))
	case *ast.Bool:
		b.WriteString("bool")
	case *ast.Void:
		b.WriteString("void")
	case *ast.Ptr:
		b.WriteString("*")
		p.write(b, n.Pvtype)
	case *ast.Ref:
		b.WriteString("&")
		p.write(b, n.Pvtype)
	case *ast.ArrayRef:
		b.WriteString("&[]")
		p.write(b, n.Pvtype)
	case *ast.VirtRef:
		b.WriteString("&dyn ")
		p.write(b, n.Pvtype)
	case *ast.Array:
		b.WriteString("[")
		p.write(b, n.Elem)
		b.WriteString(";")
		b.WriteString(strconv.FormatUint(n.Size, 10))
		b.WriteString("]")
	case *ast.TTuple:
		b.WriteString("(")
		for i, e := range n.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b, e)
		}
		b.WriteString(")")
	case *ast.FnSig:
		b.WriteString("fn(")
		for i, param := range n.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b, param)
		}
		b.WriteString(")")
		if len(n.Rettypes) > 0 {
			b.WriteString(" -> ")
			for i, r := range n.Rettypes {
				if i > 0 {
					b.WriteString(", ")
				}
				p.write(b, r)
			}
		}
	default:
		b.WriteString(t.String())
	}
}

func (p *Printer) writeExprList(b *strings.Builder, exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(",")
		}
		p.write(b, e)
	}
}

func (p *Printer) writeBlock(b *strings.Builder, blk *ast.Block) {
	if p.opts.Style == StyleCompact {
		b.WriteString("{")
		for i, s := range blk.Stmts {
			if i > 0 {
				b.WriteString("; ")
			}
			p.write(b, s)
		}
		b.WriteString("}")
		return
	}
	p.depth++
	for _, s := range blk.Stmts {
		b.WriteString("\n")
		b.WriteString(p.indent())
		p.write(b, s)
	}
	p.depth--
}

func (p *Printer) writeBlockOnNewLine(b *strings.Builder, blk *ast.Block) {
	if p.opts.Style == StyleCompact {
		b.WriteString(" ")
		p.writeBlock(b, blk)
		return
	}
	p.writeBlock(b, blk)
}

// writeIf renders spec.md §6's literal format: `if <cond> \n <block>
// \n elif <cond> \n <block> \n else \n <block>`.
func (p *Printer) writeIf(b *strings.Builder, n *ast.If) {
	for i, cond := range n.Conds {
		if i == 0 {
			b.WriteString("if ")
		} else {
			if p.opts.Style == StyleIndented {
				b.WriteString("\n")
				b.WriteString(p.indent())
			} else {
				b.WriteString(" ")
			}
			b.WriteString("elif ")
		}
		p.write(b, cond)
		p.writeBlockOnNewLine(b, n.Blocks[i])
	}
	if n.Else != nil {
		if p.opts.Style == StyleIndented {
			b.WriteString("\n")
			b.WriteString(p.indent())
		} else {
			b.WriteString(" ")
		}
		b.WriteString("else")
		p.writeBlockOnNewLine(b, n.Else)
	}
}

func (p *Printer) writeFnDcl(b *strings.Builder, fn *ast.FnDcl) {
	b.WriteString("fn ")
	b.WriteString(fn.NameStr)
	b.WriteString("(")
	for i, param := range fn.Sig.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		p.write(b, param)
	}
	b.WriteString(")")
	if len(fn.Sig.Rettypes) > 0 {
		b.WriteString(" -> ")
		for i, r := range fn.Sig.Rettypes {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b, r)
		}
	}
	if fn.Body != nil {
		b.WriteString(" ")
		if p.opts.Style == StyleIndented {
			b.WriteString("{")
			p.writeBlock(b, fn.Body)
			b.WriteString("\n")
			b.WriteString(p.indent())
			b.WriteString("}")
		} else {
			p.writeBlock(b, fn.Body)
		}
	}
}

func (p *Printer) writeStruct(b *strings.Builder, st *ast.Struct) {
	b.WriteString("struct ")
	b.WriteString(st.NameStr)
	b.WriteString(" { ")
	for i, f := range st.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		p.write(b, f)
	}
	b.WriteString(" }")
}
