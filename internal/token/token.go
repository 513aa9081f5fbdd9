// Package token defines the minimal position and token value types that
// the middle-end's IR nodes carry for diagnostics. The lexer and parser
// that produce these values are external collaborators (out of scope);
// this package exists only to give ast.Node a concrete lexpos handle.
package token

import "fmt"

// Position identifies a location in source text for diagnostics.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position has a sane line/column.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Token is the opaque lexpos handle attached to every IR node: the
// literal text the parser consumed to build the node, plus its
// position. Nodes constructed synthetically by a pass (e.g. an
// inserted coercion) reuse the position of the node they replace.
type Token struct {
	Literal string
	Pos     Position
}
