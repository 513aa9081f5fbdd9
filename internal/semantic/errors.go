package semantic

import (
	"fmt"
	"strings"

	"github.com/conelang/conesema/internal/ast"
	"github.com/conelang/conesema/internal/errors"
	"github.com/conelang/conesema/internal/token"
)

// ErrorKind classifies a diagnostic raised by a pass. The set matches
// errorMsgNode's kind vocabulary: each pass raises one of these
// against the node it was examining when it found a problem, never a
// bare string.
type ErrorKind string

const (
	// ErrorInvType covers type mismatches: an expression's type does
	// not satisfy the context it appears in (assignment, call
	// argument, return value, operand of a typed operator).
	ErrorInvType ErrorKind = "invalid_type"
	// ErrorBadTerm covers a malformed expression term: a call to
	// something that is not callable, a field access on something
	// with no such field, a method-overload resolution that found no
	// match (an equal-cost tie is not an error: the earliest
	// declaration wins).
	ErrorBadTerm ErrorKind = "bad_term"
	// ErrorBadArray covers array-specific shape errors: a literal with
	// the wrong element count for a sized array type, a non-numeric
	// array size.
	ErrorBadArray ErrorKind = "bad_array"
	// ErrorNotPtr covers an operation that requires a reference/
	// pointer-shaped operand (dereference, cast requiring a
	// reference) applied to something that isn't one.
	ErrorNotPtr ErrorKind = "not_pointer"
	// ErrorNotTyped covers a declaration whose type cannot be
	// determined: a variable with neither a type annotation nor an
	// initializer.
	ErrorNotTyped ErrorKind = "not_typed"
	// ErrorDupName covers a name bound more than once in a scope that
	// does not permit redeclaration (anything other than a fresh
	// method overload).
	ErrorDupName ErrorKind = "duplicate_name"
	// ErrorGenErr is the catch-all for a condition that does not fit
	// any of the above (an unresolved name, a flow-analysis violation,
	// a malformed control-flow construct).
	ErrorGenErr ErrorKind = "error"
)

// SemanticError is a single diagnostic raised against a specific IR
// node.
type SemanticError struct {
	Kind    ErrorKind
	Message string
	Node    ast.Node
	Pos     token.Position
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos.String())
}

// AnalysisError aggregates every SemanticError raised across a
// compilation, in the order they were raised.
type AnalysisError struct {
	Errors []*SemanticError
}

func (e *AnalysisError) Error() string {
	if len(e.Errors) == 0 {
		return "semantic analysis failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("semantic error: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "semantic analysis failed with %d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ToCompilerError renders a SemanticError as a source-annotated
// errors.CompilerError for CLI display.
func (e *SemanticError) ToCompilerError(source, filename string) *errors.CompilerError {
	return errors.NewCompilerError(e.Pos, e.Message, source, filename)
}

// errorMsgNode constructs a diagnostic against node and returns it; it
// does not record it anywhere. PassContext.AddError calls it and
// appends the result to the context's error list, which PassManager
// consults to decide whether to skip later passes (see pass.go).
func errorMsgNode(node ast.Node, kind ErrorKind, format string, args ...interface{}) *SemanticError {
	return &SemanticError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Node:    node,
		Pos:     node.Pos(),
	}
}
