package ast

import (
	"fmt"
	"strings"

	"github.com/vertex-lang/vertex/internal/lexer/token"
)

type IntLit struct {
	Value int64
	Tok   *token.Token
}

func (lit *IntLit) String() string {
	return fmt.Sprintf("%d", lit.Value)
}

// FloatLit covers both plain floats and scientific notation.
type FloatLit struct {
	Value float64
	Tok   *token.Token
}

func (lit *FloatLit) String() string {
	return string(lit.Tok.Lexeme)
}

type StringLit struct {
	// Decoded payload, escape sequences already resolved. Owned by
	// the node, independent of the source buffer.
	Value []byte
	// Delimiter character that opened and closed the literal
	Delim byte
	Tok   *token.Token
}

func (lit *StringLit) String() string {
	return fmt.Sprintf("%c%s%c", lit.Delim, lit.Value, lit.Delim)
}

type BoolLit struct {
	Value bool
	Tok   *token.Token
}

func (lit *BoolLit) String() string {
	return fmt.Sprintf("%v", lit.Value)
}

type FnCall struct {
	Name   *token.Token
	Serial bool
	Extern bool
	Args   []*Node
}

func (call *FnCall) String() string {
	return fmt.Sprintf("CALL: %s | Serial: %v | Extern: %v | %d arg(s)", call.Name, call.Serial, call.Extern, len(call.Args))
}

// InnerVar is a dotted member access chain with at least two
// identifier segments.
type InnerVar struct {
	Path []*token.Token
}

func (iv *InnerVar) String() string {
	var segments []string
	for _, segment := range iv.Path {
		segments = append(segments, segment.Name())
	}
	return strings.Join(segments, ".")
}

type IdExpr struct {
	Name *token.Token
}

func (idExpr IdExpr) String() string {
	return idExpr.Name.Name()
}
