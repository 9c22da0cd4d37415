package ast

import (
	"fmt"

	"github.com/vertex-lang/vertex/internal/lexer/token"
)

// Arg is one typed slot: a function parameter, a return value or a
// struct field.
type Arg struct {
	Name *token.Token
	Type *DataType
}

func (arg Arg) String() string {
	return fmt.Sprintf("Name: %v | Type: %v", arg.Name, arg.Type)
}

// Arg list for params, returns and struct bodies
type ArgList struct {
	Open  *token.Token
	Args  []*Arg
	Close *token.Token
}

func (argList ArgList) String() string {
	return fmt.Sprintf("%d arg(s)", len(argList.Args))
}
