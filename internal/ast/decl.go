package ast

import (
	"fmt"

	"github.com/vertex-lang/vertex/internal/lexer/token"
)

// ModuleDecl is a named namespace. Its body holds nested modules,
// structs and functions, in source order.
type ModuleDecl struct {
	Name   *token.Token
	Export bool
	Body   []*Node
}

func (mod ModuleDecl) String() string {
	return fmt.Sprintf("MODULE: %s | Export: %v | Body: %d node(s)", mod.Name, mod.Export, len(mod.Body))
}

type StructDecl struct {
	Name   *token.Token
	Export bool
	Fields *ArgList
}

func (st StructDecl) String() string {
	return fmt.Sprintf("STRUCT: %s | Export: %v | Fields: %s", st.Name, st.Export, st.Fields)
}

// FnDecl is a function definition. Its body holds local structs,
// nested functions and assignment statements, in source order.
type FnDecl struct {
	Name   *token.Token
	Export bool
	Serial bool
	Params *ArgList
	Return *ArgList
	Body   []*Node
}

func (fnDecl FnDecl) String() string {
	return fmt.Sprintf(
		"FUNCTION: %s | Export: %v | Serial: %v | Params: %s | Return: %s | Body: %d node(s)",
		fnDecl.Name,
		fnDecl.Export,
		fnDecl.Serial,
		fnDecl.Params,
		fnDecl.Return,
		len(fnDecl.Body),
	)
}
