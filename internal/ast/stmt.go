package ast

import (
	"fmt"

	"github.com/vertex-lang/vertex/internal/lexer/token"
)

// AssignStmt binds an expression to a name, or evaluates a bare
// expression for effect when Name is nil (e.g. a call statement).
type AssignStmt struct {
	Name *token.Token
	Expr *Node
}

func (assign AssignStmt) String() string {
	if assign.Name == nil {
		return fmt.Sprintf("EXPR STMT: %v", assign.Expr)
	}
	return fmt.Sprintf("ASSIGN: %s = %v", assign.Name, assign.Expr)
}

func (assign *AssignStmt) IsBare() bool {
	return assign.Name == nil
}
