package testutil

import (
	"github.com/vertex-lang/vertex/internal/ast"
	"github.com/vertex-lang/vertex/internal/lexer/token"
)

const DefaultFilename = "test.vx"

func NewIdToken(name, filename string) *token.Token {
	if filename == "" {
		filename = DefaultFilename
	}
	return token.New([]byte(name), token.ID, token.NewPosition(filename, 1, 1))
}

func NewScalarType(name string) *ast.DataType {
	return ast.NewScalarType(NewIdToken(name, ""))
}

func NewIdExpr(name string) *ast.Node {
	return &ast.Node{
		Kind: ast.KIND_ID_EXPR,
		Node: &ast.IdExpr{Name: NewIdToken(name, "")},
	}
}

func NewIntLit(value int64) *ast.Node {
	return &ast.Node{
		Kind: ast.KIND_INT_LIT,
		Node: &ast.IntLit{Value: value},
	}
}
