// Package ast defines the abstract syntax tree (AST) for the Vertex
// definition language.
package ast

import "fmt"

type NodeKind int

const (
	DECL_START NodeKind = iota // declaration node start delimiter

	KIND_MODULE_DECL
	KIND_STRUCT_DECL
	KIND_FN_DECL

	DECL_END // declaration node end delimiter

	STMT_START // statement node start delimiter
	KIND_ASSIGN_STMT
	STMT_END // statement node end delimiter

	EXPR_START // expression node start delimiter
	KIND_INT_LIT
	KIND_FLOAT_LIT
	KIND_STRING_LIT
	KIND_BOOL_LIT
	KIND_FN_CALL
	KIND_INNER_VAR
	KIND_ID_EXPR
	EXPR_END // expression node end delimiter
)

type Node struct {
	Kind NodeKind
	Node any
}

func (n *Node) IsDecl() bool {
	return n.Kind > DECL_START && n.Kind < DECL_END
}

func (n *Node) IsStmt() bool {
	return n.Kind > STMT_START && n.Kind < STMT_END
}

func (n *Node) IsExpr() bool {
	return n.Kind > EXPR_START && n.Kind < EXPR_END
}

func (n *Node) IsId() bool {
	return n.Kind == KIND_ID_EXPR
}

func (n *Node) String() string {
	switch n.Kind {
	case KIND_MODULE_DECL:
		return "KIND_MODULE_DECL"
	case KIND_STRUCT_DECL:
		return "KIND_STRUCT_DECL"
	case KIND_FN_DECL:
		return "KIND_FN_DECL"
	case KIND_ASSIGN_STMT:
		return "KIND_ASSIGN_STMT"
	case KIND_INT_LIT:
		return "KIND_INT_LIT"
	case KIND_FLOAT_LIT:
		return "KIND_FLOAT_LIT"
	case KIND_STRING_LIT:
		return "KIND_STRING_LIT"
	case KIND_BOOL_LIT:
		return "KIND_BOOL_LIT"
	case KIND_FN_CALL:
		return "KIND_FN_CALL"
	case KIND_INNER_VAR:
		return "KIND_INNER_VAR"
	case KIND_ID_EXPR:
		return "KIND_ID_EXPR"
	default:
		return fmt.Sprintf("Unknown Node Kind: %v", n.Kind)
	}
}
