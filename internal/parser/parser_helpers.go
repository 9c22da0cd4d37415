package parser

import (
	"github.com/vertex-lang/vertex/internal/ast"
	"github.com/vertex-lang/vertex/internal/diagnostics"
	"github.com/vertex-lang/vertex/internal/lexer"
)

const defaultFilename = "test.vx"

func FakeLoc(filename string) *ast.Loc {
	if filename == "" {
		filename = defaultFilename
	}
	return &ast.Loc{Name: filename}
}

func NewForTest(src, filename string) (*Parser, *diagnostics.Collector) {
	collector := diagnostics.New()
	lex := lexer.New(FakeLoc(filename), []byte(src), collector)
	return NewWithLex(lex, collector), collector
}

func ParseProgramFrom(src, filename string) (*ast.Program, error) {
	p, _ := NewForTest(src, filename)
	return p.ParseProgram()
}

func ParseExprFrom(expr, filename string) (*ast.Node, error) {
	p, _ := NewForTest(expr, filename)
	return p.parseExpr()
}

func ParseDataTypeFrom(src, filename string) (*ast.DataType, error) {
	p, _ := NewForTest(src, filename)
	return p.parseDataType()
}

func ParseModuleFrom(src, filename string) (*ast.Node, error) {
	p, _ := NewForTest(src, filename)
	p.skipNewlines()
	return p.parseTopLevelModule(p.lex.Peek())
}

func ParseFunctionBodyItemFrom(src, filename string) (*ast.Node, error) {
	p, _ := NewForTest(src, filename)
	p.skipNewlines()
	return p.parseFunctionBodyItem()
}
