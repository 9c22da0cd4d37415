package parser

import (
	"fmt"
	"strconv"

	"github.com/vertex-lang/vertex/internal/ast"
	"github.com/vertex-lang/vertex/internal/diagnostics"
	"github.com/vertex-lang/vertex/internal/lexer"
	"github.com/vertex-lang/vertex/internal/lexer/token"
)

// Bound on module/function/struct/type/expression nesting so that
// adversarial input fails with a diagnostic instead of exhausting the
// goroutine stack.
const DefaultMaxDepth = 512

type Parser struct {
	lex       *lexer.Lexer
	collector *diagnostics.Collector

	depth    int
	maxDepth int
}

func New(collector *diagnostics.Collector) *Parser {
	parser := new(Parser)
	parser.lex = nil
	parser.collector = collector
	parser.maxDepth = DefaultMaxDepth
	return parser
}

func NewWithLex(lex *lexer.Lexer, collector *diagnostics.Collector) *Parser {
	return &Parser{lex: lex, collector: collector, maxDepth: DefaultMaxDepth}
}

func (p *Parser) SetMaxDepth(maxDepth int) {
	if maxDepth > 0 {
		p.maxDepth = maxDepth
	}
}

// Parse consumes one in-memory source unit end to end and returns the
// Program root. The src buffer must not be mutated while parsing is in
// flight; identifier lexemes in the returned tree alias it.
func Parse(loc *ast.Loc, src []byte, collector *diagnostics.Collector) (*ast.Program, error) {
	lex := lexer.New(loc, src, collector)
	p := NewWithLex(lex, collector)
	return p.ParseProgram()
}

func (p *Parser) ParseFileAsProgram(lex *lexer.Lexer) (*ast.Program, error) {
	p.lex = lex
	return p.ParseProgram()
}

// ParseProgram anchors the whole input: zero or more top-level module
// declarations followed by end of file. Anything else is unconsumed
// trailing content.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Loc: p.lex.Loc}

	for {
		p.skipNewlines()

		tok := p.lex.Peek()
		if tok.Kind == token.EOF {
			break
		}

		module, err := p.parseTopLevelModule(tok)
		if err != nil {
			return nil, err
		}
		program.Modules = append(program.Modules, module)
	}

	return program, nil
}

func (p *Parser) parseTopLevelModule(tok *token.Token) (*ast.Node, error) {
	if tok.Kind != token.ID {
		return nil, p.reportExpected(tok, diagnostics.TRAILING_CONTENT_ERROR, "module declaration")
	}

	name := p.lex.Next()

	equal := p.lex.Peek()
	if equal.Kind != token.EQUAL {
		return nil, p.reportExpected(equal, diagnostics.TRAILING_CONTENT_ERROR, "'='")
	}
	p.lex.Skip()

	export := p.accept(token.EXPORT)

	// Only modules may appear at depth zero
	kw := p.lex.Peek()
	if kw.Kind != token.MOD {
		return nil, p.reportExpected(kw, diagnostics.STRUCTURAL_ERROR, "mod")
	}

	return p.parseModuleTail(name, export)
}

// parseModuleTail parses "mod { ModuleBody }" after the name, '=' and
// optional export keyword were consumed.
func (p *Parser) parseModuleTail(name *token.Token, export bool) (*ast.Node, error) {
	if err := p.enter(name.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	kw, ok := p.expect(token.MOD)
	if !ok {
		return nil, p.reportExpected(kw, diagnostics.STRUCTURAL_ERROR, "mod")
	}

	openCurly, ok := p.expect(token.OPEN_CURLY)
	if !ok {
		return nil, p.reportExpected(openCurly, diagnostics.STRUCTURAL_ERROR, "'{'")
	}

	module := &ast.ModuleDecl{Name: name, Export: export}

	for {
		p.skipNewlines()

		if p.lex.NextIs(token.CLOSE_CURLY) {
			break
		}
		if p.lex.NextIs(token.EOF) {
			return nil, p.reportUnclosed(openCurly)
		}

		item, err := p.parseModuleItem()
		if err != nil {
			return nil, err
		}
		module.Body = append(module.Body, item)

		// Structs and functions must end their line; a nested module
		// close brace needs no terminator
		if item.Kind != ast.KIND_MODULE_DECL {
			if err := p.expectEndLine(); err != nil {
				return nil, err
			}
		}
	}

	p.lex.Skip() // }

	return &ast.Node{Kind: ast.KIND_MODULE_DECL, Node: module}, nil
}

// parseModuleItem parses one "Name = [export] mod|struct|function"
// entry of a module body.
func (p *Parser) parseModuleItem() (*ast.Node, error) {
	name, ok := p.expect(token.ID)
	if !ok {
		return nil, p.reportExpected(name, diagnostics.STRUCTURAL_ERROR, "declaration name")
	}

	equal, ok := p.expect(token.EQUAL)
	if !ok {
		return nil, p.reportExpected(equal, diagnostics.STRUCTURAL_ERROR, "'='")
	}

	export := p.accept(token.EXPORT)

	tok := p.lex.Peek()
	switch tok.Kind {
	case token.MOD:
		return p.parseModuleTail(name, export)
	case token.STRUCT:
		return p.parseStructTail(name, export)
	case token.SERIAL, token.FUNCTION:
		return p.parseFunctionTail(name, export)
	default:
		return nil, p.reportExpected(tok, diagnostics.STRUCTURAL_ERROR, "mod, struct or function")
	}
}

// parseStructTail parses "struct { StructBody }" after the name, '='
// and optional export keyword were consumed.
func (p *Parser) parseStructTail(name *token.Token, export bool) (*ast.Node, error) {
	if err := p.enter(name.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	kw, ok := p.expect(token.STRUCT)
	if !ok {
		return nil, p.reportExpected(kw, diagnostics.STRUCTURAL_ERROR, "struct")
	}

	openCurly, ok := p.expect(token.OPEN_CURLY)
	if !ok {
		return nil, p.reportExpected(openCurly, diagnostics.STRUCTURAL_ERROR, "'{'")
	}

	fields := &ast.ArgList{Open: openCurly}

	for {
		p.skipNewlines()

		if p.lex.NextIs(token.CLOSE_CURLY) {
			break
		}
		if p.lex.NextIs(token.EOF) {
			return nil, p.reportUnclosed(openCurly)
		}

		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		fields.Args = append(fields.Args, arg)

		if err := p.expectEndLine(); err != nil {
			return nil, err
		}
	}

	closeCurly := p.lex.Next()
	fields.Close = closeCurly

	structDecl := &ast.StructDecl{Name: name, Export: export, Fields: fields}
	return &ast.Node{Kind: ast.KIND_STRUCT_DECL, Node: structDecl}, nil
}

// parseFunctionTail parses "[serial] function { Params Return
// FunctionBody }" after the name, '=' and optional export keyword were
// consumed.
func (p *Parser) parseFunctionTail(name *token.Token, export bool) (*ast.Node, error) {
	if err := p.enter(name.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	serial := p.accept(token.SERIAL)

	kw, ok := p.expect(token.FUNCTION)
	if !ok {
		return nil, p.reportExpected(kw, diagnostics.STRUCTURAL_ERROR, "function")
	}

	openCurly, ok := p.expect(token.OPEN_CURLY)
	if !ok {
		return nil, p.reportExpected(openCurly, diagnostics.STRUCTURAL_ERROR, "'{'")
	}
	p.skipNewlines()

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if err := p.expectEndLine(); err != nil {
		return nil, err
	}
	p.skipNewlines()

	ret, err := p.parseReturn()
	if err != nil {
		return nil, err
	}
	if err := p.expectEndLine(); err != nil {
		return nil, err
	}

	fnDecl := &ast.FnDecl{
		Name:   name,
		Export: export,
		Serial: serial,
		Params: params,
		Return: ret,
	}

	for {
		p.skipNewlines()

		if p.lex.NextIs(token.CLOSE_CURLY) {
			break
		}
		if p.lex.NextIs(token.EOF) {
			return nil, p.reportUnclosed(openCurly)
		}

		item, err := p.parseFunctionBodyItem()
		if err != nil {
			return nil, err
		}
		fnDecl.Body = append(fnDecl.Body, item)

		// Assignments consume their own terminator; nested structs
		// and functions still need one after the closing brace
		if item.Kind != ast.KIND_ASSIGN_STMT {
			if err := p.expectEndLine(); err != nil {
				return nil, err
			}
		}
	}

	p.lex.Skip() // }

	return &ast.Node{Kind: ast.KIND_FN_DECL, Node: fnDecl}, nil
}

func (p *Parser) parseParams() (*ast.ArgList, error) {
	kw, ok := p.expect(token.PARAMS)
	if !ok {
		return nil, p.reportExpected(kw, diagnostics.STRUCTURAL_ERROR, "params")
	}

	equal, ok := p.expect(token.EQUAL)
	if !ok {
		return nil, p.reportExpected(equal, diagnostics.STRUCTURAL_ERROR, "'='")
	}

	return p.parseParenArgList()
}

func (p *Parser) parseReturn() (*ast.ArgList, error) {
	kw, ok := p.expect(token.RETURN)
	if !ok {
		return nil, p.reportExpected(kw, diagnostics.STRUCTURAL_ERROR, "return")
	}

	equal, ok := p.expect(token.EQUAL)
	if !ok {
		return nil, p.reportExpected(equal, diagnostics.STRUCTURAL_ERROR, "'='")
	}

	return p.parseParenArgList()
}

func (p *Parser) parseParenArgList() (*ast.ArgList, error) {
	openParen, ok := p.expect(token.OPEN_PAREN)
	if !ok {
		return nil, p.reportExpected(openParen, diagnostics.STRUCTURAL_ERROR, "'('")
	}

	argList := &ast.ArgList{Open: openParen}

	if !p.lex.NextIs(token.CLOSE_PAREN) {
		for {
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			argList.Args = append(argList.Args, arg)

			if !p.accept(token.COMMA) {
				break
			}
		}
	}

	closeParen := p.lex.Peek()
	if closeParen.Kind != token.CLOSE_PAREN {
		return nil, p.reportUnclosed(openParen)
	}
	p.lex.Skip()
	argList.Close = closeParen

	return argList, nil
}

func (p *Parser) parseArg() (*ast.Arg, error) {
	name, ok := p.expect(token.ID)
	if !ok {
		return nil, p.reportExpected(name, diagnostics.STRUCTURAL_ERROR, "argument name")
	}

	colon, ok := p.expect(token.COLON)
	if !ok {
		return nil, p.reportExpected(colon, diagnostics.STRUCTURAL_ERROR, "':'")
	}

	dtype, err := p.parseDataType()
	if err != nil {
		return nil, err
	}

	return &ast.Arg{Name: name, Type: dtype}, nil
}

// parseDataType parses a recursive type descriptor: a tuple, a map or
// a scalar with at most one suffix modifier. The choice commits as
// soon as an opening delimiter is consumed.
func (p *Parser) parseDataType() (*ast.DataType, error) {
	tok := p.lex.Peek()

	if err := p.enter(tok.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	switch tok.Kind {
	case token.OPEN_PAREN:
		openParen := p.lex.Next()

		var elems []*ast.DataType
		for {
			elem, err := p.parseDataType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)

			if !p.accept(token.COMMA) {
				break
			}
		}

		if !p.lex.NextIs(token.CLOSE_PAREN) {
			return nil, p.reportUnclosed(openParen)
		}
		p.lex.Skip()

		return ast.NewTupleType(elems), nil
	case token.OPEN_CURLY:
		openCurly := p.lex.Next()

		key, err := p.parseDataType()
		if err != nil {
			return nil, err
		}

		colon, ok := p.expect(token.COLON)
		if !ok {
			return nil, p.reportExpected(colon, diagnostics.STRUCTURAL_ERROR, "':'")
		}

		value, err := p.parseDataType()
		if err != nil {
			return nil, err
		}

		if !p.lex.NextIs(token.CLOSE_CURLY) {
			return nil, p.reportUnclosed(openCurly)
		}
		p.lex.Skip()

		return ast.NewMapType(key, value), nil
	case token.ID:
		name := p.lex.Next()
		dtype := ast.NewScalarType(name)
		scalar := dtype.T.(*ast.ScalarType)

		modifier := p.lex.Peek()
		switch modifier.Kind {
		case token.QUESTION:
			p.lex.Skip()
			scalar.Modifier = ast.MOD_NULLABLE
		case token.BANG:
			p.lex.Skip()
			scalar.Modifier = ast.MOD_NON_NULL
		case token.OPEN_BRACKET:
			openBracket := p.lex.Next()
			scalar.Modifier = ast.MOD_ARRAY
			scalar.Size = ast.ARRAY_UNSIZED

			if p.lex.NextIs(token.UNTYPED_INT) {
				sizeTok := p.lex.Next()
				size, err := arraySize(sizeTok)
				if err != nil {
					pos := sizeTok.Pos
					invalidArraySize := diagnostics.Diag{
						Kind: diagnostics.STRUCTURAL_ERROR,
						Pos:  pos,
						Message: fmt.Sprintf(
							"%s:%d:%d: invalid array size '%s'",
							pos.Filename,
							pos.Line,
							pos.Column,
							sizeTok.Lexeme,
						),
					}
					p.collector.ReportAndSave(invalidArraySize)
					return nil, diagnostics.PARSE_ERROR_FOUND
				}
				scalar.Size = size
			}

			if !p.lex.NextIs(token.CLOSE_BRACKET) {
				return nil, p.reportUnclosed(openBracket)
			}
			p.lex.Skip()
		}

		return dtype, nil
	default:
		return nil, p.reportExpected(tok, diagnostics.STRUCTURAL_ERROR, "type")
	}
}

func arraySize(tok *token.Token) (int, error) {
	// The lexer folds signs into number literals, an array size must
	// be bare digits
	if len(tok.Lexeme) > 0 && (tok.Lexeme[0] == '+' || tok.Lexeme[0] == '-') {
		return 0, fmt.Errorf("array size must be unsigned")
	}
	return strconv.Atoi(string(tok.Lexeme))
}

// parseFunctionBodyItem parses one entry of a function body: a local
// struct, a nested function, or an assignment statement (with or
// without a binding target).
func (p *Parser) parseFunctionBodyItem() (*ast.Node, error) {
	tok := p.lex.Peek()

	if tok.Kind == token.ID && p.lex.Peek1().Kind == token.EQUAL {
		name := p.lex.Next()
		p.lex.Skip() // =

		export := p.accept(token.EXPORT)

		next := p.lex.Peek()
		switch {
		case next.Kind == token.STRUCT:
			return p.parseStructTail(name, export)
		case next.Kind == token.FUNCTION:
			return p.parseFunctionTail(name, export)
		case next.Kind == token.SERIAL && p.lex.Peek1().Kind == token.FUNCTION:
			return p.parseFunctionTail(name, export)
		default:
			// "export" only modifies declarations, never a binding
			if export {
				return nil, p.reportExpected(next, diagnostics.STRUCTURAL_ERROR, "struct or function")
			}
			return p.parseAssignTail(name)
		}
	}

	return p.parseAssignTail(nil)
}

// parseAssignTail parses the expression and line terminator of an
// assignment. A nil name means a bare expression statement.
func (p *Parser) parseAssignTail(name *token.Token) (*ast.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expectEndLine(); err != nil {
		return nil, err
	}

	assign := &ast.AssignStmt{Name: name, Expr: expr}
	return &ast.Node{Kind: ast.KIND_ASSIGN_STMT, Node: assign}, nil
}

// parseExpr evaluates the expression alternatives in grammar order:
// parenthesized group, number, string, bool, call, dotted member
// access, bare identifier. Numeric superset ordering (e-notation
// before float before int) is already resolved by the lexer.
func (p *Parser) parseExpr() (*ast.Node, error) {
	tok := p.lex.Peek()

	if err := p.enter(tok.Pos); err != nil {
		return nil, err
	}
	defer p.leave()

	switch tok.Kind {
	case token.OPEN_PAREN:
		openParen := p.lex.Next()

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if !p.lex.NextIs(token.CLOSE_PAREN) {
			return nil, p.reportUnclosed(openParen)
		}
		p.lex.Skip()

		// Grouping carries no meaning of its own
		return expr, nil
	case token.UNTYPED_FLOAT:
		p.lex.Skip()

		value, err := strconv.ParseFloat(string(tok.Lexeme), 64)
		if err != nil {
			return nil, p.reportBadLiteral(tok, "float literal out of range")
		}
		lit := &ast.FloatLit{Value: value, Tok: tok}
		return &ast.Node{Kind: ast.KIND_FLOAT_LIT, Node: lit}, nil
	case token.UNTYPED_INT:
		p.lex.Skip()

		value, err := strconv.ParseInt(string(tok.Lexeme), 10, 64)
		if err != nil {
			return nil, p.reportBadLiteral(tok, "integer literal out of range")
		}
		lit := &ast.IntLit{Value: value, Tok: tok}
		return &ast.Node{Kind: ast.KIND_INT_LIT, Node: lit}, nil
	case token.UNTYPED_STRING:
		p.lex.Skip()

		lit := &ast.StringLit{Value: tok.Lexeme, Delim: tok.Delim, Tok: tok}
		return &ast.Node{Kind: ast.KIND_STRING_LIT, Node: lit}, nil
	case token.TRUE_BOOL_LITERAL, token.FALSE_BOOL_LITERAL:
		p.lex.Skip()

		lit := &ast.BoolLit{Value: tok.Kind == token.TRUE_BOOL_LITERAL, Tok: tok}
		return &ast.Node{Kind: ast.KIND_BOOL_LIT, Node: lit}, nil
	case token.SERIAL, token.EXTERN:
		return p.parseFnCall()
	case token.ID:
		next := p.lex.Peek1()
		if next.Kind == token.OPEN_PAREN {
			return p.parseFnCall()
		}
		if next.Kind == token.DOT {
			return p.parseInnerVar()
		}

		p.lex.Skip()
		idExpr := &ast.IdExpr{Name: tok}
		return &ast.Node{Kind: ast.KIND_ID_EXPR, Node: idExpr}, nil
	default:
		return nil, p.reportExpected(tok, diagnostics.STRUCTURAL_ERROR, "expression")
	}
}

func (p *Parser) parseFnCall() (*ast.Node, error) {
	serial := p.accept(token.SERIAL)
	extern := p.accept(token.EXTERN)

	name, ok := p.expect(token.ID)
	if !ok {
		return nil, p.reportExpected(name, diagnostics.STRUCTURAL_ERROR, "function name")
	}

	openParen, ok := p.expect(token.OPEN_PAREN)
	if !ok {
		return nil, p.reportExpected(openParen, diagnostics.STRUCTURAL_ERROR, "'('")
	}

	call := &ast.FnCall{Name: name, Serial: serial, Extern: extern}

	if !p.lex.NextIs(token.CLOSE_PAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)

			if !p.accept(token.COMMA) {
				break
			}
		}
	}

	if !p.lex.NextIs(token.CLOSE_PAREN) {
		return nil, p.reportUnclosed(openParen)
	}
	p.lex.Skip()

	return &ast.Node{Kind: ast.KIND_FN_CALL, Node: call}, nil
}

func (p *Parser) parseInnerVar() (*ast.Node, error) {
	first, ok := p.expect(token.ID)
	if !ok {
		return nil, p.reportExpected(first, diagnostics.STRUCTURAL_ERROR, "identifier")
	}

	innerVar := &ast.InnerVar{Path: []*token.Token{first}}

	for p.accept(token.DOT) {
		segment, ok := p.expect(token.ID)
		if !ok {
			return nil, p.reportExpected(segment, diagnostics.STRUCTURAL_ERROR, "identifier after '.'")
		}
		innerVar.Path = append(innerVar.Path, segment)
	}

	return &ast.Node{Kind: ast.KIND_INNER_VAR, Node: innerVar}, nil
}

func (p *Parser) expect(expectedKind token.Kind) (*token.Token, bool) {
	tok := p.lex.Peek()
	if tok.Kind != expectedKind {
		return tok, false
	}
	return p.lex.Next(), true
}

func (p *Parser) accept(kind token.Kind) bool {
	if p.lex.NextIs(kind) {
		p.lex.Skip()
		return true
	}
	return false
}

func (p *Parser) skipNewlines() {
	for p.lex.NextIs(token.NEWLINE) {
		p.lex.Skip()
	}
}

// expectEndLine requires at least one newline and collapses any run of
// them into a single terminator.
func (p *Parser) expectEndLine() error {
	tok := p.lex.Peek()
	if tok.Kind != token.NEWLINE {
		return p.reportExpected(tok, diagnostics.STRUCTURAL_ERROR, "end of line")
	}
	p.skipNewlines()
	return nil
}

func (p *Parser) enter(pos token.Pos) error {
	p.depth++
	if p.depth > p.maxDepth {
		nestingTooDeep := diagnostics.Diag{
			Kind: diagnostics.RECURSION_LIMIT_ERROR,
			Pos:  pos,
			Message: fmt.Sprintf(
				"%s:%d:%d: nesting exceeds the limit of %d levels",
				pos.Filename,
				pos.Line,
				pos.Column,
				p.maxDepth,
			),
		}
		p.collector.ReportAndSave(nestingTooDeep)
		return diagnostics.PARSE_ERROR_FOUND
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) reportExpected(tok *token.Token, kind diagnostics.ErrorKind, what string) error {
	// The lexer already reported a better positioned diagnostic for
	// an invalid token
	if tok.Kind == token.INVALID {
		return diagnostics.PARSE_ERROR_FOUND
	}

	pos := tok.Pos
	expected := diagnostics.Diag{
		Kind: kind,
		Pos:  pos,
		Message: fmt.Sprintf(
			"%s:%d:%d: expected %s, not %s",
			pos.Filename,
			pos.Line,
			pos.Column,
			what,
			tok.Kind,
		),
	}
	p.collector.ReportAndSave(expected)
	return diagnostics.PARSE_ERROR_FOUND
}

// reportUnclosed reports a missing closing delimiter at the offset of
// the delimiter that opened it.
func (p *Parser) reportUnclosed(open *token.Token) error {
	if p.lex.Peek().Kind == token.INVALID {
		return diagnostics.PARSE_ERROR_FOUND
	}

	pos := open.Pos
	unclosed := diagnostics.Diag{
		Kind: diagnostics.DELIMITER_MISMATCH_ERROR,
		Pos:  pos,
		Message: fmt.Sprintf(
			"%s:%d:%d: unclosed %s",
			pos.Filename,
			pos.Line,
			pos.Column,
			open.Kind,
		),
	}
	p.collector.ReportAndSave(unclosed)
	return diagnostics.PARSE_ERROR_FOUND
}

func (p *Parser) reportBadLiteral(tok *token.Token, what string) error {
	pos := tok.Pos
	badLiteral := diagnostics.Diag{
		Kind: diagnostics.LEXICAL_ERROR,
		Pos:  pos,
		Message: fmt.Sprintf(
			"%s:%d:%d: %s",
			pos.Filename,
			pos.Line,
			pos.Column,
			what,
		),
	}
	p.collector.ReportAndSave(badLiteral)
	return diagnostics.PARSE_ERROR_FOUND
}
