package lexer

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/vertex-lang/vertex/internal/ast"
	"github.com/vertex-lang/vertex/internal/diagnostics"
	"github.com/vertex-lang/vertex/internal/lexer/token"
)

const eof = '\000'

type Lexer struct {
	Loc       *ast.Loc
	Collector *diagnostics.Collector

	src    []byte
	offset int
	pos    token.Pos
}

func New(loc *ast.Loc, src []byte, collector *diagnostics.Collector) *Lexer {
	lexer := new(Lexer)

	lexer.Loc = loc
	lexer.Collector = collector
	lexer.pos = token.NewPosition(loc.Name, 1, 1)
	lexer.src = src
	lexer.offset = 0

	return lexer
}

func NewFromFilePath(loc *ast.Loc, collector *diagnostics.Collector) (*Lexer, error) {
	src, err := os.ReadFile(loc.Path)
	if err != nil {
		return nil, err
	}
	l := New(loc, src, collector)
	return l, nil
}

func (lex *Lexer) Filename() string { return lex.pos.Filename }

func (lex *Lexer) Peek() *token.Token {
	prevPos := lex.pos
	prevOffset := lex.offset

	token := lex.Next()

	lex.pos.SetPosition(prevPos)
	lex.offset = prevOffset
	return token
}

func (lex *Lexer) Peek1() *token.Token {
	prevPos := lex.pos
	prevOffset := lex.offset

	_ = lex.Next()
	token := lex.Next()

	lex.pos.SetPosition(prevPos)
	lex.offset = prevOffset

	return token
}

func (lex *Lexer) Skip() {
	lex.Next()
}

func (lex *Lexer) NextIs(expectedKind token.Kind) bool {
	token := lex.Peek()
	return token.Kind == expectedKind
}

func (lex *Lexer) Next() *token.Token {
	lex.skipWhitespace()
	character := lex.peekChar()

	tok := &token.Token{}
	tok.Kind = token.INVALID

	if character == eof {
		lex.consumeTokenNoLex(tok, token.EOF)
		return tok
	}

	return lex.getToken(tok, character)
}

// Useful for testing and the "tokens" subcommand
func (lex *Lexer) Tokenize() ([]*token.Token, error) {
	var tokens []*token.Token
	for {
		tok := lex.Next()
		if tok.Kind == token.INVALID {
			return nil, diagnostics.PARSE_ERROR_FOUND
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

func (lex *Lexer) getToken(tok *token.Token, ch byte) *token.Token {
	switch ch {
	case '\n':
		lex.consumeTokenNoLex(tok, token.NEWLINE)
		lex.nextChar()
	case '(':
		lex.consumeTokenNoLex(tok, token.OPEN_PAREN)
		lex.nextChar()
	case ')':
		lex.consumeTokenNoLex(tok, token.CLOSE_PAREN)
		lex.nextChar()
	case '{':
		lex.consumeTokenNoLex(tok, token.OPEN_CURLY)
		lex.nextChar()
	case '}':
		lex.consumeTokenNoLex(tok, token.CLOSE_CURLY)
		lex.nextChar()
	case '[':
		lex.consumeTokenNoLex(tok, token.OPEN_BRACKET)
		lex.nextChar()
	case ']':
		lex.consumeTokenNoLex(tok, token.CLOSE_BRACKET)
		lex.nextChar()
	case ',':
		lex.consumeTokenNoLex(tok, token.COMMA)
		lex.nextChar()
	case ':':
		lex.consumeTokenNoLex(tok, token.COLON)
		lex.nextChar()
	case '=':
		lex.consumeTokenNoLex(tok, token.EQUAL)
		lex.nextChar()
	case '?':
		lex.consumeTokenNoLex(tok, token.QUESTION)
		lex.nextChar()
	case '!':
		lex.consumeTokenNoLex(tok, token.BANG)
		lex.nextChar()
	case '"', '\'', '`':
		lex.getStringLit(tok, ch)
	case '.':
		// A dot either starts a fraction-only float (".5") or is the
		// member access separator
		if isDigit(lex.peekNextChar()) {
			lex.getNumberLit(tok)
			return tok
		}
		lex.consumeTokenNoLex(tok, token.DOT)
		lex.nextChar()
	case '+', '-':
		// The grammar has no infix operators, so a sign can only
		// belong to a number literal
		next := lex.peekNextChar()
		if isDigit(next) || next == '.' {
			lex.getNumberLit(tok)
			return tok
		}

		tok.Pos = lex.pos
		lex.nextChar()
		invalidCharacter := diagnostics.Diag{
			Kind: diagnostics.LEXICAL_ERROR,
			Pos:  tok.Pos,
			Message: fmt.Sprintf(
				"%s:%d:%d: invalid character %c",
				tok.Pos.Filename,
				tok.Pos.Line,
				tok.Pos.Column,
				ch,
			),
		}
		lex.Collector.ReportAndSave(invalidCharacter)
	default:
		if isLetter(ch) {
			lex.getIdOrKeyword(tok)
		} else if isDigit(ch) {
			lex.getNumberLit(tok)
		} else {
			tokenPosition := lex.pos
			invalidCharacter := diagnostics.Diag{
				Kind: diagnostics.LEXICAL_ERROR,
				Pos:  tokenPosition,
				Message: fmt.Sprintf(
					"%s:%d:%d: invalid character %c",
					tokenPosition.Filename,
					tokenPosition.Line,
					tokenPosition.Column,
					ch,
				),
			}
			lex.Collector.ReportAndSave(invalidCharacter)
		}
	}
	return tok
}

func (lex *Lexer) getStringLit(tok *token.Token, delim byte) {
	tok.Pos = lex.pos
	lex.nextChar() // opening delimiter

	var str []byte
	for {
		ch := lex.peekChar()
		if ch == eof {
			unterminatedStringLiteral := diagnostics.Diag{
				Kind: diagnostics.DELIMITER_MISMATCH_ERROR,
				Pos:  tok.Pos,
				Message: fmt.Sprintf(
					"%s:%d:%d: unterminated string literal, expected closing %c",
					tok.Pos.Filename,
					tok.Pos.Line,
					tok.Pos.Column,
					delim,
				),
			}
			lex.Collector.ReportAndSave(unterminatedStringLiteral)
			return
		}
		if ch == delim {
			break
		}

		if ch == '\\' {
			lex.nextChar() // backslash
			if !lex.getEscape(tok, delim, &str) {
				return
			}
			continue
		}

		str = append(str, ch)
		lex.nextChar()
	}

	lex.nextChar() // closing delimiter

	tok.Kind = token.UNTYPED_STRING
	tok.Lexeme = str
	tok.Delim = delim
}

func (lex *Lexer) getEscape(tok *token.Token, delim byte, str *[]byte) bool {
	escapePos := lex.pos
	escapeSym := lex.peekChar()

	var escape byte

	switch escapeSym {
	case '\\':
		escape = '\\'
	case '/':
		escape = '/'
	case 'b':
		escape = '\b'
	case 'f':
		escape = '\f'
	case 'n':
		escape = '\n'
	case 'r':
		escape = '\r'
	case 't':
		escape = '\t'
	case 'u':
		lex.nextChar() // u

		// Exactly four hex digits, fewer is a parse failure
		var value rune
		for i := 0; i < 4; i++ {
			digit := hexDigitValue(lex.peekChar())
			if digit < 0 {
				invalidUnicodeEscape := diagnostics.Diag{
					Kind: diagnostics.LEXICAL_ERROR,
					Pos:  escapePos,
					Message: fmt.Sprintf(
						"%s:%d:%d: \\u escape requires exactly 4 hex digits",
						escapePos.Filename,
						escapePos.Line,
						escapePos.Column,
					),
				}
				lex.Collector.ReportAndSave(invalidUnicodeEscape)
				return false
			}
			value = value*16 + rune(digit)
			lex.nextChar()
		}

		*str = utf8.AppendRune(*str, value)
		return true
	default:
		if escapeSym == delim {
			escape = delim
			break
		}
		invalidEscape := diagnostics.Diag{
			Kind: diagnostics.LEXICAL_ERROR,
			Pos:  escapePos,
			Message: fmt.Sprintf(
				"%s:%d:%d: invalid escape sequence \\%c",
				escapePos.Filename,
				escapePos.Line,
				escapePos.Column,
				escapeSym,
			),
		}
		lex.Collector.ReportAndSave(invalidEscape)
		return false
	}

	*str = append(*str, escape)
	lex.nextChar()
	return true
}

func (lex *Lexer) getNumberLit(tok *token.Token) {
	tok.Pos = lex.pos
	start := lex.offset

	ch := lex.peekChar()
	if ch == '+' || ch == '-' {
		lex.nextChar()
	}

	kind := token.UNTYPED_INT

	intDigits := lex.readDigits()

	if lex.peekChar() == '.' {
		kind = token.UNTYPED_FLOAT
		lex.nextChar() // .

		fracDigits := lex.readDigits()
		if !intDigits && !fracDigits {
			lex.reportMalformedNumber(tok.Pos)
			return
		}
	}

	// Scientific notation only applies when a full exponent follows,
	// otherwise the "e" belongs to the next token
	exp := lex.peekChar()
	if exp == 'e' || exp == 'E' {
		next := lex.peekNextChar()
		hasExponent := isDigit(next)
		if next == '+' || next == '-' {
			hasExponent = isDigit(lex.peekCharAt(lex.offset + 2))
		}
		if hasExponent {
			kind = token.UNTYPED_FLOAT
			lex.nextChar() // e
			sign := lex.peekChar()
			if sign == '+' || sign == '-' {
				lex.nextChar()
			}
			lex.readDigits()
		}
	}

	// "1.2.3" is malformed, not a float truncated at "1.2"
	if lex.peekChar() == '.' {
		lex.reportMalformedNumber(tok.Pos)
		return
	}

	tok.Kind = kind
	tok.Lexeme = lex.src[start:lex.offset]
}

func (lex *Lexer) reportMalformedNumber(pos token.Pos) {
	malformedNumber := diagnostics.Diag{
		Kind: diagnostics.LEXICAL_ERROR,
		Pos:  pos,
		Message: fmt.Sprintf(
			"%s:%d:%d: malformed number literal",
			pos.Filename,
			pos.Line,
			pos.Column,
		),
	}
	lex.Collector.ReportAndSave(malformedNumber)
}

func (lex *Lexer) readDigits() bool {
	digits := lex.readWhile(isDigit)
	return len(digits) > 0
}

func (lex *Lexer) getIdOrKeyword(tok *token.Token) {
	tok.Pos = lex.pos
	identifier := lex.readWhile(
		func(chr byte) bool { return isDigit(chr) || isLetter(chr) || chr == '_' },
	)
	tok.Kind = token.ID
	tok.Lexeme = identifier
	keyword, ok := token.KEYWORDS[string(identifier)]
	if ok {
		tok.Kind = keyword
	}
}

func (lex *Lexer) consumeTokenNoLex(tok *token.Token, kind token.Kind) {
	tok.Lexeme = nil
	tok.Kind = kind
	tok.Pos = lex.pos
}

func (lex *Lexer) skipWhitespace() {
	for {
		lex.readWhile(func(ch byte) bool {
			return ch == ' ' || ch == '\t' || ch == '\r'
		})
		// Line comments are discarded up to, but not including, the
		// terminating newline
		if lex.peekChar() != '#' {
			break
		}
		lex.readWhile(func(ch byte) bool { return ch != '\n' })
	}
}

func (lex *Lexer) readWhile(isValid func(byte) bool) []byte {
	var start, end int
	start = lex.offset

	for {
		character := lex.peekChar()
		if character == eof {
			break
		}

		if isValid(character) {
			lex.nextChar()
		} else {
			break
		}
	}

	end = lex.offset

	return lex.src[start:end]
}

func (lex *Lexer) nextChar() byte {
	if lex.offset >= len(lex.src) {
		return eof
	}
	character := lex.src[lex.offset]
	lex.pos.Move(character)
	lex.offset++
	return character
}

func (lex *Lexer) peekChar() byte {
	return lex.peekCharAt(lex.offset)
}

func (lex *Lexer) peekNextChar() byte {
	return lex.peekCharAt(lex.offset + 1)
}

func (lex *Lexer) peekCharAt(offset int) byte {
	if offset >= len(lex.src) {
		return eof
	}
	return lex.src[offset]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func hexDigitValue(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	default:
		return -1
	}
}
