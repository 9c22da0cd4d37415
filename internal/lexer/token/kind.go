package token

import "log"

type Kind int

const (
	// EOF
	EOF Kind = iota
	INVALID

	// \n (one per physical newline, the parser collapses runs)
	NEWLINE

	// Identifier
	ID

	// Literals
	UNTYPED_INT
	UNTYPED_FLOAT
	UNTYPED_STRING
	TRUE_BOOL_LITERAL
	FALSE_BOOL_LITERAL

	// Keywords
	MOD
	STRUCT
	FUNCTION
	EXPORT
	SERIAL
	EXTERN
	PARAMS
	RETURN

	// (
	OPEN_PAREN
	// )
	CLOSE_PAREN

	// {
	OPEN_CURLY
	// }
	CLOSE_CURLY

	// [
	OPEN_BRACKET
	// ]
	CLOSE_BRACKET

	// ,
	COMMA

	// :
	COLON

	// .
	DOT

	// =
	EQUAL

	// ?
	QUESTION

	// !
	BANG
)

var KEYWORDS map[string]Kind = map[string]Kind{
	"mod":      MOD,
	"struct":   STRUCT,
	"function": FUNCTION,
	"export":   EXPORT,
	"serial":   SERIAL,
	"extern":   EXTERN,
	"params":   PARAMS,
	"return":   RETURN,

	"true":  TRUE_BOOL_LITERAL,
	"false": FALSE_BOOL_LITERAL,
}

var LITERAL_KIND map[Kind]bool = map[Kind]bool{
	UNTYPED_INT:        true,
	UNTYPED_FLOAT:      true,
	UNTYPED_STRING:     true,
	TRUE_BOOL_LITERAL:  true,
	FALSE_BOOL_LITERAL: true,
}

func (kind Kind) IsLiteral() bool {
	_, ok := LITERAL_KIND[kind]
	return ok
}

func (kind Kind) String() string {
	switch kind {
	case EOF:
		return "end of file"
	case INVALID:
		return "INVALID"
	case NEWLINE:
		return "end of line"
	case ID:
		return "identifier"
	case UNTYPED_INT:
		return "integer literal"
	case UNTYPED_FLOAT:
		return "float literal"
	case UNTYPED_STRING:
		return "string literal"
	case TRUE_BOOL_LITERAL:
		return "true"
	case FALSE_BOOL_LITERAL:
		return "false"
	case MOD:
		return "mod"
	case STRUCT:
		return "struct"
	case FUNCTION:
		return "function"
	case EXPORT:
		return "export"
	case SERIAL:
		return "serial"
	case EXTERN:
		return "extern"
	case PARAMS:
		return "params"
	case RETURN:
		return "return"
	case OPEN_PAREN:
		return "("
	case CLOSE_PAREN:
		return ")"
	case OPEN_CURLY:
		return "{"
	case CLOSE_CURLY:
		return "}"
	case OPEN_BRACKET:
		return "["
	case CLOSE_BRACKET:
		return "]"
	case COMMA:
		return ","
	case COLON:
		return ":"
	case DOT:
		return "."
	case EQUAL:
		return "="
	case QUESTION:
		return "?"
	case BANG:
		return "!"
	default:
		log.Fatalf("String() method not defined for the following token kind '%d'", kind)
	}
	return ""
}
