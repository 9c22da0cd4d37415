package ast

import (
	"fmt"
	"strings"

	"github.com/vertex-lang/vertex/internal/lexer/token"
)

type TypeKind int

const (
	TYPE_SCALAR TypeKind = iota
	TYPE_TUPLE
	TYPE_MAP
)

type TypeModifier int

const (
	// no suffix
	MOD_NONE TypeModifier = iota
	// ?
	MOD_NULLABLE
	// [n] or []
	MOD_ARRAY
	// !
	MOD_NON_NULL
)

// Array size for "[]", a variable-length array.
const ARRAY_UNSIZED = -1

// DataType is a recursive type descriptor: a scalar name with an
// optional suffix modifier, a tuple of types, or a map type.
type DataType struct {
	Kind TypeKind
	T    any
}

func NewScalarType(name *token.Token) *DataType {
	return &DataType{
		Kind: TYPE_SCALAR,
		T:    &ScalarType{Name: name, Modifier: MOD_NONE},
	}
}

func NewTupleType(elems []*DataType) *DataType {
	return &DataType{Kind: TYPE_TUPLE, T: &TupleType{Elems: elems}}
}

func NewMapType(key, value *DataType) *DataType {
	return &DataType{Kind: TYPE_MAP, T: &MapType{Key: key, Value: value}}
}

func (ty *DataType) IsScalar() bool { return ty.Kind == TYPE_SCALAR }
func (ty *DataType) IsTuple() bool  { return ty.Kind == TYPE_TUPLE }
func (ty *DataType) IsMap() bool    { return ty.Kind == TYPE_MAP }

func (ty *DataType) String() string {
	switch ty.Kind {
	case TYPE_SCALAR:
		return ty.T.(*ScalarType).String()
	case TYPE_TUPLE:
		return ty.T.(*TupleType).String()
	case TYPE_MAP:
		return ty.T.(*MapType).String()
	default:
		return fmt.Sprintf("Unknown Type Kind: %v", ty.Kind)
	}
}

type ScalarType struct {
	Name     *token.Token
	Modifier TypeModifier
	// Fixed array length, or ARRAY_UNSIZED. Only meaningful when
	// Modifier is MOD_ARRAY.
	Size int
}

func (scalar *ScalarType) String() string {
	switch scalar.Modifier {
	case MOD_NULLABLE:
		return scalar.Name.Name() + "?"
	case MOD_NON_NULL:
		return scalar.Name.Name() + "!"
	case MOD_ARRAY:
		if scalar.Size == ARRAY_UNSIZED {
			return scalar.Name.Name() + "[]"
		}
		return fmt.Sprintf("%s[%d]", scalar.Name.Name(), scalar.Size)
	default:
		return scalar.Name.Name()
	}
}

type TupleType struct {
	Elems []*DataType
}

func (tuple *TupleType) String() string {
	var elems []string
	for _, elem := range tuple.Elems {
		elems = append(elems, elem.String())
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

type MapType struct {
	Key   *DataType
	Value *DataType
}

func (m *MapType) String() string {
	return fmt.Sprintf("{%s: %s}", m.Key, m.Value)
}
