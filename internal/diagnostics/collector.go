package diagnostics

import (
	"errors"

	"github.com/vertex-lang/vertex/internal/lexer/token"
)

var (
	PARSE_ERROR_FOUND = errors.New("parse error found")
)

type ErrorKind int

const (
	LEXICAL_ERROR ErrorKind = iota
	DELIMITER_MISMATCH_ERROR
	STRUCTURAL_ERROR
	TRAILING_CONTENT_ERROR
	RECURSION_LIMIT_ERROR
)

func (kind ErrorKind) String() string {
	switch kind {
	case LEXICAL_ERROR:
		return "lexical error"
	case DELIMITER_MISMATCH_ERROR:
		return "delimiter mismatch"
	case STRUCTURAL_ERROR:
		return "structural error"
	case TRAILING_CONTENT_ERROR:
		return "trailing content"
	case RECURSION_LIMIT_ERROR:
		return "recursion limit reached"
	default:
		return "unknown error"
	}
}

type Diag struct {
	Kind    ErrorKind
	Pos     token.Pos
	Message string
}

type Collector struct {
	Diags []Diag
}

func New() *Collector {
	return &Collector{
		Diags: nil,
	}
}

func (collector *Collector) ReportAndSave(diag Diag) {
	collector.Diags = append(collector.Diags, diag)
}

func (collector *Collector) HasErrors() bool {
	return len(collector.Diags) > 0
}

// Furthest reports the diagnostic whose position is deepest into the
// input, which is the most useful one to show after backtracking.
func (collector *Collector) Furthest() *Diag {
	if len(collector.Diags) == 0 {
		return nil
	}
	furthest := &collector.Diags[0]
	for i := range collector.Diags {
		if collector.Diags[i].Pos.Offset >= furthest.Pos.Offset {
			furthest = &collector.Diags[i]
		}
	}
	return furthest
}
