// Package printer renders a parsed program back into canonical Vertex
// source. Rendering then reparsing yields a structurally equivalent
// tree, which makes it both the formatter and the round-trip harness
// for the parser tests.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vertex-lang/vertex/internal/ast"
)

type Printer struct {
	sb     strings.Builder
	indent string
	level  int
}

func New() *Printer {
	return NewWithIndent(4)
}

func NewWithIndent(width int) *Printer {
	if width <= 0 {
		width = 4
	}
	return &Printer{indent: strings.Repeat(" ", width)}
}

func (pr *Printer) Render(program *ast.Program) string {
	pr.sb.Reset()
	pr.level = 0

	for i, module := range program.Modules {
		if i > 0 {
			pr.sb.WriteByte('\n')
		}
		pr.printNode(module)
	}

	return pr.sb.String()
}

func (pr *Printer) printNode(node *ast.Node) {
	switch node.Kind {
	case ast.KIND_MODULE_DECL:
		pr.printModule(node.Node.(*ast.ModuleDecl))
	case ast.KIND_STRUCT_DECL:
		pr.printStruct(node.Node.(*ast.StructDecl))
	case ast.KIND_FN_DECL:
		pr.printFunction(node.Node.(*ast.FnDecl))
	case ast.KIND_ASSIGN_STMT:
		pr.printAssign(node.Node.(*ast.AssignStmt))
	default:
		pr.line(fmt.Sprintf("# unknown node %s", node))
	}
}

func (pr *Printer) printModule(module *ast.ModuleDecl) {
	header := module.Name.Name() + " = "
	if module.Export {
		header += "export "
	}
	pr.line(header + "mod {")

	pr.level++
	for i, item := range module.Body {
		if i > 0 {
			pr.sb.WriteByte('\n')
		}
		pr.printNode(item)
	}
	pr.level--

	pr.line("}")
}

func (pr *Printer) printStruct(structDecl *ast.StructDecl) {
	header := structDecl.Name.Name() + " = "
	if structDecl.Export {
		header += "export "
	}
	pr.line(header + "struct {")

	pr.level++
	for _, field := range structDecl.Fields.Args {
		pr.line(fmt.Sprintf("%s: %s", field.Name.Name(), field.Type))
	}
	pr.level--

	pr.line("}")
}

func (pr *Printer) printFunction(fnDecl *ast.FnDecl) {
	header := fnDecl.Name.Name() + " = "
	if fnDecl.Export {
		header += "export "
	}
	if fnDecl.Serial {
		header += "serial "
	}
	pr.line(header + "function {")

	pr.level++
	pr.line("params = " + renderArgList(fnDecl.Params))
	pr.line("return = " + renderArgList(fnDecl.Return))

	if len(fnDecl.Body) > 0 {
		pr.sb.WriteByte('\n')
	}
	for _, item := range fnDecl.Body {
		pr.printNode(item)
	}
	pr.level--

	pr.line("}")
}

func (pr *Printer) printAssign(assign *ast.AssignStmt) {
	if assign.Name == nil {
		pr.line(renderExpr(assign.Expr))
		return
	}
	pr.line(assign.Name.Name() + " = " + renderExpr(assign.Expr))
}

func renderArgList(argList *ast.ArgList) string {
	var args []string
	for _, arg := range argList.Args {
		args = append(args, fmt.Sprintf("%s: %s", arg.Name.Name(), arg.Type))
	}
	return "(" + strings.Join(args, ", ") + ")"
}

func renderExpr(node *ast.Node) string {
	switch node.Kind {
	case ast.KIND_INT_LIT:
		return strconv.FormatInt(node.Node.(*ast.IntLit).Value, 10)
	case ast.KIND_FLOAT_LIT:
		return formatFloat(node.Node.(*ast.FloatLit).Value)
	case ast.KIND_STRING_LIT:
		return renderString(node.Node.(*ast.StringLit))
	case ast.KIND_BOOL_LIT:
		return strconv.FormatBool(node.Node.(*ast.BoolLit).Value)
	case ast.KIND_FN_CALL:
		return renderFnCall(node.Node.(*ast.FnCall))
	case ast.KIND_INNER_VAR:
		return node.Node.(*ast.InnerVar).String()
	case ast.KIND_ID_EXPR:
		return node.Node.(*ast.IdExpr).String()
	default:
		return fmt.Sprintf("<%s>", node)
	}
}

func renderFnCall(call *ast.FnCall) string {
	var prefix string
	if call.Serial {
		prefix += "serial "
	}
	if call.Extern {
		prefix += "extern "
	}

	var args []string
	for _, arg := range call.Args {
		args = append(args, renderExpr(arg))
	}

	return prefix + call.Name.Name() + "(" + strings.Join(args, ", ") + ")"
}

// formatFloat keeps the rendered literal lexically a float, so the
// reparse does not collapse it into an integer node.
func formatFloat(value float64) string {
	s := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func renderString(lit *ast.StringLit) string {
	delim := lit.Delim
	if delim == 0 {
		delim = '"'
	}

	var sb strings.Builder
	sb.WriteByte(delim)
	for _, ch := range lit.Value {
		switch ch {
		case '\\':
			sb.WriteString(`\\`)
		case delim:
			sb.WriteByte('\\')
			sb.WriteByte(delim)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(ch)
		}
	}
	sb.WriteByte(delim)

	return sb.String()
}

func (pr *Printer) line(text string) {
	for i := 0; i < pr.level; i++ {
		pr.sb.WriteString(pr.indent)
	}
	pr.sb.WriteString(text)
	pr.sb.WriteByte('\n')
}
