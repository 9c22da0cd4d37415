package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vertex-lang/vertex/internal/ast"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Dump the syntax tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAst,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAst(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	program, collector, err := parseFile(args[0], cfg)
	if err != nil {
		printDiag(collector)
		return err
	}

	fmt.Println(program)
	for _, module := range program.Modules {
		dumpNode(module, 1)
	}
	return nil
}

func dumpNode(node *ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%v\n", indent, node.Node)

	switch node.Kind {
	case ast.KIND_MODULE_DECL:
		for _, item := range node.Node.(*ast.ModuleDecl).Body {
			dumpNode(item, depth+1)
		}
	case ast.KIND_FN_DECL:
		for _, item := range node.Node.(*ast.FnDecl).Body {
			dumpNode(item, depth+1)
		}
	case ast.KIND_ASSIGN_STMT:
		dumpNode(node.Node.(*ast.AssignStmt).Expr, depth+1)
	case ast.KIND_FN_CALL:
		for _, arg := range node.Node.(*ast.FnCall).Args {
			dumpNode(arg, depth+1)
		}
	}
}
