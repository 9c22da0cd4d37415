package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertex-lang/vertex/internal/ast"
	"github.com/vertex-lang/vertex/internal/diagnostics"
	"github.com/vertex-lang/vertex/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	loc := ast.LocFromPath(args[0])
	collector := diagnostics.New()

	lex, err := lexer.NewFromFilePath(loc, collector)
	if err != nil {
		return err
	}

	tokens, err := lex.Tokenize()
	if err != nil {
		printDiag(collector)
		return err
	}

	for _, tok := range tokens {
		fmt.Println(tok)
	}
	return nil
}
