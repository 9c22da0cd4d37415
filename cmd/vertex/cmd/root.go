package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertex-lang/vertex/internal/ast"
	"github.com/vertex-lang/vertex/internal/config"
	"github.com/vertex-lang/vertex/internal/diagnostics"
	"github.com/vertex-lang/vertex/internal/lexer"
	"github.com/vertex-lang/vertex/internal/parser"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "vertex",
	Short: "Tooling for the Vertex definition language",
	Long: `Tooling for the Vertex definition language.

Commands:
  check    - Parse a source file and report the first syntax error
  tokens   - Dump the token stream of a source file
  ast      - Dump the syntax tree of a source file
  fmt      - Reprint a source file in canonical form`,

	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./vertex.toml)")
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = "vertex.toml"
	}
	return config.Load(path)
}

func parseFile(path string, cfg *config.Config) (*ast.Program, *diagnostics.Collector, error) {
	loc := ast.LocFromPath(path)
	collector := diagnostics.New()

	lex, err := lexer.NewFromFilePath(loc, collector)
	if err != nil {
		return nil, nil, err
	}

	p := parser.NewWithLex(lex, collector)
	p.SetMaxDepth(cfg.Parser.MaxDepth)

	program, err := p.ParseProgram()
	return program, collector, err
}

// printDiag reports the diagnostic that made it furthest into the
// input, the most informative one after backtracking.
func printDiag(collector *diagnostics.Collector) {
	if collector == nil {
		return
	}
	diag := collector.Furthest()
	if diag == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", diag.Kind, diag.Message)
}
