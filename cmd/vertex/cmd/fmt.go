package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertex-lang/vertex/internal/printer"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Reprint a source file in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	program, collector, err := parseFile(args[0], cfg)
	if err != nil {
		printDiag(collector)
		return err
	}

	pr := printer.NewWithIndent(cfg.Fmt.Indent)
	fmt.Print(pr.Render(program))
	return nil
}
