package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a source file and report the first syntax error",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	program, collector, err := parseFile(args[0], cfg)
	if err != nil {
		printDiag(collector)
		return err
	}

	fmt.Printf("%s: ok, %d top-level module(s)\n", args[0], len(program.Modules))
	return nil
}
