package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check <grammar file path>",
		Short:   "Validate a grammar and report the first error",
		Example: `  abnf check grammar.abnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	tree, err := parseGrammarFile(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "OK: %v rules\n", tree.RulesCount())
	return nil
}
