package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abnf",
	Short: "Inspect grammars written in ABNF (RFC 5234)",
	Long: `abnf parses a grammar definition written in ABNF and reports on it:
- Prints the structured parse events of the grammar.
- Prints an inventory of the grammar's rules.
- Validates the grammar and reports the first error.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootFlags = struct {
	maxQuotedStringLength *int
}{}

func init() {
	rootFlags.maxQuotedStringLength = rootCmd.PersistentFlags().Int("max-quoted-string-length", 0, "maximum length of quoted literals (0 disables the check)")
}

func Execute() error {
	return rootCmd.Execute()
}
