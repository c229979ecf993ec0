package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/abnf-go/abnf/ast"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print an inventory of the grammar's rules",
		Example: `  abnf show grammar.abnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	tree, err := parseGrammarFile(args[0])
	if err != nil {
		return err
	}

	inv := &inventory{
		alternatives: map[string]int{},
		references:   map[string]map[string]struct{}{},
	}
	tree.Traverse(inv)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"NAME", "ALTERNATIVES", "REFERENCES"})
	table.SetAutoWrapText(false)
	for _, name := range tree.Names() {
		table.Append([]string{
			name,
			fmt.Sprintf("%v", inv.alternatives[name]),
			strings.Join(sortedKeys(inv.references[name]), ", "),
		})
	}
	table.Render()

	fmt.Fprintf(os.Stdout, "%v rules\n", tree.RulesCount())
	return nil
}

// inventory counts, per rule, the top-level alternatives of its body and the
// rule names its body references.
type inventory struct {
	ast.NopVisitor

	current      string
	depth        int
	alternatives map[string]int
	references   map[string]map[string]struct{}
}

func (v *inventory) BeginRule(name string) {
	v.current = name
	v.depth = 0
	v.references[name] = map[string]struct{}{}
}

func (v *inventory) EndRule() {
	v.current = ""
}

func (v *inventory) BeginAlternation() {
	v.depth++
}

func (v *inventory) EndAlternation() {
	v.depth--
}

func (v *inventory) BeginConcatenation() {
	// Each top-level concatenation of a rule's body is one alternative.
	if v.current != "" && v.depth == 1 {
		v.alternatives[v.current]++
	}
}

func (v *inventory) Rulename(name string) {
	if v.current != "" {
		v.references[v.current][name] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
