package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abnf-go/abnf/ast"
	aerr "github.com/abnf-go/abnf/error"
	"github.com/abnf-go/abnf/parser"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a grammar and print its parse events",
		Example: `  abnf parse grammar.abnf`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	tree, err := parseGrammarFile(args[0])
	if err != nil {
		return err
	}

	tree.Traverse(&eventPrinter{w: os.Stdout})
	return nil
}

// parseGrammarFile parses the grammar at path and converts a recorded error
// or an incomplete parse into a ParseError.
func parseGrammarFile(path string) (*ast.Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the grammar file %s: %w", path, err)
	}

	pos := parser.NewIterator(string(src))
	tree := ast.Parse(&pos, ast.MaxQuotedStringLength(*rootFlags.maxQuotedStringLength))
	if tree.ErrorCode() != parser.Success {
		return nil, &aerr.ParseError{
			Code:     tree.ErrorCode(),
			Detail:   tree.ErrorText(),
			FilePath: path,
			Line:     tree.ErrorLine(),
		}
	}
	if !tree.Complete() {
		return nil, fmt.Errorf("%v: error: the grammar is incomplete; junk follows the last rule", pos.Line())
	}
	return tree, nil
}

// eventPrinter renders the traversal the way the engine saw the grammar:
// one event per line, nested productions indented.
type eventPrinter struct {
	w     io.Writer
	level int
}

func (p *eventPrinter) indent() string {
	var b strings.Builder
	b.WriteString("|")
	for i := p.level; i > 0; i-- {
		b.WriteString("----")
		if i > 1 {
			b.WriteString("|")
		}
	}
	return b.String()
}

func (p *eventPrinter) enter(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", p.indent(), fmt.Sprintf(format, args...))
	p.level++
}

func (p *eventPrinter) leave(format string, args ...interface{}) {
	p.level--
	fmt.Fprintf(p.w, "%s%s\n", p.indent(), fmt.Sprintf(format, args...))
}

func (p *eventPrinter) leaf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", p.indent(), fmt.Sprintf(format, args...))
}

func (p *eventPrinter) BeginDocument() { p.enter("BEGIN DOCUMENT") }

func (p *eventPrinter) EndDocument() { p.leave("END DOCUMENT") }

func (p *eventPrinter) BeginRule(name string) { p.enter("BEGIN RULE: %q", name) }

func (p *eventPrinter) EndRule() { p.leave("END RULE") }

func (p *eventPrinter) BeginAlternation() { p.enter("BEGIN ALTERNATION") }

func (p *eventPrinter) EndAlternation() { p.leave("END ALTERNATION") }

func (p *eventPrinter) BeginConcatenation() { p.enter("BEGIN CONCATENATION") }

func (p *eventPrinter) EndConcatenation() { p.leave("END CONCATENATION") }

func (p *eventPrinter) BeginRepetition() { p.enter("BEGIN REPETITION") }

func (p *eventPrinter) EndRepetition() { p.leave("END REPETITION") }

func (p *eventPrinter) Repeat(from, to int) {
	if to == parser.Unlimited {
		p.leaf("REPEAT: %v-", from)
		return
	}
	p.leaf("REPEAT: %v-%v", from, to)
}

func (p *eventPrinter) BeginGroup() { p.enter("BEGIN GROUP") }

func (p *eventPrinter) EndGroup() { p.leave("END GROUP") }

func (p *eventPrinter) BeginOption() { p.enter("BEGIN OPTION") }

func (p *eventPrinter) EndOption() { p.leave("END OPTION") }

func (p *eventPrinter) Rulename(name string) { p.leaf("RULENAME: %q", name) }

func (p *eventPrinter) Prose(text string) { p.leaf("PROSE: %q", text) }

func (p *eventPrinter) QuotedString(text string) { p.leaf("QUOTED STRING: %q", text) }

func (p *eventPrinter) Number(flag parser.NumberFlag, value string) {
	p.leaf("NUMBER (%v): %v", flag, value)
}

func (p *eventPrinter) NumberRange(flag parser.NumberFlag, from, to string) {
	p.leaf("NUMBER RANGE (%v): %v-%v", flag, from, to)
}
