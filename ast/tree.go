package ast

import (
	"github.com/abnf-go/abnf/parser"
)

// Visitor receives the events of a tree traversal. The shape mirrors the
// combinators' event protocol; children are visited in stored order, and
// number leaves arrive either as one NumberRange or as a series of Number
// calls.
type Visitor interface {
	BeginDocument()
	EndDocument()
	BeginRule(name string)
	EndRule()
	BeginAlternation()
	EndAlternation()
	BeginConcatenation()
	EndConcatenation()
	BeginRepetition()
	EndRepetition()
	// Repeat reports a repetition's bounds; it fires only when they differ
	// from the default (1, 1), right after BeginRepetition.
	Repeat(from, to int)
	BeginGroup()
	EndGroup()
	BeginOption()
	EndOption()
	Rulename(name string)
	Prose(text string)
	QuotedString(text string)
	Number(flag parser.NumberFlag, value string)
	NumberRange(flag parser.NumberFlag, from, to string)
}

// Tree is the result of a parse: the rulelist root together with the error
// code, line, and detail recorded on the way. A partial tree remains
// traversable after a failed parse.
type Tree struct {
	code     parser.ErrorCode
	line     int
	detail   string
	root     *RulelistNode
	complete bool
}

func (t *Tree) ErrorCode() parser.ErrorCode {
	return t.code
}

// ErrorLine returns the 1-based line the recorded error was reported at.
func (t *Tree) ErrorLine() int {
	return t.line
}

// ErrorText returns the recorded error's detail, e.g. the offending rule
// name.
func (t *Tree) ErrorText() string {
	return t.detail
}

// Complete reports whether the parse consumed the whole input. A successful
// but incomplete parse means junk follows a valid grammar prefix.
func (t *Tree) Complete() bool {
	return t.complete
}

func (t *Tree) RulesCount() int {
	if t.root == nil {
		return 0
	}
	return len(t.root.Rules)
}

// Rule returns the named rule, or nil.
func (t *Tree) Rule(name string) *RuleNode {
	if t.root == nil {
		return nil
	}
	return t.root.Rules[name]
}

// Names returns all rule names in lexicographic order.
func (t *Tree) Names() []string {
	if t.root == nil {
		return nil
	}
	return t.root.Names()
}

// Root returns the rulelist node, which may be nil after a parse that never
// reached the document events.
func (t *Tree) Root() *RulelistNode {
	return t.root
}

// Traverse walks the tree depth-first, left to right, reporting every node
// to v. Rules are visited in lexicographic name order. Traversing the same
// tree twice yields identical event sequences.
func (t *Tree) Traverse(v Visitor) {
	if t.root == nil {
		return
	}
	v.BeginDocument()
	for _, name := range t.root.Names() {
		traverseNode(v, t.root.Rules[name])
	}
	v.EndDocument()
}

func traverseNode(v Visitor, n Node) {
	switch n := n.(type) {
	case *ProseNode:
		v.Prose(n.Text)
	case *NumberNode:
		if n.Range {
			v.NumberRange(n.Flag, n.Values[0], n.Values[1])
		} else {
			for _, value := range n.Values {
				v.Number(n.Flag, value)
			}
		}
	case *QuotedStringNode:
		v.QuotedString(n.Text)
	case *RulenameNode:
		v.Rulename(n.Name)
	case *RepetitionNode:
		v.BeginRepetition()
		if n.From != 1 || n.To != 1 {
			v.Repeat(n.From, n.To)
		}
		traverseNode(v, n.Element)
		v.EndRepetition()
	case *GroupNode:
		v.BeginGroup()
		for _, c := range n.Alternations {
			traverseNode(v, c)
		}
		v.EndGroup()
	case *OptionNode:
		v.BeginOption()
		for _, c := range n.Alternations {
			traverseNode(v, c)
		}
		v.EndOption()
	case *ConcatenationNode:
		v.BeginConcatenation()
		for _, c := range n.Repetitions {
			traverseNode(v, c)
		}
		v.EndConcatenation()
	case *AlternationNode:
		v.BeginAlternation()
		for _, c := range n.Concatenations {
			traverseNode(v, c)
		}
		v.EndAlternation()
	case *RuleNode:
		v.BeginRule(n.Name)
		for _, c := range n.Alternations {
			traverseNode(v, c)
		}
		v.EndRule()
	case *RulelistNode:
		v.BeginDocument()
		for _, name := range n.Names() {
			traverseNode(v, n.Rules[name])
		}
		v.EndDocument()
	}
}

// Option configures a parse.
type Option func(*treeContext)

// MaxQuotedStringLength limits the length of quoted literals; zero (the
// default) disables the check.
func MaxQuotedStringLength(n int) Option {
	return func(c *treeContext) {
		c.maxQuotedStringLength = n
	}
}

// Parse runs the rulelist production at *pos and advances it past the
// parsed input. The returned tree carries the recorded error code, if any;
// when the code is parser.Success but Complete is false, the input held
// junk after a valid grammar prefix.
func Parse(pos *parser.Iterator, opts ...Option) *Tree {
	ctx := newTreeContext(0)
	for _, opt := range opts {
		opt(ctx)
	}
	parser.AdvanceRulelist(pos, ctx)
	return &Tree{
		code:     ctx.code,
		line:     ctx.line,
		detail:   ctx.detail,
		root:     ctx.root,
		complete: pos.End(),
	}
}

// ParseString parses a whole grammar source.
func ParseString(src string, opts ...Option) *Tree {
	pos := parser.NewIterator(src)
	return Parse(&pos, opts...)
}
