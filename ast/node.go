package ast

import (
	"sort"

	"github.com/abnf-go/abnf/parser"
)

type NodeType int

const (
	NodeUnknown NodeType = iota
	NodeProse
	NodeNumber
	NodeQuotedString
	NodeRulename
	NodeRepetition
	NodeGroup
	NodeOption
	NodeConcatenation
	NodeAlternation
	NodeRule
	NodeRulelist
)

func (t NodeType) String() string {
	switch t {
	case NodeProse:
		return "prose"
	case NodeNumber:
		return "number"
	case NodeQuotedString:
		return "quoted-string"
	case NodeRulename:
		return "rulename"
	case NodeRepetition:
		return "repetition"
	case NodeGroup:
		return "group"
	case NodeOption:
		return "option"
	case NodeConcatenation:
		return "concatenation"
	case NodeAlternation:
		return "alternation"
	case NodeRule:
		return "rule"
	case NodeRulelist:
		return "rulelist"
	}
	return "unknown"
}

// Node is a tagged member of the syntax tree. Aggregates own their children
// exclusively; rule-to-rule references are symbolic (by name), so the tree
// is acyclic regardless of grammar self-reference.
type Node interface {
	Type() NodeType
}

// aggregate is the seam the builder appends children through.
type aggregate interface {
	Node
	pushBack(n Node)
}

// ProseNode holds the text between "<" and ">".
type ProseNode struct {
	Text string
}

func (*ProseNode) Type() NodeType { return NodeProse }

// NumberNode holds a num-val: either a sequence of one or more literal
// values or a two-value range. Once Range is set no value may be appended.
type NumberNode struct {
	Flag   parser.NumberFlag
	Range  bool
	Values []string
}

func (*NumberNode) Type() NodeType { return NodeNumber }

func (n *NumberNode) setFirst(text string) {
	if len(n.Values) != 0 {
		panic("ast: number already has its first value")
	}
	n.Values = append(n.Values, text)
}

func (n *NumberNode) setLast(text string) {
	if len(n.Values) != 1 {
		panic("ast: number range needs exactly one prior value")
	}
	n.Range = true
	n.Values = append(n.Values, text)
}

func (n *NumberNode) pushNext(text string) {
	if len(n.Values) == 0 || n.Range {
		panic("ast: number cannot extend a range")
	}
	n.Values = append(n.Values, text)
}

// QuotedStringNode holds the literal text between the quotes.
type QuotedStringNode struct {
	Text string
}

func (*QuotedStringNode) Type() NodeType { return NodeQuotedString }

// RulenameNode holds the referenced rule's name.
type RulenameNode struct {
	Name string
}

func (*RulenameNode) Type() NodeType { return NodeRulename }

// RepetitionNode holds repeat bounds and exactly one inner element. The
// bounds default to (1, 1) when no repeat prefix was present; To is
// parser.Unlimited for the open-ended forms.
type RepetitionNode struct {
	From    int
	To      int
	Element Node
}

func newRepetitionNode() *RepetitionNode {
	return &RepetitionNode{
		From: 1,
		To:   1,
	}
}

func (*RepetitionNode) Type() NodeType { return NodeRepetition }

// GroupNode holds the ordered alternations between "(" and ")".
type GroupNode struct {
	Alternations []Node
}

func (*GroupNode) Type() NodeType { return NodeGroup }

func (n *GroupNode) pushBack(c Node) { n.Alternations = append(n.Alternations, c) }

// OptionNode holds the ordered alternations between "[" and "]".
type OptionNode struct {
	Alternations []Node
}

func (*OptionNode) Type() NodeType { return NodeOption }

func (n *OptionNode) pushBack(c Node) { n.Alternations = append(n.Alternations, c) }

// ConcatenationNode holds an ordered sequence of repetitions.
type ConcatenationNode struct {
	Repetitions []Node
}

func (*ConcatenationNode) Type() NodeType { return NodeConcatenation }

func (n *ConcatenationNode) pushBack(c Node) { n.Repetitions = append(n.Repetitions, c) }

// AlternationNode holds an ordered list of concatenations.
type AlternationNode struct {
	Concatenations []Node
}

func (*AlternationNode) Type() NodeType { return NodeAlternation }

func (n *AlternationNode) pushBack(c Node) { n.Concatenations = append(n.Concatenations, c) }

// RuleNode holds a named rule's body: the alternations accumulated by its
// base definition and any incremental alternatives, in definition order.
type RuleNode struct {
	Name         string
	Alternations []Node
}

func (*RuleNode) Type() NodeType { return NodeRule }

func (n *RuleNode) pushBack(c Node) { n.Alternations = append(n.Alternations, c) }

// RulelistNode maps each rule name to its rule, each name at most once.
type RulelistNode struct {
	Rules map[string]*RuleNode
}

func newRulelistNode() *RulelistNode {
	return &RulelistNode{
		Rules: map[string]*RuleNode{},
	}
}

func (*RulelistNode) Type() NodeType { return NodeRulelist }

func (n *RulelistNode) emplace(name string, rule *RuleNode) {
	n.Rules[name] = rule
}

func (n *RulelistNode) extract(name string) (*RuleNode, bool) {
	rule, found := n.Rules[name]
	if found {
		delete(n.Rules, name)
	}
	return rule, found
}

func (n *RulelistNode) contains(name string) bool {
	_, found := n.Rules[name]
	return found
}

// Names returns the rule names in lexicographic order.
func (n *RulelistNode) Names() []string {
	names := make([]string, 0, len(n.Rules))
	for name := range n.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
