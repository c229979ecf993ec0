package ast

import (
	"fmt"

	"github.com/abnf-go/abnf/parser"
)

// treeContext assembles the syntax tree from the combinators' events. It
// keeps a LIFO stack of in-construction nodes: every Begin pushes, every End
// pops and, on success, attaches the popped node to the aggregate that is
// then on top. The combinator layer guarantees the event nesting, so a type
// mismatch at the top of the stack is a wiring bug, not an input error; the
// check helpers panic on it.
type treeContext struct {
	maxQuotedStringLength int

	stack []Node

	code   parser.ErrorCode
	line   int
	detail string
	root   *RulelistNode
}

var _ parser.Context = &treeContext{}

func newTreeContext(maxQuotedStringLength int) *treeContext {
	return &treeContext{
		maxQuotedStringLength: maxQuotedStringLength,
	}
}

func (c *treeContext) push(n Node) {
	c.stack = append(c.stack, n)
}

func (c *treeContext) pop() Node {
	if len(c.stack) == 0 {
		panic("ast: construction stack is empty")
	}
	n := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return n
}

func (c *treeContext) top() Node {
	if len(c.stack) == 0 {
		panic("ast: construction stack is empty")
	}
	return c.stack[len(c.stack)-1]
}

func (c *treeContext) topAggregate() aggregate {
	n, ok := c.top().(aggregate)
	if !ok {
		panic(fmt.Sprintf("ast: expected an aggregate on top of the stack, got %v", c.top().Type()))
	}
	return n
}

func (c *treeContext) topRepetition() *RepetitionNode {
	n, ok := c.top().(*RepetitionNode)
	if !ok {
		panic(fmt.Sprintf("ast: expected a repetition on top of the stack, got %v", c.top().Type()))
	}
	return n
}

func (c *treeContext) topNumber() *NumberNode {
	n, ok := c.top().(*NumberNode)
	if !ok {
		panic(fmt.Sprintf("ast: expected a number on top of the stack, got %v", c.top().Type()))
	}
	return n
}

func (c *treeContext) topRulelist() *RulelistNode {
	n, ok := c.top().(*RulelistNode)
	if !ok {
		panic(fmt.Sprintf("ast: expected the rulelist on top of the stack, got %v", c.top().Type()))
	}
	return n
}

// endComponent pops the current node and attaches it to the aggregate below
// when the production succeeded; a failed production's node is discarded.
func (c *treeContext) endComponent(ok bool) {
	n := c.pop()
	if ok {
		c.topAggregate().pushBack(n)
	}
}

func (c *treeContext) Error(code parser.ErrorCode, near parser.Iterator) {
	c.code = code
	c.line = near.Line()
}

func (c *treeContext) syntaxError(code parser.ErrorCode, at parser.Iterator, detail string) {
	c.code = code
	c.line = at.Line()
	c.detail = detail
}

func (c *treeContext) MaxQuotedStringLength() int {
	return c.maxQuotedStringLength
}

func (c *treeContext) BeginDocument() bool {
	c.push(newRulelistNode())
	return true
}

func (c *treeContext) EndDocument(ok bool) bool {
	if len(c.stack) != 1 {
		panic("ast: unbalanced construction stack at end of document")
	}
	c.root = c.topRulelist()
	c.pop()
	return ok
}

func (c *treeContext) BeginRule(name string, incremental bool, at parser.Iterator) bool {
	rulelist := c.topRulelist()
	if incremental {
		rule, found := rulelist.extract(name)
		if !found {
			c.syntaxError(parser.RuleUndefined, at, name)
			return false
		}
		c.push(rule)
		return true
	}
	if rulelist.contains(name) {
		c.syntaxError(parser.RulenameDuplicated, at, name)
		return false
	}
	c.push(&RuleNode{Name: name})
	return true
}

func (c *treeContext) EndRule(name string, incremental bool, ok bool) bool {
	n := c.pop()
	rule, isRule := n.(*RuleNode)
	if !isRule {
		panic(fmt.Sprintf("ast: expected a rule on top of the stack, got %v", n.Type()))
	}
	if ok {
		c.topRulelist().emplace(name, rule)
	}
	return ok
}

func (c *treeContext) BeginAlternation() bool {
	c.push(&AlternationNode{})
	return true
}

func (c *treeContext) EndAlternation(ok bool) bool {
	c.endComponent(ok)
	return ok
}

func (c *treeContext) BeginConcatenation() bool {
	c.push(&ConcatenationNode{})
	return true
}

func (c *treeContext) EndConcatenation(ok bool) bool {
	c.endComponent(ok)
	return ok
}

func (c *treeContext) BeginRepetition() bool {
	c.push(newRepetitionNode())
	return true
}

func (c *treeContext) EndRepetition(ok bool) bool {
	c.endComponent(ok)
	return ok
}

func (c *treeContext) Repeat(from, to int) bool {
	rep := c.topRepetition()
	rep.From = from
	rep.To = to
	return true
}

func (c *treeContext) BeginGroup() bool {
	c.push(&GroupNode{})
	return true
}

func (c *treeContext) EndGroup(ok bool) bool {
	n := c.pop()
	if ok {
		c.topRepetition().Element = n
	}
	return ok
}

func (c *treeContext) BeginOption() bool {
	c.push(&OptionNode{})
	return true
}

func (c *treeContext) EndOption(ok bool) bool {
	n := c.pop()
	if ok {
		c.topRepetition().Element = n
	}
	return ok
}

func (c *treeContext) Rulename(name string) bool {
	c.topRepetition().Element = &RulenameNode{Name: name}
	return true
}

func (c *treeContext) Prose(text string) bool {
	c.topRepetition().Element = &ProseNode{Text: text}
	return true
}

func (c *treeContext) QuotedString(text string) bool {
	c.topRepetition().Element = &QuotedStringNode{Text: text}
	return true
}

func (c *treeContext) FirstNumber(flag parser.NumberFlag, text string) bool {
	num := &NumberNode{Flag: flag}
	num.setFirst(text)
	c.push(num)
	return true
}

func (c *treeContext) NextNumber(flag parser.NumberFlag, text string) bool {
	c.topNumber().pushNext(text)
	return true
}

func (c *treeContext) LastNumber(flag parser.NumberFlag, text string) bool {
	num := c.topNumber()
	// A non-empty text closes a range; an empty one just ends a sequence.
	if text != "" {
		num.setLast(text)
	}
	c.pop()
	c.topRepetition().Element = num
	return true
}

func (c *treeContext) Comment(text string) bool {
	return true
}
