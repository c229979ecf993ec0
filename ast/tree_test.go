package ast

import (
	"fmt"
	"testing"

	"github.com/abnf-go/abnf/parser"
	"github.com/google/go-cmp/cmp"
)

func rep(e Node) *RepetitionNode {
	return &RepetitionNode{From: 1, To: 1, Element: e}
}

func repN(from, to int, e Node) *RepetitionNode {
	return &RepetitionNode{From: from, To: to, Element: e}
}

func cat(reps ...Node) *ConcatenationNode {
	return &ConcatenationNode{Repetitions: reps}
}

func alt(cats ...Node) *AlternationNode {
	return &AlternationNode{Concatenations: cats}
}

func option(alts ...Node) *OptionNode {
	return &OptionNode{Alternations: alts}
}

func rule(name string, alts ...Node) *RuleNode {
	return &RuleNode{Name: name, Alternations: alts}
}

func qs(text string) *QuotedStringNode {
	return &QuotedStringNode{Text: text}
}

func ref(name string) *RulenameNode {
	return &RulenameNode{Name: name}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		opts     []Option
		code     parser.ErrorCode
		line     int
		detail   string
		complete bool
		rules    int
		want     map[string]*RuleNode
	}{
		{
			caption:  "whitespace and comments yield an empty rulelist",
			src:      " ;c\n\n",
			complete: true,
			rules:    0,
		},
		{
			caption:  "single rule with quoted literal alternatives",
			src:      "WSP = \" \" / \"\\t\" ; white space\n",
			complete: true,
			rules:    1,
			want: map[string]*RuleNode{
				"WSP": rule("WSP", alt(cat(rep(qs(" "))), cat(rep(qs(`\t`))))),
			},
		},
		{
			caption:  "repeat, option, and rule references",
			src:      "repetition = [repeat] element\nrepeat = 1*DIGIT\nelement = DIGIT\n",
			complete: true,
			rules:    3,
			want: map[string]*RuleNode{
				"repetition": rule("repetition", alt(cat(
					rep(option(alt(cat(rep(ref("repeat")))))),
					rep(ref("element")),
				))),
				"repeat": rule("repeat", alt(cat(
					repN(1, parser.Unlimited, ref("DIGIT")),
				))),
				"element": rule("element", alt(cat(rep(ref("DIGIT"))))),
			},
		},
		{
			caption:  "incremental alternatives extend the base rule in order",
			src:      "R = \"a\"\nR =/ \"b\"\n",
			complete: true,
			rules:    1,
			want: map[string]*RuleNode{
				"R": rule("R",
					alt(cat(rep(qs("a")))),
					alt(cat(rep(qs("b")))),
				),
			},
		},
		{
			caption:  "a duplicated rule name is a semantic error",
			src:      "R = \"a\"\nR = \"b\"\n",
			code:     parser.RulenameDuplicated,
			line:     2,
			detail:   "R",
			complete: false,
			rules:    1,
		},
		{
			caption:  "an incremental alternative without a base is a semantic error",
			src:      "R =/ \"a\"\n",
			code:     parser.RuleUndefined,
			line:     1,
			detail:   "R",
			complete: false,
			rules:    0,
		},
		{
			caption:  "a malformed number range fails without adding the rule",
			src:      "R = %b1-\n",
			complete: false,
			rules:    0,
		},
		{
			caption:  "a bare star means zero to no limit",
			src:      "R = *\"a\"\n",
			complete: true,
			rules:    1,
			want: map[string]*RuleNode{
				"R": rule("R", alt(cat(repN(0, parser.Unlimited, qs("a"))))),
			},
		},
		{
			caption:  "an empty quoted string is accepted",
			src:      "R = \"\"\n",
			complete: true,
			rules:    1,
			want: map[string]*RuleNode{
				"R": rule("R", alt(cat(rep(qs(""))))),
			},
		},
		{
			caption:  "a number sequence keeps its values in order",
			src:      "R = %b0.1.11\n",
			complete: true,
			rules:    1,
			want: map[string]*RuleNode{
				"R": rule("R", alt(cat(rep(&NumberNode{
					Flag:   parser.NumberBinary,
					Values: []string{"0", "1", "11"},
				})))),
			},
		},
		{
			caption:  "a number range keeps both bounds",
			src:      "R = %b00-11\n",
			complete: true,
			rules:    1,
			want: map[string]*RuleNode{
				"R": rule("R", alt(cat(rep(&NumberNode{
					Flag:   parser.NumberBinary,
					Range:  true,
					Values: []string{"00", "11"},
				})))),
			},
		},
		{
			caption:  "a comment without a trailing newline ends the last rule",
			src:      "R = \"a\" ; trailing",
			complete: true,
			rules:    1,
		},
		{
			caption:  "an over-long quoted literal is rejected",
			src:      "R = \"abcd\"\n",
			opts:     []Option{MaxQuotedStringLength(3)},
			code:     parser.MaxLengthExceeded,
			line:     1,
			complete: false,
			rules:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tree := ParseString(tt.src, tt.opts...)
			if tree.ErrorCode() != tt.code {
				t.Fatalf("unexpected error code; want: %v, got: %v", tt.code, tree.ErrorCode())
			}
			if tt.code != parser.Success {
				if tree.ErrorLine() != tt.line {
					t.Fatalf("unexpected error line; want: %v, got: %v", tt.line, tree.ErrorLine())
				}
				if tree.ErrorText() != tt.detail {
					t.Fatalf("unexpected error detail; want: %v, got: %v", tt.detail, tree.ErrorText())
				}
			}
			if tree.Complete() != tt.complete {
				t.Fatalf("unexpected completeness; want: %v, got: %v", tt.complete, tree.Complete())
			}
			if tree.RulesCount() != tt.rules {
				t.Fatalf("unexpected rules count; want: %v, got: %v", tt.rules, tree.RulesCount())
			}
			for name, want := range tt.want {
				got := tree.Rule(name)
				if got == nil {
					t.Fatalf("rule %v is missing", name)
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("unexpected rule %v (-want +got):\n%s", name, diff)
				}
			}
		})
	}
}

// recordVisitor logs a traversal as one string per event.
type recordVisitor struct {
	events []string
}

func (v *recordVisitor) log(format string, args ...interface{}) {
	v.events = append(v.events, fmt.Sprintf(format, args...))
}

func (v *recordVisitor) BeginDocument() { v.log("begin_document") }

func (v *recordVisitor) EndDocument() { v.log("end_document") }

func (v *recordVisitor) BeginRule(name string) { v.log("begin_rule %v", name) }

func (v *recordVisitor) EndRule() { v.log("end_rule") }

func (v *recordVisitor) BeginAlternation() { v.log("begin_alternation") }

func (v *recordVisitor) EndAlternation() { v.log("end_alternation") }

func (v *recordVisitor) BeginConcatenation() { v.log("begin_concatenation") }

func (v *recordVisitor) EndConcatenation() { v.log("end_concatenation") }

func (v *recordVisitor) BeginRepetition() { v.log("begin_repetition") }

func (v *recordVisitor) EndRepetition() { v.log("end_repetition") }

func (v *recordVisitor) Repeat(from, to int) { v.log("repeat %v %v", from, to) }

func (v *recordVisitor) BeginGroup() { v.log("begin_group") }

func (v *recordVisitor) EndGroup() { v.log("end_group") }

func (v *recordVisitor) BeginOption() { v.log("begin_option") }

func (v *recordVisitor) EndOption() { v.log("end_option") }

func (v *recordVisitor) Rulename(name string) { v.log("rulename %v", name) }

func (v *recordVisitor) Prose(text string) { v.log("prose %q", text) }

func (v *recordVisitor) QuotedString(text string) { v.log("quoted_string %q", text) }

func (v *recordVisitor) Number(flag parser.NumberFlag, value string) {
	v.log("number %v %v", flag, value)
}

func (v *recordVisitor) NumberRange(flag parser.NumberFlag, from, to string) {
	v.log("number_range %v %v %v", flag, from, to)
}

func TestTraverseEvents(t *testing.T) {
	tree := ParseString("WSP = \" \" / \"\\t\" ; white space\n")
	if tree.ErrorCode() != parser.Success {
		t.Fatalf("unexpected error: %v", tree.ErrorCode())
	}

	v := &recordVisitor{}
	tree.Traverse(v)

	want := []string{
		"begin_document",
		"begin_rule WSP",
		"begin_alternation",
		"begin_concatenation",
		"begin_repetition",
		`quoted_string " "`,
		"end_repetition",
		"end_concatenation",
		"begin_concatenation",
		"begin_repetition",
		`quoted_string "\\t"`,
		"end_repetition",
		"end_concatenation",
		"end_alternation",
		"end_rule",
		"end_document",
	}
	if diff := cmp.Diff(want, v.events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestTraverseIsIdempotent(t *testing.T) {
	tree := ParseString("A = 1*2( B / %x41-5A ) <prose>\nB = \"b\" ; b\n")
	if tree.ErrorCode() != parser.Success {
		t.Fatalf("unexpected error: %v", tree.ErrorCode())
	}

	first := &recordVisitor{}
	tree.Traverse(first)
	second := &recordVisitor{}
	tree.Traverse(second)

	if diff := cmp.Diff(first.events, second.events); diff != "" {
		t.Fatalf("two traversals must emit identical events (-first +second):\n%s", diff)
	}
}

// rebuildVisitor feeds a traversal back into a fresh builder context. The
// visitor's Number events are mapped onto the builder's first/next/last
// protocol; a pending number is closed by the next non-number event.
type rebuildVisitor struct {
	ctx *treeContext

	currentRule string
	numberFlag  parser.NumberFlag
	inNumber    bool
}

func (v *rebuildVisitor) flushNumber() {
	if v.inNumber {
		v.ctx.LastNumber(v.numberFlag, "")
		v.inNumber = false
	}
}

func (v *rebuildVisitor) BeginDocument() { v.ctx.BeginDocument() }

func (v *rebuildVisitor) EndDocument() { v.flushNumber(); v.ctx.EndDocument(true) }

func (v *rebuildVisitor) BeginRule(name string) {
	v.currentRule = name
	v.ctx.BeginRule(name, false, parser.Iterator{})
}

func (v *rebuildVisitor) EndRule() {
	v.flushNumber()
	v.ctx.EndRule(v.currentRule, false, true)
}

func (v *rebuildVisitor) BeginAlternation() { v.ctx.BeginAlternation() }

func (v *rebuildVisitor) EndAlternation() { v.flushNumber(); v.ctx.EndAlternation(true) }

func (v *rebuildVisitor) BeginConcatenation() { v.ctx.BeginConcatenation() }

func (v *rebuildVisitor) EndConcatenation() { v.flushNumber(); v.ctx.EndConcatenation(true) }

func (v *rebuildVisitor) BeginRepetition() { v.ctx.BeginRepetition() }

func (v *rebuildVisitor) EndRepetition() { v.flushNumber(); v.ctx.EndRepetition(true) }

func (v *rebuildVisitor) Repeat(from, to int) { v.ctx.Repeat(from, to) }

func (v *rebuildVisitor) BeginGroup() { v.ctx.BeginGroup() }

func (v *rebuildVisitor) EndGroup() { v.flushNumber(); v.ctx.EndGroup(true) }

func (v *rebuildVisitor) BeginOption() { v.ctx.BeginOption() }

func (v *rebuildVisitor) EndOption() { v.flushNumber(); v.ctx.EndOption(true) }

func (v *rebuildVisitor) Rulename(name string) { v.ctx.Rulename(name) }

func (v *rebuildVisitor) Prose(text string) { v.ctx.Prose(text) }

func (v *rebuildVisitor) QuotedString(text string) { v.ctx.QuotedString(text) }

func (v *rebuildVisitor) Number(flag parser.NumberFlag, value string) {
	if !v.inNumber {
		v.ctx.FirstNumber(flag, value)
		v.inNumber = true
		v.numberFlag = flag
		return
	}
	v.ctx.NextNumber(flag, value)
}

func (v *rebuildVisitor) NumberRange(flag parser.NumberFlag, from, to string) {
	v.ctx.FirstNumber(flag, from)
	v.ctx.LastNumber(flag, to)
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"WSP = \" \" / \"\\t\"\n",
		"R = %b0.1.11 / %x00-1F / 3*5\"x\" / <prose> / [ opt ] / ( grp )\n",
		"A = 1*B\nB = \"b\"\nA =/ \"a\"\n",
	}
	for _, src := range sources {
		tree := ParseString(src)
		if tree.ErrorCode() != parser.Success || !tree.Complete() {
			t.Fatalf("%q must parse cleanly", src)
		}

		rb := &rebuildVisitor{ctx: newTreeContext(0)}
		tree.Traverse(rb)

		if diff := cmp.Diff(tree.Root(), rb.ctx.root); diff != "" {
			t.Fatalf("%q: rebuilding from the traversal must reproduce the tree (-parsed +rebuilt):\n%s", src, diff)
		}
	}
}
