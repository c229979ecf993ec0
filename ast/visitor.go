package ast

import "github.com/abnf-go/abnf/parser"

// NopVisitor implements Visitor doing nothing. Embed it to observe only the
// events of interest.
type NopVisitor struct{}

func (NopVisitor) BeginDocument() {}

func (NopVisitor) EndDocument() {}

func (NopVisitor) BeginRule(name string) {}

func (NopVisitor) EndRule() {}

func (NopVisitor) BeginAlternation() {}

func (NopVisitor) EndAlternation() {}

func (NopVisitor) BeginConcatenation() {}

func (NopVisitor) EndConcatenation() {}

func (NopVisitor) BeginRepetition() {}

func (NopVisitor) EndRepetition() {}

func (NopVisitor) Repeat(from, to int) {}

func (NopVisitor) BeginGroup() {}

func (NopVisitor) EndGroup() {}

func (NopVisitor) BeginOption() {}

func (NopVisitor) EndOption() {}

func (NopVisitor) Rulename(name string) {}

func (NopVisitor) Prose(text string) {}

func (NopVisitor) QuotedString(text string) {}

func (NopVisitor) Number(flag parser.NumberFlag, value string) {}

func (NopVisitor) NumberRange(flag parser.NumberFlag, from, to string) {}
