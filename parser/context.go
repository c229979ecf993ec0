package parser

// NumberFlag tells which radix a num-val was written in.
type NumberFlag int

const (
	NumberUnspecified NumberFlag = iota
	NumberBinary
	NumberDecimal
	NumberHexadecimal
)

func (f NumberFlag) String() string {
	switch f {
	case NumberBinary:
		return "binary"
	case NumberDecimal:
		return "decimal"
	case NumberHexadecimal:
		return "hexadecimal"
	}
	return "unspecified"
}

// Context receives the structured events the combinators emit while they
// descend through a grammar. Every method returns a continuation flag:
// returning false aborts the enclosing production, which then fails exactly
// like a non-match.
//
// Each aggregate production is enclosed by a Begin/End pair; the End carries
// whether the production matched. Begin events fire before any event of the
// production's children, End events after all of them, so the event stream of
// a valid grammar is a properly nested tree.
//
// Embed NopContext to implement only the events of interest.
type Context interface {
	// Error reports a grammar error found inside a partially matched
	// production. The combinator that reported it returns failure.
	Error(code ErrorCode, near Iterator)

	// MaxQuotedStringLength is queried once per quoted string; zero
	// disables the length check.
	MaxQuotedStringLength() int

	BeginDocument() bool
	EndDocument(ok bool) bool

	// BeginRule fires after the rule's name and defined-as have been read;
	// incremental distinguishes "=/" from "=". The at iterator points at
	// the rule's name.
	BeginRule(name string, incremental bool, at Iterator) bool
	EndRule(name string, incremental bool, ok bool) bool

	BeginAlternation() bool
	EndAlternation(ok bool) bool

	BeginConcatenation() bool
	EndConcatenation(ok bool) bool

	BeginRepetition() bool
	EndRepetition(ok bool) bool

	// Repeat reports the bounds of a repeat prefix; to is Unlimited for
	// the open-ended forms.
	Repeat(from, to int) bool

	BeginGroup() bool
	EndGroup(ok bool) bool

	BeginOption() bool
	EndOption(ok bool) bool

	// Rulename fires on a rule reference used as an element.
	Rulename(name string) bool

	Prose(text string) bool
	QuotedString(text string) bool

	// FirstNumber opens a num-val with its first value. NextNumber appends
	// a sequence value (after "."). LastNumber with non-empty text closes
	// a range (after "-"); with empty text it closes a sequence or a
	// single-value num-val.
	FirstNumber(flag NumberFlag, text string) bool
	NextNumber(flag NumberFlag, text string) bool
	LastNumber(flag NumberFlag, text string) bool

	// Comment fires with the text between ";" and the line end.
	Comment(text string) bool
}

// NopContext implements Context doing nothing and never aborting.
type NopContext struct{}

func (NopContext) Error(code ErrorCode, near Iterator) {}

func (NopContext) MaxQuotedStringLength() int { return 0 }

func (NopContext) BeginDocument() bool { return true }

func (NopContext) EndDocument(ok bool) bool { return ok }

func (NopContext) BeginRule(name string, incremental bool, at Iterator) bool { return true }

func (NopContext) EndRule(name string, incremental bool, ok bool) bool { return ok }

func (NopContext) BeginAlternation() bool { return true }

func (NopContext) EndAlternation(ok bool) bool { return ok }

func (NopContext) BeginConcatenation() bool { return true }

func (NopContext) EndConcatenation(ok bool) bool { return ok }

func (NopContext) BeginRepetition() bool { return true }

func (NopContext) EndRepetition(ok bool) bool { return ok }

func (NopContext) Repeat(from, to int) bool { return true }

func (NopContext) BeginGroup() bool { return true }

func (NopContext) EndGroup(ok bool) bool { return ok }

func (NopContext) BeginOption() bool { return true }

func (NopContext) EndOption(ok bool) bool { return ok }

func (NopContext) Rulename(name string) bool { return true }

func (NopContext) Prose(text string) bool { return true }

func (NopContext) QuotedString(text string) bool { return true }

func (NopContext) FirstNumber(flag NumberFlag, text string) bool { return true }

func (NopContext) NextNumber(flag NumberFlag, text string) bool { return true }

func (NopContext) LastNumber(flag NumberFlag, text string) bool { return true }

func (NopContext) Comment(text string) bool { return true }
