package parser

import "strconv"

// The combinators below correspond one-to-one with the productions of
// RFC 5234. Each one attempts to match its production at *pos: on success it
// advances *pos past the match and returns true; on a non-match it leaves
// *pos untouched and returns false. That discipline is what makes the
// element disjunction unambiguous; every combinator works on a copy of the
// position and commits through compareAndAssign.

// AdvanceProseValue walks prose-val = "<" *(%x20-3D / %x3F-7E) ">".
func AdvanceProseValue(pos *Iterator, ctx Context) bool {
	p := *pos
	if p.End() || p.Char() != '<' {
		return false
	}
	p.Next()
	first := p
	for !p.End() && IsProseValueChar(p.Char()) {
		p.Next()
	}
	if p.End() || p.Char() != '>' {
		return false
	}
	text := textBetween(first, p)
	p.Next()
	if !ctx.Prose(text) {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceNumberValue walks num-val = "%" (bin-val / dec-val / hex-val) where
// each sub-form is a radix letter, one or more digits, and optionally either
// a "."-separated sequence or a "-" range.
//
// The value callbacks fire as the digits are read: FirstNumber for the first
// value, NextNumber for each further sequence value, and LastNumber to
// close — with the range's second value, or with empty text for a sequence
// or single value. If the production fails after FirstNumber has fired, a
// closing LastNumber with empty text is still emitted so an observer's
// in-construction state stays balanced.
func AdvanceNumberValue(pos *Iterator, ctx Context) bool {
	p := *pos
	if p.End() || p.Char() != '%' {
		return false
	}
	p.Next()
	if p.End() {
		return false
	}

	var flag NumberFlag
	var advance func(*Iterator) bool
	var isDigit func(byte) bool
	switch p.Char() {
	case 'b':
		flag, advance, isDigit = NumberBinary, AdvanceBits, IsBit
	case 'd':
		flag, advance, isDigit = NumberDecimal, AdvanceDigits, IsDigit
	case 'x':
		flag, advance, isDigit = NumberHexadecimal, AdvanceHexdigits, IsHexdigit
	default:
		return false
	}
	p.Next()

	first := p
	if !advance(&p) {
		return false
	}
	if !ctx.FirstNumber(flag, textBetween(first, p)) {
		return false
	}

	if !p.End() {
		switch p.Char() {
		case '-':
			p.Next()
			if p.End() || !isDigit(p.Char()) {
				ctx.LastNumber(flag, "")
				return false
			}
			first = p
			advance(&p)
			if !ctx.LastNumber(flag, textBetween(first, p)) {
				return false
			}
			return compareAndAssign(pos, p)
		case '.':
			for !p.End() && p.Char() == '.' {
				p.Next()
				if p.End() || !isDigit(p.Char()) {
					ctx.LastNumber(flag, "")
					return false
				}
				first = p
				advance(&p)
				if !ctx.NextNumber(flag, textBetween(first, p)) {
					return false
				}
			}
			if !ctx.LastNumber(flag, "") {
				return false
			}
			return compareAndAssign(pos, p)
		}
	}

	if !ctx.LastNumber(flag, "") {
		return false
	}
	return compareAndAssign(pos, p)
}

func isQuotedChar(ch byte) bool {
	return ch == 0x20 || ch == 0x21 || (ch >= 0x23 && ch <= 0x7E)
}

// AdvanceQuotedString walks char-val = DQUOTE *(%x20-21 / %x23-7E) DQUOTE.
// A missing closing quote reports UnbalancedQuote, a character outside the
// permitted set reports BadQuotedChar, and a literal longer than the
// context's limit reports MaxLengthExceeded; all three fail the production.
func AdvanceQuotedString(pos *Iterator, ctx Context) bool {
	p := *pos
	if p.End() || !IsDQuote(p.Char()) {
		return false
	}
	p.Next()

	maxLength := ctx.MaxQuotedStringLength()
	first := p
	for {
		if p.End() {
			ctx.Error(UnbalancedQuote, p)
			return false
		}
		ch := p.Char()
		if IsDQuote(ch) {
			break
		}
		if !isQuotedChar(ch) {
			ctx.Error(BadQuotedChar, p)
			return false
		}
		if maxLength > 0 && p.Offset()-first.Offset() >= maxLength {
			ctx.Error(MaxLengthExceeded, p)
			return false
		}
		p.Next()
	}
	text := textBetween(first, p)
	p.Next()
	if !ctx.QuotedString(text) {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceRepeat walks repeat = 1*DIGIT / (*DIGIT "*" *DIGIT) and reports the
// bounds through Repeat. The exact form N maps to (N, N); a missing lower
// bound defaults to 0 and a missing upper bound to Unlimited. A range whose
// lower bound exceeds its upper bound reports BadRepeatRange and fails.
func AdvanceRepeat(pos *Iterator, ctx Context) bool {
	p := *pos
	first := p
	AdvanceDigits(&p)
	lower := textBetween(first, p)

	if p.End() || p.Char() != '*' {
		if lower == "" {
			return false
		}
		n, err := strconv.Atoi(lower)
		if err != nil {
			ctx.Error(BadRepeatRange, p)
			return false
		}
		if !ctx.Repeat(n, n) {
			return false
		}
		return compareAndAssign(pos, p)
	}
	p.Next()

	first = p
	AdvanceDigits(&p)
	upper := textBetween(first, p)

	from := 0
	to := Unlimited
	var err error
	if lower != "" {
		from, err = strconv.Atoi(lower)
	}
	if err == nil && upper != "" {
		to, err = strconv.Atoi(upper)
	}
	if err != nil || (to != Unlimited && from > to) {
		ctx.Error(BadRepeatRange, p)
		return false
	}
	if !ctx.Repeat(from, to) {
		return false
	}
	return compareAndAssign(pos, p)
}

// advanceCommentText matches a comment without emitting events and returns
// the text between ";" and the line end.
func advanceCommentText(pos *Iterator) (string, bool) {
	p := *pos
	if p.End() || p.Char() != ';' {
		return "", false
	}
	p.Next()
	first := p
	for !p.End() && !IsCR(p.Char()) && !IsLF(p.Char()) {
		p.Next()
	}
	text := textBetween(first, p)
	AdvanceNewline(&p)
	compareAndAssign(pos, p)
	return text, true
}

// AdvanceComment walks the relaxed comment form ";" followed by anything up
// to a line terminator. The terminator is consumed; end of input is accepted
// in its place.
func AdvanceComment(pos *Iterator, ctx Context) bool {
	p := *pos
	text, ok := advanceCommentText(&p)
	if !ok {
		return false
	}
	if !ctx.Comment(text) {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceCommentNewline walks c-nl = comment / CRLF.
func AdvanceCommentNewline(pos *Iterator, ctx Context) bool {
	if AdvanceComment(pos, ctx) {
		return true
	}
	return AdvanceNewline(pos)
}

// AdvanceCommentWhitespace walks c-wsp = WSP / (c-nl WSP). The whole
// c-nl WSP alternative is validated before any event fires; a comment whose
// line is not continued by white space is a plain non-match, not a comment
// event.
func AdvanceCommentWhitespace(pos *Iterator, ctx Context) bool {
	p := *pos
	if p.End() {
		return false
	}
	if IsWhitespace(p.Char()) {
		p.Next()
		return compareAndAssign(pos, p)
	}
	var text string
	comment := false
	if t, ok := advanceCommentText(&p); ok {
		text = t
		comment = true
	} else if !AdvanceNewline(&p) {
		return false
	}
	if p.End() || !IsWhitespace(p.Char()) {
		return false
	}
	p.Next()
	if comment && !ctx.Comment(text) {
		return false
	}
	return compareAndAssign(pos, p)
}

func advanceCommentWhitespaces(pos *Iterator, ctx Context, min int) bool {
	return advanceN(pos, min, Unlimited, func(p *Iterator) bool {
		return AdvanceCommentWhitespace(p, ctx)
	})
}

// advanceRulenameText walks rulename = ALPHA *(ALPHA / DIGIT / "-") without
// emitting events; AdvanceRule reads the defining name through it.
func advanceRulenameText(pos *Iterator) (string, bool) {
	p := *pos
	if p.End() || !IsAlpha(p.Char()) {
		return "", false
	}
	first := p
	p.Next()
	for !p.End() {
		ch := p.Char()
		if !IsAlpha(ch) && !IsDigit(ch) && ch != '-' {
			break
		}
		p.Next()
	}
	name := textBetween(first, p)
	compareAndAssign(pos, p)
	return name, true
}

// AdvanceRulename walks a rule reference used as an element and reports it
// through Rulename.
func AdvanceRulename(pos *Iterator, ctx Context) bool {
	p := *pos
	name, ok := advanceRulenameText(&p)
	if !ok {
		return false
	}
	if !ctx.Rulename(name) {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceElement walks element = rulename / group / option / num-val /
// char-val / prose-val, trying the alternatives in that order. The first
// combinator that makes progress wins.
func AdvanceElement(pos *Iterator, ctx Context) bool {
	if AdvanceRulename(pos, ctx) {
		return true
	}
	if AdvanceGroup(pos, ctx) {
		return true
	}
	if AdvanceOption(pos, ctx) {
		return true
	}
	if AdvanceNumberValue(pos, ctx) {
		return true
	}
	if AdvanceQuotedString(pos, ctx) {
		return true
	}
	return AdvanceProseValue(pos, ctx)
}

// AdvanceRepetition walks repetition = [repeat] element.
func AdvanceRepetition(pos *Iterator, ctx Context) bool {
	p := *pos
	if !ctx.BeginRepetition() {
		return false
	}
	AdvanceRepeat(&p, ctx)
	ok := AdvanceElement(&p, ctx)
	if !ctx.EndRepetition(ok) || !ok {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceConcatenation walks concatenation = repetition *(1*c-wsp repetition).
// Whitespace that is not followed by a further repetition stays unconsumed;
// it belongs to the enclosing production.
func AdvanceConcatenation(pos *Iterator, ctx Context) bool {
	p := *pos
	if !ctx.BeginConcatenation() {
		return false
	}
	ok := AdvanceRepetition(&p, ctx)
	if ok {
		for {
			q := p
			if !advanceCommentWhitespaces(&q, ctx, 1) {
				break
			}
			if !AdvanceRepetition(&q, ctx) {
				break
			}
			p = q
		}
	}
	if !ctx.EndConcatenation(ok) || !ok {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceAlternation walks
// alternation = concatenation *(*c-wsp "/" *c-wsp concatenation).
func AdvanceAlternation(pos *Iterator, ctx Context) bool {
	p := *pos
	if !ctx.BeginAlternation() {
		return false
	}
	ok := AdvanceConcatenation(&p, ctx)
	if ok {
		for {
			q := p
			advanceCommentWhitespaces(&q, ctx, 0)
			if q.End() || q.Char() != '/' {
				break
			}
			q.Next()
			advanceCommentWhitespaces(&q, ctx, 0)
			if !AdvanceConcatenation(&q, ctx) {
				break
			}
			p = q
		}
	}
	if !ctx.EndAlternation(ok) || !ok {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceGroup walks group = "(" *c-wsp alternation *c-wsp ")".
func AdvanceGroup(pos *Iterator, ctx Context) bool {
	return advanceBracketed(pos, ctx, '(', ')', Context.BeginGroup, Context.EndGroup)
}

// AdvanceOption walks option = "[" *c-wsp alternation *c-wsp "]".
func AdvanceOption(pos *Iterator, ctx Context) bool {
	return advanceBracketed(pos, ctx, '[', ']', Context.BeginOption, Context.EndOption)
}

func advanceBracketed(pos *Iterator, ctx Context, open, close byte,
	begin func(Context) bool, end func(Context, bool) bool) bool {

	p := *pos
	if p.End() || p.Char() != open {
		return false
	}
	p.Next()
	if !begin(ctx) {
		return false
	}
	advanceCommentWhitespaces(&p, ctx, 0)
	ok := AdvanceAlternation(&p, ctx)
	if ok {
		advanceCommentWhitespaces(&p, ctx, 0)
		ok = !p.End() && p.Char() == close
		if ok {
			p.Next()
		}
	}
	if !end(ctx, ok) || !ok {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceDefinedAs walks defined-as = *c-wsp ("=" / "=/") *c-wsp and reports
// whether the definition is an incremental alternative.
func AdvanceDefinedAs(pos *Iterator, ctx Context) (incremental bool, ok bool) {
	p := *pos
	advanceCommentWhitespaces(&p, ctx, 0)
	if p.End() || p.Char() != '=' {
		return false, false
	}
	p.Next()
	if !p.End() && p.Char() == '/' {
		incremental = true
		p.Next()
	}
	advanceCommentWhitespaces(&p, ctx, 0)
	compareAndAssign(pos, p)
	return incremental, true
}

// AdvanceElements walks elements = alternation *c-wsp.
func AdvanceElements(pos *Iterator, ctx Context) bool {
	p := *pos
	if !AdvanceAlternation(&p, ctx) {
		return false
	}
	advanceCommentWhitespaces(&p, ctx, 0)
	return compareAndAssign(pos, p)
}

// AdvanceRule walks rule = rulename defined-as elements c-nl. BeginRule
// fires once the name and defined-as form are known; if the context rejects
// the rule there (a duplicate name, an unknown incremental target) the
// production is abandoned without an EndRule. End of input is accepted in
// place of the terminating c-nl.
func AdvanceRule(pos *Iterator, ctx Context) bool {
	p := *pos
	at := p
	name, ok := advanceRulenameText(&p)
	if !ok {
		return false
	}
	incremental, ok := AdvanceDefinedAs(&p, ctx)
	if !ok {
		return false
	}
	if !ctx.BeginRule(name, incremental, at) {
		return false
	}
	ok = AdvanceElements(&p, ctx)
	if ok && !p.End() {
		ok = AdvanceCommentNewline(&p, ctx)
	}
	if !ctx.EndRule(name, incremental, ok) || !ok {
		return false
	}
	return compareAndAssign(pos, p)
}

// AdvanceRulelist walks rulelist = 1*( rule / (*c-wsp c-nl) ), the grammar's
// top production. The whole parse is enclosed by BeginDocument/EndDocument,
// whether or not any rule was found.
func AdvanceRulelist(pos *Iterator, ctx Context) bool {
	p := *pos
	if !ctx.BeginDocument() {
		return false
	}
	matched := false
	for {
		if AdvanceRule(&p, ctx) {
			matched = true
			continue
		}
		q := p
		advanceCommentWhitespaces(&q, ctx, 0)
		if !AdvanceCommentNewline(&q, ctx) {
			break
		}
		p = q
		matched = true
	}
	if !ctx.EndDocument(matched) || !matched {
		return false
	}
	return compareAndAssign(pos, p)
}
