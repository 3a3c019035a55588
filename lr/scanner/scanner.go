/*
Package scanner defines the token source parsers of package lr read from.

Two implementations exist: GoTokenizer, built on the standard library's
text/scanner and restricted to a fixed set of keywords and operator runes,
and an adapter for lexmachine in sub-package lexmach. Both report input they
cannot recognize as a token of type Invalid and never stop early.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package scanner

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/heyimalaap/lrparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrparse.scanner")
}

// Token types shared by all scanners of this module.
const (
	EOF   = scanner.EOF
	Ident = scanner.Ident
)

// Invalid is the token type scanners report for input they cannot recognize.
const Invalid = -100

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lrparse.Token
	SetErrorHandler(func(error))
	// Remaining returns the input not yet consumed by NextToken.
	Remaining() string
}

// TextTokenizer splits input into identifiers and single-rune operators.
// Identifiers are looked up in a keyword table, runes in an operator set;
// anything else becomes an Invalid token. Create one with GoTokenizer.
type TextTokenizer struct {
	sc        scanner.Scanner
	input     string
	keywords  map[string]lrparse.TokType
	operators string
	Error     func(error)
}

var _ Tokenizer = (*TextTokenizer)(nil)

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a tokenizer for input. Without options every
// identifier and every rune is accepted, identifiers having type Ident and
// runes their own value.
func GoTokenizer(sourceID string, input string, opts ...Option) *TextTokenizer {
	t := &TextTokenizer{input: input, Error: logError}
	t.sc.Init(strings.NewReader(input))
	t.sc.Filename = sourceID
	t.sc.Mode = scanner.ScanIdents
	t.sc.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *TextTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *TextTokenizer) NextToken() lrparse.Token {
	r := t.sc.Scan()
	from := uint64(t.sc.Position.Offset)
	to := uint64(t.sc.Pos().Offset)
	if r == scanner.EOF {
		end := uint64(len(t.input))
		return MakeDefaultToken(EOF, "", lrparse.Span{end, end})
	}
	lexeme := t.sc.TokenText()
	kind, ok := t.classify(r, lexeme)
	if !ok {
		token := MakeDefaultToken(Invalid, lexeme, lrparse.Span{from, to})
		token.Val = fmt.Errorf("unrecognized input %q at position %d", lexeme, from)
		t.Error(token.Val.(error))
		return token
	}
	tracer().Debugf("token %d = %q @%d", kind, lexeme, from)
	return MakeDefaultToken(kind, lexeme, lrparse.Span{from, to})
}

func (t *TextTokenizer) classify(r rune, lexeme string) (lrparse.TokType, bool) {
	if r == scanner.Ident {
		if t.keywords == nil {
			return Ident, true
		}
		kind, ok := t.keywords[lexeme]
		return kind, ok
	}
	if t.operators == "" || strings.ContainsRune(t.operators, r) {
		return lrparse.TokType(r), true
	}
	return Invalid, false
}

// Remaining is part of the Tokenizer interface.
func (t *TextTokenizer) Remaining() string {
	pos := t.sc.Pos().Offset
	if pos >= len(t.input) {
		return ""
	}
	return t.input[pos:]
}

// --- Options ---------------------------------------------------------------

// Option configures a TextTokenizer.
type Option func(*TextTokenizer)

// Keywords restricts identifiers to the keys of kw, each mapped to its
// token type. Other identifiers are Invalid.
func Keywords(kw map[string]lrparse.TokType) Option {
	return func(t *TextTokenizer) {
		t.keywords = kw
	}
}

// Operators restricts single-rune tokens to the runes in ops.
func Operators(ops string) Option {
	return func(t *TextTokenizer) {
		t.operators = ops
	}
}

// --- Tokens ----------------------------------------------------------------

// DefaultToken is the token type produced by both scanners of this module.
// Val is nil for regular tokens and holds the error for Invalid ones.
type DefaultToken struct {
	kind   lrparse.TokType
	lexeme string
	Val    interface{}
	span   lrparse.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ lrparse.TokType, lexeme string, span lrparse.Span) DefaultToken {
	return DefaultToken{kind: typ, lexeme: lexeme, span: span}
}

// TokType is part of interface lrparse.Token.
func (t DefaultToken) TokType() lrparse.TokType { return t.kind }

// Value is part of interface lrparse.Token.
func (t DefaultToken) Value() interface{} { return t.Val }

// Lexeme is part of interface lrparse.Token.
func (t DefaultToken) Lexeme() string { return t.lexeme }

// Span is part of interface lrparse.Token.
func (t DefaultToken) Span() lrparse.Span { return t.span }

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q(%d)@%d", t.lexeme, t.kind, t.span.From())
}
