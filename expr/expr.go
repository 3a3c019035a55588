/*
Package expr is the reference expression language of lrparse:

	E' ➞ E
	E  ➞ E + T  |  T
	T  ➞ T * F  |  F
	F  ➞ ( E )  |  id

Grammar and parser tables are built once, on first use, and shared read-only
between all parses. Parse may be called from concurrent goroutines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package expr

import (
	"fmt"
	"sync"

	"github.com/heyimalaap/lrparse"
	"github.com/heyimalaap/lrparse/lr"
	"github.com/heyimalaap/lrparse/lr/clr"
	"github.com/heyimalaap/lrparse/lr/ptree"
	"github.com/heyimalaap/lrparse/lr/scanner"
	"github.com/heyimalaap/lrparse/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'lrparse.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrparse.lr")
}

// Token kinds of the expression language.
const (
	Identifier lrparse.TokType = scanner.Ident
	Plus       lrparse.TokType = '+'
	Star       lrparse.TokType = '*'
	LParen     lrparse.TokType = '('
	RParen     lrparse.TokType = ')'
	EndOfInput lrparse.TokType = scanner.EOF
	Invalid    lrparse.TokType = scanner.Invalid
)

// KindName returns a readable name for a token kind.
func KindName(k lrparse.TokType) string {
	switch k {
	case Identifier:
		return "Identifier"
	case Plus:
		return "Plus"
	case Star:
		return "Star"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case EndOfInput:
		return "EndOfInput"
	case Invalid:
		return "Invalid"
	}
	return fmt.Sprintf("TokType(%d)", k)
}

// Productions of the expression grammar. Production 0 is the augmented
// start rule.
var Productions = []lr.Production{
	{LHS: "E'", RHS: "E"},
	{LHS: "E", RHS: "E+T"},
	{LHS: "E", RHS: "T"},
	{LHS: "T", RHS: "T*F"},
	{LHS: "T", RHS: "F"},
	{LHS: "F", RHS: "(E)"},
	{LHS: "F", RHS: "id"},
}

// Tokens maps the multi-character terminal to its token kind. Single-rune
// terminals use their rune value.
var Tokens = map[string]lrparse.TokType{"id": Identifier}

// ScannerKind selects the token source of a Language.
type ScannerKind string

// Available token sources.
const (
	LexMachine  ScannerKind = "lexmachine" // compiled lexmachine DFA, the default
	TextScanner ScannerKind = "go"         // text/scanner restricted to the expression tokens
)

// ParseScannerKind checks a scanner name as found in configuration files.
func ParseScannerKind(name string) (ScannerKind, error) {
	switch k := ScannerKind(name); k {
	case LexMachine, TextScanner:
		return k, nil
	}
	return "", fmt.Errorf("unknown scanner %q", name)
}

// Language bundles the grammar, its LR(1) tables and a lexer.
// After creation it is read-only.
type Language struct {
	Grammar *lr.Grammar
	Tables  *lr.TableGenerator
	lexer   *lexmach.LMAdapter
	kind    ScannerKind
}

var (
	reference    *Language
	referenceErr error
	once         sync.Once
)

// Reference returns the shared expression language, creating grammar, tables
// and lexer on the first call.
func Reference() (*Language, error) {
	once.Do(func() {
		reference, referenceErr = newLanguage()
	})
	return reference, referenceErr
}

func newLanguage() (*Language, error) {
	g, err := lr.FromProductions("Expressions", Productions, Tokens)
	if err != nil {
		return nil, fmt.Errorf("expression grammar: %w", err)
	}
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	lrgen.CreateTables()
	if lrgen.HasConflicts {
		return nil, fmt.Errorf("expression grammar is not LR(1): %v", lrgen.Conflicts())
	}
	lexer, err := newLexer()
	if err != nil {
		return nil, fmt.Errorf("expression lexer: %w", err)
	}
	tracer().Infof("expression language: %d states", lrgen.CFSM().Size())
	return &Language{Grammar: g, Tables: lrgen, lexer: lexer, kind: LexMachine}, nil
}

func newLexer() (*lexmach.LMAdapter, error) {
	literals := []string{"+", "*", "(", ")"}
	keywords := []string{"id"}
	ids := map[string]int{
		"+":  int(Plus),
		"*":  int(Star),
		"(":  int(LParen),
		")":  int(RParen),
		"id": int(Identifier),
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
	}
	return lexmach.NewLMAdapter(init, literals, keywords, ids)
}

// WithScanner returns a copy of l tokenizing with the given kind of
// scanner. Grammar and tables stay shared.
func (l *Language) WithScanner(kind ScannerKind) *Language {
	c := *l
	c.kind = kind
	return &c
}

// ScannerKind returns the token source used by Scanner.
func (l *Language) ScannerKind() ScannerKind {
	return l.kind
}

// Scanner creates a tokenizer for an input line.
func (l *Language) Scanner(input string) (scanner.Tokenizer, error) {
	switch l.kind {
	case TextScanner:
		return scanner.GoTokenizer("expr", input,
			scanner.Keywords(Tokens), scanner.Operators("+*()")), nil
	case LexMachine, "":
		return l.lexer.Scanner(input)
	}
	return nil, fmt.Errorf("unknown scanner %q", l.kind)
}

// Parser creates a new parser for the language. Parsers are cheap; the
// tables are shared.
func (l *Language) Parser(opts ...clr.Option) *clr.Parser {
	return clr.NewParser(l.Grammar, l.Tables.GotoTable(), l.Tables.ActionTable(), opts...)
}

// Parse parses an input line and returns the parse tree together with the
// derivation, i.e. the reductions in the order they were performed.
//
// Errors are of type *clr.LexError, *clr.SyntaxError or
// *ptree.InternalConsistencyError.
func (l *Language) Parse(input string, opts ...clr.Option) (*ptree.Tree, []*lr.Rule, error) {
	scan, err := l.Scanner(input)
	if err != nil {
		return nil, nil, err
	}
	scan.SetErrorHandler(func(e error) {
		tracer().Debugf("expression scanner: %v", e)
	})
	p := l.Parser(opts...)
	if _, err := p.Parse(l.Tables.CFSM().S0, scan); err != nil {
		return nil, nil, err
	}
	derivation := p.Derivation()
	tree, err := ptree.Build(l.Grammar, derivation)
	if err != nil {
		return nil, derivation, err
	}
	return tree, derivation, nil
}

// Parse parses an input line with the reference language.
func Parse(input string, opts ...clr.Option) (*ptree.Tree, []*lr.Rule, error) {
	lang, err := Reference()
	if err != nil {
		return nil, nil, err
	}
	return lang.Parse(input, opts...)
}
