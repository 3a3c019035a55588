package lr

import (
	"strings"
	"testing"
	"text/scanner"

	"github.com/heyimalaap/lrparse"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// referenceProductions is the classic expression grammar:
//
//	E' ➞ E
//	E  ➞ E + T  |  T
//	T  ➞ T * F  |  F
//	F  ➞ ( E )  |  id
var referenceProductions = []Production{
	{"E'", "E"},
	{"E", "E+T"},
	{"E", "T"},
	{"T", "T*F"},
	{"T", "F"},
	{"F", "(E)"},
	{"F", "id"},
}

var referenceTokens = map[string]lrparse.TokType{"id": scanner.Ident}

func referenceGrammar(t *testing.T) *Grammar {
	g, err := FromProductions("Expressions", referenceProductions, referenceTokens)
	if err != nil {
		t.Fatalf("cannot create reference grammar: %v", err)
	}
	return g
}

func builderGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expressions")
	b.LHS("E").N("E").T("+", '+').N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*", '*').N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("id", scanner.Ident).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot build grammar: %v", err)
	}
	return g
}

func names(syms []*Symbol) string {
	n := make([]string, len(syms))
	for i, A := range syms {
		n[i] = A.Name
	}
	return strings.Join(n, " ")
}

func TestSplitSymbols(t *testing.T) {
	nts := []string{"E'", "E", "T", "F"}
	for _, tc := range []struct {
		rhs  string
		want string
	}{
		{"E+T", "E + T"},
		{"T*F", "T * F"},
		{"(E)", "( E )"},
		{"id", "id"},
		{"E", "E"},
		{"id+id", "id + id"},
		{"E + T", "E + T"},
		{"num E", "num E"},
	} {
		got := strings.Join(SplitSymbols(tc.rhs, nts), " ")
		if got != tc.want {
			t.Errorf("SplitSymbols(%q) = %q, expected %q", tc.rhs, got, tc.want)
		}
	}
}

func TestSplitSymbolsLongestNonTerminal(t *testing.T) {
	got := SplitSymbols("Expr+Ex", []string{"Ex", "Expr"})
	if strings.Join(got, "|") != "Expr|+|Ex" {
		t.Errorf("expected longest non-terminal to match first, got %v", got)
	}
}

func TestReferenceGrammarSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	g := referenceGrammar(t)
	g.Dump()
	if g.Size() != 7 {
		t.Errorf("expected 7 rules, have %d", g.Size())
	}
	if n := names(g.Terminals()); n != "+ * ( ) id $" {
		t.Errorf("unexpected terminal order: %s", n)
	}
	if n := names(g.NonTerminals()); n != "E' E T F" {
		t.Errorf("unexpected non-terminal order: %s", n)
	}
	if n := names(g.Alphabet()); n != "E T F + * ( ) id" {
		t.Errorf("unexpected alphabet: %s", n)
	}
	if g.Start().Name != "E'" || g.StartSymbol().Name != "E" {
		t.Errorf("expected start rule E' → E, have %v", g.Rule(0))
	}
	if g.EOF().TokenType() != scanner.EOF {
		t.Errorf("expected EOF to have token type %d", scanner.EOF)
	}
	if g.SymbolByName(EOFName) != g.EOF() {
		t.Errorf("expected to find end marker %s by name", EOFName)
	}
	id, ok := g.TerminalForToken(scanner.Ident)
	if !ok || id.Name != "id" {
		t.Errorf("expected id for token type Ident, have %v", id)
	}
	plus, _ := g.TerminalForToken('+')
	if plus != g.SymbolByName("+") {
		t.Errorf("expected + to map to token type '+'")
	}
	if r := g.Rule(1); r.String() != "E → E + T" || r.Len() != 3 {
		t.Errorf("unexpected rule 1: %v", r)
	}
	if g.Rule(7) != nil || g.Rule(-1) != nil {
		t.Errorf("expected nil for out of range rules")
	}
	if len(g.FindNonTermRules(g.SymbolByName("F"))) != 2 {
		t.Errorf("expected 2 rules for F")
	}
}

func TestBuilderMatchesProductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	g1, g2 := referenceGrammar(t), builderGrammar(t)
	if g1.Size() != g2.Size() {
		t.Fatalf("grammars differ in size: %d vs %d", g1.Size(), g2.Size())
	}
	for i := 0; i < g1.Size(); i++ {
		if g1.Rule(i).String() != g2.Rule(i).String() {
			t.Errorf("rule %d differs: %v vs %v", i, g1.Rule(i), g2.Rule(i))
		}
	}
	if names(g1.Alphabet()) != names(g2.Alphabet()) {
		t.Errorf("alphabets differ")
	}
}

func TestBuilderAugmentsUniquely(t *testing.T) {
	b := NewGrammarBuilder("Primes")
	b.LHS("S").N("S'").End()
	b.LHS("S'").T("a", 'a').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Start().Name != "S''" {
		t.Errorf("expected augmented start symbol S'', have %s", g.Start())
	}
}

func TestGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	for _, tc := range []struct {
		name  string
		prods []Production
	}{
		{"epsilon", []Production{{"S'", "S"}, {"S", ""}}},
		{"no token type", []Production{{"S'", "S"}, {"S", "foo"}}},
		{"start on RHS", []Production{{"S'", "S"}, {"S", "aS'"}}},
		{"start rule", []Production{{"S'", "a"}, {"S", "a"}}},
		{"too small", []Production{{"S'", "S"}}},
		{"eof", []Production{{"S'", "S"}, {"S", "$"}}},
		{"eof as LHS", []Production{{"S'", "S"}, {"S", "a"}, {"$", "a"}}},
	} {
		if _, err := FromProductions(tc.name, tc.prods, nil); err == nil {
			t.Errorf("%s: expected grammar error", tc.name)
		}
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for non-terminal without rules")
	}
	b = NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).T("b", 1).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for shared token types")
	}
	b = NewGrammarBuilder("G")
	b.LHS("S").T("A", 1).End()
	b.LHS("A").T("a", 2).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for terminal with rules")
	}
	if _, err := NewGrammarBuilder("empty").Grammar(); err == nil {
		t.Errorf("expected error for empty grammar")
	}
}
