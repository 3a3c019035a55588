package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	g := referenceGrammar(t)
	ga := Analysis(g)
	for _, N := range []string{"E'", "E", "T", "F"} {
		if f := names(ga.First(g.SymbolByName(N))); f != "( id" {
			t.Errorf("FIRST(%s) = {%s}, expected {( id}", N, f)
		}
	}
	plus := g.SymbolByName("+")
	if f := ga.First(plus); len(f) != 1 || f[0] != plus {
		t.Errorf("FIRST of a terminal should be the terminal itself, is %v", f)
	}
}

func TestFirstOfSequence(t *testing.T) {
	g := referenceGrammar(t)
	ga := Analysis(g)
	eof := g.EOF()
	if f := ga.FirstOf(nil, eof); len(f) != 1 || f[0] != eof {
		t.Errorf("FIRST(ε$) should be {$}, is %v", f)
	}
	rest := g.Rule(1).RHS()[1:] // + T
	if f := ga.FirstOf(rest, eof); names(f) != "+" {
		t.Errorf("FIRST(+T$) should be {+}, is %v", f)
	}
	if f := ga.FirstOf(g.Rule(3).RHS(), eof); names(f) != "( id" {
		t.Errorf("FIRST(T*F$) should be {( id}, is %v", f)
	}
}

func TestFirstSetsIndirect(t *testing.T) {
	b := NewGrammarBuilder("Indirect")
	b.LHS("S").N("A").T("x", 'x').End()
	b.LHS("A").N("B").End()
	b.LHS("A").T("a", 'a').End()
	b.LHS("B").N("A").T("y", 'y').End()
	b.LHS("B").T("b", 'b').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	for _, N := range []string{"S", "A", "B"} {
		if f := names(ga.First(g.SymbolByName(N))); f != "a b" {
			t.Errorf("FIRST(%s) = {%s}, expected {a b}", N, f)
		}
	}
}
