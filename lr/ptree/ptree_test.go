package ptree

import (
	"errors"
	"strings"
	"testing"

	"github.com/heyimalaap/lrparse"
	"github.com/heyimalaap/lrparse/lr"
	"github.com/heyimalaap/lrparse/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeGrammar(t *testing.T) *lr.Grammar {
	g, err := lr.FromProductions("Expressions", []lr.Production{
		{LHS: "E'", RHS: "E"},
		{LHS: "E", RHS: "E+T"},
		{LHS: "E", RHS: "T"},
		{LHS: "T", RHS: "T*F"},
		{LHS: "T", RHS: "F"},
		{LHS: "F", RHS: "(E)"},
		{LHS: "F", RHS: "id"},
	}, map[string]lrparse.TokType{"id": scanner.Ident})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func derivation(g *lr.Grammar, serials ...int) []*lr.Rule {
	rules := make([]*lr.Rule, len(serials))
	for i, s := range serials {
		rules[i] = g.Rule(s)
	}
	return rules
}

func TestBuildTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	g := makeGrammar(t)
	tree, err := Build(g, derivation(g, 6, 4, 2, 6, 4, 1))
	if err != nil {
		t.Fatal(err)
	}
	if tree.Len() != 9 {
		t.Errorf("expected 9 nodes, have %d", tree.Len())
	}
	if y := strings.Join(tree.Yield(), " "); y != "id + id" {
		t.Errorf("expected yield 'id + id', have %q", y)
	}
	root := tree.Root()
	if tree.Label(root) != "E" || tree.Symbol(root) != g.StartSymbol() {
		t.Errorf("expected root E, have %s", tree.Label(root))
	}
	if _, ok := tree.Parent(root); ok {
		t.Errorf("root should not have a parent")
	}
	ch := tree.Children(root)
	if len(ch) != 3 || tree.Label(ch[0]) != "E" || tree.Label(ch[1]) != "+" || tree.Label(ch[2]) != "T" {
		t.Fatalf("expected root children E + T")
	}
	if p, ok := tree.Parent(ch[2]); !ok || p != root {
		t.Errorf("expected T to be a child of the root")
	}
	for _, leaf := range tree.Leaves() {
		if !tree.Symbol(leaf).IsTerminal() {
			t.Errorf("leaf %s is not a terminal", tree.Label(leaf))
		}
	}
	depth := 0
	tree.Walk(func(n, d int) bool {
		if d > depth {
			depth = d
		}
		return true
	})
	if depth != 4 {
		t.Errorf("expected tree depth 4, have %d", depth)
	}
}

func TestEmptyDerivation(t *testing.T) {
	g := makeGrammar(t)
	tree, err := Build(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Len() != 1 || Render(tree) != "E" {
		t.Errorf("expected single node tree, have %q", Render(tree))
	}
}

func TestInconsistentDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	g := makeGrammar(t)
	_, err := Build(g, derivation(g, 6, 1))
	var ierr *InternalConsistencyError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected internal consistency error, have %v", err)
	}
	if ierr.Rule.Serial != 6 || ierr.Step != 0 {
		t.Errorf("unexpected error details: %v", ierr)
	}
}

func TestPanicOnInternalError(t *testing.T) {
	g := makeGrammar(t)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected builder to panic")
		}
	}()
	Build(g, derivation(g, 6, 1), PanicOnInternalError(true))
}

func TestRenderChain(t *testing.T) {
	g := makeGrammar(t)
	tree, err := Build(g, derivation(g, 6, 4, 2))
	if err != nil {
		t.Fatal(err)
	}
	expected := "E\n|\n+\n|\nT\n|\n+\n|\nF\n|\n+\n|\nid"
	if r := Render(tree); r != expected {
		t.Errorf("unexpected rendering:\n%s", r)
	}
}

func TestRenderBranches(t *testing.T) {
	g := makeGrammar(t)
	tree, err := Build(g, derivation(g, 6, 4, 2, 6, 4, 1))
	if err != nil {
		t.Fatal(err)
	}
	expected := strings.Join([]string{
		"E",
		"|",
		"+---+--+",
		"|   |  |",
		"E   +  T",
		"|      |",
		"+      +",
		"|      |",
		"T      F",
		"|      |",
		"+      +",
		"|      |",
		"F      id",
		"|",
		"+",
		"|",
		"id",
	}, "\n")
	if r := Render(tree); r != expected {
		t.Errorf("unexpected rendering:\n%s\nexpected:\n%s", r, expected)
	}
}

func TestTextBoxLayers(t *testing.T) {
	tb := &textBox{}
	tb.puts(0, 0, "(")
	tb.puts(3, 0, "E")
	tb.hline(0, 1, 4)
	tb.vline(0, 1, 2)
	tb.vline(3, 1, 2)
	if s := tb.String(); s != "(  E\n+--+\n|  |" {
		t.Errorf("unexpected text box:\n%s", s)
	}
	tb.puts(1, 1, "x")
	if s := tb.String(); !strings.HasPrefix(s, "(  E\n+x-+") {
		t.Errorf("expected glyph to replace line, have:\n%s", s)
	}
	if tb.width() != 4 {
		t.Errorf("expected width 4, have %d", tb.width())
	}
}
