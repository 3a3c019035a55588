package lr

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func referenceTables(t *testing.T) *TableGenerator {
	lrgen := NewTableGenerator(Analysis(referenceGrammar(t)))
	lrgen.CreateTables()
	return lrgen
}

func TestClosureStartItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	g := referenceGrammar(t)
	ga := Analysis(g)
	C := ga.closure(StartItem(g.Rule(0), g.EOF()))
	if C.Size() != 17 {
		t.Errorf("expected closure of start item to have 17 items, has %d", C.Size())
	}
	again := ga.closureSet(C)
	if !again.Equals(C) {
		t.Errorf("closure is not idempotent")
	}
	merged := mergeItems(C)
	if len(merged) != 7 {
		t.Fatalf("expected 7 merged items, have %d", len(merged))
	}
	if s := merged[0].String(); s != "[E' → • E, $]" {
		t.Errorf("unexpected first merged item %s", s)
	}
	if s := merged[3].String(); s != "[T → • T * F, $/*/+]" {
		t.Errorf("unexpected merged item %s", s)
	}
}

func TestItemOperations(t *testing.T) {
	g := referenceGrammar(t)
	i := StartItem(g.Rule(1), g.EOF())
	if i.PeekSymbol().Name != "E" || len(i.Prefix()) != 0 || names(i.Rest()) != "+ T" {
		t.Errorf("unexpected start item %v", i)
	}
	i = i.Advance().Advance().Advance()
	if !i.IsComplete() || i.PeekSymbol() != nil || i.Rest() != nil {
		t.Errorf("expected item to be complete: %v", i)
	}
	if i.String() != "[E → E + T •, $]" {
		t.Errorf("unexpected item string %s", i)
	}
	if i.Advance() != i {
		t.Errorf("advancing a completed item should not change it")
	}
}

func TestCanonicalCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	lrgen := referenceTables(t)
	cfsm := lrgen.CFSM()
	if cfsm.Size() != 22 {
		t.Errorf("expected 22 states, have %d", cfsm.Size())
	}
	if cfsm.EdgeCount() != 38 {
		t.Errorf("expected 38 transitions, have %d", cfsm.EdgeCount())
	}
	g := lrgen.Grammar()
	for _, tr := range []struct {
		from   int
		symbol string
		to     int
	}{
		{0, "E", 1}, {0, "T", 2}, {0, "F", 3}, {0, "(", 4}, {0, "id", 5},
		{1, "+", 6}, {2, "*", 7},
		{4, "E", 8}, {4, "(", 11}, {4, "id", 12},
		{6, "T", 13}, {7, "F", 14}, {8, "+", 15}, {8, ")", 16},
		{11, "E", 18}, {15, "T", 19}, {17, "F", 20}, {18, ")", 21},
	} {
		s, ok := cfsm.Transition(tr.from, g.SymbolByName(tr.symbol))
		if !ok || s.ID != tr.to {
			t.Errorf("expected goto(%d, %s) = %d, have %v", tr.from, tr.symbol, tr.to, s)
		}
	}
	if _, ok := cfsm.Transition(5, g.SymbolByName("+")); ok {
		t.Errorf("state 5 should not have a transition on +")
	}
	for _, s := range cfsm.States() {
		if s.Items() == nil || len(s.Items()) == 0 {
			t.Errorf("state %d is empty", s.ID)
		}
	}
	if cfsm.State(21) == nil || cfsm.State(22) != nil || cfsm.State(-1) != nil {
		t.Errorf("expected states to be addressable by IDs 0…21 only")
	}
	if n := len(cfsm.State(1).MergedItems()); n != 2 {
		t.Errorf("expected state 1 to have 2 merged items, has %d", n)
	}
	if la := cfsm.State(5).MergedItems()[0].LookaheadString(); la != "$/*/+" {
		t.Errorf("expected lookaheads $/*/+ for state 5, have %s", la)
	}
}

func TestActionAndGotoTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	lrgen := referenceTables(t)
	if lrgen.HasConflicts {
		t.Fatalf("reference grammar should be LR(1), has conflicts %v", lrgen.Conflicts())
	}
	g := lrgen.Grammar()
	actions := lrgen.ActionTable()
	shifts, reduces, accepts := 0, 0, 0
	actions.Each(func(state int, a *Symbol, act Action) {
		switch act.Kind {
		case ShiftAction:
			shifts++
		case ReduceAction:
			reduces++
		case AcceptAction:
			accepts++
			if state != 1 || a != g.EOF() {
				t.Errorf("unexpected accept at (%d,%s)", state, a)
			}
		}
	})
	if actions.Size() != 56 || shifts != 23 || reduces != 32 || accepts != 1 {
		t.Errorf("expected 56 actions (23 shift, 32 reduce, 1 accept), have %d (%d, %d, %d)",
			actions.Size(), shifts, reduces, accepts)
	}
	if lrgen.GotoTable().Size() != 15 {
		t.Errorf("expected 15 goto entries, have %d", lrgen.GotoTable().Size())
	}
	for _, c := range []struct {
		state  int
		symbol string
		want   string
	}{
		{0, "id", "s5"}, {1, "$", "acc"}, {1, "+", "s6"}, {2, "$", "r2"}, {2, "*", "s7"},
		{3, "+", "r4"}, {5, "$", "r6"}, {12, ")", "r6"}, {16, "$", "r5"}, {0, "+", "err"},
	} {
		if act := actions.Action(c.state, g.SymbolByName(c.symbol)); act.String() != c.want {
			t.Errorf("expected ACTION[%d,%s] = %s, have %s", c.state, c.symbol, c.want, act)
		}
	}
	for _, c := range []struct {
		state  int
		symbol string
		want   int
	}{
		{0, "E", 1}, {0, "T", 2}, {0, "F", 3}, {4, "E", 8}, {11, "T", 9}, {17, "F", 20},
	} {
		if target, ok := lrgen.GotoTable().Goto(c.state, g.SymbolByName(c.symbol)); !ok || target != c.want {
			t.Errorf("expected GOTO[%d,%s] = %d, have %d", c.state, c.symbol, c.want, target)
		}
	}
	if _, ok := lrgen.GotoTable().Goto(1, g.SymbolByName("E")); ok {
		t.Errorf("expected no GOTO entry for (1,E)")
	}
	if acc := lrgen.AcceptingStates(); len(acc) != 1 || acc[0] != 1 {
		t.Errorf("expected state 1 to be the only accepting state, have %v", acc)
	}
}

func TestTablesAreDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	fp1, err := referenceTables(t).Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(Analysis(builderGrammar(t)))
	if _, err := lrgen.Fingerprint(); err == nil {
		t.Errorf("expected error for fingerprint of missing tables")
	}
	lrgen.CreateTables()
	fp2, err := lrgen.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fp1 == "" || fp1 != fp2 {
		t.Errorf("expected identical table fingerprints, have %q and %q", fp1, fp2)
	}
}

func TestMergedItemsGiveSameTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	lrgen := referenceTables(t)
	dump := func(at *ActionTable) string {
		var b strings.Builder
		at.Each(func(state int, a *Symbol, act Action) {
			b.WriteString(fmt.Sprintf("%d,%s=%s;", state, a, act))
		})
		return b.String()
	}
	fromItems, c1 := lrgen.buildActionTable(false)
	fromMerged, c2 := lrgen.buildActionTable(true)
	if len(c1) != 0 || len(c2) != 0 {
		t.Errorf("expected no conflicts")
	}
	if dump(fromItems) != dump(fromMerged) {
		t.Errorf("ACTION tables from items and merged items differ")
	}
}

func TestShiftWinsConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("E").N("E").T("+", '+').N("E").End()
	b.LHS("E").T("id", scanner.Ident).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	if !lrgen.HasConflicts || len(lrgen.Conflicts()) == 0 {
		t.Fatalf("expected conflicts for ambiguous grammar")
	}
	for _, c := range lrgen.Conflicts() {
		if !c.IsShiftReduce() || c.Winner.Kind != ShiftAction || c.Loser != Reduce(1) {
			t.Errorf("expected shift to win over reduce, have %v", c)
		}
		shadow, ok := lrgen.ActionTable().Shadowed(c.State, c.Terminal)
		if !ok || shadow != c.Loser {
			t.Errorf("expected losing action to be kept in table, have %v", shadow)
		}
		if act := lrgen.ActionTable().Action(c.State, c.Terminal); act != c.Winner {
			t.Errorf("expected winner %v in table, have %v", c.Winner, act)
		}
	}
}

func TestCreateTablesTwice(t *testing.T) {
	lrgen := referenceTables(t)
	at := lrgen.ActionTable()
	lrgen.CreateTables()
	if lrgen.ActionTable() != at {
		t.Errorf("expected CreateTables to be a one-shot operation")
	}
}

func TestExports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrparse.lr")
	defer teardown()
	//
	lrgen := referenceTables(t)
	var html bytes.Buffer
	if err := ActionTableAsHTML(lrgen, &html); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html.String(), "<td>acc</td>") || !strings.Contains(html.String(), "state 21") {
		t.Errorf("ACTION table HTML is missing entries")
	}
	html.Reset()
	if err := GotoTableAsHTML(lrgen, &html); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html.String(), "GOTO table of size = 15") {
		t.Errorf("GOTO table HTML has unexpected header")
	}
	var dot bytes.Buffer
	if err := lrgen.CFSM().WriteGraphViz(&dot); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot.String(), "s000 -> s001 [label=\"E\"]") {
		t.Errorf("Graphviz output is missing edge 0 → 1")
	}
	if err := lrgen.CFSM().CFSM2GraphViz(filepath.Join(t.TempDir(), "cfsm.dot")); err != nil {
		t.Errorf("cannot write Graphviz file: %v", err)
	}
	text := TablesAsText(lrgen)
	for _, s := range []string{"State", "acc", "s5", "r6", "id"} {
		if !strings.Contains(text, s) {
			t.Errorf("text tables are missing %q", s)
		}
	}
	items := ItemSetsAsText(lrgen.CFSM())
	if !strings.Contains(items, "I21") || !strings.Contains(items, "E' → • E, $") {
		t.Errorf("item set listing incomplete")
	}
}

func TestTextTableKeepsHeaderCase(t *testing.T) {
	text := TextTable([][]string{{"State", "id", "$"}, {"0", "s5", ""}}, 40, false)
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, rule and one row, have:\n%s", text)
	}
	if !strings.HasPrefix(lines[0], "State") || !strings.Contains(lines[0], "id") {
		t.Errorf("header should keep its case, have %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "-----") {
		t.Errorf("expected a rule below the header, have %q", lines[1])
	}
	if bordered := TextTable([][]string{{"id"}, {"s5"}}, 20, true); strings.Contains(bordered, "ID") {
		t.Errorf("bordered header should keep its case, have:\n%s", bordered)
	}
}

func TestExportsWithoutTables(t *testing.T) {
	lrgen := NewTableGenerator(Analysis(referenceGrammar(t)))
	var b bytes.Buffer
	if err := ActionTableAsHTML(lrgen, &b); err == nil {
		t.Errorf("expected error for missing ACTION table")
	}
	if TablesAsText(lrgen) != "" {
		t.Errorf("expected empty text for missing tables")
	}
}
