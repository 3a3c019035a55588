package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// LRAnalysis is an object for grammar analysis (computing FIRST-sets).
// Grammars are epsilon-free, therefore FIRST of a symbol sequence is FIRST
// of its leading symbol.
type LRAnalysis struct {
	g     *Grammar
	first map[*Symbol]*treeset.Set // sets of terminals, ordered by ID
}

// Analysis creates an analyser for a grammar and computes the FIRST-sets
// of all non-terminals.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:     g,
		first: make(map[*Symbol]*treeset.Set, len(g.nonterminals)),
	}
	ga.computeFirstSets()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// terminalComparator orders terminals by serial ID.
func terminalComparator(t1, t2 interface{}) int {
	return utils.IntComparator(t1.(*Symbol).ID, t2.(*Symbol).ID)
}

// Fixed point iteration: FIRST(A) grows from every rule A ➞ X …,
// until no set changes any more.
func (ga *LRAnalysis) computeFirstSets() {
	for _, N := range ga.g.nonterminals {
		ga.first[N] = treeset.NewWith(terminalComparator)
	}
	changed := true
	for rounds := 1; changed; rounds++ {
		changed = false
		for _, r := range ga.g.rules {
			F := ga.first[r.LHS]
			size := F.Size()
			if X := r.rhs[0]; X.IsTerminal() {
				F.Add(X)
			} else {
				F.Add(ga.first[X].Values()...)
			}
			if F.Size() > size {
				changed = true
			}
		}
		tracer().Debugf("FIRST sets, round %d, changed = %v", rounds, changed)
	}
}

// First returns FIRST(A), ordered by terminal ID. For a terminal A,
// FIRST(A) = { A }.
func (ga *LRAnalysis) First(A *Symbol) []*Symbol {
	if A == nil {
		return nil
	}
	if A.IsTerminal() {
		return []*Symbol{A}
	}
	F, ok := ga.first[A]
	if !ok {
		return nil
	}
	return asSymbols(F.Values())
}

// FirstOf returns FIRST(βa) for a sequence β followed by a lookahead a.
// As no symbol derives ε, this is FIRST(β₀) for non-empty β and {a} otherwise.
func (ga *LRAnalysis) FirstOf(beta []*Symbol, la *Symbol) []*Symbol {
	if len(beta) == 0 {
		return []*Symbol{la}
	}
	return ga.First(beta[0])
}

func asSymbols(vals []interface{}) []*Symbol {
	syms := make([]*Symbol, len(vals))
	for i, v := range vals {
		syms[i] = v.(*Symbol)
	}
	return syms
}
