package lr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/heyimalaap/lrparse/lr/iteratable"
	"github.com/npillmayer/schuko/tracing"
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi
// & Ullman, section 4.7.2 Constructing LR(1) Sets of Items.

// Compute the closure of an LR(1) item.
func (ga *LRAnalysis) closure(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// Compute the closure of a set of LR(1) items: for every item [A ➞ α • B β, a]
// add [B ➞ • γ, b] for all rules B ➞ γ and all b in FIRST(βa).
// Iteration visits items added during the iteration, which makes this a
// fixed point computation.
func (ga *LRAnalysis) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy()
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		B := item.PeekSymbol()
		if B == nil || B.IsTerminal() {
			continue
		}
		lookaheads := ga.FirstOf(item.Rest(), item.la)
		for _, r := range ga.g.FindNonTermRules(B) {
			for _, b := range lookaheads {
				C.Add(StartItem(r, b))
			}
		}
	}
	return C
}

func (ga *LRAnalysis) gotoSet(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	// for every item in closure C
	// if item in C:  [N ➞ … • A …, a]
	//     advance to [N ➞ … A • …, a]
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	return gotoset
}

func (ga *LRAnalysis) gotoSetClosure(i *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(i, A)
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := ga.closureSet(gotoset)
	if tracer().GetTraceLevel() >= tracing.LevelDebug {
		tracer().Debugf("goto(%s) --%s--> %s", itemSetString(i), A, itemSetString(gclosure))
	}
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int             // serial ID of this state
	items  *iteratable.Set // LR(1) items within this state
	merged []*MergedItem   // items grouped by rule and dot
	Accept bool            // does this state accept on EOF?
}

// Items returns the LR(1) items of a state, ordered by rule, dot and lookahead.
func (s *CFSMState) Items() []Item {
	return sortedItems(s.items)
}

// MergedItems returns the items of a state grouped by rule and dot, with
// lookaheads joined.
func (s *CFSMState) MergedItems() []*MergedItem {
	if s.merged == nil {
		s.merged = mergeItems(s.items)
	}
	return s.merged
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

// Create a state from an item set
func state(id int, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.IsComplete() && i.la.Name == EOFName {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// itemKey is the hashable form of an item.
type itemKey struct {
	Rule      int
	Dot       int
	Lookahead int
}

type itemSetKey struct {
	Items []itemKey
}

// fingerprint computes a hash over an item set, independent of the order in
// which items have been added. Equal sets have equal fingerprints.
func fingerprint(iset *iteratable.Set) string {
	key := itemSetKey{Items: make([]itemKey, 0, iset.Size())}
	for _, i := range sortedItems(iset) {
		key.Items = append(key.Items, itemKey{i.rule.Serial, i.dot, i.la.ID})
	}
	h, err := structhash.Hash(key, 1)
	if err != nil {
		tracer().Errorf("cannot hash item set: %v", err)
		return ""
	}
	return h
}

// Add a state to the CFSM. Checks first if state is present. Returns the
// state and true if it has been newly created.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool) {
	fp := fingerprint(iset)
	if s := c.findStateByItems(fp, iset); s != nil {
		return s, false
	}
	s := state(c.cfsmIds, iset)
	c.cfsmIds++
	c.states.Add(s)
	c.byID = append(c.byID, s)
	c.index[fp] = append(c.index[fp], s)
	return s, true
}

// Find a CFSM state by the contained item set. Fingerprints narrow down
// the candidates, set equality decides.
func (c *CFSM) findStateByItems(fp string, iset *iteratable.Set) *CFSMState {
	for _, s := range c.index[fp] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := &cfsmEdge{from: s0, to: s1, label: sym}
	c.edges.Add(e)
	return e
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// CFSM is the characteristic finite state machine for an LR(1) grammar,
// i.e. the canonical collection of LR(1) item sets together with the
// goto-transitions between them. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g       *Grammar                // this CFSM is for Grammar g
	states  *treeset.Set            // all the states
	byID    []*CFSMState            // states indexed by ID
	edges   *arraylist.List         // all the edges between states, in creation order
	index   map[string][]*CFSMState // states by fingerprint
	S0      *CFSMState              // start state
	cfsmIds int                     // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.index = make(map[string][]*CFSMState)
	return c
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	states := make([]*CFSMState, 0, c.states.Size())
	for _, x := range c.states.Values() {
		states = append(states, x.(*CFSMState))
	}
	return states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.byID) {
		return nil
	}
	return c.byID[id]
}

// EdgeCount returns the number of transitions.
func (c *CFSM) EdgeCount() int {
	return c.edges.Size()
}

// EachEdge calls f for every transition, in order of construction.
func (c *CFSM) EachEdge(f func(from, to *CFSMState, label *Symbol)) {
	c.edges.Each(func(_ int, x interface{}) {
		e := x.(*cfsmEdge)
		f(e.from, e.to, e.label)
	})
}

// Transition returns the goto-successor of a state for symbol A.
func (c *CFSM) Transition(from int, A *Symbol) (*CFSMState, bool) {
	s := c.State(from)
	if s == nil {
		return nil, false
	}
	for _, e := range c.allEdges(s) {
		if e.label == A {
			return e.to, true
		}
	}
	return nil, false
}

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for a canonical LR(1) parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *GotoTable
	actiontable  *ActionTable
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// Grammar returns the grammar tables are generated for.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns the table conflicts found by CreateTables(), ordered by
// the time of their detection.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the necessary data structures for a canonical LR(1)
// parser. Calling it more than once has no effect.
func (lrgen *TableGenerator) CreateTables() {
	if lrgen.actiontable != nil {
		return
	}
	lrgen.CFSM()
	lrgen.gototable = lrgen.buildGotoTable()
	lrgen.actiontable, lrgen.conflicts = lrgen.buildActionTable(true)
	lrgen.HasConflicts = len(lrgen.conflicts) > 0
	for _, c := range lrgen.conflicts {
		tracer().Infof("%v", c)
	}
	tracer().Infof("%d states, %d actions, %d gotos, %d conflicts", lrgen.dfa.Size(),
		lrgen.actiontable.Size(), lrgen.gototable.Size(), len(lrgen.conflicts))
}

// AcceptingStates returns all states of the CFSM which hold an accept action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]int, 0, 1)
	for _, state := range lrgen.dfa.States() {
		if state.Accept {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are processed in order of their IDs, and for every state goto-sets
// are computed over the grammar's alphabet. This makes state numbering
// deterministic.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	closure0 := lrgen.ga.closure(StartItem(G.rules[0], G.eof))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		G.EachSymbol(func(A *Symbol) interface{} {
			gotoset := lrgen.ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				return nil
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				S.Add(snew)
				snew.Accept = snew.containsCompletedStartRule()
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
			return nil
		})
	}
	for _, s := range cfsm.States() {
		s.merged = mergeItems(s.items)
	}
	tracer().Debugf("CFSM has %d states and %d edges", cfsm.Size(), cfsm.EdgeCount())
	return cfsm
}

// ===========================================================================

// buildGotoTable enters every transition on a non-terminal.
func (lrgen *TableGenerator) buildGotoTable() *GotoTable {
	gototable := newGotoTable(lrgen.g, lrgen.dfa.Size())
	lrgen.dfa.EachEdge(func(from, to *CFSMState, A *Symbol) {
		if !A.IsTerminal() {
			gototable.set(from.ID, A, to.ID)
		}
	})
	return gototable
}

// For building an ACTION table we first enter a shift for every transition
// on a terminal. Then we iterate over all the states of the CFSM, producing
// a reduce-entry for every completed item [A ➞ α •, a] with lookahead a,
// or an accept-entry for the completed start item on EOF.
//
// Reduce-entries are computed either from the LR(1) items or from the merged
// items of a state; both views result in identical tables.
//
// The first action entered into a cell wins. Conflicting actions are kept as
// secondary values in the cell and returned as a list of conflicts.
func (lrgen *TableGenerator) buildActionTable(merged bool) (*ActionTable, []Conflict) {
	actions := newActionTable(lrgen.g, lrgen.dfa.Size())
	var conflicts []Conflict
	enter := func(state int, a *Symbol, act Action) {
		if c, isConflict := actions.install(state, a, act); isConflict {
			conflicts = append(conflicts, c)
		}
	}
	lrgen.dfa.EachEdge(func(from, to *CFSMState, A *Symbol) {
		if A.IsTerminal() {
			enter(from.ID, A, Shift(to.ID))
		}
	})
	completed := func(state int, r *Rule, la *Symbol) {
		if r.Serial == 0 {
			if la == lrgen.g.eof {
				enter(state, la, Accept())
			}
			return
		}
		enter(state, la, Reduce(r.Serial))
	}
	for _, state := range lrgen.dfa.States() {
		if merged {
			for _, mi := range state.MergedItems() {
				if mi.IsComplete() {
					for _, la := range mi.lookaheads {
						completed(state.ID, mi.rule, la)
					}
				}
			}
			continue
		}
		for _, i := range state.Items() {
			if i.IsComplete() {
				completed(state.ID, i.rule, i.la)
			}
		}
	}
	return actions, conflicts
}

// Fingerprint returns a hash over the generated tables. Tables generated
// twice for the same grammar have identical fingerprints.
func (lrgen *TableGenerator) Fingerprint() (string, error) {
	if lrgen.actiontable == nil {
		return "", fmt.Errorf("tables not yet generated")
	}
	type cell struct {
		Row, Col int
		Value    int32
	}
	digest := struct {
		States  int
		Actions []cell
		Gotos   []cell
	}{States: lrgen.dfa.Size()}
	lrgen.actiontable.Each(func(state int, a *Symbol, act Action) {
		digest.Actions = append(digest.Actions, cell{state, a.ID, act.encode()})
	})
	lrgen.gototable.Each(func(state int, A *Symbol, target int) {
		digest.Gotos = append(digest.Gotos, cell{state, A.ID, int32(target)})
	})
	return structhash.Hash(digest, 1)
}

// ----------------------------------------------------------------------

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, item := range sortedItems(S) {
		if k == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}
