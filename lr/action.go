package lr

import (
	"fmt"
	"math"

	"github.com/heyimalaap/lrparse/lr/sparse"
)

// ActionKind is the kind of an entry in the ACTION table.
type ActionKind int8

// Kinds of parser actions. The zero value is the error action.
const (
	ErrorAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

// Action is an entry of the ACTION table.
type Action struct {
	Kind  ActionKind
	State int // target state of a shift
	Rule  int // rule serial of a reduction
}

// Shift creates a shift action to state s.
func Shift(s int) Action {
	return Action{Kind: ShiftAction, State: s}
}

// Reduce creates an action to reduce by rule r.
func Reduce(r int) Action {
	return Action{Kind: ReduceAction, Rule: r}
}

// Accept creates the accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.State)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Rule)
	case AcceptAction:
		return "acc"
	}
	return "err"
}

// Table cells hold a shift as the target state n ≥ 0, accept as -1 and
// a reduction by rule p as -(p+2).
const errorCell int32 = math.MinInt32

func (a Action) encode() int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.State)
	case ReduceAction:
		return int32(-a.Rule - 2)
	case AcceptAction:
		return -1
	}
	return errorCell
}

func decodeAction(v int32) Action {
	switch {
	case v == errorCell:
		return Action{}
	case v >= 0:
		return Shift(int(v))
	case v == -1:
		return Accept()
	}
	return Reduce(int(-v - 2))
}

// Conflict records a table cell for which more than one action has been
// computed. The winner is the action entered first.
type Conflict struct {
	State    int
	Terminal *Symbol
	Winner   Action
	Loser    Action
}

// IsShiftReduce is true for shift/reduce conflicts, false for
// reduce/reduce conflicts.
func (c Conflict) IsShiftReduce() bool {
	return c.Winner.Kind == ShiftAction || c.Loser.Kind == ShiftAction
}

func (c Conflict) String() string {
	kind := "reduce/reduce"
	if c.IsShiftReduce() {
		kind = "shift/reduce"
	}
	return fmt.Sprintf("%s conflict in state %d on %s: %s wins over %s",
		kind, c.State, c.Terminal, c.Winner, c.Loser)
}

// --- ACTION table ----------------------------------------------------------

// ActionTable maps (state, terminal) to a parser action. Rows are states,
// columns are terminal IDs.
type ActionTable struct {
	g      *Grammar
	matrix *sparse.IntMatrix
}

func newActionTable(g *Grammar, states int) *ActionTable {
	return &ActionTable{
		g:      g,
		matrix: sparse.NewIntMatrix(states, len(g.terminals)),
	}
}

// Action returns the action for a state and a lookahead terminal.
// Cells without an entry hold the error action.
func (t *ActionTable) Action(state int, a *Symbol) Action {
	if !t.inRange(state, a) {
		return Action{}
	}
	v, ok := t.matrix.Primary(state, a.ID)
	if !ok {
		return Action{}
	}
	return decodeAction(v)
}

// Shadowed returns the losing action of a conflicting cell, if any.
func (t *ActionTable) Shadowed(state int, a *Symbol) (Action, bool) {
	if !t.inRange(state, a) {
		return Action{}, false
	}
	v, ok := t.matrix.Shadow(state, a.ID)
	if !ok {
		return Action{}, false
	}
	return decodeAction(v), true
}

// Size returns the number of non-error cells.
func (t *ActionTable) Size() int {
	return t.matrix.Count()
}

// States returns the number of rows.
func (t *ActionTable) States() int {
	return t.matrix.Rows()
}

// Each calls f for every non-error cell, ordered by state, then terminal ID.
func (t *ActionTable) Each(f func(state int, a *Symbol, act Action)) {
	t.matrix.Each(func(i, j int, v int32) {
		f(i, t.g.terminals[j], decodeAction(v))
	})
}

func (t *ActionTable) inRange(state int, a *Symbol) bool {
	return a != nil && a.IsTerminal() && t.matrix.Contains(state, a.ID)
}

// install enters an action into a cell. The first action entered wins;
// entering a different action into an occupied cell records it as
// shadowed and reports the conflict.
func (t *ActionTable) install(state int, a *Symbol, act Action) (Conflict, bool) {
	if t.matrix.Put(state, a.ID, act.encode()) {
		return Conflict{}, false
	}
	return Conflict{State: state, Terminal: a, Winner: t.Action(state, a), Loser: act}, true
}

// --- GOTO table ------------------------------------------------------------

// GotoTable maps (state, non-terminal) to a successor state.
type GotoTable struct {
	g      *Grammar
	matrix *sparse.IntMatrix
}

func newGotoTable(g *Grammar, states int) *GotoTable {
	return &GotoTable{
		g:      g,
		matrix: sparse.NewIntMatrix(states, len(g.nonterminals)),
	}
}

// Goto returns the successor state for a state and a non-terminal.
func (t *GotoTable) Goto(state int, A *Symbol) (int, bool) {
	if A == nil || A.IsTerminal() {
		return 0, false
	}
	v, ok := t.matrix.Primary(state, A.ID)
	return int(v), ok
}

// Size returns the number of entries.
func (t *GotoTable) Size() int {
	return t.matrix.Count()
}

// Each calls f for every entry, ordered by state, then non-terminal ID.
func (t *GotoTable) Each(f func(state int, A *Symbol, target int)) {
	t.matrix.Each(func(i, j int, v int32) {
		f(i, t.g.nonterminals[j], int(v))
	})
}

func (t *GotoTable) set(state int, A *Symbol, target int) {
	t.matrix.Set(state, A.ID, int32(target))
}
