package lr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/heyimalaap/lrparse/lr/iteratable"
	"github.com/npillmayer/schuko/tracing"
)

// Item is an LR(1) item, i.e. a rule with a dot position and a lookahead
// terminal: [A ➞ α • β, a]. Items are values and may be used as map keys.
type Item struct {
	rule *Rule
	dot  int
	la   *Symbol
}

// StartItem returns the item [r ➞ • …, la].
func StartItem(r *Rule, la *Symbol) Item {
	return Item{rule: r, dot: 0, la: la}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position, 0…|RHS|.
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal of an item.
func (i Item) Lookahead() *Symbol {
	return i.la
}

// PeekSymbol returns the symbol after the dot, or nil for completed items.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Advance moves the dot one symbol to the right. Completed items are returned
// unchanged.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

// Rest returns the symbols following the symbol after the dot.
func (i Item) Rest() []*Symbol {
	if i.dot+1 >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot+1:]
}

// IsComplete is true if the dot is behind the last RHS symbol.
func (i Item) IsComplete() bool {
	return i.dot == len(i.rule.rhs)
}

func (i Item) String() string {
	return fmt.Sprintf("[%s → %s, %s]", i.rule.LHS, dottedRHS(i.rule, i.dot), i.la)
}

func dottedRHS(r *Rule, dot int) string {
	var b strings.Builder
	for k, A := range r.rhs {
		if k == dot {
			b.WriteString("• ")
		}
		b.WriteString(A.Name)
		if k < len(r.rhs)-1 {
			b.WriteByte(' ')
		}
	}
	if dot == len(r.rhs) {
		b.WriteString(" •")
	}
	return b.String()
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(8)
}

// compareItems orders items by rule serial, dot position and lookahead ID.
func compareItems(x1, x2 interface{}) int {
	i1, i2 := asItem(x1), asItem(x2)
	if c := utils.IntComparator(i1.rule.Serial, i2.rule.Serial); c != 0 {
		return c
	}
	if c := utils.IntComparator(i1.dot, i2.dot); c != 0 {
		return c
	}
	return utils.IntComparator(i1.la.ID, i2.la.ID)
}

// sortedItems returns the items of S in item order.
func sortedItems(S *iteratable.Set) []Item {
	vals := S.Values()
	utils.Sort(vals, compareItems)
	items := make([]Item, len(vals))
	for k, v := range vals {
		items[k] = asItem(v)
	}
	return items
}

// Dump is a debugging helper, tracing an item set.
func Dump(S *iteratable.Set) {
	if tracer().GetTraceLevel() < tracing.LevelDebug {
		return
	}
	for _, i := range sortedItems(S) {
		tracer().Debugf("    %v", i)
	}
}

// --- Merged items ----------------------------------------------------------

// MergedItem is a group of LR(1) items sharing rule and dot position,
// with the lookaheads collected: [A ➞ α • β, a/b/c].
type MergedItem struct {
	rule       *Rule
	dot        int
	lookaheads []*Symbol // ordered by name
}

// Rule returns the rule of a merged item.
func (mi *MergedItem) Rule() *Rule {
	return mi.rule
}

// Dot returns the dot position of a merged item.
func (mi *MergedItem) Dot() int {
	return mi.dot
}

// Lookaheads returns all lookaheads of a merged item, ordered by name.
func (mi *MergedItem) Lookaheads() []*Symbol {
	return mi.lookaheads
}

// IsComplete is true if the dot is behind the last RHS symbol.
func (mi *MergedItem) IsComplete() bool {
	return mi.dot == len(mi.rule.rhs)
}

// LookaheadString returns the lookaheads joined by "/".
func (mi *MergedItem) LookaheadString() string {
	names := make([]string, len(mi.lookaheads))
	for k, la := range mi.lookaheads {
		names[k] = la.Name
	}
	return strings.Join(names, "/")
}

func (mi *MergedItem) String() string {
	return fmt.Sprintf("[%s → %s, %s]", mi.rule.LHS, dottedRHS(mi.rule, mi.dot), mi.LookaheadString())
}

func lookaheadByName(t1, t2 interface{}) int {
	return utils.StringComparator(t1.(*Symbol).Name, t2.(*Symbol).Name)
}

// mergeItems groups the items of S by (rule, dot). Groups are ordered by
// rule serial, then dot position.
func mergeItems(S *iteratable.Set) []*MergedItem {
	type core struct {
		rule *Rule
		dot  int
	}
	var order []core
	groups := make(map[core]*treeset.Set)
	for _, i := range sortedItems(S) {
		c := core{i.rule, i.dot}
		las, ok := groups[c]
		if !ok {
			las = treeset.NewWith(lookaheadByName)
			groups[c] = las
			order = append(order, c)
		}
		las.Add(i.la)
	}
	merged := make([]*MergedItem, len(order))
	for k, c := range order {
		merged[k] = &MergedItem{
			rule:       c.rule,
			dot:        c.dot,
			lookaheads: asSymbols(groups[c].Values()),
		}
	}
	return merged
}
