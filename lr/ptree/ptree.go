/*
Package ptree rebuilds parse trees from the derivations of package clr.

An LR parser produces a rightmost derivation in reverse. Replaying the
reductions last to first, every rule expands the rightmost leaf which is
labeled with the rule's LHS, giving the parse tree top-down:

	p := clr.NewParser(…)
	p.Parse(…)
	tree, err := ptree.Build(g, p.Derivation())
	fmt.Println(ptree.Render(tree))

Nodes are stored in an arena and addressed by index; the root has index 0.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ptree

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/heyimalaap/lrparse/lr"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrparse.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrparse.lr")
}

// Tree is a parse tree. It is immutable once built.
type Tree struct {
	nodes []node
}

type node struct {
	sym      *lr.Symbol
	parent   int // -1 for the root
	children []int
}

// Root returns the index of the root node.
func (t *Tree) Root() int {
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Symbol returns the grammar symbol of node n.
func (t *Tree) Symbol(n int) *lr.Symbol {
	return t.nodes[n].sym
}

// Label returns the label of node n, i.e. the name of its symbol.
func (t *Tree) Label(n int) string {
	return t.nodes[n].sym.Name
}

// Children returns the children of node n, left to right.
func (t *Tree) Children(n int) []int {
	return t.nodes[n].children
}

// Parent returns the parent of node n, if n is not the root.
func (t *Tree) Parent(n int) (int, bool) {
	p := t.nodes[n].parent
	return p, p >= 0
}

// IsLeaf is true for nodes without children.
func (t *Tree) IsLeaf(n int) bool {
	return len(t.nodes[n].children) == 0
}

// Walk visits the tree in pre-order, left to right. If f returns false, the
// children of a node are skipped.
func (t *Tree) Walk(f func(n int, depth int) bool) {
	var walk func(n, depth int)
	walk = func(n, depth int) {
		if !f(n, depth) {
			return
		}
		for _, ch := range t.nodes[n].children {
			walk(ch, depth+1)
		}
	}
	walk(0, 0)
}

// Leaves returns the leaf nodes, left to right. For a complete derivation
// these are the terminals of the input.
func (t *Tree) Leaves() []int {
	var leaves []int
	t.Walk(func(n, _ int) bool {
		if t.IsLeaf(n) {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Yield returns the labels of the leaves, left to right.
func (t *Tree) Yield() []string {
	leaves := t.Leaves()
	labels := make([]string, len(leaves))
	for i, n := range leaves {
		labels[i] = t.Label(n)
	}
	return labels
}

// --- Building --------------------------------------------------------------

// InternalConsistencyError is returned if a rule of a derivation cannot be
// attached to the tree, i.e. there is no leaf for its LHS. This signals
// inconsistent parser tables, not erroneous input.
type InternalConsistencyError struct {
	Rule *lr.Rule
	Step int // index into the derivation
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("internal error: no leaf %s for rule %v (derivation step %d)",
		e.Rule.LHS, e.Rule, e.Step)
}

// Option configures the tree builder.
type Option func(*builder)

type builder struct {
	panicOnError bool
}

// PanicOnInternalError lets Build panic instead of returning an
// InternalConsistencyError. Setting configuration key
// "panic-on-internal-error" has the same effect.
func PanicOnInternalError(b bool) Option {
	return func(bld *builder) {
		bld.panicOnError = b
	}
}

// Build creates a parse tree for grammar g from a derivation, i.e. from a
// sequence of rules in the order of their reduction.
func Build(g *lr.Grammar, derivation []*lr.Rule, opts ...Option) (*Tree, error) {
	bld := &builder{panicOnError: gconf.GetBool("panic-on-internal-error")}
	for _, opt := range opts {
		opt(bld)
	}
	tree := &Tree{nodes: make([]node, 1, 2*len(derivation)+1)}
	tree.nodes[0] = node{sym: g.StartSymbol(), parent: -1}
	history := arraystack.New()
	for _, r := range derivation {
		history.Push(r)
	}
	for step := len(derivation) - 1; !history.Empty(); step-- {
		x, _ := history.Pop()
		rule := x.(*lr.Rule)
		leaf, ok := tree.rightmostLeaf(rule.LHS)
		if !ok {
			err := &InternalConsistencyError{Rule: rule, Step: step}
			tracer().Errorf("%v", err)
			if bld.panicOnError {
				panic(err)
			}
			return nil, err
		}
		tree.expand(leaf, rule)
	}
	tracer().Debugf("parse tree has %d nodes", tree.Len())
	return tree, nil
}

// rightmostLeaf searches depth first, visiting children right to left, for
// the first leaf labeled A.
func (t *Tree) rightmostLeaf(A *lr.Symbol) (int, bool) {
	var search func(n int) (int, bool)
	search = func(n int) (int, bool) {
		ch := t.nodes[n].children
		if len(ch) == 0 {
			return n, t.nodes[n].sym == A
		}
		for i := len(ch) - 1; i >= 0; i-- {
			if leaf, ok := search(ch[i]); ok {
				return leaf, true
			}
		}
		return 0, false
	}
	return search(0)
}

func (t *Tree) expand(leaf int, rule *lr.Rule) {
	for _, A := range rule.RHS() {
		t.nodes = append(t.nodes, node{sym: A, parent: leaf})
		t.nodes[leaf].children = append(t.nodes[leaf].children, len(t.nodes)-1)
	}
}
