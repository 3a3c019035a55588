package lr

import (
	"fmt"
	"sort"
	"strings"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/heyimalaap/lrparse"
)

// EOFName is the name of the end-of-input marker, which is implicitly part
// of every grammar.
const EOFName = "$"

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// A symbol is a non-terminal iff it is the LHS of some rule.
type Symbol struct {
	Name     string
	ID       int // serial number within terminals or non-terminals, respectively
	tokval   lrparse.TokType
	terminal bool
}

// IsTerminal returns true if this symbol represents a terminal.
func (s *Symbol) IsTerminal() bool {
	return s.terminal
}

// TokenType returns the token type of a terminal symbol. For non-terminals
// it returns -1.
func (s *Symbol) TokenType() lrparse.TokType {
	if !s.terminal {
		return -1
	}
	return s.tokval
}

func (s *Symbol) String() string {
	return s.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a production LHS ➞ RHS. Rule 0 is always the augmented start
// rule S' ➞ S.
type Rule struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns the right hand side symbols of a rule. Clients must not modify
// the slice.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the number of RHS symbols.
func (r *Rule) Len() int {
	return len(r.rhs)
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s → %s", r.LHS, symbolString(r.rhs))
}

func symbolString(syms []*Symbol) string {
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.Name
	}
	return strings.Join(names, " ")
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an augmented, epsilon-free context free grammar. Grammars are
// immutable once created and may be shared between goroutines.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    []*Symbol // in order of first appearance, EOF last
	nonterminals []*Symbol // in order of first appearance as LHS
	alphabet     []*Symbol // symbols to compute goto-sets for
	symbols      map[string]*Symbol
	tokens       map[lrparse.TokType]*Symbol
	eof          *Symbol
}

// Rule returns rule no. i, or nil.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Size returns the number of rules of g, including the start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rules returns all rules, starting with the augmented start rule.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// Start returns the LHS of the augmented start rule.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].LHS
}

// StartSymbol returns the user-level start symbol, i.e. S for S' ➞ S.
func (g *Grammar) StartSymbol() *Symbol {
	return g.rules[0].rhs[0]
}

// EOF returns the end-of-input marker.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// Terminals returns all terminals of g, EOF last.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// NonTerminals returns all non-terminals of g, the augmented start symbol first.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.nonterminals
}

// Alphabet returns the symbols for which goto-transitions are computed:
// the non-terminals (without the augmented start symbol) followed by the
// terminals (without EOF).
func (g *Grammar) Alphabet() []*Symbol {
	return g.alphabet
}

// SymbolByName finds a symbol by name.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// TerminalForToken returns the terminal for an input token type.
func (g *Grammar) TerminalForToken(tt lrparse.TokType) (*Symbol, bool) {
	t, ok := g.tokens[tt]
	return t, ok
}

// EachSymbol iterates over the symbol alphabet of the grammar, calling f for
// every symbol.
func (g *Grammar) EachSymbol(f func(A *Symbol) interface{}) []interface{} {
	return each(g.alphabet, f)
}

// EachNonTerminal iterates over all non-terminals, including the augmented
// start symbol.
func (g *Grammar) EachNonTerminal(f func(N *Symbol) interface{}) []interface{} {
	return each(g.nonterminals, f)
}

// EachTerminal iterates over all terminals, including EOF.
func (g *Grammar) EachTerminal(f func(T *Symbol) interface{}) []interface{} {
	return each(g.terminals, f)
}

func each(syms []*Symbol, f func(*Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range syms {
		if v := f(A); v != nil {
			r = append(r, v)
		}
	}
	return r
}

// FindNonTermRules returns all rules with LHS N, in grammar order.
func (g *Grammar) FindNonTermRules(N *Symbol) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == N {
			rules = append(rules, r)
		}
	}
	return rules
}

// Dump is a debugging helper, tracing the rules of g.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Grammar construction ------------------------------------------------------

type symSpec struct {
	name    string
	nonterm bool // explicitly requested as non-terminal
	term    bool // explicitly requested as terminal
	tokval  lrparse.TokType
	hasTok  bool
}

type ruleSpec struct {
	lhs string
	rhs []symSpec
}

// newGrammar is the common back end for the builder and FromProductions.
// specs[0] has to be the augmented start rule.
func newGrammar(name string, specs []ruleSpec, tokens map[string]lrparse.TokType) (*Grammar, error) {
	if len(specs) < 2 {
		return nil, fmt.Errorf("grammar %q: needs a start rule and at least one more rule", name)
	}
	g := &Grammar{
		Name:    name,
		symbols: make(map[string]*Symbol),
		tokens:  make(map[lrparse.TokType]*Symbol),
	}
	for _, spec := range specs { // collect non-terminals first
		if spec.lhs == "" {
			return nil, fmt.Errorf("grammar %q: rule without LHS", name)
		}
		if spec.lhs == EOFName {
			return nil, fmt.Errorf("grammar %q: symbol name %s is reserved", name, EOFName)
		}
		if _, ok := g.symbols[spec.lhs]; !ok {
			N := &Symbol{Name: spec.lhs, ID: len(g.nonterminals)}
			g.nonterminals = append(g.nonterminals, N)
			g.symbols[spec.lhs] = N
		}
	}
	for serial, spec := range specs {
		if len(spec.rhs) == 0 {
			return nil, fmt.Errorf("grammar %q: epsilon rule for %s not supported", name, spec.lhs)
		}
		rule := &Rule{Serial: serial, LHS: g.symbols[spec.lhs]}
		for _, ss := range spec.rhs {
			A, err := g.resolve(ss, tokens)
			if err != nil {
				return nil, fmt.Errorf("grammar %q, rule %d: %w", name, serial, err)
			}
			rule.rhs = append(rule.rhs, A)
		}
		g.rules = append(g.rules, rule)
	}
	if err := g.checkStartRule(); err != nil {
		return nil, fmt.Errorf("grammar %q: %w", name, err)
	}
	if _, ok := g.tokens[scanner.EOF]; ok {
		return nil, fmt.Errorf("grammar %q: token type %d is reserved for %s", name, scanner.EOF, EOFName)
	}
	g.eof = &Symbol{Name: EOFName, ID: len(g.terminals), tokval: scanner.EOF, terminal: true}
	g.terminals = append(g.terminals, g.eof)
	g.tokens[scanner.EOF] = g.eof
	g.symbols[EOFName] = g.eof
	g.alphabet = append(g.alphabet, g.nonterminals[1:]...)
	g.alphabet = append(g.alphabet, g.terminals[:len(g.terminals)-1]...)
	return g, nil
}

// resolve finds or creates a RHS symbol.
func (g *Grammar) resolve(ss symSpec, tokens map[string]lrparse.TokType) (*Symbol, error) {
	if A, ok := g.symbols[ss.name]; ok {
		if ss.term && !A.terminal {
			return nil, fmt.Errorf("symbol %s is used as a terminal, but has rules", ss.name)
		}
		return A, nil
	}
	if ss.nonterm {
		return nil, fmt.Errorf("non-terminal %s has no rules", ss.name)
	}
	if ss.name == EOFName {
		return nil, fmt.Errorf("symbol name %s is reserved", EOFName)
	}
	tokval, ok := ss.tokval, ss.hasTok
	if !ok {
		tokval, ok = tokens[ss.name]
	}
	if !ok {
		if r, sz := utf8.DecodeRuneInString(ss.name); sz == len(ss.name) && r != utf8.RuneError {
			tokval, ok = lrparse.TokType(r), true
		}
	}
	if !ok {
		return nil, fmt.Errorf("no token type for terminal %s", ss.name)
	}
	if other, dup := g.tokens[tokval]; dup {
		return nil, fmt.Errorf("terminals %s and %s share token type %d", other, ss.name, tokval)
	}
	T := &Symbol{Name: ss.name, ID: len(g.terminals), tokval: tokval, terminal: true}
	g.terminals = append(g.terminals, T)
	g.symbols[ss.name] = T
	g.tokens[tokval] = T
	return T, nil
}

// checkStartRule makes sure rule 0 has the form S' ➞ S, where S' is used
// nowhere else.
func (g *Grammar) checkStartRule() error {
	start := g.rules[0]
	if start.Len() != 1 || start.rhs[0].IsTerminal() {
		return fmt.Errorf("start rule %s must have a single non-terminal RHS", start)
	}
	for _, r := range g.rules[1:] {
		if r.LHS == start.LHS {
			return fmt.Errorf("start symbol %s must have exactly one rule", start.LHS)
		}
		for _, A := range r.rhs {
			if A == start.LHS {
				return fmt.Errorf("start symbol %s must not appear on a RHS", start.LHS)
			}
		}
	}
	return nil
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a helper type to construct grammars. Create one with
// NewGrammarBuilder, add rules and then call Grammar():
//
//	b := lr.NewGrammarBuilder("G")
//	b.LHS("E").N("E").T("+", '+').N("T").End()  // E  ➞  E + T
//	b.LHS("E").N("T").End()                     // E  ➞  T
//	…
//	g, err := b.Grammar()
//
// The LHS of the first rule becomes the start symbol S. The builder prepends
// an augmented start rule S' ➞ S as rule 0.
type GrammarBuilder struct {
	name  string
	rules []ruleSpec
}

// NewGrammarBuilder creates a builder for a grammar called name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// RuleBuilder collects the RHS of a rule.
type RuleBuilder struct {
	b    *GrammarBuilder
	spec ruleSpec
}

// LHS starts a new rule.
func (b *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{b: b, spec: ruleSpec{lhs: name}}
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.spec.rhs = append(rb.spec.rhs, symSpec{name: name, nonterm: true})
	return rb
}

// T appends a terminal with token type tokval to the RHS.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	rb.spec.rhs = append(rb.spec.rhs, symSpec{
		name:   name,
		term:   true,
		tokval: lrparse.TokType(tokval),
		hasTok: true,
	})
	return rb
}

// End finishes the rule and adds it to the grammar under construction.
func (rb *RuleBuilder) End() {
	rb.b.rules = append(rb.b.rules, rb.spec)
}

// Grammar returns the grammar built so far, or an error if the rules do not
// form a valid grammar.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(b.rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", b.name)
	}
	S := b.rules[0].lhs
	start := S + "'"
	for b.hasLHS(start) {
		start += "'"
	}
	specs := make([]ruleSpec, 0, len(b.rules)+1)
	specs = append(specs, ruleSpec{lhs: start, rhs: []symSpec{{name: S, nonterm: true}}})
	specs = append(specs, b.rules...)
	return newGrammar(b.name, specs, nil)
}

func (b *GrammarBuilder) hasLHS(name string) bool {
	for _, r := range b.rules {
		if r.lhs == name {
			return true
		}
	}
	return false
}

// --- Productions in string form ------------------------------------------------

// Production is a rule in compact string form, e.g. {"E", "E+T"}.
type Production struct {
	LHS string
	RHS string
}

// FromProductions creates a grammar from a list of productions in string form.
// Production 0 has to be the augmented start production, e.g. {"E'", "E"}.
// RHS strings are split into symbols by SplitSymbols. Terminals find their
// token type in tokens; single-rune terminals not found there use the rune
// as token type.
func FromProductions(name string, prods []Production, tokens map[string]lrparse.TokType) (*Grammar, error) {
	var nonterms []string
	for _, p := range prods {
		nonterms = append(nonterms, p.LHS)
	}
	specs := make([]ruleSpec, len(prods))
	for i, p := range prods {
		specs[i].lhs = p.LHS
		for _, sym := range SplitSymbols(p.RHS, nonterms) {
			specs[i].rhs = append(specs[i].rhs, symSpec{name: sym})
		}
	}
	return newGrammar(name, specs, tokens)
}

// SplitSymbols tokenizes the RHS of a production in string form into
// discrete symbols. If rhs contains blanks, it is split at blanks. Otherwise
// at every position the longest matching non-terminal name is taken; failing
// that, a run of lowercase letters forms a single terminal (like "id"), and
// any other rune is a terminal on its own.
//
//	SplitSymbols("E+T", []string{"E", "T"})  // => [E + T]
//	SplitSymbols("(E)", []string{"E"})       // => [( E )]
//	SplitSymbols("id", []string{"F"})        // => [id]
func SplitSymbols(rhs string, nonterminals []string) []string {
	if strings.ContainsAny(rhs, " \t") {
		return strings.Fields(rhs)
	}
	nts := append([]string(nil), nonterminals...)
	sort.SliceStable(nts, func(i, j int) bool { return len(nts[i]) > len(nts[j]) })
	var syms []string
	pos := 0
outer:
	for pos < len(rhs) {
		for _, nt := range nts {
			if nt != "" && strings.HasPrefix(rhs[pos:], nt) {
				syms = append(syms, nt)
				pos += len(nt)
				continue outer
			}
		}
		r, sz := utf8.DecodeRuneInString(rhs[pos:])
		if !unicode.IsLower(r) {
			syms = append(syms, rhs[pos:pos+sz])
			pos += sz
			continue
		}
		end := pos
		for end < len(rhs) {
			r, sz = utf8.DecodeRuneInString(rhs[end:])
			if !unicode.IsLower(r) {
				break
			}
			end += sz
		}
		syms = append(syms, rhs[pos:end])
		pos = end
	}
	return syms
}
