/*
Package clr provides a canonical LR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

This parser is intended for small grammars, e.g. for configuration
input or small domain-specific languages. Canonical LR(1) tables grow
quickly with the size of a grammar; it is *not* intended for full-fledged
programming languages.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

# Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  ➞ Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign ➞ +
	b.LHS("Sign").T("-", '-').End()                     // Sign ➞ -
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // first action entered wins

Finally parse some input:

	p := clr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	scan := scanner.GoTokenizer("example", "+a")
	accepted, err := p.Parse(lrgen.CFSM().S0, scan)
	rules := p.Derivation()  // reductions in the order they were performed

The derivation may be turned into a parse tree with package ptree.
Every step of the automaton may be observed by installing a trace function
with option WithTrace.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package clr
