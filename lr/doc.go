/*
Package lr implements prerequisites for canonical LR(1) parsing.

# Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may not contain epsilon-productions.

Example:

	b := lr.NewGrammarBuilder("G")
	b.LHS("E").N("E").T("+", '+').N("T").End()   // E  ➞  E + T
	b.LHS("E").N("T").End()                      // E  ➞  T
	b.LHS("T").N("T").T("*", '*').N("F").End()   // T  ➞  T * F
	b.LHS("T").N("F").End()                      // T  ➞  F
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("id", scanner.Ident).End()      // F  ➞  id

The builder prepends an augmented start rule, resulting in

	g, _ := b.Grammar()
	g.Dump()

	0: E' → E
	1: E → E + T
	2: E → T
	3: T → T * F
	4: T → F
	5: F → ( E )
	6: F → id

Alternatively, grammars may be given as a list of productions in string form,
see FromProductions.

# Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST sets.

	ga := lr.Analysis(g)
	fmt.Println(ga.First(g.SymbolByName("E")))   // => [( id]

# Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar, using LR(1) items. The CFSM will then be transformed into a
GOTO table and an ACTION table for a canonical LR(1) parser. The CFSM
will not be thrown away, but is made available to the client. This is
intended for debugging purposes. It can be exported to Graphviz's Dot-format,
tables may be exported to HTML or plain text.

Example:

	lrgen := lr.NewTableGenerator(ga)  // ga is an LRAnalysis, see above
	lrgen.CreateTables()               // construct LR parser tables
	if lrgen.HasConflicts {
	    …
	}

Conflicts are resolved in favour of the action which has been entered first.
Shift actions are entered before reductions.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrparse.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrparse.lr")
}
