/*
Package lexmach wraps a lexmachine DFA as a scanner.Tokenizer.

An LMAdapter is compiled once from three parts: an init function adding
free-form patterns such as whitespace, a list of literal operators, and a
list of keywords. Literals and keywords are looked up in a map of token
types. For the expression language of package expr this is

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
	}
	ids := map[string]int{"+": '+', "*": '*', "(": '(', ")": ')', "id": scanner.Ident}
	LM, err := lexmach.NewLMAdapter(init, []string{"+", "*", "(", ")"}, []string{"id"}, ids)

The adapter is read-only after compilation. Each input gets its own
LMScanner:

	scan, err := LM.Scanner("id + (id)")

Input matching no pattern produces one token of type scanner.Invalid for
its first rune. The scanner then resumes behind it, so a parser always sees
the end of input eventually.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexmach
