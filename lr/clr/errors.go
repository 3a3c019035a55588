package clr

import (
	"fmt"

	"github.com/heyimalaap/lrparse/lr"
)

// LexError is returned if the scanner reports input it cannot recognize,
// or a token which does not correspond to any terminal of the grammar.
type LexError struct {
	Pos    uint64 // position of the offending input
	Lexeme string // offending input
	Input  string // input remaining after the offending token
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at position %d: unrecognized input %q", e.Pos, e.Lexeme)
}

// SyntaxError is returned if the parser gets stuck, i.e. the ACTION table
// holds no action for the current state and lookahead, or a reduction finds
// no goto-state.
type SyntaxError struct {
	State     int        // state on top of the stack
	Terminal  *lr.Symbol // unexpected lookahead
	Lexeme    string     // lexeme of the lookahead token
	Pos       uint64     // position of the lookahead token
	Remaining string     // unconsumed input after the lookahead
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in state %d: unexpected %s at position %d, remaining input %q",
		e.State, e.Terminal, e.Pos, e.Remaining)
}
