package clr

import (
	"fmt"
	"strings"

	"github.com/heyimalaap/lrparse"
	"github.com/npillmayer/schuko/tracing"

	"github.com/heyimalaap/lrparse/lr"
	"github.com/heyimalaap/lrparse/lr/scanner"
)

// tracer traces with key 'lrparse.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrparse.lr")
}

// Parser is a canonical LR(1)-parser type. Create and initialize one with
// clr.NewParser(...). A parser may be used for more than one parse, but not
// concurrently.
type Parser struct {
	G       *lr.Grammar
	stack   []stackitem     // parser stack
	history []*lr.Rule      // reductions performed, in order
	gotoT   *lr.GotoTable   // GOTO table
	actionT *lr.ActionTable // ACTION table
	trace   func(Step)      // optional observer
}

// We store pairs of state-IDs and symbols on the parse stack.
type stackitem struct {
	stateID int          // ID of a CFSM state
	sym     *lr.Symbol   // grammar symbol (terminal or non-terminal), nil for the start state
	span    lrparse.Span // input span over which this symbol reaches
}

// Option configures a parser.
type Option func(*Parser)

// WithTrace installs a function which is called for every step of the
// automaton, plus once for the initial configuration.
func WithTrace(f func(Step)) Option {
	return func(p *Parser) {
		p.trace = f
	}
}

// NewParser creates a canonical LR(1) parser.
func NewParser(g *lr.Grammar, gotoTable *lr.GotoTable, actionTable *lr.ActionTable, opts ...Option) *Parser {
	parser := &Parser{
		G:       g,
		stack:   make([]stackitem, 0, 64),
		gotoT:   gotoTable,
		actionT: actionTable,
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Parse starts a new parse, given a start state and a scanner tokenizing the input.
// The parser must have been initialized.
//
// The parser returns true if the input string has been accepted. Otherwise
// the error is either a *LexError or a *SyntaxError.
func (p *Parser) Parse(S *lr.CFSMState, scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.gotoT == nil || p.actionT == nil || S == nil {
		tracer().Errorf("LR(1)-parser not initialized")
		return false, fmt.Errorf("LR(1)-parser not initialized")
	}
	p.stack = append(p.stack[:0], stackitem{stateID: S.ID}) // push S
	p.history = p.history[:0]
	p.step(nil, scan.Remaining(), lr.Action{}, "-")
	token, a, err := p.next(scan)
	if err != nil {
		return false, err
	}
	for {
		state := p.stack[len(p.stack)-1] // TOS
		action := p.actionT.Action(state.stateID, a)
		tracer().Debugf("action(%d,%s) = %v", state.stateID, a, action)
		switch action.Kind {
		case lr.ShiftAction:
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{stateID: action.State, sym: a, span: token.Span()})
			p.step(a, scan.Remaining(), action, fmt.Sprintf("Shift to %d", action.State))
			if token, a, err = p.next(scan); err != nil {
				return false, err
			}
		case lr.ReduceAction:
			rule := p.G.Rule(action.Rule)
			nextstate, ok := p.reduce(rule)
			if !ok {
				return false, p.syntaxError(a, token, scan)
			}
			tracer().Debugf("reduced to next state = %d", nextstate)
			p.history = append(p.history, rule)
			p.step(a, scan.Remaining(), action, "Reduce by "+production(rule))
		case lr.AcceptAction:
			p.step(a, scan.Remaining(), action, "Accepted")
			return true, nil
		default:
			return false, p.syntaxError(a, token, scan)
		}
	}
}

// Derivation returns the rules reduced during the last parse, in the order
// of reduction.
func (p *Parser) Derivation() []*lr.Rule {
	return append([]*lr.Rule(nil), p.history...)
}

// next reads the next token and finds the terminal for it.
func (p *Parser) next(scan scanner.Tokenizer) (lrparse.Token, *lr.Symbol, error) {
	token := scan.NextToken()
	tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), token.TokType())
	if token.TokType() == scanner.Invalid {
		return token, nil, &LexError{Pos: token.Span().From(), Lexeme: token.Lexeme(), Input: scan.Remaining()}
	}
	a, ok := p.G.TerminalForToken(token.TokType())
	if !ok {
		return token, nil, &LexError{Pos: token.Span().From(), Lexeme: token.Lexeme(), Input: scan.Remaining()}
	}
	return token, a, nil
}

// reduce performs a reduce action for a rule
//
//	LHS ➞ X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//	[TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
// The states are popped and the goto-state for LHS is pushed. Returns false
// if there is no goto-state.
func (p *Parser) reduce(rule *lr.Rule) (int, bool) {
	tracer().Infof("reduce %v", rule)
	var handlespan lrparse.Span
	handle := rule.RHS()
	for i := len(handle) - 1; i >= 0; i-- {
		tos := p.stack[len(p.stack)-1]
		if tos.sym != handle[i] {
			tracer().Errorf("Expected %v on top of stack, got %v", handle[i], tos.sym)
		}
		if handlespan.IsNull() {
			handlespan = tos.span
		} else {
			handlespan = handlespan.Extend(tos.span)
		}
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
	}
	state := p.stack[len(p.stack)-1] // TOS
	nextstate, ok := p.gotoT.Goto(state.stateID, rule.LHS)
	if !ok {
		return 0, false
	}
	p.stack = append(p.stack, // push a non-terminal state onto stack
		stackitem{stateID: nextstate, sym: rule.LHS, span: handlespan})
	return nextstate, true
}

func (p *Parser) syntaxError(a *lr.Symbol, token lrparse.Token, scan scanner.Tokenizer) error {
	err := &SyntaxError{
		State:     p.stack[len(p.stack)-1].stateID,
		Terminal:  a,
		Lexeme:    token.Lexeme(),
		Pos:       token.Span().From(),
		Remaining: scan.Remaining(),
	}
	tracer().Infof("%v", err)
	return err
}

func (p *Parser) step(a *lr.Symbol, remaining string, action lr.Action, desc string) {
	if p.trace == nil {
		return
	}
	stack := make([]int, len(p.stack))
	for i, item := range p.stack {
		stack[i] = item.stateID
	}
	p.trace(Step{
		Stack:       stack,
		Terminal:    a,
		Remaining:   remaining,
		Action:      action,
		Description: desc,
	})
}

// production formats a rule as L -> R, with R's symbols written without spaces.
func production(r *lr.Rule) string {
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" -> ")
	for _, A := range r.RHS() {
		b.WriteString(A.Name)
	}
	return b.String()
}
