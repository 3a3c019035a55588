package lexmach

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heyimalaap/lrparse"
	"github.com/heyimalaap/lrparse/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'lrparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrparse.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
// After creation an adapter is read-only and may be shared between goroutines.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, input: input, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	input   string
	err     error // last error reported
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// Err returns the last error the scanner encountered, if any.
func (lms *LMScanner) Err() error {
	return lms.err
}

// NextToken is part of the Tokenizer interface.
//
// Unrecognized input results in a token of type scanner.Invalid, holding
// the first offending rune. Scanning continues behind it.
func (lms *LMScanner) NextToken() lrparse.Token {
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		lms.err = err
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			return lms.invalid(ui)
		}
		return scanner.MakeDefaultToken(scanner.Invalid, "", lrparse.Span{})
	}
	if eof {
		end := uint64(len(lms.input))
		return scanner.MakeDefaultToken(scanner.EOF, "", lrparse.Span{end, end})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d = %q @%d", token.Type, token.Lexeme, token.TC)
	from := uint64(token.TC)
	return scanner.MakeDefaultToken(
		lrparse.TokType(token.Type),
		string(token.Lexeme),
		lrparse.Span{from, from + uint64(len(token.Lexeme))},
	)
}

func (lms *LMScanner) invalid(ui *machines.UnconsumedInput) lrparse.Token {
	at := ui.StartTC
	_, size := utf8.DecodeRuneInString(lms.input[at:])
	if size == 0 {
		size = 1
	}
	lexeme := lms.input[at : at+size]
	resume := ui.FailTC
	if resume <= at {
		resume = at + size
	}
	lms.scanner.TC = resume
	token := scanner.MakeDefaultToken(scanner.Invalid, lexeme,
		lrparse.Span{uint64(at), uint64(at + size)})
	token.Val = fmt.Errorf("unrecognized input %q at position %d", lexeme, at)
	return token
}

// Remaining is part of the Tokenizer interface.
func (lms *LMScanner) Remaining() string {
	if lms.scanner == nil || lms.scanner.TC >= len(lms.input) {
		return ""
	}
	return lms.input[lms.scanner.TC:]
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
