package clr

import (
	"fmt"
	"strings"

	"github.com/heyimalaap/lrparse/lr"
)

// Step is a snapshot of the automaton, taken after an action has been
// performed. The initial step has no terminal and an error action.
type Step struct {
	Stack       []int      // state IDs, bottom first
	Terminal    *lr.Symbol // current lookahead
	Remaining   string     // input after the lookahead
	Action      lr.Action  // action just performed
	Description string     // human readable action
}

// StackString formats the stack as "[ 0 4 5 ]".
func (s Step) StackString() string {
	var b strings.Builder
	b.WriteString("[")
	for _, id := range s.Stack {
		b.WriteString(fmt.Sprintf(" %d", id))
	}
	b.WriteString(" ]")
	return b.String()
}

// TraceAsText renders parser steps as a table with columns
// Stack | Current Token | Input | Action. The input column shows the
// remaining input followed by the end marker.
func TraceAsText(steps []Step) string {
	data := [][]string{{"Stack", "Current Token", "Input", "Action"}}
	for _, s := range steps {
		term := "-"
		if s.Terminal != nil {
			term = s.Terminal.Name
		}
		input := strings.TrimSpace(s.Remaining + " " + lr.EOFName)
		data = append(data, []string{s.StackString(), term, input, s.Description})
	}
	return lr.TextTable(data, 100, false)
}
