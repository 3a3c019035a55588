package lr

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/rosed"
)

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format, given a filename.
func (c *CFSM) CFSM2GraphViz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot export CFSM: %w", err)
	}
	defer f.Close()
	return c.WriteGraphViz(f)
}

// WriteGraphViz writes a CFSM in Graphviz Dot format to w.
func (c *CFSM) WriteGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s)))
	}
	c.EachEdge(func(from, to *CFSMState, label *Symbol) {
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", from.ID, to.ID, dotEscape(label.Name)))
	})
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(s *CFSMState) string {
	lines := make([]string, 0, len(s.MergedItems()))
	for _, mi := range s.MergedItems() {
		lines = append(lines, dotEscape(mi.String()))
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`)

func dotEscape(s string) string {
	return dotEscaper.Replace(s)
}

// === HTML ==================================================================

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.gototable == nil {
		return fmt.Errorf("GOTO table not yet created, cannot export to HTML")
	}
	cols := lrgen.g.nonterminals[1:]
	return parserTableAsHTML(lrgen, "GOTO", lrgen.gototable.Size(), cols, func(state int, A *Symbol) string {
		if target, ok := lrgen.gototable.Goto(state, A); ok {
			return fmt.Sprintf("%d", target)
		}
		return ""
	}, w)
}

// ActionTableAsHTML exports the LR(1) ACTION-table in HTML-format.
// Conflicting cells show both the winning and the shadowed action.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.actiontable == nil {
		return fmt.Errorf("ACTION table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable.Size(), lrgen.g.terminals, lrgen.actionCell, w)
}

func (lrgen *TableGenerator) actionCell(state int, a *Symbol) string {
	act := lrgen.actiontable.Action(state, a)
	if act.Kind == ErrorAction {
		return ""
	}
	if shadow, ok := lrgen.actiontable.Shadowed(state, a); ok {
		return act.String() + "/" + shadow.String()
	}
	return act.String()
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, size int, cols []*Symbol,
	cell func(int, *Symbol) string, w io.Writer) error {
	//
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("%s table of size = %d<p>", tname, size))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range cols {
		b.WriteString(fmt.Sprintf("<td>%s</td>", htmlEscape(A.Name)))
	}
	b.WriteString("</tr>\n")
	for _, state := range lrgen.dfa.States() {
		b.WriteString(fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range cols {
			td := cell(state.ID, A)
			if td == "" {
				td = "&nbsp;"
			}
			b.WriteString("<td>")
			b.WriteString(td)
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}

// === Plain text ============================================================

// TablesAsText renders the ACTION and GOTO tables side by side as a text
// table. Columns are the terminals (EOF last), followed by the non-terminals.
func TablesAsText(lrgen *TableGenerator) string {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet created, cannot export to text")
		return ""
	}
	nonterms := lrgen.g.nonterminals[1:]
	header := []string{"State"}
	for _, a := range lrgen.g.terminals {
		header = append(header, a.Name)
	}
	for _, A := range nonterms {
		header = append(header, A.Name)
	}
	data := [][]string{header}
	for _, state := range lrgen.dfa.States() {
		row := []string{fmt.Sprintf("%d", state.ID)}
		for _, a := range lrgen.g.terminals {
			row = append(row, lrgen.actionCell(state.ID, a))
		}
		for _, A := range nonterms {
			td := ""
			if target, ok := lrgen.gototable.Goto(state.ID, A); ok {
				td = fmt.Sprintf("%d", target)
			}
			row = append(row, td)
		}
		data = append(data, row)
	}
	return TextTable(data, 120, true)
}

// ItemSetsAsText lists the merged items of every CFSM state.
func ItemSetsAsText(c *CFSM) string {
	data := [][]string{{"State", "Items"}}
	for _, s := range c.States() {
		for k, mi := range s.MergedItems() {
			id := ""
			if k == 0 {
				id = fmt.Sprintf("I%d", s.ID)
			}
			data = append(data, []string{id, mi.String()})
		}
	}
	return TextTable(data, 80, false)
}

// TextTable lays out rows of cells as a text table of the given width. The
// first row is a header and keeps the case of its cells. Without borders it
// is underlined by a rule.
func TextTable(data [][]string, width int, borders bool) string {
	if len(data) > 0 && !borders {
		data = withHeaderRule(data)
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableBorders:             borders,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func withHeaderRule(data [][]string) [][]string {
	widths := make([]int, len(data[0]))
	for _, row := range data {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	table := make([][]string, 0, len(data)+1)
	table = append(table, data[0], rule)
	return append(table, data[1:]...)
}
