package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/heyimalaap/lrparse/expr"
	"github.com/heyimalaap/lrparse/lr/clr"
	"github.com/heyimalaap/lrparse/lr/ptree"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "parse <input>",
		Short:   "Parse an expression and print trace and parse tree",
		Example: `  lrparse parse "id * ( id + id )"`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runParse,
	}
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	input := strings.TrimSpace(strings.Join(args, " "))
	return parseAndShow(cmd.OutOrStdout(), current.lang, current.conf, input)
}

// parseAndShow parses an input line, prints the trace of the automaton and
// displays the parse tree.
func parseAndShow(w io.Writer, lang *expr.Language, conf *Config, input string) error {
	scan, err := lang.Scanner(input)
	if err != nil {
		return err
	}
	scan.SetErrorHandler(func(e error) {
		tracer().Debugf("scanner: %v", e)
	})
	var steps []clr.Step
	parser := lang.Parser(clr.WithTrace(func(s clr.Step) {
		steps = append(steps, s)
	}))
	_, err = parser.Parse(lang.Tables.CFSM().S0, scan)
	fmt.Fprintln(w, clr.TraceAsText(steps))
	if err != nil {
		pterm.Error.Println(err.Error())
		fmt.Fprintln(w, errorDetail(input, err))
		return err
	}
	pterm.Success.Println("Accepted")
	tree, err := ptree.Build(lang.Grammar, parser.Derivation())
	if err != nil {
		return err
	}
	showTree(w, tree, conf.Tree)
	return nil
}

// errorDetail marks the position of an error in the input line.
func errorDetail(input string, err error) string {
	var pos uint64
	var lexErr *clr.LexError
	var synErr *clr.SyntaxError
	switch {
	case errors.As(err, &lexErr):
		pos = lexErr.Pos
	case errors.As(err, &synErr):
		pos = synErr.Pos
	default:
		return input
	}
	if pos > uint64(len(input)) {
		pos = uint64(len(input))
	}
	return input + "\n" + strings.Repeat(" ", int(pos)) + "^"
}

func showTree(w io.Writer, tree *ptree.Tree, style string) {
	switch style {
	case treeBox:
		fmt.Fprintln(w, ptree.Render(tree))
	case treePterm:
		root := pterm.NewTreeFromLeveledList(leveledList(tree))
		pterm.DefaultTree.WithRoot(root).Render()
	}
}

// leveledList flattens a parse tree in pre-order, with the depth of every
// node as its level.
func leveledList(tree *ptree.Tree) pterm.LeveledList {
	var ll pterm.LeveledList
	tree.Walk(func(n, depth int) bool {
		ll = append(ll, pterm.LeveledListItem{
			Level: depth,
			Text:  tree.Label(n),
		})
		return true
	})
	return ll
}
