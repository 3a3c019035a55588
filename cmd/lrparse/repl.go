package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/heyimalaap/lrparse/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse expressions interactively",
		Long: `repl reads expressions line by line and parses each of them.
Lines starting with a colon are commands:

  :items   print the item sets
  :tables  print the parser tables
  :quit    leave the REPL (as does <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "lrparse> ",
		HistoryFile: "",
	})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()
	pterm.Info.Println("Quit with <ctrl>D")
	out := cmd.OutOrStdout()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if quit := evalLine(out, strings.TrimSpace(line)); quit {
			break
		}
	}
	fmt.Fprintln(out, "Good bye!")
	return nil
}

// evalLine handles one line of REPL input. It returns true if the user wants
// to quit.
func evalLine(out io.Writer, line string) bool {
	switch line {
	case "":
		return false
	case ":quit", ":q":
		return true
	case ":items":
		fmt.Fprintln(out, lr.ItemSetsAsText(current.lang.Tables.CFSM()))
		return false
	case ":tables":
		fmt.Fprintln(out, lr.TablesAsText(current.lang.Tables))
		return false
	}
	if strings.HasPrefix(line, ":") {
		pterm.Error.Printf("unknown command %s\n", line)
		return false
	}
	if err := parseAndShow(out, current.lang, current.conf, line); err != nil {
		tracer().Debugf("%v", err)
	}
	return false
}
