package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/heyimalaap/lrparse/expr"
	"github.com/heyimalaap/lrparse/lr"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// session is set up before any command runs.
type session struct {
	conf *Config
	lang *expr.Language
}

var current session

var rootFlags = struct {
	config *string
}{}

var rootCmd = &cobra.Command{
	Use:   "lrparse [input]",
	Short: "Canonical LR(1) tables and parser for arithmetic expressions",
	Long: `lrparse constructs the canonical collection of LR(1) item sets for the
grammar

  E' -> E
  E  -> E + T | T
  T  -> T * F | F
  F  -> ( E ) | id

and derives ACTION and GOTO tables from it. Input lines are parsed with
these tables, printing every step of the automaton and the resulting
parse tree.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runDriver,
}

func init() {
	flags := rootCmd.PersistentFlags()
	rootFlags.config = flags.StringP("config", "c", "", "TOML configuration file")
	flags.StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	flags.Bool("show-items", true, "print the canonical collection of item sets")
	flags.Bool("show-tables", true, "print the ACTION and GOTO tables")
	flags.String("tree", treeBox, "parse tree display [box|pterm|none]")
	flags.String("scanner", string(expr.LexMachine), "token source [lexmachine|go]")
	flags.Bool("panic-on-internal-error", false, "panic if a parse tree cannot be reconstructed")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// setup reads the configuration, configures tracing and builds the
// expression language.
func setup(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig(*rootFlags.config)
	if err != nil {
		return err
	}
	if err = conf.applyFlags(cmd); err != nil {
		return err
	}
	gconf.Initialize(conf)
	tracer().SetTraceLevel(tracing.TraceLevelFromString(conf.Trace))
	tracer().Infof("trace level is %s", conf.Trace)
	level := tracer().GetTraceLevel()
	if level > tracing.LevelInfo {
		tracer().SetTraceLevel(tracing.LevelInfo) // table construction is noisy
	}
	lang, err := expr.Reference()
	tracer().SetTraceLevel(level)
	if err != nil {
		return err
	}
	kind, _ := expr.ParseScannerKind(conf.Scanner) // validated by applyFlags
	current = session{conf: conf, lang: lang.WithScanner(kind)}
	return nil
}

// runDriver prints item sets and tables, then parses one input line, either
// given as arguments or read from the terminal.
func runDriver(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if current.conf.ShowItems {
		fmt.Fprintln(out, lr.ItemSetsAsText(current.lang.Tables.CFSM()))
	}
	if current.conf.ShowTables {
		fmt.Fprintln(out, lr.TablesAsText(current.lang.Tables))
	}
	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		line, err := readLine("Enter string to parse: ")
		if err != nil {
			return err
		}
		input = line
	}
	return parseAndShow(out, current.lang, current.conf, input)
}

func readLine(prompt string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()
	line, err := rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
