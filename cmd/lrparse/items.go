package main

import (
	"fmt"

	"github.com/heyimalaap/lrparse/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var itemsFlags = struct {
	dot *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "items",
		Short:   "Print the canonical collection of LR(1) item sets",
		Example: `  lrparse items --dot cfsm.dot`,
		Args:    cobra.NoArgs,
		RunE:    runItems,
	}
	itemsFlags.dot = cmd.Flags().String("dot", "", "write the automaton as a GraphViz file")
	rootCmd.AddCommand(cmd)
}

func runItems(cmd *cobra.Command, args []string) error {
	cfsm := current.lang.Tables.CFSM()
	fmt.Fprintln(cmd.OutOrStdout(), lr.ItemSetsAsText(cfsm))
	if *itemsFlags.dot != "" {
		if err := cfsm.CFSM2GraphViz(*itemsFlags.dot); err != nil {
			return fmt.Errorf("cannot export automaton: %w", err)
		}
		pterm.Info.Printf("%d states, %d transitions written to %s\n",
			cfsm.Size(), cfsm.EdgeCount(), *itemsFlags.dot)
	}
	return nil
}
