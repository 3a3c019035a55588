package main

import (
	"fmt"
	"os"

	"github.com/heyimalaap/lrparse/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	html *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table",
		Short:   "Print the ACTION and GOTO tables",
		Example: `  lrparse table --html tables.html`,
		Args:    cobra.NoArgs,
		RunE:    runTable,
	}
	tableFlags.html = cmd.Flags().String("html", "", "write the tables as an HTML file")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	lrgen := current.lang.Tables
	fmt.Fprintln(cmd.OutOrStdout(), lr.TablesAsText(lrgen))
	for _, c := range lrgen.Conflicts() {
		pterm.Warning.Println(c.String())
	}
	if *tableFlags.html == "" {
		return nil
	}
	f, err := os.Create(*tableFlags.html)
	if err != nil {
		return fmt.Errorf("cannot export tables: %w", err)
	}
	defer f.Close()
	if err = lr.ActionTableAsHTML(lrgen, f); err != nil {
		return fmt.Errorf("cannot export ACTION table: %w", err)
	}
	if err = lr.GotoTableAsHTML(lrgen, f); err != nil {
		return fmt.Errorf("cannot export GOTO table: %w", err)
	}
	pterm.Info.Printf("tables written to %s\n", *tableFlags.html)
	return nil
}
