/*
Command lrparse builds canonical LR(1) tables for the reference expression
grammar and parses input lines with them.

Without a sub-command lrparse prints the canonical collection of item sets
and the ACTION/GOTO tables, asks for an input line, and shows the trace of
the parse together with the parse tree:

	lrparse [--config lrparse.toml] [--trace Debug] ["id + id * id"]

Sub-commands:

	items   print the canonical collection, optionally as GraphViz
	table   print the parser tables, optionally as HTML
	parse   parse the arguments as one input line
	repl    parse lines interactively

Settings may be given in a TOML file:

	trace       = "Error"   # Debug | Info | Error
	show-items  = true
	show-tables = true
	tree        = "box"     # box | pterm | none
	panic-on-internal-error = false

Flags override settings from the file.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main
