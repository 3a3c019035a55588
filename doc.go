/*
Package lrparse is a canonical LR(1) parsing toolbox.

It builds the canonical collection of LR(1) item sets for a small
context-free grammar, derives ACTION and GOTO tables from it, runs a
shift-reduce automaton over a token stream and rebuilds the parse tree
from the sequence of reductions. Package structure is as follows:

■ lr: Package lr implements grammars, FIRST-set analysis, LR(1) items and
the table generator. Sub-packages contain the parser engine (clr), parse
trees (ptree), scanners and supporting containers.

■ expr: Package expr wires everything together for a small arithmetic
expression language and is used by the command line driver.

The base package contains data types which are used throughout all the other packages.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lrparse
