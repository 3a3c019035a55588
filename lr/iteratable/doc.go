/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorithms are often more straightforward
to describe as set constructions and operations.

Sets remember the order of insertion. Iterating over a set while adding
elements to it will visit the new elements as well, which makes fixed-point
computations like item-set closure a single loop.

Unusually, all set operations are destructive!

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package iteratable
