// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The icongrid command replays grid scenarios and prints the layout.

Usage:

	icongrid [flags] <scenario.yaml>

A scenario is a YAML document naming the grid geometry, its elements and a
list of steps. Every step performs one operation: requisition, allocate, add,
remove, reorder, show, hide, geometry, direction or constrain_width. After
each step icongrid prints the row and column count; allocate steps also print
the rectangle of every visible element.

The -png flag writes a preview of an allocation to the named file. By default
the last allocate step is drawn; -step selects another one by index.

The -stats flag prints pass timings and re-layout counts to stderr when done.

The -v flag enables debug logging of the layout passes.
`
