/*
Package ot provides low-level access to OpenType font tables.

The package does not parse whole font files. Instead, all byte input arrives
through the TableProvider capability: something that can hand out the raw
bytes of a font table, identified by its 4-byte tag. A provider will usually
be backed by an SFNT file sitting in memory, but tests and tools are free to
serve synthetic tables from a map.

On top of the provider, package ot offers typed views for the handful of
tables a font-face data manager needs to interpret itself: the character-map
(cmap) encoding records and subtables, maxp, hhea/vhea, the raw hmtx/vmtx
metric arrays, head, OS/2, and the headers of the advanced layout tables
GDEF, GSUB and GPOS. Layout table *content* (scripts, features, lookups) is
deliberately left opaque; a shaping engine consuming those tables does its
own navigation.

All parsing is zero-copy: typed views keep offsets into the table bytes they
were created from and re-derive slices on access. Table bytes are treated as
untrusted input; every offset and count is bounds-checked before use.

# Status

Work in progress. Font collections and variable fonts are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otface'
func tracer() tracing.Trace {
	return tracing.Select("font.otface")
}
