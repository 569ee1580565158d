/*
Package otface provides a lazily-materialized view of a single font face.

A Face is constructed on top of an ot.TableProvider, i.e. anything that can
hand out raw font table bytes by tag. Construction selects a character-map
subtable according to a fixed platform/encoding priority, parses the tables
required for glyph access (maxp, hhea, hmtx), and classifies the face's
outline format. Everything else — vertical metrics, embedded images, glyph
names, the advanced layout tables GDEF, GSUB and GPOS — is loaded on first
use and cached for the life of the face.

Faces are single-goroutine objects: the lazy caches mutate on access and
carry no locks. Table bytes are treated as untrusted input throughout; a
damaged optional table surfaces as an error on the accessor that needed
it, and the affected cache stays unloaded so that a client may retry.

# Status

Work in progress. Font collections and variable fonts are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otface

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otface'
func tracer() tracing.Trace {
	return tracing.Select("font.otface")
}
