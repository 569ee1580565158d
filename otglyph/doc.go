/*
Package otglyph derives human-readable names for glyphs.

Glyph names come from three sources, in order of preference: the font's
post table (which may carry the standard Macintosh name set or a custom
name pool), a synthetic name derived from the character-map entry of the
glyph ("uni0041"-style, following the Adobe glyph naming conventions), and
finally a bare "g17"-style index name when nothing better is known.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otglyph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otface'
func tracer() tracing.Trace {
	return tracing.Select("font.otface")
}
