/*
Package otbitmap interprets the embedded-image tables of OpenType fonts:
the color bitmap pair CBLC/CBDT, Apple's sbix table, and the SVG table.

Emoji fonts carry their glyphs as pre-rendered images at a handful of pixel
sizes ("strikes") instead of outlines. This package locates the best strike
for a requested size, extracts the per-glyph image payload, and hands it to
the client as a BitmapGlyph. It does not decode PNG/JPEG/TIFF data and it
does not scale or render anything.

Strike selection follows the same policy for bitmap and sbix strikes: an
exact ppem match wins, otherwise the nearest strike, with ties resolved
toward the larger strike. Bitmap strikes additionally filter on bit depth.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otbitmap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otface'
func tracer() tracing.Trace {
	return tracing.Select("font.otface")
}
