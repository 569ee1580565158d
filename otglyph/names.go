package otglyph

import (
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/otface/ot"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Namer derives names for glyphs from whatever the font offers: the post
// table, the character map, or nothing. It never fails; in the worst case
// a glyph is named after its index.
type Namer struct {
	post  *PostTable               // nil when absent or nameless
	codes map[ot.GlyphIndex]uint32 // smallest character code mapped to a glyph
	enc   ot.Encoding
}

// NewNamer builds a Namer. postData may be nil; an unparsable post table
// is treated like an absent one. cmap may be nil; enc tells the Namer how
// to interpret the character codes of the subtable.
func NewNamer(postData []byte, enc ot.Encoding, cmap *ot.CmapSubtable) *Namer {
	n := &Namer{enc: enc}
	if postData != nil {
		post, err := ParsePost(postData)
		if err != nil {
			tracer().Infof("ignoring post table: %v", err)
		} else if post.HasNames() {
			n.post = post
		}
	}
	if cmap != nil {
		n.codes = make(map[ot.GlyphIndex]uint32)
		cmap.Each(func(code uint32, gid ot.GlyphIndex) bool {
			if prev, ok := n.codes[gid]; !ok || code < prev {
				n.codes[gid] = code
			}
			return true
		})
	}
	return n
}

// Name returns a name for a glyph. Resolution order: post table, a
// "uni0041"-style name synthesized from the glyph's character-map entry,
// and a "g17"-style index name as the last resort. Glyph 0 of a font with
// a standard post table thus comes out as ".notdef".
func (n *Namer) Name(gid ot.GlyphIndex) string {
	if n.post != nil {
		if name := n.post.Name(gid); name != "" {
			return name
		}
	}
	if code, ok := n.codes[gid]; ok {
		if name := n.unicodeName(code); name != "" {
			return name
		}
	}
	return fmt.Sprintf("g%d", gid)
}

// unicodeName converts a character code to a glyph name following the
// Adobe glyph naming conventions: "uni" plus 4 hex digits for BMP scalars,
// "u" plus 5 or 6 hex digits beyond.
func (n *Namer) unicodeName(code uint32) string {
	r, ok := n.scalarValue(code)
	if !ok {
		return ""
	}
	if r <= 0xffff {
		return fmt.Sprintf("uni%04X", r)
	}
	return fmt.Sprintf("u%X", r)
}

// scalarValue interprets a raw character code according to the cmap
// subtable's encoding.
func (n *Namer) scalarValue(code uint32) (rune, bool) {
	switch n.enc {
	case ot.EncodingUnicode:
		if code > utf8.MaxRune {
			return 0, false
		}
		return rune(code), true
	case ot.EncodingSymbol:
		// Symbol fonts have no Unicode interpretation; the PUA wrapper
		// code is the best name source there is.
		return rune(code), code <= 0xffff
	case ot.EncodingAppleRoman:
		if code > 0xff {
			return 0, false
		}
		return charmap.Macintosh.DecodeByte(byte(code)), true
	case ot.EncodingBig5:
		return big5ScalarValue(code)
	}
	return 0, false
}

// big5ScalarValue decodes a Big5 character code (one byte for the ASCII
// range, two bytes otherwise) to a Unicode scalar.
func big5ScalarValue(code uint32) (rune, bool) {
	var raw []byte
	if code <= 0x7f {
		raw = []byte{byte(code)}
	} else if code <= 0xffff {
		raw = []byte{byte(code >> 8), byte(code)}
	} else {
		return 0, false
	}
	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil || len(decoded) == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRune(decoded)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}
