package ot

// GlyphIndex is a glyph index in a font.
//
// From the OpenType specification: character codes that do not correspond to
// any glyph in the font should be mapped to glyph index 0. The glyph at this
// location must be a special glyph representing a missing character, commonly
// known as '.notdef'.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
//
//	MakeTag([]byte("cmap"))
//
// If b is shorter or longer, it will be silently extended or cut as appropriate.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Tags for the tables a font-face data manager deals with. Tag names are
// case-sensitive, following the names in the OpenType specification.
var (
	TagCmap = T("cmap")
	TagMaxP = T("maxp")
	TagHead = T("head")
	TagHHea = T("hhea")
	TagHMtx = T("hmtx")
	TagVHea = T("vhea")
	TagVMtx = T("vmtx")
	TagOS2  = T("OS/2")
	TagPost = T("post")
	TagGlyf = T("glyf")
	TagCFF  = T("CFF ")
	TagGDef = T("GDEF")
	TagGSub = T("GSUB")
	TagGPos = T("GPOS")
	TagCBLC = T("CBLC")
	TagCBDT = T("CBDT")
	TagSbix = T("sbix")
	TagSVG  = T("SVG ")
)
