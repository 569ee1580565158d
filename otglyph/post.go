package otglyph

import (
	"encoding/binary"
	"fmt"

	"github.com/npillmayer/otface/ot"
)

// The glyph-name part of the PostScript table ('post').
// https://docs.microsoft.com/en-us/typography/opentype/spec/post
//
// Version 1.0 declares that the font's first 258 glyphs carry the standard
// Macintosh names in order. Version 2.0 maps each glyph to either a
// standard name or a Pascal string in a trailing name pool. Version 3.0
// carries no names at all.

const (
	postVersion10 = 0x00010000
	postVersion20 = 0x00020000
	postVersion30 = 0x00030000
)

// PostTable is a view on the glyph-name information of a post table.
type PostTable struct {
	Version     uint32
	nameIndex   []uint16 // version 2.0: glyph id to name index
	pool        []byte   // version 2.0: Pascal string pool
	poolOffsets []int    // offset of the i-th pool string
}

// ParsePost interprets the bytes of a post table. Versions 1.0, 2.0 and
// 3.0 are accepted; the deprecated version 2.5 is not.
func ParsePost(data []byte) (*PostTable, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("OpenType font format: size of post table header")
	}
	p := &PostTable{Version: binary.BigEndian.Uint32(data)}
	switch p.Version {
	case postVersion10, postVersion30:
		return p, nil
	case postVersion20:
		// fallthrough to the parsing below
	default:
		return nil, fmt.Errorf("OpenType font format: unsupported post version %#08x", p.Version)
	}
	if len(data) < 34 {
		return nil, fmt.Errorf("OpenType font format: size of post table")
	}
	numGlyphs := int(binary.BigEndian.Uint16(data[32:]))
	indexEnd := 34 + numGlyphs*2
	if indexEnd > len(data) {
		return nil, fmt.Errorf("OpenType font format: post glyphNameIndex truncated")
	}
	p.nameIndex = make([]uint16, numGlyphs)
	for i := range p.nameIndex {
		p.nameIndex[i] = binary.BigEndian.Uint16(data[34+i*2:])
	}
	p.pool = data[indexEnd:]
	for offset := 0; offset < len(p.pool); {
		p.poolOffsets = append(p.poolOffsets, offset)
		offset += 1 + int(p.pool[offset])
	}
	tracer().Debugf("post table names %d glyphs, %d custom names", numGlyphs, len(p.poolOffsets))
	return p, nil
}

// HasNames reports whether the table version carries glyph names.
func (p *PostTable) HasNames() bool {
	return p.Version == postVersion10 || p.Version == postVersion20
}

// Name returns the post name for a glyph, or "" if the table has none.
func (p *PostTable) Name(gid ot.GlyphIndex) string {
	switch p.Version {
	case postVersion10:
		if int(gid) < len(macGlyphNames) {
			return macGlyphNames[gid]
		}
	case postVersion20:
		if int(gid) >= len(p.nameIndex) {
			return ""
		}
		index := int(p.nameIndex[gid])
		if index < len(macGlyphNames) {
			return macGlyphNames[index]
		}
		return p.poolName(index - len(macGlyphNames))
	}
	return ""
}

func (p *PostTable) poolName(i int) string {
	if i >= len(p.poolOffsets) {
		return ""
	}
	offset := p.poolOffsets[i]
	length := int(p.pool[offset])
	if offset+1+length > len(p.pool) {
		return ""
	}
	return string(p.pool[offset+1 : offset+1+length])
}

// GlyphForName returns the glyph carrying the given post name. The search
// is linear; clients doing bulk reverse lookups should build their own
// index.
func (p *PostTable) GlyphForName(name string) (ot.GlyphIndex, bool) {
	switch p.Version {
	case postVersion10:
		for gid, n := range macGlyphNames {
			if n == name {
				return ot.GlyphIndex(gid), true
			}
		}
	case postVersion20:
		for gid := range p.nameIndex {
			if p.Name(ot.GlyphIndex(gid)) == name {
				return ot.GlyphIndex(gid), true
			}
		}
	}
	return 0, false
}

// macGlyphNames contains the 258 standard Macintosh glyph names used by
// post formats 1.0 and 2.0.
var macGlyphNames = [258]string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam",
	"quotedbl", "numbersign", "dollar", "percent", "ampersand",
	"quotesingle", "parenleft", "parenright", "asterisk", "plus",
	"comma", "hyphen", "period", "slash", "zero",
	"one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "colon",
	"semicolon", "less", "equal", "greater", "question",
	"at", "A", "B", "C", "D",
	"E", "F", "G", "H", "I",
	"J", "K", "L", "M", "N",
	"O", "P", "Q", "R", "S",
	"T", "U", "V", "W", "X",
	"Y", "Z", "bracketleft", "backslash", "bracketright",
	"asciicircum", "underscore", "grave", "a", "b",
	"c", "d", "e", "f", "g",
	"h", "i", "j", "k", "l",
	"m", "n", "o", "p", "q",
	"r", "s", "t", "u", "v",
	"w", "x", "y", "z", "braceleft",
	"bar", "braceright", "asciitilde", "Adieresis", "Aring",
	"Ccedilla", "Eacute", "Ntilde", "Odieresis", "Udieresis",
	"aacute", "agrave", "acircumflex", "adieresis", "atilde",
	"aring", "ccedilla", "eacute", "egrave", "ecircumflex",
	"edieresis", "iacute", "igrave", "icircumflex", "idieresis",
	"ntilde", "oacute", "ograve", "ocircumflex", "odieresis",
	"otilde", "uacute", "ugrave", "ucircumflex", "udieresis",
	"dagger", "degree", "cent", "sterling", "section",
	"bullet", "paragraph", "germandbls", "registered", "copyright",
	"trademark", "acute", "dieresis", "notequal", "AE",
	"Oslash", "infinity", "plusminus", "lessequal", "greaterequal",
	"yen", "mu", "partialdiff", "summation", "product",
	"pi", "integral", "ordfeminine", "ordmasculine", "Omega",
	"ae", "oslash", "questiondown", "exclamdown", "logicalnot",
	"radical", "florin", "approxequal", "Delta", "guillemotleft",
	"guillemotright", "ellipsis", "nonbreakingspace", "Agrave", "Atilde",
	"Otilde", "OE", "oe", "endash", "emdash",
	"quotedblleft", "quotedblright", "quoteleft", "quoteright", "divide",
	"lozenge", "ydieresis", "Ydieresis", "fraction", "currency",
	"guilsinglleft", "guilsinglright", "fi", "fl", "daggerdbl",
	"periodcentered", "quotesinglbase", "quotedblbase", "perthousand", "Acircumflex",
	"Ecircumflex", "Aacute", "Edieresis", "Egrave", "Iacute",
	"Icircumflex", "Idieresis", "Igrave", "Oacute", "Ocircumflex",
	"apple", "Ograve", "Uacute", "Ucircumflex", "Ugrave",
	"dotlessi", "circumflex", "tilde", "macron", "breve",
	"dotaccent", "ring", "cedilla", "hungarumlaut", "ogonek",
	"caron", "Lslash", "lslash", "Scaron", "scaron",
	"Zcaron", "zcaron", "brokenbar", "Eth", "eth",
	"Yacute", "yacute", "Thorn", "thorn", "minus",
	"multiply", "onesuperior", "twosuperior", "threesuperior", "onehalf",
	"onequarter", "threequarters", "franc", "Gbreve", "gbreve",
	"Idotaccent", "Scedilla", "scedilla", "Cacute", "cacute",
	"Ccaron", "ccaron", "dcroat",
}
