package otbitmap

import (
	"fmt"

	"github.com/npillmayer/otface/ot"
)

// sbix: Apple's standard bitmap graphics table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/sbix
//
// Strikes are keyed by ppem and carry one data record per glyph, each
// tagged with a graphic type. The special type 'dupe' redirects to another
// glyph's record; we follow at most one such hop.

var (
	tagPNG  = ot.T("png ")
	tagJPG  = ot.T("jpg ")
	tagTIFF = ot.T("tiff")
	tagDupe = ot.T("dupe")
)

// sbixStrike is one strike of the sbix table. offsetBase points at the
// strike's glyph-data offset array within the table bytes.
type sbixStrike struct {
	ppem       uint16
	ppi        uint16
	offsetBase int
}

// SbixTable is a view on an sbix table. The glyph-data offset arrays are
// sized by the font's glyph count, which sbix itself does not record, so
// parsing needs numGlyphs from maxp.
type SbixTable struct {
	data      binarySegm
	numGlyphs int
	strikes   []sbixStrike
}

// ParseSbix reads the strike directory of an sbix table.
func ParseSbix(data []byte, numGlyphs int) (*SbixTable, error) {
	b := binarySegm(data)
	numStrikes, err := b.u32(4)
	if err != nil {
		return nil, errImageFormat("size of sbix header")
	}
	s := &SbixTable{data: b, numGlyphs: numGlyphs, strikes: make([]sbixStrike, numStrikes)}
	for i := range s.strikes {
		strikeOffset, err := b.u32(8 + i*4)
		if err != nil {
			return nil, errImageFormat("sbix strike offsets truncated")
		}
		base := int(strikeOffset)
		ppem, err1 := b.u16(base)
		ppi, err2 := b.u16(base + 2)
		if err1 != nil || err2 != nil {
			return nil, errImageFormat("sbix strike header out of bounds")
		}
		// base+4 starts the offset array with numGlyphs+1 entries
		if _, err := b.view(base+4, (numGlyphs+1)*4); err != nil {
			return nil, errImageFormat("sbix glyph data offsets truncated")
		}
		s.strikes[i] = sbixStrike{ppem: ppem, ppi: ppi, offsetBase: base}
	}
	tracer().Debugf("sbix table has %d strikes", numStrikes)
	return s, nil
}

// StrikeCount returns the number of strikes in the sbix table.
func (s *SbixTable) StrikeCount() int {
	return len(s.strikes)
}

// Lookup finds the image of a glyph in the best-fitting strike, following
// the same selection policy as bitmap strikes (exact ppem preferred, else
// nearest with ties toward the larger strike). sbix graphics are full
// color, so a maxDepth below 32 rejects all strikes. A glyph without a
// record, or one whose 'dupe' chain does not resolve in a single hop,
// yields None.
func (s *SbixTable) Lookup(gid ot.GlyphIndex, ppem uint16, maxDepth BitDepth) (ot.Option[BitmapGlyph], error) {
	if maxDepth < BitDepth32 {
		return ot.None[BitmapGlyph](), nil
	}
	best := bestStrike(len(s.strikes),
		func(i int) uint16 { return s.strikes[i].ppem },
		func(i int) bool { return true },
		clampPPEM(ppem))
	if best < 0 {
		return ot.None[BitmapGlyph](), nil
	}
	return s.lookupInStrike(gid, &s.strikes[best], true)
}

func (s *SbixTable) lookupInStrike(gid ot.GlyphIndex, strike *sbixStrike, allowDupe bool) (ot.Option[BitmapGlyph], error) {
	if int(gid) >= s.numGlyphs {
		return ot.None[BitmapGlyph](), nil
	}
	offsets := strike.offsetBase + 4
	o1, err1 := s.data.u32(offsets + int(gid)*4)
	o2, err2 := s.data.u32(offsets + (int(gid)+1)*4)
	if err1 != nil || err2 != nil || o2 < o1 {
		return ot.None[BitmapGlyph](), errImageFormat("sbix glyph data offsets")
	}
	if o1 == o2 { // glyph has no record in this strike
		return ot.None[BitmapGlyph](), nil
	}
	if o2-o1 < 8 {
		return ot.None[BitmapGlyph](), errImageFormat("sbix glyph data record too small")
	}
	record, err := s.data.view(strike.offsetBase+int(o1), int(o2-o1))
	if err != nil {
		return ot.None[BitmapGlyph](), errImageFormat("sbix glyph data record out of bounds")
	}
	graphicType := ot.Tag(u32(record[4:]))
	payload := record[8:]
	if graphicType == tagDupe {
		// The payload is the glyph id to borrow the image from. A second
		// level of indirection is not resolved.
		if !allowDupe || len(payload) < 2 {
			return ot.None[BitmapGlyph](), nil
		}
		return s.lookupInStrike(ot.GlyphIndex(u16(payload)), strike, false)
	}
	var format GraphicFormat
	switch graphicType {
	case tagPNG:
		format = FormatPNG
	case tagJPG:
		format = FormatJPEG
	case tagTIFF:
		format = FormatTIFF
	default:
		return ot.None[BitmapGlyph](), errImageFormat(
			fmt.Sprintf("unsupported sbix graphic type '%s'", graphicType))
	}
	return ot.Some(BitmapGlyph{
		Data:          payload,
		Format:        format,
		PPEMX:         strike.ppem,
		PPEMY:         strike.ppem,
		PPI:           strike.ppi,
		BitDepth:      BitDepth32,
		OriginOffsetX: int16(u16(record)),
		OriginOffsetY: int16(u16(record[2:])),
	}), nil
}
