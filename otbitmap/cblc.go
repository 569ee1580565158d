package otbitmap

import (
	"fmt"

	"github.com/npillmayer/otface/ot"
)

// CBLC/CBDT: color bitmap location and data tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cblc
//
// CBLC holds a directory of strikes (BitmapSize records) plus per-strike
// index subtables locating each glyph's image; CBDT holds the image
// payloads. The two tables are only meaningful as a pair.

const (
	cblcHeaderSize       = 8
	bitmapSizeRecordSize = 48
)

// Index subtable formats of the CBLC table.
const (
	indexFormat1 = 1 // variable metrics, 32-bit offsets
	indexFormat2 = 2 // constant metrics, no offset array
	indexFormat3 = 3 // variable metrics, 16-bit offsets
	indexFormat4 = 4 // variable metrics, sparse glyph ids
	indexFormat5 = 5 // constant metrics, sparse glyph ids
)

// Image data formats of the CBDT table.
const (
	imageFormat17 = 17 // small metrics + PNG
	imageFormat18 = 18 // big metrics + PNG
	imageFormat19 = 19 // metrics in CBLC, PNG data only
)

// bitmapStrike is one BitmapSize record of the CBLC table.
type bitmapStrike struct {
	indexArrayOffset  uint32 // from the beginning of CBLC
	numIndexSubtables uint32
	startGlyph        ot.GlyphIndex
	endGlyph          ot.GlyphIndex
	ppemX, ppemY      uint8
	bitDepth          BitDepth
}

// ColorBitmaps is a view on a CBLC/CBDT table pair. The strike directory is
// parsed up front; glyph location and image extraction navigate the raw
// bytes on demand.
type ColorBitmaps struct {
	loc     binarySegm // CBLC
	dat     binarySegm // CBDT
	strikes []bitmapStrike
}

// ParseColorBitmaps reads the strike directory of a CBLC table and pairs it
// with the CBDT image data.
func ParseColorBitmaps(cblc, cbdt []byte) (*ColorBitmaps, error) {
	loc := binarySegm(cblc)
	numSizes, err := loc.u32(4)
	if err != nil {
		return nil, errImageFormat("size of CBLC header")
	}
	records, err := loc.view(cblcHeaderSize, int(numSizes)*bitmapSizeRecordSize)
	if err != nil {
		return nil, errImageFormat("CBLC BitmapSize records truncated")
	}
	c := &ColorBitmaps{loc: loc, dat: cbdt, strikes: make([]bitmapStrike, numSizes)}
	for i := range c.strikes {
		rec := records[i*bitmapSizeRecordSize:]
		c.strikes[i] = bitmapStrike{
			indexArrayOffset:  u32(rec),
			numIndexSubtables: u32(rec[8:]),
			startGlyph:        ot.GlyphIndex(u16(rec[40:])),
			endGlyph:          ot.GlyphIndex(u16(rec[42:])),
			ppemX:             rec[44],
			ppemY:             rec[45],
			bitDepth:          BitDepth(rec[46]),
		}
	}
	tracer().Debugf("CBLC table has %d strikes", numSizes)
	return c, nil
}

// StrikeCount returns the number of strikes in the CBLC directory.
func (c *ColorBitmaps) StrikeCount() int {
	return len(c.strikes)
}

// Lookup finds the image of a glyph in the best-fitting strike: exact ppem
// match preferred, otherwise the nearest strike with ties toward the larger
// one, considering only strikes with a bit depth of at most maxDepth.
// A glyph without an image in the chosen strike yields None; damaged table
// data yields an error.
func (c *ColorBitmaps) Lookup(gid ot.GlyphIndex, ppem uint16, maxDepth BitDepth) (ot.Option[BitmapGlyph], error) {
	ppem = clampPPEM(ppem)
	best := bestStrike(len(c.strikes),
		func(i int) uint16 { return uint16(c.strikes[i].ppemX) },
		func(i int) bool { return c.strikes[i].bitDepth <= maxDepth },
		ppem)
	if best < 0 {
		return ot.None[BitmapGlyph](), nil
	}
	strike := &c.strikes[best]
	if gid < strike.startGlyph || gid > strike.endGlyph {
		return ot.None[BitmapGlyph](), nil
	}
	return c.lookupInStrike(gid, strike)
}

// lookupInStrike walks the strike's IndexSubtableArray for the record
// covering gid, then locates and extracts the glyph image.
func (c *ColorBitmaps) lookupInStrike(gid ot.GlyphIndex, strike *bitmapStrike) (ot.Option[BitmapGlyph], error) {
	arrayBase := int(strike.indexArrayOffset)
	records, err := c.loc.view(arrayBase, int(strike.numIndexSubtables)*8)
	if err != nil {
		return ot.None[BitmapGlyph](), errImageFormat("CBLC IndexSubtableArray truncated")
	}
	for i := 0; i < int(strike.numIndexSubtables); i++ {
		rec := records[i*8:]
		first := ot.GlyphIndex(u16(rec))
		last := ot.GlyphIndex(u16(rec[2:]))
		if gid < first || gid > last {
			continue
		}
		subtable := arrayBase + int(u32(rec[4:]))
		offset, size, err := c.glyphLocation(gid, first, last, subtable)
		if err != nil {
			return ot.None[BitmapGlyph](), err
		}
		if size == 0 { // glyph has no image in this strike
			return ot.None[BitmapGlyph](), nil
		}
		imageFormat, err := c.loc.u16(subtable + 2)
		if err != nil {
			return ot.None[BitmapGlyph](), errImageFormat("CBLC IndexSubHeader truncated")
		}
		return c.extractImage(offset, size, imageFormat, strike)
	}
	return ot.None[BitmapGlyph](), nil
}

// glyphLocation resolves the (offset, size) of a glyph's image data within
// CBDT, according to the index subtable's format. A size of 0 with a nil
// error means the glyph has no image.
func (c *ColorBitmaps) glyphLocation(gid, first, last ot.GlyphIndex, subtable int) (uint32, uint32, error) {
	indexFormat, err := c.loc.u16(subtable)
	if err != nil {
		return 0, 0, errImageFormat("CBLC IndexSubHeader truncated")
	}
	imageDataOffset, err := c.loc.u32(subtable + 4)
	if err != nil {
		return 0, 0, errImageFormat("CBLC IndexSubHeader truncated")
	}
	arrays := subtable + 8
	glyphIndex := int(gid) - int(first)
	switch indexFormat {
	case indexFormat1:
		o1, err1 := c.loc.u32(arrays + glyphIndex*4)
		o2, err2 := c.loc.u32(arrays + (glyphIndex+1)*4)
		if err1 != nil || err2 != nil || o2 < o1 {
			return 0, 0, errImageFormat("CBLC index format 1 offsets")
		}
		return imageDataOffset + o1, o2 - o1, nil
	case indexFormat2:
		imageSize, err := c.loc.u32(arrays)
		if err != nil {
			return 0, 0, errImageFormat("CBLC index format 2 header")
		}
		return imageDataOffset + uint32(glyphIndex)*imageSize, imageSize, nil
	case indexFormat3:
		o1, err1 := c.loc.u16(arrays + glyphIndex*2)
		o2, err2 := c.loc.u16(arrays + (glyphIndex+1)*2)
		if err1 != nil || err2 != nil || o2 < o1 {
			return 0, 0, errImageFormat("CBLC index format 3 offsets")
		}
		return imageDataOffset + uint32(o1), uint32(o2 - o1), nil
	case indexFormat4:
		numGlyphs, err := c.loc.u32(arrays)
		if err != nil {
			return 0, 0, errImageFormat("CBLC index format 4 header")
		}
		pairs := arrays + 4
		for i := 0; i < int(numGlyphs); i++ {
			id, err1 := c.loc.u16(pairs + i*4)
			if err1 != nil {
				return 0, 0, errImageFormat("CBLC index format 4 pairs truncated")
			}
			if ot.GlyphIndex(id) != gid {
				continue
			}
			o1, err1 := c.loc.u16(pairs + i*4 + 2)
			o2, err2 := c.loc.u16(pairs + (i+1)*4 + 2)
			if err1 != nil || err2 != nil || o2 < o1 {
				return 0, 0, errImageFormat("CBLC index format 4 offsets")
			}
			return imageDataOffset + uint32(o1), uint32(o2 - o1), nil
		}
		return 0, 0, nil
	case indexFormat5:
		imageSize, err := c.loc.u32(arrays)
		if err != nil {
			return 0, 0, errImageFormat("CBLC index format 5 header")
		}
		numGlyphs, err := c.loc.u32(arrays + 4 + 8) // skip big metrics
		if err != nil {
			return 0, 0, errImageFormat("CBLC index format 5 header")
		}
		ids := arrays + 16
		for i := 0; i < int(numGlyphs); i++ {
			id, err := c.loc.u16(ids + i*2)
			if err != nil {
				return 0, 0, errImageFormat("CBLC index format 5 glyph ids truncated")
			}
			if ot.GlyphIndex(id) == gid {
				return imageDataOffset + uint32(i)*imageSize, imageSize, nil
			}
		}
		return 0, 0, nil
	}
	return 0, 0, errImageFormat(fmt.Sprintf("unsupported CBLC index format %d", indexFormat))
}

// extractImage peels the per-glyph metrics header off a CBDT record and
// returns the remaining image payload.
func (c *ColorBitmaps) extractImage(offset, size uint32, imageFormat uint16, strike *bitmapStrike) (ot.Option[BitmapGlyph], error) {
	record, err := c.dat.view(int(offset), int(size))
	if err != nil {
		return ot.None[BitmapGlyph](), errImageFormat("CBDT glyph record out of bounds")
	}
	glyph := BitmapGlyph{
		Format:   FormatPNG,
		PPEMX:    uint16(strike.ppemX),
		PPEMY:    uint16(strike.ppemY),
		BitDepth: strike.bitDepth,
	}
	var headerSize int
	switch imageFormat {
	case imageFormat17:
		headerSize = 5 + 4 // small glyph metrics + data length
	case imageFormat18:
		headerSize = 8 + 4 // big glyph metrics + data length
	case imageFormat19:
		headerSize = 4 // metrics live in CBLC, only data length here
	default:
		return ot.None[BitmapGlyph](), errImageFormat(
			fmt.Sprintf("unsupported CBDT image format %d", imageFormat))
	}
	if len(record) < headerSize {
		return ot.None[BitmapGlyph](), errImageFormat("CBDT glyph record truncated")
	}
	dataLen := u32(record[headerSize-4:])
	if uint64(headerSize)+uint64(dataLen) > uint64(len(record)) {
		return ot.None[BitmapGlyph](), errImageFormat("CBDT image data truncated")
	}
	glyph.Data = record[headerSize : uint32(headerSize)+dataLen]
	return ot.Some(glyph), nil
}
