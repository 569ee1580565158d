package otbitmap

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// buildColorBitmaps assembles a CBLC/CBDT pair with a single strike holding
// image format 17 records for glyphs 1..len(payloads), located through an
// index format 1 subtable. A nil payload entry produces a glyph without an
// image.
func buildColorBitmaps(t *testing.T, ppem uint8, depth BitDepth, payloads [][]byte) (cblc, cbdt []byte) {
	t.Helper()
	numGlyphs := len(payloads)
	// CBDT: version header, then one format-17 record per payload
	cbdt = appendU16(cbdt, 3) // major version
	cbdt = appendU16(cbdt, 0)
	offsets := make([]uint32, 0, numGlyphs+1)
	imageDataStart := uint32(len(cbdt))
	for _, payload := range payloads {
		offsets = append(offsets, uint32(len(cbdt))-imageDataStart)
		if payload == nil {
			continue
		}
		cbdt = append(cbdt, make([]byte, 5)...) // small glyph metrics
		cbdt = appendU32(cbdt, uint32(len(payload)))
		cbdt = append(cbdt, payload...)
	}
	offsets = append(offsets, uint32(len(cbdt))-imageDataStart)
	// CBLC: header, one BitmapSize record, IndexSubtableArray, subtable
	cblc = appendU16(cblc, 3) // major version
	cblc = appendU16(cblc, 0)
	cblc = appendU32(cblc, 1) // numSizes
	record := make([]byte, bitmapSizeRecordSize)
	binary.BigEndian.PutUint32(record[0:], cblcHeaderSize+bitmapSizeRecordSize)
	binary.BigEndian.PutUint32(record[8:], 1) // one index subtable
	binary.BigEndian.PutUint16(record[40:], 1)
	binary.BigEndian.PutUint16(record[42:], uint16(numGlyphs))
	record[44] = ppem
	record[45] = ppem
	record[46] = byte(depth)
	cblc = append(cblc, record...)
	// IndexSubtableArray with one record pointing right past itself
	cblc = appendU16(cblc, 1)                 // firstGlyphIndex
	cblc = appendU16(cblc, uint16(numGlyphs)) // lastGlyphIndex
	cblc = appendU32(cblc, 8)                 // additionalOffsetToIndexSubtable
	// IndexSubHeader + format 1 offset array
	cblc = appendU16(cblc, indexFormat1)
	cblc = appendU16(cblc, imageFormat17)
	cblc = appendU32(cblc, imageDataStart)
	for _, off := range offsets {
		cblc = appendU32(cblc, off)
	}
	return cblc, cbdt
}

func TestColorBitmapLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	payload := []byte("not really a PNG, but the extractor does not decode")
	cblc, cbdt := buildColorBitmaps(t, 64, BitDepth32, [][]byte{payload, nil})
	c, err := ParseColorBitmaps(cblc, cbdt)
	require.NoError(t, err)
	require.Equal(t, 1, c.StrikeCount())
	//
	glyph, err := c.Lookup(1, 64, BitDepth32)
	require.NoError(t, err)
	g, ok := glyph.Unwrap()
	require.True(t, ok, "expected glyph 1 to have an image")
	require.Equal(t, payload, g.Data)
	require.Equal(t, FormatPNG, g.Format)
	require.EqualValues(t, 64, g.PPEMX)
	require.Equal(t, BitDepth32, g.BitDepth)
	// glyph 2 has a zero-length record
	glyph, err = c.Lookup(2, 64, BitDepth32)
	require.NoError(t, err)
	require.True(t, glyph.IsNone())
	// glyph outside the strike's range
	glyph, err = c.Lookup(77, 64, BitDepth32)
	require.NoError(t, err)
	require.True(t, glyph.IsNone())
}

func TestColorBitmapDepthFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	cblc, cbdt := buildColorBitmaps(t, 64, BitDepth32, [][]byte{[]byte("png")})
	c, err := ParseColorBitmaps(cblc, cbdt)
	require.NoError(t, err)
	// a 32 bpp strike must not satisfy a monochrome request
	glyph, err := c.Lookup(1, 64, BitDepth1)
	require.NoError(t, err)
	require.True(t, glyph.IsNone())
}

func TestStrikeSelectionPolicy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	ppems := []uint16{20, 40, 80}
	ppemOf := func(i int) uint16 { return ppems[i] }
	all := func(int) bool { return true }
	// exact match wins
	require.Equal(t, 1, bestStrike(3, ppemOf, all, 40))
	// nearest strike otherwise
	require.Equal(t, 2, bestStrike(3, ppemOf, all, 100))
	require.Equal(t, 0, bestStrike(3, ppemOf, all, 10))
	// tie between 20 and 40 at target 30 resolves toward the larger strike
	require.Equal(t, 1, bestStrike(3, ppemOf, all, 30))
	// no eligible strike
	require.Equal(t, -1, bestStrike(3, ppemOf, func(int) bool { return false }, 40))
}

func appendU16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func appendU32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}
