package otbitmap

import (
	"testing"

	"github.com/npillmayer/otface/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// sbixRecord describes one glyph record for buildSbix. A nil entry stands
// for a glyph without a record.
type sbixRecord struct {
	graphicType ot.Tag
	payload     []byte
}

func buildSbix(t *testing.T, ppem uint16, records []*sbixRecord) []byte {
	t.Helper()
	numGlyphs := len(records)
	var strike []byte
	strike = appendU16(strike, ppem)
	strike = appendU16(strike, 72) // ppi
	offsetArray := 4 + (numGlyphs+1)*4
	var glyphData []byte
	offsets := make([]uint32, 0, numGlyphs+1)
	for _, rec := range records {
		offsets = append(offsets, uint32(offsetArray+len(glyphData)))
		if rec == nil {
			continue
		}
		glyphData = appendU16(glyphData, 0) // originOffsetX
		glyphData = appendU16(glyphData, 0) // originOffsetY
		glyphData = appendU32(glyphData, uint32(rec.graphicType))
		glyphData = append(glyphData, rec.payload...)
	}
	offsets = append(offsets, uint32(offsetArray+len(glyphData)))
	for _, off := range offsets {
		strike = appendU32(strike, off)
	}
	strike = append(strike, glyphData...)
	//
	var buf []byte
	buf = appendU16(buf, 1) // version
	buf = appendU16(buf, 1) // flags: draw outlines too
	buf = appendU32(buf, 1) // numStrikes
	buf = appendU32(buf, 12)
	return append(buf, strike...)
}

func TestSbixLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	payload := make([]byte, 224)
	for i := range payload {
		payload[i] = byte(i)
	}
	sbix := buildSbix(t, 64, []*sbixRecord{
		nil, // .notdef
		{graphicType: tagPNG, payload: payload},
		nil,
	})
	s, err := ParseSbix(sbix, 3)
	require.NoError(t, err)
	require.Equal(t, 1, s.StrikeCount())
	//
	glyph, err := s.Lookup(1, 64, BitDepth32)
	require.NoError(t, err)
	g, ok := glyph.Unwrap()
	require.True(t, ok, "expected glyph 1 to have an image")
	require.Len(t, g.Data, 224)
	require.Equal(t, FormatPNG, g.Format)
	require.EqualValues(t, 64, g.PPEMX)
	require.EqualValues(t, 72, g.PPI)
	// .notdef has no record
	glyph, err = s.Lookup(0, 64, BitDepth32)
	require.NoError(t, err)
	require.True(t, glyph.IsNone())
	// glyph id beyond the font's glyph count
	glyph, err = s.Lookup(9, 64, BitDepth32)
	require.NoError(t, err)
	require.True(t, glyph.IsNone())
}

func TestSbixDupeResolvesOneHop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	payload := []byte("shared image data")
	sbix := buildSbix(t, 32, []*sbixRecord{
		nil,
		{graphicType: tagPNG, payload: payload},
		{graphicType: tagDupe, payload: []byte{0, 1}}, // borrow from glyph 1
		{graphicType: tagDupe, payload: []byte{0, 2}}, // dupe chain of length 2
	})
	s, err := ParseSbix(sbix, 4)
	require.NoError(t, err)
	// one hop resolves
	glyph, err := s.Lookup(2, 32, BitDepth32)
	require.NoError(t, err)
	g, ok := glyph.Unwrap()
	require.True(t, ok, "expected dupe record to resolve to glyph 1's image")
	require.Equal(t, payload, g.Data)
	// a second level of indirection does not
	glyph, err = s.Lookup(3, 32, BitDepth32)
	require.NoError(t, err)
	require.True(t, glyph.IsNone())
}

func TestSbixRejectsLowDepthRequests(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	sbix := buildSbix(t, 32, []*sbixRecord{
		{graphicType: tagPNG, payload: []byte("png")},
	})
	s, err := ParseSbix(sbix, 1)
	require.NoError(t, err)
	glyph, err := s.Lookup(0, 32, BitDepth8)
	require.NoError(t, err)
	require.True(t, glyph.IsNone())
}
