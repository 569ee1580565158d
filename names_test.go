package otface

import (
	"testing"

	"github.com/npillmayer/otface/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestGlyphNamesFromPost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	// name indices: .notdef, A, B, C
	face := newTestFace(t, ot.TableMap{ot.TagPost: testPost(0, 37, 38, 39)})
	names := face.GlyphNames([]ot.GlyphIndex{0})
	require.Equal(t, []string{".notdef"}, names)
	names = face.GlyphNames([]ot.GlyphIndex{2, 1, 3})
	require.Equal(t, []string{"B", "A", "C"}, names)
}

func TestGlyphNamesFromCmap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	face := newTestFace(t, nil)
	names := face.GlyphNames([]ot.GlyphIndex{1, 2, 9})
	require.Equal(t, []string{"uni0041", "uni0042", "g9"}, names)
}

func TestGlyphNamesAreUnique(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	// all three glyphs carry the post name "A"
	face := newTestFace(t, ot.TableMap{ot.TagPost: testPost(0, 37, 37, 37)})
	names := face.GlyphNames([]ot.GlyphIndex{1, 2, 3})
	require.Equal(t, []string{"A", "A.alt01", "A.alt02"}, names)
}

func TestGlyphNamesPreserveInputOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	face := newTestFace(t, ot.TableMap{ot.TagPost: testPost(0, 37, 38, 39)})
	names := face.GlyphNames([]ot.GlyphIndex{3, 3, 0, 1})
	require.Equal(t, []string{"C", "C.alt01", ".notdef", "A"}, names)
}

func TestUniqueNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	names := uniqueNames([]string{"x", "y", "x", "x"})
	require.Equal(t, []string{"x", "y", "x.alt01", "x.alt02"}, names)
}

func TestEncodingSelectorPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	records := []ot.EncodingRecord{
		{PlatformID: ot.PlatformMacintosh, EncodingID: ot.MacEncodingRoman, Offset: 1},
		{PlatformID: ot.PlatformWindows, EncodingID: ot.WinEncodingUnicodeBMP, Offset: 2},
		{PlatformID: ot.PlatformWindows, EncodingID: ot.WinEncodingUCS4, Offset: 3},
	}
	match, ok := selectEncoding(records).Unwrap()
	require.True(t, ok)
	require.EqualValues(t, 3, match.record.Offset, "expected the UCS-4 record to win")
	require.Equal(t, ot.EncodingUnicode, match.encoding)
	//
	// without the Windows records, Mac Roman is the fallback
	match, ok = selectEncoding(records[:1]).Unwrap()
	require.True(t, ok)
	require.Equal(t, ot.EncodingAppleRoman, match.encoding)
	//
	// symbol beats Mac Roman
	symbol := append(records[:1:1], ot.EncodingRecord{
		PlatformID: ot.PlatformWindows, EncodingID: ot.WinEncodingSymbol, Offset: 4,
	})
	match, ok = selectEncoding(symbol).Unwrap()
	require.True(t, ok)
	require.Equal(t, ot.EncodingSymbol, match.encoding)
	//
	require.True(t, selectEncoding(nil).IsNone())
}
