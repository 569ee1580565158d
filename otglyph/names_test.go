package otglyph

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/otface/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// postV2 builds a version 2.0 post table. Entries < 258 reference the
// standard Macintosh names, strings become pool names.
func postV2(t *testing.T, entries ...any) []byte {
	t.Helper()
	buf := make([]byte, 32)
	binary.BigEndian.PutUint32(buf, 0x00020000)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(entries)))
	var pool []byte
	custom := 0
	for _, e := range entries {
		switch e := e.(type) {
		case int:
			buf = binary.BigEndian.AppendUint16(buf, uint16(e))
		case string:
			buf = binary.BigEndian.AppendUint16(buf, uint16(258+custom))
			custom++
			pool = append(pool, byte(len(e)))
			pool = append(pool, e...)
		default:
			t.Fatalf("postV2: unsupported entry %v", e)
		}
	}
	return append(buf, pool...)
}

// unicodeCmap builds a parsed format-12 subtable mapping [first,last] to
// glyphs starting at firstGlyph.
func unicodeCmap(t *testing.T, first, last uint32, firstGlyph uint32) *ot.CmapSubtable {
	t.Helper()
	var buf []byte
	buf = binary.BigEndian.AppendUint16(buf, 0) // cmap version
	buf = binary.BigEndian.AppendUint16(buf, 1)
	buf = binary.BigEndian.AppendUint16(buf, ot.PlatformWindows)
	buf = binary.BigEndian.AppendUint16(buf, ot.WinEncodingUCS4)
	buf = binary.BigEndian.AppendUint32(buf, 12)
	buf = binary.BigEndian.AppendUint16(buf, 12) // subtable format
	buf = binary.BigEndian.AppendUint16(buf, 0)
	buf = binary.BigEndian.AppendUint32(buf, 28) // length
	buf = binary.BigEndian.AppendUint32(buf, 0)  // language
	buf = binary.BigEndian.AppendUint32(buf, 1)  // numGroups
	buf = binary.BigEndian.AppendUint32(buf, first)
	buf = binary.BigEndian.AppendUint32(buf, last)
	buf = binary.BigEndian.AppendUint32(buf, firstGlyph)
	table, err := ot.ParseCmap(buf)
	require.NoError(t, err)
	sub, err := table.Subtable(table.Records[0].Offset)
	require.NoError(t, err)
	return sub
}

func TestPostTableNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	post, err := ParsePost(postV2(t, 0, "middle.finger", 37)) // 37 = "A"
	require.NoError(t, err)
	require.True(t, post.HasNames())
	require.Equal(t, ".notdef", post.Name(0))
	require.Equal(t, "middle.finger", post.Name(1))
	require.Equal(t, "A", post.Name(2))
	require.Equal(t, "", post.Name(17))
	//
	gid, ok := post.GlyphForName("middle.finger")
	require.True(t, ok)
	require.EqualValues(t, 1, gid)
}

func TestPostVersion3HasNoNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	buf := make([]byte, 32)
	binary.BigEndian.PutUint32(buf, 0x00030000)
	post, err := ParsePost(buf)
	require.NoError(t, err)
	require.False(t, post.HasNames())
	require.Equal(t, "", post.Name(0))
}

func TestNamerPrefersPostNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	namer := NewNamer(postV2(t, 0, 37), ot.EncodingUnicode,
		unicodeCmap(t, 'A', 'B', 1))
	require.Equal(t, ".notdef", namer.Name(0))
	require.Equal(t, "A", namer.Name(1))
	// glyph 2 is mapped from 'B' but has no post entry
	require.Equal(t, "uni0042", namer.Name(2))
}

func TestNamerUnicodeNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	namer := NewNamer(nil, ot.EncodingUnicode, unicodeCmap(t, 0x1f600, 0x1f602, 5))
	require.Equal(t, "u1F601", namer.Name(6))
	// unmapped glyph falls back to its index
	require.Equal(t, "g9", namer.Name(9))
}

func TestNamerAppleRoman(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	// Mac Roman 0xA0 is the dagger, U+2020
	var buf []byte
	buf = binary.BigEndian.AppendUint16(buf, 0)
	buf = binary.BigEndian.AppendUint16(buf, 1)
	buf = binary.BigEndian.AppendUint16(buf, ot.PlatformMacintosh)
	buf = binary.BigEndian.AppendUint16(buf, ot.MacEncodingRoman)
	buf = binary.BigEndian.AppendUint32(buf, 12)
	sub := make([]byte, 6+256)
	binary.BigEndian.PutUint16(sub, 0) // format 0
	binary.BigEndian.PutUint16(sub[2:], 262)
	sub[6+0xa0] = 3
	table, err := ot.ParseCmap(append(buf, sub...))
	require.NoError(t, err)
	cm, err := table.Subtable(12)
	require.NoError(t, err)
	//
	namer := NewNamer(nil, ot.EncodingAppleRoman, cm)
	require.Equal(t, "uni2020", namer.Name(3))
}

func TestNamerWithoutAnySource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otface")
	defer teardown()
	//
	namer := NewNamer(nil, ot.EncodingUnicode, nil)
	require.Equal(t, "g0", namer.Name(0))
	require.Equal(t, "g42", namer.Name(42))
}
