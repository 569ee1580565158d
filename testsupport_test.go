package otface

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/otface/ot"
)

// Builders for synthetic font tables. The test font maps 'A'..'C' to
// glyphs 1..3 unless a test overrides the cmap.

func appendU16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func appendU32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// testCmap builds a cmap with a single (Windows, Unicode BMP) format-4
// subtable mapping 'A'..'C' to glyphs 1..3.
func testCmap() []byte {
	var buf []byte
	buf = appendU16(buf, 0) // version
	buf = appendU16(buf, 1) // numTables
	buf = appendU16(buf, ot.PlatformWindows)
	buf = appendU16(buf, ot.WinEncodingUnicodeBMP)
	buf = appendU32(buf, 12) // subtable offset
	// format 4 with two segments: ['A','C'] -> 1..3 and the terminator
	buf = appendU16(buf, 4)
	buf = appendU16(buf, 32) // length
	buf = appendU16(buf, 0)  // language
	buf = appendU16(buf, 4)  // segCountX2
	buf = appendU16(buf, 4)  // searchRange
	buf = appendU16(buf, 1)  // entrySelector
	buf = appendU16(buf, 0)  // rangeShift
	buf = appendU16(buf, 'C')
	buf = appendU16(buf, 0xffff) // endCodes
	buf = appendU16(buf, 0)      // reservedPad
	buf = appendU16(buf, 'A')
	buf = appendU16(buf, 0xffff) // startCodes
	buf = appendU16(buf, uint16(0x10000+1-'A')) // idDelta, maps 'A' to glyph 1
	buf = appendU16(buf, 1)
	buf = appendU16(buf, 0)
	buf = appendU16(buf, 0) // idRangeOffsets
	return buf
}

func testMaxP(numGlyphs uint16) []byte {
	var buf []byte
	buf = appendU32(buf, 0x00010000)
	buf = appendU16(buf, numGlyphs)
	return append(buf, make([]byte, 26)...)
}

func testHHea(ascender, descender, lineGap int16, numMetrics uint16) []byte {
	var buf []byte
	buf = appendU32(buf, 0x00010000)
	buf = appendU16(buf, uint16(ascender))
	buf = appendU16(buf, uint16(descender))
	buf = appendU16(buf, uint16(lineGap))
	buf = append(buf, make([]byte, 24)...) // caret slope etc. up to offset 34
	return appendU16(buf, numMetrics)
}

// testMtx builds a metrics table with one long metric per advance.
func testMtx(advances ...uint16) []byte {
	var buf []byte
	for _, adv := range advances {
		buf = appendU16(buf, adv)
		buf = appendU16(buf, 0) // side bearing
	}
	return buf
}

func testHead(unitsPerEm uint16) []byte {
	buf := make([]byte, 54)
	binary.BigEndian.PutUint32(buf[12:], 0x5f0f3af5)
	binary.BigEndian.PutUint16(buf[18:], unitsPerEm)
	return buf
}

// testPost builds a version 2.0 post table naming the first glyphs with
// standard Macintosh name indices.
func testPost(nameIndices ...uint16) []byte {
	buf := make([]byte, 32)
	binary.BigEndian.PutUint32(buf, 0x00020000)
	buf = appendU16(buf, uint16(len(nameIndices)))
	for _, idx := range nameIndices {
		buf = appendU16(buf, idx)
	}
	return buf
}

// testFont assembles the minimal required tables for a 4-glyph face and
// merges in any extra tables.
func testFont(t *testing.T, extra ot.TableMap) ot.TableMap {
	t.Helper()
	font := ot.TableMap{
		ot.TagCmap: testCmap(),
		ot.TagMaxP: testMaxP(4),
		ot.TagHHea: testHHea(800, -200, 90, 4),
		ot.TagHMtx: testMtx(500, 550, 600, 650),
	}
	for tag, data := range extra {
		font[tag] = data
	}
	return font
}

// newTestFace builds a Face over testFont and fails the test on error.
func newTestFace(t *testing.T, extra ot.TableMap) *Face {
	t.Helper()
	faceOpt, err := New(testFont(t, extra))
	if err != nil {
		t.Fatalf("cannot construct face: %v", err)
	}
	face, ok := faceOpt.Unwrap()
	if !ok {
		t.Fatalf("expected a usable face")
	}
	return face
}

// flakyProvider fails the first fetch of a designated table, then behaves
// like the underlying map.
type flakyProvider struct {
	tables   ot.TableMap
	failTag  ot.Tag
	failures int
}

func (p *flakyProvider) Table(tag ot.Tag) ([]byte, error) {
	if tag == p.failTag && p.failures > 0 {
		p.failures--
		return nil, errTransient
	}
	return p.tables.Table(tag)
}

func (p *flakyProvider) HasTable(tag ot.Tag) bool {
	return p.tables.HasTable(tag)
}

var errTransient = &transientError{}

type transientError struct{}

func (e *transientError) Error() string { return "transient table fetch failure" }
