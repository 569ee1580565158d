package ot

import "fmt"

// This file interprets the character-to-glyph-index mapping table ('cmap').
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
//
// A cmap table consists of a small header, a list of encoding records, and a
// set of subtables in various formats. Clients select one encoding record,
// validate its subtable once, and afterwards look up character codes through
// the subtable view.

// Platform IDs of cmap encoding records.
const (
	PlatformUnicode   = 0
	PlatformMacintosh = 1
	PlatformWindows   = 3
	PlatformCustom    = 4
)

// Windows platform encoding IDs.
const (
	WinEncodingSymbol     = 0
	WinEncodingUnicodeBMP = 1
	WinEncodingBig5       = 4
	WinEncodingUCS4       = 10
)

// Macintosh platform encoding IDs.
const (
	MacEncodingRoman = 0
)

// MaxCmapSubtableRecords bounds the number of encoding records we are
// willing to read. Real fonts carry a handful; a count beyond this limit
// indicates a broken or malicious table.
const MaxCmapSubtableRecords = 256

// Encoding tells a client how to interpret the character codes it feeds
// into a cmap subtable.
type Encoding int

const (
	EncodingUnicode Encoding = iota
	EncodingSymbol
	EncodingAppleRoman
	EncodingBig5
)

func (enc Encoding) String() string {
	switch enc {
	case EncodingUnicode:
		return "Unicode"
	case EncodingSymbol:
		return "Symbol"
	case EncodingAppleRoman:
		return "AppleRoman"
	case EncodingBig5:
		return "Big5"
	}
	return fmt.Sprintf("Encoding(%d)", int(enc))
}

// EncodingRecord is an entry in the cmap header, pointing to a subtable for
// one platform/encoding combination.
type EncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Offset     uint32 // from the beginning of the cmap table
}

// CmapTable is a typed view on the bytes of a cmap table.
type CmapTable struct {
	data    binarySegm
	Records []EncodingRecord
}

// ParseCmap reads the cmap header and its encoding records. Subtables are
// not touched; they are validated individually through Subtable.
func ParseCmap(data []byte) (*CmapTable, error) {
	b := binarySegm(data)
	n, err := b.u16(2) // number of encoding records
	if err != nil {
		return nil, tableError(TagCmap, "header", "size of cmap table header")
	}
	if int(n) > MaxCmapSubtableRecords {
		return nil, tableError(TagCmap, "header",
			fmt.Sprintf("%d encoding records exceed limit", n))
	}
	records, err := b.view(4, int(n)*8)
	if err != nil {
		return nil, tableError(TagCmap, "EncodingRecord", "size of encoding records")
	}
	t := &CmapTable{data: b, Records: make([]EncodingRecord, n)}
	for i := 0; i < int(n); i++ {
		t.Records[i] = EncodingRecord{
			PlatformID: u16(records[i*8:]),
			EncodingID: u16(records[i*8+2:]),
			Offset:     u32(records[i*8+4:]),
		}
	}
	tracer().Debugf("cmap table has %d encoding records", n)
	return t, nil
}

// Subtable creates a view on the subtable at the given offset (relative to
// the start of the cmap table) and validates its header and extent. Offsets
// come from an EncodingRecord, but the record itself is untrusted, so
// nothing short of a full bounds check will do.
func (t *CmapTable) Subtable(offset uint32) (*CmapSubtable, error) {
	if offset > uint32(len(t.data)) {
		return nil, tableError(TagCmap, "EncodingRecord", "subtable offset out of bounds")
	}
	sub := t.data[offset:]
	format, err := sub.u16(0)
	if err != nil {
		return nil, tableError(TagCmap, "subtable", "size of subtable header")
	}
	var length uint32
	switch format {
	case 0, 4, 6:
		l, err := sub.u16(2)
		if err != nil {
			return nil, tableError(TagCmap, "subtable", "subtable length field")
		}
		length = uint32(l)
	case 12:
		l, err := sub.u32(4)
		if err != nil {
			return nil, tableError(TagCmap, "subtable", "subtable length field")
		}
		length = l
	default:
		return nil, tableError(TagCmap, "subtable",
			fmt.Sprintf("unsupported subtable format %d", format))
	}
	if length < 4 || uint64(offset)+uint64(length) > uint64(len(t.data)) {
		return nil, tableError(TagCmap, "subtable", "subtable length out of bounds")
	}
	s := &CmapSubtable{Format: format, data: sub[:length]}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// CmapSubtable is a validated view on a single cmap subtable. Formats 0, 4,
// 6 and 12 are supported; these cover the encoding records our selection
// policy ever picks.
type CmapSubtable struct {
	Format uint16
	data   binarySegm
}

// validate checks the format-specific counts against the subtable extent,
// so that Lookup can navigate without re-checking on every call.
func (s *CmapSubtable) validate() error {
	switch s.Format {
	case 0:
		if len(s.data) < 6+256 {
			return tableError(TagCmap, "format0", "glyph id array truncated")
		}
	case 4:
		segX2, err := s.data.u16(6)
		if err != nil || segX2 == 0 || segX2%2 != 0 {
			return tableError(TagCmap, "format4", "invalid segCountX2")
		}
		// endCodes, reservedPad, startCodes, idDeltas, idRangeOffsets
		if 14+4*int(segX2)+2 > len(s.data) {
			return tableError(TagCmap, "format4", "segment arrays truncated")
		}
	case 6:
		count, err := s.data.u16(8)
		if err != nil {
			return tableError(TagCmap, "format6", "size of subtable header")
		}
		if 10+2*int(count) > len(s.data) {
			return tableError(TagCmap, "format6", "glyph id array truncated")
		}
	case 12:
		numGroups, err := s.data.u32(12)
		if err != nil {
			return tableError(TagCmap, "format12", "size of subtable header")
		}
		need, err := checkedMulUint32(numGroups, 12)
		if err != nil {
			return tableError(TagCmap, "format12", "group count overflow")
		}
		if uint64(16)+uint64(need) > uint64(len(s.data)) {
			return tableError(TagCmap, "format12", "sequential map groups truncated")
		}
	}
	return nil
}

// Lookup maps a character code to a glyph index. Unmapped codes yield
// glyph 0 (.notdef), never an error.
func (s *CmapSubtable) Lookup(code uint32) GlyphIndex {
	switch s.Format {
	case 0:
		if code > 0xff {
			return 0
		}
		return GlyphIndex(s.data[6+code])
	case 4:
		if code > 0xffff {
			return 0
		}
		return s.lookupFormat4(uint16(code))
	case 6:
		first := uint32(s.data.U16(6))
		count := uint32(s.data.U16(8))
		if code < first || code >= first+count {
			return 0
		}
		return GlyphIndex(s.data.U16(10 + 2*int(code-first)))
	case 12:
		return s.lookupFormat12(code)
	}
	return 0
}

func (s *CmapSubtable) lookupFormat4(code uint16) GlyphIndex {
	segCount := int(s.data.U16(6)) / 2
	endCodes := 14
	startCodes := endCodes + 2*segCount + 2 // skip reservedPad
	idDeltas := startCodes + 2*segCount
	idRangeOffsets := idDeltas + 2*segCount
	// Binary search for the first segment with endCode >= code.
	lo, hi := 0, segCount
	for lo < hi {
		mid := (lo + hi) / 2
		if s.data.U16(endCodes+2*mid) < code {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == segCount || s.data.U16(startCodes+2*lo) > code {
		return 0
	}
	idRangeOffset := s.data.U16(idRangeOffsets + 2*lo)
	if idRangeOffset == 0 {
		delta := s.data.U16(idDeltas + 2*lo)
		return GlyphIndex(code + delta) // modulo 65536 by uint16 arithmetic
	}
	// idRangeOffset is a byte offset from its own location into glyphIdArray.
	start := s.data.U16(startCodes + 2*lo)
	index := idRangeOffsets + 2*lo + int(idRangeOffset) + 2*int(code-start)
	gid, err := s.data.u16(index)
	if err != nil || gid == 0 {
		return 0
	}
	delta := s.data.U16(idDeltas + 2*lo)
	return GlyphIndex(gid + delta)
}

func (s *CmapSubtable) lookupFormat12(code uint32) GlyphIndex {
	numGroups := int(s.data.U32(12))
	lo, hi := 0, numGroups
	for lo < hi {
		mid := (lo + hi) / 2
		if s.data.U32(16+12*mid+4) < code { // endCharCode
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == numGroups {
		return 0
	}
	start := s.data.U32(16 + 12*lo)
	if code < start {
		return 0
	}
	startGlyph := s.data.U32(16 + 12*lo + 8)
	return GlyphIndex(startGlyph + (code - start))
}

// Each visits every (character code, glyph index) pair of the subtable in
// ascending code order. Unmapped codes are skipped. Visiting stops early
// when visit returns false.
func (s *CmapSubtable) Each(visit func(code uint32, gid GlyphIndex) bool) {
	switch s.Format {
	case 0:
		for code := uint32(0); code <= 0xff; code++ {
			if gid := GlyphIndex(s.data[6+code]); gid != 0 {
				if !visit(code, gid) {
					return
				}
			}
		}
	case 4:
		segCount := int(s.data.U16(6)) / 2
		endCodes := 14
		startCodes := endCodes + 2*segCount + 2
		for seg := 0; seg < segCount; seg++ {
			start := uint32(s.data.U16(startCodes + 2*seg))
			end := uint32(s.data.U16(endCodes + 2*seg))
			if start == 0xffff && end == 0xffff {
				continue // the terminating segment
			}
			for code := start; code <= end; code++ {
				if gid := s.lookupFormat4(uint16(code)); gid != 0 {
					if !visit(code, gid) {
						return
					}
				}
			}
		}
	case 6:
		first := uint32(s.data.U16(6))
		count := uint32(s.data.U16(8))
		for i := uint32(0); i < count; i++ {
			if gid := GlyphIndex(s.data.U16(10 + 2*int(i))); gid != 0 {
				if !visit(first+i, gid) {
					return
				}
			}
		}
	case 12:
		numGroups := int(s.data.U32(12))
		for g := 0; g < numGroups; g++ {
			start := s.data.U32(16 + 12*g)
			end := s.data.U32(16 + 12*g + 4)
			startGlyph := s.data.U32(16 + 12*g + 8)
			for code := start; code <= end; code++ {
				if !visit(code, GlyphIndex(startGlyph+(code-start))) {
					return
				}
				if code == 0xffffffff {
					break
				}
			}
		}
	}
}
