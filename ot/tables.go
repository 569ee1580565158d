package ot

import "fmt"

// Typed views on the small fixed-layout tables a font face needs: maxp,
// head, hhea/vhea, OS/2, and advance lookup in the raw hmtx/vmtx arrays.
// Each parser copies the handful of fields it needs; the metric arrays stay
// raw and are navigated on demand.

// --- maxp ------------------------------------------------------------------

// MaxPTable holds the fields of the maxp table relevant for glyph access.
// Only NumGlyphs is ever needed; the remaining fields concern rasterizers.
type MaxPTable struct {
	Version   uint32
	NumGlyphs uint16
}

// ParseMaxP interprets the bytes of a maxp table. Both version 0.5 (CFF
// outlines) and version 1.0 (TrueType outlines) start with the fields we
// read.
func ParseMaxP(data []byte) (*MaxPTable, error) {
	b := binarySegm(data)
	version, err := b.u32(0)
	if err != nil {
		return nil, tableError(TagMaxP, "header", "size of maxp table")
	}
	if version != 0x00005000 && version != 0x00010000 {
		return nil, tableError(TagMaxP, "header",
			fmt.Sprintf("unsupported maxp version %#08x", version))
	}
	numGlyphs, err := b.u16(4)
	if err != nil {
		return nil, tableError(TagMaxP, "header", "size of maxp table")
	}
	return &MaxPTable{Version: version, NumGlyphs: numGlyphs}, nil
}

// --- head ------------------------------------------------------------------

const headMagicNumber = 0x5f0f3af5

// HeadTable holds the fields of the font header table ('head') relevant for
// glyph access.
type HeadTable struct {
	UnitsPerEm       uint16
	Flags            uint16
	MacStyle         uint16
	IndexToLocFormat int16
}

// ParseHead interprets the bytes of a head table.
func ParseHead(data []byte) (*HeadTable, error) {
	b := binarySegm(data)
	if len(b) < 54 {
		return nil, tableError(TagHead, "header", "size of head table")
	}
	if b.U32(12) != headMagicNumber {
		return nil, tableError(TagHead, "header", "head table magic number mismatch")
	}
	return &HeadTable{
		Flags:            b.U16(16),
		UnitsPerEm:       b.U16(18),
		MacStyle:         b.U16(44),
		IndexToLocFormat: int16(b.U16(50)),
	}, nil
}

// --- hhea / vhea -----------------------------------------------------------

// HHeaTable holds the fields of a horizontal header table ('hhea'). The
// vertical header ('vhea') shares the same layout with vertical reading of
// the fields, so it reuses this view.
type HHeaTable struct {
	Ascender         int16
	Descender        int16
	LineGap          int16
	NumberOfHMetrics uint16
}

// ParseHHea interprets the bytes of an hhea (or vhea) table.
func ParseHHea(data []byte) (*HHeaTable, error) {
	b := binarySegm(data)
	if len(b) < 36 {
		return nil, tableError(TagHHea, "header", "size of hhea table")
	}
	return &HHeaTable{
		Ascender:         int16(b.U16(4)),
		Descender:        int16(b.U16(6)),
		LineGap:          int16(b.U16(8)),
		NumberOfHMetrics: b.U16(34),
	}, nil
}

// --- hmtx / vmtx -----------------------------------------------------------

// Advance returns the advance width (or height, for vmtx) of a glyph from
// the raw bytes of a metrics table. The metrics array holds one long metric
// per glyph up to NumberOfHMetrics; glyphs beyond that share the last
// advance, a run-length trick for monospaced tails.
func Advance(maxp *MaxPTable, hhea *HHeaTable, mtx []byte, gid GlyphIndex) (uint16, error) {
	numMetrics := int(hhea.NumberOfHMetrics)
	if numMetrics == 0 {
		return 0, tableError(TagHMtx, "longMetrics", "no long metric records")
	}
	if uint16(gid) >= maxp.NumGlyphs {
		return 0, tableError(TagHMtx, "longMetrics",
			fmt.Sprintf("glyph %d out of range (%d glyphs)", gid, maxp.NumGlyphs))
	}
	b := binarySegm(mtx)
	i := int(gid)
	if i >= numMetrics {
		i = numMetrics - 1
	}
	adv, err := b.u16(i * 4)
	if err != nil {
		return 0, tableError(TagHMtx, "longMetrics", "metrics array truncated")
	}
	return adv, nil
}
