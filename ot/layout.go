package ot

import "fmt"

// Headers of the advanced layout tables GDEF, GSUB and GPOS. The content of
// these tables (scripts, features, lookups, class definitions) is left
// opaque; a shaping engine consuming them does its own navigation on the
// raw bytes, which the views keep accessible.

// --- GDEF ------------------------------------------------------------------

// GDefTable is a view on a glyph definition table ('GDEF'). Versions 1.0,
// 1.2 and 1.3 are accepted; newer minor versions only append offsets.
type GDefTable struct {
	data         binarySegm
	Major, Minor uint16
	// Offsets from the beginning of the GDEF table, 0 = absent.
	GlyphClassDefOffset      uint16
	AttachListOffset         uint16
	LigCaretListOffset       uint16
	MarkAttachClassDefOffset uint16
	MarkGlyphSetsDefOffset   uint16 // version 1.2+
	ItemVarStoreOffset       uint32 // version 1.3+
}

// ParseGDef interprets the bytes of a GDEF table.
func ParseGDef(data []byte) (*GDefTable, error) {
	b := binarySegm(data)
	if len(b) < 12 {
		return nil, tableError(TagGDef, "header", "size of GDEF table header")
	}
	t := &GDefTable{
		data:                     b,
		Major:                    b.U16(0),
		Minor:                    b.U16(2),
		GlyphClassDefOffset:      b.U16(4),
		AttachListOffset:         b.U16(6),
		LigCaretListOffset:       b.U16(8),
		MarkAttachClassDefOffset: b.U16(10),
	}
	if t.Major != 1 || (t.Minor != 0 && t.Minor != 2 && t.Minor != 3) {
		return nil, tableError(TagGDef, "header",
			fmt.Sprintf("unsupported GDEF version %d.%d", t.Major, t.Minor))
	}
	if t.Minor >= 2 {
		if len(b) < 14 {
			return nil, tableError(TagGDef, "header", "size of GDEF 1.2 header")
		}
		t.MarkGlyphSetsDefOffset = b.U16(12)
	}
	if t.Minor >= 3 {
		if len(b) < 18 {
			return nil, tableError(TagGDef, "header", "size of GDEF 1.3 header")
		}
		t.ItemVarStoreOffset = b.U32(14)
	}
	for _, off := range []uint32{
		uint32(t.GlyphClassDefOffset), uint32(t.AttachListOffset),
		uint32(t.LigCaretListOffset), uint32(t.MarkAttachClassDefOffset),
		uint32(t.MarkGlyphSetsDefOffset), t.ItemVarStoreOffset,
	} {
		if off != 0 && off >= uint32(len(b)) {
			return nil, tableError(TagGDef, "header", "subtable offset out of bounds")
		}
	}
	return t, nil
}

// Bytes returns the raw bytes of the GDEF table for clients navigating its
// subtables themselves.
func (t *GDefTable) Bytes() []byte {
	return t.data
}

// --- GSUB / GPOS -----------------------------------------------------------

// LayoutTable is a view on the header of a glyph substitution ('GSUB') or
// glyph positioning ('GPOS') table. Both share a common header layout;
// version 1.1 appends a feature-variations offset.
type LayoutTable struct {
	tag          Tag
	data         binarySegm
	Major, Minor uint16
	// Offsets from the beginning of the layout table.
	ScriptListOffset        uint16
	FeatureListOffset       uint16
	LookupListOffset        uint16
	FeatureVariationsOffset uint32 // version 1.1+, 0 = absent
}

// ParseLayout interprets the header of a GSUB or GPOS table. tag tells the
// two apart in diagnostics.
func ParseLayout(tag Tag, data []byte) (*LayoutTable, error) {
	b := binarySegm(data)
	if len(b) < 10 {
		return nil, tableError(tag, "header", "size of layout table header")
	}
	t := &LayoutTable{
		tag:               tag,
		data:              b,
		Major:             b.U16(0),
		Minor:             b.U16(2),
		ScriptListOffset:  b.U16(4),
		FeatureListOffset: b.U16(6),
		LookupListOffset:  b.U16(8),
	}
	if t.Major != 1 || t.Minor > 1 {
		return nil, tableError(tag, "header",
			fmt.Sprintf("unsupported layout table version %d.%d", t.Major, t.Minor))
	}
	if t.Minor == 1 {
		if len(b) < 14 {
			return nil, tableError(tag, "header", "size of layout 1.1 header")
		}
		t.FeatureVariationsOffset = b.U32(10)
	}
	for _, off := range []uint32{
		uint32(t.ScriptListOffset), uint32(t.FeatureListOffset),
		uint32(t.LookupListOffset), t.FeatureVariationsOffset,
	} {
		if off != 0 && off >= uint32(len(b)) {
			return nil, tableError(tag, "header", "list offset out of bounds")
		}
	}
	return t, nil
}

// Tag returns the table tag this layout table was parsed from, "GSUB" or
// "GPOS".
func (t *LayoutTable) Tag() Tag {
	return t.tag
}

// Bytes returns the raw bytes of the layout table.
func (t *LayoutTable) Bytes() []byte {
	return t.data
}

// LookupCount returns the number of lookups in the table's lookup list, or
// 0 when the lookup list is absent or truncated.
func (t *LayoutTable) LookupCount() int {
	if t.LookupListOffset == 0 {
		return 0
	}
	n, err := t.data.u16(int(t.LookupListOffset))
	if err != nil {
		return 0
	}
	return int(n)
}
