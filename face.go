package otface

import (
	"errors"
	"fmt"

	"github.com/npillmayer/otface/ot"
)

// OutlineFormat classifies how a face stores its glyph outlines, if any.
type OutlineFormat int

const (
	OutlineGlyf OutlineFormat = iota // TrueType outlines in a glyf table
	OutlineCFF                       // PostScript outlines in a CFF table
	OutlineNone                      // no outlines, e.g. a pure bitmap face
)

func (f OutlineFormat) String() string {
	switch f {
	case OutlineGlyf:
		return "glyf"
	case OutlineCFF:
		return "CFF"
	case OutlineNone:
		return "none"
	}
	return fmt.Sprintf("OutlineFormat(%d)", int(f))
}

// Face is the lazily-materialized view of a single font face. It keeps the
// character-map selection, the tables required for glyph access, and a set
// of caches which populate at most once and are never invalidated. A Face
// must not be shared between goroutines without external synchronization.
type Face struct {
	provider ot.TableProvider
	cmap     *ot.CmapTable
	subtable *ot.CmapSubtable // validated once against the cmap bytes
	encoding ot.Encoding
	maxp     *ot.MaxPTable
	hhea     *ot.HHeaTable
	hmtx     []byte
	outline  OutlineFormat

	vhea   lazyCache[*ot.HHeaTable]
	vmtx   lazyCache[[]byte]
	gdef   lazyCache[*ot.GDefTable]
	gsub   lazyCache[*LayoutCache]
	gpos   lazyCache[*LayoutCache]
	images lazyCache[*imageBundle]
}

// New constructs a Face on top of a table provider. The provider's tables
// are assumed immutable for the life of the face.
//
// A font whose cmap table offers no acceptable platform/encoding
// combination is not an error: New returns None for it. Damage in a
// required table (cmap, maxp, hhea, hmtx) is an error.
func New(provider ot.TableProvider) (ot.Option[*Face], error) {
	cmapData, err := provider.Table(ot.TagCmap)
	if err != nil {
		return ot.None[*Face](), fmt.Errorf("reading cmap table: %w", err)
	}
	cmap, err := ot.ParseCmap(cmapData)
	if err != nil {
		return ot.None[*Face](), err
	}
	match, ok := selectEncoding(cmap.Records).Unwrap()
	if !ok {
		tracer().Infof("font has no usable cmap subtable")
		return ot.None[*Face](), nil
	}
	subtable, err := cmap.Subtable(match.record.Offset)
	if err != nil {
		return ot.None[*Face](), err
	}
	maxpData, err := provider.Table(ot.TagMaxP)
	if err != nil {
		return ot.None[*Face](), fmt.Errorf("reading maxp table: %w", err)
	}
	maxp, err := ot.ParseMaxP(maxpData)
	if err != nil {
		return ot.None[*Face](), err
	}
	hheaData, err := provider.Table(ot.TagHHea)
	if err != nil {
		return ot.None[*Face](), fmt.Errorf("reading hhea table: %w", err)
	}
	hhea, err := ot.ParseHHea(hheaData)
	if err != nil {
		return ot.None[*Face](), err
	}
	hmtx, err := provider.Table(ot.TagHMtx)
	if err != nil {
		return ot.None[*Face](), fmt.Errorf("reading hmtx table: %w", err)
	}
	face := &Face{
		provider: provider,
		cmap:     cmap,
		subtable: subtable,
		encoding: match.encoding,
		maxp:     maxp,
		hhea:     hhea,
		hmtx:     hmtx,
		outline:  classifyOutline(provider),
	}
	tracer().Infof("face: %d glyphs, %s encoding, %s outlines",
		maxp.NumGlyphs, face.encoding, face.outline)
	return ot.Some(face), nil
}

// classifyOutline fixes the outline format for the life of the face.
// Faces with sbix or SVG graphics report no outlines even when a glyf
// table is present; mixing embedded images with outline rendering is not
// resolved yet.
func classifyOutline(provider ot.TableProvider) OutlineFormat {
	switch {
	case provider.HasTable(ot.TagSbix) || provider.HasTable(ot.TagSVG):
		return OutlineNone
	case provider.HasTable(ot.TagGlyf):
		return OutlineGlyf
	case provider.HasTable(ot.TagCFF):
		return OutlineCFF
	}
	return OutlineNone
}

// Encoding tells how character codes fed into GlyphIndex are interpreted.
func (f *Face) Encoding() ot.Encoding {
	return f.encoding
}

// Outline returns the face's outline format, fixed at construction.
func (f *Face) Outline() OutlineFormat {
	return f.outline
}

// NumGlyphs returns the number of glyphs in the face.
func (f *Face) NumGlyphs() int {
	return int(f.maxp.NumGlyphs)
}

// GlyphIndex maps a character code to a glyph index through the subtable
// chosen at construction. Unmapped codes yield glyph 0 (.notdef).
func (f *Face) GlyphIndex(code uint32) ot.GlyphIndex {
	return f.subtable.Lookup(code)
}

// HorizontalAdvance returns a glyph's advance width in font units, or None
// when the metric arrays cannot deliver one.
func (f *Face) HorizontalAdvance(gid ot.GlyphIndex) ot.Option[uint16] {
	adv, err := ot.Advance(f.maxp, f.hhea, f.hmtx, gid)
	if err != nil {
		tracer().Debugf("horizontal advance of glyph %d: %v", gid, err)
		return ot.None[uint16]()
	}
	return ot.Some(adv)
}

// VerticalAdvance returns a glyph's advance height in font units. Fonts
// without vertical metrics (no vhea or vmtx table) yield None.
func (f *Face) VerticalAdvance(gid ot.GlyphIndex) ot.Option[uint16] {
	vhea, err := f.vhea.getOrLoad(func() (ot.Option[*ot.HHeaTable], error) {
		data, err := f.provider.Table(ot.TagVHea)
		if errors.Is(err, ot.ErrTableMissing) {
			return ot.None[*ot.HHeaTable](), nil
		} else if err != nil {
			return ot.None[*ot.HHeaTable](), err
		}
		t, err := ot.ParseHHea(data)
		if err != nil {
			return ot.None[*ot.HHeaTable](), err
		}
		return ot.Some(t), nil
	})
	if err != nil {
		tracer().Debugf("vertical header: %v", err)
		return ot.None[uint16]()
	}
	vheaTable, ok := vhea.Unwrap()
	if !ok {
		return ot.None[uint16]()
	}
	vmtx, err := f.vmtx.getOrLoad(func() (ot.Option[[]byte], error) {
		data, err := f.provider.Table(ot.TagVMtx)
		if errors.Is(err, ot.ErrTableMissing) {
			return ot.None[[]byte](), nil
		} else if err != nil {
			return ot.None[[]byte](), err
		}
		return ot.Some(data), nil
	})
	if err != nil {
		tracer().Debugf("vertical metrics: %v", err)
		return ot.None[uint16]()
	}
	vmtxData, ok := vmtx.Unwrap()
	if !ok {
		return ot.None[uint16]()
	}
	adv, err := ot.Advance(f.maxp, vheaTable, vmtxData, gid)
	if err != nil {
		tracer().Debugf("vertical advance of glyph %d: %v", gid, err)
		return ot.None[uint16]()
	}
	return ot.Some(adv)
}

// Ascent returns the typographic ascender from hhea, in font units.
func (f *Face) Ascent() int16 {
	return f.hhea.Ascender
}

// Descent returns the typographic descender from hhea, in font units.
func (f *Face) Descent() int16 {
	return f.hhea.Descender
}

// LineGap returns the typographic line gap from hhea, in font units.
func (f *Face) LineGap() int16 {
	return f.hhea.LineGap
}

// HeadTable parses the font header table. The result is not cached; the
// table is small and rarely consulted. Fonts without a head table yield
// None.
func (f *Face) HeadTable() (ot.Option[*ot.HeadTable], error) {
	data, err := f.provider.Table(ot.TagHead)
	if errors.Is(err, ot.ErrTableMissing) {
		return ot.None[*ot.HeadTable](), nil
	} else if err != nil {
		return ot.None[*ot.HeadTable](), err
	}
	head, err := ot.ParseHead(data)
	if err != nil {
		return ot.None[*ot.HeadTable](), err
	}
	return ot.Some(head), nil
}

// UnitsPerEm returns the design grid resolution from the head table, or
// None when the table is absent or damaged.
func (f *Face) UnitsPerEm() ot.Option[uint16] {
	head, err := f.HeadTable()
	if err != nil {
		tracer().Debugf("head table: %v", err)
		return ot.None[uint16]()
	}
	h, ok := head.Unwrap()
	if !ok {
		return ot.None[uint16]()
	}
	return ot.Some(h.UnitsPerEm)
}

// OS2Table parses the OS/2 metrics table. Like HeadTable, the result is
// not cached.
func (f *Face) OS2Table() (ot.Option[*ot.OS2Table], error) {
	data, err := f.provider.Table(ot.TagOS2)
	if errors.Is(err, ot.ErrTableMissing) {
		return ot.None[*ot.OS2Table](), nil
	} else if err != nil {
		return ot.None[*ot.OS2Table](), err
	}
	os2, err := ot.ParseOS2(data)
	if err != nil {
		return ot.None[*ot.OS2Table](), err
	}
	return ot.Some(os2), nil
}

// GDefTable returns the face's glyph definition table, parsed on first
// access. Fonts without a GDEF table yield None.
func (f *Face) GDefTable() (ot.Option[*ot.GDefTable], error) {
	return f.gdef.getOrLoad(func() (ot.Option[*ot.GDefTable], error) {
		data, err := f.provider.Table(ot.TagGDef)
		if errors.Is(err, ot.ErrTableMissing) {
			return ot.None[*ot.GDefTable](), nil
		} else if err != nil {
			return ot.None[*ot.GDefTable](), err
		}
		t, err := ot.ParseGDef(data)
		if err != nil {
			return ot.None[*ot.GDefTable](), err
		}
		return ot.Some(t), nil
	})
}

// GSubCache returns a shared handle to the face's glyph substitution
// table, parsed on first access.
func (f *Face) GSubCache() (ot.Option[*LayoutCache], error) {
	return f.gsub.getOrLoad(func() (ot.Option[*LayoutCache], error) {
		return f.loadLayout(ot.TagGSub)
	})
}

// GPosCache returns a shared handle to the face's glyph positioning
// table, parsed on first access.
func (f *Face) GPosCache() (ot.Option[*LayoutCache], error) {
	return f.gpos.getOrLoad(func() (ot.Option[*LayoutCache], error) {
		return f.loadLayout(ot.TagGPos)
	})
}

func (f *Face) loadLayout(tag ot.Tag) (ot.Option[*LayoutCache], error) {
	data, err := f.provider.Table(tag)
	if errors.Is(err, ot.ErrTableMissing) {
		return ot.None[*LayoutCache](), nil
	} else if err != nil {
		return ot.None[*LayoutCache](), err
	}
	table, err := ot.ParseLayout(tag, data)
	if err != nil {
		return ot.None[*LayoutCache](), err
	}
	return ot.Some(newLayoutCache(table)), nil
}
