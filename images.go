package otface

import (
	"errors"

	"github.com/npillmayer/otface/ot"
	"github.com/npillmayer/otface/otbitmap"
)

// Embedded-image resolution. A face carries at most one image source:
// bitmap strikes (CBLC paired with CBDT), fixed-size sbix graphics, or SVG
// documents. The first load settles which one, in that order of
// preference; afterwards every lookup goes through the settled source.

// imageBundle is the settled image source of a face, owning the parsed
// view over the table bytes it was created from.
type imageBundle struct {
	bitmaps *otbitmap.ColorBitmaps
	sbix    *otbitmap.SbixTable
	svg     *otbitmap.SVGTable
}

// loadImages settles the face's image source. Fonts without any embedded
// image tables yield None, which the cache remembers; a damaged image
// table is an error, which it doesn't.
//
// TODO enable the SVG arm once the interaction of SVG documents with
// outline rendering is decided; parsing and lookup are in place.
func (f *Face) loadImages() (ot.Option[*imageBundle], error) {
	cblc, errLoc := f.provider.Table(ot.TagCBLC)
	cbdt, errDat := f.provider.Table(ot.TagCBDT)
	if errLoc == nil && errDat == nil {
		bitmaps, err := otbitmap.ParseColorBitmaps(cblc, cbdt)
		if err != nil {
			return ot.None[*imageBundle](), err
		}
		tracer().Debugf("face images come from %d bitmap strikes", bitmaps.StrikeCount())
		return ot.Some(&imageBundle{bitmaps: bitmaps}), nil
	}
	if err := firstRealError(errLoc, errDat); err != nil {
		return ot.None[*imageBundle](), err
	}
	sbixData, err := f.provider.Table(ot.TagSbix)
	if err == nil {
		sbix, err := otbitmap.ParseSbix(sbixData, f.NumGlyphs())
		if err != nil {
			return ot.None[*imageBundle](), err
		}
		tracer().Debugf("face images come from %d sbix strikes", sbix.StrikeCount())
		return ot.Some(&imageBundle{sbix: sbix}), nil
	}
	if !errors.Is(err, ot.ErrTableMissing) {
		return ot.None[*imageBundle](), err
	}
	return ot.None[*imageBundle](), nil
}

// firstRealError filters out the "table not present" case, which is not an
// error for optional tables.
func firstRealError(errs ...error) error {
	for _, err := range errs {
		if err != nil && !errors.Is(err, ot.ErrTableMissing) {
			return err
		}
	}
	return nil
}

// LookupGlyphImage finds an embedded image for a glyph, for a target size
// in pixels per em and a maximum acceptable bit depth. Glyphs without an
// image, and faces without image tables, yield None. The bundle's strike
// selection policy applies (exact ppem match preferred, else nearest with
// ties toward the larger strike).
func (f *Face) LookupGlyphImage(gid ot.GlyphIndex, ppem uint16, maxDepth otbitmap.BitDepth) (ot.Option[otbitmap.BitmapGlyph], error) {
	bundle, err := f.images.getOrLoad(f.loadImages)
	if err != nil {
		return ot.None[otbitmap.BitmapGlyph](), err
	}
	b, ok := bundle.Unwrap()
	if !ok {
		return ot.None[otbitmap.BitmapGlyph](), nil
	}
	switch {
	case b.bitmaps != nil:
		return b.bitmaps.Lookup(gid, ppem, maxDepth)
	case b.sbix != nil:
		return b.sbix.Lookup(gid, ppem, maxDepth)
	case b.svg != nil:
		return b.svg.Lookup(gid)
	}
	return ot.None[otbitmap.BitmapGlyph](), nil
}

// SupportsEmoji reports whether the face has a usable embedded-image
// source. The answer is settled on first call and damaged image tables
// count as "no".
func (f *Face) SupportsEmoji() bool {
	bundle, err := f.images.getOrLoad(f.loadImages)
	if err != nil {
		tracer().Debugf("embedded images: %v", err)
		return false
	}
	return bundle.IsSome()
}
