package otbitmap

import "github.com/npillmayer/otface/ot"

// SVG: the scalable vector graphics table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/svg
//
// SVG documents cover glyph-id ranges; lookup is a plain range scan with
// no size or depth negotiation, since vector documents scale freely.

// svgDocRecord is one entry of the SVG document list.
type svgDocRecord struct {
	startGlyph ot.GlyphIndex
	endGlyph   ot.GlyphIndex
	docOffset  uint32 // from the beginning of the document list
	docLength  uint32
}

// SVGTable is a view on an SVG table.
type SVGTable struct {
	docList binarySegm
	records []svgDocRecord
}

// ParseSVG reads the document list of an SVG table.
func ParseSVG(data []byte) (*SVGTable, error) {
	b := binarySegm(data)
	docListOffset, err := b.u32(2)
	if err != nil {
		return nil, errImageFormat("size of SVG header")
	}
	docList, err := b.view(int(docListOffset), len(b)-int(docListOffset))
	if err != nil {
		return nil, errImageFormat("SVG document list offset out of bounds")
	}
	numEntries, err := docList.u16(0)
	if err != nil {
		return nil, errImageFormat("SVG document list truncated")
	}
	entries, err := docList.view(2, int(numEntries)*12)
	if err != nil {
		return nil, errImageFormat("SVG document records truncated")
	}
	t := &SVGTable{docList: docList, records: make([]svgDocRecord, numEntries)}
	for i := range t.records {
		rec := entries[i*12:]
		t.records[i] = svgDocRecord{
			startGlyph: ot.GlyphIndex(u16(rec)),
			endGlyph:   ot.GlyphIndex(u16(rec[2:])),
			docOffset:  u32(rec[4:]),
			docLength:  u32(rec[8:]),
		}
	}
	tracer().Debugf("SVG table has %d document records", numEntries)
	return t, nil
}

// Lookup returns the SVG document covering a glyph. The document may be
// gzip-compressed (starting with the gzip magic bytes); decompression is
// the client's business.
func (t *SVGTable) Lookup(gid ot.GlyphIndex) (ot.Option[BitmapGlyph], error) {
	for _, rec := range t.records {
		if gid < rec.startGlyph || gid > rec.endGlyph {
			continue
		}
		doc, err := t.docList.view(int(rec.docOffset), int(rec.docLength))
		if err != nil {
			return ot.None[BitmapGlyph](), errImageFormat("SVG document out of bounds")
		}
		return ot.Some(BitmapGlyph{
			Data:     doc,
			Format:   FormatSVG,
			BitDepth: BitDepth32,
		}), nil
	}
	return ot.None[BitmapGlyph](), nil
}
