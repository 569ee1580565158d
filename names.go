package otface

import (
	"fmt"

	"github.com/npillmayer/otface/ot"
	"github.com/npillmayer/otface/otglyph"
)

// GlyphNames returns a name for each of the given glyphs, in input order,
// with duplicates disambiguated. Names come from the post table where
// possible, otherwise from the face's character map ("uni0041"-style), and
// as a last resort from the glyph index ("g17"). The k-th repetition of a
// name gets an ".alt01"-style suffix, so ["A", "A", "A"] comes out as
// ["A", "A.alt01", "A.alt02"].
func (f *Face) GlyphNames(ids []ot.GlyphIndex) []string {
	var postData []byte
	if data, err := f.provider.Table(ot.TagPost); err == nil {
		postData = data
	}
	namer := otglyph.NewNamer(postData, f.encoding, f.subtable)
	names := make([]string, len(ids))
	for i, gid := range ids {
		names[i] = namer.Name(gid)
	}
	return uniqueNames(names)
}

// uniqueNames disambiguates repeated names in place. The first occurrence
// keeps its name; the k-th duplicate becomes "<name>.alt%02d" with k
// starting at 1.
func uniqueNames(names []string) []string {
	seen := make(map[string]int, len(names))
	for i, name := range names {
		k := seen[name]
		seen[name] = k + 1
		if k > 0 {
			names[i] = fmt.Sprintf("%s.alt%02d", name, k)
		}
	}
	return names
}
