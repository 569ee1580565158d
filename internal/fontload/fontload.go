// Package fontload loads font files and exposes their table directory.
//
// Whole-font parsing and validation is delegated to x/image/font/sfnt;
// on top of that, the package walks the SFNT table directory itself and
// wraps it as an ot.TableProvider, which is all the rest of the module
// ever sees of a font file.
package fontload

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/npillmayer/otface/ot"
	"golang.org/x/image/font/sfnt"
)

// ScalableFont is a loaded font with its original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(bytez)
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull)
	return f, nil
}

// Provider walks the font's SFNT table directory and returns a table
// provider serving sub-slices of the font's bytes. The directory is
// checked for ordering, alignment and bounds; the table contents are not
// validated here.
func (f *ScalableFont) Provider() (ot.TableProvider, error) {
	return parseTableDirectory(f.Binary)
}

// SFNT font types we accept: TrueType 1.0 ('true'), OpenType with CFF
// ('OTTO'), and the plain version 1.0 type.
const (
	fontTypeTrueType = 0x74727565
	fontTypeOpenType = 0x4f54544f
	fontTypeDefault  = 0x00010000
)

func parseTableDirectory(font []byte) (ot.TableMap, error) {
	// Offset table: sfntVersion, numTables, searchRange, entrySelector, rangeShift
	if len(font) < 12 {
		return nil, fmt.Errorf("OpenType font format: font file too short")
	}
	fontType := u32(font)
	if fontType != fontTypeTrueType && fontType != fontTypeOpenType && fontType != fontTypeDefault {
		return nil, fmt.Errorf("OpenType font format: font type not supported: %#x", fontType)
	}
	numTables := int(u16(font[4:]))
	recordsSize, ok := checkedMul(numTables, 16)
	if !ok || 12+recordsSize > len(font) {
		return nil, fmt.Errorf("OpenType font format: table record entries")
	}
	tables := make(ot.TableMap, numTables)
	var prevTag ot.Tag
	for i := 0; i < numTables; i++ {
		rec := font[12+i*16:]
		tag := ot.Tag(u32(rec))
		if i > 0 && tag <= prevTag {
			return nil, fmt.Errorf("OpenType font format: table order")
		}
		prevTag = tag
		off := u32(rec[8:])
		size := u32(rec[12:])
		if off%4 != 0 {
			return nil, fmt.Errorf("OpenType font format: table %s not 4-byte aligned", tag)
		}
		end, ok := checkedAddU32(off, size)
		if !ok || int64(end) > int64(len(font)) {
			return nil, fmt.Errorf("OpenType font format: table %s: bounds [%d:%d] exceed font size %d",
				tag, off, end, len(font))
		}
		tables[tag] = font[off:end]
	}
	return tables, nil
}

// Tags returns the table tags of a provider in ascending order, mainly
// for diagnostics.
func Tags(p ot.TableProvider) []ot.Tag {
	if m, ok := p.(ot.TableMap); ok {
		return m.Tags()
	}
	var tags []ot.Tag
	for _, tag := range knownTags {
		if p.HasTable(tag) {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

var knownTags = []ot.Tag{
	ot.TagCmap, ot.TagMaxP, ot.TagHead, ot.TagHHea, ot.TagHMtx,
	ot.TagVHea, ot.TagVMtx, ot.TagOS2, ot.TagPost, ot.TagGlyf,
	ot.TagCFF, ot.TagGDef, ot.TagGSub, ot.TagGPos, ot.TagCBLC,
	ot.TagCBDT, ot.TagSbix, ot.TagSVG,
}

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func checkedMul(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

func checkedAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}
