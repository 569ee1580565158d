package otbitmap

import (
	"errors"
	"fmt"
)

// BitDepth is the bits-per-pixel of a bitmap strike. sbix strikes always
// carry full-color graphics and count as 32 bpp.
type BitDepth uint8

const (
	BitDepth1  BitDepth = 1
	BitDepth2  BitDepth = 2
	BitDepth4  BitDepth = 4
	BitDepth8  BitDepth = 8
	BitDepth32 BitDepth = 32
)

// GraphicFormat tells a client how to decode the payload of a BitmapGlyph.
type GraphicFormat int

const (
	FormatPNG GraphicFormat = iota
	FormatJPEG
	FormatTIFF
	FormatSVG
	FormatMask // uncompressed embedded bitmap data
)

func (f GraphicFormat) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatJPEG:
		return "JPEG"
	case FormatTIFF:
		return "TIFF"
	case FormatSVG:
		return "SVG"
	case FormatMask:
		return "Mask"
	}
	return fmt.Sprintf("GraphicFormat(%d)", int(f))
}

// BitmapGlyph is one glyph image extracted from an embedded-image table.
// Data is a sub-slice of the table bytes it came from; callers must treat
// it as read-only.
type BitmapGlyph struct {
	Data          []byte
	Format        GraphicFormat
	PPEMX, PPEMY  uint16
	PPI           uint16 // sbix only, 0 otherwise
	BitDepth      BitDepth
	OriginOffsetX int16 // sbix only
	OriginOffsetY int16 // sbix only
}

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

// errImageFormat produces user level errors for embedded-image parsing.
func errImageFormat(message string) error {
	return fmt.Errorf("OpenType embedded image format: %s", message)
}

// binarySegm is a bounds-checked segment of table bytes, mirroring the byte
// navigation used for the core tables.
type binarySegm []byte

func u16(b []byte) uint16 {
	_ = b[1]
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) || offset+n < 0 {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Strike selection ------------------------------------------------------

// bestStrike returns the index of the strike whose ppem fits target best:
// exact match preferred, otherwise nearest, ties toward the larger strike.
// Candidates with eligible(i) == false are skipped. Returns -1 when no
// strike is eligible.
func bestStrike(count int, ppemOf func(i int) uint16, eligible func(i int) bool, target uint16) int {
	best := -1
	var bestDist int
	for i := 0; i < count; i++ {
		if !eligible(i) {
			continue
		}
		ppem := int(ppemOf(i))
		dist := ppem - int(target)
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist ||
			(dist == bestDist && ppemOf(i) > ppemOf(best)) {
			best = i
			bestDist = dist
		}
	}
	return best
}

// clampPPEM squeezes a requested size into the u8 range that bitmap strikes
// are declared in.
func clampPPEM(target uint16) uint16 {
	if target > 0xff {
		return 0xff
	}
	return target
}
