package ot

// OS2Table holds the fields of the OS/2 and Windows metrics table relevant
// for glyph access and style classification. Later table versions append
// fields; XHeight and CapHeight are only filled for version 2 and up.
type OS2Table struct {
	Version       uint16
	WeightClass   uint16
	WidthClass    uint16
	FsType        uint16
	FsSelection   uint16
	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
	WinAscent     uint16
	WinDescent    uint16
	XHeight       int16
	CapHeight     int16
}

// ParseOS2 interprets the bytes of an OS/2 table.
func ParseOS2(data []byte) (*OS2Table, error) {
	b := binarySegm(data)
	if len(b) < 78 {
		return nil, tableError(TagOS2, "header", "size of OS/2 table")
	}
	t := &OS2Table{
		Version:       b.U16(0),
		WeightClass:   b.U16(4),
		WidthClass:    b.U16(6),
		FsType:        b.U16(8),
		FsSelection:   b.U16(62),
		TypoAscender:  int16(b.U16(68)),
		TypoDescender: int16(b.U16(70)),
		TypoLineGap:   int16(b.U16(72)),
		WinAscent:     b.U16(74),
		WinDescent:    b.U16(76),
	}
	if t.Version >= 2 && len(b) >= 90 {
		t.XHeight = int16(b.U16(86))
		t.CapHeight = int16(b.U16(88))
	}
	return t, nil
}
