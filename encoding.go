package otface

import "github.com/npillmayer/otface/ot"

// Character-map subtable selection. A font may carry cmap subtables for
// several platform/encoding combinations; we pick the one with the richest
// Unicode coverage and fall back through the legacy encodings.

// encodingMatch pairs a chosen encoding record with the interpretation of
// its character codes.
type encodingMatch struct {
	record   ot.EncodingRecord
	encoding ot.Encoding
}

// selectEncoding picks the preferred cmap encoding record. The priority is
// fixed:
//
//  1. (Windows, UCS-4)
//  2. (Windows, Unicode BMP)
//  3. (Unicode platform, UCS-4 repertoire)
//  4. any Unicode-platform record
//  5. (Windows, Symbol)
//  6. (Macintosh, Roman)
//  7. (Windows, Big5)
//
// No acceptable record yields None; such a font has no usable character
// map for our purposes.
func selectEncoding(records []ot.EncodingRecord) ot.Option[encodingMatch] {
	if m, ok := findRecord(records, ot.PlatformWindows, ot.WinEncodingUCS4); ok {
		return ot.Some(encodingMatch{m, ot.EncodingUnicode})
	}
	if m, ok := findRecord(records, ot.PlatformWindows, ot.WinEncodingUnicodeBMP); ok {
		return ot.Some(encodingMatch{m, ot.EncodingUnicode})
	}
	for _, rec := range records {
		// Unicode platform encoding IDs 4 and 6 declare the full UCS-4 repertoire
		if rec.PlatformID == ot.PlatformUnicode && (rec.EncodingID == 4 || rec.EncodingID == 6) {
			return ot.Some(encodingMatch{rec, ot.EncodingUnicode})
		}
	}
	for _, rec := range records {
		if rec.PlatformID == ot.PlatformUnicode {
			return ot.Some(encodingMatch{rec, ot.EncodingUnicode})
		}
	}
	if m, ok := findRecord(records, ot.PlatformWindows, ot.WinEncodingSymbol); ok {
		return ot.Some(encodingMatch{m, ot.EncodingSymbol})
	}
	if m, ok := findRecord(records, ot.PlatformMacintosh, ot.MacEncodingRoman); ok {
		return ot.Some(encodingMatch{m, ot.EncodingAppleRoman})
	}
	if m, ok := findRecord(records, ot.PlatformWindows, ot.WinEncodingBig5); ok {
		return ot.Some(encodingMatch{m, ot.EncodingBig5})
	}
	return ot.None[encodingMatch]()
}

func findRecord(records []ot.EncodingRecord, platformID, encodingID uint16) (ot.EncodingRecord, bool) {
	for _, rec := range records {
		if rec.PlatformID == platformID && rec.EncodingID == encodingID {
			return rec, true
		}
	}
	return ot.EncodingRecord{}, false
}
