package otface

import "github.com/npillmayer/otface/ot"

// LayoutCache pairs a parsed GSUB or GPOS table with a per-face memo of
// lookup subtable locations. Shaping engines revisit the same lookups for
// every run of text, so the second visit should not have to renavigate
// the lookup list.
type LayoutCache struct {
	Table   *ot.LayoutTable
	lookups map[int][]byte
}

func newLayoutCache(table *ot.LayoutTable) *LayoutCache {
	return &LayoutCache{
		Table:   table,
		lookups: make(map[int][]byte),
	}
}

// LookupData returns the raw bytes of the i-th lookup in the table's
// lookup list, memoizing the navigation. Out-of-range indices yield nil.
func (c *LayoutCache) LookupData(i int) []byte {
	if data, ok := c.lookups[i]; ok {
		return data
	}
	if i < 0 || i >= c.Table.LookupCount() {
		return nil
	}
	raw := c.Table.Bytes()
	listBase := int(c.Table.LookupListOffset)
	// lookup list: count, then count offsets relative to the list
	offsetPos := listBase + 2 + 2*i
	if offsetPos+2 > len(raw) {
		return nil
	}
	lookup := listBase + int(uint16(raw[offsetPos])<<8|uint16(raw[offsetPos+1]))
	if lookup > len(raw) {
		return nil
	}
	data := raw[lookup:]
	c.lookups[i] = data
	return data
}
