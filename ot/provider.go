package ot

import "sort"

// TableProvider is the capability through which all font data enters this
// module: something that can hand out the raw bytes of a font table,
// identified by its 4-byte tag. Providers are assumed immutable — a table's
// bytes must not change while clients hold views into them.
//
// Table returns the bytes of the table identified by tag, or ErrTableMissing
// if the font does not contain such a table. HasTable is a cheap existence
// test which must agree with Table.
type TableProvider interface {
	Table(tag Tag) ([]byte, error)
	HasTable(tag Tag) bool
}

// TableMap is an in-memory TableProvider backed by a plain map. It is the
// provider of choice for tests and tools which assemble synthetic tables.
type TableMap map[Tag][]byte

// Table returns the bytes for tag, or ErrTableMissing.
func (m TableMap) Table(tag Tag) ([]byte, error) {
	b, ok := m[tag]
	if !ok {
		return nil, ErrTableMissing
	}
	return b, nil
}

// HasTable reports whether the map contains an entry for tag.
func (m TableMap) HasTable(tag Tag) bool {
	_, ok := m[tag]
	return ok
}

// Tags returns the table tags of the map in ascending tag order, mirroring
// the ordering requirement of an SFNT table directory.
func (m TableMap) Tags() []Tag {
	tags := make([]Tag, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
