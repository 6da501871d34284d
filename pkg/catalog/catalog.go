// Package catalog describes the index catalog the index-selection core
// consumes: IndexEntry, its compound key pattern, and the handful of
// per-index properties (sparse, multikey, specialty InfoObj) the
// compatibility oracle reasons about. Catalog discovery itself - how
// these entries get built from the live collection metadata - lives
// outside this module.
package catalog

import "fmt"

// IndexType is the overall kind of an index. It governs the "historical
// index override" guard in the compatibility oracle: a BTREE index's key
// pattern elements are always treated as ordinary sorted keys even if a
// stale specialty string happens to be stored in them.
type IndexType int

const (
	BTREE IndexType = iota
	HASHED
	GEO_2D
	GEO_2DSPHERE
	TEXT
	GEO_HAYSTACK
)

func (t IndexType) String() string {
	switch t {
	case BTREE:
		return "BTREE"
	case HASHED:
		return "HASHED"
	case GEO_2D:
		return "GEO_2D"
	case GEO_2DSPHERE:
		return "GEO_2DSPHERE"
	case TEXT:
		return "TEXT"
	case GEO_HAYSTACK:
		return "GEO_HAYSTACK"
	default:
		return fmt.Sprintf("IndexType(%d)", int(t))
	}
}

// KeyElemType is the string literal carried by one key-pattern element.
// "" (KeyOrdinary) denotes an ordinary ascending/descending sorted key;
// the other values name a specialty index type.
type KeyElemType string

const (
	KeyOrdinary    KeyElemType = ""
	KeyHashed      KeyElemType = "hashed"
	KeyGeo2D       KeyElemType = "2d"
	KeyGeo2DSphere KeyElemType = "2dsphere"
	KeyText        KeyElemType = "text"
	KeyGeoHaystack KeyElemType = "geoHaystack"
)

// KeyElem is one (fieldName, typeTag) pair in a compound key pattern.
type KeyElem struct {
	Field string
	Type  KeyElemType
}

// IndexEntry describes one catalog index the way the core needs it: its
// overall type, its ordered compound key pattern, and the two boolean
// properties (Sparse, Multikey) and free-form InfoObj that change which
// predicates it may serve.
type IndexEntry struct {
	Type       IndexType
	KeyPattern []KeyElem
	Sparse     bool
	Multikey   bool

	// InfoObj carries specialty-index configuration, e.g. a 2d index's
	// bits/min/max. It arrives as a loosely-typed bag (typically
	// map[string]interface{}) the way it would off the wire, and is
	// decoded on demand via DecodeGeo2DParams.
	InfoObj interface{}
}

// LeadingField returns the field name of the index's first key-pattern
// element. Every index has at least one key-pattern element; calling
// this on an index with none is a catalog invariant violation.
func (e IndexEntry) LeadingField() string {
	if len(e.KeyPattern) == 0 {
		panic("catalog: index has an empty key pattern")
	}
	return e.KeyPattern[0].Field
}
