package ixselect

import (
	"github.com/eddiewu/docixselect/pkg/catalog"
	"github.com/eddiewu/docixselect/pkg/geo"
	"github.com/eddiewu/docixselect/pkg/match"
)

// Compatible is the compatibility oracle (spec.md 4.4): given one
// key-pattern element of idx, and the predicate node that RateIndices
// is currently evaluating at that field, it decides whether idx could
// serve node at that key position.
//
// node is the node IsBoundsGenerating matched - for $ne/$nin this is the
// NOT node itself, not its child.
func Compatible(key catalog.KeyElem, idx catalog.IndexEntry, node match.Expression) bool {
	asNode, ok := node.(*match.Node)
	invariant(ok, "Compatible received a node that is not a *match.Node")

	switch effectiveKeyType(key, idx) {
	case catalog.KeyGeo2DSphere:
		return compatible2DSphere(asNode)
	case catalog.KeyGeo2D:
		return compatible2D(asNode, idx)
	case catalog.KeyText:
		return node.Kind() == match.TEXT
	case catalog.KeyGeoHaystack:
		return false
	case catalog.KeyHashed:
		return node.Kind() == match.EQ || node.Kind() == match.IN
	case catalog.KeyOrdinary:
		return compatibleOrdinary(asNode, key, idx)
	default:
		warnUnknownEffectiveType(key.Field, string(key.Type))
		invariant(false, "unreachable: unknown effective key type %q", key.Type)
		return false
	}
}

// effectiveKeyType resolves the key-pattern element's effective type:
// empty (ordinary sorted) unless the element names a specialty AND the
// index's own declared type isn't BTREE. A specialty string left behind
// on a key pattern that a later index rebuild turned into a plain BTREE
// index is not honored - this is the historical-index-override guard.
func effectiveKeyType(key catalog.KeyElem, idx catalog.IndexEntry) catalog.KeyElemType {
	if key.Type == catalog.KeyOrdinary {
		return catalog.KeyOrdinary
	}
	if idx.Type == catalog.BTREE {
		return catalog.KeyOrdinary
	}
	return key.Type
}

// isTextIndexPrefixField reports whether field names a key-pattern
// element that precedes the first text-type element of pattern - one of
// the plain sorted keys a text index carries ahead of its text divider.
func isTextIndexPrefixField(field string, pattern []catalog.KeyElem) bool {
	for _, key := range pattern {
		if key.Type == catalog.KeyText {
			return false
		}
		if key.Field == field {
			return true
		}
	}
	return false
}

func compatible2DSphere(node *match.Node) bool {
	switch node.Kind() {
	case match.GEO:
		region, ok := node.Geometry()
		return ok && region.HasS2Region()
	case match.GEONEAR:
		return node.NearSphere()
	default:
		return false
	}
}

func compatible2D(node *match.Node, idx catalog.IndexEntry) bool {
	switch node.Kind() {
	case match.GEONEAR:
		return !node.NearSphere()
	case match.GEO:
		region, ok := node.Geometry()
		if !ok {
			return false
		}
		if region.HasFlatRegion() {
			return true
		}
		cap, ok := region.Cap()
		if !ok {
			return false
		}
		return twoDWontWrap(cap, idx)
	default:
		return false
	}
}

// twoDWontWrap reports whether a $centerSphere cap, widened by the 2d
// index's hash error margin, stays clear of the +/-180 longitude seam
// and the poles. A 2d index cannot answer a query whose search region
// wraps the edge of its flat coordinate plane.
func twoDWontWrap(cap geo.Cap, idx catalog.IndexEntry) bool {
	params, err := idx.DecodeGeo2DParams()
	invariant(err == nil, "decoding 2d index InfoObj: %v", err)

	radiusDeg := cap.RadiusRadians * (180.0 / 3.14159265358979323846)
	yScan := radiusDeg + params.ErrorSphere()
	xScan := geo.ComputeXScanDistance(cap.Center.Lat, yScan)

	top := cap.Center.Lat + yScan
	bottom := cap.Center.Lat - yScan
	left := cap.Center.Lon - xScan
	right := cap.Center.Lon + xScan

	if top > 90 || bottom < -90 {
		return false
	}
	if left < params.Min || right > params.Max {
		return false
	}
	return true
}

// compatibleOrdinary implements the oracle's rules for an ordinary
// sorted key (spec.md 4.4.1).
func compatibleOrdinary(node *match.Node, key catalog.KeyElem, idx catalog.IndexEntry) bool {
	switch node.Kind() {
	case match.GEO, match.GEONEAR, match.TEXT:
		// Specialty predicates are never answerable by an ordinary key;
		// TEXT in particular is validated separately by
		// StripInvalidAssignmentsToTextIndexes, not here.
		return false
	}

	// A field that precedes the text divider in a text index's key
	// pattern can only be bounded by equality - anything else would
	// need to scan past documents the text search hasn't yet narrowed.
	if idx.Type == catalog.TEXT && isTextIndexPrefixField(key.Field, idx.KeyPattern) && node.Kind() != match.EQ {
		return false
	}

	if idx.Sparse && node.HasNullLiteral() {
		return false
	}

	if node.Kind() == match.NOT {
		if idx.Sparse || idx.Multikey {
			return false
		}
		child := node.Child()
		if child != nil && (child.Kind() == match.REGEX || child.Kind() == match.MOD) {
			return false
		}
	}

	return true
}
