package ixselect

import (
	"github.com/eddiewu/docixselect/pkg/catalog"
	"github.com/eddiewu/docixselect/pkg/match"
)

// StripInvalidAssignmentsToTextIndexes is the Text-Index Structural
// Validator (spec.md 4.5). RateIndices tags a TEXT node with every text
// index whose text key lines up with its path, but a text index also
// requires an equality predicate on every field of its key pattern that
// precedes the text key, co-located in the same conjunction as the text
// predicate itself - RateIndices has no way to check that, since it
// rates one node at a time. This pass removes any such assignment that
// doesn't actually satisfy that requirement.
func StripInvalidAssignmentsToTextIndexes(tree match.Expression, indices []catalog.IndexEntry) {
	for i, idx := range indices {
		if idx.Type == catalog.TEXT {
			stripInvalidAssignmentsToTextIndex(tree, indices, i)
		}
	}
}

func stripInvalidAssignmentsToTextIndex(node match.Expression, indices []catalog.IndexEntry, idx int) {
	if node.Kind() == match.AND {
		children := node.Children()
		satisfied := hasDirectTextChildTagged(children, idx) &&
			prefixFieldsSatisfiedByEquality(children, indices[idx])
		for _, child := range children {
			if satisfied && (child.Kind() == match.TEXT || isPrefixFieldEquality(child, indices[idx])) {
				continue
			}
			stripInvalidAssignmentsToTextIndex(child, indices, idx)
		}
		return
	}

	if match.IsBoundsGenerating(node) {
		// Reached without an enclosing, satisfied AND having already
		// spared it: there is no conjunction supplying the prefix-field
		// equalities alongside the text predicate, so every leaf this
		// index was tentatively assigned to - the text leaf and any
		// prefix-field leaves alike - can never be satisfied.
		removeIndexRelevantTagIfTagged(node, idx)
		return
	}

	for _, child := range node.Children() {
		stripInvalidAssignmentsToTextIndex(child, indices, idx)
	}
}

// isPrefixFieldEquality reports whether child is a direct equality
// predicate on one of idx's text-divider prefix fields - the shape an
// AND must carry alongside the text predicate to use idx at all.
func isPrefixFieldEquality(child match.Expression, idx catalog.IndexEntry) bool {
	if child.Kind() != match.EQ {
		return false
	}
	for _, field := range textIndexPrefixFields(idx.KeyPattern) {
		if child.Path() == field {
			return true
		}
	}
	return false
}

// textIndexPrefixFields returns the field names of the key-pattern
// elements preceding the first text key. Every TEXT-type index has
// exactly one run of text keys somewhere in its pattern; failing to
// find one is a catalog invariant violation.
func textIndexPrefixFields(keyPattern []catalog.KeyElem) []string {
	var prefix []string
	for _, k := range keyPattern {
		if k.Type == catalog.KeyText {
			return prefix
		}
		prefix = append(prefix, k.Field)
	}
	invariant(false, "text index key pattern has no text key: %v", keyPattern)
	return nil
}

func hasDirectTextChildTagged(siblings []match.Expression, idx int) bool {
	for _, sib := range siblings {
		if sib.Kind() == match.TEXT && taggedWithIndex(sib, idx) {
			return true
		}
	}
	return false
}

// prefixFieldsSatisfiedByEquality reports whether every prefix field of
// the text index has a direct-sibling equality predicate in this AND.
func prefixFieldsSatisfiedByEquality(siblings []match.Expression, idx catalog.IndexEntry) bool {
	for _, field := range textIndexPrefixFields(idx.KeyPattern) {
		found := false
		for _, sib := range siblings {
			if sib.Kind() == match.EQ && sib.Path() == field {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func taggedWithIndex(node match.Expression, idx int) bool {
	tag, ok := node.Tag().(*RelevantTag)
	if !ok {
		return false
	}
	return containsInt(tag.First, idx) || containsInt(tag.NotFirst, idx)
}

// removeIndexRelevantTagIfTagged drops idx from node's tag, if it has
// one. A NOT's child carries a clone of the NOT's own tag (see
// cloneTagOnto in rate.go), so the removal cascades down to keep the
// clone consistent with its parent.
func removeIndexRelevantTagIfTagged(node match.Expression, idx int) {
	if tag, ok := node.Tag().(*RelevantTag); ok {
		tag.First = removeInt(tag.First, idx)
		tag.NotFirst = removeInt(tag.NotFirst, idx)
	}
	if node.Kind() == match.NOT {
		for _, child := range node.Children() {
			removeIndexRelevantTagIfTagged(child, idx)
		}
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func removeInt(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
