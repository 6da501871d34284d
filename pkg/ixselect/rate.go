package ixselect

import (
	"github.com/eddiewu/docixselect/pkg/catalog"
	"github.com/eddiewu/docixselect/pkg/match"
)

// RateIndices is the Relevance Tagger. It walks tree and, for every node
// that can use an index on its own field (including a NOT wrapping a
// negatable leaf), attaches a *RelevantTag recording which of indices
// could serve it as a leading key or as a later key.
//
// A NOT's tag is computed once, at the NOT node, and then cloned down
// onto its child (and further, if the child is itself a NOT) rather
// than independently recomputed: the child is only ever reachable
// through the negation, so it must carry the same verdict, not the
// verdict it would get evaluated bare.
//
// A NOR stops the walk outright: nothing beneath a NOR can ever be
// assigned an index, so none of its children are visited or tagged.
//
// If the same field name appears more than once in one index's key
// pattern, that index's position can be appended to First and/or
// NotFirst more than once for the same node. This is left exactly as
// observed rather than deduplicated.
func RateIndices(tree match.Expression, prefix string, indices []catalog.IndexEntry) {
	if tree.Kind() == match.NOR {
		return
	}

	childPrefix := prefix

	if match.IsBoundsGenerating(tree) {
		path := prefix + tree.Path()
		tag := &RelevantTag{Path: path}
		for i, idx := range indices {
			for pos, key := range idx.KeyPattern {
				if key.Field != path {
					continue
				}
				if !Compatible(key, idx, tree) {
					continue
				}
				if pos == 0 {
					tag.First = append(tag.First, i)
				} else {
					tag.NotFirst = append(tag.NotFirst, i)
				}
			}
		}
		tree.SetTag(tag)

		if tree.Kind() == match.NOT {
			for _, child := range tree.Children() {
				cloneTagOnto(child, tag)
			}
		}
		return
	}

	if match.IsArrayIndexableThroughChildren(tree.Kind()) {
		childPrefix = prefix + tree.Path() + "."
	}

	for _, child := range tree.Children() {
		RateIndices(child, childPrefix, indices)
	}
}

// cloneTagOnto attaches an independent copy of tag to node. If node is
// itself a NOT (double negation), the clone continues down to its
// child as well, so every node along the negation chain ends up with
// an identical (but independently mutable) tag.
func cloneTagOnto(node match.Expression, tag *RelevantTag) {
	clone := &RelevantTag{
		Path:     tag.Path,
		First:    append([]int(nil), tag.First...),
		NotFirst: append([]int(nil), tag.NotFirst...),
	}
	node.SetTag(clone)

	if node.Kind() == match.NOT {
		for _, child := range node.Children() {
			cloneTagOnto(child, clone)
		}
	}
}
