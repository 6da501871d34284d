package ixselect

import "github.com/eddiewu/docixselect/pkg/match"

// GetFields walks tree and records, into out, the full dotted path of
// every field the tree constrains in some way. prefix is prepended to
// every path recorded during this call; pass "" at the top level.
//
// A node that can use an index on its own field contributes prefix plus
// its own path. A node whose children are indexed through it (an
// elemMatch) contributes nothing itself, but extends prefix with its
// own path plus "." for its children. Every other node - logical
// composites and not-indexable leaves alike - passes prefix through
// unchanged and recurses.
//
// A NOR stops the walk outright: none of its children can ever be
// assigned an index, regardless of what they name, so nothing beneath
// a NOR contributes a path.
func GetFields(tree match.Expression, prefix string, out map[string]struct{}) {
	if tree.Kind() == match.NOR {
		return
	}

	kind := tree.Kind()
	childPrefix := prefix

	switch {
	case match.IsBoundsGeneratingLeaf(kind):
		out[prefix+tree.Path()] = struct{}{}
	case match.IsArrayIndexableThroughChildren(kind):
		childPrefix = prefix + tree.Path() + "."
	}

	for _, child := range tree.Children() {
		GetFields(child, childPrefix, out)
	}
}
