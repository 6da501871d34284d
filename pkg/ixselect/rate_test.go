package ixselect

import (
	"reflect"
	"testing"

	"github.com/eddiewu/docixselect/pkg/catalog"
	"github.com/eddiewu/docixselect/pkg/document"
	"github.com/eddiewu/docixselect/pkg/match"
)

func tagOf(t *testing.T, node match.Expression) *RelevantTag {
	t.Helper()
	tag, ok := node.Tag().(*RelevantTag)
	if !ok {
		t.Fatalf("node %v has no RelevantTag", node.Kind())
	}
	return tag
}

func TestRateIndicesLeadingAndTrailingKey(t *testing.T) {
	indices := []catalog.IndexEntry{
		{Type: catalog.BTREE, KeyPattern: []catalog.KeyElem{btreeKey("a")}},
		{Type: catalog.BTREE, KeyPattern: []catalog.KeyElem{btreeKey("b"), btreeKey("a")}},
	}
	node := match.Leaf(match.GT, "a")
	RateIndices(node, "", indices)

	tag := tagOf(t, node)
	if tag.Path != "a" {
		t.Errorf("tag.Path = %q, want %q", tag.Path, "a")
	}
	if !reflect.DeepEqual(tag.First, []int{0}) {
		t.Errorf("tag.First = %v, want [0]", tag.First)
	}
	if !reflect.DeepEqual(tag.NotFirst, []int{1}) {
		t.Errorf("tag.NotFirst = %v, want [1]", tag.NotFirst)
	}
}

func TestRateIndicesTagsNotOverChildNotLeaf(t *testing.T) {
	indices := []catalog.IndexEntry{
		{Type: catalog.BTREE, KeyPattern: []catalog.KeyElem{btreeKey("a")}},
	}
	child := match.Equality("a", *document.NewValue(int64(1)))
	ne := match.Logical(match.NOT, child)
	RateIndices(ne, "", indices)

	tag := tagOf(t, ne)
	if tag.Path != "a" {
		t.Errorf("tag.Path = %q, want %q", tag.Path, "a")
	}
	if !reflect.DeepEqual(tag.First, []int{0}) {
		t.Errorf("tag.First = %v, want [0]", tag.First)
	}

	childTag := tagOf(t, child)
	if !reflect.DeepEqual(childTag.First, tag.First) || !reflect.DeepEqual(childTag.NotFirst, tag.NotFirst) {
		t.Errorf("child tag = %+v, want a clone of the NOT's tag %+v", childTag, tag)
	}
	childTag.First = append(childTag.First, 99)
	if reflect.DeepEqual(childTag.First, tag.First) {
		t.Error("child's tag should be an independent clone, not the same slice as the NOT's tag")
	}
}

func TestRateIndicesClonesTagThroughMultikeyVeto(t *testing.T) {
	indices := []catalog.IndexEntry{
		{Type: catalog.BTREE, Multikey: true, KeyPattern: []catalog.KeyElem{btreeKey("a")}},
	}
	child := match.Equality("a", *document.NewValue(int64(3)))
	ne := match.Logical(match.NOT, child)
	RateIndices(ne, "", indices)

	tag := tagOf(t, ne)
	if len(tag.First) != 0 || len(tag.NotFirst) != 0 {
		t.Errorf("NOT tag = %+v, want empty (multikey veto)", tag)
	}

	childTag := tagOf(t, child)
	if len(childTag.First) != 0 || len(childTag.NotFirst) != 0 {
		t.Errorf("child tag = %+v, want empty - it must not be independently recomputed as a bare EQ", childTag)
	}
}

func TestRateIndicesStopsAtNor(t *testing.T) {
	indices := []catalog.IndexEntry{
		{Type: catalog.BTREE, KeyPattern: []catalog.KeyElem{btreeKey("a")}},
	}
	leaf := match.Equality("a", *document.NewValue(int64(1)))
	nor := match.Logical(match.NOR, leaf)
	RateIndices(nor, "", indices)

	if _, ok := nor.Tag().(*RelevantTag); ok {
		t.Error("expected the NOR node itself to receive no tag")
	}
	if _, ok := leaf.Tag().(*RelevantTag); ok {
		t.Error("expected a NOR's child to receive no tag")
	}
}

func TestRateIndicesThroughElemMatchUsesPrefixedPath(t *testing.T) {
	indices := []catalog.IndexEntry{
		{Type: catalog.BTREE, KeyPattern: []catalog.KeyElem{btreeKey("arr.x")}},
	}
	child := match.Leaf(match.GT, "x")
	tree := match.ElemMatch(match.ELEM_MATCH_OBJECT, "arr", child)
	RateIndices(tree, "", indices)

	tag := tagOf(t, child)
	if tag.Path != "arr.x" {
		t.Errorf("tag.Path = %q, want %q", tag.Path, "arr.x")
	}
	if !reflect.DeepEqual(tag.First, []int{0}) {
		t.Errorf("tag.First = %v, want [0]", tag.First)
	}
}

func TestRateIndicesAndLeavesUntagged(t *testing.T) {
	indices := []catalog.IndexEntry{
		{Type: catalog.BTREE, KeyPattern: []catalog.KeyElem{btreeKey("a")}},
	}
	and := match.Logical(match.AND, match.Leaf(match.GT, "a"))
	RateIndices(and, "", indices)

	if _, ok := and.Tag().(*RelevantTag); ok {
		t.Error("expected the AND node itself to receive no tag")
	}
}

func TestRateIndicesRepeatedFieldInKeyPattern(t *testing.T) {
	// Same field appears at position 0 and position 1 of one index's key
	// pattern; both positions are recorded, matching the original's
	// observed (unfixed) ambiguity.
	indices := []catalog.IndexEntry{
		{Type: catalog.BTREE, KeyPattern: []catalog.KeyElem{btreeKey("a"), btreeKey("a")}},
	}
	node := match.Leaf(match.GT, "a")
	RateIndices(node, "", indices)

	tag := tagOf(t, node)
	if !reflect.DeepEqual(tag.First, []int{0}) {
		t.Errorf("tag.First = %v, want [0]", tag.First)
	}
	if !reflect.DeepEqual(tag.NotFirst, []int{0}) {
		t.Errorf("tag.NotFirst = %v, want [0]", tag.NotFirst)
	}
}
