// Package match defines the predicate tree the index-selection core
// reads: a small, closed set of node kinds (see Kind) connected by
// parent/child edges, each optionally anchored to a field path, plus a
// mutable Tag slot the core's Relevance Tagger writes its findings into.
//
// There is deliberately one concrete node type rather than a type per
// kind: the tree is a flat discriminated union, not a class hierarchy,
// matching the flat operator vocabulary the rest of this module's
// ancestry used for match expressions.
package match

import (
	"github.com/eddiewu/docixselect/pkg/document"
	"github.com/eddiewu/docixselect/pkg/geo"
)

// Expression is a node in the predicate tree.
type Expression interface {
	Kind() Kind
	Path() string
	Children() []Expression
	Tag() interface{}
	SetTag(interface{})
}

// Node is the sole implementation of Expression.
type Node struct {
	kind     Kind
	path     string
	children []*Node
	tag      interface{}

	// geometry is set on GEO and GEONEAR nodes; see Geometry/NearSphere.
	geometry   *geo.GeometryContainer
	nearSphere bool

	// value/values carry the EQ/IN literal(s), needed by the sparse-index
	// null-equality rule (spec.md 4.4.1): a sparse index can't be used to
	// find documents missing a field, so an EQ or IN naming a literal null
	// is incompatible with a sparse index regardless of position.
	value  *document.Value
	values []document.Value
}

// Leaf builds a bounds-generating leaf node (LT, GT, EXISTS, REGEX, ...)
// over the given field path. EQ and IN carry a literal and should be
// built with Equality/In instead.
func Leaf(kind Kind, path string) *Node {
	if kind == EQ || kind == IN {
		panic("match: use Equality or In to build an EQ/IN node")
	}
	return &Node{kind: kind, path: path}
}

// Equality builds an EQ leaf over path for the given literal.
func Equality(path string, value document.Value) *Node {
	return &Node{kind: EQ, path: path, value: &value}
}

// In builds an IN leaf over path for the given set of literals.
func In(path string, values []document.Value) *Node {
	return &Node{kind: IN, path: path, values: values}
}

// Geo builds a GEO leaf over path, carrying the parsed geometry the
// compatibility oracle's flat/spherical rules inspect.
func Geo(path string, geometry geo.GeometryContainer) *Node {
	return &Node{kind: GEO, path: path, geometry: &geometry}
}

// GeoNear builds a GEONEAR leaf over path. nearSphere distinguishes
// $nearSphere (spherical distance, eligible for 2dsphere only under the
// oracle's near rules) from legacy $near (flat distance, eligible for 2d
// only).
func GeoNear(path string, geometry geo.GeometryContainer, nearSphere bool) *Node {
	return &Node{kind: GEONEAR, path: path, geometry: &geometry, nearSphere: nearSphere}
}

// ElemMatch builds an array-indexable-through-children node
// (ELEM_MATCH_OBJECT or ELEM_MATCH_VALUE) over the array field path.
func ElemMatch(kind Kind, path string, children ...*Node) *Node {
	if kind != ELEM_MATCH_OBJECT && kind != ELEM_MATCH_VALUE {
		panic("match: ElemMatch requires ELEM_MATCH_OBJECT or ELEM_MATCH_VALUE")
	}
	return &Node{kind: kind, path: path, children: children}
}

// Logical builds an AND/OR/NOT/NOR composite. NOT requires exactly one
// child; AND/OR/NOR take zero or more.
func Logical(kind Kind, children ...*Node) *Node {
	if !IsLogical(kind) {
		panic("match: Logical requires AND, OR, NOT, or NOR")
	}
	if kind == NOT && len(children) != 1 {
		panic("match: NOT requires exactly one child")
	}
	return &Node{kind: kind, children: children}
}

// NotIndexable builds a node no index can ever serve (WHERE, EXPR).
func NotIndexable(kind Kind) *Node {
	if !IsNotIndexable(kind) {
		panic("match: NotIndexable requires WHERE or EXPR")
	}
	return &Node{kind: kind}
}

func (n *Node) Kind() Kind { return n.kind }

// Path returns the node's field path. A NOT node has no path of its own;
// it takes on its single child's path, since a NOT's indexability rules
// are evaluated at the path the negated predicate names.
func (n *Node) Path() string {
	if n.kind == NOT {
		return n.children[0].Path()
	}
	return n.path
}

func (n *Node) Children() []Expression {
	out := make([]Expression, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Child returns the node's single child (valid for NOT) as a *Node,
// preserving the concrete type for callers that need to inspect its
// Kind without a further type assertion.
func (n *Node) Child() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *Node) Tag() interface{}       { return n.tag }
func (n *Node) SetTag(tag interface{}) { n.tag = tag }

// Geometry returns the node's parsed geometry and whether it carries one
// (set on GEO and GEONEAR nodes only).
func (n *Node) Geometry() (geo.GeometryContainer, bool) {
	if n.geometry == nil {
		return geo.GeometryContainer{}, false
	}
	return *n.geometry, true
}

// NearSphere reports whether a GEONEAR node is $nearSphere (true) or
// legacy $near (false). Meaningless on any other kind.
func (n *Node) NearSphere() bool { return n.nearSphere }

// Value returns an EQ node's literal, and whether it is one.
func (n *Node) Value() (document.Value, bool) {
	if n.value == nil {
		return document.Value{}, false
	}
	return *n.value, true
}

// Values returns an IN node's literal set.
func (n *Node) Values() []document.Value { return n.values }

// HasNullLiteral reports whether this EQ or IN node names a literal null,
// the condition the sparse-index equality rule rejects.
func (n *Node) HasNullLiteral() bool {
	switch n.kind {
	case EQ:
		v, ok := n.Value()
		return ok && v.Type == document.TypeNull
	case IN:
		for _, v := range n.values {
			if v.Type == document.TypeNull {
				return true
			}
		}
		return false
	default:
		return false
	}
}
