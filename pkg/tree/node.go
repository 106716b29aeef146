// Package tree wraps tree-sitter parse trees in immutable Node views
// with byte-accurate positions, field lookup, and predicate traversal.
package tree

import (
	"errors"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/qckfx/tree-hugger-js/pkg/safeconv"
)

// ErrNilNode indicates an attempt to wrap an absent or type-less
// tree-sitter node. Some native bindings hand out null nodes after
// concurrent misuse; wrapping one is always a bug upstream.
var ErrNilNode = errors.New("cannot wrap null tree-sitter node")

// fieldName is the grammar field consulted by Name.
const fieldName = "name"

// Position is a 1-based line/column location with its byte offset.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// Node is an immutable view over one tree-sitter node. Wrappers for a
// whole tree are built once at parse time; the same underlying node is
// always represented by the same wrapper. All navigation is read-only
// and safe for concurrent use.
type Node struct {
	tree     *Tree
	raw      sitter.Node
	parent   *Node
	children []*Node
}

// buildNode wraps raw and, recursively, its full child list (named and
// anonymous tokens alike; keyword tokens and comments are matchable).
func buildNode(t *Tree, raw sitter.Node, parent *Node) (*Node, error) {
	if raw.IsNull() || raw.Type() == "" {
		return nil, ErrNilNode
	}

	wrapped := &Node{tree: t, raw: raw, parent: parent}

	count := raw.ChildCount()
	if count > 0 {
		wrapped.children = make([]*Node, 0, count)
	}

	for idx := range count {
		child, err := buildNode(t, raw.Child(idx), wrapped)
		if err != nil {
			return nil, err
		}

		wrapped.children = append(wrapped.children, child)
	}

	return wrapped, nil
}

// Type returns the grammar node type tag.
func (n *Node) Type() string { return n.raw.Type() }

// IsNamed reports whether the node is a named grammar node (as opposed
// to an anonymous token such as a keyword or punctuation).
func (n *Node) IsNamed() bool { return n.raw.IsNamed() }

// HasError reports whether this subtree contains a recovered parse error.
func (n *Node) HasError() bool { return n.raw.HasError() }

// StartByte returns the inclusive start offset into the source.
func (n *Node) StartByte() int { return safeconv.MustUintToInt(n.raw.StartByte()) }

// EndByte returns the exclusive end offset into the source.
func (n *Node) EndByte() int { return safeconv.MustUintToInt(n.raw.EndByte()) }

// StartPos returns the 1-based start position.
func (n *Node) StartPos() Position {
	point := n.raw.StartPoint()

	return Position{
		Line:   safeconv.MustUintToInt(point.Row + 1),
		Column: safeconv.MustUintToInt(point.Column + 1),
		Offset: n.StartByte(),
	}
}

// EndPos returns the 1-based end position.
func (n *Node) EndPos() Position {
	point := n.raw.EndPoint()

	return Position{
		Line:   safeconv.MustUintToInt(point.Row + 1),
		Column: safeconv.MustUintToInt(point.Column + 1),
		Offset: n.EndByte(),
	}
}

// Line returns the 1-based start line.
func (n *Node) Line() int { return n.StartPos().Line }

// Column returns the 1-based start column.
func (n *Node) Column() int { return n.StartPos().Column }

// Text returns the source text covered by the node as a fresh string.
func (n *Node) Text() string {
	start, end := n.StartByte(), n.EndByte()
	src := n.tree.source

	if end > len(src) || start > end {
		return ""
	}

	return string(src[start:end])
}

// UnsafeText returns a zero-copy string view of the node's text. The
// view shares the source backing array and must NOT be stored; it is
// for comparison, filtering, and predicate evaluation only. Use Text
// for values that outlive the current call.
func (n *Node) UnsafeText() string {
	start, end := n.StartByte(), n.EndByte()
	src := n.tree.source

	if end > len(src) || start >= end {
		return ""
	}

	return unsafe.String(&src[start], end-start)
}

// Parent returns the enclosing node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns every child node in source order, anonymous tokens
// included. The returned slice is shared; callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// NamedChildren returns the named children in source order.
func (n *Node) NamedChildren() []*Node {
	named := make([]*Node, 0, len(n.children))

	for _, child := range n.children {
		if child.IsNamed() {
			named = append(named, child)
		}
	}

	return named
}

// ChildByField returns the child occupying the grammar field, or nil.
func (n *Node) ChildByField(field string) *Node {
	fieldNode := n.raw.ChildByFieldName(field)
	if fieldNode.IsNull() {
		return nil
	}

	// Map the raw result back to the memoized wrapper by position.
	target := safeconv.MustUintToInt(fieldNode.StartByte())
	targetType := fieldNode.Type()

	for _, child := range n.children {
		if child.StartByte() == target && child.Type() == targetType {
			return child
		}
	}

	return nil
}

// Name returns the node's derived name: the text of its "name" field,
// or, for nodes like jsx_attribute whose grammar exposes no such field,
// the text of a leading property_identifier child. Empty when neither
// applies.
func (n *Node) Name() string {
	if fieldChild := n.ChildByField(fieldName); fieldChild != nil {
		return fieldChild.Text()
	}

	if len(n.children) > 0 && n.children[0].Type() == "property_identifier" {
		return n.children[0].Text()
	}

	return ""
}

// Tree returns the owning parse tree.
func (n *Node) Tree() *Tree { return n.tree }

// Source returns the full original source buffer. Callers must not
// modify it.
func (n *Node) Source() []byte { return n.tree.source }
