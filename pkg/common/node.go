package common

import (
	"github.com/spicery/tsast/pkg/source"
	"github.com/spicery/tsast/pkg/syntax"
)

// Node is one serialized syntax node. Exactly one of Content and Children is
// set: Content for leaves, Children for everything else.
type Node struct {
	Kind     syntax.Kind     `json:"kind" yaml:"kind" msgpack:"kind"`
	KindName string          `json:"kindName,omitempty" yaml:"kindName,omitempty" msgpack:"kindName,omitempty"`
	Content  *string         `json:"content,omitempty" yaml:"content,omitempty" msgpack:"content,omitempty"`
	Pos      *source.LineCol `json:"pos,omitempty" yaml:"pos,omitempty" msgpack:"pos,omitempty"`
	Children []*Node         `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

// NewLeaf returns a leaf carrying content verbatim.
func NewLeaf(kind syntax.Kind, content string) *Node {
	return &Node{Kind: kind, Content: &content}
}

func (n *Node) IsLeaf() bool {
	return n.Content != nil
}

// Text returns the leaf content, or "" for inner nodes.
func (n *Node) Text() string {
	if n.Content == nil {
		return ""
	}
	return *n.Content
}

// Label is the kind name when known, otherwise the numeric code.
func (n *Node) Label() string {
	if n.KindName != "" {
		return n.KindName
	}
	return kindCode(n.Kind)
}

// Walk visits n and its descendants in pre-order with their depth. Returning
// false from fn skips that node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type frame struct {
		node  *Node
		depth int
	}
	var stack Stack[frame]
	stack.Push(frame{node: n})
	for stack.Len() > 0 {
		f, _ := stack.Pop()
		if !fn(f.node, f.depth) {
			continue
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack.Push(frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
}

// Leaves returns the leaf contents in document order. For a lossless dump
// their concatenation is the original source text.
func (n *Node) Leaves() []string {
	var out []string
	n.Walk(func(node *Node, _ int) bool {
		if node.IsLeaf() {
			out = append(out, *node.Content)
		}
		return true
	})
	return out
}
