// Package syntax describes the parse trees the serializer consumes. Any tree
// source whose nodes report a kind, a byte span and ordered children can be
// dumped; nothing here depends on a particular grammar.
package syntax

import (
	"fmt"

	"github.com/spicery/tsast/pkg/source"
)

// Kind is a grammar discriminant. Codes are stable for a given grammar version.
type Kind uint16

// Node is a read-only concrete syntax tree node. A node is a leaf iff
// Children returns an empty slice.
type Node interface {
	Kind() Kind
	Span() source.Span
	Children() []Node
}

// KindTable maps kind codes to human-readable names.
type KindTable interface {
	KindName(k Kind) string
}

// Tree is a fully materialised parse of one file.
type Tree struct {
	Root     Node
	Kinds    KindTable
	File     *source.File
	Language string
}

// IsLeaf reports whether n has no children.
func IsLeaf(n Node) bool {
	return len(n.Children()) == 0
}

// Basic is a plain, immutable-by-convention Node. Tree sources that want to
// release their native resources early copy into Basic trees.
type Basic struct {
	K    Kind
	S    source.Span
	Kids []Node
}

func (b *Basic) Kind() Kind        { return b.K }
func (b *Basic) Span() source.Span { return b.S }
func (b *Basic) Children() []Node  { return b.Kids }

func (b *Basic) String() string {
	return fmt.Sprintf("Basic{kind: %d, span: %s, children: %d}", b.K, b.S, len(b.Kids))
}

// Leaf builds a childless Basic node.
func Leaf(k Kind, start, end uint32) *Basic {
	return &Basic{K: k, S: source.Span{Start: start, End: end}}
}

// Branch builds a Basic node spanning its first to last child.
func Branch(k Kind, kids ...Node) *Basic {
	b := &Basic{K: k, Kids: kids}
	if len(kids) > 0 {
		b.S = source.Span{Start: kids[0].Span().Start, End: kids[len(kids)-1].Span().End}
	}
	return b
}

// MapKinds is a KindTable backed by a map; unknown codes render as "kind(N)".
type MapKinds map[Kind]string

func (m MapKinds) KindName(k Kind) string {
	if name, ok := m[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", k)
}
