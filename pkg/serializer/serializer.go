// Package serializer turns a concrete syntax tree into the position-annotated
// document written by tsast. The walk is pre-order and uses an explicit
// stack, so nesting depth is bounded only by memory unless Config.MaxDepth
// says otherwise.
package serializer

import (
	"errors"
	"fmt"

	"github.com/spicery/tsast/pkg/common"
	"github.com/spicery/tsast/pkg/source"
	"github.com/spicery/tsast/pkg/syntax"
)

// Config selects the optional parts of each serialized node.
type Config struct {
	IncludePositions bool
	IncludeKindName  bool
	Columns          source.ColumnUnit
	MaxDepth         int // 0 means unlimited
}

// DefaultConfig includes positions (UTF-16 columns) and omits kind names.
func DefaultConfig() Config {
	return Config{
		IncludePositions: true,
		Columns:          source.ColumnUTF16,
	}
}

// Serialize converts tree.Root. See SerializeNode.
func Serialize(tree *syntax.Tree, cfg Config) (*common.Node, error) {
	if tree == nil || tree.Root == nil {
		return nil, errors.New("serialize: nil tree")
	}
	return SerializeNode(tree.Root, tree.File, tree.Kinds, cfg)
}

type frame struct {
	src    syntax.Node
	dst    *common.Node
	parent source.Span
	prev   uint32 // end of the previous sibling
	depth  int
}

// SerializeNode converts root and its descendants. Leaves get their exact
// source text as content; inner nodes get their children in source order.
// A span that is inverted, runs past the end of file, escapes its parent or
// overlaps its previous sibling aborts the whole conversion with a
// *StructuralError, so no partially correct document is ever returned.
func SerializeNode(root syntax.Node, file *source.File, kinds syntax.KindTable, cfg Config) (*common.Node, error) {
	if root == nil {
		return nil, errors.New("serialize: nil root")
	}
	if file == nil {
		return nil, errors.New("serialize: nil source file")
	}

	s := &walker{file: file, kinds: kinds, cfg: cfg}
	out := &common.Node{}
	var stack common.Stack[frame]
	stack.Push(frame{
		src:    root,
		dst:    out,
		parent: source.Span{Start: 0, End: file.Len()},
	})
	for stack.Len() > 0 {
		f, _ := stack.Pop()
		kids, err := s.fill(f)
		if err != nil {
			return nil, err
		}
		if len(kids) == 0 {
			continue
		}
		span := f.src.Span()
		f.dst.Children = make([]*common.Node, len(kids))
		for i := range kids {
			f.dst.Children[i] = &common.Node{}
		}
		// The previous-sibling bound is checked against already visited
		// siblings, so push in reverse and carry the bound forward.
		prevEnds := make([]uint32, len(kids))
		prevEnds[0] = span.Start
		for i := 1; i < len(kids); i++ {
			prevEnds[i] = kids[i-1].Span().End
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stack.Push(frame{
				src:    kids[i],
				dst:    f.dst.Children[i],
				parent: span,
				prev:   prevEnds[i],
				depth:  f.depth + 1,
			})
		}
	}
	return out, nil
}

type walker struct {
	file  *source.File
	kinds syntax.KindTable
	cfg   Config
}

// fill populates f.dst from f.src and returns the children still to visit.
func (s *walker) fill(f frame) ([]syntax.Node, error) {
	kind := f.src.Kind()
	span := f.src.Span()
	f.dst.Kind = kind
	if s.cfg.IncludeKindName && s.kinds != nil {
		f.dst.KindName = s.kinds.KindName(kind)
	}

	if s.cfg.MaxDepth > 0 && f.depth > s.cfg.MaxDepth {
		return nil, s.structural(kind, span, f.depth, fmt.Errorf("%w (%d)", ErrTooDeep, s.cfg.MaxDepth))
	}
	if err := checkSpan(span, f.parent, f.prev, s.file.Len()); err != nil {
		return nil, s.structural(kind, span, f.depth, err)
	}

	if s.cfg.IncludePositions {
		pos, err := s.file.Position(span.Start, s.cfg.Columns)
		if err != nil {
			return nil, s.structural(kind, span, f.depth, err)
		}
		f.dst.Pos = &pos
	}

	kids := f.src.Children()
	if len(kids) == 0 {
		text, err := s.file.Text(span)
		if err != nil {
			return nil, s.structural(kind, span, f.depth, err)
		}
		f.dst.Content = &text
		return nil, nil
	}
	return kids, nil
}

func checkSpan(span, parent source.Span, prev, size uint32) error {
	switch {
	case !span.Valid():
		return fmt.Errorf("%w: start %d is after end %d", ErrMalformedSpan, span.Start, span.End)
	case span.End > size:
		return fmt.Errorf("%w: end %d is past end of file (%d bytes)", ErrMalformedSpan, span.End, size)
	case !parent.Contains(span):
		return fmt.Errorf("%w: not inside parent span %s", ErrMalformedSpan, parent)
	case span.Start < prev:
		return fmt.Errorf("%w: overlaps previous sibling ending at %d", ErrMalformedSpan, prev)
	}
	return nil
}

func (s *walker) structural(kind syntax.Kind, span source.Span, depth int, err error) error {
	e := &StructuralError{Kind: kind, Span: span, Depth: depth, Err: err}
	if s.kinds != nil {
		e.KindName = s.kinds.KindName(kind)
	}
	return e
}
