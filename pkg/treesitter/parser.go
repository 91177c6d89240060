package treesitter

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/spicery/tsast/pkg/common"
	"github.com/spicery/tsast/pkg/source"
	"github.com/spicery/tsast/pkg/syntax"
)

// Parser produces syntax.Trees. With Trivia set, every byte of the file ends
// up in exactly one leaf: bytes tree-sitter leaves between or around child
// nodes become leaves of the trivia kind, and the root spans the whole file.
type Parser struct {
	Language *Language
	Trivia   bool
	Log      *slog.Logger
}

func NewParser(lang *Language) *Parser {
	return &Parser{
		Language: lang,
		Trivia:   true,
		Log:      slog.Default(),
	}
}

// Parse parses file and copies the result into a syntax.Basic tree, so the
// native tree is released before Parse returns. Syntax errors do not fail the
// parse; they show up as ERROR or zero-width MISSING nodes.
func (p *Parser) Parse(ctx context.Context, file *source.File) (*syntax.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.Language.grammar)

	tree, err := parser.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: parse failed: %w", file.Path, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() && p.Log != nil {
		p.Log.Warn("source has syntax errors", "path", file.Path, "language", p.Language.Name)
	}

	root := p.materialise(rootNode, file.Len())
	return &syntax.Tree{
		Root:     root,
		Kinds:    p.Language,
		File:     file,
		Language: p.Language.Name,
	}, nil
}

type copyFrame struct {
	ts     *sitter.Node
	out    *syntax.Basic
	isRoot bool
}

func (p *Parser) materialise(rootNode *sitter.Node, size uint32) *syntax.Basic {
	root := &syntax.Basic{}
	var stack common.Stack[copyFrame]
	stack.Push(copyFrame{ts: rootNode, out: root, isRoot: true})
	for stack.Len() > 0 {
		f, _ := stack.Pop()
		f.out.K = syntax.Kind(f.ts.Symbol())
		f.out.S = source.Span{Start: f.ts.StartByte(), End: f.ts.EndByte()}
		if f.isRoot && p.Trivia {
			f.out.S = source.Span{Start: 0, End: size}
		}

		count := int(f.ts.ChildCount())
		fillGaps := p.Trivia && (count > 0 || f.isRoot)
		cursor := f.out.S.Start
		kids := make([]syntax.Node, 0, count)
		pending := make([]copyFrame, 0, count)
		for i := 0; i < count; i++ {
			child := f.ts.Child(i)
			if child == nil {
				continue
			}
			if fillGaps && child.StartByte() > cursor {
				kids = append(kids, syntax.Leaf(p.Language.trivia, cursor, child.StartByte()))
			}
			out := &syntax.Basic{}
			kids = append(kids, out)
			pending = append(pending, copyFrame{ts: child, out: out})
			cursor = max(cursor, child.EndByte())
		}
		if fillGaps && cursor < f.out.S.End {
			kids = append(kids, syntax.Leaf(p.Language.trivia, cursor, f.out.S.End))
		}
		if len(kids) > 0 {
			f.out.Kids = kids
		}
		for i := len(pending) - 1; i >= 0; i-- {
			stack.Push(pending[i])
		}
	}
	return root
}
