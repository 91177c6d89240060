package serializer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/spicery/tsast/pkg/common"
	"github.com/spicery/tsast/pkg/syntax"
)

// DetailOptions controls the human-readable dump.
type DetailOptions struct {
	TrimText int // display width limit for text snippets, 0 for none
}

type detailFrame struct {
	node  syntax.Node
	depth int
	exit  bool
}

// PrintDetailed writes an indented description of every node: kind name and
// code, start, end, width, whitespace-trimmed text and nested children. It is
// meant for reading, so unlike Serialize it trims text and has no schema.
func PrintDetailed(output io.Writer, tree *syntax.Tree, opts DetailOptions) error {
	w := bufio.NewWriter(output)
	var stack common.Stack[detailFrame]
	stack.Push(detailFrame{node: tree.Root})
	for stack.Len() > 0 {
		f, _ := stack.Pop()
		indent := strings.Repeat("  ", f.depth)
		if f.exit {
			w.WriteString(indent + "  ]\n")
			w.WriteString(indent + "}\n")
			continue
		}

		kind := f.node.Kind()
		span := f.node.Span()
		name := strconv.Itoa(int(kind))
		if tree.Kinds != nil {
			name = tree.Kinds.KindName(kind)
		}
		w.WriteString(indent + name + " {\n")
		w.WriteString(indent + "  kind: " + strconv.Itoa(int(kind)) + "\n")
		w.WriteString(indent + "  start: " + strconv.FormatUint(uint64(span.Start), 10) + "\n")
		w.WriteString(indent + "  end: " + strconv.FormatUint(uint64(span.End), 10) + "\n")
		if span.Valid() {
			w.WriteString(indent + "  width: " + strconv.FormatUint(uint64(span.Width()), 10) + "\n")
		}

		text, err := tree.File.Text(span)
		if err != nil {
			return &StructuralError{Kind: kind, KindName: name, Span: span, Depth: f.depth, Err: err}
		}
		if text = strings.TrimSpace(text); text != "" {
			w.WriteString(indent + "  text: \"" + common.TrimValue(text, opts.TrimText) + "\"\n")
		}

		kids := f.node.Children()
		if len(kids) == 0 {
			w.WriteString(indent + "}\n")
			continue
		}
		w.WriteString(indent + "  children: [\n")
		stack.Push(detailFrame{node: f.node, depth: f.depth, exit: true})
		for i := len(kids) - 1; i >= 0; i-- {
			stack.Push(detailFrame{node: kids[i], depth: f.depth + 2})
		}
	}
	return w.Flush()
}
