package common

import (
	"fmt"
	"io"
	"strconv"

	asciitree "github.com/thediveo/go-asciitree"
)

type AsciiNode struct {
	Label    string      `asciitree:"label"`
	Props    []string    `asciitree:"properties"`
	Children []AsciiNode `asciitree:"children"`
}

// convertToTree converts a serialized Node into the shape go-asciitree renders.
// It recurses, which is fine for a display format.
func convertToTree(n *Node, options *PrintOptions) AsciiNode {
	label := n.Label()
	if n.KindName != "" {
		label = fmt.Sprintf("%s (%d)", n.KindName, n.Kind)
	}

	var props []string
	if n.Pos != nil {
		props = append(props, fmt.Sprintf("pos: %s", n.Pos))
	}
	if n.Content != nil {
		trimmedValue := TrimValue(*n.Content, trimWidth(options))
		props = append(props, fmt.Sprintf("content: %s", strconv.Quote(trimmedValue)))
	}

	children := make([]AsciiNode, 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, convertToTree(child, options))
	}
	return AsciiNode{
		Label:    label,
		Props:    props,
		Children: children,
	}
}

func PrintASTAsciiTree(root *Node, output io.Writer, options *PrintOptions) error {
	_, err := fmt.Fprintln(output, asciitree.RenderFancy(convertToTree(root, options)))
	return err
}

func trimWidth(options *PrintOptions) int {
	if options == nil {
		return 0
	}
	return options.TrimTokenOnOutput
}
