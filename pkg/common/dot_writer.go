package common

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func PrintASTDOT(root *Node, output io.Writer, options *PrintOptions) error {
	w := bufio.NewWriter(output)

	// Initialize the DOT graph
	fmt.Fprintln(w, `digraph G {`)
	fmt.Fprintln(w, `  bgcolor="transparent";`)
	fmt.Fprintln(w, `  node [shape="box", style="filled", fontname="Ubuntu Mono"];`)

	// Node ids are pre-order numbers, so parents always precede children.
	ids := map[*Node]int{}
	parents := map[*Node]*Node{}
	root.Walk(func(node *Node, _ int) bool {
		id := len(ids)
		ids[node] = id
		for _, child := range node.Children {
			parents[child] = node
		}

		label := escapeDOTValue(node.Label())
		if node.Content != nil {
			trimmedValue := TrimValue(*node.Content, trimWidth(options))
			label = fmt.Sprintf("%s: %s", label, escapeDOTValue(trimmedValue))
		}

		// Determine the fill color based on the kind name
		fillColor := kindColors[node.KindName]
		if fillColor == "" {
			if node.IsLeaf() {
				fillColor = "Honeydew"
			} else {
				fillColor = "lightgray"
			}
		}

		fmt.Fprintf(w, "  \"node_%d\" [label=\"%s\", shape=\"box\", fillcolor=\"%s\"];\n", id, label, fillColor)
		if parent, ok := parents[node]; ok {
			fmt.Fprintf(w, "  \"node_%d\" -> \"node_%d\";\n", ids[parent], id)
		}
		return true
	})

	// Close the graph
	fmt.Fprintln(w, `}`)
	return w.Flush()
}

func escapeDOTValue(value string) string {
	// Escape special characters for DOT format
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return r.Replace(value)
}

var kindColors = map[string]string{
	"program":              "lightpink",
	"identifier":           "PaleTurquoise",
	"property_identifier":  "PaleTurquoise",
	"number":               "lightgoldenrodyellow",
	"string_fragment":      "lightgoldenrodyellow",
	"comment":              "#E0E0E0",
	"trivia":               "white",
	"call_expression":      "lightgreen",
	"binary_expression":    "#C0FFC0",
	"lexical_declaration":  "#FFD8E1",
	"function_declaration": "#FFD8E1",
	"ERROR":                "tomato",
}
