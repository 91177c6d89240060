package common

import (
	"encoding/json"
	"io"
	"strings"
)

// PrintASTJSON writes root as a single JSON document. Output is compact unless
// options.Indent is positive.
func PrintASTJSON(root *Node, output io.Writer, options *PrintOptions) error {
	encoder := json.NewEncoder(output)
	encoder.SetEscapeHTML(false)
	if options != nil && options.Indent > 0 {
		encoder.SetIndent("", strings.Repeat(" ", options.Indent))
	}
	return encoder.Encode(root)
}

func ReadASTJSON(input io.Reader) (*Node, error) {
	var root Node
	decoder := json.NewDecoder(input)
	err := decoder.Decode(&root)
	if err != nil {
		return nil, err
	}
	return &root, nil
}
