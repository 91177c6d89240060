package common

import (
	"io"

	"gopkg.in/yaml.v3"
)

func PrintASTYAML(root *Node, output io.Writer, options *PrintOptions) error {
	encoder := yaml.NewEncoder(output)
	if options != nil && options.Indent > 0 {
		encoder.SetIndent(options.Indent)
	}
	if err := encoder.Encode(root); err != nil {
		return err
	}
	return encoder.Close()
}
