package common

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// PrintASTMsgpack writes root in MessagePack using the same field names as
// the JSON form.
func PrintASTMsgpack(root *Node, output io.Writer, _ *PrintOptions) error {
	enc := msgpack.NewEncoder(output)
	return enc.Encode(root)
}

func ReadASTMsgpack(input io.Reader) (*Node, error) {
	var root Node
	dec := msgpack.NewDecoder(input)
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}
