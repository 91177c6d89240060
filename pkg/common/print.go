package common

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/spicery/tsast/pkg/syntax"
)

var ErrUnknownFormat = errors.New("unknown format")

// PrintFunc renders a serialized tree.
type PrintFunc func(root *Node, output io.Writer, options *PrintOptions) error

func PickPrintFunc(format string) (PrintFunc, error) {
	switch strings.ToUpper(format) {
	case "", "JSON":
		return PrintASTJSON, nil
	case "YAML":
		return PrintASTYAML, nil
	case "MSGPACK":
		return PrintASTMsgpack, nil
	case "ASCIITREE":
		return PrintASTAsciiTree, nil
	case "DOT":
		return PrintASTDOT, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// TrimValue shortens value to at most width display cells, ending in an
// ellipsis when something was cut. A width of zero disables trimming.
func TrimValue(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width < 2 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "…")
}

func kindCode(k syntax.Kind) string {
	return strconv.Itoa(int(k))
}
