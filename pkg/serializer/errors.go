package serializer

import (
	"errors"
	"fmt"

	"github.com/spicery/tsast/pkg/source"
	"github.com/spicery/tsast/pkg/syntax"
)

var (
	ErrMalformedSpan = errors.New("malformed span")
	ErrTooDeep       = errors.New("tree nesting exceeds limit")
)

// StructuralError reports a node the serializer refused to emit.
type StructuralError struct {
	Kind     syntax.Kind
	KindName string
	Span     source.Span
	Depth    int
	Err      error
}

func (e *StructuralError) Error() string {
	name := e.KindName
	if name == "" {
		name = fmt.Sprintf("kind %d", e.Kind)
	}
	return fmt.Sprintf("%s at span %s (depth %d): %v", name, e.Span, e.Depth, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}
