package checker

import (
	"errors"
	"fmt"
	"io"

	"github.com/spicery/tsast/pkg/common"
	"github.com/spicery/tsast/pkg/source"
	"github.com/spicery/tsast/pkg/syntax"
)

// NameError is the kind name tree-sitter grammars give to unparsable input.
const NameError = "ERROR"

// Bug is a fault in the tree itself; a tree with bugs must not be serialized.
type Bug struct {
	Message string
	Kind    syntax.Kind
	Span    source.Span
}

// Issue is a problem in the source text that the tree faithfully records.
type Issue struct {
	Message string
	Kind    syntax.Kind
	Span    source.Span
}

// Checker performs structural validation of a syntax tree.
type Checker struct {
	Bugs   []Bug   // Accumulated tree source faults.
	Issues []Issue // Accumulated syntax errors in the source.
	tree   *syntax.Tree
}

// NewChecker creates a new checker instance.
func NewChecker() *Checker {
	return &Checker{
		Bugs:   []Bug{},
		Issues: []Issue{},
	}
}

func (c *Checker) ReportErrors(w io.Writer) {
	// First report any bugs and then move onto issues.
	if len(c.Bugs) > 0 {
		fmt.Fprintln(w, "Bug in tree source detected; the parse tree is faulty:")
		for i, bug := range c.Bugs {
			fmt.Fprintf(w, "  [%d]. %s, %s at span %s\n", i+1, bug.Message, c.kindName(bug.Kind), bug.Span)
		}
	}
	if len(c.Issues) > 0 {
		fmt.Fprintln(w, "Syntax errors found in the source code:")
		for i, issue := range c.Issues {
			fmt.Fprintf(w, "  [%d]. %s, at %s\n", i+1, issue.Message, c.where(issue.Span))
		}
	}
}

// Err summarises the bugs, or returns nil when there are none.
func (c *Checker) Err() error {
	if len(c.Bugs) == 0 {
		return nil
	}
	first := c.Bugs[0]
	return fmt.Errorf("%w: %d fault(s), first: %s, %s at span %s",
		ErrFaultyTree, len(c.Bugs), first.Message, c.kindName(first.Kind), first.Span)
}

var ErrFaultyTree = errors.New("faulty syntax tree")

type frame struct {
	node   syntax.Node
	parent source.Span
	root   bool
}

// Check validates every span in tree and records syntax errors. It returns
// true when no bugs were found; issues alone do not fail the check.
func (c *Checker) Check(tree *syntax.Tree) bool {
	c.tree = tree
	if tree == nil || tree.Root == nil || tree.File == nil {
		c.addBug("invalid tree: nil", 0, source.Span{})
		return false
	}

	size := tree.File.Len()
	var stack common.Stack[frame]
	stack.Push(frame{node: tree.Root, parent: source.Span{Start: 0, End: size}, root: true})
	for stack.Len() > 0 {
		f, _ := stack.Pop()
		if f.node == nil {
			c.addBug("invalid node: nil", 0, f.parent)
			continue
		}
		kind, span := f.node.Kind(), f.node.Span()
		switch {
		case !span.Valid():
			c.addBug("inverted span", kind, span)
			continue
		case span.End > size:
			c.addBug(fmt.Sprintf("span past end of file (%d bytes)", size), kind, span)
			continue
		case !f.parent.Contains(span):
			c.addBug(fmt.Sprintf("span outside parent %s", f.parent), kind, span)
		}

		kids := f.node.Children()
		if c.kindName(kind) == NameError {
			c.addIssue("unexpected input", kind, span)
		} else if len(kids) == 0 && span.Empty() && !f.root {
			c.addIssue(fmt.Sprintf("missing %s", c.kindName(kind)), kind, span)
		}

		prev := span.Start
		for i, kid := range kids {
			if kid != nil && kid.Span().Valid() {
				if kid.Span().Start < prev {
					c.addBug(fmt.Sprintf("child %d overlaps or precedes its previous sibling", i), kid.Kind(), kid.Span())
				}
				prev = max(prev, kid.Span().End)
			}
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stack.Push(frame{node: kids[i], parent: span})
		}
	}

	return len(c.Bugs) == 0
}

func (c *Checker) addBug(message string, kind syntax.Kind, span source.Span) {
	c.Bugs = append(c.Bugs, Bug{Message: message, Kind: kind, Span: span})
}

func (c *Checker) addIssue(message string, kind syntax.Kind, span source.Span) {
	c.Issues = append(c.Issues, Issue{Message: message, Kind: kind, Span: span})
}

func (c *Checker) kindName(kind syntax.Kind) string {
	if c.tree != nil && c.tree.Kinds != nil {
		return c.tree.Kinds.KindName(kind)
	}
	return fmt.Sprintf("kind %d", kind)
}

func (c *Checker) where(span source.Span) string {
	if c.tree != nil && c.tree.File != nil {
		if pos, err := c.tree.File.Position(span.Start, source.ColumnUTF16); err == nil {
			return fmt.Sprintf("line %d, column %d", pos.Line, pos.Column)
		}
	}
	return "span " + span.String()
}
