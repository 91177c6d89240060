package serializer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spicery/tsast/pkg/source"
	"github.com/spicery/tsast/pkg/syntax"
)

func TestPrintDetailed(t *testing.T) {
	file, err := source.NewFile("t.ts", []byte("a b"))
	if err != nil {
		t.Fatal(err)
	}
	tree := &syntax.Tree{
		Root: syntax.Branch(kProgram,
			syntax.Leaf(kIdentifier, 0, 1),
			syntax.Leaf(kTrivia, 1, 2),
			syntax.Leaf(kIdentifier, 2, 3),
		),
		Kinds: testKinds,
		File:  file,
	}
	var buf bytes.Buffer
	if err := PrintDetailed(&buf, tree, DetailOptions{}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"program {",
		"  kind: 1",
		"  start: 0",
		"  end: 3",
		"  width: 3",
		`  text: "a b"`,
		"  children: [",
		"    identifier {",
		"      kind: 5",
		"      start: 0",
		"      end: 1",
		"      width: 1",
		`      text: "a"`,
		"    }",
		"    trivia {",
		"      kind: 9",
		"      start: 1",
		"      end: 2",
		"      width: 1",
		"    }",
		"    identifier {",
		"      kind: 5",
		"      start: 2",
		"      end: 3",
		"      width: 1",
		`      text: "b"`,
		"    }",
		"  ]",
		"}",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, buf.String())
	}
}

func TestPrintDetailedTrimsText(t *testing.T) {
	file, err := source.NewFile("t.ts", []byte("  identifier_with_long_name  "))
	if err != nil {
		t.Fatal(err)
	}
	tree := &syntax.Tree{Root: syntax.Leaf(kIdentifier, 0, file.Len()), Kinds: testKinds, File: file}
	var buf bytes.Buffer
	if err := PrintDetailed(&buf, tree, DetailOptions{TrimText: 8}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `text: "identif…"`) {
		t.Errorf("Expected trimmed text, got:\n%s", buf.String())
	}
}

func TestPrintDetailedMalformed(t *testing.T) {
	file, err := source.NewFile("t.ts", []byte("ab"))
	if err != nil {
		t.Fatal(err)
	}
	tree := &syntax.Tree{Root: syntax.Leaf(kIdentifier, 0, 9), Kinds: testKinds, File: file}
	if err := PrintDetailed(&bytes.Buffer{}, tree, DetailOptions{}); err == nil {
		t.Error("Expected error for out-of-bounds span")
	}
}
