package index

import (
	"path/filepath"
	"testing"

	"github.com/spicery/tsast/pkg/serializer"
	"github.com/spicery/tsast/pkg/source"
	"github.com/spicery/tsast/pkg/syntax"
)

var kinds = syntax.MapKinds{1: "program", 2: "identifier", 3: "trivia", 4: "expression"}

func sampleTree(t *testing.T, text string) *syntax.Tree {
	t.Helper()
	file, err := source.NewFile("src/a.ts", []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	// "ab cd" -> program(expression(ab), trivia, cd)
	root := syntax.Branch(1,
		syntax.Branch(4, syntax.Leaf(2, 0, 2)),
		syntax.Leaf(3, 2, 3),
		syntax.Leaf(2, 3, 5),
	)
	return &syntax.Tree{Root: root, Kinds: kinds, File: file, Language: "typescript"}
}

func openIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := ix.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return ix
}

func TestOpenMigrates(t *testing.T) {
	ix := openIndex(t)
	upToDate, err := ix.CheckMigration()
	if err != nil {
		t.Fatal(err)
	}
	if !upToDate {
		t.Error("Expected schema to be up to date after Open")
	}
}

func TestStoreAndQuery(t *testing.T) {
	ix := openIndex(t)
	tree := sampleTree(t, "ab cd")
	root, err := serializer.Serialize(tree, serializer.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := ix.Store(tree, root); err != nil {
		t.Fatal(err)
	}

	rows, err := ix.Nodes("src/a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("Expected 5 nodes, got %d", len(rows))
	}
	if rows[0].ParentSeq != nil || rows[0].KindName != "program" {
		t.Errorf("Expected program root without parent, got %+v", rows[0])
	}
	if rows[2].ParentSeq == nil || *rows[2].ParentSeq != 1 || rows[2].Depth != 2 {
		t.Errorf("Expected leaf ab under expression at depth 2, got %+v", rows[2])
	}
	if rows[4].Line == nil || *rows[4].Column != 4 {
		t.Errorf("Expected cd at column 4, got %+v", rows[4])
	}

	text, err := ix.LeafText("src/a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if text != "ab cd" {
		t.Errorf("Expected leaf text to rebuild source, got %q", text)
	}

	ids, err := ix.NodesOfKind("src/a.ts", "identifier")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Errorf("Expected 2 identifiers, got %d", len(ids))
	}

	file, err := ix.SourceFile("src/a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if file.Contents != "ab cd" || file.NodeCount != 5 || file.Language != "typescript" {
		t.Errorf("Unexpected source file record %+v", file)
	}
}

func TestStoreReplaces(t *testing.T) {
	ix := openIndex(t)
	tree := sampleTree(t, "ab cd")
	root, err := serializer.Serialize(tree, serializer.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := ix.Store(tree, root); err != nil {
			t.Fatal(err)
		}
	}
	rows, err := ix.Nodes("src/a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Errorf("Expected re-indexing to replace rows, got %d", len(rows))
	}
}

func TestOpenFailsOnDirectory(t *testing.T) {
	ix, err := Open(t.TempDir())
	if err == nil {
		ix.Close()
		t.Fatal("Expected opening a directory as a database to fail")
	}
}
