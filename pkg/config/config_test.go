package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spicery/tsast/pkg/source"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "tsast.yaml", "format: yaml\nno-pos: true\ncolumn-unit: byte\ntrivia: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "yaml" || !cfg.NoPos || cfg.ColumnUnit != "byte" || cfg.Trivia {
		t.Errorf("Unexpected config %+v", cfg)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Output != DefaultOutput || cfg.Indent != 0 {
		t.Errorf("Expected defaults for output and indent, got %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "tsast.toml", "format = \"dot\"\nkind-names = true\nmax-depth = 50\nlanguage = \"tsx\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "dot" || !cfg.KindNames || cfg.MaxDepth != 50 || cfg.Language != "tsx" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if !cfg.Trivia {
		t.Error("Expected trivia to stay on by default")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(writeFile(t, "tsast.ini", "format=json")); err == nil {
		t.Error("Expected unsupported extension to fail")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "indent: [1, 2")); err == nil {
		t.Error("Expected malformed YAML to fail")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestSerializerConfig(t *testing.T) {
	cfg, err := LoadFromString("no-pos: true\nkind-names: true\ncolumn-unit: rune\nmax-depth: 10\n")
	if err != nil {
		t.Fatal(err)
	}
	sc, err := cfg.Serializer()
	if err != nil {
		t.Fatal(err)
	}
	if sc.IncludePositions || !sc.IncludeKindName || sc.Columns != source.ColumnRune || sc.MaxDepth != 10 {
		t.Errorf("Unexpected serializer config %+v", sc)
	}

	cfg.ColumnUnit = "furlongs"
	if _, err := cfg.Serializer(); err == nil {
		t.Error("Expected unknown column unit to fail")
	}
	cfg.ColumnUnit = "utf16"
	cfg.MaxDepth = -1
	if _, err := cfg.Serializer(); err == nil {
		t.Error("Expected negative max-depth to fail")
	}
}

func TestPrintOptions(t *testing.T) {
	cfg := Default()
	cfg.Trim = 12
	opts := cfg.PrintOptions()
	if opts.Format != "JSON" || opts.Indent != 0 || opts.TrimTokenOnOutput != 12 {
		t.Errorf("Unexpected print options %+v", opts)
	}
}
