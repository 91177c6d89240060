package source

import (
	"errors"
	"testing"
	"unicode/utf8"
)

// naivePosition scans from the start of content every time.
func naivePosition(content []byte, off int, unit ColumnUnit) LineCol {
	line, lineStart := 1, 0
	for i := 0; i < off; i++ {
		switch content[i] {
		case '\n':
			line++
			lineStart = i + 1
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				continue
			}
			line++
			lineStart = i + 1
		}
	}
	col := 0
	switch unit {
	case ColumnByte:
		col = off - lineStart
	default:
		for _, r := range string(content[lineStart:off]) {
			if unit == ColumnUTF16 && r > 0xFFFF {
				col += 2
			} else {
				col++
			}
		}
	}
	return LineCol{Line: uint32(line), Column: uint32(col + 1)}
}

func TestBuildLineIndex(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []uint32
	}{
		{name: "empty", content: "", expected: []uint32{}},
		{name: "single line", content: "let x = 1;", expected: []uint32{}},
		{name: "lf", content: "a\nb\n", expected: []uint32{2, 4}},
		{name: "crlf counts once", content: "a\r\nb", expected: []uint32{3}},
		{name: "lone cr", content: "a\rb\rc", expected: []uint32{2, 4}},
		{name: "mixed", content: "a\r\n\nb\r", expected: []uint32{3, 4, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildLineIndex([]byte(tt.content))
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Expected LineIdx[%d] = %d, got %d", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestPositionScenario(t *testing.T) {
	f, err := NewFile("input.ts", []byte("let x = 1;"))
	if err != nil {
		t.Fatal(err)
	}
	pos, err := f.Position(8, ColumnUTF16)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (LineCol{Line: 1, Column: 9}) {
		t.Errorf("Expected 1:9, got %s", pos)
	}
}

func TestPositionMatchesNaiveScan(t *testing.T) {
	inputs := []string{
		"",
		"let x = 1;\nconst y = 'é';\n",
		"a\r\nb\rc\n\n  d",
		"// 😀 emoji\nlet s = \"😀😀\"; x",
		"tab\tseparated\r\n\tline",
		"bad \xff utf8\nnext",
	}
	for _, in := range inputs {
		f, err := NewFile("t.ts", []byte(in))
		if err != nil {
			t.Fatal(err)
		}
		for _, unit := range []ColumnUnit{ColumnUTF16, ColumnByte, ColumnRune} {
			for off := 0; off <= len(in); off++ {
				if off < len(in) && !utf8.RuneStart(in[off]) {
					continue
				}
				got, err := f.Position(uint32(off), unit)
				if err != nil {
					t.Fatalf("%q offset %d: %v", in, off, err)
				}
				want := naivePosition([]byte(in), off, unit)
				if got != want {
					t.Errorf("%q offset %d (%s): expected %s, got %s", in, off, unit, want, got)
				}
			}
		}
	}
}

func TestPositionUTF16Surrogates(t *testing.T) {
	f, err := NewFile("t.ts", []byte("😀x"))
	if err != nil {
		t.Fatal(err)
	}
	pos, err := f.Position(4, ColumnUTF16)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Column != 3 {
		t.Errorf("Expected column 3 after a surrogate pair, got %d", pos.Column)
	}
	pos, err = f.Position(4, ColumnRune)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Column != 2 {
		t.Errorf("Expected rune column 2, got %d", pos.Column)
	}
}

func TestPositionOutOfRange(t *testing.T) {
	f, err := NewFile("t.ts", []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Position(3, ColumnUTF16); err != nil {
		t.Errorf("Expected end-of-file offset to resolve, got %v", err)
	}
	_, err = f.Position(4, ColumnUTF16)
	if !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestText(t *testing.T) {
	f, err := NewFile("t.ts", []byte("  let x"))
	if err != nil {
		t.Fatal(err)
	}
	text, err := f.Text(Span{Start: 0, End: 5})
	if err != nil {
		t.Fatal(err)
	}
	if text != "  let" {
		t.Errorf("Expected untrimmed '  let', got %q", text)
	}
	if _, err := f.Text(Span{Start: 5, End: 2}); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Expected inverted span to fail, got %v", err)
	}
	if _, err := f.Text(Span{Start: 2, End: 99}); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("Expected overlong span to fail, got %v", err)
	}
}

func TestParseColumnUnit(t *testing.T) {
	for in, want := range map[string]ColumnUnit{"": ColumnUTF16, "UTF16": ColumnUTF16, "byte": ColumnByte, "rune": ColumnRune} {
		got, err := ParseColumnUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseColumnUnit(%q) = %v, %v; expected %v", in, got, err, want)
		}
	}
	if _, err := ParseColumnUnit("grapheme"); err == nil {
		t.Error("Expected error for unknown unit")
	}
}
