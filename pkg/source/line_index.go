package source

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var ErrOffsetOutOfRange = errors.New("offset out of range")

// LineCol is a human-readable position. Both fields are 1-based.
type LineCol struct {
	Line   uint32 `json:"line" yaml:"line" msgpack:"line"`
	Column uint32 `json:"column" yaml:"column" msgpack:"column"`
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Column)
}

// ColumnUnit selects what a column counts.
type ColumnUnit int

const (
	ColumnUTF16 ColumnUnit = iota // UTF-16 code units, as JavaScript strings do
	ColumnByte
	ColumnRune
)

func (u ColumnUnit) String() string {
	switch u {
	case ColumnUTF16:
		return "utf16"
	case ColumnByte:
		return "byte"
	case ColumnRune:
		return "rune"
	default:
		return fmt.Sprintf("ColumnUnit(%d)", int(u))
	}
}

// ParseColumnUnit accepts "utf16", "byte" or "rune" (case-insensitive).
// The empty string selects the default, utf16.
func ParseColumnUnit(s string) (ColumnUnit, error) {
	switch strings.ToLower(s) {
	case "", "utf16", "utf-16":
		return ColumnUTF16, nil
	case "byte", "bytes":
		return ColumnByte, nil
	case "rune", "runes", "codepoint":
		return ColumnRune, nil
	default:
		return 0, fmt.Errorf("unknown column unit %q (want utf16, byte or rune)", s)
	}
}

// buildLineIndex records where every line after the first begins. A line
// ends at "\n", at "\r\n" (one terminator) or at a lone "\r".
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			out = append(out, uint32(i+1)) // #nosec G115 -- length checked by NewFile
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				continue
			}
			out = append(out, uint32(i+1)) // #nosec G115 -- length checked by NewFile
		}
	}
	return out
}

// lineOf returns the 0-based line containing off and that line's start offset.
func lineOf(lineIdx []uint32, off uint32) (int, uint32) {
	// find the largest i with lineIdx[i] <= off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		return 0, 0
	}
	return hi + 1, lineIdx[hi]
}

// Position converts a byte offset into a 1-based line and column. The offset
// may equal the content length (end of file) but not exceed it.
func (f *File) Position(off uint32, unit ColumnUnit) (LineCol, error) {
	if off > f.Len() {
		return LineCol{}, fmt.Errorf("%w: %d > %d", ErrOffsetOutOfRange, off, len(f.Content))
	}
	line, start := lineOf(f.LineIdx, off)
	col := countUnits(f.Content[start:off], unit)
	return LineCol{Line: uint32(line + 1), Column: col + 1}, nil // #nosec G115 -- bounded by content length
}

func countUnits(b []byte, unit ColumnUnit) uint32 {
	if unit == ColumnByte {
		return uint32(len(b)) // #nosec G115 -- bounded by content length
	}
	var n uint32
	for len(b) > 0 {
		if b[0] < utf8.RuneSelf {
			n++
			b = b[1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if unit == ColumnUTF16 && r != utf8.RuneError {
			if w := utf16.RuneLen(r); w > 0 {
				n += uint32(w) // #nosec G115 -- 1 or 2
				continue
			}
		}
		n++
	}
	return n
}
