package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// File is a loaded source text together with its line index. The content is
// kept exactly as read: no BOM stripping and no CRLF normalisation, so every
// span offset refers to the bytes on disk.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32 // offsets at which lines 2..n begin
}

// NewFile wraps in-memory content. The line index is built here, once.
func NewFile(path string, content []byte) (*File, error) {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return nil, fmt.Errorf("%s: file too large: %w", path, err)
	}
	return &File{
		Path:    filepath.ToSlash(filepath.Clean(path)),
		Content: content,
		LineIdx: buildLineIndex(content),
	}, nil
}

// Load reads a file from disk.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFile(path, content)
}

// Len returns the content length in bytes.
func (f *File) Len() uint32 {
	return uint32(len(f.Content)) // #nosec G115 -- checked in NewFile
}

// Text returns the exact content covered by span.
func (f *File) Text(span Span) (string, error) {
	if !span.Valid() || span.End > f.Len() {
		return "", fmt.Errorf("%w: span %s in %d bytes", ErrOffsetOutOfRange, span, len(f.Content))
	}
	return string(f.Content[span.Start:span.End]), nil
}

// LineCount returns the number of lines, counting an empty trailing line.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}
