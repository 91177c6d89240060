package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdoutPath as an output path means "write to standard output".
const StdoutPath = "-"

// WriteFileAtomic runs write against a temp file next to path and renames it
// into place only if everything succeeded. On failure the temp file is
// removed and any existing file at path is left as it was.
func WriteFileAtomic(path string, write func(io.Writer) error) (err error) {
	if path == StdoutPath {
		w := bufio.NewWriter(os.Stdout)
		if err := write(w); err != nil {
			return err
		}
		return w.Flush()
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	if err = write(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Rename is atomic within one directory.
	return os.Rename(f.Name(), path)
}
