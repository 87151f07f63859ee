// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Writer appends bytes to a newly created file in arrival order.
type Writer struct {
	fs   afero.Fs
	path string
	f    afero.File
	bw   *bufio.Writer
}

// NewWriter creates path for buffered sequential writes. It fails if a file
// or directory already exists at path; missing parent directories are
// created.
func NewWriter(fs afero.Fs, path string) (*Writer, error) {
	if _, err := fs.Stat(path); err == nil {
		return nil, ErrAlreadyExists
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	return &Writer{fs: fs, path: path, f: f, bw: bufio.NewWriter(f)}, nil
}

// Write appends b to the file, in arrival order.
func (w *Writer) Write(b []byte) error {
	_, err := w.bw.Write(b)
	return err
}

// Finish flushes the userspace buffer and durably syncs the file to stable
// storage. The runtime's End dispatch sends the Ok response first and calls
// Finish afterward (the two-phase dispatch's "transmit, then do I/O" order);
// see DESIGN.md's resolved-contradiction note for why that ordering, not a
// sync-before-response guarantee, is what this repository implements.
func (w *Writer) Finish() error {
	if err := w.bw.Flush(); err != nil {
		return err
	}
	if err := w.f.Sync(); err != nil {
		return err
	}
	return w.f.Close()
}

// Close releases the underlying file handle without flushing or syncing.
// Used on the Cancel path, where the partial file is about to be removed.
func (w *Writer) Close() error { return w.f.Close() }

// Remove deletes the file at path. Used explicitly by callers on Cancel; the
// streamer never deletes a file on its own.
func Remove(fs afero.Fs, path string) error { return fs.Remove(path) }
