// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package filestream implements the chunked, buffered file streamer (C4):
// a sequential reader that yields fixed-size chunks for download, and a
// sequential writer with explicit flush+fsync finalisation for upload.
//
// Neither side is shared between sessions; both are created on a
// successful Start and destroyed on End, Cancel, or a fatal error. All
// filesystem access goes through an afero.Fs so the streamer is testable
// against an in-memory filesystem without touching disk.
package filestream

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Reader yields fixed-size chunks of a regular file in file order.
type Reader struct {
	fs        afero.Fs
	f         afero.File
	br        *bufio.Reader
	chunkSize int
	size      uint64
}

// NewReader opens path for buffered sequential reads. It fails if path does
// not name a regular file.
func NewReader(fs afero.Fs, path string, chunkSize int) (*Reader, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, ErrNotRegularFile
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}

	f, err := fs.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, ErrNotRegularFile
	}

	return &Reader{
		fs:        fs,
		f:         f,
		br:        bufio.NewReader(f),
		chunkSize: chunkSize,
		size:      uint64(info.Size()),
	}, nil
}

// Size returns the file's total size in bytes, as reported at open time.
func (r *Reader) Size() uint64 { return r.size }

// Next returns the next chunk of up to chunkSize bytes. ok is false with a
// nil error when the reader has reached end of file; a short final chunk is
// legal and is still reported with ok=true.
func (r *Reader) Next() (chunk []byte, ok bool, err error) {
	buf := make([]byte, r.chunkSize)
	n, rerr := readFull(r.br, buf)
	if rerr != nil && rerr != io.EOF {
		return nil, false, rerr
	}
	if n == 0 {
		return nil, false, nil
	}
	return buf[:n], true, nil
}

// readFull reads until buf is full or the underlying reader is exhausted,
// unlike io.ReadFull it treats a partial final read as success rather than
// io.ErrUnexpectedEOF, matching the "short final chunk is legal" contract.
func readFull(br *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := br.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error { return r.f.Close() }
