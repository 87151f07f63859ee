// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filestream_test

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"

	"code.hybscloud.com/filexfer/filestream"
)

func TestReader_ChunksInOrderWithShortFinalChunk(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := bytes.Repeat([]byte{1}, 64512)
	content = append(content, bytes.Repeat([]byte{2}, 1024)...)
	if err := afero.WriteFile(fs, "hello.bin", content, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	r, err := filestream.NewReader(fs, "hello.bin", 64512)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.Size() != uint64(len(content)) {
		t.Fatalf("Size() = %d, want %d", r.Size(), len(content))
	}

	var got []byte
	for {
		chunk, ok, err := r.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, chunk...)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("reassembled content mismatch: got %d bytes, want %d", len(got), len(content))
	}
}

func TestReader_EmptyFileYieldsNoneImmediately(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "empty.bin", nil, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	r, err := filestream.NewReader(fs, "empty.bin", 64512)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	_, ok, err := r.Next()
	if err != nil || ok {
		t.Fatalf("Next() = ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestReader_RejectsDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("a-dir", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := filestream.NewReader(fs, "a-dir", 64512); err != filestream.ErrNotRegularFile {
		t.Fatalf("err = %v, want ErrNotRegularFile", err)
	}
}

func TestReader_RejectsMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := filestream.NewReader(fs, "nope.bin", 64512); err != filestream.ErrNotRegularFile {
		t.Fatalf("err = %v, want ErrNotRegularFile", err)
	}
}

func TestWriter_AppendsThenFinishesDurably(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := filestream.NewWriter(fs, "nested/dir/upload.bin")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	parts := [][]byte{bytes.Repeat([]byte{9}, 64512), bytes.Repeat([]byte{7}, 1024)}
	for _, p := range parts {
		if err := w.Write(p); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	got, err := afero.ReadFile(fs, "nested/dir/upload.bin")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := append(append([]byte{}, parts[0]...), parts[1]...)
	if !bytes.Equal(got, want) {
		t.Fatalf("file content mismatch: got %d bytes want %d", len(got), len(want))
	}
}

func TestWriter_RejectsExistingPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "taken.bin", []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if _, err := filestream.NewWriter(fs, "taken.bin"); err != filestream.ErrAlreadyExists {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestWriter_CancelRemovesPartialFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := filestream.NewWriter(fs, "partial.bin")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write([]byte("partial data")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := filestream.Remove(fs, "partial.bin"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := fs.Stat("partial.bin"); err == nil {
		t.Fatalf("file still exists after Remove")
	}
}
