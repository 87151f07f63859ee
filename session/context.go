// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session implements the mutable per-session context (C5) and the
// protocol state machine (C6) that gates which control words are legal in
// which state and advances chunk counters. The state machine borrows the
// context mutably and the inbound frame immutably; it never owns I/O
// resources — those belong to the runtime (C7).
package session

import "code.hybscloud.com/filexfer/wire"

// Context is the mutable data of an in-flight (or not-yet-started)
// operation. A Context is created with SessionID and all other fields
// zero/empty; Reset restores that state while preserving SessionID.
type Context struct {
	SessionID uint8

	// Started is true exactly during an in-progress Download or Upload
	// transfer.
	Started bool

	// CurrentMethod is meaningful when Started; cleared on Reset.
	CurrentMethod wire.MethodCode

	// FileOpen is true once a reader or writer has been successfully opened
	// for the current transfer.
	FileOpen bool

	// Path is the printable-ASCII path of the file being transferred,
	// valid once FileOpen is true.
	Path string

	// FileSize is the total number of bytes to transfer.
	FileSize uint64

	// ChunkCount is ceil(FileSize / wire.FILEChunkSize), with the
	// convention ceil(0/n) = 0.
	ChunkCount uint32

	// CurrentChunkID is, for a download, the 1-based index of the chunk
	// staged in DataChunk for the next Sent response; for an upload, the
	// number of chunks already accepted (the next expected chunk_id is
	// CurrentChunkID+1). Monotone non-decreasing until Reset.
	CurrentChunkID uint32

	// DataChunk is the last chunk read (download) or last chunk accepted
	// (upload). Retry does not use it; it resends Response instead.
	DataChunk []byte

	// Response is the serialized frame the runtime will transmit next.
	Response []byte

	// ErrMsg is populated only on the Error path.
	ErrMsg string
}

// New returns a Context for sessionID with every other field at its zero
// value.
func New(sessionID uint8) *Context {
	return &Context{SessionID: sessionID}
}

// Reset zeroes every field except SessionID. The runtime calls it after
// End or Cancel has torn down the transfer's streamer.
func (c *Context) Reset() {
	sid := c.SessionID
	*c = Context{SessionID: sid}
}

// IncrementCurrentChunkID advances the chunk counter by one.
func (c *Context) IncrementCurrentChunkID() {
	c.CurrentChunkID++
}

// ChunkCountFromSize computes ceil(size / wire.FILEChunkSize), with
// ceil(0/n) = 0.
func ChunkCountFromSize(size uint64) uint32 {
	if size == 0 {
		return 0
	}
	return uint32((size + wire.FILEChunkSize - 1) / wire.FILEChunkSize)
}
