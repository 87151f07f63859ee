// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire implements the length-delimited, field-tagged binary frame
// format exchanged between client and server (parse/serialize, C1+C2), and
// the byte-level codecs (ASCII path, unsigned decimal integer) its fields
// are encoded with.
//
// Wire format (bit-exact):
//
//	offset 0        1               2 .. end
//	       method   field_count     field_0 field_1 ... field_{n-1}
//
//	field = tag:u8 | (payload_len+1):u16 be | payload:bytes | 0x00
//
// The length-plus-one convention reserves length 0 (a payload of at least
// one byte is always required) and the trailing 0x00 gives parse() a cheap
// self-check independent of the declared length.
package wire

// MethodCode identifies the operation a frame belongs to.
type MethodCode uint8

const (
	Standard  MethodCode = 0x00
	HandShake MethodCode = 0x01
	Download  MethodCode = 0x02
	Upload    MethodCode = 0x03
	Close     MethodCode = 0x04
	List      MethodCode = 0x05
)

func (m MethodCode) valid() bool {
	switch m {
	case Standard, HandShake, Download, Upload, Close, List:
		return true
	default:
		return false
	}
}

// FieldTag identifies the semantic role of one field's payload.
type FieldTag uint8

const (
	SessionID   FieldTag = 0x10
	ChunkID     FieldTag = 0x11
	ChunksCount FieldTag = 0x12
	ChunkSize   FieldTag = 0x13
	DataChunk   FieldTag = 0x14
	Command     FieldTag = 0x15
	Path        FieldTag = 0x16
	Status      FieldTag = 0x17
	CRC         FieldTag = 0x18
	FileSize    FieldTag = 0x19
	ErrorMsg    FieldTag = 0x1A
)

func (t FieldTag) valid() bool {
	switch t {
	case SessionID, ChunkID, ChunksCount, ChunkSize, DataChunk, Command, Path, Status, CRC, FileSize, ErrorMsg:
		return true
	default:
		return false
	}
}

// StatusCode is the one-byte payload carried by a Status field.
type StatusCode uint8

const (
	StatusReady    StatusCode = 0x20
	StatusSent     StatusCode = 0x21
	StatusReceived StatusCode = 0x22
	StatusError    StatusCode = 0x23
	StatusOk       StatusCode = 0x24
)

// CommandCode is the one-byte payload carried by a Command field.
type CommandCode uint8

const (
	CmdStart    CommandCode = 0x30
	CmdNext     CommandCode = 0x31
	CmdRetry    CommandCode = 0x32
	CmdEnd      CommandCode = 0x33
	CmdCancel   CommandCode = 0x34
	CmdSend     CommandCode = 0x35
	CmdContinue CommandCode = 0x36
)

// Valid reports whether c is one of the defined command codes. Exported
// because command-byte validation is an application-layer guard (C6), not
// part of the frame grammar itself.
func (c CommandCode) Valid() bool {
	switch c {
	case CmdStart, CmdNext, CmdRetry, CmdEnd, CmdCancel, CmdSend, CmdContinue:
		return true
	default:
		return false
	}
}

// FILEChunkSize is the fixed chunk size used by the chunked file streamer
// and assumed by every chunk-count calculation in this repository. Pinned
// for protocol compatibility; not configurable on the wire.
const FILEChunkSize = 64512

// Field is one tag+payload pair inside a Frame. The terminator byte and the
// length-plus-one encoding are wire-format details that parse/serialize
// handle; Field only carries the logical payload.
type Field struct {
	Tag     FieldTag
	Payload []byte
}

// Frame is the parsed, in-memory form of one application-layer message.
// Fields within a frame carry pairwise-distinct tags; that invariant is
// enforced by Parse and assumed by every reader of a Frame thereafter.
type Frame struct {
	Method MethodCode
	Fields []Field
}

// Field returns the first field with the given tag and true, or the zero
// Field and false if no such field exists. Safe to call on a nil Frame's
// Fields slice.
func (f Frame) Field(tag FieldTag) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.Tag == tag {
			return fld, true
		}
	}
	return Field{}, false
}
