// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "encoding/binary"

// Serialize renders f back to its wire form. The output is exactly
// 2 + Σ(3 + 1 + len(field.Payload)) bytes: the 2-byte header, then for each
// field its tag, big-endian (payload_len+1) uint16, payload, and a single
// 0x00 terminator. Serialize does not validate f; callers that build frames
// programmatically are responsible for keeping tags distinct and payload
// lengths within uint16-1.
func Serialize(f Frame) []byte {
	size := 2
	for _, fld := range f.Fields {
		size += 3 + 1 + len(fld.Payload)
	}

	out := make([]byte, size)
	out[0] = byte(f.Method)
	out[1] = byte(len(f.Fields))

	off := 2
	for _, fld := range f.Fields {
		out[off] = byte(fld.Tag)
		binary.BigEndian.PutUint16(out[off+1:off+3], uint16(len(fld.Payload)+1))
		off += 3
		copy(out[off:], fld.Payload)
		off += len(fld.Payload)
		out[off] = 0x00
		off++
	}
	return out
}
