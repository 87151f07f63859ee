// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "encoding/binary"

// Parse decodes b into a Frame. See the package doc for the wire layout.
//
// Enforced invariants: the method byte is one of the six defined codes;
// every field's tag is one of the defined codes; tags are pairwise distinct
// within one frame; every field's length-plus-one is at least 2 and its
// payload fits within b; every field ends with a single 0x00 terminator not
// counted in its payload; no bytes remain unconsumed after the last field.
func Parse(b []byte) (Frame, error) {
	if len(b) < 2 {
		return Frame{}, ErrHeaderTooShort
	}

	method := MethodCode(b[0])
	if !method.valid() {
		return Frame{}, ErrUnknownMethod
	}
	fieldCount := int(b[1])

	frame := Frame{Method: method}
	if fieldCount > 0 {
		frame.Fields = make([]Field, 0, fieldCount)
	}
	seen := make(map[FieldTag]bool, fieldCount)

	off := 2
	for i := 0; i < fieldCount; i++ {
		if len(b)-off < 3 {
			return Frame{}, ErrFieldTooShort
		}
		tag := FieldTag(b[off])
		if !tag.valid() {
			return Frame{}, ErrUnknownFieldType
		}
		if seen[tag] {
			return Frame{}, ErrDuplicateField
		}
		lenPlusOne := binary.BigEndian.Uint16(b[off+1 : off+3])
		if lenPlusOne < 2 {
			return Frame{}, ErrBadFieldLength
		}
		payloadLen := int(lenPlusOne - 1)

		payloadStart := off + 3
		payloadEnd := payloadStart + payloadLen
		termAt := payloadEnd
		if termAt >= len(b) {
			return Frame{}, ErrBadFieldLength
		}
		if b[termAt] != 0x00 {
			return Frame{}, ErrBadFieldLength
		}

		payload := make([]byte, payloadLen)
		copy(payload, b[payloadStart:payloadEnd])

		seen[tag] = true
		frame.Fields = append(frame.Fields, Field{Tag: tag, Payload: payload})

		off = termAt + 1
	}

	if off != len(b) {
		return Frame{}, ErrTrailingBytes
	}
	return frame, nil
}
