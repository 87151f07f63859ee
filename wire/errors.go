// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "errors"

// Parse-time errors. Each corresponds to one rejection rule in the frame
// grammar: a frame is either well-formed or it is one of these, never both.
var (
	// ErrHeaderTooShort reports an input shorter than the 2-byte method+field-count header.
	ErrHeaderTooShort = errors.New("wire: header too short")

	// ErrUnknownMethod reports a method byte outside the defined MethodCode set.
	ErrUnknownMethod = errors.New("wire: unknown method")

	// ErrUnknownFieldType reports a tag byte outside the defined FieldTag set.
	ErrUnknownFieldType = errors.New("wire: unknown field type")

	// ErrDuplicateField reports two fields in one frame sharing a tag.
	ErrDuplicateField = errors.New("wire: duplicate field tag")

	// ErrFieldTooShort reports that the remaining bytes cannot hold a tag+length pair.
	ErrFieldTooShort = errors.New("wire: field header truncated")

	// ErrBadFieldLength reports a declared length-plus-one below 2, a payload that
	// would run past the buffer, or a terminator byte that isn't 0x00.
	ErrBadFieldLength = errors.New("wire: bad field length")

	// ErrTrailingBytes reports unconsumed bytes after the last field of a frame.
	ErrTrailingBytes = errors.New("wire: trailing bytes after last field")
)

// Payload decode errors, surfaced by the byte-codec helpers (C1) and wrapped
// by the state machine into its own taxonomy.
var (
	// ErrASCIIDecode reports a byte outside [0x20, 0x7E) in a path payload.
	ErrASCIIDecode = errors.New("wire: non-printable byte in path payload")

	// ErrIntegerDecode reports a non-digit byte, an empty payload, or an
	// unsigned 64-bit overflow in an integer payload.
	ErrIntegerDecode = errors.New("wire: integer payload decode failed")
)
