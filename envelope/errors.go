// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package envelope

import "errors"

var (
	// ErrShortDatagram reports an inbound datagram shorter than the minimum
	// possible envelope (4 CRC + 12 nonce + 16 GCM tag = 32 bytes).
	ErrShortDatagram = errors.New("envelope: datagram shorter than minimum envelope size")

	// ErrCRCMismatch reports that the datagram's CRC-32 prefix does not match
	// its body. This is recoverable: the caller MUST NOT tear down the
	// session, only ask the peer to retry the last frame.
	ErrCRCMismatch = errors.New("envelope: crc mismatch")

	// ErrSeal reports a fatal failure to draw a nonce or seal a frame for
	// an outbound datagram.
	ErrSeal = errors.New("envelope: seal failed")

	// ErrOpen reports a fatal AEAD authentication/decryption failure on an
	// inbound datagram whose CRC already matched.
	ErrOpen = errors.New("envelope: open failed")

	// ErrKeySize reports a cipher key that is not exactly 32 bytes (AES-256).
	ErrKeySize = errors.New("envelope: key must be 32 bytes")
)
