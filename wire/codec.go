// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "math"

// DecodeASCIIPath validates that every byte of b is printable ASCII in
// [0x20, 0x7E) and returns it as a string. Control characters and bytes
// with the high bit set are rejected.
func DecodeASCIIPath(b []byte) (string, error) {
	for _, c := range b {
		if c < 0x20 || c >= 0x7E {
			return "", ErrASCIIDecode
		}
	}
	return string(b), nil
}

// EncodeASCIIPath is the inverse of DecodeASCIIPath for well-formed paths;
// it does not itself validate, since callers construct paths from values
// that were already validated on the way in.
func EncodeASCIIPath(path string) []byte {
	return []byte(path)
}

// maxUint64Digits is the number of decimal digits in math.MaxUint64.
const maxUint64Digits = 20 // "18446744073709551615"

// DecodeUint64 parses b as unsigned decimal digits with no sign and no
// leading '+'. It rejects empty input, any non-digit byte, inputs longer
// than 20 digits, and 20-digit inputs that overflow the uint64 range.
func DecodeUint64(b []byte) (uint64, error) {
	if len(b) == 0 || len(b) > maxUint64Digits {
		return 0, ErrIntegerDecode
	}
	var n uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, ErrIntegerDecode
		}
		d := uint64(c - '0')
		if n > (math.MaxUint64-d)/10 {
			return 0, ErrIntegerDecode
		}
		n = n*10 + d
	}
	return n, nil
}

// EncodeUint64 renders n as ASCII decimal digits, with no leading zeros
// except for the value zero itself, which encodes as "0".
func EncodeUint64(n uint64) []byte {
	if n == 0 {
		return []byte{'0'}
	}
	var buf [maxUint64Digits]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	out := make([]byte, len(buf)-i)
	copy(out, buf[i:])
	return out
}
