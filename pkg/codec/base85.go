/*
Copyright 2026 The Decapad Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package codec implements the wire-level encodings shared by every
// decapad frame: a fixed-width base-85 integer codec, a CRC-8 checksum,
// and the frame format built on top of both.
package codec

// IntSize is the number of bytes a single encoded unsigned integer
// occupies on the wire.
const IntSize = 5

// base is the radix used by the integer codec. Offsetting digits by
// asciiOffset keeps every byte a printable, non-whitespace character.
const (
	base        = 85
	asciiOffset = 42 // '*'
)

// EncodeUint32 returns the base-85 encoding of n as a 5-byte array.
// Byte k holds digit (n / base^k) mod base, offset by asciiOffset so the
// frame stays printable ASCII.
func EncodeUint32(n uint32) [IntSize]byte {
	var out [IntSize]byte
	for k := 0; k < IntSize; k++ {
		out[k] = byte(asciiOffset + (n % base))
		n /= base
	}
	return out
}

// AppendUint32 appends the base-85 encoding of n to dst and returns the
// extended slice, in the style of encoding/binary's AppendUint* helpers.
func AppendUint32(dst []byte, n uint32) []byte {
	enc := EncodeUint32(n)
	return append(dst, enc[:]...)
}

// DecodeUint32 reverses EncodeUint32. It does not validate that b's bytes
// lie in the printable base-85 alphabet or that the decoded value fits
// the range it was originally encoded from: a corrupt or truncated frame
// can decode to a value the caller never intended, and must be rejected
// by semantic checks at a higher layer (e.g. a length that exceeds the
// remaining payload).
func DecodeUint32(b []byte) uint32 {
	var n uint32
	for k := IntSize - 1; k >= 0; k-- {
		digit := uint32(int(b[k]) - asciiOffset)
		n = n*base + digit
	}
	return n
}
