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

package codec

import (
	"errors"
	"fmt"

	"github.com/metaplinius/decapad/pkg/crdt"
)

// Frame tags. Every tag is exactly 4 ASCII bytes; "ack " carries a
// trailing space to pad it out.
const (
	TagInitRequest = "inrq"
	TagInit        = "Init"
	TagAckInit     = "acki"
	TagData        = "data"
	TagAck         = "ack "
)

// hasCRC reports whether frames with this tag carry a trailing CRC, per
// the frame tag table.
func hasCRC(tag string) bool {
	return tag == TagInit || tag == TagData
}

// ErrMalformed is returned for any frame that is truncated or (for tags
// that carry one) fails its CRC check. The tag itself is not validated
// here: a frame with an unknown tag decodes normally and is left to the
// caller. Malformed frames are dropped by the transport loop; they never
// disturb state.
var ErrMalformed = errors.New("codec: malformed frame")

// Frame is a single decoded protocol message: its 4-byte tag and
// whatever payload followed it, with any trailing CRC already stripped
// and verified.
type Frame struct {
	Tag     string
	Payload []byte
}

// EncodeFrame serializes tag and payload into a complete frame,
// including the 5-byte base-85 length prefix and, for tags that require
// one, the CRC-8 nibble suffix. The length written is the byte count
// after the length prefix itself: tag + payload + optional CRC.
func EncodeFrame(tag string, payload []byte) []byte {
	if len(tag) != 4 {
		panic(fmt.Sprintf("codec: tag %q is not 4 bytes", tag))
	}
	body := make([]byte, 0, 4+len(payload)+2)
	body = append(body, tag...)
	body = append(body, payload...)
	if hasCRC(tag) {
		nib := EncodeCRCNibbles(CRC8(body))
		body = append(body, nib[:]...)
	}
	out := make([]byte, 0, IntSize+len(body))
	out = AppendUint32(out, uint32(len(body)))
	out = append(out, body...)
	return out
}

// DecodeFrameBody parses a frame body (everything after the length
// prefix, exactly `length` bytes) into a Frame. It verifies the CRC for
// tags that carry one.
func DecodeFrameBody(body []byte) (Frame, error) {
	if len(body) < 4 {
		return Frame{}, ErrMalformed
	}
	tag := string(body[:4])
	rest := body[4:]
	if hasCRC(tag) {
		if len(rest) < 2 {
			return Frame{}, ErrMalformed
		}
		var nib [2]byte
		copy(nib[:], rest[len(rest)-2:])
		payload := rest[:len(rest)-2]
		want := CRC8(body[:len(body)-2])
		if DecodeCRCNibbles(nib) != want {
			return Frame{}, ErrMalformed
		}
		return Frame{Tag: tag, Payload: payload}, nil
	}
	return Frame{Tag: tag, Payload: rest}, nil
}

// insertHeaderSize is the fixed portion of a serialized insert: self_id,
// parent_id, author, and the packed mix word, each IntSize bytes.
const insertHeaderSize = 4 * IntSize

// EncodeInsertPayload serializes ins exactly as a "data" frame payload
// (and, with no frame header at all, as a full-document dump entry):
// self_id · parent_id · author · mix · content[length], each field
// IntSize bytes. mix packs char_pos, length, and the reserved lock bit
// into one 32-bit word: (char_pos<<16) | length | (lock<<31).
func EncodeInsertPayload(ins crdt.Insert) []byte {
	out := make([]byte, 0, insertHeaderSize+int(ins.Length())*IntSize)
	out = AppendUint32(out, ins.SelfID)
	out = AppendUint32(out, ins.ParentID)
	out = AppendUint32(out, ins.Author)

	var lockBit uint32
	if ins.Lock {
		lockBit = 1
	}
	mix := uint32(ins.CharPos)<<16 | uint32(ins.Length()) | (lockBit << 31)
	out = AppendUint32(out, mix)

	for _, r := range ins.Content {
		out = AppendUint32(out, uint32(r))
	}
	return out
}

// DecodeInsertPayload reverses EncodeInsertPayload, returning the insert
// and the number of bytes consumed from b (so callers can decode a
// concatenation of several payloads, as in a full-document dump).
func DecodeInsertPayload(b []byte) (crdt.Insert, int, error) {
	if len(b) < insertHeaderSize {
		return crdt.Insert{}, 0, ErrMalformed
	}
	selfID := DecodeUint32(b[0*IntSize:])
	parentID := DecodeUint32(b[1*IntSize:])
	author := DecodeUint32(b[2*IntSize:])
	mix := DecodeUint32(b[3*IntSize:])

	length := uint16(mix & 0xFFFF)
	charPos := uint16(mix >> 16)
	lock := (mix>>31)&1 != 0

	need := insertHeaderSize + int(length)*IntSize
	if len(b) < need {
		return crdt.Insert{}, 0, ErrMalformed
	}

	content := make([]rune, length)
	for i := 0; i < int(length); i++ {
		off := insertHeaderSize + i*IntSize
		content[i] = rune(DecodeUint32(b[off:]))
	}

	return crdt.Insert{
		SelfID:   selfID,
		ParentID: parentID,
		CharPos:  charPos,
		Author:   author,
		Lock:     lock,
		Content:  content,
	}, need, nil
}
