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
	"testing"

	"github.com/metaplinius/decapad/pkg/crdt"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTripNoCRC(t *testing.T) {
	raw := EncodeFrame(TagInitRequest, nil)
	length := DecodeUint32(raw[:IntSize])
	body := raw[IntSize : IntSize+int(length)]
	f, err := DecodeFrameBody(body)
	require.NoError(t, err)
	require.Equal(t, TagInitRequest, f.Tag)
	require.Empty(t, f.Payload)
}

func TestFrameRoundTripWithCRC(t *testing.T) {
	payload := AppendUint32(AppendUint32(nil, 1), 1024)
	raw := EncodeFrame(TagInit, payload)
	length := DecodeUint32(raw[:IntSize])
	body := raw[IntSize : IntSize+int(length)]
	f, err := DecodeFrameBody(body)
	require.NoError(t, err)
	require.Equal(t, TagInit, f.Tag)
	require.Equal(t, uint32(1), DecodeUint32(f.Payload[:IntSize]))
	require.Equal(t, uint32(1024), DecodeUint32(f.Payload[IntSize:]))
}

func TestFrameBadCRCIsDropped(t *testing.T) {
	payload := AppendUint32(AppendUint32(nil, 1), 1024)
	raw := EncodeFrame(TagInit, payload)
	length := DecodeUint32(raw[:IntSize])
	body := raw[IntSize : IntSize+int(length)]
	// Flip a bit inside the payload without touching the CRC.
	body[5] ^= 0xFF

	_, err := DecodeFrameBody(body)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestFrameTruncatedIsMalformed(t *testing.T) {
	_, err := DecodeFrameBody([]byte{1, 2})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestInsertPayloadRoundTrip(t *testing.T) {
	ins := crdt.Insert{
		SelfID:   42,
		ParentID: 7,
		CharPos:  3,
		Author:   1,
		Content:  []rune{'h', 'e', crdt.Tombstone, 'l', 'o'},
	}
	payload := EncodeInsertPayload(ins)
	got, n, err := DecodeInsertPayload(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.Equal(t, ins.SelfID, got.SelfID)
	require.Equal(t, ins.ParentID, got.ParentID)
	require.Equal(t, ins.CharPos, got.CharPos)
	require.Equal(t, ins.Author, got.Author)
	require.Equal(t, ins.Content, got.Content)
}

func TestInsertPayloadConcatenationDecodesSequentially(t *testing.T) {
	a := crdt.Insert{SelfID: 1, Content: []rune("ab")}
	b := crdt.Insert{SelfID: 2, ParentID: 1, CharPos: 1, Content: []rune("X")}

	buf := append(EncodeInsertPayload(a), EncodeInsertPayload(b)...)

	gotA, n, err := DecodeInsertPayload(buf)
	require.NoError(t, err)
	require.Equal(t, a.SelfID, gotA.SelfID)

	gotB, _, err := DecodeInsertPayload(buf[n:])
	require.NoError(t, err)
	require.Equal(t, b.SelfID, gotB.SelfID)
	require.Equal(t, b.ParentID, gotB.ParentID)
}

func TestDataFrameCarriesInsertPayload(t *testing.T) {
	ins := crdt.Insert{SelfID: 9, Content: []rune("hi")}
	raw := EncodeFrame(TagData, EncodeInsertPayload(ins))
	length := DecodeUint32(raw[:IntSize])
	body := raw[IntSize : IntSize+int(length)]

	f, err := DecodeFrameBody(body)
	require.NoError(t, err)
	require.Equal(t, TagData, f.Tag)

	got, _, err := DecodeInsertPayload(f.Payload)
	require.NoError(t, err)
	require.Equal(t, ins.Content, got.Content)
}
