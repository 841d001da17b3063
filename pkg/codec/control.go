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

// EncodeInitPayload serializes the payload of an "Init" frame: the ID
// range the host is handing the joiner. The joiner's author ID is not
// carried on the wire — exactly two peers are ever supported, and the
// joiner's author ID is the fixed constant session.JoinerAuthorID.
func EncodeInitPayload(idStart, idEnd uint32) []byte {
	out := make([]byte, 0, 2*IntSize)
	out = AppendUint32(out, idStart)
	out = AppendUint32(out, idEnd)
	return out
}

// DecodeInitPayload reverses EncodeInitPayload.
func DecodeInitPayload(b []byte) (idStart, idEnd uint32, err error) {
	if len(b) < 2*IntSize {
		return 0, 0, ErrMalformed
	}
	idStart = DecodeUint32(b[0*IntSize:])
	idEnd = DecodeUint32(b[1*IntSize:])
	return idStart, idEnd, nil
}

// EncodeAckPayload serializes the payload of an "ack " frame: the self_id
// being acknowledged.
func EncodeAckPayload(selfID uint32) []byte {
	return AppendUint32(nil, selfID)
}

// DecodeAckPayload reverses EncodeAckPayload.
func DecodeAckPayload(b []byte) (selfID uint32, err error) {
	if len(b) < IntSize {
		return 0, ErrMalformed
	}
	return DecodeUint32(b[:IntSize]), nil
}
