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

	"github.com/stretchr/testify/require"
)

func TestCRC8AppendedAndCheck(t *testing.T) {
	msg := []byte("datainsertpayload")
	crc := CRC8(msg)
	full := append(append([]byte(nil), msg...), crc)
	require.True(t, CheckAppendedCRC8(full))
}

func TestCRC8DetectsCorruption(t *testing.T) {
	msg := []byte("datainsertpayload")
	crc := CRC8(msg)
	full := append(append([]byte(nil), msg...), crc)
	full[0] ^= 0x01
	require.False(t, CheckAppendedCRC8(full))
}

func TestCRC8NibbleRoundTrip(t *testing.T) {
	for n := 0; n < 256; n++ {
		crc := byte(n)
		nib := EncodeCRCNibbles(crc)
		require.Equal(t, crc, DecodeCRCNibbles(nib))
	}
}

func TestCRC8NibblesArePrintable(t *testing.T) {
	nib := EncodeCRCNibbles(0xFF)
	for _, b := range nib {
		require.GreaterOrEqual(t, b, byte('A'))
		require.LessOrEqual(t, b, byte('A'+15))
	}
}

func TestUpdateCRC8Incremental(t *testing.T) {
	whole := CRC8([]byte("dataACK12345"))
	incremental := UpdateCRC8(UpdateCRC8(crcInit, []byte("dataACK")), []byte("12345"))
	require.Equal(t, whole, incremental)
}
