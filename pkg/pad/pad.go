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

// Package pad saves and restores a document as the raw concatenation of
// its insert records' wire payloads — no frame header, no CRC, per the
// persistent-file format.
package pad

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/metaplinius/decapad/pkg/codec"
	"github.com/metaplinius/decapad/pkg/crdt"
)

// ErrTruncated is returned by Load when the file ends in the middle of an
// insert record. There is no partial-record recovery for a pad file, only
// for the wire protocol's per-tick frame reads.
var ErrTruncated = errors.New("pad: truncated record in pad file")

// Save writes recs to dir/name as the concatenation of their per-insert
// payloads, via a temp-file-then-rename so a crash mid-write never leaves
// a half-written pad in place.
func Save(dir, name string, recs []crdt.Insert) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("pad: creating %s: %w", dir, err)
	}

	var buf []byte
	for _, ins := range recs {
		buf = append(buf, codec.EncodeInsertPayload(ins)...)
	}

	target := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("pad: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("pad: writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("pad: closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("pad: renaming into place: %w", err)
	}
	return nil
}

// Load reads dir/name and reconstructs the insert records it contains by
// repeatedly decoding the fixed-layout payload until EOF.
func Load(dir, name string) ([]crdt.Insert, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}

	var recs []crdt.Insert
	for len(data) > 0 {
		ins, n, err := codec.DecodeInsertPayload(data)
		if err != nil {
			return nil, ErrTruncated
		}
		recs = append(recs, ins)
		data = data[n:]
	}
	return recs, nil
}
