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

package pad

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/metaplinius/decapad/pkg/crdt"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := []crdt.Insert{
		{SelfID: 1, ParentID: 0, CharPos: 0, Author: 1, Content: []rune("hello")},
		{SelfID: 2, ParentID: 1, CharPos: 5, Author: 2, Content: []rune{'!', crdt.Tombstone}},
	}

	if err := Save(dir, "mypad", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(dir, "mypad")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestSaveLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, "mypad", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "mypad" {
		t.Fatalf("dir contents = %v, want exactly [mypad]", entries)
	}
}

func TestLoadTruncatedFileIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken")
	if err := os.WriteFile(path, []byte("not a valid payload"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(dir, "broken"); err != ErrTruncated {
		t.Fatalf("Load(truncated) = %v, want ErrTruncated", err)
	}
}
