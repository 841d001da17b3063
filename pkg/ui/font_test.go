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

package ui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadValidTrueType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(path, append([]byte{0x00, 0x01, 0x00, 0x00}, "rest of file"...), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	font, err := FileFontLoader{}.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if font.Path() != path {
		t.Fatalf("Path() = %q, want %q", font.Path(), path)
	}
}

func TestLoadMissingFontIsError(t *testing.T) {
	dir := t.TempDir()
	if _, err := (FileFontLoader{}).Load(filepath.Join(dir, "missing.ttf")); err == nil {
		t.Fatalf("Load(missing) should error")
	}
}

func TestLoadUnrecognizedFileIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-font.ttf")
	if err := os.WriteFile(path, []byte("plain text, not a font"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := (FileFontLoader{}).Load(path); err == nil {
		t.Fatalf("Load(unrecognized) should error")
	}
}
