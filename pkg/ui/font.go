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
	"bytes"
	"fmt"
	"os"
)

// Font is an opaque handle to a loaded font asset. The core never looks
// inside it — glyph rasterization is out of scope — it only needs to
// know the asset exists and is well-formed enough to hand to a real
// rasterizer later.
type Font interface {
	Path() string
}

// FontLoader loads a font asset from disk, failing fatally (per the
// error handling design's fatal-startup-error category) if the asset is
// missing or not recognizable as a font file.
type FontLoader interface {
	Load(path string) (Font, error)
}

// magic numbers for the TTF/OTF container formats this loader recognizes.
var fontMagics = [][]byte{
	{0x00, 0x01, 0x00, 0x00}, // TrueType
	[]byte("OTTO"),           // OpenType with CFF outlines
	[]byte("true"),           // legacy Apple TrueType
	[]byte("ttcf"),           // TrueType collection
}

// fileFont is the shipped Font implementation: it carries nothing beyond
// the validated path.
type fileFont struct {
	path string
}

func (f fileFont) Path() string { return f.path }

// FileFontLoader validates a font asset by checking it exists, is a
// regular file, and opens with a recognized TTF/OTF magic number. It does
// no glyph parsing.
type FileFontLoader struct{}

func (FileFontLoader) Load(path string) (Font, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ui: font %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("ui: font %s: not a regular file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ui: font %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := f.Read(header); err != nil {
		return nil, fmt.Errorf("ui: font %s: reading header: %w", path, err)
	}
	for _, magic := range fontMagics {
		if bytes.Equal(header, magic) {
			return fileFont{path: path}, nil
		}
	}
	return nil, fmt.Errorf("ui: font %s: unrecognized font container", path)
}
