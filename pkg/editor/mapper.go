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

package editor

import (
	"unicode"

	"github.com/metaplinius/decapad/pkg/crdt"
)

// maxActiveInsertLength caps the active-insert packing optimization: a
// single typed-in-a-row run of characters shares one insert record as
// long as that record's length stays under this ceiling.
const maxActiveInsertLength = 255

// InsertLetter maps a single typed code point at the current cursor
// position onto a store mutation: either extending the active insert
// (if one is open, under the length cap, and the cursor still sits right
// at its tail) or opening a new insert anchored per the site rules.
//
// The returned error is non-nil only when the ID range is exhausted,
// which is fatal for this peer.
func (e *Editor) InsertLetter(letter rune) error {
	if e.ActiveInsertID != 0 {
		if ins, ok := e.Store.Find(e.ActiveInsertID); ok && ins.Length() < maxActiveInsertLength && e.cursorAtActiveTail(ins) {
			ins.Content = append(ins.Content, letter)
			e.Store.Upsert(ins)
			e.LastTouched = ins.SelfID
			e.setHint(ins.SelfID, ins.Length()-1)
			e.Rerender()
			return nil
		}
	}

	parentID, charPos := e.siteForCursor()

	id, err := e.IDs.Alloc()
	if err != nil {
		return err
	}

	ins := crdt.Insert{
		SelfID:   id,
		ParentID: parentID,
		CharPos:  charPos,
		Author:   e.Author,
		Content:  []rune{letter},
	}
	e.Store.Upsert(ins)
	e.ActiveInsertID = id
	e.LastTouched = id
	e.setHint(id, 0)
	e.Rerender()
	return nil
}

// cursorAtActiveTail reports whether the cursor sits immediately after
// the rendered character at ins's last content position — the condition
// under which a new keystroke should extend ins rather than open a new
// insert. A false negative here only costs the bandwidth optimization,
// never correctness (spec.md §9): the caller falls back to a fresh
// insert.
func (e *Editor) cursorAtActiveTail(ins crdt.Insert) bool {
	if e.Cursor == 0 || e.Cursor > len(e.View.Text) {
		return false
	}
	lastPos := ins.Length() - 1
	i := e.Cursor - 1
	return e.View.IDTable[i] == ins.SelfID && e.View.CharPosTable[i] == lastPos
}

// siteForCursor determines the (parent_id, char_pos) a newly opened
// insert at the current cursor position should anchor to.
func (e *Editor) siteForCursor() (parentID uint32, charPos uint16) {
	c := e.Cursor
	n := len(e.View.Text)

	if e.Store.Len() == 0 || n == 0 {
		// An empty store, or a store that is all tombstones (nothing
		// rendered), both anchor fresh: there is no head site to anchor
		// against.
		return 0, 0
	}
	if c == 0 {
		// Anchors at the current head's own site rather than (0, 0); see
		// spec.md §9 — this is the documented quirk, preserved as-is.
		return e.View.IDTable[0], e.View.CharPosTable[0]
	}
	if c == n {
		return e.View.IDTable[c-1], e.View.CharPosTable[c-1] + 1
	}

	left := e.View.IDTable[c-1]
	right := e.View.IDTable[c]
	if e.Store.IsAncestor(left, right) {
		return right, e.View.CharPosTable[c]
	}
	return left, e.View.CharPosTable[c-1] + 1
}

// DeleteLetter deletes the character at the current cursor position (the
// one the cursor sits just before) by tombstoning its content cell.
func (e *Editor) DeleteLetter() {
	if e.Cursor >= len(e.View.Text) {
		return
	}
	id := e.View.IDTable[e.Cursor]
	pos := e.View.CharPosTable[e.Cursor]

	ins, ok := e.Store.Find(id)
	if !ok {
		return
	}
	ins.Content[pos] = crdt.Tombstone
	e.Store.Upsert(ins)
	e.ActiveInsertID = 0
	e.LastTouched = ins.SelfID
	e.Rerender()
}

// MoveLeft, MoveRight, Home, End, WordLeft, and WordRight reposition the
// cursor without touching the store. Any cursor motion clears the
// active-insert hint: the next keystroke is no longer adjacent to it.

func (e *Editor) MoveLeft() {
	e.ActiveInsertID = 0
	if e.Cursor > 0 {
		e.Cursor--
	}
}

func (e *Editor) MoveRight() {
	e.ActiveInsertID = 0
	if e.Cursor < len(e.View.Text) {
		e.Cursor++
	}
}

func (e *Editor) Home() {
	e.ActiveInsertID = 0
	e.Cursor = 0
}

func (e *Editor) End() {
	e.ActiveInsertID = 0
	e.Cursor = len(e.View.Text)
}

func (e *Editor) WordLeft() {
	e.ActiveInsertID = 0
	text := e.View.Text
	i := e.Cursor
	for i > 0 && unicode.IsSpace(text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(text[i-1]) {
		i--
	}
	e.Cursor = i
}

func (e *Editor) WordRight() {
	e.ActiveInsertID = 0
	text := e.View.Text
	i := e.Cursor
	n := len(text)
	for i < n && unicode.IsSpace(text[i]) {
		i++
	}
	for i < n && !unicode.IsSpace(text[i]) {
		i++
	}
	e.Cursor = i
}
