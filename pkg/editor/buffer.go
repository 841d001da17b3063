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

// Package editor maps cursor-relative user edits onto crdt.Store
// mutations (the edit mapper) and keeps the UI-facing buffer state that
// drawing, cursor motion, and copy/paste consume (the rendered view plus
// cursor and active-insert hints).
package editor

import (
	"github.com/metaplinius/decapad/pkg/crdt"
	"github.com/metaplinius/decapad/pkg/session"
)

// Editor holds everything one peer's UI needs between ticks: the insert
// store, this peer's ID allocator and author ID, the current rendered
// view, and the editing state (cursor, active insert, re-anchor hint).
// The renderer and the edit mapper are its sole writers.
type Editor struct {
	Store  *crdt.Store
	IDs    *session.IDRange
	Author uint32

	Cursor         int
	ActiveInsertID uint32

	// LastTouched is the SelfID of the insert record the most recent
	// InsertLetter or DeleteLetter call created or mutated — distinct
	// from ActiveInsertID, which clears on delete and on cursor motion.
	// A caller pushing local edits out over the wire sends this record.
	LastTouched uint32

	View crdt.View

	hintID      uint32
	hintCharPos uint16
}

// New returns an editor over store with an empty view and the cursor at
// 0; call Rerender to build the view from the records store already holds.
func New(store *crdt.Store, ids *session.IDRange, author uint32) *Editor {
	return &Editor{Store: store, IDs: ids, Author: author}
}

// Text returns the currently rendered character sequence.
func (e *Editor) Text() []rune {
	return e.View.Text
}

// setHint records the (id, char_pos) a local mutation wants the cursor
// re-anchored to one past, consumed by the next Rerender.
func (e *Editor) setHint(id uint32, charPos uint16) {
	e.hintID = id
	e.hintCharPos = charPos
}

// anchor captures the rendered character just before the cursor, used to
// keep the cursor visually in place across a re-render triggered by
// incoming remote inserts (where no explicit hint was set).
type anchor struct {
	id      uint32
	charPos uint16
	valid   bool
}

func (e *Editor) captureAnchor() anchor {
	if e.Cursor <= 0 || e.Cursor > len(e.View.Text) {
		return anchor{}
	}
	i := e.Cursor - 1
	return anchor{id: e.View.IDTable[i], charPos: e.View.CharPosTable[i], valid: true}
}

// Rerender rebuilds the view from the store and re-anchors the cursor:
// by the pending update hint if a local mutation set one, or else by the
// pre-render anchor so the cursor tracks the same character through
// edits made elsewhere.
func (e *Editor) Rerender() {
	var want anchor
	if e.hintID != 0 {
		want = anchor{id: e.hintID, charPos: e.hintCharPos, valid: true}
		e.hintID = 0
	} else {
		want = e.captureAnchor()
	}

	e.View = crdt.Render(e.Store)

	if want.valid {
		for i := range e.View.IDTable {
			if e.View.IDTable[i] == want.id && e.View.CharPosTable[i] == want.charPos {
				e.Cursor = i + 1
				return
			}
		}
	}
	if e.Cursor > len(e.View.Text) {
		e.Cursor = len(e.View.Text)
	}
}
