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

package crdt

import "sort"

// site identifies a location in the insert tree where children may be
// anchored: the position CharPos within ParentID's content (or within
// the document, for ParentID == 0).
type site struct {
	parent  uint32
	charPos uint16
}

// View is the derived, rendered state of a store: the visible code-point
// sequence, plus parallel provenance tables giving, for each rendered
// character, the insert that owns it, that insert's local content
// index, and the authoring peer.
type View struct {
	Text         []rune
	IDTable      []uint32
	CharPosTable []uint16
	AuthorTable  []uint32
}

// Render walks store's insert tree in deterministic preorder and
// produces the view every peer that has observed the same set of
// inserts will agree on, regardless of delivery order.
//
// At a given site, every insert anchored there is visited in ascending
// SelfID order — a total order because SelfID is globally unique and
// each peer draws from a disjoint range, so two concurrent inserts at
// the same site land in the same order on every peer. An insert with a
// missing parent is never visited (its subtree is silently dropped)
// since recursion only ever reaches a site through its parent.
func Render(s *Store) View {
	children := make(map[site][]Insert)
	for _, rec := range s.All() {
		k := site{rec.ParentID, rec.CharPos}
		children[k] = append(children[k], rec)
	}
	for k := range children {
		sort.Slice(children[k], func(i, j int) bool {
			return children[k][i].SelfID < children[k][j].SelfID
		})
	}

	v := View{}
	renderSite(site{0, 0}, children, &v)
	return v
}

func renderSite(at site, children map[site][]Insert, v *View) {
	for _, ins := range children[at] {
		for pos := 0; pos < len(ins.Content); pos++ {
			renderSite(site{ins.SelfID, uint16(pos)}, children, v)
			if ins.Content[pos] != Tombstone {
				v.Text = append(v.Text, ins.Content[pos])
				v.IDTable = append(v.IDTable, ins.SelfID)
				v.CharPosTable = append(v.CharPosTable, uint16(pos))
				v.AuthorTable = append(v.AuthorTable, ins.Author)
			}
		}
		renderSite(site{ins.SelfID, ins.Length()}, children, v)
	}
}
