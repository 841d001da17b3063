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

// Package crdt implements the tree-structured sequence CRDT at the core
// of decapad: the insert record, the append-only store of records, their
// convergent merge rule, and the deterministic renderer that turns the
// store into an ordered character sequence.
package crdt

// Tombstone is the sentinel code point marking a content position as
// deleted. It is never a valid typed character.
const Tombstone rune = 127

// Insert is the atomic CRDT operation: a contiguous run of code points
// anchored at the (ParentID, CharPos) site of some other insert (or the
// document root, ParentID == 0).
type Insert struct {
	SelfID   uint32
	ParentID uint32
	CharPos  uint16
	Author   uint32
	Lock     bool
	Content  []rune
}

// Length returns the number of content cells, tombstoned or not.
func (ins *Insert) Length() uint16 {
	return uint16(len(ins.Content))
}

// Clone returns a deep copy, safe to mutate independently of ins.
func (ins Insert) Clone() Insert {
	out := ins
	out.Content = append([]rune(nil), ins.Content...)
	return out
}

// merge applies the convergent merge rule from the data model: the
// longer of the two versions wins outright, but every position the
// shorter version had already tombstoned stays tombstoned. The rule is
// commutative and idempotent over repeated deliveries of the same set of
// updates.
func merge(old, next Insert) Insert {
	if int(next.Length()) >= int(old.Length()) {
		for i := 0; i < len(old.Content) && i < len(next.Content); i++ {
			if old.Content[i] == Tombstone {
				next.Content[i] = Tombstone
			}
		}
		return next
	}
	// next is a stale delta: keep old, but fuse any tombstones next
	// already knows about into it.
	for i := 0; i < len(next.Content); i++ {
		if next.Content[i] == Tombstone {
			old.Content[i] = Tombstone
		}
	}
	return old
}
