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

// Package session decides whether this peer is the host or the joiner
// of a two-author decapad session, and tracks the inclusive SelfID range
// each peer allocates new inserts from.
package session

import "errors"

// Role distinguishes the peer that created the named pipes (Host) from
// the one that attached to them (Joiner).
type Role int

const (
	Host Role = iota
	Joiner
)

func (r Role) String() string {
	if r == Host {
		return "host"
	}
	return "joiner"
}

// Reference ID ranges from the data model: exactly two peers are
// supported, so the ranges are fixed constants rather than the output of
// a general N-peer allocation protocol.
const (
	HostAuthorID    = 1
	HostIDStart     = 1
	HostIDEnd       = 1024
	JoinerAuthorID  = 2
	JoinerIDStart   = 1025
	JoinerIDEnd     = 20048
)

// ErrIDRangeExhausted is returned by IDRange.Alloc once every ID in the
// range has been handed out. It is a fatal condition for the peer: there
// is no recovery, generalizing to more IDs requires a wider range.
var ErrIDRangeExhausted = errors.New("session: id range exhausted")

// IDRange is a peer's closed interval of SelfIDs, [Start, End], both
// ends inclusive. Next tracks the next value Alloc will
// hand out.
type IDRange struct {
	Start, End uint32
	Next       uint32
}

// NewIDRange returns a range covering [start, end] with allocation
// starting at start.
func NewIDRange(start, end uint32) *IDRange {
	return &IDRange{Start: start, End: end, Next: start}
}

// Alloc hands out the next unused SelfID in the range.
func (r *IDRange) Alloc() (uint32, error) {
	if r.Next > r.End {
		return 0, ErrIDRangeExhausted
	}
	id := r.Next
	r.Next++
	return id, nil
}

// State is the negotiated session identity: this peer's role, author
// ID, allocation range, and whether its Init handshake has completed.
type State struct {
	Role             Role
	AuthorID         uint32
	IDs              *IDRange
	InitAcknowledged bool
}

// NewHostState returns the state a host peer starts with: it owns the
// fixed [HostIDStart, HostIDEnd] range and doesn't need to wait on an
// Init handshake — it issues Init, it doesn't receive one.
func NewHostState() *State {
	return &State{
		Role:             Host,
		AuthorID:         HostAuthorID,
		IDs:              NewIDRange(HostIDStart, HostIDEnd),
		InitAcknowledged: true,
	}
}

// NewJoinerState returns the state a joiner peer starts with before its
// Init handshake completes: the range is unknown (zero value) until an
// "Init" frame arrives and ApplyInit is called.
func NewJoinerState() *State {
	return &State{
		Role:             Joiner,
		InitAcknowledged: false,
	}
}

// ApplyInit installs the author ID and SelfID range a host's "Init"
// frame assigned to this (joiner) peer.
func (s *State) ApplyInit(authorID, idStart, idEnd uint32) {
	s.AuthorID = authorID
	s.IDs = NewIDRange(idStart, idEnd)
}
