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

package session

import "testing"

func TestIDRangeAllocSequential(t *testing.T) {
	r := NewIDRange(10, 12)
	for _, want := range []uint32{10, 11, 12} {
		got, err := r.Alloc()
		if err != nil {
			t.Fatalf("Alloc: %v", err)
		}
		if got != want {
			t.Fatalf("Alloc() = %d, want %d", got, want)
		}
	}
	if _, err := r.Alloc(); err != ErrIDRangeExhausted {
		t.Fatalf("Alloc past end: err = %v, want ErrIDRangeExhausted", err)
	}
}

func TestHostStateMatchesDataModel(t *testing.T) {
	s := NewHostState()
	if s.Role != Host || s.AuthorID != HostAuthorID {
		t.Fatalf("host state = %+v", s)
	}
	if s.IDs.Start != HostIDStart || s.IDs.End != HostIDEnd {
		t.Fatalf("host range = [%d,%d], want [%d,%d]", s.IDs.Start, s.IDs.End, HostIDStart, HostIDEnd)
	}
	if !s.InitAcknowledged {
		t.Fatalf("host should never wait on its own init ack")
	}
}

func TestJoinerApplyInit(t *testing.T) {
	s := NewJoinerState()
	if s.InitAcknowledged {
		t.Fatalf("joiner should start unacknowledged")
	}
	s.ApplyInit(JoinerAuthorID, JoinerIDStart, JoinerIDEnd)
	if s.AuthorID != JoinerAuthorID {
		t.Fatalf("AuthorID = %d, want %d", s.AuthorID, JoinerAuthorID)
	}
	id, err := s.IDs.Alloc()
	if err != nil || id != JoinerIDStart {
		t.Fatalf("first joiner id = %d, %v; want %d, nil", id, err, JoinerIDStart)
	}
}
