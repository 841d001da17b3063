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

package transport

import "time"

// ResendInterval is how often the resend timer fires.
const ResendInterval = 10 * time.Second

// ResendQueue tracks the self_ids of outbound inserts this peer has sent
// but not yet seen acknowledged. Acking blanks the slot in place (zeroes
// it) rather than compacting the slice, so iteration order is otherwise
// stable; blanked slots are simply skipped. Blanked slots are not reused:
// every Enqueue of a new self_id appends a slot, so the backing slice
// grows by one per distinct self_id ever enqueued.
type ResendQueue struct {
	ids      []uint32
	index    map[uint32]int // self_id -> slot in ids, only for live entries
	lastFire time.Time
}

// NewResendQueue returns an empty queue.
func NewResendQueue() *ResendQueue {
	return &ResendQueue{index: make(map[uint32]int)}
}

// Enqueue records selfID as awaiting acknowledgment, unless it is already
// enqueued.
func (q *ResendQueue) Enqueue(selfID uint32) {
	if selfID == 0 {
		return
	}
	if _, ok := q.index[selfID]; ok {
		return
	}
	q.index[selfID] = len(q.ids)
	q.ids = append(q.ids, selfID)
}

// Ack blanks the slot for selfID: the slot stays in the backing slice as
// a zero entry that resend iteration skips and Enqueue does not reuse.
func (q *ResendQueue) Ack(selfID uint32) {
	i, ok := q.index[selfID]
	if !ok {
		return
	}
	q.ids[i] = 0
	delete(q.index, selfID)
}

// Pending returns every self_id still awaiting acknowledgment, in
// enqueue order, skipping blanked slots.
func (q *ResendQueue) Pending() []uint32 {
	out := make([]uint32, 0, len(q.index))
	for _, id := range q.ids {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// Due reports whether the resend timer has elapsed as of now and, if so,
// invokes fire and resets the timer. The first call always fires,
// matching a timer armed at queue creation.
func (q *ResendQueue) Due(now time.Time, fire func()) {
	if q.lastFire.IsZero() || now.Sub(q.lastFire) >= ResendInterval {
		q.lastFire = now
		fire()
	}
}
