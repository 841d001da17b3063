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

// Package transport drives the per-tick network half of the core loop:
// reading at most one inbound frame, dispatching it by tag, and firing
// the resend timer.
package transport

import (
	"errors"
	"log"
	"time"

	"github.com/metaplinius/decapad/pkg/codec"
	"github.com/metaplinius/decapad/pkg/crdt"
	"github.com/metaplinius/decapad/pkg/session"
)

// TickInterval is the reference core loop interval. cmd/decapad does not
// read it; its tick loop runs at the config's tick_interval_ms.
const TickInterval = 30 * time.Millisecond

// readBudget bounds how long TryReadFrame blocks waiting for bytes
// before a tick gives up and calls it "no frame this tick."
const readBudget = 5 * time.Millisecond

// Loop owns one peer's side of the wire protocol: the channel, the
// session state, the insert store it mutates, and the resend queue.
type Loop struct {
	Channel *session.Channel
	State   *session.State
	Store   *crdt.Store

	reader *FrameReader
	resend *ResendQueue
	logger *log.Logger

	// hostInitPending tracks, host-side only, whether the Init this peer
	// sent has been acknowledged yet. It is distinct from
	// State.InitAcknowledged, which is the joiner-side (and always-true
	// host-side) flag for "my own range is known" — a host always knows
	// its own range, but still needs to know whether to keep resending
	// Init to a joiner that may not have received it.
	hostInitPending bool

	// OnStoreChanged, if set, is called after any tick that upserted an
	// insert into Store — the hook the UI-facing buffer uses to trigger
	// Editor.Rerender.
	OnStoreChanged func()
}

// NewLoop returns a Loop ready to tick, reading from ch.In and writing to
// ch.Out (once opened).
func NewLoop(ch *session.Channel, state *session.State, store *crdt.Store, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{
		Channel: ch,
		State:   state,
		Store:   store,
		reader:  NewFrameReader(ch.In),
		resend:  NewResendQueue(),
		logger:  logger,
	}
}

// EnqueueOutbound sends ins as a "data" frame and enqueues it for resend
// until acknowledged. Called by the edit mapper's caller after every
// local mutation.
func (l *Loop) EnqueueOutbound(ins crdt.Insert) error {
	l.resend.Enqueue(ins.SelfID)
	return l.sendData(ins)
}

// Tick runs one iteration of the transport loop's network half: it reads
// at most one inbound frame (if one is ready within readBudget),
// dispatches it, and fires the resend timer if it is due.
func (l *Loop) Tick() error {
	frame, ok, err := l.reader.TryReadFrame(readBudget)
	switch {
	case err != nil && errors.Is(err, codec.ErrMalformed):
		l.logger.Printf("transport: dropping malformed frame")
	case err != nil:
		return err
	case ok:
		if err := l.dispatch(frame); err != nil {
			return err
		}
	}
	l.resend.Due(time.Now(), l.fireResend)
	return nil
}

func (l *Loop) dispatch(f codec.Frame) error {
	switch f.Tag {
	case codec.TagInitRequest:
		return l.handleInitRequest()
	case codec.TagInit:
		return l.handleInit(f.Payload)
	case codec.TagAckInit:
		l.State.InitAcknowledged = true
		l.hostInitPending = false
		return nil
	case codec.TagData:
		return l.handleData(f.Payload)
	case codec.TagAck:
		return l.handleAck(f.Payload)
	default:
		l.logger.Printf("transport: unknown tag %q, dropping", f.Tag)
		return nil
	}
}

// handleInitRequest is the host's response to a joiner's "inrq": open the
// outbound pipe (this is where the host's one suspension point beyond
// bootstrap lives) and hand over the joiner's fixed reference ID range.
func (l *Loop) handleInitRequest() error {
	if err := l.Channel.OpenOutbound(); err != nil {
		return err
	}
	l.hostInitPending = true
	payload := codec.EncodeInitPayload(session.JoinerIDStart, session.JoinerIDEnd)
	_, err := l.Channel.Out.Write(codec.EncodeFrame(codec.TagInit, payload))
	return err
}

// handleInit is the joiner's response to the host's "Init": adopt the
// assigned range and author ID (always the fixed joiner author, since
// the wire payload itself carries only the ID range), then acknowledge.
func (l *Loop) handleInit(payload []byte) error {
	idStart, idEnd, err := codec.DecodeInitPayload(payload)
	if err != nil {
		l.logger.Printf("transport: dropping malformed Init")
		return nil
	}
	l.State.ApplyInit(session.JoinerAuthorID, idStart, idEnd)
	l.State.InitAcknowledged = true
	_, err = l.Channel.Out.Write(codec.EncodeFrame(codec.TagAckInit, nil))
	return err
}

// handleData upserts the delivered insert (idempotent by construction)
// and acknowledges it, regardless of whether the upsert changed
// anything: the sender only stops resending once it sees the ack.
func (l *Loop) handleData(payload []byte) error {
	ins, _, err := codec.DecodeInsertPayload(payload)
	if err != nil {
		l.logger.Printf("transport: dropping malformed data frame")
		return nil
	}
	l.Store.Upsert(ins)
	if l.OnStoreChanged != nil {
		l.OnStoreChanged()
	}
	_, err = l.Channel.Out.Write(codec.EncodeFrame(codec.TagAck, codec.EncodeAckPayload(ins.SelfID)))
	return err
}

func (l *Loop) handleAck(payload []byte) error {
	selfID, err := codec.DecodeAckPayload(payload)
	if err != nil {
		l.logger.Printf("transport: dropping malformed ack")
		return nil
	}
	l.resend.Ack(selfID)
	return nil
}

func (l *Loop) sendData(ins crdt.Insert) error {
	if l.Channel.Out == nil {
		// The host hasn't opened its outbound pipe yet (no joiner has
		// attached); the insert is already durable in Store and the
		// resend timer will flush it once the pipe opens.
		return nil
	}
	_, err := l.Channel.Out.Write(codec.EncodeFrame(codec.TagData, codec.EncodeInsertPayload(ins)))
	return err
}

// fireResend retransmits every still-unacknowledged insert, using the
// current authoritative copy in Store rather than whatever was enqueued
// originally, and re-sends the still-unacknowledged half of the init
// handshake: "inrq" if the joiner hasn't heard back, "Init" if the host
// hasn't seen an "acki" yet.
func (l *Loop) fireResend() {
	for _, id := range l.resend.Pending() {
		ins, ok := l.Store.Find(id)
		if !ok {
			continue
		}
		if err := l.sendData(ins); err != nil {
			l.logger.Printf("transport: resend of %d failed: %v", id, err)
		}
	}
	switch l.State.Role {
	case session.Joiner:
		if !l.State.InitAcknowledged && l.Channel.Out != nil {
			if _, err := l.Channel.Out.Write(codec.EncodeFrame(codec.TagInitRequest, nil)); err != nil {
				l.logger.Printf("transport: resend of inrq failed: %v", err)
			}
		}
	case session.Host:
		if l.hostInitPending && l.Channel.Out != nil {
			payload := codec.EncodeInitPayload(session.JoinerIDStart, session.JoinerIDEnd)
			if _, err := l.Channel.Out.Write(codec.EncodeFrame(codec.TagInit, payload)); err != nil {
				l.logger.Printf("transport: resend of Init failed: %v", err)
			}
		}
	}
}
