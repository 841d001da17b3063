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

import (
	"errors"
	"os"
	"time"

	"github.com/metaplinius/decapad/pkg/codec"
)

// FrameReader turns a raw pipe byte stream into whole frames, tolerating
// the fact that a FIFO may deliver a frame in arbitrarily small pieces
// across several tick-sized reads. It accumulates undecoded bytes between
// calls so a partial length prefix or a partial body is simply completed
// next time.
type FrameReader struct {
	f   *os.File
	buf []byte
}

// NewFrameReader wraps f, the read side of a channel.
func NewFrameReader(f *os.File) *FrameReader {
	return &FrameReader{f: f}
}

// TryReadFrame attempts to read and decode exactly one frame, spending at
// most budget waiting for bytes to arrive. A timeout before a complete
// frame has accumulated is not an error: it is reported as (Frame{},
// false, nil), "no frame this tick," per the transport loop's
// non-blocking-read contract — the next tick's call picks up where this
// one left off. A frame that fails its CRC is reported as
// codec.ErrMalformed so the caller can drop it and keep ticking; any
// other I/O error (including the peer closing its end) is fatal and
// returned as-is.
func (r *FrameReader) TryReadFrame(budget time.Duration) (codec.Frame, bool, error) {
	if err := r.f.SetReadDeadline(time.Now().Add(budget)); err != nil {
		return codec.Frame{}, false, err
	}

	for len(r.buf) < codec.IntSize {
		if done, err := r.fill(); !done {
			return codec.Frame{}, false, err
		}
	}
	bodyLen := int(codec.DecodeUint32(r.buf[:codec.IntSize]))
	need := codec.IntSize + bodyLen

	for len(r.buf) < need {
		if done, err := r.fill(); !done {
			return codec.Frame{}, false, err
		}
	}

	body := r.buf[codec.IntSize:need]
	frame, err := codec.DecodeFrameBody(body)
	r.buf = append([]byte(nil), r.buf[need:]...)
	if err != nil {
		return codec.Frame{}, false, err
	}
	return frame, true, nil
}

// fill reads whatever is currently available into buf. It returns (true,
// nil) once at least one byte was read, or (false, err) where err is nil
// for an ordinary deadline timeout (the normal "nothing arrived this
// tick" case) and non-nil for any other read failure.
func (r *FrameReader) fill() (bool, error) {
	tmp := make([]byte, 4096)
	n, err := r.f.Read(tmp)
	if n > 0 {
		r.buf = append(r.buf, tmp[:n]...)
	}
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return false, nil
	}
	return false, err
}
