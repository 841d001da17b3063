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

import (
	"errors"
	"io/fs"
	"os"

	"github.com/metaplinius/decapad/internal/pipeio"
	"github.com/metaplinius/decapad/pkg/codec"
)

// Paths names the two well-known named pipes: Channel1 carries
// host→joiner traffic, Channel2 carries joiner→host traffic.
type Paths struct {
	Channel1 string
	Channel2 string
}

// DefaultPaths matches the example paths in the external interfaces
// section of the spec.
var DefaultPaths = Paths{
	Channel1: "/tmp/decapad_channel_1",
	Channel2: "/tmp/decapad_channel_2",
}

// DefaultPipeMode is the permissive mode the spec calls for: both peers
// must be able to open either pipe regardless of which one created it.
const DefaultPipeMode = 0o777

// Channel is this peer's duplex byte connection: a read side and
// (eventually) a write side, each backed by one of the two named pipes.
// A host's Out starts nil — it is opened lazily once the host's
// transport loop dispatches the joiner's "inrq" frame, per the frame
// dispatch table.
type Channel struct {
	In  *os.File
	Out *os.File

	paths Paths
	mode  os.FileMode
}

// OpenOutbound opens this peer's write side of Channel1 (host→joiner).
// It is a no-op if Out is already open. The open blocks until the joiner
// has opened its end for reading, which the joiner does as the last step
// of its bootstrap, right after sending "inrq".
func (c *Channel) OpenOutbound() error {
	if c.Out != nil {
		return nil
	}
	f, err := os.OpenFile(c.paths.Channel1, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	c.Out = f
	return nil
}

// Close releases both pipe ends. Errors from either close are reported,
// preferring the first.
func (c *Channel) Close() error {
	var first error
	if c.In != nil {
		first = c.In.Close()
	}
	if c.Out != nil {
		if err := c.Out.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Bootstrap decides this peer's role and establishes its half of the
// duplex channel, per the session/ID allocation component: attempting to
// create Channel2 either succeeds (this peer is the host) or fails with
// "already exists" (this peer is the joiner).
func Bootstrap(paths Paths, mode os.FileMode) (*State, *Channel, error) {
	err := pipeio.MkFIFO(paths.Channel2, uint32(mode))
	switch {
	case err == nil:
		return bootstrapHost(paths, mode)
	case errors.Is(err, fs.ErrExist):
		return bootstrapJoiner(paths, mode)
	default:
		return nil, nil, err
	}
}

// bootstrapHost opens Channel2 for reading. This blocks until the
// joiner opens its write end, which happens right after the joiner
// creates Channel1 — the host's outbound pipe isn't opened here; that
// happens when the transport loop dispatches the joiner's "inrq".
func bootstrapHost(paths Paths, mode os.FileMode) (*State, *Channel, error) {
	in, err := os.OpenFile(paths.Channel2, os.O_RDONLY, 0)
	if err != nil {
		return nil, nil, err
	}
	return NewHostState(), &Channel{In: in, paths: paths, mode: mode}, nil
}

// bootstrapJoiner creates Channel1, opens Channel2 for writing, sends
// "inrq", then blocks opening Channel1 for reading until the host
// dispatches that request and opens its own write end.
func bootstrapJoiner(paths Paths, mode os.FileMode) (*State, *Channel, error) {
	if err := pipeio.MkFIFO(paths.Channel1, uint32(mode)); err != nil && !errors.Is(err, fs.ErrExist) {
		return nil, nil, err
	}
	out, err := os.OpenFile(paths.Channel2, os.O_WRONLY, 0)
	if err != nil {
		return nil, nil, err
	}
	if _, err := out.Write(codec.EncodeFrame(codec.TagInitRequest, nil)); err != nil {
		out.Close()
		return nil, nil, err
	}
	in, err := os.OpenFile(paths.Channel1, os.O_RDONLY, 0)
	if err != nil {
		out.Close()
		return nil, nil, err
	}
	return NewJoinerState(), &Channel{In: in, Out: out, paths: paths, mode: mode}, nil
}

// RemovePipes removes whichever named pipe(s) this peer created, per the
// clean-shutdown contract: each peer removes the pipe it created.
func RemovePipes(role Role, paths Paths) {
	if role == Host {
		os.Remove(paths.Channel2)
		return
	}
	os.Remove(paths.Channel1)
}
