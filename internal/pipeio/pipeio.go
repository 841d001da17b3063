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

// Package pipeio creates the named pipes decapad's two peers use as
// their duplex byte channel. The core only needs the channel to be a
// reliable FIFO byte stream in each direction; how the OS provides that
// is this package's concern alone.
package pipeio

import "errors"

// ErrNotSupported is returned by MkFIFO on platforms without a FIFO
// special file type.
var ErrNotSupported = errors.New("pipeio: named pipes not supported on this platform")

// MkFIFO creates a FIFO special file at path with the given mode. It
// returns ErrNotSupported on platforms that don't have one.
func MkFIFO(path string, mode uint32) error {
	return mkfifo(path, mode)
}
