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

// Package termui is the one concrete ui.EventSource decapad ships: a
// raw-mode terminal demo. It performs no rasterization — it is a stand-in
// for the real font/event boundary described by pkg/ui, translating a
// handful of escape sequences into ui.Events and printing the buffer text
// back out after each tick.
package termui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"golang.org/x/text/width"

	"github.com/metaplinius/decapad/pkg/ui"
)

// Source implements ui.EventSource over a terminal put into raw mode, so
// keystrokes arrive one byte at a time instead of line-buffered.
type Source struct {
	fd       int
	oldState *term.State
	r        *bufio.Reader
}

// Open puts the terminal backing f into raw mode and returns a Source
// reading from it. Restore must be called before the process exits to
// leave the terminal usable.
func Open(f *os.File) (*Source, error) {
	fd := int(f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("termui: entering raw mode: %w", err)
	}
	return &Source{fd: fd, oldState: old, r: bufio.NewReader(f)}, nil
}

// Restore returns the terminal to its original (cooked) mode.
func (s *Source) Restore() error {
	return term.Restore(s.fd, s.oldState)
}

// Poll reads whatever is waiting in the terminal's input buffer and
// translates at most one keystroke (or escape sequence) into a ui.Event.
// It never blocks: bufio.Reader.ReadByte returns immediately with
// io.EOF-class errors when nothing is buffered, since the underlying fd
// is the one a caller has already arranged to be non-blocking for tick
// polling.
func (s *Source) Poll() (ui.Event, bool) {
	b, err := s.r.ReadByte()
	if err != nil {
		return ui.Event{}, false
	}

	switch b {
	case 0x04: // Ctrl-D
		return ui.Event{Kind: ui.Quit}, true
	case 0x7f, 0x08: // Backspace / Delete
		return ui.Event{Kind: ui.DeleteLetter}, true
	case 0x0d, 0x0a: // Enter
		return ui.Event{Kind: ui.InsertLetter, Rune: '\n'}, true
	case 0x01: // Ctrl-A: Home
		return ui.Event{Kind: ui.CursorMotion, Motion: ui.Home}, true
	case 0x05: // Ctrl-E: End
		return ui.Event{Kind: ui.CursorMotion, Motion: ui.End}, true
	case 0x1b: // escape sequence, arrow keys
		return s.pollEscape()
	}

	if b < 0x20 {
		// Any other control byte is swallowed rather than typed.
		return ui.Event{}, false
	}
	return ui.Event{Kind: ui.InsertLetter, Rune: rune(b)}, true
}

// pollEscape consumes the rest of a CSI arrow-key sequence (ESC [ A/B/C/D).
// Anything it doesn't recognize is dropped.
func (s *Source) pollEscape() (ui.Event, bool) {
	b1, err := s.r.ReadByte()
	if err != nil || b1 != '[' {
		return ui.Event{}, false
	}
	b2, err := s.r.ReadByte()
	if err != nil {
		return ui.Event{}, false
	}
	switch b2 {
	case 'D':
		return ui.Event{Kind: ui.CursorMotion, Motion: ui.Left}, true
	case 'C':
		return ui.Event{Kind: ui.CursorMotion, Motion: ui.Right}, true
	case 'H':
		return ui.Event{Kind: ui.CursorMotion, Motion: ui.Home}, true
	case 'F':
		return ui.Event{Kind: ui.CursorMotion, Motion: ui.End}, true
	}
	return ui.Event{}, false
}

// Draw writes text to w, repositioning the cursor to column 0 first. The
// east-asian width table is consulted only to compute the terminal column
// of the cursor from the widths of the runes before it, purely a display
// nicety; it never changes what text means or how it converges.
func Draw(w io.Writer, text []rune, cursor int) error {
	if _, err := fmt.Fprint(w, "\r\x1b[2K"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, string(text)); err != nil {
		return err
	}
	col := displayColumn(text, cursor)
	_, err := fmt.Fprintf(w, "\r\x1b[%dC", col)
	return err
}

// displayColumn sums the terminal column width of every rune before
// position cursor, treating wide (fullwidth/wide) runes as occupying two
// columns and everything else as one.
func displayColumn(text []rune, cursor int) int {
	col := 0
	for i := 0; i < cursor && i < len(text); i++ {
		switch width.LookupRune(text[i]).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			col += 2
		default:
			col++
		}
	}
	return col
}
