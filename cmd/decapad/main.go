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

// Command decapad is the terminal demo of the two-peer collaborative
// editor: it bootstraps the named-pipe session, wires the transport loop
// to the edit mapper, and drives one tick every TickInterval until the
// user quits or the process is signaled.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/metaplinius/decapad/pkg/config"
	"github.com/metaplinius/decapad/pkg/crdt"
	"github.com/metaplinius/decapad/pkg/editor"
	"github.com/metaplinius/decapad/pkg/osutil"
	"github.com/metaplinius/decapad/pkg/pad"
	"github.com/metaplinius/decapad/pkg/session"
	"github.com/metaplinius/decapad/pkg/termui"
	"github.com/metaplinius/decapad/pkg/transport"
	"github.com/metaplinius/decapad/pkg/ui"
)

var configPath = flag.String("config", osutil.DefaultConfigPath(), "path to decapad's TOML config file")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("decapad: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err // config errors are fatal at boot
	}

	if _, err := (ui.FileFontLoader{}).Load(cfg.FontPath); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	paths := session.Paths{Channel1: cfg.PipeHostToJoiner, Channel2: cfg.PipeJoinerToHost}
	state, ch, err := session.Bootstrap(paths, session.DefaultPipeMode)
	if err != nil {
		return fmt.Errorf("session bootstrap: %w", err)
	}
	defer ch.Close()
	defer session.RemovePipes(state.Role, paths)

	padName := cfg.Pad
	if padName == "" {
		padName = suggestPadName()
	}
	log.Printf("decapad: role=%s author=%d pad=%q", state.Role, state.AuthorID, padName)

	store := crdt.NewStore()
	if state.Role == session.Host {
		if recs, err := pad.Load(cfg.PadDir, padName); err == nil {
			for _, rec := range recs {
				store.Upsert(rec)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("decapad: pad load failed, starting empty: %v", err)
		}
	}

	ed := editor.New(store, state.IDs, state.AuthorID)
	ed.Rerender()

	loop := transport.NewLoop(ch, state, store, log.Default())
	loop.OnStoreChanged = ed.Rerender

	src, err := termui.Open(os.Stdin)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer src.Restore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchSignals(gctx, cancel)
	})
	g.Go(func() error {
		return tickLoop(gctx, cfg, ed, loop, src)
	})

	if err := g.Wait(); err != nil && err != errQuit && !errors.Is(err, context.Canceled) {
		return err
	}

	if state.Role == session.Host {
		if err := pad.Save(cfg.PadDir, padName, store.All()); err != nil {
			log.Printf("decapad: pad save failed: %v", err)
		}
	}
	return nil
}

// errQuit is returned by tickLoop on a clean user-requested exit,
// distinguishing it from a real failure for run's error handling above.
var errQuit = fmt.Errorf("decapad: quit requested")

// watchSignals blocks until SIGINT/SIGTERM arrives or ctx is canceled by
// the tick loop's own exit. On a signal it calls cancel so the tick
// loop's next per-iteration check unwinds it; once ctx is done it simply
// returns.
func watchSignals(ctx context.Context, cancel context.CancelFunc) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		cancel()
		return nil
	case <-ctx.Done():
		return nil
	}
}

// tickLoop runs the single-threaded cooperative core: drain pending UI
// events, run one transport tick, redraw, sleep.
func tickLoop(ctx context.Context, cfg config.Config, ed *editor.Editor, loop *transport.Loop, src *termui.Source) error {
	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		for {
			ev, ok := src.Poll()
			if !ok {
				break
			}
			if quit := applyEvent(ed, loop, ev); quit {
				return errQuit
			}
		}

		if err := loop.Tick(); err != nil {
			return err
		}

		if err := termui.Draw(os.Stdout, ed.Text(), ed.Cursor); err != nil {
			return err
		}
	}
}

// applyEvent maps one ui.Event onto the edit mapper and transport, and
// reports whether the user asked to quit.
func applyEvent(ed *editor.Editor, loop *transport.Loop, ev ui.Event) bool {
	switch ev.Kind {
	case ui.Quit:
		return true
	case ui.InsertLetter:
		if err := ed.InsertLetter(ev.Rune); err != nil {
			log.Fatalf("decapad: %v", err) // id range exhausted is fatal
		}
		sendActiveInsert(ed, loop)
	case ui.DeleteLetter:
		ed.DeleteLetter()
		sendActiveInsert(ed, loop)
	case ui.CursorMotion:
		applyMotion(ed, ev.Motion)
	}
	return false
}

func applyMotion(ed *editor.Editor, m ui.Motion) {
	switch m {
	case ui.Left:
		ed.MoveLeft()
	case ui.Right:
		ed.MoveRight()
	case ui.Home:
		ed.Home()
	case ui.End:
		ed.End()
	case ui.WordLeft:
		ed.WordLeft()
	case ui.WordRight:
		ed.WordRight()
	}
}

// sendActiveInsert pushes the insert record the edit mapper just created
// or mutated out over the wire, whether that was an insert (tracked via
// ActiveInsertID too, for packing) or a delete (which clears
// ActiveInsertID but still touched a record).
func sendActiveInsert(ed *editor.Editor, loop *transport.Loop) {
	id := ed.LastTouched
	if id == 0 {
		return
	}
	ins, ok := ed.Store.Find(id)
	if !ok {
		return
	}
	if err := loop.EnqueueOutbound(ins); err != nil {
		log.Printf("decapad: send failed: %v", err)
	}
}

// suggestPadName generates a short, unique pad name for when the user
// leaves it unset, in place of the interactive login screen's free-text
// field (out of scope — thin UI glue per the purpose and scope section).
func suggestPadName() string {
	return "pad-" + uuid.NewString()[:8]
}
