// Package uci is a thin dispatcher translating the Universal Chess Interface's text protocol
// into calls against the engine's public contract (spec.md §6). The dispatcher itself carries no
// search logic; it is "an external collaborator" per spec.md §1.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/board/fen"
	"github.com/me-unsolicited/gochess/pkg/engine"
	"github.com/me-unsolicited/gochess/pkg/search"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Driver reads UCI command lines from in and writes response lines to the returned channel.
type Driver struct {
	e   *engine.Engine
	out chan<- string

	active atomic.Bool

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver starts the dispatch loop in a background goroutine.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{e: e, out: out, quit: make(chan struct{})}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "uciok"

	for line := range in {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "isready":
			d.out <- "readyok"

		case "debug", "setoption", "register", "ponderhit":
			// Dynamic option setting, registration, and ponderhit are not required by the
			// search core (spec.md §9); acknowledged without effect.

		case "ucinewgame":
			d.stopActive(ctx)
			if err := d.e.Reset(ctx, fen.Initial); err != nil {
				logw.Errorf(ctx, "ucinewgame reset failed: %v", err)
			}

		case "position":
			d.stopActive(ctx)
			if err := d.handlePosition(ctx, args); err != nil {
				logw.Errorf(ctx, "invalid position %q: %v", line, err)
			}

		case "go":
			d.handleGo(ctx, args)

		case "stop":
			d.stopActive(ctx)

		case "quit":
			return

		default:
			d.out <- fmt.Sprintf("info string unknown command: %v", cmd)
		}
	}
	logw.Infof(ctx, "input stream closed")
}

func (d *Driver) handlePosition(ctx context.Context, args []string) error {
	position := fen.Initial
	rest := ""
	switch {
	case len(args) >= 1 && args[0] == "startpos":
		rest = strings.Join(args[1:], " ")
	case len(args) >= 7 && args[0] == "fen":
		position = strings.Join(args[1:7], " ")
		rest = strings.Join(args[7:], " ")
	default:
		return fmt.Errorf("malformed position command")
	}

	if err := d.e.Reset(ctx, position); err != nil {
		return err
	}
	return d.applyMoves(ctx, rest)
}

func (d *Driver) applyMoves(ctx context.Context, rest string) error {
	fields := strings.Fields(rest)
	applying := false
	for _, f := range fields {
		if f == "moves" {
			applying = true
			continue
		}
		if !applying {
			continue
		}
		m, err := board.ParseMove(f)
		if err != nil {
			return fmt.Errorf("invalid move %q: %w", f, err)
		}
		if err := d.e.Move(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	var opt engine.Options
	var movetime time.Duration
	infinite := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth", "movetime", "wtime", "btime", "winc", "binc", "movestogo", "nodes", "mate":
			name := args[i]
			i++
			if i >= len(args) {
				logw.Errorf(ctx, "go %v: missing argument", name)
				return
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				logw.Errorf(ctx, "go %v: invalid argument %q", name, args[i])
				return
			}
			switch name {
			case "depth":
				opt.Depth = n
			case "movetime":
				movetime = time.Duration(n) * time.Millisecond
			}
			// wtime/btime/winc/binc/movestogo/nodes/mate: clock-based time management and node
			// limits are outside the search core's scope (spec.md §1); accepted but unused.

		case "infinite":
			infinite = true

		case "ponder", "searchmoves":
			// Accepted without effect; root-move restriction and pondering are not required.
		}
	}

	d.active.Store(true)
	err := d.e.Go(ctx, opt, func(ctx context.Context, result search.Result) {
		d.active.Store(false)
		d.out <- fmt.Sprintf("info depth %v score cp %v nodes %v time %v", result.Stats.MaxDepth, result.Score, result.Stats.Nodes, result.Elapsed.Milliseconds())
		d.out <- fmt.Sprintf("bestmove %v", printMove(result.Move))
	})
	if err != nil {
		logw.Errorf(ctx, "go: %v", err)
		d.active.Store(false)
		return
	}

	if !infinite && movetime > 0 {
		go func() {
			select {
			case <-time.After(movetime):
				d.e.Stop(ctx)
			case <-d.quit:
			}
		}()
	}
}

func (d *Driver) stopActive(ctx context.Context) {
	if d.active.Load() {
		d.e.Stop(ctx)
	}
}

func printMove(m board.Move) string {
	if m.IsNull() {
		return "0000"
	}
	return m.String()
}
