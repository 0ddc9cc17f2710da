// Package engine wires the board, search and evaluation packages into the public contract the
// UCI dispatcher drives (spec.md §6). It owns the mutable root position, registered callback,
// and the in-flight search, if any.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/board/fen"
	"github.com/me-unsolicited/gochess/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

var version = build.NewVersion(0, 1, 0)

// Options are search configuration defaults, overridable per `go` command (spec.md §6).
type Options struct {
	// Depth limits iterative deepening. Zero means MaxPly.
	Depth int
	// Workers is the Lazy-SMP worker count. Zero means one per logical CPU.
	Workers int
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, workers=%v}", o.Depth, o.Workers)
}

// Option is an engine construction option.
type Option func(*Engine)

// WithOptions sets the default search options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithTable configures the shared transposition table. Defaults to a fresh search.NewTable().
func WithTable(tt search.Table) Option {
	return func(e *Engine) { e.tt = tt }
}

// ResultFunc is invoked once per completed (or halted) search with its final result.
type ResultFunc func(ctx context.Context, result search.Result)

// Engine holds the mutable game state: the root position and the transposition table carried
// across searches. Safe for concurrent use by a single UCI dispatcher goroutine plus one
// in-flight search goroutine.
type Engine struct {
	name, author string
	opts         Options

	mu     sync.Mutex
	root   *board.Position
	tt     search.Table
	active *run
}

type run struct {
	stop *atomic.Bool
	done chan struct{}
}

// New constructs an engine at the standard starting position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{name: name, author: author, tt: search.NewTable()}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.Reset(ctx, fen.Initial); err != nil {
		panic(fmt.Sprintf("engine: invalid initial position: %v", err))
	}

	logw.Infof(ctx, "initialized %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version, reported via UCI `id name`.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

func (e *Engine) Author() string {
	return e.author
}

// Reset replaces the root position, parsed from FEN, and clears the transposition table.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltActiveLocked()

	pos, err := fen.Decode(position)
	if err != nil {
		return fmt.Errorf("invalid position: %w", err)
	}

	e.root = pos
	e.tt.Reset()

	logw.Infof(ctx, "reset to %v", fen.Encode(e.root))
	return nil
}

// Move applies a single legal move to the root position, usually the opponent's reply.
func (e *Engine) Move(ctx context.Context, move board.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, m := range board.LegalMoves(e.root) {
		if m.Equals(move) {
			e.root = e.root.Push(m)
			logw.Debugf(ctx, "applied %v: %v", m, fen.Encode(e.root))
			return nil
		}
	}
	return fmt.Errorf("illegal move: %v", move)
}

// Position returns the root position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fen.Encode(e.root)
}

// Go launches a Lazy-SMP search from the root position and invokes fn once it completes, either
// by exhausting the depth limit or by Stop being called (spec.md §4.9, §6).
func (e *Engine) Go(ctx context.Context, opt Options, fn ResultFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return fmt.Errorf("search already active")
	}

	depth := opt.Depth
	if depth == 0 {
		depth = e.opts.Depth
	}
	workers := opt.Workers
	if workers == 0 {
		workers = e.opts.Workers
	}

	r := &run{stop: atomic.NewBool(false), done: make(chan struct{})}
	e.active = r

	root := e.root
	coord := search.NewCoordinator(e.tt, workers)

	go func() {
		defer close(r.done)

		result, err := coord.Search(ctx, root, depth, r.stop)
		if err != nil {
			logw.Errorf(ctx, "search failed: %v", err)
			return
		}

		e.mu.Lock()
		e.active = nil
		e.mu.Unlock()

		fn(ctx, result)
	}()
	return nil
}

// Stop requests cancellation of the active search, if any. Advisory: the search returns its
// best result so far from the run started by Go (spec.md §5, §7 item 4).
func (e *Engine) Stop(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.haltActiveLocked()
}

func (e *Engine) haltActiveLocked() {
	if e.active != nil {
		e.active.stop.Store(true)
	}
}
