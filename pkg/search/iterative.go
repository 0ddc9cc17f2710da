package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/eval"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// PV is the principal variation reported at the end of one completed depth (spec.md §4.9).
type PV struct {
	Depth int
	Move  board.Move
	Score eval.Centipawns
	Stats Stats
	Time  time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v move=%v score=%v nodes=%v time=%v", p.Depth, p.Move, p.Score, p.Stats.Nodes, p.Time)
}

// Iterative drives one worker's depths 1..=D, re-running the full negamax search at each depth
// on the same root position. The TT accumulated from shallower depths supplies the PV-move hint
// and exact-hit short-circuits that make deeper searches cheaper than a cold dive (spec.md §4.9).
type Iterative struct {
	searcher    *Searcher
	workerIndex int
	depthLimit  int // 0 == no limit, bounded by MaxPly.
}

// MaxPly is the hard ceiling on iterative deepening when no depth limit is configured.
const MaxPly = 64

// NewIterative constructs an iterative-deepening driver for one Lazy-SMP worker.
func NewIterative(searcher *Searcher, workerIndex, depthLimit int) *Iterative {
	return &Iterative{searcher: searcher, workerIndex: workerIndex, depthLimit: depthLimit}
}

// Run searches depths 1..=D, emitting one PV per completed depth on the returned channel, which
// is closed when the search is halted or the depth limit is reached.
func (it *Iterative) Run(ctx context.Context, root *board.Position, stop *atomic.Bool) <-chan PV {
	out := make(chan PV, 1)

	go func() {
		defer close(out)

		limit := it.depthLimit
		if limit == 0 || limit > MaxPly {
			limit = MaxPly
		}

		for depth := 1; depth <= limit; depth++ {
			if stop.Load() {
				return
			}

			start := time.Now()
			score, move, err := it.searcher.Search(ctx, root, depth, it.workerIndex)
			if err != nil {
				if err == ErrHalted {
					return
				}
				logw.Errorf(ctx, "search failed at depth=%v: %v", depth, err)
				return
			}

			pv := PV{Depth: depth, Move: move, Score: score, Stats: it.searcher.Stats(), Time: time.Since(start)}
			logw.Debugf(ctx, "worker %v: %v", it.workerIndex, pv)

			out <- pv
		}
	}()

	return out
}

// Handle keeps the deepest PV a worker has completed and shares that search's stop flag, so
// Halt stops every worker polling the same flag.
type Handle struct {
	stop *atomic.Bool
	mu   sync.Mutex
	last PV
}

// NewHandle constructs a Handle sharing the given stop flag.
func NewHandle(stop *atomic.Bool) *Handle {
	return &Handle{stop: stop}
}

// Record stores the most recently completed PV, overwriting any prior one at a shallower depth.
func (h *Handle) Record(pv PV) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if pv.Depth >= h.last.Depth {
		h.last = pv
	}
}

// Halt requests cancellation and returns the best PV recorded so far. Idempotent.
func (h *Handle) Halt() PV {
	h.stop.Store(true)

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
