package search

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/eval"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// Result is the coordinator's final report: the best move found for the root position, combined
// statistics across every worker, and the elapsed wall time (spec.md §4.9).
type Result struct {
	Move    board.Move
	Score   eval.Centipawns
	Stats   Stats
	Elapsed time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("bestmove=%v score=%v nodes=%v depth=%v time=%v", r.Move, r.Score, r.Stats.Nodes, r.Stats.MaxDepth, r.Elapsed)
}

// Coordinator spawns one worker per logical CPU, each running iterative deepening independently
// against a shared transposition table, and aggregates their results once every worker halts
// (spec.md §4.9, §5).
type Coordinator struct {
	tt      Table
	workers int
}

// NewCoordinator constructs a coordinator sharing tt across workers workers. A non-positive
// workers defaults to one worker per logical CPU.
func NewCoordinator(tt Table, workers int) *Coordinator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Coordinator{tt: tt, workers: workers}
}

// Search launches the worker fan-out from root, to depthLimit (0 == MaxPly), and blocks until
// every worker halts -- either the depth limit is reached or stop is set. The best move is read
// from the shared table's entry for the root hash once all workers complete.
func (c *Coordinator) Search(ctx context.Context, root *board.Position, depthLimit int, stop *atomic.Bool) (Result, error) {
	start := time.Now()

	var wg sync.WaitGroup
	stats := make([]Stats, c.workers)

	for i := 0; i < c.workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()

			searcher := NewSearcher(c.tt, stop)
			it := NewIterative(searcher, i, depthLimit)

			handle := NewHandle(stop)
			for pv := range it.Run(ctx, root, stop) {
				handle.Record(pv)
			}
			stats[i] = searcher.Stats()
		}()
	}
	wg.Wait()

	var combined Stats
	for _, s := range stats {
		combined.Nodes += s.Nodes
		if s.MaxDepth > combined.MaxDepth {
			combined.MaxDepth = s.MaxDepth
		}
	}

	entry, ok := c.tt.Probe(root.Hash())
	if !ok {
		logw.Errorf(ctx, "no transposition entry for root %v after search", root.Hash())
		return Result{Stats: combined, Elapsed: time.Since(start)}, nil
	}

	return Result{
		Move:    entry.BestMove,
		Score:   entry.Eval,
		Stats:   combined,
		Elapsed: time.Since(start),
	}, nil
}
