// Package search implements iterative-deepening negamax with alpha-beta pruning, quiescence
// extension, transposition-table probing and Lazy-SMP worker fan-out (spec.md §4.8, §4.9).
package search

import (
	"context"
	"errors"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"go.uber.org/atomic"
)

// ErrHalted indicates the search was cancelled before it could complete (spec.md §7 item 4: not
// an error condition in the UCI sense, but propagated internally so the caller returns the best
// result found so far).
var ErrHalted = errors.New("search halted")

// MinScore and MaxScore bound the evaluation range; mate scores are reported as
// MinScore+fullmove (preferring shorter mates) and never escape this range (spec.md §4.8).
const (
	MinScore eval.Centipawns = -1000000
	MaxScore eval.Centipawns = 1000000
)

// Stats accumulates search statistics for one worker (spec.md §4.9).
type Stats struct {
	Nodes    uint64
	MaxDepth int
}

// Searcher runs negamax with alpha-beta pruning and quiescence over a shared transposition
// table. One Searcher instance is created per Lazy-SMP worker; the Table, and only the Table, is
// shared (spec.md §4.9, §5).
type Searcher struct {
	tt    Table
	stop  *atomic.Bool // advisory cancellation, polled at the top of every node (spec.md §5).
	stats Stats
}

// NewSearcher constructs a worker-local searcher sharing the given table and stop flag.
func NewSearcher(tt Table, stop *atomic.Bool) *Searcher {
	return &Searcher{tt: tt, stop: stop}
}

// Stats returns the accumulated statistics for this searcher.
func (s *Searcher) Stats() Stats {
	return s.stats
}

func (s *Searcher) halted(ctx context.Context) bool {
	return s.stop.Load() || contextx.IsCancelled(ctx)
}

// Search runs the full negamax search at the given depth from pos, returning the best move and
// its score from the perspective of the side to move. workerIndex selects the Lazy-SMP root
// permutation; worker 0 explores the natural move order.
func (s *Searcher) Search(ctx context.Context, pos *board.Position, depth, workerIndex int) (eval.Centipawns, board.Move, error) {
	score, move, err := s.negamax(ctx, pos, depth, MinScore-1, MaxScore+1, true, workerIndex)
	if err != nil {
		return 0, board.Move{}, err
	}
	return score, move, nil
}

func signOf(c board.Color) eval.Centipawns {
	if c == board.White {
		return 1
	}
	return -1
}

// negamax implements spec.md §4.8's node protocol exactly, in order.
func (s *Searcher) negamax(ctx context.Context, pos *board.Position, depth int, alpha, beta eval.Centipawns, isRoot bool, workerIndex int) (eval.Centipawns, board.Move, error) {
	if s.halted(ctx) {
		return 0, board.Move{}, ErrHalted
	}

	// (1) Terminal depth: descend into quiescence.
	if depth == 0 {
		score, err := s.quiesce(ctx, pos, alpha, beta)
		return score, board.Move{}, err
	}

	// (2) Statistics.
	s.stats.Nodes++
	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}

	// (3) TT probe.
	var hint board.Move
	if entry, ok := s.tt.Probe(pos.Hash()); ok {
		if entry.EvalDepth > depth {
			return 0, board.Move{}, nil // deeper repetition of this position: treat as a draw.
		}
		if entry.EvalDepth == depth {
			return entry.Eval, entry.BestMove, nil
		}
		if entry.HasBestMove {
			hint = entry.BestMove
		}
	}

	// (4) Fifty-move rule.
	if pos.HalfmoveClock() >= 50 {
		return 0, board.Move{}, nil
	}

	// (5) Threefold repetition.
	if isRepeated(pos) {
		return 0, board.Move{}, nil
	}

	// (6) Generate moves.
	moves := board.LegalMoves(pos)
	if len(moves) == 0 {
		if board.IsInCheck(pos) {
			return MinScore + eval.Centipawns(pos.FullmoveNumber()), board.Move{}, nil
		}
		return 0, board.Move{}, nil
	}

	// (7) Order moves: TT hint first, else by exchange evaluation, descending.
	board.SortByPriority(moves, board.HintFirst(hint, func(m board.Move) board.MovePriority {
		return board.MovePriority(eval.Exchange(pos, m))
	}))

	// (8) Lazy-SMP root permutation.
	if isRoot && workerIndex > 0 {
		j := workerIndex
		if j >= len(moves) {
			j = len(moves) - 1
		}
		moves[0], moves[j] = moves[j], moves[0]
	}

	// (9) Iterate moves.
	best := MinScore - 1
	var bestMove board.Move
	for _, m := range moves {
		next := pos.Push(m)
		score, _, err := s.negamax(ctx, next, depth-1, -beta, -alpha, false, workerIndex)
		if err != nil {
			return 0, board.Move{}, err
		}
		score = -score

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break // prune
		}
	}

	// (10) TT store, subject to depth-preference replacement.
	s.tt.Store(pos.Hash(), Entry{Eval: best, EvalDepth: depth, HasBestMove: true, BestMove: bestMove})

	return best, bestMove, nil
}

// isRepeated walks the back-link chain, stopping at the first irreversible move (halfmove clock
// zero), counting prior occurrences of the current hash. True at two or more (spec.md §4.8(5)).
func isRepeated(pos *board.Position) bool {
	count := 0
	for prev := pos.Previous(); prev != nil; prev = prev.Previous() {
		if prev.Hash() == pos.Hash() {
			count++
			if count >= 2 {
				return true
			}
		}
		if prev.HalfmoveClock() == 0 {
			break
		}
	}
	return false
}

