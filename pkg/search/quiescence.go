package search

import (
	"context"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/eval"
)

// quiesce implements the bounded quiescence extension below depth zero (spec.md §4.8.1): only
// "loud" moves are explored, dampening the horizon effect from cutting search off mid-exchange.
func (s *Searcher) quiesce(ctx context.Context, pos *board.Position, alpha, beta eval.Centipawns) (eval.Centipawns, error) {
	if s.halted(ctx) {
		return 0, ErrHalted
	}

	// Draw-rule checks, as in negamax steps (4), (5).
	if pos.HalfmoveClock() >= 50 {
		return 0, nil
	}
	if isRepeated(pos) {
		return 0, nil
	}

	s.stats.Nodes++

	standPat := signOf(pos.Turn()) * eval.Material(pos)
	if standPat >= beta {
		return beta, nil // fail-high
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := board.LegalMoves(pos)
	if len(moves) == 0 {
		if board.IsInCheck(pos) {
			return MinScore + eval.Centipawns(pos.FullmoveNumber()), nil
		}
		return 0, nil
	}

	board.SortByPriority(moves, func(m board.Move) board.MovePriority {
		return board.MovePriority(eval.Exchange(pos, m))
	})

	for _, m := range moves {
		if !isLoud(pos, m) {
			continue
		}

		next := pos.Push(m)
		score, err := s.quiesce(ctx, next, -beta, -alpha)
		if err != nil {
			return 0, err
		}
		score = -score

		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break // fail-hard cutoff
		}
	}

	return alpha, nil
}

// isLoud reports whether a move is worth exploring in quiescence: a capture (including en
// passant), a queen promotion, or a move that gives check. Check is tested by the exact path --
// push the move and ask whether the opponent's king is now attacked -- rather than a cheaper
// bit-rotation approximation.
func isLoud(pos *board.Position, m board.Move) bool {
	if !pos.IsEmpty(m.To) {
		return true
	}
	if ep, hasEP := pos.EnPassant(); hasEP && m.To == ep {
		if _, piece, ok := pos.At(m.From); ok && piece == board.Pawn {
			return true
		}
	}
	if m.Promotion == board.Queen {
		return true
	}
	return board.IsInCheck(pos.Push(m))
}
