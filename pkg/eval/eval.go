// Package eval contains static position evaluation and move-ordering heuristics.
package eval

import "github.com/me-unsolicited/gochess/pkg/board"

// Centipawns is a signed evaluation score, positive favors White.
type Centipawns int32

// NominalValue returns the material weight of a piece kind in centipawns (spec.md §4.5).
func NominalValue(p board.Piece) Centipawns {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 0
	}
}

// Material sums the nominal material balance of the position, white minus black (spec.md §4.5).
func Material(p *board.Position) Centipawns {
	var score Centipawns
	for piece := board.ZeroPiece; piece < board.NumPieces; piece++ {
		score += NominalValue(piece) * Centipawns(p.Piece(board.White, piece).PopCount())
		score -= NominalValue(piece) * Centipawns(p.Piece(board.Black, piece).PopCount())
	}
	return score
}

// Exchange is a cheap SEE-lite move-ordering key (spec.md §4.5): the material value captured at
// the destination (en passant captures resolve to the pawn-behind square) minus the value of the
// moving piece, plus the value gained by promotion, if any.
func Exchange(p *board.Position, m board.Move) Centipawns {
	_, movingPiece, _ := p.At(m.From)

	captureSq := m.To
	if movingPiece == board.Pawn {
		if ep, hasEP := p.EnPassant(); hasEP && m.To == ep {
			turn := p.Turn()
			if turn == board.White {
				captureSq = board.Square(int(m.To) - 8)
			} else {
				captureSq = board.Square(int(m.To) + 8)
			}
		}
	}

	var captured Centipawns
	if _, capPiece, ok := p.At(captureSq); ok {
		captured = NominalValue(capPiece)
	}

	score := captured - NominalValue(movingPiece)
	if m.Promotion != board.NoPiece {
		score += NominalValue(m.Promotion)
	}
	return score
}
