package board

import "fmt"

// Move represents a from/to/promotion triple. Castling is encoded as the king's two-square
// move; the rook side effect is derived from CastleMoves. En passant is encoded as an ordinary
// pawn move onto the en passant target square -- Position.Push resolves the captured square.
type Move struct {
	From, To  Square
	Promotion Piece // NoPiece unless this is a promotion.
}

// ParseMove parses pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
func ParseMove(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) != 4 && len(runes) != 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from square in move %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to square in move %q: %w", str, err)
	}

	m := Move{From: from, To: to}
	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || !promo.IsPromotable() {
			return Move{}, fmt.Errorf("invalid promotion in move %q", str)
		}
		m.Promotion = promo
	}
	return m, nil
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// IsNull reports whether this is the UCI "null move" convention, 0000.
func (m Move) IsNull() bool {
	return m.From == m.To
}

// NullMove is the UCI "no move" convention, printed as "0000".
var NullMove = Move{From: A1, To: A1}

func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	if m.Promotion != NoPiece {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// enumeratePromotions expands a pawn move landing on the last rank into the four promotion
// variants, one per promotable piece kind (spec.md §4.3).
func enumeratePromotions(from, to Square) []Move {
	moves := make([]Move, 0, len(PromotablePieces))
	for _, p := range PromotablePieces {
		moves = append(moves, Move{From: from, To: to, Promotion: p})
	}
	return moves
}
