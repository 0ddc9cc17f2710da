package board

import "strings"

// CastleRights is the set of four castling rights, one bit each. Rights are cleared
// monotonically within a game: once a bit is unset, it stays unset for the life of that line.
type CastleRights uint8

const (
	WhiteKingSide CastleRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const (
	NoCastleRights  CastleRights = 0
	AllCastleRights CastleRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// Allows reports whether all of the given rights are present.
func (c CastleRights) Allows(right CastleRights) bool {
	return c&right == right
}

// Clear returns the rights with the given bits removed.
func (c CastleRights) Clear(right CastleRights) CastleRights {
	return c &^ right
}

func (c CastleRights) String() string {
	if c == NoCastleRights {
		return "-"
	}

	var sb strings.Builder
	if c.Allows(WhiteKingSide) {
		sb.WriteByte('K')
	}
	if c.Allows(WhiteQueenSide) {
		sb.WriteByte('Q')
	}
	if c.Allows(BlackKingSide) {
		sb.WriteByte('k')
	}
	if c.Allows(BlackQueenSide) {
		sb.WriteByte('q')
	}
	return sb.String()
}

// castlingRightsForSquare returns the right(s), if any, that are forfeited when the given
// square is touched as a move's "from" or "to" square (spec.md 4.2.1 step 7).
func castlingRightsForSquare(sq Square) CastleRights {
	switch sq {
	case E1:
		return WhiteKingSide | WhiteQueenSide
	case A1:
		return WhiteQueenSide
	case H1:
		return WhiteKingSide
	case E8:
		return BlackKingSide | BlackQueenSide
	case A8:
		return BlackQueenSide
	case H8:
		return BlackKingSide
	default:
		return NoCastleRights
	}
}

// CastleMove describes one of the four fixed king castling moves, its rook side effect, and the
// squares relevant to legality (spec.md §4.4 item 7): EmptyMask must be fully vacant, and the
// king must not be in check nor pass through an attacked square on its way from KingFrom to
// KingTo (KingPath, inclusive of both ends).
type CastleMove struct {
	Right            CastleRights
	KingFrom, KingTo Square
	RookFrom, RookTo Square
	EmptyMask        Bitboard
	KingPath         []Square
}

// CastleMoves is the fixed table of the four castling king-moves (spec.md §3).
var CastleMoves = [4]CastleMove{
	{
		Right: WhiteKingSide, KingFrom: E1, KingTo: G1, RookFrom: H1, RookTo: F1,
		EmptyMask: BitMask(F1) | BitMask(G1),
		KingPath:  []Square{E1, F1, G1},
	},
	{
		Right: WhiteQueenSide, KingFrom: E1, KingTo: C1, RookFrom: A1, RookTo: D1,
		EmptyMask: BitMask(B1) | BitMask(C1) | BitMask(D1),
		KingPath:  []Square{E1, D1, C1},
	},
	{
		Right: BlackKingSide, KingFrom: E8, KingTo: G8, RookFrom: H8, RookTo: F8,
		EmptyMask: BitMask(F8) | BitMask(G8),
		KingPath:  []Square{E8, F8, G8},
	},
	{
		Right: BlackQueenSide, KingFrom: E8, KingTo: C8, RookFrom: A8, RookTo: D8,
		EmptyMask: BitMask(B8) | BitMask(C8) | BitMask(D8),
		KingPath:  []Square{E8, D8, C8},
	},
}

// FindCastleMove returns the castling descriptor matching the king's from/to squares, if any.
func FindCastleMove(from, to Square) (CastleMove, bool) {
	for _, cm := range CastleMoves {
		if cm.KingFrom == from && cm.KingTo == to {
			return cm, true
		}
	}
	return CastleMove{}, false
}
