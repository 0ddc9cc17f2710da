package board

import "math/rand"

// ZobristHash is a position hash based on piece-squares, side to move, castling rights and the
// en passant file. It is intended for transposition-table keying and threefold-repetition
// detection, and hashes "identical" positions under those rules to the same value.
//
// See: https://www.chessprogramming.org/Zobrist_Hashing
type ZobristHash uint64

// ZobristTable is a pseudo-randomized table for computing a position hash incrementally.
// Process-wide, initialized once at startup, read-only thereafter (spec.md §4.6). A piece's key
// is the XOR of its kind key and its color key, rather than one key per (color, kind, square)
// pair, matching the key counts spec.md §4.6 enumerates.
type ZobristTable struct {
	pieceKind [NumPieces][NumSquares]ZobristHash // 6 kinds x 64 squares = 384 keys.
	color     [NumColors][NumSquares]ZobristHash // 2 colors x 64 squares = 128 keys.
	castling  [4][2]ZobristHash                  // one right x {false, true} each; only the true branch is ever XORed in.
	enpassant [NumFiles]ZobristHash
	turn      [NumColors]ZobristHash
}

// NewZobristTable draws pseudo-random 64-bit keys from a seeded deterministic stream: 384 keys
// for piece kind x square, 128 keys for color x square, 2 keys for side to move, 8 keys for
// castling rights (2 per right, x4), 8 keys for en passant file (spec.md §4.6).
func NewZobristTable(seed int64) *ZobristTable {
	r := rand.New(rand.NewSource(seed))

	zt := &ZobristTable{}
	for piece := ZeroPiece; piece < NumPieces; piece++ {
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			zt.pieceKind[piece][sq] = ZobristHash(r.Uint64())
		}
	}
	for c := ZeroColor; c < NumColors; c++ {
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			zt.color[c][sq] = ZobristHash(r.Uint64())
		}
		zt.turn[c] = ZobristHash(r.Uint64())
	}
	for right := 0; right < 4; right++ {
		zt.castling[right][0] = ZobristHash(r.Uint64())
		zt.castling[right][1] = ZobristHash(r.Uint64())
	}
	for f := ZeroFile; f < NumFiles; f++ {
		zt.enpassant[f] = ZobristHash(r.Uint64())
	}
	return zt
}

// Hash computes the Zobrist hash for the given position from scratch.
func (zt *ZobristTable) Hash(p *Position) ZobristHash {
	var h ZobristHash

	for c := ZeroColor; c < NumColors; c++ {
		for piece := ZeroPiece; piece < NumPieces; piece++ {
			for _, sq := range p.piece(c, piece).ToSquares() {
				h ^= zt.pieceKind[piece][sq] ^ zt.color[c][sq]
			}
		}
	}
	h ^= zt.castlingHash(p.castling)
	if ep, ok := p.EnPassant(); ok {
		h ^= zt.enpassant[ep.File()]
	}
	h ^= zt.turn[p.turn]

	return h
}

func (zt *ZobristTable) castlingHash(c CastleRights) ZobristHash {
	var h ZobristHash
	rights := []CastleRights{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide}
	for i, right := range rights {
		if c.Allows(right) {
			h ^= zt.castling[i][1]
		}
	}
	return h
}
