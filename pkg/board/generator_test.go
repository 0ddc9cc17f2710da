package board_test

import (
	"testing"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts the leaf nodes of the legal move tree to the given depth (spec.md §8).
func perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := board.LegalMoves(pos)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		nodes += perft(pos.Push(m), depth-1)
	}
	return nodes
}

func TestPerft_startPosition(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, perft(pos, tt.depth), "depth=%v", tt.depth)
	}
}

// TestPerft_kiwipete is the standard "Kiwipete" perft stress position, exercising castling, en
// passant and promotions simultaneously.
func TestPerft_kiwipete(t *testing.T) {
	pos, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, perft(pos, tt.depth), "depth=%v", tt.depth)
	}
}

func TestPerft_position3(t *testing.T) {
	// A position chosen for heavy check/pin interaction with few pieces.
	pos, err := fen.Decode("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, perft(pos, tt.depth), "depth=%v", tt.depth)
	}
}

// TestLegalMoves_noMoveLeavesOwnKingAttacked checks that no move generated for the side to move
// leaves its own king capturable by the opponent's reply. The generator does not special-case
// captures of the king, so a move that illegally left it in check would surface as a reply whose
// destination is the king's square.
func TestLegalMoves_noMoveLeavesOwnKingAttacked(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, f := range positions {
		pos, err := fen.Decode(f)
		require.NoError(t, err)
		mover := pos.Turn()

		for _, m := range board.LegalMoves(pos) {
			next := pos.Push(m)
			kingSq := next.KingSquare(mover)

			for _, reply := range board.LegalMoves(next) {
				assert.NotEqual(t, kingSq, reply.To, "move %v leaves the %v king capturable by %v", m, mover, reply)
			}
		}
	}
}

func TestGenCastles_blockedByPieceBetween(t *testing.T) {
	pos, err := fen.Decode("4k3/8/8/8/8/8/8/4KB1R w K - 0 1")
	require.NoError(t, err)

	for _, m := range board.LegalMoves(pos) {
		assert.False(t, m.From == board.E1 && m.To == board.G1, "castling must be blocked by the bishop on f1")
	}
}

func TestGenCastles_blockedThroughCheck(t *testing.T) {
	// Black rook on f8 attacks f1, which the White king must pass through to castle kingside.
	pos, err := fen.Decode("4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	for _, m := range board.LegalMoves(pos) {
		assert.False(t, m.From == board.E1 && m.To == board.G1, "castling through an attacked square must be illegal")
	}
}

func TestGenPawnMoves_pinnedPawnCannotCaptureOffPin(t *testing.T) {
	// White king on e1, White pawn on d2 pinned by a Black bishop on a5; the pawn may not capture
	// the knight on e3 since that would expose the king along the a5-e1 diagonal.
	pos, err := fen.Decode("4k3/8/8/b7/8/4n3/3P4/4K3 w - - 0 1")
	require.NoError(t, err)

	for _, m := range board.LegalMoves(pos) {
		assert.False(t, m.From == board.D2 && (m.To == board.C3 || m.To == board.E3), "pinned pawn must not capture off the pin line")
	}
}

func TestGenPawnMoves_enPassantGhostPin(t *testing.T) {
	// White king and pawn on the fifth rank, Black pawn and rook on the same rank: capturing en
	// passant removes both pawns from rank 5 and exposes the White king to the Black rook.
	pos, err := fen.Decode("8/8/8/K2Pp2r/8/8/8/4k3 w - e6 0 1")
	require.NoError(t, err)

	for _, m := range board.LegalMoves(pos) {
		assert.False(t, m.From == board.D5 && m.To == board.E6, "en passant must be illegal when it exposes the king via the ghost pin")
	}
}
