package search_test

import (
	"testing"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/me-unsolicited/gochess/pkg/board/fen"
	"github.com/me-unsolicited/gochess/pkg/eval"
	"github.com/me-unsolicited/gochess/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_probeMiss(t *testing.T) {
	tbl := search.NewTable()
	_, ok := tbl.Probe(board.ZobristHash(42))
	assert.False(t, ok)
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_storeAndProbe(t *testing.T) {
	tbl := search.NewTable()
	hash := board.ZobristHash(7)

	tbl.Store(hash, search.Entry{Eval: 150, EvalDepth: 3, HasBestMove: true, BestMove: board.Move{From: board.E2, To: board.E4}})

	entry, ok := tbl.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, eval.Centipawns(150), entry.Eval)
	assert.Equal(t, 3, entry.EvalDepth)
	assert.Equal(t, board.Move{From: board.E2, To: board.E4}, entry.BestMove)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_store_keepsTheDeeperEntry(t *testing.T) {
	tbl := search.NewTable()
	hash := board.ZobristHash(7)

	tbl.Store(hash, search.Entry{Eval: 100, EvalDepth: 5})
	tbl.Store(hash, search.Entry{Eval: 200, EvalDepth: 2})

	entry, ok := tbl.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, eval.Centipawns(100), entry.Eval, "a shallower entry must not overwrite a deeper one")
	assert.Equal(t, 5, entry.EvalDepth)
}

func TestTable_store_overwritesAnEqualOrShallowerEntry(t *testing.T) {
	tbl := search.NewTable()
	hash := board.ZobristHash(7)

	tbl.Store(hash, search.Entry{Eval: 100, EvalDepth: 2})
	tbl.Store(hash, search.Entry{Eval: 200, EvalDepth: 4})

	entry, ok := tbl.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, eval.Centipawns(200), entry.Eval)
	assert.Equal(t, 4, entry.EvalDepth)
}

func TestTable_reset(t *testing.T) {
	tbl := search.NewTable()
	tbl.Store(board.ZobristHash(1), search.Entry{})
	tbl.Store(board.ZobristHash(2), search.Entry{})
	require.Equal(t, 2, tbl.Len())

	tbl.Reset()
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_distinctPositionsHashDistinctly(t *testing.T) {
	a, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	b := a.Push(board.Move{From: board.E2, To: board.E4})

	tbl := search.NewTable()
	tbl.Store(a.Hash(), search.Entry{Eval: 1})
	tbl.Store(b.Hash(), search.Entry{Eval: 2})

	assert.Equal(t, 2, tbl.Len())
}
