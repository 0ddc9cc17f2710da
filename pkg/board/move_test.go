package board_test

import (
	"testing"

	"github.com/me-unsolicited/gochess/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	t.Run("plain move", func(t *testing.T) {
		m, err := board.ParseMove("e2e4")
		require.NoError(t, err)
		assert.Equal(t, board.Move{From: board.E2, To: board.E4}, m)
		assert.Equal(t, "e2e4", m.String())
	})

	t.Run("promotion", func(t *testing.T) {
		m, err := board.ParseMove("a7a8q")
		require.NoError(t, err)
		assert.Equal(t, board.Move{From: board.A7, To: board.A8, Promotion: board.Queen}, m)
		assert.Equal(t, "a7a8q", m.String())
	})

	t.Run("rejects an invalid promotion piece", func(t *testing.T) {
		_, err := board.ParseMove("a7a8k")
		assert.Error(t, err)
	})

	t.Run("rejects the wrong length", func(t *testing.T) {
		_, err := board.ParseMove("e2e")
		assert.Error(t, err)
	})

	t.Run("rejects an invalid square", func(t *testing.T) {
		_, err := board.ParseMove("e2z9")
		assert.Error(t, err)
	})
}

func TestMove_IsNull(t *testing.T) {
	assert.True(t, board.NullMove.IsNull())
	assert.Equal(t, "0000", board.NullMove.String())
	assert.False(t, board.Move{From: board.E2, To: board.E4}.IsNull())
}

func TestMove_Equals(t *testing.T) {
	a := board.Move{From: board.E2, To: board.E4}
	b := board.Move{From: board.E2, To: board.E4}
	c := board.Move{From: board.E2, To: board.E4, Promotion: board.Queen}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
