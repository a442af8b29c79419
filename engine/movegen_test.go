package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legalMoveCount(t *testing.T, fen string) int {
	t.Helper()
	pos := mustFEN(t, fen)
	stack := NewStack(pos)
	count := 0
	for _, m := range GenerateAll(pos, nil) {
		stack.Make(m)
		if !stack.Top().IsChecked(stack.Top().Them()) {
			count++
		}
		stack.Undo()
	}
	return count
}

func TestLegalMoveCountMatchesPerftOne(t *testing.T) {
	cases := []struct {
		fen   string
		nodes uint64
	}{
		{StartFEN, 20},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 48},
	}
	for _, c := range cases {
		pos := mustFEN(t, c.fen)
		assert.Equal(t, c.nodes, uint64(legalMoveCount(t, c.fen)), "%q: legal move count", c.fen)
		assert.Equal(t, c.nodes, Perft(pos, 1), "%q: Perft(pos, 1)", c.fen)
	}
}

func TestCastlingBlockedWhenPathAttacked(t *testing.T) {
	// Black rook attacking f1 must forbid king-side castling.
	pos := mustFEN(t, "4k3/8/8/8/8/8/5r2/4K2R w K - 0 1")
	for _, m := range GenerateQuiets(pos, nil) {
		assert.False(t, m.IsCastle(), "castling move %v generated while f1 is attacked", m)
	}
}

func TestCastlingAllowedWhenPathClear(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	found := false
	for _, m := range GenerateQuiets(pos, nil) {
		if m.IsCastle() {
			found = true
		}
	}
	require.True(t, found, "no castling move generated with a clear, unattacked path")
}

func TestDoublePawnPushSetsEnPassantTarget(t *testing.T) {
	pos := mustFEN(t, StartFEN)
	s := NewStack(pos)
	s.Make(NewMove(SquareE2, SquareE4, DoublePawnPush))
	require.Equal(t, sq(t, "e3"), s.Top().EnPassant)
	s.Undo()
	s.Make(NewMove(SquareE2, Square(20) /* e3 */, QuietMove))
	assert.Equal(t, OutOfBoard, s.Top().EnPassant, "EnPassant after a non-double-push")
}

func TestPromotionOnlyFromSeventhRank(t *testing.T) {
	pos := mustFEN(t, "k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	var sawPromotion bool
	for _, m := range GenerateQuiets(pos, nil) {
		if m.IsPromotion() {
			sawPromotion = true
			assert.Equal(t, 6, m.From().Rank(), "promotion move %v from non-7th-rank square", m)
		}
	}
	require.True(t, sawPromotion, "expected a promotion move pushing e7-e8")
}
