package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legalMoves(t *testing.T, pos *Position) []Move {
	t.Helper()
	stack := NewStack(pos)
	var out []Move
	for _, m := range GenerateAll(pos, nil) {
		stack.Make(m)
		if !stack.Top().IsChecked(stack.Top().Them()) {
			out = append(out, m)
		}
		stack.Undo()
	}
	return out
}

func TestMoveFromLANClassifiesMoveType(t *testing.T) {
	cases := []struct {
		fen  string
		lan  string
		want MoveType
	}{
		{StartFEN, "e2e4", DoublePawnPush},
		{StartFEN, "g1f3", QuietMove},
		{"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", "e5d6", EnPassant},
		{"4k3/8/8/4p3/3P4/8/8/4K3 w - - 0 1", "d4e5", CaptureMove},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "e1g1", KingCastle},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "e1c1", QueenCastle},
		{"k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e7e8q", QueenPromotion},
	}
	for _, c := range cases {
		pos := mustFEN(t, c.fen)
		m, err := MoveFromLAN(pos, c.lan)
		if !assert.NoError(t, err, "MoveFromLAN(%q, %q)", c.fen, c.lan) {
			continue
		}
		assert.Equal(t, c.want, m.Type(), "MoveFromLAN(%q, %q).Type()", c.fen, c.lan)
	}
}

func TestMoveFromLANNullMove(t *testing.T) {
	pos := mustFEN(t, StartFEN)
	m, err := MoveFromLAN(pos, "0000")
	require.NoError(t, err)
	assert.True(t, m.IsNull())
}

func TestMoveFromLANRejectsForeignPiece(t *testing.T) {
	pos := mustFEN(t, StartFEN)
	_, err := MoveFromLAN(pos, "e7e5")
	assert.Error(t, err, "MoveFromLAN(\"e7e5\") with White to move")
}

func TestMoveToSANBasicForms(t *testing.T) {
	pos := mustFEN(t, StartFEN)
	moves := legalMoves(t, pos)
	m := NewMove(sq(t, "e2"), sq(t, "e4"), DoublePawnPush)
	assert.Equal(t, "e4", MoveToSAN(pos, moves, m))
	nf3 := NewMove(sq(t, "g1"), sq(t, "f3"), QuietMove)
	assert.Equal(t, "Nf3", MoveToSAN(pos, moves, nf3))
}

func TestMoveToSANCapture(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/4p3/3P4/8/8/4K3 w - - 0 1")
	moves := legalMoves(t, pos)
	m := NewMove(sq(t, "d4"), sq(t, "e5"), CaptureMove)
	assert.Equal(t, "dxe5", MoveToSAN(pos, moves, m))
}

func TestMoveToSANCastling(t *testing.T) {
	pos := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := legalMoves(t, pos)
	kingSide := NewMove(SquareE1, SquareG1, KingCastle)
	assert.Equal(t, "O-O", MoveToSAN(pos, moves, kingSide))
	queenSide := NewMove(SquareE1, SquareC1, QueenCastle)
	assert.Equal(t, "O-O-O", MoveToSAN(pos, moves, queenSide))
}

func TestMoveToSANPromotion(t *testing.T) {
	pos := mustFEN(t, "k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	moves := legalMoves(t, pos)
	m := NewMove(sq(t, "e7"), sq(t, "e8"), QueenPromotion)
	assert.Equal(t, "e8=Q", MoveToSAN(pos, moves, m))
}

func TestMoveToSANDisambiguatesByFile(t *testing.T) {
	// Two white knights, both able to reach b3: disambiguate by file.
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/N1N1K3 w - - 0 1")
	moves := legalMoves(t, pos)
	m := NewMove(sq(t, "a1"), sq(t, "b3"), QuietMove)
	assert.Equal(t, "Nab3", MoveToSAN(pos, moves, m))
}

func TestMoveFromSANRoundTripsWithMoveToSAN(t *testing.T) {
	pos := mustFEN(t, StartFEN)
	moves := legalMoves(t, pos)
	for _, m := range moves {
		san := MoveToSAN(pos, moves, m)
		got, ok := MoveFromSAN(pos, moves, san)
		if !assert.True(t, ok, "MoveFromSAN(%q) = not found, want %v", san, m) {
			continue
		}
		assert.Equal(t, m, got, "MoveFromSAN(%q)", san)
	}
}

func TestMoveFromSANTrailingAnnotationsTolerated(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	moves := legalMoves(t, pos)
	for _, suffix := range []string{"", "+", "#", "!", "?", "!!", "?!"} {
		got, ok := MoveFromSAN(pos, moves, "O-O"+suffix)
		if !assert.True(t, ok, "MoveFromSAN(%q)", "O-O"+suffix) {
			continue
		}
		assert.Equal(t, KingCastle, got.Type(), "MoveFromSAN(%q)", "O-O"+suffix)
	}
}

func TestMoveFromSANEnPassantSuffixTolerated(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	moves := legalMoves(t, pos)
	got, ok := MoveFromSAN(pos, moves, "exd6 e.p.")
	require.True(t, ok, "MoveFromSAN(\"exd6 e.p.\")")
	assert.True(t, got.IsEnPassant(), "MoveFromSAN(\"exd6 e.p.\")")
}
