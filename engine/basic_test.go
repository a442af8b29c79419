package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceColorAndKind(t *testing.T) {
	cases := []struct {
		p Piece
		c Color
		k Kind
	}{
		{WhitePawn, White, Pawn},
		{BlackPawn, Black, Pawn},
		{WhiteKnight, White, Knight},
		{BlackQueen, Black, Queen},
		{WhiteKing, White, King},
	}
	for _, c := range cases {
		assert.Equal(t, c.c, c.p.Color(), "%v.Color()", c.p)
		assert.Equal(t, c.k, c.p.Kind(), "%v.Kind()", c.p)
	}
}

func TestKindIsSlider(t *testing.T) {
	for _, k := range []Kind{Bishop, Rook, Queen} {
		assert.True(t, k.IsSlider(), "%v.IsSlider()", k)
	}
	for _, k := range []Kind{Pawn, Knight, King} {
		assert.False(t, k.IsSlider(), "%v.IsSlider()", k)
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for _, s := range []string{"a1", "e4", "h8", "d7"} {
		sq, err := SquareFromString(s)
		require.NoError(t, err, "SquareFromString(%q)", s)
		assert.Equal(t, s, sq.String())
	}
}

func TestSquareFromStringInvalid(t *testing.T) {
	for _, s := range []string{"", "i1", "a9", "aa", "11"} {
		_, err := SquareFromString(s)
		assert.Error(t, err, "SquareFromString(%q)", s)
	}
}

func TestBitboardSetResetHas(t *testing.T) {
	var bb Bitboard
	bb = bb.Set(SquareE4)
	require.True(t, bb.Has(SquareE4), "Has(E4) after Set(E4)")
	bb = bb.Reset(SquareE4)
	require.False(t, bb.Has(SquareE4), "Has(E4) after Reset(E4)")
}

func TestBitboardPopcntAndPop(t *testing.T) {
	bb := SquareA1.Bitboard() | SquareH8.Bitboard() | SquareE4.Bitboard()
	require.Equal(t, 3, bb.Popcnt())
	var seen []Square
	for bb != 0 {
		seen = append(seen, bb.Pop())
	}
	require.Len(t, seen, 3)
}

func TestRankFileRoundTrip(t *testing.T) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := RankFile(rank, file)
			assert.Equal(t, rank, sq.Rank(), "RankFile(%d,%d).Rank()", rank, file)
			assert.Equal(t, file, sq.File(), "RankFile(%d,%d).File()", rank, file)
		}
	}
}

// SquareE4 is used only by tests for readability.
const SquareE4 = Square(28)
