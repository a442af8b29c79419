package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeTacticalScenarios(t *testing.T) {
	cases := []struct {
		fen  string
		from string
		to   string
		want int
	}{
		// Rxe5: the rook is the only attacker and it isn't recaptured.
		{"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - -", "e1", "e5", 100},
		// Nxe5: Nd7 recaptures, and after Rxe5 Bxe5 the exchange
		// stops, leaving White a knight down for a pawn.
		{"1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - -", "d3", "e5", -225},
	}
	for _, c := range cases {
		pos := mustFEN(t, c.fen)
		m := NewMove(sq(t, c.from), sq(t, c.to), CaptureMove)
		assert.Equal(t, c.want, See(pos, m), "See(%q, %s%s)", c.fen, c.from, c.to)
	}
}

func TestSeeUndefendedCapture(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/4p3/3P4/8/8/4K3 w - - 0 1")
	m := NewMove(sq(t, "d4"), sq(t, "e5"), CaptureMove)
	assert.Equal(t, 100, See(pos, m))
}
