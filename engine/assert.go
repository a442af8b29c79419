//go:build flintdebug

// assert.go compiles in only under the flintdebug build tag and
// checks the invariants spec.md §7/§8 requires after every make/undo:
// bitboard/board agreement and from-scratch Zobrist recompute. Go
// has no language-level debug_assert; a build-tag-gated function is
// the idiomatic substitute.
//
// Grounded on littlewing's pervasive debug_assert! calls in
// position.rs/moves.rs, and on the pos.Verify-style self-checks a
// few of the other pack repos carry (e.g. AdamGriffiths31/
// ChessEngine's CheckBoard).

package engine

import "fmt"

// AssertConsistent panics if pos's bitboards, board array, and
// Zobrist hash disagree. Called from Make/Undo only under
// flintdebug; it is a no-op build in every other configuration.
func AssertConsistent(pos *Position) {
	var byColor [ColorArraySize]Bitboard
	for sq := Square(0); sq < 64; sq++ {
		p := pos.PieceAt(sq)
		if p == NoPiece {
			continue
		}
		if !pos.ByPiece[p].Has(sq) {
			panic(fmt.Sprintf("engine: board[%s]=%s but ByPiece[%s] lacks the bit", sq, p, p))
		}
		byColor[p.Color()] = byColor[p.Color()].Set(sq)
	}
	if byColor[White] != pos.ByColor[White] {
		panic("engine: ByColor[White] disagrees with the board array")
	}
	if byColor[Black] != pos.ByColor[Black] {
		panic("engine: ByColor[Black] disagrees with the board array")
	}
	if byColor[White]&byColor[Black] != 0 {
		panic("engine: white and black occupancy overlap")
	}
	if got, want := pos.Hash, pos.recomputeHash(); got != want {
		panic(fmt.Sprintf("engine: incremental hash %#x disagrees with recomputed %#x", got, want))
	}
}
