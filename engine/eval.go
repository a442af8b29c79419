// eval.go implements the static evaluator of spec.md §4.4: material,
// phased piece-square tables blended by a non-pawn-material phase,
// mobility, and saturation to +-Inf past king value.
//
// Grounded on zurichess's engine/material.go for the midgame/endgame
// phase-blend shape, simplified from its tuned 187-weight texel
// network down to the material+PST+mobility model spec.md §4.4
// actually names - the full tuned network is an enrichment the spec
// doesn't ask for and would make the evaluator untraceable against
// its three named terms.

package engine

import "math/bits"

// KingValue bounds the score range; |score| above it signals mate
// and saturates to +-Inf (spec.md §4.4).
const KingValue = 10000

// Inf is returned (with sign) once a score saturates past KingValue.
const Inf = 32000

var pieceValue = [...]int{Pawn: 100, Knight: 320, Bishop: 330, Rook: 500, Queen: 900, King: KingValue}

// phaseWeight[kind] is how much of the 24-point game phase one piece
// of that kind is worth; all pawns and kings contribute 0.
var phaseWeight = map[Kind]int{Knight: 1, Bishop: 1, Rook: 2, Queen: 4}

const totalPhase = 24

// pst[kind] holds [midgame, endgame] tables indexed white-relative,
// a1 = index 0. Black looks its square up flipped.
var pst = map[Kind][2][64]int{
	Pawn: {
		{
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, -20, -20, 10, 10, 5,
			5, -5, -10, 0, 0, -10, -5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, 5, 10, 25, 25, 10, 5, 5,
			10, 10, 20, 30, 30, 20, 10, 10,
			50, 50, 50, 50, 50, 50, 50, 50,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		{
			0, 0, 0, 0, 0, 0, 0, 0,
			10, 10, 10, 10, 10, 10, 10, 10,
			10, 10, 10, 10, 10, 10, 10, 10,
			20, 20, 20, 20, 20, 20, 20, 20,
			30, 30, 30, 30, 30, 30, 30, 30,
			50, 50, 50, 50, 50, 50, 50, 50,
			80, 80, 80, 80, 80, 80, 80, 80,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
	},
	Knight: {
		{
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		{
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
	},
	Bishop: {
		{
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		{
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 5, 10, 10, 10, 10, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 5, 0, 0, 5, 0, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
	},
	Rook: {
		{
			0, 0, 0, 5, 5, 0, 0, 0,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			5, 10, 10, 10, 10, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		{
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 5, 5, 5, 5, 5, 5, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
	},
	Queen: {
		{
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		{
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
	},
	King: {
		{
			20, 30, 10, 0, 0, 10, 30, 20,
			20, 20, 0, 0, 0, 0, 20, 20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
		},
		{
			-50, -30, -30, -30, -30, -30, -30, -50,
			-30, -30, 0, 0, 0, 0, -30, -30,
			-30, -10, 20, 30, 30, 20, -10, -30,
			-30, -10, 30, 40, 40, 30, -10, -30,
			-30, -10, 30, 40, 40, 30, -10, -30,
			-30, -10, 20, 30, 30, 20, -10, -30,
			-30, -20, -10, 0, 0, -10, -20, -30,
			-50, -40, -30, -20, -20, -30, -40, -50,
		},
	},
}

// mobilityWeight scales popcount-of-reachable-squares per kind; pawn
// and king mobility aren't counted (spec.md §4.4 names it a "small
// weight" without fixing a number).
var mobilityWeight = map[Kind]int{Knight: 2, Bishop: 2, Rook: 1, Queen: 1}

func pstIndex(c Color, sq Square) Square {
	if c == White {
		return sq
	}
	return sq.Flip(Black)
}

func phase(pos *Position) int {
	p := totalPhase
	for _, c := range [...]Color{White, Black} {
		for k, w := range phaseWeight {
			p -= w * bits.OnesCount64(uint64(pos.ByColorKind(c, k)))
		}
	}
	if p < 0 {
		p = 0
	}
	return p
}

// Eval returns pos's static score relative to the side to move,
// saturating to +-Inf once the total score (material, piece-square
// and mobility terms together) exceeds KingValue in magnitude.
func Eval(pos *Position) int {
	them := pos.Them()
	ph := phase(pos)
	occ := pos.Occupied()

	var mg, eg, mobility, material int
	for _, c := range [...]Color{White, Black} {
		sign := 1
		if c == them {
			sign = -1
		}
		for _, k := range [...]Kind{Pawn, Knight, Bishop, Rook, Queen, King} {
			bb := pos.ByColorKind(c, k)
			material += sign * pieceValue[k] * bb.Popcnt()
			tbl := pst[k]
			for b := bb; b != 0; {
				sq := b.Pop()
				idx := pstIndex(c, sq)
				mg += sign * tbl[0][idx]
				eg += sign * tbl[1][idx]
				if w, ok := mobilityWeight[k]; ok {
					mobility += sign * w * Attacks(ColorKind(c, k), sq, occ).Popcnt()
				}
			}
		}
	}

	pstScore := (mg*(totalPhase-ph) + eg*ph) / totalPhase
	score := material + pstScore + mobility

	if score > KingValue {
		return Inf
	}
	if score < -KingValue {
		return -Inf
	}
	return score
}
