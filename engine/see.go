// see.go implements Static Exchange Evaluation (spec.md §4.2):
// given a capture, repeatedly swap in the least valuable remaining
// attacker of each side and negamax the resulting gain array to
// estimate the net material won, without playing the exchange out
// on the real board. Used only for move ordering, never for eval.
//
// Grounded on zurichess's engine/see.go gain-array swap-off loop,
// with piece values replaced by spec.md §4.2's own figures (which
// match littlewing's original_source/src/eval.rs PIECE_VALUES,
// differing from zurichess's tuned in-game weights).

package engine

// PieceValue gives SEE's material value for kind k. These are
// ordering weights, not the evaluator's tuned values.
func PieceValue(k Kind) int {
	switch k {
	case Pawn:
		return 100
	case Knight, Bishop:
		return 325
	case Rook:
		return 500
	case Queen:
		return 965
	case King:
		return 10000
	default:
		return 0
	}
}

// See estimates the net material gained by the capture m, playing
// out the full exchange of attackers on m.To() without mutating pos.
func See(pos *Position, m Move) int {
	to := m.To()
	from := m.From()
	us := pos.Us()

	var gain [32]int
	depth := 0

	victim := pos.PieceAt(to)
	if m.IsEnPassant() {
		victim = ColorKind(us.Opposite(), Pawn)
	}
	gain[0] = PieceValue(victim.Kind())

	occupied := pos.Occupied()
	occupied = occupied.Reset(from)
	attacker := pos.PieceAt(from)
	if m.IsPromotion() {
		attacker = ColorKind(us, m.PromotionKind())
	}

	bishopsQueens := pos.ByColorKind(White, Bishop) | pos.ByColorKind(White, Queen) |
		pos.ByColorKind(Black, Bishop) | pos.ByColorKind(Black, Queen)
	rooksQueens := pos.ByColorKind(White, Rook) | pos.ByColorKind(White, Queen) |
		pos.ByColorKind(Black, Rook) | pos.ByColorKind(Black, Queen)

	attackers := attackersTo(pos, to, occupied) & occupied
	side := us.Opposite()

	lastValue := PieceValue(attacker.Kind())
	for {
		depth++
		gain[depth] = lastValue - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		ours := attackers & pos.ByColor[side]
		if ours == 0 {
			break
		}
		sq, kind := leastValuableAttacker(pos, ours, side)
		occupied = occupied.Reset(sq)

		if kind == Bishop || kind == Queen {
			attackers |= BishopAttacks(to, occupied) & bishopsQueens & occupied
		}
		if kind == Rook || kind == Queen {
			attackers |= RookAttacks(to, occupied) & rooksQueens & occupied
		}
		attackers &= occupied

		lastValue = PieceValue(kind)
		side = side.Opposite()

		if kind == King {
			// capturing with the king when the opponent still has an
			// attacker would walk into check; stop the exchange here.
			if attackers&pos.ByColor[side] != 0 {
				depth--
			}
			break
		}
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -max(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// attackersTo returns every piece of either color attacking sq given
// occupied, used by SEE's swap-off loop to find new attackers
// uncovered as pieces are removed from the board.
func attackersTo(pos *Position, sq Square, occupied Bitboard) Bitboard {
	var bb Bitboard
	bb |= PawnAttacks(Black, sq) & pos.ByColorKind(White, Pawn)
	bb |= PawnAttacks(White, sq) & pos.ByColorKind(Black, Pawn)
	bb |= KnightAttacks(sq) & (pos.ByColorKind(White, Knight) | pos.ByColorKind(Black, Knight))
	bb |= KingAttacks(sq) & (pos.ByColorKind(White, King) | pos.ByColorKind(Black, King))
	bishopsQueens := pos.ByColorKind(White, Bishop) | pos.ByColorKind(White, Queen) |
		pos.ByColorKind(Black, Bishop) | pos.ByColorKind(Black, Queen)
	rooksQueens := pos.ByColorKind(White, Rook) | pos.ByColorKind(White, Queen) |
		pos.ByColorKind(Black, Rook) | pos.ByColorKind(Black, Queen)
	bb |= BishopAttacks(sq, occupied) & bishopsQueens
	bb |= RookAttacks(sq, occupied) & rooksQueens
	return bb
}

// leastValuableAttacker returns the square and kind of the cheapest
// piece of side attacking from candidates.
func leastValuableAttacker(pos *Position, candidates Bitboard, side Color) (Square, Kind) {
	for _, k := range [...]Kind{Pawn, Knight, Bishop, Rook, Queen, King} {
		bb := candidates & pos.ByColorKind(side, k)
		if bb != 0 {
			return bb.LSB().AsSquare(), k
		}
	}
	return OutOfBoard, NoKind
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
