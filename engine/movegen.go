// movegen.go generates pseudo-legal moves (spec.md §4.1's attacks
// plus the generation rules implied by §4.2/§4.3): captures and
// promotion-captures, quiet moves including double pawn pushes,
// castling and quiet promotions, and en passant. Legality (king
// safety) is left to the caller, who makes the move and checks
// IsChecked, per spec.md's staged move list contract.
//
// Grounded on zurichess's engine/moves.go bitboard-iteration shape
// (pop least-set-bit, mask off own pieces, split into captures and
// quiets) combined with littlewing's moves_generator.rs approach to
// castling path/attacked-square checks.

package engine

// GenerateCaptures appends every pseudo-legal capture, en passant
// capture, and promotion-capture to out and returns the extended
// slice.
func GenerateCaptures(pos *Position, out []Move) []Move {
	us, them := pos.Us(), pos.Them()
	occ := pos.Occupied()
	theirs := pos.ByColor[them]

	out = genPawnCaptures(pos, us, theirs, out)

	for _, k := range [...]Kind{Knight, Bishop, Rook, Queen, King} {
		bb := pos.ByColorKind(us, k)
		for bb != 0 {
			from := bb.Pop()
			targets := Attacks(ColorKind(us, k), from, occ) & theirs
			for targets != 0 {
				to := targets.Pop()
				out = append(out, NewMove(from, to, CaptureMove))
			}
		}
	}
	return out
}

// GenerateQuiets appends every pseudo-legal non-capturing move -
// single and double pawn pushes, quiet promotions, castling, and
// ordinary piece moves - to out and returns the extended slice.
func GenerateQuiets(pos *Position, out []Move) []Move {
	us := pos.Us()
	occ := pos.Occupied()
	empty := ^occ

	out = genPawnQuiets(pos, us, empty, out)

	for _, k := range [...]Kind{Knight, Bishop, Rook, Queen, King} {
		bb := pos.ByColorKind(us, k)
		for bb != 0 {
			from := bb.Pop()
			targets := Attacks(ColorKind(us, k), from, occ) & empty
			for targets != 0 {
				to := targets.Pop()
				out = append(out, NewMove(from, to, QuietMove))
			}
		}
	}

	out = genCastles(pos, us, occ, out)
	return out
}

// GenerateAll appends every pseudo-legal move (captures then
// quiets) to out and returns the extended slice; used by Perft and
// anywhere the staged move list's ordering doesn't matter.
func GenerateAll(pos *Position, out []Move) []Move {
	out = GenerateCaptures(pos, out)
	out = GenerateQuiets(pos, out)
	return out
}

func pawnPromotionRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

func pawnStartRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

var promotionCaptureTypes = [4]MoveType{
	KnightPromotionCapture, BishopPromotionCapture, RookPromotionCapture, QueenPromotionCapture,
}
var promotionQuietTypes = [4]MoveType{
	KnightPromotion, BishopPromotion, RookPromotion, QueenPromotion,
}

func genPawnCaptures(pos *Position, us Color, theirs Bitboard, out []Move) []Move {
	promoRank := pawnPromotionRank(us)
	bb := pos.ByColorKind(us, Pawn)
	for bb != 0 {
		from := bb.Pop()
		targets := PawnAttacks(us, from) & theirs
		for targets != 0 {
			to := targets.Pop()
			if to.Rank() == promoRank {
				for _, mt := range promotionCaptureTypes {
					out = append(out, NewMove(from, to, mt))
				}
				continue
			}
			out = append(out, NewMove(from, to, CaptureMove))
		}
		if pos.EnPassant != OutOfBoard && PawnAttacks(us, from).Has(pos.EnPassant) {
			out = append(out, NewMove(from, pos.EnPassant, EnPassant))
		}
	}
	return out
}

func genPawnQuiets(pos *Position, us Color, empty Bitboard, out []Move) []Move {
	promoRank := pawnPromotionRank(us)
	startRank := pawnStartRank(us)
	bb := pos.ByColorKind(us, Pawn)
	for bb != 0 {
		from := bb.Pop()
		single := Forward(us, from.Bitboard()) & empty
		if single != 0 {
			to := single.AsSquare()
			if to.Rank() == promoRank {
				for _, mt := range promotionQuietTypes {
					out = append(out, NewMove(from, to, mt))
				}
			} else {
				out = append(out, NewMove(from, to, QuietMove))
				if from.Rank() == startRank {
					double := Forward(us, single) & empty
					if double != 0 {
						out = append(out, NewMove(from, double.AsSquare(), DoublePawnPush))
					}
				}
			}
		}
	}
	return out
}

// castlePathEmpty[color][wing] is the set of squares that must be
// empty, and castlePathSafe[color][wing] the king's squares that must
// be unattacked, for that castle to be legal to attempt.
var castlePathEmpty = [ColorArraySize][2]Bitboard{}
var castlePathSafe = [ColorArraySize][2][]Square{}

func init() {
	castlePathEmpty[White][KingSide] = SquareF1.Bitboard() | SquareG1.Bitboard()
	castlePathEmpty[White][QueenSide] = SquareB1.Bitboard() | SquareC1.Bitboard() | SquareD1.Bitboard()
	castlePathEmpty[Black][KingSide] = SquareF8.Bitboard() | SquareG8.Bitboard()
	castlePathEmpty[Black][QueenSide] = SquareB8.Bitboard() | SquareC8.Bitboard() | SquareD8.Bitboard()

	castlePathSafe[White][KingSide] = []Square{SquareE1, SquareF1, SquareG1}
	castlePathSafe[White][QueenSide] = []Square{SquareE1, SquareD1, SquareC1}
	castlePathSafe[Black][KingSide] = []Square{SquareE8, SquareF8, SquareG8}
	castlePathSafe[Black][QueenSide] = []Square{SquareE8, SquareD8, SquareC8}
}

func genCastles(pos *Position, us Color, occ Bitboard, out []Move) []Move {
	kingFrom := pos.King(us)
	if pos.Castle.Has(us, KingSide) && castlePathEmpty[us][KingSide]&occ == 0 && castleSquaresSafe(pos, us, KingSide) {
		out = append(out, NewMove(kingFrom, kingFrom.Relative(0, 2), KingCastle))
	}
	if pos.Castle.Has(us, QueenSide) && castlePathEmpty[us][QueenSide]&occ == 0 && castleSquaresSafe(pos, us, QueenSide) {
		out = append(out, NewMove(kingFrom, kingFrom.Relative(0, -2), QueenCastle))
	}
	return out
}

func castleSquaresSafe(pos *Position, us Color, w Wing) bool {
	for _, sq := range castlePathSafe[us][w] {
		if pos.IsAttacked(sq, us.Opposite()) {
			return false
		}
	}
	return true
}

// Named squares used by castling generation and castle notation.
const (
	SquareB1 = Square(1)
	SquareC1 = Square(2)
	SquareD1 = Square(3)
	SquareF1 = Square(5)
	SquareG1 = Square(6)
	SquareB8 = Square(57)
	SquareC8 = Square(58)
	SquareD8 = Square(59)
	SquareF8 = Square(61)
	SquareG8 = Square(62)
)

// IsPseudoLegal reports whether m could plausibly have been
// generated in pos: the moving piece belongs to the side to move
// and sits on "from", and the move's flags are consistent with the
// occupant of "to". It is a cheap filter for TT and killer moves
// that may be stale against the current position, not a substitute
// for full generation.
func IsPseudoLegal(pos *Position, m Move) bool {
	if m.IsNull() {
		return false
	}
	from, to := m.From(), m.To()
	moving := pos.PieceAt(from)
	if moving == NoPiece || moving.Color() != pos.Us() {
		return false
	}
	occupant := pos.PieceAt(to)
	switch {
	case m.IsCastle():
		return moving.Kind() == King
	case m.IsEnPassant():
		return moving.Kind() == Pawn && to == pos.EnPassant
	case m.IsCapture():
		if occupant == NoPiece || occupant.Color() == pos.Us() {
			return false
		}
	default:
		if occupant != NoPiece {
			return false
		}
	}
	if m.IsPromotion() && (moving.Kind() != Pawn || to.Rank() != pawnPromotionRank(pos.Us())) {
		return false
	}
	occ := pos.Occupied()
	if moving.Kind() == Pawn {
		if m.IsCapture() && !m.IsEnPassant() {
			return PawnAttacks(pos.Us(), from).Has(to)
		}
		if m.IsEnPassant() {
			return PawnAttacks(pos.Us(), from).Has(to)
		}
		// Pushes: the destination's emptiness was checked above; the
		// from/to geometry is checked here.
		single := Forward(pos.Us(), from.Bitboard())
		if m.IsDoublePawnPush() {
			return from.Rank() == pawnStartRank(pos.Us()) && single&occ == 0 && Forward(pos.Us(), single).Has(to)
		}
		return single.Has(to) && (m.IsPromotion() || to.Rank() != pawnPromotionRank(pos.Us()))
	}
	return Attacks(moving, from, occ).Has(to)
}
