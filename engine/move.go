package engine

import "strings"

// MoveType is the 4-bit tag packed into a Move, enumerating quiet,
// double pawn push, the two castles, capture, en passant, null, and
// the eight promotion variants (spec.md §3).
//
// Values match littlewing's common.rs exactly so that castle/
// promotion bit tricks (CastleKind, PromotionKind) carry over.
type MoveType uint8

const (
	QuietMove      MoveType = 0b0000
	DoublePawnPush MoveType = 0b0001
	KingCastle     MoveType = 0b0010
	QueenCastle    MoveType = 0b0011
	CaptureMove    MoveType = 0b0100
	EnPassant      MoveType = 0b0101
	NullMoveType   MoveType = 0b0110

	KnightPromotion        MoveType = 0b1000
	BishopPromotion        MoveType = 0b1001
	RookPromotion          MoveType = 0b1010
	QueenPromotion         MoveType = 0b1011
	KnightPromotionCapture MoveType = 0b1100
	BishopPromotionCapture MoveType = 0b1101
	RookPromotionCapture   MoveType = 0b1110
	QueenPromotionCapture  MoveType = 0b1111

	promotionMask     MoveType = 0b1000
	promotionKindMask MoveType = 0b1100
)

// promotionKinds maps the low two bits of a promotion MoveType to the
// promoted Kind, in the same order littlewing's PROMOTION_KINDS uses.
var promotionKinds = [4]Kind{Knight, Bishop, Rook, Queen}

// promotionLetters maps a promoted Kind to its lowercase LAN/UCI letter.
var promotionLetters = map[Kind]string{
	Knight: "n", Bishop: "b", Rook: "r", Queen: "q",
}

// Move packs a from/to/type triple into 16 bits: 6 bits from, 6 bits
// to, 4 bits type. The all-zero value is NullMove (spec.md §3).
type Move uint16

// NullMove is the move that does nothing but flip the side to move.
const NullMove Move = 0

// NewMove builds a packed move.
func NewMove(from, to Square, mt MoveType) Move {
	return Move(uint16(from)<<10 | uint16(to)<<4 | uint16(mt))
}

// From returns the move's origin square.
func (m Move) From() Square { return Square(m >> 10) }

// To returns the move's destination square.
func (m Move) To() Square { return Square(m>>4) & 0x3f }

// Type returns the move's packed type tag.
func (m Move) Type() MoveType { return MoveType(m & 0xf) }

// IsNull returns true for the all-zero move.
func (m Move) IsNull() bool { return m == NullMove }

// IsCapture returns true for ordinary captures, en passant, and
// promotion-captures.
func (m Move) IsCapture() bool {
	t := m.Type()
	return t == CaptureMove || t == EnPassant || t&promotionKindMask == promotionKindMask
}

// IsQuiet returns true for moves that are not captures and not
// promotions: ordinary quiet moves, double pawn pushes, and castles.
func (m Move) IsQuiet() bool {
	t := m.Type()
	return !m.IsCapture() && t&promotionMask == 0
}

// IsPromotion returns true for any of the eight promotion variants.
func (m Move) IsPromotion() bool {
	return m.Type()&promotionMask != 0
}

// PromotionKind returns the promoted Kind; undefined unless IsPromotion.
func (m Move) PromotionKind() Kind {
	return promotionKinds[m.Type()&(promotionKindMask>>2)]
}

// IsCastle returns true for king-side or queen-side castling.
func (m Move) IsCastle() bool {
	t := m.Type()
	return t == KingCastle || t == QueenCastle
}

// IsDoublePawnPush returns true for a two-square pawn push.
func (m Move) IsDoublePawnPush() bool {
	return m.Type() == DoublePawnPush
}

// IsEnPassant returns true for an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Type() == EnPassant
}

// LAN renders the move in long algebraic notation: from, to, and an
// optional lowercase promotion letter (spec.md §6).
func (m Move) LAN() string {
	if m.IsNull() {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if m.IsPromotion() {
		sb.WriteString(promotionLetters[m.PromotionKind()])
	}
	return sb.String()
}

func (m Move) String() string {
	return m.LAN()
}
