// movelist.go implements the staged move generator of spec.md §4.2:
// BestMove, then Capture (SEE/MVV-LVA ordered), then up to two
// KillerMove slots, then QuietMove, then Done. Consumers call
// NextMove repeatedly; later stages are generated lazily so a beta
// cutoff in an early stage never pays for generating the rest.
//
// Grounded on zurichess's engine/move_ordering.go moveStack/stack
// state machine (msHash/msGenViolent/... states driving NextMove,
// mvvlva scoring, SaveKiller), scaled from its 3-killer-plus-
// counter-move scheme down to spec.md's exact 2-killer contract.

package engine

import "sort"

type stage uint8

const (
	stageBestMove stage = iota
	stageCapture
	stageKillerMove
	stageQuietMove
	stageDone
)

// mvvLvaIndex orders kinds P,N,B,R,Q,K for MVV-LVA scoring.
var mvvLvaIndex = map[Kind]int{
	Pawn: 0, Knight: 1, Bishop: 2, Rook: 3, Queen: 4, King: 5,
}

// ScoredMove pairs a move with its ordering score, exported so
// quiescence search can reuse the Capture stage's ordering without
// driving a full MoveList.
type ScoredMove struct {
	Move  Move
	Score int32
	See   int
}

func mvvLva(pos *Position, m Move) int32 {
	attacker := pos.PieceAt(m.From())
	victim := Pawn
	if !m.IsEnPassant() {
		if v := pos.PieceAt(m.To()); v != NoPiece {
			victim = v.Kind()
		}
	}
	return int32(8*mvvLvaIndex[victim] - mvvLvaIndex[attacker.Kind()])
}

// OrderedCaptures returns every pseudo-legal capture and promotion-
// capture in pos, split into a non-negative-SEE group (sorted by
// MVV-LVA descending) followed by the negative-SEE remainder (also
// sorted by MVV-LVA descending), matching spec.md §4.2's Capture
// stage ordering exactly.
func OrderedCaptures(pos *Position) []ScoredMove {
	raw := GenerateCaptures(pos, nil)
	scored := make([]ScoredMove, len(raw))
	for i, m := range raw {
		scored[i] = ScoredMove{Move: m, Score: mvvLva(pos, m), See: See(pos, m)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		iGood, jGood := scored[i].See >= 0, scored[j].See >= 0
		if iGood != jGood {
			return iGood
		}
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// QuiescenceMoves returns the Capture stage's ordering plus quiet
// queen promotions, the full move set quiescence search considers
// (spec.md §4.7: "captures (and queen promotions)").
func QuiescenceMoves(pos *Position) []ScoredMove {
	scored := OrderedCaptures(pos)

	us := pos.Us()
	promoRank := pawnPromotionRank(us)
	empty := ^pos.Occupied()
	bb := pos.ByColorKind(us, Pawn)
	for bb != 0 {
		from := bb.Pop()
		single := Forward(us, from.Bitboard()) & empty
		if single != 0 && single.AsSquare().Rank() == promoRank {
			m := NewMove(from, single.AsSquare(), QueenPromotion)
			scored = append(scored, ScoredMove{Move: m, Score: 1 << 20, See: PieceValue(Queen)})
		}
	}
	return scored
}

// killerSlot holds the two killer moves remembered for one ply.
type killerSlot [2]Move

// KillerTable tracks up to two killer moves per ply (spec.md §4.2).
type KillerTable struct {
	slots [MaxStack]killerSlot
}

// Update records m as a killer at ply, shifting the previous first
// killer down, unless m is already the first killer. Only called
// for beta cutoffs by non-capture moves.
func (kt *KillerTable) Update(ply int, m Move) {
	s := &kt.slots[ply]
	if s[0] == m {
		return
	}
	s[1] = s[0]
	s[0] = m
}

// Get returns the two killers stored for ply.
func (kt *KillerTable) Get(ply int) [2]Move {
	return kt.slots[ply]
}

// MoveList drives the BestMove -> Capture -> KillerMove -> QuietMove
// -> Done state machine for one node of the search.
type MoveList struct {
	pos     *Position
	ttMove  Move
	killers [2]Move

	stage stage
	idx   int

	captures []ScoredMove
	quiets   []Move
}

// NewMoveList returns a staged move list for pos, trying ttMove
// first and the given killers (typically from KillerTable.Get) in
// the killer stage.
func NewMoveList(pos *Position, ttMove Move, killers [2]Move) *MoveList {
	return &MoveList{pos: pos, ttMove: ttMove, killers: killers}
}

// NextMove returns the next move in stage order, or (NullMove,
// false) once the list is exhausted.
func (ml *MoveList) NextMove() (Move, bool) {
	for {
		switch ml.stage {
		case stageBestMove:
			ml.stage = stageCapture
			if !ml.ttMove.IsNull() && IsPseudoLegal(ml.pos, ml.ttMove) {
				return ml.ttMove, true
			}

		case stageCapture:
			if ml.captures == nil {
				ml.captures = OrderedCaptures(ml.pos)
			}
			for ml.idx < len(ml.captures) {
				m := ml.captures[ml.idx].Move
				ml.idx++
				if m == ml.ttMove {
					continue
				}
				return m, true
			}
			ml.stage = stageKillerMove
			ml.idx = 0

		case stageKillerMove:
			for ml.idx < len(ml.killers) {
				k := ml.killers[ml.idx]
				ml.idx++
				if k.IsNull() || k == ml.ttMove {
					continue
				}
				if !IsPseudoLegal(ml.pos, k) || k.IsCapture() {
					continue
				}
				return k, true
			}
			ml.stage = stageQuietMove
			ml.idx = 0

		case stageQuietMove:
			if ml.quiets == nil {
				ml.quiets = GenerateQuiets(ml.pos, nil)
			}
			for ml.idx < len(ml.quiets) {
				m := ml.quiets[ml.idx]
				ml.idx++
				if m == ml.ttMove || m == ml.killers[0] || m == ml.killers[1] {
					continue
				}
				return m, true
			}
			ml.stage = stageDone

		default:
			return NullMove, false
		}
	}
}
