// stack.go implements the position stack of spec.md §3: a fixed-
// capacity, ply-indexed array of full Position snapshots, with Make
// pushing a derived position and Undo popping back to the previous
// one (spec.md §4.3), plus repetition/fifty-move draw detection.
//
// Grounded on zurichess's engine/position.go ply history (states
// []state, curr *state) and its DoMove/UndoMove pair, restructured
// around the spec's own explicit position-per-ply stack rather than
// a stack of diffs: spec.md §3 requires a full board snapshot at
// every ply for O(1) square lookup, so Undo is a pop, not a replay.

package engine

import "fmt"

// MaxStack bounds how many plies (search depth plus played-game
// history behind the root) a Stack can hold.
const MaxStack = 1024

// Stack is a fixed-capacity array of Positions indexed by ply.
type Stack struct {
	positions [MaxStack]Position
	top       int
}

// NewStack returns a Stack whose only entry is start.
func NewStack(start *Position) *Stack {
	s := &Stack{}
	s.positions[0] = *start
	return s
}

// Top returns the current position.
func (s *Stack) Top() *Position { return &s.positions[s.top] }

// Ply returns the current ply index; 0 at the root.
func (s *Stack) Ply() int { return s.top }

// Make plays m, pushing the resulting position. The caller checks
// legality afterwards (king safety) and calls Undo to back out of
// illegal moves - Make never refuses a pseudo-legal move itself.
func (s *Stack) Make(m Move) {
	if s.top+1 >= MaxStack {
		panic(fmt.Sprintf("engine: position stack exhausted at ply %d", s.top))
	}
	cur := &s.positions[s.top]
	next := &s.positions[s.top+1]
	*next = *cur
	next.HalfMoveClock++
	next.Capture = NoPiece

	if m.IsNull() {
		if cur.epHashApplies() {
			next.Hash ^= zobristEnPassant[cur.EnPassant.File()]
		}
		next.EnPassant = OutOfBoard
		next.SideToMove = cur.SideToMove.Opposite()
		next.Hash ^= zobristColor
		next.NullMoveAllowed = false
		s.top++
		AssertConsistent(next)
		return
	}

	us := cur.SideToMove
	from, to := m.From(), m.To()
	moving := cur.PieceAt(from)

	next.remove(from, moving)

	switch {
	case m.IsEnPassant():
		victimSq := RankFile(from.Rank(), to.File())
		victim := next.PieceAt(victimSq)
		next.remove(victimSq, victim)
		next.Capture = victim
		next.HalfMoveClock = 0
	case m.IsCapture():
		victim := next.PieceAt(to)
		next.remove(to, victim)
		next.Capture = victim
		next.HalfMoveClock = 0
	}

	placed := moving
	if m.IsPromotion() {
		placed = ColorKind(us, m.PromotionKind())
	}
	next.put(to, placed)
	if moving.Kind() == Pawn {
		next.HalfMoveClock = 0
	}

	if m.IsCastle() {
		rank := from.Rank()
		rookFrom, rookTo := RankFile(rank, 7), RankFile(rank, 5)
		if m.Type() == QueenCastle {
			rookFrom, rookTo = RankFile(rank, 0), RankFile(rank, 3)
		}
		rook := next.PieceAt(rookFrom)
		next.remove(rookFrom, rook)
		next.put(rookTo, rook)
	}

	lost := (lostCastleRights[from] | lostCastleRights[to]) & next.Castle
	for _, cr := range [...]CastleRights{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide} {
		if lost&cr != 0 {
			next.Castle &^= cr
			next.Hash ^= zobristCastle[bitIndex(cr)]
		}
	}

	// Clear the outgoing en-passant hash contribution before flipping
	// side to move: cur.epHashApplies used cur.Us(), the side that
	// could have captured it, so clearing must use the same side.
	if cur.epHashApplies() {
		next.Hash ^= zobristEnPassant[cur.EnPassant.File()]
	}
	next.EnPassant = OutOfBoard

	next.SideToMove = us.Opposite()
	next.Hash ^= zobristColor

	if m.IsDoublePawnPush() {
		next.EnPassant = RankFile((from.Rank()+to.Rank())/2, from.File())
	}
	// epHashApplies is evaluated against next.Us(), the side to move
	// after the flip - the side that could actually capture en passant.
	if next.epHashApplies() {
		next.Hash ^= zobristEnPassant[next.EnPassant.File()]
	}

	next.NullMoveAllowed = true
	s.top++
	AssertConsistent(next)
}

// Undo pops the most recently made position, restoring the one
// beneath it. Zobrist need not be recomputed: the popped-to position
// already carries its own pre-move hash.
func (s *Stack) Undo() {
	s.top--
	AssertConsistent(s.Top())
}

// IsRepetition returns true if the current position's hash matches
// an earlier position reachable without crossing an irreversible
// move (a pawn move or capture - where the halfmove clock was last
// reset). Stops the backward scan there, per spec.md §3. count is the
// minimum number of occurrences to report, the current one included
// (2 for a search draw-pruning check, 3 for a strict game-record
// threefold claim).
func (s *Stack) IsRepetition(count int) bool {
	hash := s.Top().Hash
	seen := 0
	limit := s.top - s.positions[s.top].HalfMoveClock
	if limit < 0 {
		limit = 0
	}
	for ply := s.top - 2; ply >= limit; ply -= 2 {
		if s.positions[ply].Hash == hash {
			seen++
			if seen+1 >= count {
				return true
			}
		}
	}
	return false
}

// IsDraw returns true if the current position is drawn by the
// fifty-move rule or by (single) repetition, the condition
// negamax's search checks at every node (spec.md §4.7).
func (s *Stack) IsDraw() bool {
	if s.Top().HalfMoveClock >= 100 {
		return true
	}
	return s.IsRepetition(2)
}
