// notation.go implements move notation (spec.md §6): long algebraic
// (LAN) parsing to complement Move.LAN's emission, and standard
// algebraic (SAN) emission/parsing with file/rank disambiguation,
// castling, en passant, and promotion suffixes.
//
// Grounded on littlewing's piece_move_notation.rs (SAN disambiguation
// order: file first, then rank, then both; LAN's castle/double-push/
// en-passant classification from board state) and zurichess's
// engine/convert.go square/file formatting helpers.

package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// MoveFromLAN parses s ("<from><to>[promo]") against pos, classifying
// the move's type (capture, en passant, double push, castle,
// promotion) from the current board rather than from s alone.
func MoveFromLAN(pos *Position, s string) (Move, error) {
	s = strings.TrimRight(s, "+#!?")
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("notation: invalid LAN move %q", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("notation: invalid LAN move %q: %w", s, err)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("notation: invalid LAN move %q: %w", s, err)
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece || piece.Color() != pos.Us() {
		return NullMove, fmt.Errorf("notation: no piece of side to move on %s", from)
	}
	captured := pos.PieceAt(to)

	if len(s) == 5 {
		kind, ok := promotionKindFromLetter(s[4])
		if !ok {
			return NullMove, fmt.Errorf("notation: invalid promotion letter in %q", s)
		}
		idx := promotionIndexByKind[kind]
		mt := promotionQuietTypes[idx]
		if captured != NoPiece {
			mt = promotionCaptureTypes[idx]
		}
		return NewMove(from, to, mt), nil
	}

	if piece.Kind() == King && from == SquareE1.Flip(pos.Us()) && to == SquareG1.Flip(pos.Us()) {
		return NewMove(from, to, KingCastle), nil
	}
	if piece.Kind() == King && from == SquareE1.Flip(pos.Us()) && to == SquareC1.Flip(pos.Us()) {
		return NewMove(from, to, QueenCastle), nil
	}
	if captured != NoPiece {
		return NewMove(from, to, CaptureMove), nil
	}
	if piece.Kind() == Pawn {
		if to == pos.EnPassant {
			return NewMove(from, to, EnPassant), nil
		}
		if abs(to.Rank()-from.Rank()) == 2 {
			return NewMove(from, to, DoublePawnPush), nil
		}
	}
	return NewMove(from, to, QuietMove), nil
}

// promotionIndexByKind maps a promoted Kind to its slot in
// promotionKinds/promotionQuietTypes/promotionCaptureTypes.
var promotionIndexByKind = map[Kind]int{Knight: 0, Bishop: 1, Rook: 2, Queen: 3}

func promotionKindFromLetter(b byte) (Kind, bool) {
	switch b | 0x20 { // lowercase
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	}
	return NoKind, false
}

// MoveToSAN renders m in standard algebraic notation. legalMoves must
// be every legal move available in pos (before m is played), used to
// disambiguate piece moves that share a destination square.
func MoveToSAN(pos *Position, legalMoves []Move, m Move) string {
	if m.IsCastle() {
		if m.Type() == KingCastle {
			return "O-O"
		}
		return "O-O-O"
	}

	piece := pos.PieceAt(m.From())
	var sb strings.Builder
	if piece.Kind() != Pawn {
		sb.WriteByte(sanLetter(piece.Kind()))
	}

	if piece.Kind() != Pawn {
		sb.WriteString(disambiguate(pos, legalMoves, m, piece))
	} else if m.IsCapture() {
		sb.WriteByte(byte('a' + m.From().File()))
	}

	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To().String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(sanLetter(m.PromotionKind()))
	}
	return sb.String()
}

// sanLetter returns the SAN piece letter for k: N for knight (to
// avoid colliding with King's K), B, R, Q, K, and 0 for a pawn.
func sanLetter(k Kind) byte {
	switch k {
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	}
	return 0
}

// disambiguate returns the file, rank, or file+rank needed to tell m
// apart from other legal moves of the same kind landing on the same
// square, following littlewing's file-first/rank-next/both-last order.
func disambiguate(pos *Position, legalMoves []Move, m Move, piece Piece) string {
	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range legalMoves {
		if other == m || other.To() != m.To() {
			continue
		}
		op := pos.PieceAt(other.From())
		if op.Kind() != piece.Kind() || op.Color() != piece.Color() {
			continue
		}
		ambiguous = true
		if other.From().File() == m.From().File() {
			sameFile = true
		}
		if other.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	switch {
	case !sameFile:
		return string(byte('a' + m.From().File()))
	case !sameRank:
		return string(byte('1' + m.From().Rank()))
	default:
		return m.From().String()
	}
}

var sanRe = regexp.MustCompile(`^(?:(O-O-O)|(O-O)|([NBRQK])?([a-h])?([1-8])?(x)?([a-h][1-8])(?:=([NBRQ]))?)[+#!?]*$`)

// MoveFromSAN parses s against legalMoves, the complete legal move
// list in pos, tolerant of trailing +, #, !, ? and e.p. markers.
func MoveFromSAN(pos *Position, legalMoves []Move, s string) (Move, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "e.p.")
	s = strings.TrimSpace(s)
	match := sanRe.FindStringSubmatch(s)
	if match == nil {
		return NullMove, false
	}
	us := pos.Us()
	if match[1] != "" {
		return findMove(legalMoves, NewMove(SquareE1.Flip(us), SquareC1.Flip(us), QueenCastle))
	}
	if match[2] != "" {
		return findMove(legalMoves, NewMove(SquareE1.Flip(us), SquareG1.Flip(us), KingCastle))
	}

	pieceLetter, file, rank, isCapture, to, promo := match[3], match[4], match[5], match[6] != "", match[7], match[8]
	toSq, err := SquareFromString(to)
	if err != nil {
		return NullMove, false
	}

	for _, cand := range legalMoves {
		if cand.To() != toSq {
			continue
		}
		p := pos.PieceAt(cand.From())
		if pieceLetter != "" {
			if sanLetter(p.Kind()) != pieceLetter[0] {
				continue
			}
		} else if p.Kind() != Pawn {
			continue
		}
		if file != "" && byte(file[0]) != byte('a'+cand.From().File()) {
			continue
		}
		if rank != "" && byte(rank[0]) != byte('1'+cand.From().Rank()) {
			continue
		}
		if isCapture != cand.IsCapture() {
			continue
		}
		if promo != "" {
			if !cand.IsPromotion() {
				continue
			}
			if sanLetter(cand.PromotionKind()) != promo[0] {
				continue
			}
		} else if cand.IsPromotion() {
			continue
		}
		return cand, true
	}
	return NullMove, false
}

func findMove(legalMoves []Move, want Move) (Move, bool) {
	for _, m := range legalMoves {
		if m == want {
			return m, true
		}
	}
	return NullMove, false
}
