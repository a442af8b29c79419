// position.go implements Position, the single-ply board state of
// spec.md §3, plus FEN parsing and formatting (spec.md §6).
//
// Grounded on zurichess's engine/position.go (field layout, FEN field
// splitting loop) and convert.go (piece-placement parsing), with
// castling/en-passant semantics cross-checked against
// original_source/src/fen.rs.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Wing distinguishes king-side from queen-side castling.
type Wing uint8

const (
	KingSide Wing = iota
	QueenSide
)

// CastleRights is a 4-bit matrix of which side may still castle which way.
type CastleRights uint8

const (
	WhiteKingSide CastleRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastleRights  CastleRights = 0
	AllCastleRights              = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func castleRight(c Color, w Wing) CastleRights {
	return CastleRights(1) << (uint(c)*2 + uint(w))
}

// Has reports whether side c may still castle on wing w.
func (cr CastleRights) Has(c Color, w Wing) bool {
	return cr&castleRight(c, w) != 0
}

func (cr CastleRights) String() string {
	if cr == NoCastleRights {
		return "-"
	}
	var sb strings.Builder
	if cr.Has(White, KingSide) {
		sb.WriteByte('K')
	}
	if cr.Has(White, QueenSide) {
		sb.WriteByte('Q')
	}
	if cr.Has(Black, KingSide) {
		sb.WriteByte('k')
	}
	if cr.Has(Black, QueenSide) {
		sb.WriteByte('q')
	}
	return sb.String()
}

// lostCastleRights[sq] is cleared from CastleRights whenever a king or
// a rook leaves (or a rook is captured on) sq.
var lostCastleRights [64]CastleRights

func init() {
	lostCastleRights[SquareE1] = WhiteKingSide | WhiteQueenSide
	lostCastleRights[SquareH1] = WhiteKingSide
	lostCastleRights[SquareA1] = WhiteQueenSide
	lostCastleRights[SquareE8] = BlackKingSide | BlackQueenSide
	lostCastleRights[SquareH8] = BlackKingSide
	lostCastleRights[SquareA8] = BlackQueenSide
}

// Named squares used by castling and en-passant logic.
const (
	SquareA1 = Square(0)
	SquareE1 = Square(4)
	SquareH1 = Square(7)
	SquareA8 = Square(56)
	SquareE8 = Square(60)
	SquareH8 = Square(63)
)

// Position is one ply of board state: bitboards by piece and by color,
// a redundant 8x8 array for O(1) square lookup, side to move, the
// piece captured by the move that produced this position (for undo),
// the en-passant target, castling rights, the fifty-move counter, the
// incrementally maintained Zobrist hash, and whether a null move is
// currently permitted (spec.md §3).
type Position struct {
	ByPiece [PieceArraySize]Bitboard
	ByColor [ColorArraySize]Bitboard
	board   [64]Piece

	SideToMove      Color
	Capture         Piece
	EnPassant       Square
	Castle          CastleRights
	HalfMoveClock   int
	FullMoveNumber  int
	Hash            uint64
	NullMoveAllowed bool
}

// NewPosition returns an empty position with no pieces, white to move.
func NewPosition() *Position {
	pos := &Position{
		EnPassant:       OutOfBoard,
		FullMoveNumber:  1,
		NullMoveAllowed: true,
	}
	for sq := range pos.board {
		pos.board[sq] = NoPiece
	}
	return pos
}

// Us returns the side to move.
func (pos *Position) Us() Color { return pos.SideToMove }

// Them returns the side not to move.
func (pos *Position) Them() Color { return pos.SideToMove.Opposite() }

// PieceAt returns the piece occupying sq, or NoPiece.
func (pos *Position) PieceAt(sq Square) Piece { return pos.board[sq] }

// Occupied returns the union of all occupied squares.
func (pos *Position) Occupied() Bitboard { return pos.ByColor[White] | pos.ByColor[Black] }

// ByColorKind returns the bitboard of pieces of kind k and color c.
func (pos *Position) ByColorKind(c Color, k Kind) Bitboard {
	return pos.ByPiece[ColorKind(c, k)]
}

// King returns the square of side c's king.
func (pos *Position) King(c Color) Square {
	return pos.ByColorKind(c, King).AsSquare()
}

// NonPawnMaterial returns true if side c has at least one knight,
// bishop, rook or queen (used to gate null-move pruning, spec.md §9
// open question 1).
func (pos *Position) NonPawnMaterial(c Color) bool {
	return pos.ByColorKind(c, Knight)|pos.ByColorKind(c, Bishop)|
		pos.ByColorKind(c, Rook)|pos.ByColorKind(c, Queen) != 0
}

// put places piece p on sq, updating bitboards, the board array and the hash.
func (pos *Position) put(sq Square, p Piece) {
	pos.board[sq] = p
	pos.ByPiece[p] = pos.ByPiece[p].Set(sq)
	pos.ByColor[p.Color()] = pos.ByColor[p.Color()].Set(sq)
	pos.Hash ^= zobristPiece[p][sq]
}

// remove clears sq, which must hold piece p.
func (pos *Position) remove(sq Square, p Piece) {
	pos.board[sq] = NoPiece
	pos.ByPiece[p] = pos.ByPiece[p].Reset(sq)
	pos.ByColor[p.Color()] = pos.ByColor[p.Color()].Reset(sq)
	pos.Hash ^= zobristPiece[p][sq]
}

// IsAttacked returns true if any piece of color by attacks sq.
func (pos *Position) IsAttacked(sq Square, by Color) bool {
	occ := pos.Occupied()
	if PawnAttacks(by.Opposite(), sq)&pos.ByColorKind(by, Pawn) != 0 {
		return true
	}
	if KnightAttacks(sq)&pos.ByColorKind(by, Knight) != 0 {
		return true
	}
	if KingAttacks(sq)&pos.ByColorKind(by, King) != 0 {
		return true
	}
	bishopsQueens := pos.ByColorKind(by, Bishop) | pos.ByColorKind(by, Queen)
	if BishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := pos.ByColorKind(by, Rook) | pos.ByColorKind(by, Queen)
	if RookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// IsChecked returns true if c's king is currently attacked.
func (pos *Position) IsChecked(c Color) bool {
	return pos.IsAttacked(pos.King(c), c.Opposite())
}

// Clone returns a deep copy of pos, used by the stack to derive the
// next ply without aliasing the board array or bitboards.
func (pos *Position) Clone() *Position {
	cp := *pos
	return &cp
}

// recomputeHash rebuilds the Zobrist hash from scratch; used only for
// the debug-build invariant check (spec.md §8, engine/assert.go).
func (pos *Position) recomputeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := pos.board[sq]; p != NoPiece {
			h ^= zobristPiece[p][sq]
		}
	}
	if pos.epHashApplies() {
		h ^= zobristEnPassant[pos.EnPassant.File()]
	}
	for _, cr := range [...]CastleRights{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide} {
		if pos.Castle&cr != 0 {
			h ^= zobristCastle[bitIndex(cr)]
		}
	}
	if pos.SideToMove == Black {
		h ^= zobristColor
	}
	return h
}

func bitIndex(cr CastleRights) int {
	for i := 0; i < 4; i++ {
		if cr == 1<<uint(i) {
			return i
		}
	}
	return 0
}

// --- FEN ---

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// PositionFromFEN parses a FEN string into a new Position. The
// position is left untouched (nil, err returned) on any parse error,
// per spec.md §7's "position state is not mutated on failure".
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 && len(fields) != 4 {
		return nil, fmt.Errorf("fen %q: expected 4 or 6 fields, got %d", fen, len(fields))
	}

	pos := NewPosition()
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}
	if err := parseSideToMove(fields[1], pos); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}
	if err := parseCastlingAbility(fields[2], pos); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}
	if err := parseEnPassant(fields[3], pos); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}

	// The halfmove clock and fullmove number are optional: EPD-style
	// test positions (spec.md §8's perft/SEE scenarios) omit them.
	pos.HalfMoveClock = 0
	pos.FullMoveNumber = 1
	if len(fields) == 6 {
		half, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("fen %q: bad halfmove clock: %w", fen, err)
		}
		full, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("fen %q: bad fullmove number: %w", fen, err)
		}
		pos.HalfMoveClock = half
		pos.FullMoveNumber = full
	}
	return pos, nil
}

func parsePiecePlacement(field string, pos *Position) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("piece placement %q: expected 8 ranks", field)
	}
	for i, rankField := range ranks {
		rank := 7 - i
		file := 0
		for _, r := range rankField {
			if r >= '1' && r <= '8' {
				file += int(r - '0')
				continue
			}
			if file >= 8 {
				return fmt.Errorf("piece placement %q: rank %d overflows", field, rank+1)
			}
			p, err := PieceFromSymbol(byte(r))
			if err != nil {
				return err
			}
			sq := RankFile(rank, file)
			pos.put(sq, p)
			file++
		}
		if file != 8 {
			return fmt.Errorf("piece placement %q: rank %d has %d files", field, rank+1, file)
		}
	}
	return nil
}

func parseSideToMove(field string, pos *Position) error {
	switch field {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
		pos.Hash ^= zobristColor
	default:
		return fmt.Errorf("invalid side to move %q", field)
	}
	return nil
}

func parseCastlingAbility(field string, pos *Position) error {
	if field == "-" {
		return nil
	}
	for _, r := range field {
		var cr CastleRights
		switch r {
		case 'K':
			cr = WhiteKingSide
		case 'Q':
			cr = WhiteQueenSide
		case 'k':
			cr = BlackKingSide
		case 'q':
			cr = BlackQueenSide
		default:
			return fmt.Errorf("invalid castling field %q", field)
		}
		pos.Castle |= cr
		pos.Hash ^= zobristCastle[bitIndex(cr)]
	}
	return nil
}

func parseEnPassant(field string, pos *Position) error {
	if field == "-" {
		pos.EnPassant = OutOfBoard
		return nil
	}
	sq, err := SquareFromString(field)
	if err != nil {
		return fmt.Errorf("invalid en passant square %q: %w", field, err)
	}
	pos.EnPassant = sq
	if pos.epHashApplies() {
		pos.Hash ^= zobristEnPassant[sq.File()]
	}
	return nil
}

// epHashApplies implements the stricter en-passant hashing scheme
// decided in SPEC_FULL.md's open-question #2: the ep square is only
// folded into the Zobrist hash when a pawn of the side to move can
// actually capture onto it, so two positions that differ only by a
// "dead" ep square (no capturing pawn) hash identically.
func (pos *Position) epHashApplies() bool {
	sq := pos.EnPassant
	if sq == OutOfBoard {
		return false
	}
	return PawnAttacks(pos.Us().Opposite(), sq)&pos.ByColorKind(pos.Us(), Pawn) != 0
}

// FEN formats pos in Forsyth-Edwards notation, round-tripping any
// position the engine itself produced (spec.md §6).
func (pos *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := pos.board[RankFile(rank, file)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if pos.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(pos.Castle.String())
	sb.WriteByte(' ')
	sb.WriteString(pos.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.FullMoveNumber))
	return sb.String()
}

func (pos *Position) String() string { return pos.FEN() }
