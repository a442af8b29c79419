// zobrist.go contains the deterministic random tables used for
// incremental Zobrist hashing (spec.md §3 invariant 3, §9 design note).
//
// Grounded on zurichess's engine/zobrist.go: a fixed math/rand seed so
// the key tables - and therefore every position's hash - reproduce
// across runs and processes, which TT persistence and the test suite
// both rely on.

package engine

import "math/rand"

var (
	zobristPiece     [PieceArraySize][64]uint64
	zobristEnPassant [8]uint64 // indexed by file; spec.md §9 hashes the ep square only when relevant.
	zobristCastle    [4]uint64 // WhiteOO, WhiteOOO, BlackOO, BlackOOO
	zobristColor     uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))
	for _, p := range [...]Piece{
		WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
		BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
	} {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rand64(r)
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rand64(r)
	}
	for i := range zobristCastle {
		zobristCastle[i] = rand64(r)
	}
	zobristColor = rand64(r)
}
