package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClock(d time.Duration) *Clock {
	c := NewClock(1, d)
	c.Start()
	return c
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move, forced back-rank mate: Ra1-a8#.
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1")
	tt := NewTranspositionTable(1)
	clock := newTestClock(2 * time.Second)
	s := NewSearcher(pos, tt, clock, nil)

	best, found := s.Search(1, 4)
	require.True(t, found, "Search() found no move")
	assert.Equal(t, sq(t, "a1"), best.From())
	assert.Equal(t, sq(t, "a8"), best.To())
}

func TestSearchAvoidsZugzwangNullMove(t *testing.T) {
	// Classic null-move zugzwang test: White to move, the only
	// winning try is Kg5-h6; a null-move-blind searcher plays
	// something else because "doing nothing" looks fine to it.
	pos := mustFEN(t, "1q1k4/2Rr4/8/2Q3K1/8/8/8/8 w - - 0 1")
	tt := NewTranspositionTable(1)
	clock := newTestClock(3 * time.Second)
	s := NewSearcher(pos, tt, clock, nil)

	best, found := s.Search(1, 5)
	require.True(t, found, "Search() found no move")
	assert.Equal(t, sq(t, "g5"), best.From())
	assert.Equal(t, sq(t, "h6"), best.To())
}

func TestSearchStopsOnExpiredClock(t *testing.T) {
	pos := mustFEN(t, StartFEN)
	tt := NewTranspositionTable(1)
	clock := newTestClock(0)
	clock.Stop()
	s := NewSearcher(pos, tt, clock, nil)

	best, found := s.Search(1, 10)
	assert.False(t, found, "Search() with an already-expired clock returned a move %v, want none", best)
}

func TestPrincipalVariationFollowsTTMoves(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1")
	tt := NewTranspositionTable(1)
	clock := newTestClock(2 * time.Second)
	s := NewSearcher(pos, tt, clock, nil)

	best, found := s.Search(1, 3)
	require.True(t, found, "Search() found no move")
	pv := s.PrincipalVariation()
	require.NotEmpty(t, pv, "PrincipalVariation() after a completed search")
	assert.Equal(t, best, pv[0])
}

func TestParallelSearchFindsMateInOne(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1")
	tt := NewTranspositionTable(1)
	clock := NewClock(1, 2*time.Second)

	best, found := ParallelSearch(pos, tt, clock, nil, 4, 1, 4)
	require.True(t, found, "ParallelSearch() found no move")
	assert.Equal(t, sq(t, "a1"), best.From())
	assert.Equal(t, sq(t, "a8"), best.To())
}

func TestParallelSearchZeroThreadsRunsOneWorker(t *testing.T) {
	pos := mustFEN(t, StartFEN)
	tt := NewTranspositionTable(1)
	clock := NewClock(1, 2*time.Second)

	best, found := ParallelSearch(pos, tt, clock, nil, 0, 1, 2)
	require.True(t, found, "ParallelSearch() found no move")
	assert.False(t, best.IsNull())
}

func TestQuiescenceDoesNotMissHangingCapture(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/4p3/3P4/8/8/4K3 w - - 0 1")
	tt := NewTranspositionTable(1)
	clock := newTestClock(2 * time.Second)
	s := NewSearcher(pos, tt, clock, nil)
	score := s.quiescence(-Inf, Inf, 0)
	assert.GreaterOrEqual(t, score, PieceValue(Pawn), "quiescence() should find dxe5 winning a pawn")
}
