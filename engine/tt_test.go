package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTableGetAfterSet(t *testing.T) {
	tt := NewTranspositionTable(1)
	m := NewMove(SquareE2, SquareE4, DoublePawnPush)
	tt.Store(0x1234, m, 57, 6, BoundExact)

	got, ok := tt.Probe(0x1234)
	require.True(t, ok, "Probe() after Store()")
	assert.Equal(t, m, got.Move)
	assert.EqualValues(t, 57, got.Score)
	assert.EqualValues(t, 6, got.Depth)
	assert.Equal(t, BoundExact, got.Bound)
}

func TestTranspositionTableProbeMissOnEmptySlot(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, ok := tt.Probe(0xabcd)
	assert.False(t, ok, "Probe() on an empty table")
}

func TestTranspositionTableProbeMissOnHashCollision(t *testing.T) {
	tt := NewTranspositionTable(1)
	m := NewMove(SquareE2, SquareE4, DoublePawnPush)
	tt.Store(0x1234, m, 0, 1, BoundExact)

	// A different hash that happens to land in the same slot (same
	// low bits, since the table masks by capacity) must not be
	// reported as a hit.
	collidingHash := 0x1234 + tt.mask + 1
	_, ok := tt.Probe(collidingHash)
	assert.False(t, ok, "Probe() returned a stale entry for a colliding hash")
}

func TestTranspositionTableDeeperSearchNotOverwrittenBySameGeneration(t *testing.T) {
	tt := NewTranspositionTable(1)
	deep := NewMove(SquareE2, SquareE4, DoublePawnPush)
	shallow := NewMove(sq(t, "d2"), sq(t, "d4"), DoublePawnPush)

	tt.Store(0x5555, deep, 10, 8, BoundExact)
	tt.Store(0x5555, shallow, 20, 3, BoundExact)

	got, ok := tt.Probe(0x5555)
	require.True(t, ok)
	assert.Equal(t, deep, got.Move, "shallower same-generation store overwrote a deeper entry")
}

func TestTranspositionTableNewSearchAllowsOverwrite(t *testing.T) {
	tt := NewTranspositionTable(1)
	deep := NewMove(SquareE2, SquareE4, DoublePawnPush)
	shallow := NewMove(sq(t, "d2"), sq(t, "d4"), DoublePawnPush)

	tt.Store(0x5555, deep, 10, 8, BoundExact)
	tt.NewSearch()
	tt.Store(0x5555, shallow, 20, 3, BoundExact)

	got, ok := tt.Probe(0x5555)
	require.True(t, ok)
	assert.Equal(t, shallow, got.Move, "NewSearch() did not age out the stale entry")
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0x9999, NewMove(SquareE2, SquareE4, DoublePawnPush), 0, 1, BoundExact)
	tt.Clear()
	_, ok := tt.Probe(0x9999)
	assert.False(t, ok, "Probe() after Clear()")
}

func TestTranspositionTableStatsCountLookupsHitsCollisionsInserts(t *testing.T) {
	tt := NewTranspositionTable(1)
	m := NewMove(SquareE2, SquareE4, DoublePawnPush)

	tt.Store(0x1234, m, 0, 1, BoundExact)
	tt.Probe(0x1234)                      // hit
	tt.Probe(0x1234 + tt.mask + 1)        // collision: shares the slot, different hash
	tt.Probe(0xdead)                      // miss: empty slot

	stats := tt.Stats()
	assert.EqualValues(t, 1, stats.Inserts)
	assert.EqualValues(t, 3, stats.Lookups)
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Collisions)

	tt.Clear()
	assert.Equal(t, TTStats{}, tt.Stats(), "Clear() should reset stats")
}
