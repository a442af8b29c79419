// tt.go implements the shared transposition table of spec.md §4.5: a
// fixed power-of-two capacity of 16-byte entries (hash, move, score,
// depth, bound, age), with no locking. Torn reads are tolerated
// because every probe is hash-verified and every returned move is
// re-validated against the current position before use.
//
// Grounded on zurichess's engine/hash_table.go (byte-budget sizing
// rounded to a power of two, masked indexing) and littlewing's
// transposition_table.rs/transposition.rs age-based replacement,
// adapted to spec.md's own entry layout and bound encoding. The
// lookups/hits/collisions/inserts counters are ported from
// transposition_table.rs's stats_lookups/stats_hits/stats_collisions/
// stats_inserts, kept as atomic counters here since the table itself
// is shared lock-free across the parallel search's worker goroutines.

package engine

import "sync/atomic"

// TTStats is a snapshot of a table's usage counters since the last
// Clear, mirroring transposition_table.rs's print_stats fields.
type TTStats struct {
	Lookups    uint64
	Hits       uint64
	Collisions uint64
	Inserts    uint64
}

// Bound records which side of the search window a stored score
// pins: exact, a fail-low upper bound, or a fail-high lower bound.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// TTEntry is one transposition table slot. It is empty iff Move is
// NullMove (spec.md §3's invariant for the entry type).
type TTEntry struct {
	Hash  uint64
	Move  Move
	Score int16
	Depth int8
	Bound Bound
	Age   uint8
}

// Empty reports whether e holds no entry.
func (e TTEntry) Empty() bool { return e.Move == NullMove }

// TranspositionTable is a fixed-capacity, power-of-two-sized array
// of entries shared (without locking) across concurrent searchers.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
	age     uint8

	lookups    uint64
	hits       uint64
	collisions uint64
	inserts    uint64
}

// NewTranspositionTable allocates a table sized to hold roughly
// sizeMB megabytes of entries, rounding capacity down to a power of
// two so indexing is a mask instead of a modulo.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entryBytes = 16
	want := sizeMB * 1024 * 1024 / entryBytes
	capacity := 1
	for capacity*2 <= want {
		capacity *= 2
	}
	if capacity < 1 {
		capacity = 1
	}
	return &TranspositionTable{
		entries: make([]TTEntry, capacity),
		mask:    uint64(capacity - 1),
	}
}

func (tt *TranspositionTable) index(hash uint64) uint64 { return hash & tt.mask }

// Probe returns the entry at hash's slot and whether it is both
// present and actually matches hash (a different position can share
// a slot; the caller must not trust Move/Score unless ok is true).
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	atomic.AddUint64(&tt.lookups, 1)
	e := tt.entries[tt.index(hash)]
	if e.Empty() {
		return TTEntry{}, false
	}
	if e.Hash != hash {
		atomic.AddUint64(&tt.collisions, 1)
		return TTEntry{}, false
	}
	atomic.AddUint64(&tt.hits, 1)
	return e, true
}

// Store writes an entry for hash, replacing the slot's occupant if
// it belongs to a stale generation or was searched to a shallower
// (or equal) depth; a same-generation, deeper-searched occupant is
// kept.
func (tt *TranspositionTable) Store(hash uint64, move Move, score int, depth int, bound Bound) {
	idx := tt.index(hash)
	e := &tt.entries[idx]
	if !e.Empty() && e.Age == tt.age && int8(depth) < e.Depth {
		return
	}
	*e = TTEntry{
		Hash:  hash,
		Move:  move,
		Score: int16(score),
		Depth: int8(depth),
		Bound: bound,
		Age:   tt.age,
	}
	atomic.AddUint64(&tt.inserts, 1)
}

// Stats returns a snapshot of the table's lookup/hit/collision/insert
// counters accumulated since the last Clear.
func (tt *TranspositionTable) Stats() TTStats {
	return TTStats{
		Lookups:    atomic.LoadUint64(&tt.lookups),
		Hits:       atomic.LoadUint64(&tt.hits),
		Collisions: atomic.LoadUint64(&tt.collisions),
		Inserts:    atomic.LoadUint64(&tt.inserts),
	}
}

// NewSearch bumps the table's generation, so entries written by
// prior searches become replaceable regardless of their depth.
func (tt *TranspositionTable) NewSearch() { tt.age++ }

// Clear empties every slot, discarding all stored positions.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age = 0
	atomic.StoreUint64(&tt.lookups, 0)
	atomic.StoreUint64(&tt.hits, 0)
	atomic.StoreUint64(&tt.collisions, 0)
	atomic.StoreUint64(&tt.inserts, 0)
}
