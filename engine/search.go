// search.go implements iterative-deepening alpha-beta negamax with
// quiescence, null-move pruning, late-move reductions, futility
// pruning, internal iterative deepening, and principal-variation
// reconstruction from the transposition table (spec.md §4.7).
//
// Grounded on zurichess's engine/engine.go search loop shape
// (iterative deepening outer loop, negamax with TT probe/store,
// killer updates on beta cutoff) combined with littlewing's
// search.rs for the null-move/LMR/futility gating conditions, and
// its fn parallel (search.rs:409) for the multi-threaded root search.

package engine

import "sync"

// MaxPly bounds search depth (spec.md §5's resource bound).
const MaxPly = 128

// FutilityMargin is the depth==1 futility pruning margin. Not fixed
// by the spec; 100 (one pawn) is a conventional starting value.
const FutilityMargin = 100

// lmrMinDepth is the shallowest depth at which late move reduction
// applies (spec.md §4.7: "at depth > 2").
const lmrMinDepth = 3

// Searcher drives one iterative-deepening search rooted at a
// Position, reusing a shared transposition table and killer table
// across depths.
type Searcher struct {
	stack   *Stack
	tt      *TranspositionTable
	clock   *Clock
	killers KillerTable
	log     Logger

	nodes    int
	rootBest Move
}

// NewSearcher returns a Searcher rooted at pos, sharing tt and
// paced by clock. A nil log is replaced with NopLogger.
func NewSearcher(pos *Position, tt *TranspositionTable, clock *Clock, log Logger) *Searcher {
	if log == nil {
		log = NopLogger{}
	}
	return &Searcher{stack: NewStack(pos), tt: tt, clock: clock, log: log}
}

// Nodes returns the number of nodes visited by the most recent Search.
func (s *Searcher) Nodes() int { return s.nodes }

// Search performs iterative deepening from minDepth to maxDepth,
// returning the best move found and whether any depth completed.
// Once the clock expires mid-depth, that depth's partial results
// are discarded and the prior depth's move is returned instead.
//
// Search starts the clock and bumps the table's generation itself,
// so it is for single-threaded callers; ParallelSearch does both of
// those once for the whole worker pool and drives each worker's
// iterative deepening with searchIterativeDeepening instead.
func (s *Searcher) Search(minDepth, maxDepth int) (Move, bool) {
	s.clock.Start()
	s.tt.NewSearch()
	return s.searchIterativeDeepening(minDepth, maxDepth)
}

// searchIterativeDeepening runs the iterative-deepening loop itself,
// assuming the caller has already started the clock and bumped the
// table's generation.
func (s *Searcher) searchIterativeDeepening(minDepth, maxDepth int) (Move, bool) {
	s.nodes = 0
	s.rootBest = NullMove

	var best Move
	found := false
	mateStreak := 0

	for depth := minDepth; depth <= maxDepth && depth <= MaxPly; depth++ {
		s.log.BeginSearch(depth)
		score, move, completed := s.searchRoot(depth)
		if !completed {
			s.log.EndSearch(depth, 0, s.nodes, false)
			break
		}
		best, found = move, true
		s.rootBest = move
		s.log.EndSearch(depth, score, s.nodes, true)

		if abs(score) > Inf-MaxPly {
			mateStreak++
		} else {
			mateStreak = 0
		}
		if mateStreak >= 3 {
			break
		}
		if s.clock.Finished() {
			break
		}
	}
	return best, found
}

// ParallelSearch runs threads independent Searcher workers rooted at
// pos, all sharing tt and clock, each running its own iterative
// deepening over a private Stack and killer table. It returns the
// first worker's result (spec.md §4.7; grounded on
// original_source/src/search.rs:409's fn parallel, which likewise
// joins every thread.spawn'd clone.root() call and returns res[0],
// "best move found by the first thread"). threads < 1 behaves like 1.
// Only worker 0 logs; the rest get NopLogger, mirroring parallel's
// clone.is_verbose = false for i > 0.
func ParallelSearch(pos *Position, tt *TranspositionTable, clock *Clock, log Logger, threads, minDepth, maxDepth int) (Move, bool) {
	if threads < 1 {
		threads = 1
	}
	clock.Start()
	tt.NewSearch()

	type result struct {
		move  Move
		found bool
	}
	results := make([]result, threads)

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		workerLog := log
		if i > 0 {
			workerLog = NopLogger{}
		}
		s := NewSearcher(pos, tt, clock, workerLog)
		wg.Add(1)
		go func(i int, s *Searcher) {
			defer wg.Done()
			move, found := s.searchIterativeDeepening(minDepth, maxDepth)
			results[i] = result{move, found}
		}(i, s)
	}
	wg.Wait()

	return results[0].move, results[0].found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// searchRoot searches one depth from the current root position,
// returning (score, bestMove, completed). completed is false if the
// clock ran out before every root move had been searched, in which
// case score/bestMove must be ignored.
func (s *Searcher) searchRoot(depth int) (int, Move, bool) {
	pos := s.stack.Top()
	ttMove := s.rootBest
	if ttMove.IsNull() {
		if e, ok := s.tt.Probe(pos.Hash); ok {
			ttMove = e.Move
		}
	}

	ml := NewMoveList(pos, ttMove, s.killers.Get(0))
	alpha, beta := -Inf, Inf
	best := NullMove
	bestScore := -Inf
	legal := 0

	for {
		m, ok := ml.NextMove()
		if !ok {
			break
		}
		s.stack.Make(m)
		mover := s.stack.Top().Them()
		if s.stack.Top().IsChecked(mover) {
			s.stack.Undo()
			continue
		}
		legal++

		var score int
		if legal == 1 {
			score = -s.negamax(-beta, -alpha, depth-1, 1)
		} else {
			score = -s.negamax(-alpha-1, -alpha, depth-1, 1)
			if score > alpha {
				score = -s.negamax(-beta, -alpha, depth-1, 1)
			}
		}
		s.stack.Undo()

		if s.clock.Finished() {
			return 0, NullMove, false
		}
		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}

	if legal == 0 {
		return 0, NullMove, false
	}

	s.tt.Store(pos.Hash, best, bestScore, depth, BoundExact)
	return bestScore, best, true
}

// negamax searches one node at depth plies remaining, ply from the
// root, within window (alpha, beta), returning a score relative to
// the side to move.
func (s *Searcher) negamax(alpha, beta, depth, ply int) int {
	s.nodes++
	if s.clock.Poll(s.nodes) {
		return 0
	}
	if depth <= 0 {
		return s.quiescence(alpha, beta, ply)
	}

	if s.stack.IsDraw() {
		return 0
	}

	pos := s.stack.Top()
	pvNode := beta-alpha > 1
	origAlpha := alpha

	ttMove := NullMove
	if e, ok := s.tt.Probe(pos.Hash); ok {
		if int(e.Depth) >= depth {
			score := int(e.Score)
			switch e.Bound {
			case BoundExact:
				return score
			case BoundLower:
				if score >= beta {
					return score
				}
			case BoundUpper:
				if score <= alpha {
					return score
				}
			}
		}
		ttMove = e.Move
	}

	inCheck := pos.IsChecked(pos.Us())

	if !inCheck && !pvNode && depth > 2 && pos.NullMoveAllowed && pos.NonPawnMaterial(pos.Us()) {
		r := depth - 1
		if r > 3 {
			r = 3
		}
		s.stack.Make(NullMove)
		score := -s.negamax(-beta, -beta+1, depth-r-1, ply+1)
		s.stack.Undo()
		if score >= beta {
			return score
		}
	}

	if pvNode && ttMove.IsNull() && depth >= 4 {
		s.negamax(alpha, beta, depth/2, ply)
		if e, ok := s.tt.Probe(pos.Hash); ok {
			ttMove = e.Move
		}
	}

	staticEval := Eval(pos)
	ml := NewMoveList(pos, ttMove, s.killers.Get(ply))

	legal := 0
	best := NullMove
	bestScore := -Inf

	for {
		m, ok := ml.NextMove()
		if !ok {
			break
		}
		s.stack.Make(m)
		mover := s.stack.Top().Them()
		if s.stack.Top().IsChecked(mover) {
			s.stack.Undo()
			continue
		}
		legal++
		givesCheck := s.stack.Top().IsChecked(s.stack.Top().Us())
		quietCandidate := legal > 1 && !pvNode && !inCheck && !givesCheck && m.IsQuiet() && !m.IsPromotion()

		if depth == 1 && quietCandidate && staticEval+FutilityMargin < alpha {
			s.stack.Undo()
			continue
		}

		var score int
		switch {
		case legal == 1:
			score = -s.negamax(-beta, -alpha, depth-1, ply+1)
		case depth >= lmrMinDepth && quietCandidate:
			reduced := depth - 2
			if reduced < 1 {
				reduced = 1
			}
			score = -s.negamax(-alpha-1, -alpha, reduced, ply+1)
			if score > alpha {
				score = -s.negamax(-beta, -alpha, depth-1, ply+1)
			}
		default:
			score = -s.negamax(-beta, -alpha, depth-1, ply+1)
		}
		s.stack.Undo()

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if m.IsQuiet() {
				s.killers.Update(ply, m)
			}
			s.tt.Store(pos.Hash, m, beta, depth, BoundLower)
			return beta
		}
	}

	if legal == 0 {
		if inCheck {
			return -Inf + ply
		}
		return 0
	}

	bound := BoundUpper
	if bestScore > origAlpha {
		bound = BoundExact
	}
	s.tt.Store(pos.Hash, best, bestScore, depth, bound)
	return bestScore
}

// quiescence resolves captures (and queen promotions) until the
// position is quiet, guarding against the horizon effect at the
// leaves of the main search (spec.md §4.7).
func (s *Searcher) quiescence(alpha, beta int, ply int) int {
	s.nodes++
	if s.clock.Poll(s.nodes) {
		return 0
	}
	pos := s.stack.Top()
	if ply >= MaxPly {
		return Eval(pos)
	}

	standPat := Eval(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	for _, sc := range QuiescenceMoves(pos) {
		if sc.See < 0 {
			continue
		}
		s.stack.Make(sc.Move)
		mover := s.stack.Top().Them()
		if s.stack.Top().IsChecked(mover) {
			s.stack.Undo()
			continue
		}
		score := -s.quiescence(-beta, -alpha, ply+1)
		s.stack.Undo()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// PrincipalVariation follows TT best moves from the current root,
// making and undoing as it goes, stopping at a null/missing move or
// when the position repeats (spec.md §4.7).
func (s *Searcher) PrincipalVariation() []Move {
	var pv []Move
	seen := make(map[uint64]bool)

	for len(pv) < MaxPly {
		pos := s.stack.Top()
		if seen[pos.Hash] {
			break
		}
		seen[pos.Hash] = true

		e, ok := s.tt.Probe(pos.Hash)
		if !ok || e.Move.IsNull() || !IsPseudoLegal(pos, e.Move) {
			break
		}
		pv = append(pv, e.Move)
		s.stack.Make(e.Move)
	}
	for range pv {
		s.stack.Undo()
	}
	return pv
}
