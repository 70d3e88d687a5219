// search.go implements the iterative-deepening principal-variation
// search described in spec.md §4.6-§4.9: aspiration windows, TT-backed
// alpha-beta with null-move pruning, late-move reductions/pruning,
// futility pruning, a singular-extension check, killer/history/
// counter-move ordering, and multi-PV root search. Grounded on
// zurichess's engine/engine.go search driver (iterative deepening loop
// polling a stop flag, a recursive pvSearch calling quiescence) but
// restructured around this package's Board/TT/heuristics-table shapes;
// move-list sorting uses golang.org/x/exp/slices per the domain-stack
// wiring decision recorded in SPEC_FULL.md.
package engine

import (
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slices"
)

const (
	MateScore       int32 = 32000
	Infinity        int32 = 32001
	NodesPerCheckup       = 1024
)

// NodeType predicts a frame's role in the PV tree, used to gate
// TT-cutoff use, null-move pruning, and reduction aggressiveness.
type NodeType uint8

const (
	NodePV NodeType = iota
	NodeCut
	NodeAll
)

// Variation is one scored line from the root (SPEC_FULL §4.10).
type Variation struct {
	Moves []Move
	Score int32
}

// Searcher drives one search task against one Board. It owns all of
// its heuristics tables privately; only the TranspositionTable is
// shared across concurrent Searchers (spec.md §5).
type Searcher struct {
	board *Board
	eval  Evaluator
	tt    *TranspositionTable

	killers  KillerTable
	history  HistoryTable
	counters CounterMoveTable
	pv       PVTable

	playedMove [MaxPly]Move
	playedKind [MaxPly]PieceKind

	rootAge       uint8
	nodes         uint64
	stopFlag      int32
	deadline      time.Time
	numVariations int
	extensions    int
	extensionCap  int
}

// NewSearcher binds a search task to a board and a shared TT. eval
// must already be bound to the same board.
func NewSearcher(b *Board, eval Evaluator, tt *TranspositionTable) *Searcher {
	return &Searcher{board: b, eval: eval, tt: tt}
}

// Stop requests cooperative cancellation (spec.md §4.7.9/§5).
func (s *Searcher) Stop() { atomic.StoreInt32(&s.stopFlag, 1) }

func (s *Searcher) stopped() bool { return atomic.LoadInt32(&s.stopFlag) != 0 }

func (s *Searcher) checkup() bool {
	if s.stopped() {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		atomic.StoreInt32(&s.stopFlag, 1)
		return true
	}
	return false
}

// Search runs iterative deepening until the time budget or a forced
// mate is reached, returning up to numVariations scored lines sorted
// best first.
func (s *Searcher) Search(timeMs int, treatAsTimeControl bool, numVariations int) []Variation {
	atomic.StoreInt32(&s.stopFlag, 0)
	s.deadline = time.Now().Add(allocateTime(timeMs, treatAsTimeControl))
	s.numVariations = numVariations
	if s.numVariations < 1 {
		s.numVariations = 1
	}
	s.rootAge = uint8(s.board.Ply())
	s.history.Age()

	var lastComplete []Variation
	prevScore := int32(0)

	for depth := 1; depth <= MaxPly; depth++ {
		alpha, beta := -Infinity, Infinity
		if depth > 1 {
			delta := int32(25)
			alpha, beta = prevScore-delta, prevScore+delta
		}

		var result []Variation
		for step := 0; ; step++ {
			s.extensions = 0
			s.extensionCap = depth
			result = s.searchRoot(depth, alpha, beta)
			if s.stopped() || len(result) == 0 {
				break
			}
			top := result[0].Score
			if top <= alpha && step < 2 {
				delta := (alpha - prevScore) * -4
				if delta < 100 {
					delta = 400
				}
				alpha = prevScore - delta
				continue
			}
			if top >= beta && step < 2 {
				delta := (beta - prevScore) * 4
				if delta < 100 {
					delta = 400
				}
				beta = prevScore + delta
				continue
			}
			if top <= alpha || top >= beta {
				alpha, beta = -Infinity, Infinity
				continue
			}
			break
		}

		if s.stopped() || len(result) == 0 {
			break
		}
		lastComplete = result
		prevScore = result[0].Score
		if abs32(prevScore) >= MateScore-int32(MaxPly) {
			break
		}
	}
	return lastComplete
}

// searchRoot searches every legal root move and returns the best
// numVariations lines, sorted best first.
func (s *Searcher) searchRoot(depth int, alpha, beta int32) []Variation {
	hash := s.board.Hash()
	ttMove, _, _, _, _ := s.tt.Probe(hash)

	moves := s.board.GenerateLegalMoves()
	if len(moves) == 0 {
		return nil
	}
	s.orderMoves(moves, 0, ttMove)

	var results []Variation
	for _, m := range moves {
		if s.checkup() {
			break
		}
		moverKind := s.board.PieceAt(m.From()).Kind()
		s.board.MakeMove(m)
		s.playedMove[0], s.playedKind[0] = m, moverKind
		score := -s.pvSearch(depth-1, 1, -beta, -alpha, NodePV)
		s.board.UndoMove()
		if s.stopped() {
			break
		}

		line := make([]Move, 0, 1+len(s.pv.Line(1)))
		line = append(line, m)
		line = append(line, s.pv.Line(1)...)
		results = append(results, Variation{Moves: line, Score: score})
		if len(results) >= s.numVariations {
			slices.SortFunc(results, func(a, b Variation) int { return int(b.Score - a.Score) })
			if kth := results[s.numVariations-1].Score; kth > alpha {
				alpha = kth
			}
		}
	}

	slices.SortFunc(results, func(a, b Variation) int { return int(b.Score - a.Score) })
	if len(results) > s.numVariations {
		results = results[:s.numVariations]
	}
	return results
}

// pvSearch implements the recursive PVS core of spec.md §4.7.
func (s *Searcher) pvSearch(depth, ply int, alpha, beta int32, nodeType NodeType) int32 {
	s.nodes++
	if s.nodes%NodesPerCheckup == 0 && s.checkup() {
		return 0
	}
	s.pv.Clear(ply)
	if ply >= MaxPly-1 {
		return s.eval.Evaluate()
	}

	if ply > 0 && s.eval.IsDraw() {
		s.pv.Clear(ply)
		return 0
	}

	alpha = max32(alpha, -MateScore+int32(ply))
	beta = min32(beta, MateScore-int32(ply)-1)
	if alpha >= beta {
		return alpha
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	hash := s.board.Hash()
	ttMove, ttScore, ttDepth, ttBound, ttFound := s.tt.Probe(hash)
	if ttFound && int(ttDepth) >= depth && nodeType != NodePV {
		switch ttBound {
		case BoundExact:
			return int32(ttScore)
		case BoundLower:
			if int32(ttScore) >= beta {
				return int32(ttScore)
			}
		case BoundUpper:
			if int32(ttScore) <= alpha {
				return int32(ttScore)
			}
		}
	}

	inCheck := s.board.IsCheck()
	var staticEval int32
	if ttFound {
		staticEval = int32(ttScore)
	} else {
		staticEval = s.eval.Evaluate()
	}

	if nodeType != NodePV && !inCheck && depth > 1 && s.hasNonPawnMaterial() {
		r := depth / 2
		if r < 2 {
			r = 2
		}
		s.board.MakeNullMove()
		score := -s.pvSearch(depth-1-r, ply+1, -beta, -beta+1, NodeCut)
		s.board.UndoNullMove()
		if s.stopped() {
			return 0
		}
		if score >= beta {
			return score
		}
	}

	if !ttFound && depth >= 6 && nodeType != NodeAll {
		s.pvSearch(depth-3, ply, alpha, beta, nodeType)
		ttMove, _, _, _, ttFound = s.tt.Probe(hash)
	}

	moves := s.board.GenerateLegalMoves()
	if len(moves) == 0 {
		s.pv.Clear(ply)
		if inCheck {
			return -MateScore + int32(ply)
		}
		return 0
	}
	s.orderMoves(moves, ply, ttMove)

	extendHashMove := s.singularCandidate(moves, ttMove, ttFound, ttDepth, ttBound, depth, ply, alpha)

	bestScore := -Infinity
	var bestMove Move
	originalAlpha := alpha

	for i, m := range moves {
		isTactical := m.IsCapture() || m.IsPromotion()

		if depth <= 2 && nodeType != NodePV && !inCheck && !isTactical && i > 0 {
			margin := int32(100 * depth)
			if staticEval+margin < alpha {
				if bestScore < staticEval {
					bestScore = staticEval
				}
				continue
			}
		}
		if nodeType != NodePV && !inCheck && !isTactical && depth <= 8 {
			lmpCount := 4 + depth*depth
			if i >= lmpCount && s.history.Get(s.board.SideToMove(), m.From(), m.To()) <= 0 {
				continue
			}
		}

		moverKind := s.board.PieceAt(m.From()).Kind()
		s.board.MakeMove(m)
		s.playedMove[ply], s.playedKind[ply] = m, moverKind

		childType := NodeCut
		if nodeType == NodePV && i == 0 {
			childType = NodePV
		} else if nodeType == NodeCut {
			childType = NodeAll
		}

		extension := 0
		if s.extensions < s.extensionCap {
			if inCheck || s.board.IsCheck() {
				extension = 1
			} else if extendHashMove && m == ttMove {
				extension = 1
			}
			s.extensions += extension
		}
		newDepth := depth - 1 + extension

		var score int32
		if i == 0 {
			score = -s.pvSearch(newDepth, ply+1, -beta, -alpha, childType)
		} else {
			reduction := 0
			if i >= 2 && !isTactical && extension == 0 && depth >= 3 {
				reduction = int(math.Log(float64(depth))/math.Log(6)) + 1
				if s.history.Get(s.board.SideToMove().Opposite(), m.From(), m.To()) > 0 {
					reduction--
				}
				if reduction < 0 {
					reduction = 0
				}
				if newDepth-reduction < 1 {
					reduction = newDepth - 1
				}
				if reduction < 0 {
					reduction = 0
				}
			}
			score = -s.pvSearch(newDepth-reduction, ply+1, -alpha-1, -alpha, NodeCut)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -s.pvSearch(newDepth, ply+1, -beta, -alpha, NodePV)
			}
		}

		s.board.UndoMove()
		if s.stopped() {
			return 0
		}

		if score >= beta {
			s.tt.Put(hash, m, clampScore(score), uint8(depth), BoundLower, s.rootAge)
			if !isTactical {
				s.killers.Add(ply, m)
				s.history.Add(s.board.SideToMove(), m.From(), m.To(), int32(depth*depth))
				if ply > 0 {
					s.counters.Set(s.playedKind[ply-1], s.playedMove[ply-1].To(), s.board.SideToMove(), m)
				}
			}
			return score
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.pv.Update(ply, m, s.pv.Line(ply+1))
				if !isTactical {
					s.history.Add(s.board.SideToMove(), m.From(), m.To(), int32(depth*depth))
				}
			}
		} else if !isTactical {
			s.history.Add(s.board.SideToMove(), m.From(), m.To(), -int32(depth))
		}
	}

	bound := BoundUpper
	if bestScore > originalAlpha {
		bound = BoundExact
	}
	s.tt.Put(hash, bestMove, clampScore(bestScore), uint8(depth), bound, s.rootAge)
	return bestScore
}

// singularCandidate implements §4.7.6: if every non-hash move fails
// low against a narrow window below alpha, the hash move is uniquely
// good and earns a one-ply extension.
func (s *Searcher) singularCandidate(moves []Move, ttMove Move, ttFound bool, ttDepth uint8, ttBound Bound, depth, ply int, alpha int32) bool {
	if !ttFound || ttMove == NullMove || int(ttDepth) < depth-4 || ttBound == BoundUpper {
		return false
	}
	if alpha <= -MateScore+int32(MaxPly) || alpha >= MateScore-int32(MaxPly) {
		return false
	}
	singularBeta := alpha - 100

	allFailLow := true
	for _, m := range moves {
		if m == ttMove {
			continue
		}
		s.board.MakeMove(m)
		score := -s.pvSearch(depth/2, ply+1, -singularBeta-1, -singularBeta, NodeCut)
		s.board.UndoMove()
		if s.stopped() {
			return false
		}
		if score >= singularBeta {
			allFailLow = false
			break
		}
	}
	return allFailLow
}

// quiescence implements spec.md §4.8: fail-soft capture-only search
// with check evasion, delta pruning, and SEE-ordered/filtered captures.
func (s *Searcher) quiescence(ply int, alpha, beta int32) int32 {
	s.nodes++
	if s.nodes%NodesPerCheckup == 0 && s.checkup() {
		return 0
	}
	if ply >= MaxPly-1 {
		return s.eval.Evaluate()
	}
	if s.eval.IsDraw() {
		return 0
	}

	if s.board.IsCheck() {
		moves := s.board.GenerateLegalMoves()
		if len(moves) == 0 {
			return -MateScore + int32(ply)
		}
		s.orderMoves(moves, ply, NullMove)
		best := -Infinity
		for _, m := range moves {
			s.board.MakeMove(m)
			score := -s.quiescence(ply+1, -beta, -alpha)
			s.board.UndoMove()
			if s.stopped() {
				return 0
			}
			if score >= beta {
				return score
			}
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
		}
		return best
	}

	const deltaMargin = 2000
	standPat := s.eval.Evaluate()
	if standPat >= beta {
		return standPat
	}
	if standPat < alpha-deltaMargin {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := s.board.GenerateLegalCaptures()
	s.orderMoves(moves, ply, NullMove)

	best := standPat
	for _, m := range moves {
		if s.board.SEE(m) < 0 {
			continue
		}
		s.board.MakeMove(m)
		score := -s.quiescence(ply+1, -beta, -alpha)
		s.board.UndoMove()
		if s.stopped() {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
	}
	return best
}

type scoredMove struct {
	m  Move
	sc int32
}

// orderMoves sorts moves in place, highest-priority first, per the
// bucket order of spec.md §4.7.5.
func (s *Searcher) orderMoves(moves []Move, ply int, ttMove Move) {
	k1, k2 := s.killers.Get(ply)
	var k3, k4 Move = NullMove, NullMove
	if ply >= 2 {
		k3, k4 = s.killers.Get(ply - 2)
	}
	counter := NullMove
	if ply > 0 {
		counter = s.counters.Get(s.playedKind[ply-1], s.playedMove[ply-1].To(), s.board.SideToMove())
	}

	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		var sc int32
		switch {
		case m == ttMove && ttMove != NullMove:
			sc = 1_000_000
		case m.IsCapture() || m.IsPromotion():
			see := s.board.SEE(m)
			if see >= 0 {
				sc = 500_000 + see
			} else {
				sc = -500_000 + see
			}
		case m == k1 || m == k2:
			sc = 300_000
		case m == k3 || m == k4:
			sc = 290_000
		case m == counter:
			sc = 280_000
		default:
			sc = s.history.Get(s.board.SideToMove(), m.From(), m.To())
			if sc >= 280_000 {
				sc = 279_999
			}
		}
		scored[i] = scoredMove{m, sc}
	}

	slices.SortFunc(scored, func(a, b scoredMove) int { return int(b.sc - a.sc) })
	for i := range moves {
		moves[i] = scored[i].m
	}
}

func (s *Searcher) hasNonPawnMaterial() bool {
	c := s.board.SideToMove()
	return s.board.ByColorKind(c, Knight)|s.board.ByColorKind(c, Bishop)|
		s.board.ByColorKind(c, Rook)|s.board.ByColorKind(c, Queen) != 0
}

func clampScore(score int32) int16 {
	if score > 32767 {
		return 32767
	}
	if score < -32768 {
		return -32768
	}
	return int16(score)
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func abs32(a int32) int32 {
	if a < 0 {
		return -a
	}
	return a
}
