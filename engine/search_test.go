package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSearcher(t *testing.T, fen string) (*Searcher, *Board) {
	b, err := FromFEN(fen)
	require.NoError(t, err)
	eval := NewHandcraftedEvaluator(b, DefaultEvalConfig())
	tt := NewTranspositionTable(1)
	return NewSearcher(b, eval, tt), b
}

func TestSearchFindsMateInOne(t *testing.T) {
	// Black to move: Rd1# against a king boxed in by its own pawns.
	s, _ := newTestSearcher(t, "3r2k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	vars := s.Search(2000, false, 1)
	require.NotEmpty(t, vars)
	require.GreaterOrEqual(t, vars[0].Score, MateScore-int32(MaxPly))
}

func TestSearchReturnsLegalRootMove(t *testing.T) {
	s, b := newTestSearcher(t, StartFEN)
	vars := s.Search(500, false, 1)
	require.NotEmpty(t, vars)
	require.NotEmpty(t, vars[0].Moves)

	legal := b.GenerateLegalMoves()
	require.Contains(t, legal, vars[0].Moves[0])
}

func TestSearchMultiPVOrdersByScoreDescending(t *testing.T) {
	s, _ := newTestSearcher(t, StartFEN)
	vars := s.Search(500, false, 3)
	for i := 1; i < len(vars); i++ {
		require.GreaterOrEqual(t, vars[i-1].Score, vars[i].Score)
	}
}

func TestQuiescenceStandPatNeverWorsensStaticEval(t *testing.T) {
	s, b := newTestSearcher(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	staticEval := s.eval.Evaluate()
	q := s.quiescence(0, -Infinity, Infinity)
	require.GreaterOrEqual(t, q, staticEval)
	_ = b
}
