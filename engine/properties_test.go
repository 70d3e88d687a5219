package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Double check: only the king may move, no block or capture-of-checker
// is legal even though one of the two checkers could otherwise be taken.
func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// White king on e1, checked simultaneously by a rook on e8 (file)
	// and a bishop on h4 (diagonal). Black to move is irrelevant here;
	// it is White's king in double check so White is to move.
	b, err := FromFEN("4r3/8/8/8/7b/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, b.IsCheck())

	for _, m := range b.GenerateLegalMoves() {
		require.Equal(t, SquareE1, m.From(), "only the king square may move under double check")
	}
}

// Pin restriction: a pinned rook may only move along the pin ray
// (including capturing the pinner), never off it.
func TestPinnedRookRestrictedToPinRay(t *testing.T) {
	// White king e1, white rook e4, black rook e8 pinning along the
	// e-file. The pinned rook may shuffle on e-file or take the pinner,
	// but may not step sideways off the file.
	b, err := FromFEN("4r3/8/8/8/4R3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	for _, m := range b.GenerateLegalMoves() {
		if m.From() != SquareE4 {
			continue
		}
		require.Equal(t, 4, m.To().File(), "pinned rook must stay on the e-file")
	}
}

// Threefold repetition: replaying the same knight shuffle back to the
// start position three times must be flagged by the referee.
func TestRefereeThreefoldRepetition(t *testing.T) {
	b, err := FromFEN(StartFEN)
	require.NoError(t, err)

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	require.Equal(t, OutcomeInProgress, Referee(b, InsufficientMaterial(b)).Outcome)

	for round := 0; round < 2; round++ {
		for _, s := range shuffle {
			m, err := ParseUCIMove(b, s)
			require.NoError(t, err)
			b.MakeMove(m)
		}
	}

	require.Equal(t, OutcomeThreefoldRepetition, Referee(b, InsufficientMaterial(b)).Outcome)
}

// Mate scores must be monotonically more extreme the closer the mate is
// to the root: a forced mate found one ply sooner scores strictly
// higher than the same mate found one ply later, so search prefers the
// fastest mate. Exercised through the real Searcher/pvSearch path (the
// mate-distance clamp at search.go and the no-legal-moves terminal
// check), not just the MateScore constant's own arithmetic.
func TestMateScoreMonotonicDecreasesWithPly(t *testing.T) {
	s, _ := newTestSearcher(t, "3r2k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")

	vars := s.Search(2000, false, 1)
	require.NotEmpty(t, vars)
	require.Equal(t, MateScore-1, vars[0].Score, "Rd1# is mate in 1 from the root")

	// Replay pvSearch's own scoring on the identical position as if it
	// were reached two plies deeper in some other line, mirroring how
	// Search() primes extensions/extensionCap per iteration.
	s.extensions, s.extensionCap = 0, 5
	deeper := s.pvSearch(1, 2, -Infinity, Infinity, NodePV)
	require.Equal(t, MateScore-3, deeper, "the same mate found 2 plies deeper scores exactly 2 less")

	require.Greater(t, vars[0].Score, deeper, "a closer mate must score strictly higher than a further one")
}

// Null-move pruning must not run when the side to move has only its
// king and pawns (zugzwang risk), even though the guard itself lives on
// Searcher, not Board.
func TestHasNonPawnMaterialFalseForKingAndPawnsOnly(t *testing.T) {
	s, _ := newTestSearcher(t, "4k3/4p3/8/8/8/8/4P3/4K3 w - - 0 1")
	require.False(t, s.hasNonPawnMaterial())
}

func TestHasNonPawnMaterialTrueWithAMinorOnBoard(t *testing.T) {
	s, _ := newTestSearcher(t, "4k3/4p3/8/8/8/8/4PN2/4K3 w - - 0 1")
	require.True(t, s.hasNonPawnMaterial())
}
