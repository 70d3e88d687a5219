package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefereeCheckmate(t *testing.T) {
	// Fool's mate.
	b, err := FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	result := Referee(b, InsufficientMaterial(b))
	require.Equal(t, OutcomeCheckmate, result.Outcome)
	require.Equal(t, Black, result.Winner)
}

func TestRefereeStalemate(t *testing.T) {
	b, err := FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	result := Referee(b, InsufficientMaterial(b))
	require.Equal(t, OutcomeStalemate, result.Outcome)
}

func TestRefereeFiftyMoveRule(t *testing.T) {
	b, err := FromFEN("8/8/8/4k3/8/8/8/4K3 w - - 100 60")
	require.NoError(t, err)
	result := Referee(b, InsufficientMaterial(b))
	require.Equal(t, OutcomeFiftyMoveRule, result.Outcome)
}

func TestInsufficientMaterialKingsOnly(t *testing.T) {
	b, err := FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, InsufficientMaterial(b))
}

func TestInsufficientMaterialKingAndRookIsNotDraw(t *testing.T) {
	b, err := FromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	require.False(t, InsufficientMaterial(b))
}
