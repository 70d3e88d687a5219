package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSEEWinningCapture(t *testing.T) {
	// White rook takes an undefended pawn: wins a clean pawn.
	b, err := FromFEN("4k3/8/8/8/8/8/3p4/3R3K w - - 0 1")
	require.NoError(t, err)
	m := NewMove(SquareD1, SquareD2, FlagCapture)
	require.Equal(t, int32(100), b.SEE(m))
}

func TestSEELosingCapture(t *testing.T) {
	// White queen takes a pawn defended by a rook: loses the exchange.
	b, err := FromFEN("4k3/8/8/8/3r4/8/3p3K/3Q4 w - - 0 1")
	require.NoError(t, err)
	m := NewMove(SquareD1, SquareD2, FlagCapture)
	require.Less(t, b.SEE(m), int32(0))
}

func TestMVVLVAPrefersBiggerVictim(t *testing.T) {
	rookVictim, err := FromFEN("4k3/8/8/8/8/8/3r4/3R3K w - - 0 1")
	require.NoError(t, err)
	pawnVictim, err := FromFEN("4k3/8/8/8/8/8/3p4/3R3K w - - 0 1")
	require.NoError(t, err)

	takeRook := NewMove(SquareD1, SquareD2, FlagCapture)
	takePawn := NewMove(SquareD1, SquareD2, FlagCapture)
	require.Greater(t, rookVictim.MVVLVA(takeRook), pawnVictim.MVVLVA(takePawn))
}
