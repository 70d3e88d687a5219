package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"8/8/8/KPp4r/8/8/8/6k1 w - c6 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		b, err := FromFEN(fen)
		require.NoError(t, err, fen)
		require.Equal(t, fen, b.ToFEN(), "round trip mismatch for %s", fen)
	}
}

func TestFromFENRejectsGarbage(t *testing.T) {
	_, err := FromFEN("not a fen")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidFen)
}
