package perft

import (
	"testing"

	"github.com/corvid-chess/corvid/engine"
	"github.com/stretchr/testify/require"
)

func TestCountStartPos(t *testing.T) {
	expected := []uint64{1, 20, 400, 8902, 197281}
	b, err := engine.FromFEN(engine.StartFEN)
	require.NoError(t, err)
	for depth, want := range expected {
		require.Equal(t, want, Count(b, depth), "depth %d", depth)
	}
}

func TestCountKiwipete(t *testing.T) {
	expected := []uint64{1, 48, 2039, 97862}
	b, err := engine.FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	for depth, want := range expected {
		require.Equal(t, want, Count(b, depth), "depth %d", depth)
	}
}

func TestCountMemoAgreesWithCount(t *testing.T) {
	b, err := engine.FromFEN(engine.StartFEN)
	require.NoError(t, err)
	table := NewTable(10)
	require.Equal(t, Count(b, 3), CountMemo(b, 3, table))
}

func TestDivideSumsToCount(t *testing.T) {
	b, err := engine.FromFEN(engine.StartFEN)
	require.NoError(t, err)
	div := Divide(b, 3)

	var sum uint64
	for _, n := range div {
		sum += n
	}
	require.Equal(t, Count(b, 3), sum)
}
