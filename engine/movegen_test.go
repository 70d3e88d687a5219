package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func countLegal(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		b.MakeMove(m)
		n += countLegal(b, depth-1)
		b.UndoMove()
	}
	return n
}

func TestPerftStartPos(t *testing.T) {
	expected := []uint64{1, 20, 400, 8902, 197281}
	b, err := FromFEN(StartFEN)
	require.NoError(t, err)
	for depth, want := range expected {
		require.Equal(t, want, countLegal(b, depth), "depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	expected := []uint64{1, 48, 2039, 97862}
	b, err := FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	for depth, want := range expected {
		require.Equal(t, want, countLegal(b, depth), "depth %d", depth)
	}
}

// TestEnPassantPinAvoidance covers spec.md's S3 property: a pawn may
// not capture en passant if doing so would expose its own king to a
// rank attack through the two simultaneously vacated squares.
func TestEnPassantPinAvoidance(t *testing.T) {
	b, err := FromFEN("8/8/8/KPp4r/8/8/8/6k1 w - c6 0 1")
	require.NoError(t, err)

	moves := b.GenerateLegalMoves()
	for _, m := range moves {
		if m.IsEnPassant() {
			require.Fail(t, "en passant capture must be excluded", m.UCI())
		}
	}
}

// TestGenerateLegalCapturesIncludesPushPromotions covers spec.md §4.2/
// §4.3: GenerateLegalCaptures returns captures AND promotions, including
// a push promotion onto an empty square (no enemy piece captured).
func TestGenerateLegalCapturesIncludesPushPromotions(t *testing.T) {
	b, err := FromFEN("8/P7/8/8/8/8/8/k1K5 w - - 0 1")
	require.NoError(t, err)

	moves := b.GenerateLegalCaptures()
	want := []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"}
	var got []string
	for _, m := range moves {
		got = append(got, m.UCI())
	}
	for _, w := range want {
		require.Contains(t, got, w)
	}
}

func TestMakeUndoRestoresHash(t *testing.T) {
	b, err := FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	before := b.Hash()
	for _, m := range b.GenerateLegalMoves() {
		b.MakeMove(m)
		b.UndoMove()
		require.Equal(t, before, b.Hash(), "hash not restored after %s", m.UCI())
		require.Equal(t, before, b.computeHashFromScratch(), "incremental hash diverged after %s", m.UCI())
	}
}
