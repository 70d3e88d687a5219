package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranspositionTablePutProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	m := NewMove(SquareD2, SquareD4, FlagDoublePawn)
	tt.Put(1234, m, 57, 6, BoundExact, 1)

	got, score, depth, bound, found := tt.Probe(1234)
	require.True(t, found)
	require.Equal(t, m, got)
	require.Equal(t, int16(57), score)
	require.Equal(t, uint8(6), depth)
	require.Equal(t, BoundExact, bound)
}

func TestTranspositionTableMissOnWrongHash(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Put(1234, NullMove, 0, 1, BoundExact, 0)
	_, _, _, _, found := tt.Probe(9999)
	require.False(t, found)
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Put(42, NullMove, 10, 3, BoundExact, 0)
	tt.ClearHashTable()
	_, _, _, _, found := tt.Probe(42)
	require.False(t, found)
}

func TestTranspositionTableSetHashTableSizeRejectsNonPositive(t *testing.T) {
	tt := NewTranspositionTable(1)
	require.ErrorIs(t, tt.SetHashTableSize(0), ErrAllocationFailed)
	require.ErrorIs(t, tt.SetHashTableSize(-1), ErrAllocationFailed)
}
