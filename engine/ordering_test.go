package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKillerTableKeepsTwoMostRecent(t *testing.T) {
	var k KillerTable
	m1 := NewMove(SquareE2, SquareE4, FlagDoublePawn)
	m2 := NewMove(SquareG1, SquareF3, FlagQuiet)
	m3 := NewMove(SquareB1, SquareC3, FlagQuiet)

	k.Add(3, m1)
	k.Add(3, m2)
	first, second := k.Get(3)
	require.Equal(t, m2, first)
	require.Equal(t, m1, second)

	k.Add(3, m1) // re-adding the older slot must not duplicate it
	first, second = k.Get(3)
	require.Equal(t, m1, first)
	require.Equal(t, m2, second)

	k.Add(3, m3)
	first, second = k.Get(3)
	require.Equal(t, m3, first)
	require.Equal(t, m1, second)
}

func TestHistoryTableClampsAndAges(t *testing.T) {
	var h HistoryTable
	h.Add(White, SquareE2, SquareE4, historyMax*2)
	require.Equal(t, int32(historyMax), h.Get(White, SquareE2, SquareE4))

	h.Age()
	require.Equal(t, int32(historyMax/2), h.Get(White, SquareE2, SquareE4))
}

func TestCounterMoveTableRoundTrip(t *testing.T) {
	var c CounterMoveTable
	refute := NewMove(SquareD1, SquareH5, FlagQuiet)
	c.Set(Knight, SquareF6, White, refute)
	require.Equal(t, refute, c.Get(Knight, SquareF6, White))
	require.NotEqual(t, refute, c.Get(Bishop, SquareF6, White))
}
