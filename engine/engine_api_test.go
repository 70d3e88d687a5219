package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineSetPositionPlaysMoves(t *testing.T) {
	e := NewEngine(1)
	err := e.SetPosition(StartFEN, []string{"e2e4", "e7e5", "g1f3"})
	require.NoError(t, err)
	require.Equal(t, Black, e.board.SideToMove())
}

func TestEngineSetPositionRejectsIllegalMove(t *testing.T) {
	e := NewEngine(1)
	err := e.SetPosition(StartFEN, []string{"e2e5"})
	require.Error(t, err)
}

func TestEngineSearchReportsBestMove(t *testing.T) {
	e := NewEngine(1)
	require.NoError(t, e.SetPosition(StartFEN, nil))
	e.Search(300, false)

	_, ok := e.GetBestMove()
	require.True(t, ok)

	pv := e.GetPrincipalVariation()
	require.NotEmpty(t, pv)
}

func TestEngineSetHashTableSizeRejectsNonPositive(t *testing.T) {
	e := NewEngine(1)
	require.Error(t, e.SetHashTableSize(0))
}

func TestEngineMultiPVReturnsUpToK(t *testing.T) {
	e := NewEngine(1)
	e.SetNumVariations(3)
	require.NoError(t, e.SetPosition(StartFEN, nil))
	e.Search(300, false)
	require.LessOrEqual(t, len(e.GetVariations()), 3)
	require.NotEmpty(t, e.GetVariations())
}
