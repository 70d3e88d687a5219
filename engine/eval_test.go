package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateMaterialAdvantage(t *testing.T) {
	b, err := FromFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	e := NewHandcraftedEvaluator(b, DefaultEvalConfig())
	require.Greater(t, e.Evaluate(), int32(0))
}

func TestEvaluateSymmetricPositionIsNearZero(t *testing.T) {
	b, err := FromFEN(StartFEN)
	require.NoError(t, err)
	e := NewHandcraftedEvaluator(b, DefaultEvalConfig())
	require.InDelta(t, 0, e.Evaluate(), 50)
}

func TestEvaluateIsSideToMoveRelative(t *testing.T) {
	white, err := FromFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	black, err := FromFEN("4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	require.NoError(t, err)

	ew := NewHandcraftedEvaluator(white, DefaultEvalConfig())
	eb := NewHandcraftedEvaluator(black, DefaultEvalConfig())
	require.Equal(t, ew.Evaluate(), -eb.Evaluate())
}

func TestIsDrawFiftyMoveRule(t *testing.T) {
	b, err := FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 100 60")
	require.NoError(t, err)
	e := NewHandcraftedEvaluator(b, DefaultEvalConfig())
	require.True(t, e.IsDraw())
}
