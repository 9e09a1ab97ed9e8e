package mining

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMineSize2PatternsAdmitsAboveThreshold(t *testing.T) {
	points := []Point{
		{ID: 0, Type: "A", X: 0, Y: 0},
		{ID: 1, Type: "B", X: 0.001, Y: 0},
	}
	radius := 0.01
	ti, err := BuildTypeIndex(points, radius)
	require.NoError(t, err)
	ng, err := BuildNeighborGraph(context.Background(), ti, radius, 0)
	require.NoError(t, err)

	admitted, ratios := MineSize2Patterns(ti, ng, 0.5)
	require.Len(t, admitted, 1)
	require.Equal(t, 1.0, admitted[0].ParticipationIndex)
	require.Len(t, ratios, 1)
}

func TestMineSize2PatternsRecordsBelowThresholdDiagnostics(t *testing.T) {
	points := []Point{{ID: 10, Type: "B", X: 0, Y: 0}}
	for i := 0; i < 10; i++ {
		points = append(points, Point{ID: i, Type: "A", X: float64(i), Y: 0})
	}
	radius := 0.5
	ti, err := BuildTypeIndex(points, radius)
	require.NoError(t, err)
	ng, err := BuildNeighborGraph(context.Background(), ti, radius, 0)
	require.NoError(t, err)

	admitted, ratios := MineSize2Patterns(ti, ng, 0.5)
	require.Empty(t, admitted)
	require.Len(t, ratios, 1, "pair is still recorded for diagnostics even though not admitted")
}
