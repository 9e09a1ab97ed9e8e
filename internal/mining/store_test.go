package mining

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatternStoreSortOrder(t *testing.T) {
	store := NewPatternStore()
	store.Add(AdmittedPattern{Pattern: Pattern{Types: []TypeID{0, 1}}, ParticipationIndex: 0.5})
	store.Add(AdmittedPattern{Pattern: Pattern{Types: []TypeID{0, 1, 2}}, ParticipationIndex: 0.9})
	store.Add(AdmittedPattern{Pattern: Pattern{Types: []TypeID{0, 2}}, ParticipationIndex: 0.9})

	sorted := store.Sorted()
	require.Len(t, sorted, 3)
	require.Equal(t, 0.9, sorted[0].ParticipationIndex)
	require.Equal(t, 2, sorted[0].Pattern.Size())
	require.Equal(t, 0.9, sorted[1].ParticipationIndex)
	require.Equal(t, 3, sorted[1].Pattern.Size())
	require.Equal(t, 0.5, sorted[2].ParticipationIndex)
}
