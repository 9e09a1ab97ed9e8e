package mining

import "sort"

// PatternStore holds the admitted patterns of a completed mining run and
// exposes them in the canonical output order: descending participation
// index, then ascending size, then by Pattern.Key() string for full
// determinism across runs on the same input (a tertiary key the original
// pandas-based get_patterns() left to sort stability, made explicit here
// since Go's sort is not guaranteed stable unless SliceStable is used).
type PatternStore struct {
	patterns []AdmittedPattern
}

// NewPatternStore builds an empty store.
func NewPatternStore() *PatternStore {
	return &PatternStore{}
}

// Add records an admitted pattern.
func (s *PatternStore) Add(p AdmittedPattern) {
	s.patterns = append(s.patterns, p)
}

// Sorted returns the store's patterns in canonical output order.
func (s *PatternStore) Sorted() []AdmittedPattern {
	out := append([]AdmittedPattern(nil), s.patterns...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ParticipationIndex != b.ParticipationIndex {
			return a.ParticipationIndex > b.ParticipationIndex
		}
		if a.Pattern.Size() != b.Pattern.Size() {
			return a.Pattern.Size() < b.Pattern.Size()
		}
		return a.Pattern.Key() < b.Pattern.Key()
	})
	return out
}

// Len returns the number of stored patterns.
func (s *PatternStore) Len() int { return len(s.patterns) }
